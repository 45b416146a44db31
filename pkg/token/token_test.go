package token

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	if err := Init(); err != nil {
		panic(err)
	}
	os.Exit(m.Run())
}

func TestResumeTokenRoundtrip(t *testing.T) {
	resumeToken, err := GenerateResumeToken("device-abc")
	require.NoError(t, err)
	require.NotEmpty(t, resumeToken)

	deviceID, err := ValidateResumeToken(resumeToken)
	require.NoError(t, err)
	assert.Equal(t, "device-abc", deviceID)
}

func TestResumeTokenRejectsTampering(t *testing.T) {
	resumeToken, err := GenerateResumeToken("device-abc")
	require.NoError(t, err)

	tampered := resumeToken[:len(resumeToken)-4] + "xxxx"
	_, err = ValidateResumeToken(tampered)
	assert.Error(t, err)
}

func TestResumeTokenRejectsBareIdentifier(t *testing.T) {
	_, err := ValidateResumeToken("8b9e6bb4-29a1-4d5f-9a31-1c67a8a1f0ab")
	assert.Error(t, err)
}

func TestResumeAndRefreshTokensAreNotInterchangeable(t *testing.T) {
	_, refreshToken, _, err := GenerateTokenPair("device-abc", RoleApplicant)
	require.NoError(t, err)

	_, err = ValidateResumeToken(refreshToken)
	assert.Error(t, err, "refresh token must not open a draft")

	resumeToken, err := GenerateResumeToken("device-abc")
	require.NoError(t, err)
	_, _, err = ValidateRefreshToken(resumeToken)
	assert.Error(t, err, "resume token must not rotate sessions")
}

func TestRefreshTokenRoundtrip(t *testing.T) {
	_, refreshToken, expiresIn, err := GenerateTokenPair("device-abc", RoleApplicant)
	require.NoError(t, err)
	assert.Positive(t, expiresIn)

	uid, role, err := ValidateRefreshToken(refreshToken)
	require.NoError(t, err)
	assert.Equal(t, "device-abc", uid)
	assert.Equal(t, RoleApplicant, role)
}
