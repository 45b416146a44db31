package flow

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"Evermatch/internal/model"
)

const testMinAge = 22

func TestValidateRequiredFields(t *testing.T) {
	_, problems := ValidateAndNormalize(StepBasics, model.AnswerSet{
		"display_name": "Ada",
	}, testMinAge)

	require.NotNil(t, problems)
	assert.Equal(t, "required", problems["full_name"])
	assert.Equal(t, "required", problems["age"])
	assert.Equal(t, "required", problems["photos"])
	assert.NotContains(t, problems, "display_name")
}

func TestValidateAgeFloor(t *testing.T) {
	payload := model.AnswerSet{
		"display_name": "Ada",
		"full_name":    "Ada Lovelace",
		"age":          21,
		"photos":       []string{"a.jpg"},
	}

	_, problems := ValidateAndNormalize(StepBasics, payload, testMinAge)
	require.NotNil(t, problems)
	assert.Contains(t, problems["age"], "minimum age is 22")

	payload["age"] = 22
	normalized, problems := ValidateAndNormalize(StepBasics, payload, testMinAge)
	assert.Nil(t, problems)
	assert.NotNil(t, normalized)
}

func TestValidateHeightRange(t *testing.T) {
	for _, h := range []float64{119, 231} {
		_, problems := ValidateAndNormalize(StepBackgroundSix, model.AnswerSet{
			"height_cm":          h,
			"previously_married": false,
		}, testMinAge)
		require.NotNil(t, problems, "height %v should be rejected", h)
		assert.Equal(t, "height out of range", problems["height_cm"])
	}

	_, problems := ValidateAndNormalize(StepBackgroundSix, model.AnswerSet{
		"height_cm":          170,
		"previously_married": false,
	}, testMinAge)
	assert.Nil(t, problems)
}

func TestValidatePartnerAgeRange(t *testing.T) {
	_, problems := ValidateAndNormalize(StepBackgroundNine, model.AnswerSet{
		"partner_age": map[string]interface{}{"min": 20, "max": 30},
	}, testMinAge)
	require.NotNil(t, problems)
	assert.Contains(t, problems["partner_age"], "minimum preferred age")

	_, problems = ValidateAndNormalize(StepBackgroundNine, model.AnswerSet{
		"partner_age": map[string]interface{}{"min": 35, "max": 30},
	}, testMinAge)
	require.NotNil(t, problems)
	assert.Equal(t, "max must be greater than or equal to min", problems["partner_age"])

	normalized, problems := ValidateAndNormalize(StepBackgroundNine, model.AnswerSet{
		"partner_age": map[string]interface{}{"min": 25, "max": 35},
	}, testMinAge)
	assert.Nil(t, problems)
	assert.NotNil(t, normalized)
}

func TestValidateEnumNormalization(t *testing.T) {
	normalized, problems := ValidateAndNormalize(StepBackgroundOne, model.AnswerSet{
		"gender": "Non Binary",
	}, testMinAge)
	require.Nil(t, problems)
	assert.Equal(t, "non-binary", normalized["gender"])

	_, problems = ValidateAndNormalize(StepBackgroundOne, model.AnswerSet{
		"gender": "starfish",
	}, testMinAge)
	require.NotNil(t, problems)
	assert.Contains(t, problems["gender"], "unknown option")
}

func TestValidateEnumArrays(t *testing.T) {
	normalized, problems := ValidateAndNormalize(StepEmotionalOne, model.AnswerSet{
		"love_languages": []interface{}{"Quality Time", "gifts"},
	}, testMinAge)
	require.Nil(t, problems)
	assert.Equal(t, []interface{}{"quality-time", "gifts"}, normalized["love_languages"])

	_, problems = ValidateAndNormalize(StepEmotionalOne, model.AnswerSet{
		"love_languages": []string{"quality-time", "mind-reading"},
	}, testMinAge)
	require.NotNil(t, problems)
	assert.Contains(t, problems["love_languages"], "unknown option")
}

func TestValidateDoesNotMutateInput(t *testing.T) {
	payload := model.AnswerSet{"gender": "MALE"}
	normalized, problems := ValidateAndNormalize(StepBackgroundOne, payload, testMinAge)

	require.Nil(t, problems)
	assert.Equal(t, "male", normalized["gender"])
	assert.Equal(t, "MALE", payload["gender"], "caller payload must stay untouched")
}

func TestValidateEmptyDealbreakersAllowed(t *testing.T) {
	// dealbreakers 允许勾零项，字段存在即可
	_, problems := ValidateAndNormalize(StepEmotionalFive, model.AnswerSet{
		"dealbreakers": []interface{}{},
	}, testMinAge)
	assert.Nil(t, problems)

	_, problems = ValidateAndNormalize(StepEmotionalFive, model.AnswerSet{}, testMinAge)
	require.NotNil(t, problems)
	assert.Equal(t, "required", problems["dealbreakers"])
}
