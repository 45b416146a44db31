package utils

import (
	"crypto/sha256"
	"encoding/hex"

	"Evermatch/config"
)

// hash 化管理员口令，密文核对，加盐避免彩虹表，盐 + ":" + password

func HashPassword(password string) string {
	key := config.Cfg.PasswordHashSalt

	sum := sha256.Sum256([]byte(key + ":" + password))

	return hex.EncodeToString(sum[:])
}
