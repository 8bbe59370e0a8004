package auth

import (
	"crypto/subtle"

	"golang.org/x/crypto/bcrypt"

	"github.com/spec-kit/voucher-service/internal/config"
)

// VerifyPIN checks the submitted admin PIN against configuration. A bcrypt
// hash takes precedence; the plaintext fallback is compared in constant
// time. No configured PIN means nobody can log in.
func VerifyPIN(cfg config.AuthConfig, pin string) bool {
	if pin == "" {
		return false
	}
	if cfg.AdminPINHash != "" {
		return bcrypt.CompareHashAndPassword([]byte(cfg.AdminPINHash), []byte(pin)) == nil
	}
	if cfg.AdminPIN == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(cfg.AdminPIN), []byte(pin)) == 1
}

// HashPIN hashes a plaintext PIN for ADMIN_PIN_HASH provisioning.
func HashPIN(pin string, cost int) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(pin), cost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}
