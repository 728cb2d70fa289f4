package encrypt

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// bcrypt.DefaultCost = 10
const bcryptCost = bcrypt.DefaultCost

// ErrPasswordMismatch password check failed
var ErrPasswordMismatch = errors.New("password does not match")

// HashPassword 將密碼進行加密
func HashPassword(password string) (string, error) {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}

	return string(hashedPassword), nil
}

// CheckPassword 驗證密碼是否匹配
func CheckPassword(hashedPassword, password string) error {
	if err := bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password)); err != nil {
		return ErrPasswordMismatch
	}
	return nil
}
