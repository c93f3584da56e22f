package util

import (
	"crypto/rand"

	"golang.org/x/crypto/bcrypt"
)

// swapped out in tests for a deterministic source
var randRead = rand.Read

const otpDigits = "0123456789"

/*
* Draw random bytes and map them onto digits
* Bytes 250..255 are redrawn so every digit is equally likely
* The code itself travels out of band, only the hash is stored
 */
func GenerateOTP(length int) (string, error) {
	code := make([]byte, 0, length)
	buf := make([]byte, length)
	for len(code) < length {
		if _, err := randRead(buf); err != nil {
			return "", err
		}
		for _, b := range buf {
			if b >= 250 {
				continue
			}
			code = append(code, otpDigits[int(b)%len(otpDigits)])
			if len(code) == length {
				break
			}
		}
	}
	return string(code), nil
}

func HashOTP(code string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(code), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func CheckOTP(hash, code string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(code)) == nil
}
