package util

import (
	"crypto/rand"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerateOTP_LengthAndDigits(t *testing.T) {
	code, err := GenerateOTP(6)
	assert.NoError(t, err)
	assert.Len(t, code, 6)
	for _, ch := range code {
		assert.True(t, ch >= '0' && ch <= '9')
	}
}

func TestGenerateOTP_Deterministic(t *testing.T) {
	randRead = func(buf []byte) (int, error) {
		for i := range buf {
			buf[i] = byte(i)
		}
		return len(buf), nil
	}
	defer func() { randRead = rand.Read }()

	code, err := GenerateOTP(6)
	assert.NoError(t, err)
	assert.Equal(t, "012345", code)
}

// Bytes 250..255 would fold onto digits 0..5 more often than the rest, so
// the generator throws them away and draws again.
func TestGenerateOTP_RedrawsSkewedBytes(t *testing.T) {
	calls := 0
	randRead = func(buf []byte) (int, error) {
		calls++
		for i := range buf {
			if calls == 1 {
				buf[i] = 255
			} else {
				buf[i] = byte(i)
			}
		}
		return len(buf), nil
	}
	defer func() { randRead = rand.Read }()

	code, err := GenerateOTP(6)
	assert.NoError(t, err)
	assert.Equal(t, "012345", code)
	assert.Equal(t, 2, calls)
}

func TestGenerateOTP_RandFailure(t *testing.T) {
	randRead = func(buf []byte) (int, error) {
		return 0, errors.New("entropy exhausted")
	}
	defer func() { randRead = rand.Read }()

	_, err := GenerateOTP(6)
	assert.Error(t, err)
}

func TestHashAndCheckOTP(t *testing.T) {
	hash, err := HashOTP("482915")
	assert.NoError(t, err)
	assert.NotEqual(t, "482915", hash)

	assert.True(t, CheckOTP(hash, "482915"))
	assert.False(t, CheckOTP(hash, "482916"))
	assert.False(t, CheckOTP("", "482915"))
}
