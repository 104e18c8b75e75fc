package usecase

import (
	"crypto/rand"
	"encoding/hex"
	"math/big"
	"strconv"
)

// generateVerificationCode returns a 6-digit decimal code drawn uniformly
// from [100000, 999999].
func generateVerificationCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		return "", err
	}

	return strconv.FormatInt(n.Int64()+100000, 10), nil
}

// generateResetToken returns a hex-encoded token with 32 bytes of
// cryptographic randomness.
func generateResetToken() (string, error) {
	bytes := make([]byte, 32)
	if _, err := rand.Read(bytes); err != nil {
		return "", err
	}

	return hex.EncodeToString(bytes), nil
}
