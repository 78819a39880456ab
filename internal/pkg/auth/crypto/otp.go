package crypto

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

// NewOTP generates a 4-digit verification code with uniform distribution.
func NewOTP() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(10000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%04d", n.Int64()), nil
}
