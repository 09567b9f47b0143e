package service

import (
	"crypto/rand"
	"fmt"
	"io"
	"math/big"
)

// otpSpace is the number of distinct six-digit codes, 000000 to 999999.
var otpSpace = big.NewInt(1_000_000)

type otpGenerator struct {
	random io.Reader
}

// NewOTPGenerator returns a generator drawing uniformly from crypto/rand.
func NewOTPGenerator() OTPGenerator {
	return &otpGenerator{random: rand.Reader}
}

// Generate returns a zero-padded six-digit code, e.g. "007421".
func (g *otpGenerator) Generate() (string, error) {
	n, err := rand.Int(g.random, otpSpace)
	if err != nil {
		return "", fmt.Errorf("error generating login code: %w", err)
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}
