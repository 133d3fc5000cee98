// Package referral implements the referral code utilities.
package referral

import (
	"crypto/rand"
	"math/big"
	"regexp"
)

const (
	codeLength = 8
	charset    = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
)

var codePattern = regexp.MustCompile(`^[A-Z0-9]{8}$`)

// Generate returns a new 8-character uppercase alphanumeric code.
func Generate() string {
	buf := make([]byte, codeLength)
	max := big.NewInt(int64(len(charset)))
	for i := range buf {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			// crypto/rand only fails when the platform source is broken;
			// fall back to a fixed character rather than panic mid-request.
			buf[i] = charset[0]
			continue
		}
		buf[i] = charset[n.Int64()]
	}
	return string(buf)
}

// Validate reports whether code is exactly eight uppercase alphanumerics.
func Validate(code string) bool {
	return codePattern.MatchString(code)
}
