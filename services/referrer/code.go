package referrer

import "math/rand/v2"

const (
	codeAlphabet       = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"
	referralCodeLength = 8
	maxCodeAttempts    = 5
)

// generateReferralCode draws n symbols uniformly from the 62-character
// alphanumeric alphabet. Codes are not secrets, so math/rand suffices.
func generateReferralCode(n int) string {
	b := make([]byte, n)
	for i := range b {
		b[i] = codeAlphabet[rand.IntN(len(codeAlphabet))]
	}
	return string(b)
}
