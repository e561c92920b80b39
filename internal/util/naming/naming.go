package naming

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

const (
	// MaxProjectIDLength is the Google Cloud project ID length cap.
	MaxProjectIDLength = 30

	// Separator joins the prefix and the generated suffix.
	Separator = "-"

	// suffixAlphabet is the character set for generated suffixes.
	// Project IDs must be lowercase, so uppercase letters are excluded.
	suffixAlphabet = "abcdefghijklmnopqrstuvwxyz0123456789"
)

// SuffixLength returns the number of suffix characters available for the
// given prefix: the project ID cap minus the prefix and the separator.
func SuffixLength(prefix string) int {
	return MaxProjectIDLength - len(prefix) - len(Separator)
}

// RandomSuffix generates a random lowercase-alphanumeric string of exactly
// length characters.
func RandomSuffix(length int) (string, error) {
	if length < 1 {
		return "", fmt.Errorf("suffix length must be at least 1, got %d", length)
	}

	limit := big.NewInt(int64(len(suffixAlphabet)))
	b := make([]byte, length)
	for i := range b {
		n, err := rand.Int(rand.Reader, limit)
		if err != nil {
			return "", fmt.Errorf("read randomness: %w", err)
		}
		b[i] = suffixAlphabet[n.Int64()]
	}
	return string(b), nil
}

// ProjectID combines a prefix and suffix into a candidate project ID.
func ProjectID(prefix, suffix string) string {
	return fmt.Sprintf("%s%s%s", prefix, Separator, suffix)
}
