// Package keygen produces customer-facing license key strings.
//
// Keys are four groups of four characters separated by hyphens, e.g.
// GHX6-889J-WUJE-X2R2, drawn from an alphabet without visually ambiguous
// symbols (no I, O, 0 confusable with 1 and l is excluded by using upper
// case only). Uniqueness against the store is probed by the caller-supplied
// exists function; the storage unique constraint remains the authoritative
// guard.
package keygen

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"regexp"
	"strings"

	"keymint/internal/shared/errors"
)

const (
	// alphabet excludes I, O, 0 and 1 to keep keys readable over the phone.
	alphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

	groupCount  = 4
	groupLength = 4

	// DefaultMaxAttempts bounds the uniqueness-probe retry loop. A collision
	// in a 32^16 keyspace is astronomically unlikely; hitting the ceiling
	// means something is wrong and must surface to operators.
	DefaultMaxAttempts = 10
)

var keyPattern = regexp.MustCompile(`^(?:[ABCDEFGHJKLMNPQRSTUVWXYZ23456789]{4}-){3}[ABCDEFGHJKLMNPQRSTUVWXYZ23456789]{4}$`)

// ExistsFunc reports whether a candidate key is already taken.
type ExistsFunc func(ctx context.Context, key string) (bool, error)

// Generator mints unique license keys.
type Generator struct {
	maxAttempts int
}

// NewGenerator creates a Generator with the given retry ceiling.
// Non-positive values fall back to DefaultMaxAttempts.
func NewGenerator(maxAttempts int) *Generator {
	if maxAttempts <= 0 {
		maxAttempts = DefaultMaxAttempts
	}
	return &Generator{maxAttempts: maxAttempts}
}

// Random returns a single random candidate key without any uniqueness probe.
func Random() (string, error) {
	groups := make([]string, groupCount)
	alphabetLen := big.NewInt(int64(len(alphabet)))

	for g := 0; g < groupCount; g++ {
		part := make([]byte, groupLength)
		for i := 0; i < groupLength; i++ {
			num, err := rand.Int(rand.Reader, alphabetLen)
			if err != nil {
				return "", fmt.Errorf("failed to generate random number: %w", err)
			}
			part[i] = alphabet[num.Int64()]
		}
		groups[g] = string(part)
	}

	return strings.Join(groups, "-"), nil
}

// Generate returns a key that the exists probe did not find in the store,
// retrying with fresh random draws up to the configured ceiling. Exceeding
// the ceiling returns an exhausted-keyspace error.
func (g *Generator) Generate(ctx context.Context, exists ExistsFunc) (string, error) {
	for attempt := 0; attempt < g.maxAttempts; attempt++ {
		key, err := Random()
		if err != nil {
			return "", err
		}

		taken, err := exists(ctx, key)
		if err != nil {
			return "", fmt.Errorf("failed to check key uniqueness: %w", err)
		}
		if !taken {
			return key, nil
		}
	}

	return "", errors.NewExhaustedKeyspaceError(g.maxAttempts)
}

// IsWellFormed reports whether s matches the XXXX-XXXX-XXXX-XXXX key layout.
func IsWellFormed(s string) bool {
	return keyPattern.MatchString(s)
}
