package handle

import (
	"context"
	"crypto/rand"
	"errors"
	"math/big"

	"github.com/goliatone/go-players/pkg/types"
)

const (
	// maxAttempts bounds the existence-checked probe loop.
	maxAttempts = 6
	// suffixLength is the random tail appended after a collision.
	suffixLength = 4
	// placeholderLength sizes the generated base used for empty input.
	placeholderLength = 6
	// fallbackLength sizes the final unchecked fallback handle.
	fallbackLength = 8

	placeholderPrefix = "player-"
)

const randomAlphabet = "abcdefghijklmnopqrstuvwxyz0123456789"

// RandomFunc produces n random lowercase-alphanumeric characters. Injectable
// so resolver tests stay deterministic.
type RandomFunc func(n int) string

// ResolverConfig wires the unique-handle resolver.
type ResolverConfig struct {
	Checker types.HandleChecker
	Random  RandomFunc
}

// Resolver finds a handle not already present in the profile store by
// probing existence-checked candidates derived from a base slug.
type Resolver struct {
	checker types.HandleChecker
	random  RandomFunc
}

// NewResolver constructs the resolver. A checker is required.
func NewResolver(cfg ResolverConfig) (*Resolver, error) {
	if cfg.Checker == nil {
		return nil, errors.New("handle: checker required")
	}
	random := cfg.Random
	if random == nil {
		random = RandomString
	}
	return &Resolver{checker: cfg.Checker, random: random}, nil
}

// Resolve returns a handle derived from base that no stored profile uses.
// Empty bases are replaced with a generated placeholder. Up to maxAttempts
// candidates are existence-checked; when every one collides the final
// fallback is returned unchecked, trusting the size of the random space.
// Any store failure aborts resolution immediately.
func (r *Resolver) Resolve(ctx context.Context, base string) (string, error) {
	if base == "" {
		base = placeholderPrefix + r.random(placeholderLength)
	}

	candidate := base
	for attempt := 0; attempt < maxAttempts; attempt++ {
		exists, err := r.checker.HandleExists(ctx, candidate)
		if err != nil {
			return "", err
		}
		if !exists {
			return candidate, nil
		}
		candidate = truncate(base + "-" + r.random(suffixLength))
	}

	return truncate(placeholderPrefix + r.random(fallbackLength)), nil
}

// RandomString returns n random characters from the handle alphabet using
// crypto/rand. It is the default RandomFunc.
func RandomString(n int) string {
	if n <= 0 {
		return ""
	}
	max := big.NewInt(int64(len(randomAlphabet)))
	out := make([]byte, n)
	for i := range out {
		idx, err := rand.Int(rand.Reader, max)
		if err != nil {
			// crypto/rand fails only when the platform entropy source is
			// unavailable.
			out[i] = randomAlphabet[0]
			continue
		}
		out[i] = randomAlphabet[idx.Int64()]
	}
	return string(out)
}

func truncate(s string) string {
	if len(s) > MaxLength {
		return s[:MaxLength]
	}
	return s
}
