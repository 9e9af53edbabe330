package game

import (
	cryptorand "crypto/rand"
	"errors"
	"math/big"
	"strconv"
	"strings"
)

// Secret range constants
const (
	MinSecret = 1
	MaxSecret = 100
)

// Outcome of comparing a guess against the secret.
type Outcome string

const (
	OutcomeTooSmall Outcome = "too_small"
	OutcomeTooBig   Outcome = "too_big"
	OutcomeCorrect  Outcome = "correct"
)

// ErrNotANumber is returned when a guess line cannot be parsed as an integer.
var ErrNotANumber = errors.New("guess is not a number")

// SecretSource draws a secret in [min, max]. It is injected into the game
// loop so tests can run against a fixed secret.
type SecretSource func(min, max int) int

// CryptoSource draws a secret from crypto/rand. On reader failure it falls
// back to min rather than aborting the game.
func CryptoSource(min, max int) int {
	n, err := cryptorand.Int(cryptorand.Reader, big.NewInt(int64(max-min+1)))
	if err != nil {
		logWarn("Error generating random number: %v, using fallback", err)
		return min
	}
	return min + int(n.Int64())
}

// FixedSource returns a SecretSource that always draws the given secret.
func FixedSource(secret int) SecretSource {
	return func(_, _ int) int { return secret }
}

// ParseGuess parses one line of input as a base-10 guess. Surrounding
// whitespace is tolerated; the parsed value is not range-restricted.
func ParseGuess(line string) (int, error) {
	guess, err := strconv.Atoi(strings.TrimSpace(line))
	if err != nil {
		return 0, ErrNotANumber
	}
	return guess, nil
}

// Compare reports whether guess is below, above, or equal to secret.
func Compare(guess, secret int) Outcome {
	switch {
	case guess < secret:
		return OutcomeTooSmall
	case guess > secret:
		return OutcomeTooBig
	default:
		return OutcomeCorrect
	}
}
