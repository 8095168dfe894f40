// internal/game/code.go
//
// Secret code generation and guess parsing.
// Responsibilities:
//   - Generate n pairwise-distinct codes of four unique digits.
//   - Parse raw player input into a Guess (exactly four ASCII digits).
//
// Generation uses rejection sampling with a bounded number of retries per
// slot. When a slot runs out of retries the remaining codes are enumerated
// and one is drawn uniformly, so generation always terminates.

package game

import (
	"fmt"
	"math/rand"
	"strings"
)

// maxRetriesPerCode bounds rejection sampling for a single slot.
const maxRetriesPerCode = 64

// GenerateUniqueCodes returns n distinct codes drawn from rng.
// Fails with ErrGenerationExhausted if n exceeds MaxCodes.
func GenerateUniqueCodes(rng *rand.Rand, n int) ([]Code, error) {
	if n < 1 {
		return nil, fmt.Errorf("generate %d codes: count must be positive", n)
	}
	if n > MaxCodes {
		return nil, fmt.Errorf("generate %d codes: only %d exist: %w", n, MaxCodes, ErrGenerationExhausted)
	}

	taken := make(map[Code]struct{}, n)
	out := make([]Code, 0, n)
	for len(out) < n {
		c, ok := sampleCode(rng, taken)
		if !ok {
			c, ok = drawRemaining(rng, taken)
			if !ok {
				return nil, fmt.Errorf("generate code %d of %d: %w", len(out)+1, n, ErrGenerationExhausted)
			}
		}
		taken[c] = struct{}{}
		out = append(out, c)
	}
	return out, nil
}

// sampleCode tries up to maxRetriesPerCode random permutations.
func sampleCode(rng *rand.Rand, taken map[Code]struct{}) (Code, bool) {
	for i := 0; i < maxRetriesPerCode; i++ {
		c := randomCode(rng)
		if _, dup := taken[c]; !dup {
			return c, true
		}
	}
	return Code{}, false
}

// randomCode takes the first four digits of a shuffled 0..9.
func randomCode(rng *rand.Rand) Code {
	perm := rng.Perm(10)
	var c Code
	for i := range c {
		c[i] = Digit(perm[i])
	}
	return c
}

// drawRemaining picks uniformly among all codes not yet taken.
func drawRemaining(rng *rand.Rand, taken map[Code]struct{}) (Code, bool) {
	free := make([]Code, 0, MaxCodes-len(taken))
	forEachCode(func(c Code) {
		if _, dup := taken[c]; !dup {
			free = append(free, c)
		}
	})
	if len(free) == 0 {
		return Code{}, false
	}
	return free[rng.Intn(len(free))], true
}

// forEachCode visits every valid code in lexical order.
func forEachCode(fn func(Code)) {
	for a := 0; a < 10; a++ {
		for b := 0; b < 10; b++ {
			if b == a {
				continue
			}
			for c := 0; c < 10; c++ {
				if c == a || c == b {
					continue
				}
				for d := 0; d < 10; d++ {
					if d == a || d == b || d == c {
						continue
					}
					fn(Code{Digit(a), Digit(b), Digit(c), Digit(d)})
				}
			}
		}
	}
}

// Valid reports whether c holds four distinct digits in [0,9].
func (c Code) Valid() bool {
	var seen [10]bool
	for _, d := range c {
		if d > 9 || seen[d] {
			return false
		}
		seen[d] = true
	}
	return true
}

// ParseGuess converts raw input into a Guess.
// Leading and trailing whitespace is trimmed before the length check, so
// " 1234\n" is accepted while "12 34" is not. Repeated digits are allowed.
func ParseGuess(raw string) (Guess, error) {
	s := strings.TrimSpace(raw)
	if len(s) != CodeLength || !isDigits(s) {
		return Guess{}, fmt.Errorf("%q: %w", s, ErrInvalidGuessFormat)
	}
	var g Guess
	for i := 0; i < CodeLength; i++ {
		g[i] = Digit(s[i] - '0')
	}
	return g, nil
}

// isDigits reports whether s consists only of ASCII 0–9.
func isDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
