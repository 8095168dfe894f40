package game

import (
	"errors"
	"math/rand"
	"testing"
)

func TestGenerateUniqueCodes(t *testing.T) {
	for _, n := range []int{1, 2, 10, 500, MaxCodes} {
		rng := rand.New(rand.NewSource(int64(n)))
		codes, err := GenerateUniqueCodes(rng, n)
		if err != nil {
			t.Fatalf("GenerateUniqueCodes(%d) returned error: %v", n, err)
		}
		if len(codes) != n {
			t.Fatalf("GenerateUniqueCodes(%d) returned %d codes", n, len(codes))
		}
		seen := make(map[Code]bool, n)
		for _, c := range codes {
			if !c.Valid() {
				t.Fatalf("code %s has repeated digits", c)
			}
			if seen[c] {
				t.Fatalf("code %s generated twice (n=%d)", c, n)
			}
			seen[c] = true
		}
	}
}

func TestGenerateUniqueCodesDeterministic(t *testing.T) {
	a, err := GenerateUniqueCodes(rand.New(rand.NewSource(42)), 8)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	b, err := GenerateUniqueCodes(rand.New(rand.NewSource(42)), 8)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("code %d differs for same seed: %s vs %s", i, a[i], b[i])
		}
	}
}

func TestGenerateUniqueCodesExhausted(t *testing.T) {
	_, err := GenerateUniqueCodes(rand.New(rand.NewSource(1)), MaxCodes+1)
	if !errors.Is(err, ErrGenerationExhausted) {
		t.Fatalf("error = %v, want %v", err, ErrGenerationExhausted)
	}
}

func TestGenerateUniqueCodesRejectsNonPositive(t *testing.T) {
	if _, err := GenerateUniqueCodes(rand.New(rand.NewSource(1)), 0); err == nil {
		t.Fatal("expected error for n=0")
	}
}

func TestForEachCodeCount(t *testing.T) {
	n := 0
	forEachCode(func(c Code) {
		if !c.Valid() {
			t.Fatalf("invalid code %s", c)
		}
		n++
	})
	if n != MaxCodes {
		t.Fatalf("visited %d codes, want %d", n, MaxCodes)
	}
}

func TestParseGuess(t *testing.T) {
	cases := []struct {
		in   string
		want Guess
		ok   bool
	}{
		{"0485", Guess{0, 4, 8, 5}, true},
		{"1123", Guess{1, 1, 2, 3}, true},
		{" 9876\n", Guess{9, 8, 7, 6}, true},
		{"\t1234 ", Guess{1, 2, 3, 4}, true},
		{"12 34", Guess{}, false},
		{"0000", Guess{0, 0, 0, 0}, true},
		{"12a4", Guess{}, false},
		{"123", Guess{}, false},
		{"12345", Guess{}, false},
		{"-123", Guess{}, false},
		{"", Guess{}, false},
		{"１２３４", Guess{}, false},
	}
	for _, tc := range cases {
		got, err := ParseGuess(tc.in)
		if tc.ok {
			if err != nil {
				t.Fatalf("ParseGuess(%q) returned error: %v", tc.in, err)
			}
			if got != tc.want {
				t.Fatalf("ParseGuess(%q) = %v, want %v", tc.in, got, tc.want)
			}
			continue
		}
		if !errors.Is(err, ErrInvalidGuessFormat) {
			t.Fatalf("ParseGuess(%q) error = %v, want %v", tc.in, err, ErrInvalidGuessFormat)
		}
	}
}

func TestCodeString(t *testing.T) {
	if got := (Code{0, 4, 8, 5}).String(); got != "0485" {
		t.Fatalf("String() = %q, want %q", got, "0485")
	}
}
