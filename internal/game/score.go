package game

// Score compares guess against secret.
//
// Total counts distinct digit values of the guess that appear anywhere in
// the secret; a repeated guess digit is counted once because secret digits
// are unique. Positional counts indices where both digits agree.
func Score(secret Code, guess Guess) Feedback {
	var inSecret, counted [10]bool
	for _, d := range secret {
		inSecret[d] = true
	}

	var f Feedback
	for i, d := range guess {
		if d == secret[i] {
			f.Positional++
		}
		if inSecret[d] && !counted[d] {
			counted[d] = true
			f.Total++
		}
	}
	return f
}
