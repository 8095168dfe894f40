package game

import "sort"

// AssignRanks sets Rank on every finished player.
//
// Ranks are dense over distinct finishing rounds: the earliest round gets
// rank 1, the next distinct round rank 2, and so on. Players finishing in
// the same round share a rank. Unfinished players are reset to 0.
// Calling it repeatedly yields the same result.
func AssignRanks(players []*Player) {
	var rounds []int
	seen := make(map[int]bool)
	for _, p := range players {
		if p.Finished && !seen[p.FinishRound] {
			seen[p.FinishRound] = true
			rounds = append(rounds, p.FinishRound)
		}
	}
	sort.Ints(rounds)

	rankOf := make(map[int]int, len(rounds))
	for i, r := range rounds {
		rankOf[r] = i + 1
	}
	for _, p := range players {
		if p.Finished {
			p.Rank = rankOf[p.FinishRound]
		} else {
			p.Rank = 0
		}
	}
}
