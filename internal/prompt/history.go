package prompt

import "sort"

// WindowHistory selects the most recent max messages and returns them in
// chronological order.
//
// Messages are stably sorted by timestamp descending (a missing
// timestamp is the empty string, which sorts last, i.e. least recent),
// truncated to max, then reversed for presentation. The stable sort
// makes the relative order of equal timestamps part of the contract.
func WindowHistory(history []ChatMessage, max int) []ChatMessage {
	if len(history) == 0 || max <= 0 {
		return nil
	}

	sorted := make([]ChatMessage, len(history))
	copy(sorted, history)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Timestamp > sorted[j].Timestamp
	})

	if max < len(sorted) {
		sorted = sorted[:max]
	}

	// reverse to chronological order
	for i, j := 0, len(sorted)-1; i < j; i, j = i+1, j-1 {
		sorted[i], sorted[j] = sorted[j], sorted[i]
	}
	return sorted
}
