package domain

// LatestAction returns the action that represents a lead's current state: the
// one with the greatest CreatedAt. Among actions sharing that timestamp the one
// logged last (closest to the end of the slice) wins. The slice is not reordered.
func LatestAction(actions []Action) (Action, bool) {
	i := LatestIndex(actions)
	if i < 0 {
		return Action{}, false
	}
	return actions[i], true
}

// LatestIndex is LatestAction by position, -1 for an empty slice. Callers
// that keep richer records alongside the engine's actions use it to find the
// matching record.
func LatestIndex(actions []Action) int {
	if len(actions) == 0 {
		return -1
	}

	best := 0
	for i := 1; i < len(actions); i++ {
		if !actions[i].CreatedAt.Before(actions[best].CreatedAt) {
			best = i
		}
	}
	return best
}
