package domain

import (
	"testing"
	"time"
)

func TestLatestActionEmpty(t *testing.T) {
	if _, ok := LatestAction(nil); ok {
		t.Fatalf("expected no action for empty history")
	}
}

func TestLatestActionPicksMaxCreatedAtRegardlessOfOrder(t *testing.T) {
	base := time.Date(2024, time.January, 10, 9, 0, 0, 0, time.UTC)
	actions := []Action{
		{NextFollowUp: "a", CreatedAt: base.Add(2 * time.Hour)},
		{NextFollowUp: "b", CreatedAt: base},
		{NextFollowUp: "c", CreatedAt: base.Add(time.Hour)},
	}

	got, ok := LatestAction(actions)
	if !ok || got.NextFollowUp != "a" {
		t.Fatalf("expected action a, got %+v (ok=%v)", got, ok)
	}
	if actions[0].NextFollowUp != "a" || actions[1].NextFollowUp != "b" {
		t.Fatalf("input slice was reordered: %+v", actions)
	}
}

func TestLatestActionTieBreakPrefersLastLogged(t *testing.T) {
	at := time.Date(2024, time.January, 10, 9, 0, 0, 0, time.UTC)
	actions := []Action{
		{NextFollowUp: "older", CreatedAt: at.Add(-time.Minute)},
		{NextFollowUp: "first", CreatedAt: at},
		{NextFollowUp: "second", CreatedAt: at},
		{NextFollowUp: "third", CreatedAt: at},
	}

	for i := 0; i < 50; i++ {
		got, _ := LatestAction(actions)
		if got.NextFollowUp != "third" {
			t.Fatalf("run %d: expected last logged action among ties, got %q", i, got.NextFollowUp)
		}
	}
}

func TestLatestActionTieAcrossLocationsIsSameInstant(t *testing.T) {
	at := time.Date(2024, time.January, 10, 9, 0, 0, 0, time.UTC)
	actions := []Action{
		{NextFollowUp: "utc", CreatedAt: at},
		{NextFollowUp: "shifted", CreatedAt: at.In(time.FixedZone("X", 3600))},
	}

	got, _ := LatestAction(actions)
	if got.NextFollowUp != "shifted" {
		t.Fatalf("expected later-logged equal instant to win, got %q", got.NextFollowUp)
	}
}

func TestLatestIndexMatchesLatestAction(t *testing.T) {
	base := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)
	actions := []Action{
		{NextFollowUp: "1", CreatedAt: base.Add(time.Hour)},
		{NextFollowUp: "2", CreatedAt: base},
		{NextFollowUp: "3", CreatedAt: base.Add(time.Hour)},
	}
	if got := LatestIndex(actions); got != 2 {
		t.Fatalf("expected index 2, got %d", got)
	}
	if got := LatestIndex(nil); got != -1 {
		t.Fatalf("expected -1 for no actions, got %d", got)
	}
}
