package domain

import "testing"

func TestParseView(t *testing.T) {
	tests := []struct {
		raw     string
		want    View
		wantErr bool
	}{
		{"", ViewAll, false},
		{"all", ViewAll, false},
		{" Active ", ViewActive, false},
		{"closed", ViewClosed, false},
		{"onboarded", ViewOnboarded, false},
		{"due_today", ViewDueToday, false},
		{"OVERDUE", ViewOverdue, false},
		{"pending", "", true},
		{"notification", "", true},
	}

	for _, tc := range tests {
		got, err := ParseView(tc.raw)
		if tc.wantErr {
			if err == nil {
				t.Errorf("ParseView(%q) expected error", tc.raw)
			}
			continue
		}
		if err != nil || got != tc.want {
			t.Errorf("ParseView(%q) = %q, %v; want %q", tc.raw, got, err, tc.want)
		}
	}
}

func TestViewMatches(t *testing.T) {
	classified := map[string]Classification{
		"fresh":     {Stage: StageActive, DueStatus: DueStatusNoCommitment},
		"due":       {Stage: StageActive, DueStatus: DueStatusDueToday},
		"overdue":   {Stage: StageActive, DueStatus: DueStatusOverdue},
		"pending":   {Stage: StageActive, DueStatus: DueStatusPending},
		"closed":    {Stage: StageClosed, DueStatus: DueStatusNotApplicable},
		"onboarded": {Stage: StageOnboarded, DueStatus: DueStatusNotApplicable},
	}

	want := map[View][]string{
		ViewAll:       {"fresh", "due", "overdue", "pending", "closed", "onboarded"},
		ViewActive:    {"fresh", "due", "overdue", "pending"},
		ViewClosed:    {"closed"},
		ViewOnboarded: {"onboarded"},
		ViewDueToday:  {"due"},
		ViewOverdue:   {"overdue"},
	}

	for _, view := range Views() {
		expected := make(map[string]bool)
		for _, name := range want[view] {
			expected[name] = true
		}
		for name, c := range classified {
			if got := view.Matches(c); got != expected[name] {
				t.Errorf("view %s on %s: got %v, want %v", view, name, got, expected[name])
			}
		}
	}
}

func TestUnknownViewMatchesNothing(t *testing.T) {
	if View("bogus").Matches(Classification{Stage: StageActive}) {
		t.Fatalf("unknown view should not match")
	}
}

func TestViewsReturnsCopy(t *testing.T) {
	views := Views()
	views[0] = "mutated"
	if Views()[0] != ViewAll {
		t.Fatalf("Views() exposed internal slice")
	}
}
