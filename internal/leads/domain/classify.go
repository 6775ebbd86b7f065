package domain

import "time"

// Action is one staff contact event logged against a lead. Only NextFollowUp
// is interpreted; the other fields are carried through untouched.
type Action struct {
	ConnectionStatus string
	ConnectedVia     string
	ClientStage      string
	Remarks          string
	NextFollowUp     string
	ActionBy         string
	CreatedAt        time.Time
}

// Classification is the two-axis result for one lead at one evaluation instant.
type Classification struct {
	Stage      Stage
	DueStatus  DueStatus
	Commitment Commitment
	// Latest is the selected action, nil when the lead has none.
	Latest *Action
}

// Classify selects the latest of actions and classifies the lead as of now.
// The location of now defines which calendar day counts as today.
func Classify(actions []Action, now time.Time) Classification {
	latest, ok := LatestAction(actions)
	if !ok {
		return ClassifyLatest(nil, now)
	}
	return ClassifyLatest(&latest, now)
}

// ClassifyLatest classifies a lead from its already selected latest action.
// Stage is derived from the raw follow-up value, never from stored state, so a
// later action without a stage token reopens a closed or onboarded lead.
func ClassifyLatest(latest *Action, now time.Time) Classification {
	if latest == nil {
		return Classification{Stage: StageActive, DueStatus: DueStatusNoCommitment}
	}

	selected := *latest
	stage := stageForFollowUp(selected.NextFollowUp)
	if stage.IsTerminal() {
		return Classification{Stage: stage, DueStatus: DueStatusNotApplicable, Latest: &selected}
	}

	commitment := NormalizeFollowUp(selected.NextFollowUp, selected.CreatedAt, now.Location())
	return Classification{
		Stage:      StageActive,
		DueStatus:  dueStatus(commitment, DateOf(now)),
		Commitment: commitment,
		Latest:     &selected,
	}
}

func dueStatus(commitment Commitment, today Date) DueStatus {
	switch {
	case !commitment.Specified():
		return DueStatusNoCommitment
	case commitment.Date.Equal(today):
		return DueStatusDueToday
	case commitment.Date.Before(today):
		return DueStatusOverdue
	default:
		return DueStatusPending
	}
}

// LeadHistory is the engine's view of a lead: an id and its actions in the
// order they were logged.
type LeadHistory struct {
	ID      string
	Actions []Action
}

// ClassifyAll classifies every lead against the same instant. Results are
// index-aligned with leads.
func ClassifyAll(leads []LeadHistory, now time.Time) []Classification {
	results := make([]Classification, len(leads))
	for i, lead := range leads {
		results[i] = Classify(lead.Actions, now)
	}
	return results
}
