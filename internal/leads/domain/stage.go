// Package domain provides core business rules for the leads bounded context:
// follow-up normalization, latest-action selection and lead classification.
// Nothing in this package performs I/O or reads the wall clock.
package domain

const (
	// TokenClose marks the lead as closed when it is the latest follow-up value.
	TokenClose = "close"
	// TokenOnboard marks the lead as onboarded when it is the latest follow-up value.
	TokenOnboard = "onboard"
	// TokenToday commits the follow-up to the day the action was logged.
	TokenToday = "Today"
)

// Stage is a lead's life-cycle classification.
type Stage string

const (
	StageActive    Stage = "active"
	StageClosed    Stage = "closed"
	StageOnboarded Stage = "onboarded"
)

// DueStatus relates a lead's follow-up commitment to the evaluation day.
type DueStatus string

const (
	DueStatusDueToday      DueStatus = "due_today"
	DueStatusOverdue       DueStatus = "overdue"
	DueStatusPending       DueStatus = "pending"
	DueStatusNoCommitment  DueStatus = "no_commitment"
	DueStatusNotApplicable DueStatus = "not_applicable"
)

var terminalStages = map[Stage]bool{
	StageClosed:    true,
	StageOnboarded: true,
}

// IsTerminal reports whether the stage carries no follow-up obligation.
// A terminal lead is still reopened by any later action without a stage token.
func (s Stage) IsTerminal() bool {
	return terminalStages[s]
}

// stageForFollowUp maps the stored follow-up value of the latest action to a
// stage. The comparison is literal, with no trimming or case folding: "Close"
// or " close" do not close a lead. Values logged through the service are
// trimmed before they are stored, so only imported history can carry padding.
func stageForFollowUp(nextFollowUp string) Stage {
	switch nextFollowUp {
	case TokenClose:
		return StageClosed
	case TokenOnboard:
		return StageOnboarded
	default:
		return StageActive
	}
}
