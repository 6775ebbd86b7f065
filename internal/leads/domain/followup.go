package domain

import (
	"strconv"
	"strings"
	"time"
)

// CommitmentKind tags which encoding a follow-up value was written in.
// Stored actions carry no version marker, so every encoding stays accepted.
type CommitmentKind int

const (
	// CommitmentUnspecified means no usable commitment: empty, a stage token,
	// or text that is neither an offset nor a date.
	CommitmentUnspecified CommitmentKind = iota
	// CommitmentToday is the literal "Today": due on the day it was logged.
	CommitmentToday
	// CommitmentOffset is a whole number of days after the action was logged.
	CommitmentOffset
	// CommitmentAbsolute is an explicit calendar date.
	CommitmentAbsolute
)

func (k CommitmentKind) String() string {
	switch k {
	case CommitmentToday:
		return "today"
	case CommitmentOffset:
		return "offset"
	case CommitmentAbsolute:
		return "absolute"
	default:
		return "unspecified"
	}
}

// Commitment is the normalized form of an action's follow-up value.
type Commitment struct {
	Kind       CommitmentKind
	Date       Date
	OffsetDays int
}

// Specified reports whether the commitment resolved to a calendar day.
func (c Commitment) Specified() bool {
	return c.Kind != CommitmentUnspecified
}

type dateLayout struct {
	layout string
	// zoned layouts carry an offset and are moved into the evaluation
	// location before the day is taken.
	zoned bool
}

var absoluteLayouts = []dateLayout{
	{layout: "2006-01-02"},
	{layout: "2006/01/02"},
	{layout: time.RFC3339Nano, zoned: true},
	{layout: "2006-01-02T15:04:05"},
	{layout: "2006-01-02T15:04"},
	{layout: "2006-01-02 15:04:05"},
	{layout: "2006-01-02 15:04"},
	{layout: "Jan 2, 2006"},
	{layout: "January 2, 2006"},
	{layout: "2 Jan 2006"},
	{layout: "2 January 2006"},
}

// NormalizeFollowUp interprets a raw follow-up value logged at actionCreatedAt.
// Days are taken in loc; a nil loc uses actionCreatedAt's own location.
// Unparseable input yields an unspecified commitment, never an error.
func NormalizeFollowUp(nextFollowUp string, actionCreatedAt time.Time, loc *time.Location) Commitment {
	if loc == nil {
		loc = actionCreatedAt.Location()
	}

	value := strings.TrimSpace(nextFollowUp)
	if value == "" {
		return Commitment{}
	}

	loggedOn := DateOf(actionCreatedAt.In(loc))

	if value == TokenToday {
		return Commitment{Kind: CommitmentToday, Date: loggedOn}
	}

	if days, err := strconv.Atoi(value); err == nil {
		return Commitment{Kind: CommitmentOffset, Date: loggedOn.AddDays(days), OffsetDays: days}
	}

	if date, ok := parseAbsoluteDate(value, loc); ok {
		return Commitment{Kind: CommitmentAbsolute, Date: date}
	}

	return Commitment{}
}

func parseAbsoluteDate(value string, loc *time.Location) (Date, bool) {
	for _, candidate := range absoluteLayouts {
		parsed, err := time.Parse(candidate.layout, value)
		if err != nil {
			continue
		}
		if candidate.zoned {
			parsed = parsed.In(loc)
		}
		return DateOf(parsed), true
	}
	return Date{}, false
}
