package domain

import (
	"fmt"
	"strings"
)

// View is one of the listing filters exposed to staff.
type View string

const (
	ViewAll       View = "all"
	ViewActive    View = "active"
	ViewClosed    View = "closed"
	ViewOnboarded View = "onboarded"
	ViewDueToday  View = "due_today"
	ViewOverdue   View = "overdue"
)

var allViews = []View{ViewAll, ViewActive, ViewClosed, ViewOnboarded, ViewDueToday, ViewOverdue}

// Views returns every supported view in display order.
func Views() []View {
	out := make([]View, len(allViews))
	copy(out, allViews)
	return out
}

// ParseView resolves a query value; empty means ViewAll.
func ParseView(raw string) (View, error) {
	value := strings.ToLower(strings.TrimSpace(raw))
	if value == "" {
		return ViewAll, nil
	}
	for _, v := range allViews {
		if string(v) == value {
			return v, nil
		}
	}
	return "", fmt.Errorf("unknown view %q", raw)
}

// Matches reports whether a classified lead belongs in the view.
func (v View) Matches(c Classification) bool {
	switch v {
	case ViewAll:
		return true
	case ViewActive:
		return c.Stage == StageActive
	case ViewClosed:
		return c.Stage == StageClosed
	case ViewOnboarded:
		return c.Stage == StageOnboarded
	case ViewDueToday:
		return c.Stage == StageActive && c.DueStatus == DueStatusDueToday
	case ViewOverdue:
		return c.Stage == StageActive && c.DueStatus == DueStatusOverdue
	default:
		return false
	}
}
