// Package view derives filtered, search-matched projections over fetched
// collections. Projections are pure: the hosting layer re-invokes them
// whenever the source collection or a filter value changes.
package view

import (
	"sort"
	"strings"

	"commbot/model"
)

// matchesSearch reports whether any field contains term, case-insensitive.
// An empty term matches everything.
func matchesSearch(term string, fields ...string) bool {
	if term == "" {
		return true
	}
	term = strings.ToLower(term)
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), term) {
			return true
		}
	}
	return false
}

// CommitteeFilter selects committees. Nil pointer filters mean "no filter";
// all predicates compose with AND.
type CommitteeFilter struct {
	Search   string
	Category *model.CommitteeCategory
	Voting   *bool
}

// Committees projects the source through the filter. Ordering is inherited
// from the source collection.
func Committees(src []model.Committee, f CommitteeFilter) []model.Committee {
	out := make([]model.Committee, 0, len(src))
	for _, c := range src {
		if !matchesSearch(f.Search, c.Name, c.Description, string(c.Category)) {
			continue
		}
		if f.Category != nil && c.Category != *f.Category {
			continue
		}
		if f.Voting != nil && c.EnableVoting != *f.Voting {
			continue
		}
		out = append(out, c)
	}
	return out
}

// MemberFilter selects members; same nil and AND semantics.
type MemberFilter struct {
	Search string
	Role   *model.MemberRole
	Status *model.MemberStatus
}

// Members projects the source through the filter, sorted alphabetically by
// first name.
func Members(src []model.Member, f MemberFilter) []model.Member {
	out := make([]model.Member, 0, len(src))
	for _, m := range src {
		if !matchesSearch(f.Search, m.FirstName, m.LastName, m.Email, m.Organization) {
			continue
		}
		if f.Role != nil && m.Role != *f.Role {
			continue
		}
		if f.Status != nil && m.Status != *f.Status {
			continue
		}
		out = append(out, m)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return strings.ToLower(out[i].FirstName) < strings.ToLower(out[j].FirstName)
	})
	return out
}

// MeetingFilter selects meetings; same nil and AND semantics.
type MeetingFilter struct {
	Search     string
	Visibility *model.MeetingVisibility
}

func Meetings(src []model.Meeting, f MeetingFilter) []model.Meeting {
	out := make([]model.Meeting, 0, len(src))
	for _, m := range src {
		if !matchesSearch(f.Search, m.Title, m.Description) {
			continue
		}
		if f.Visibility != nil && m.Visibility != *f.Visibility {
			continue
		}
		out = append(out, m)
	}
	return out
}

// Registrants projects meeting registrants, sorted by first name like the
// member list.
func Registrants(src []model.Registrant, search string) []model.Registrant {
	out := make([]model.Registrant, 0, len(src))
	for _, r := range src {
		if !matchesSearch(search, r.FirstName, r.LastName, r.Email, r.Organization) {
			continue
		}
		out = append(out, r)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return strings.ToLower(out[i].FirstName) < strings.ToLower(out[j].FirstName)
	})
	return out
}
