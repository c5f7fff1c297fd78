package handler

import (
	"fmt"
	"strings"

	"commbot/model"
)

func renderCommitteeList(committees []model.Committee) string {
	if len(committees) == 0 {
		return "No committees match."
	}
	var sb strings.Builder
	sb.WriteString("Committees:\n")
	for _, c := range committees {
		voting := "voting off"
		if c.EnableVoting {
			voting = "voting on"
		}
		fmt.Fprintf(&sb, "- %s (%s, %s)\n  id: %s\n", c.Name, c.Category, voting, c.ID)
	}
	return sb.String()
}

func renderCommitteeDetail(c model.Committee, members []model.Member) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s\nCategory: %s\n", c.Name, c.Category)
	if c.Description != "" {
		fmt.Fprintf(&sb, "%s\n", c.Description)
	}
	fmt.Fprintf(&sb, "Voting: %v, Public: %v\n", c.EnableVoting, c.Public)
	if len(members) == 0 {
		sb.WriteString("No members yet.")
		return sb.String()
	}
	sb.WriteString("Members:\n")
	for _, m := range members {
		fmt.Fprintf(&sb, "- %s <%s> — %s, %s\n", m.FullName(), m.Email, m.Organization, m.Role)
	}
	return sb.String()
}

func renderMeetingList(meetings []model.Meeting) string {
	if len(meetings) == 0 {
		return "No meetings match."
	}
	var sb strings.Builder
	sb.WriteString("Meetings:\n")
	for _, m := range meetings {
		fmt.Fprintf(&sb, "- %s at %s (%s)\n  id: %s\n",
			m.Title, model.FormatStartTime(m.StartTime), m.Recurrence.Summary(), m.ID)
	}
	return sb.String()
}

func renderMeetingDetail(m model.Meeting, registrants []model.Registrant) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s\nStarts: %s (%d min)\nRepeats: %s\nVisibility: %s\n",
		m.Title, model.FormatStartTime(m.StartTime), m.DurationMinutes, m.Recurrence.Summary(), m.Visibility)
	if m.Description != "" {
		fmt.Fprintf(&sb, "%s\n", m.Description)
	}
	if len(registrants) == 0 {
		sb.WriteString("No registrants yet.")
		return sb.String()
	}
	sb.WriteString("Registrants:\n")
	for _, r := range registrants {
		host := ""
		if r.Host {
			host = " (host)"
		}
		fmt.Fprintf(&sb, "- %s <%s> — %s%s\n", r.FirstName+" "+r.LastName, r.Email, r.Organization, host)
	}
	return sb.String()
}

// renderMemberWorkingSet shows the ledger's current view inside the members
// step, numbered so "remove N" can reference entries.
func renderMemberWorkingSet(members []model.Member) string {
	if len(members) == 0 {
		return "No members yet. Send 'add' to add one, or 'done' to finish."
	}
	var sb strings.Builder
	sb.WriteString("Current members:\n")
	for i, m := range members {
		fmt.Fprintf(&sb, "%d. %s <%s> — %s\n", i+1, m.FullName(), m.Email, m.Role)
	}
	sb.WriteString("Send 'add', 'remove <n>', or 'done'.")
	return sb.String()
}

func renderRegistrantWorkingSet(regs []model.Registrant) string {
	if len(regs) == 0 {
		return "No registrants yet. Send 'add' to add one, or 'done' to finish."
	}
	var sb strings.Builder
	sb.WriteString("Current registrants:\n")
	for i, r := range regs {
		fmt.Fprintf(&sb, "%d. %s <%s>\n", i+1, r.FirstName+" "+r.LastName, r.Email)
	}
	sb.WriteString("Send 'add', 'remove <n>', or 'done'.")
	return sb.String()
}
