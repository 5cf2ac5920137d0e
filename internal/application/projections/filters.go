package projections

import (
	"lideranca/internal/domain/announcement"
	"lideranca/internal/domain/cell"
	"lideranca/internal/domain/leader"
	"lideranca/internal/domain/member"
	"lideranca/internal/domain/ministry"
)

// FilterAll is the sentinel filter value meaning "no filter".
const FilterAll = "all"

// Display placeholders for broken or absent references.
const (
	PlaceholderNone       = "N/A"
	PlaceholderNoCell     = "Sem Célula"
	PlaceholderNoMinistry = "Sem Ministério"
	PlaceholderNoLeader   = "NÃO DEFINIDO"
)

// MembersByCell returns the members of one cell, or every member when
// cellID is FilterAll.
func MembersByCell(members []member.Member, cellID string) []member.Member {
	if cellID == FilterAll {
		return members
	}
	out := make([]member.Member, 0)
	for _, m := range members {
		if m.CellID == cellID {
			out = append(out, m)
		}
	}
	return out
}

// LeadersByMinistry returns the leaders of one ministry, or every
// leader when ministryID is FilterAll.
func LeadersByMinistry(leaders []leader.Leader, ministryID string) []leader.Leader {
	if ministryID == FilterAll {
		return leaders
	}
	out := make([]leader.Leader, 0)
	for _, l := range leaders {
		if l.MinistryID == ministryID {
			out = append(out, l)
		}
	}
	return out
}

// CellName resolves a cell reference for display. Broken references
// degrade to PlaceholderNone.
func CellName(cells []cell.Cell, cellID string) string {
	for _, c := range cells {
		if c.ID == cellID {
			return c.Name
		}
	}
	return PlaceholderNone
}

// MinistryName resolves a ministry reference for display.
func MinistryName(ministries []ministry.Ministry, ministryID string) string {
	for _, m := range ministries {
		if m.ID == ministryID {
			return m.Name
		}
	}
	return PlaceholderNone
}

// MinistryLeaderName resolves a ministry's responsible leader for
// display. Ministries without one show PlaceholderNoLeader.
func MinistryLeaderName(leaders []leader.Leader, m ministry.Ministry) string {
	if !m.HasLeader() {
		return PlaceholderNoLeader
	}
	for _, l := range leaders {
		if l.ID == m.LeaderID {
			return l.Name
		}
	}
	return PlaceholderNoLeader
}

// AnnouncementsOnDate returns the announcements whose date falls on
// the given calendar day, regardless of which stored shape either
// side uses.
func AnnouncementsOnDate(announcements []announcement.Announcement, date string) []announcement.Announcement {
	out := make([]announcement.Announcement, 0)
	for _, a := range announcements {
		if SameCalendarDay(a.Date, date) {
			out = append(out, a)
		}
	}
	return out
}

// LatestWord returns the most recently listed pastor word, or ok false
// when none exists. Snapshots arrive in insertion order, so the last
// element is the newest.
func LatestWord[T any](words []T) (T, bool) {
	var zero T
	if len(words) == 0 {
		return zero, false
	}
	return words[len(words)-1], true
}
