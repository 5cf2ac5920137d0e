package projections

import (
	"sort"
	"time"

	"lideranca/internal/domain/cell"
	"lideranca/internal/domain/leader"
	"lideranca/internal/domain/member"
	"lideranca/internal/domain/ministry"
)

// Birthday person types.
const (
	BirthdayMember = "Membro"
	BirthdayLeader = "Líder"
)

// BirthdayPerson is one entry on the birthday board, drawn from either
// the member or the leader roster.
type BirthdayPerson struct {
	Name   string
	Phone  string
	Day    int
	Type   string // BirthdayMember or BirthdayLeader
	Origin string // cell or ministry name
	Today  bool
}

// BirthdaysToday lists everyone whose birthday month and day match the
// given date. The birth year is ignored.
func BirthdaysToday(members []member.Member, leaders []leader.Leader, cells []cell.Cell, ministries []ministry.Ministry, now time.Time) []BirthdayPerson {
	out := make([]BirthdayPerson, 0)
	for _, p := range BirthdaysInMonth(members, leaders, cells, ministries, now) {
		if p.Today {
			out = append(out, p)
		}
	}
	return out
}

// BirthdaysInMonth lists everyone with a birthday in the given date's
// month, sorted by day of month.
func BirthdaysInMonth(members []member.Member, leaders []leader.Leader, cells []cell.Cell, ministries []ministry.Ministry, now time.Time) []BirthdayPerson {
	out := make([]BirthdayPerson, 0)

	for _, m := range members {
		born, ok := ParseCalendarDate(m.Birthday)
		if !ok || born.Month() != now.Month() {
			continue
		}
		origin := PlaceholderNoCell
		if m.CellID != "" {
			if name := CellName(cells, m.CellID); name != PlaceholderNone {
				origin = name
			}
		}
		out = append(out, BirthdayPerson{
			Name:   m.Name,
			Phone:  m.Phone,
			Day:    born.Day(),
			Type:   BirthdayMember,
			Origin: origin,
			Today:  born.Day() == now.Day(),
		})
	}

	for _, l := range leaders {
		born, ok := ParseCalendarDate(l.Birthday)
		if !ok || born.Month() != now.Month() {
			continue
		}
		origin := PlaceholderNoMinistry
		if l.MinistryID != "" {
			for _, m := range ministries {
				if m.ID == l.MinistryID {
					origin = m.Name
					break
				}
			}
		}
		out = append(out, BirthdayPerson{
			Name:   l.Name,
			Phone:  l.Phone,
			Day:    born.Day(),
			Type:   BirthdayLeader,
			Origin: origin,
			Today:  born.Day() == now.Day(),
		})
	}

	sort.SliceStable(out, func(i, j int) bool { return out[i].Day < out[j].Day })
	return out
}
