package projections

import (
	"strings"

	"lideranca/internal/domain/announcement"
	"lideranca/internal/domain/cell"
	"lideranca/internal/domain/leader"
	"lideranca/internal/domain/member"
	"lideranca/internal/domain/ministry"
)

// BOM prefixes every report so spreadsheet tools detect UTF-8 and
// render the accented names correctly.
const BOM = "\uFEFF"

// Separator between report columns. Semicolons, because the target
// locale uses commas inside numbers and free text.
const Separator = ";"

// csvField strips separators and collapses line breaks so a field can
// never span rows.
func csvField(s string) string {
	s = strings.ReplaceAll(s, "\r\n", " ")
	s = strings.ReplaceAll(s, "\n", " ")
	s = strings.ReplaceAll(s, "\r", " ")
	s = strings.ReplaceAll(s, Separator, ",")
	return s
}

func csvDocument(header string, rows [][]string) string {
	var b strings.Builder
	b.WriteString(BOM)
	b.WriteString(header)
	b.WriteString("\n")
	for _, row := range rows {
		for i, field := range row {
			if i > 0 {
				b.WriteString(Separator)
			}
			b.WriteString(csvField(field))
		}
		b.WriteString("\n")
	}
	return b.String()
}

// MembersCSV builds the member report. Cell references are resolved to
// names; broken ones degrade to the placeholder.
func MembersCSV(members []member.Member, cells []cell.Cell) string {
	rows := make([][]string, 0, len(members))
	for _, m := range members {
		rows = append(rows, []string{
			m.Name,
			m.Phone,
			FormatDisplayDate(m.Birthday),
			CellName(cells, m.CellID),
			m.Role,
		})
	}
	return csvDocument("Nome;Telefone;Aniversario;Celula;Funcao", rows)
}

// LeadersCSV builds the leadership report.
func LeadersCSV(leaders []leader.Leader, ministries []ministry.Ministry) string {
	rows := make([][]string, 0, len(leaders))
	for _, l := range leaders {
		rows = append(rows, []string{
			l.Name,
			l.Phone,
			FormatDisplayDate(l.Birthday),
			MinistryName(ministries, l.MinistryID),
			l.Role,
		})
	}
	return csvDocument("Nome;Telefone;Aniversario;Ministerio;Funcao", rows)
}

// CellsCSV builds the cell report.
func CellsCSV(cells []cell.Cell) string {
	rows := make([][]string, 0, len(cells))
	for _, c := range cells {
		rows = append(rows, []string{
			c.Name,
			c.Leader,
			c.CoLeader,
			c.Address,
			c.MeetingDay,
			c.MeetingTime,
			c.MeetingType,
		})
	}
	return csvDocument("Nome;Lider;Co-Lider;Endereco;Dia;Hora;Tipo", rows)
}

// MinistriesCSV builds the ministry report with resolved leader names.
func MinistriesCSV(ministries []ministry.Ministry, leaders []leader.Leader) string {
	rows := make([][]string, 0, len(ministries))
	for _, m := range ministries {
		rows = append(rows, []string{
			m.Name,
			MinistryLeaderName(leaders, m),
			m.Description,
		})
	}
	return csvDocument("Nome;Lider Responsavel;Descricao", rows)
}

// AnnouncementsCSV builds the announcement report. Content line breaks
// are collapsed so each record stays on one row.
func AnnouncementsCSV(announcements []announcement.Announcement) string {
	rows := make([][]string, 0, len(announcements))
	for _, a := range announcements {
		rows = append(rows, []string{
			a.Date,
			a.Category,
			a.Title,
			a.Content,
		})
	}
	return csvDocument("Data;Categoria;Titulo;Conteudo", rows)
}
