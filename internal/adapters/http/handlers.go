package web

import (
	"bytes"
	"fmt"
	"html/template"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/csrf"
	"github.com/yuin/goldmark"
	goldmarkHTML "github.com/yuin/goldmark/renderer/html"

	"lideranca/internal/adapters/http/middleware"
	"lideranca/internal/adapters/storage/docstore"
	"lideranca/internal/application/orchestrators"
	"lideranca/internal/application/projections"
	"lideranca/internal/application/session"
	"lideranca/internal/domain/announcement"
	"lideranca/internal/domain/cell"
	"lideranca/internal/domain/leader"
	"lideranca/internal/domain/member"
	"lideranca/internal/domain/ministry"
	"lideranca/internal/domain/pastorword"
	"lideranca/internal/domain/study"
	"lideranca/internal/domain/track"
)

// timeNow is a variable for testability.
var timeNow = time.Now

// mdRenderer is a goldmark instance configured for safe HTML output.
// Raw HTML in markdown input is escaped (WithUnsafe is NOT set), preventing XSS.
var mdRenderer = goldmark.New(
	goldmark.WithRendererOptions(
		goldmarkHTML.WithHardWraps(),
	),
)

// resource describes one collection's HTTP surface.
type resource struct {
	Path       string
	Collection string
	Title      string
	Fields     []string // form field names, also the document field keys
}

var resources = []resource{
	{"membros", docstore.CollectionMembers, "Membros",
		[]string{"name", "phone", "birthday", "cellId", "role", "joinedAt"}},
	{"celulas", docstore.CollectionCells, "Células",
		[]string{"name", "leader", "coLeader", "address", "meetingDay", "meetingTime", "meetingType"}},
	{"lideres", docstore.CollectionLeaders, "Líderes",
		[]string{"name", "phone", "birthday", "ministryId", "role", "joinedAt"}},
	{"ministerios", docstore.CollectionMinistries, "Ministérios",
		[]string{"name", "description", "leaderId"}},
	{"estudos", docstore.CollectionStudies, "Estudos",
		[]string{"title", "reference", "suggestedPraise", "date", "summary"}},
	{"avisos", docstore.CollectionAnnouncements, "Avisos",
		[]string{"title", "content", "date", "category"}},
	{"palavra", docstore.CollectionPastorWords, "Palavra do Pastor",
		[]string{"theme", "content", "date"}},
	{"louvor", docstore.CollectionTracks, "Louvor",
		[]string{"title", "artist", "spotifyUrl", "youtubeUrl"}},
}

// internalError logs the real error and returns a generic message to the client.
// This prevents leaking internal details per OWASP A05.
func internalError(w http.ResponseWriter, err error) {
	slog.Error("internal_error", "error", err.Error())
	http.Error(w, "internal server error", http.StatusInternalServerError)
}

func renderMarkdown(md string) template.HTML {
	var buf bytes.Buffer
	if err := mdRenderer.Convert([]byte(md), &buf); err != nil {
		return template.HTML(template.HTMLEscapeString(md))
	}
	return template.HTML(buf.String())
}

// pageData is what every rendered page receives.
type pageData struct {
	Title        string
	Email        string
	CSRFField    template.HTML
	Notification *struct {
		Title   string
		Message string
		Kind    string
	}
	Content any
}

func (app *App) render(w http.ResponseWriter, r *http.Request, tmpl *template.Template, title string, content any) {
	email := ""
	if sess, ok := middleware.GetSessionFromContext(r.Context()); ok {
		email = sess.Email
	}
	data := pageData{
		Title:     title,
		Email:     email,
		CSRFField: csrf.TemplateField(r),
		Content:   content,
	}
	if n := app.Notifier.Current(); n != nil {
		data.Notification = &struct {
			Title   string
			Message string
			Kind    string
		}{n.Title, n.Message, string(n.Kind)}
	}
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		internalError(w, err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	buf.WriteTo(w)
}

// --- auth ---

func (app *App) handleLoginPage(w http.ResponseWriter, r *http.Request) {
	app.render(w, r, loginTemplate, "Entrar", nil)
}

func (app *App) handleLogin(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}
	email := strings.TrimSpace(r.FormValue("email"))
	password := r.FormValue("password")

	if err := app.Gate.Login(r.Context(), email, password); err != nil {
		if err == session.ErrLoginInFlight {
			http.Error(w, "login em andamento", http.StatusConflict)
			return
		}
		app.render(w, r, loginTemplate, "Entrar", map[string]string{
			"Error": "E-mail ou senha inválidos.",
		})
		return
	}

	token, err := app.sessions.Create(email)
	if err != nil {
		internalError(w, err)
		return
	}
	middleware.SetSessionCookie(w, token)
	app.notifyTodaysBirthdays()
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// notifyTodaysBirthdays greets the fresh session with today's
// birthdays, if any. Mirrors are populated synchronously on login, so
// this reads them directly.
func (app *App) notifyTodaysBirthdays() {
	today := projections.BirthdaysToday(
		app.Mirrors.Members.Snapshot(), app.Mirrors.Leaders.Snapshot(),
		app.Mirrors.Cells.Snapshot(), app.Mirrors.Ministries.Snapshot(), timeNow(),
	)
	if len(today) == 0 {
		return
	}
	names := make([]string, 0, len(today))
	for _, p := range today {
		name, _, _ := strings.Cut(p.Name, " ")
		names = append(names, name)
	}
	app.Notifier.Success("Aniversariantes de Hoje", strings.Join(names, ", "))
}

func (app *App) handleLogout(w http.ResponseWriter, r *http.Request) {
	app.Gate.Logout()
	app.sessions.Clear()
	middleware.ClearSessionCookie(w)
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

// --- lists and forms ---

func (app *App) handleHome(w http.ResponseWriter, r *http.Request) {
	now := timeNow()
	today := projections.BirthdaysToday(
		app.Mirrors.Members.Snapshot(), app.Mirrors.Leaders.Snapshot(),
		app.Mirrors.Cells.Snapshot(), app.Mirrors.Ministries.Snapshot(), now,
	)
	word, hasWord := projections.LatestWord(app.Mirrors.PastorWords.Snapshot())
	content := map[string]any{
		"Birthdays": today,
		"HasWord":   hasWord,
	}
	if hasWord {
		content["WordTheme"] = word.Theme
		content["WordHTML"] = renderMarkdown(word.Content)
	}
	app.render(w, r, homeTemplate, "Painel", content)
}

// listContent feeds the generic list template.
type listContent struct {
	Resource resource
	Columns  []string
	Rows     []listRow
	Filters  []filterOption
	Filter   string
	Pending  *session.DeleteRequest
}

type listRow struct {
	ID    string
	Cells []string
}

type filterOption struct {
	Value string
	Label string
}

func (app *App) handleList(res resource) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		content := app.buildList(res, r)
		app.render(w, r, listTemplate, res.Title, content)
	}
}

func (app *App) buildList(res resource, r *http.Request) listContent {
	content := listContent{
		Resource: res,
		Filter:   projections.FilterAll,
		Pending:  app.Edit.PendingDelete(),
	}

	switch res.Collection {
	case docstore.CollectionMembers:
		cells := app.Mirrors.Cells.Snapshot()
		filter := r.URL.Query().Get("celula")
		if filter == "" {
			filter = projections.FilterAll
		}
		content.Filter = filter
		content.Filters = cellFilterOptions(cells)
		content.Columns = []string{"Nome", "Telefone", "Aniversário", "Célula", "Função"}
		for _, m := range projections.MembersByCell(app.Mirrors.Members.Snapshot(), filter) {
			content.Rows = append(content.Rows, listRow{ID: m.ID, Cells: []string{
				m.Name, m.Phone, projections.FormatDisplayDate(m.Birthday),
				projections.CellName(cells, m.CellID), m.Role,
			}})
		}
	case docstore.CollectionCells:
		content.Columns = []string{"Nome", "Líder", "Co-Líder", "Endereço", "Dia", "Horário", "Tipo"}
		for _, c := range app.Mirrors.Cells.Snapshot() {
			content.Rows = append(content.Rows, listRow{ID: c.ID, Cells: []string{
				c.Name, c.Leader, c.CoLeader, c.Address, c.MeetingDay, c.MeetingTime, c.MeetingType,
			}})
		}
	case docstore.CollectionLeaders:
		ministries := app.Mirrors.Ministries.Snapshot()
		filter := r.URL.Query().Get("ministerio")
		if filter == "" {
			filter = projections.FilterAll
		}
		content.Filter = filter
		content.Filters = ministryFilterOptions(ministries)
		content.Columns = []string{"Nome", "Telefone", "Aniversário", "Ministério", "Função"}
		for _, l := range projections.LeadersByMinistry(app.Mirrors.Leaders.Snapshot(), filter) {
			content.Rows = append(content.Rows, listRow{ID: l.ID, Cells: []string{
				l.Name, l.Phone, projections.FormatDisplayDate(l.Birthday),
				projections.MinistryName(ministries, l.MinistryID), l.Role,
			}})
		}
	case docstore.CollectionMinistries:
		leaders := app.Mirrors.Leaders.Snapshot()
		content.Columns = []string{"Nome", "Descrição", "Líder"}
		for _, m := range app.Mirrors.Ministries.Snapshot() {
			content.Rows = append(content.Rows, listRow{ID: m.ID, Cells: []string{
				m.Name, m.Description, projections.MinistryLeaderName(leaders, m),
			}})
		}
	case docstore.CollectionStudies:
		content.Columns = []string{"Título", "Referência", "Louvor Sugerido", "Data", "PDF"}
		for _, s := range app.Mirrors.Studies.Snapshot() {
			pdf := ""
			if s.HasPDF() {
				pdf = s.PDFName
			}
			content.Rows = append(content.Rows, listRow{ID: s.ID, Cells: []string{
				s.Title, s.Reference, s.SuggestedPraise, projections.FormatDisplayDate(s.Date), pdf,
			}})
		}
	case docstore.CollectionAnnouncements:
		announcements := app.Mirrors.Announcements.Snapshot()
		if date := r.URL.Query().Get("data"); date != "" {
			content.Filter = date
			announcements = projections.AnnouncementsOnDate(announcements, date)
		}
		content.Columns = []string{"Título", "Data", "Categoria", "Conteúdo"}
		for _, a := range announcements {
			content.Rows = append(content.Rows, listRow{ID: a.ID, Cells: []string{
				a.Title, a.Date, a.Category, a.Content,
			}})
		}
	case docstore.CollectionPastorWords:
		content.Columns = []string{"Tema", "Data"}
		for _, word := range app.Mirrors.PastorWords.Snapshot() {
			content.Rows = append(content.Rows, listRow{ID: word.ID, Cells: []string{
				word.Theme, projections.FormatDisplayDate(word.Date),
			}})
		}
	case docstore.CollectionTracks:
		content.Columns = []string{"Título", "Artista", "Spotify", "YouTube"}
		for _, tr := range app.Mirrors.Tracks.Snapshot() {
			content.Rows = append(content.Rows, listRow{ID: tr.ID, Cells: []string{
				tr.Title, tr.Artist, tr.SpotifyURL, tr.YouTubeURL,
			}})
		}
	}
	return content
}

func cellFilterOptions(cells []cell.Cell) []filterOption {
	opts := []filterOption{{projections.FilterAll, "Todas"}}
	for _, c := range cells {
		opts = append(opts, filterOption{c.ID, c.Name})
	}
	return opts
}

func ministryFilterOptions(ministries []ministry.Ministry) []filterOption {
	opts := []filterOption{{projections.FilterAll, "Todos"}}
	for _, m := range ministries {
		opts = append(opts, filterOption{m.ID, m.Name})
	}
	return opts
}

// formContent feeds the generic form template.
type formContent struct {
	Resource resource
	ID       string
	Values   map[string]string
	IsStudy  bool
	IsWord   bool
}

func (app *App) handleNew(res resource) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		app.Edit.Open(res.Collection, "")
		app.render(w, r, formTemplate, res.Title, formContent{
			Resource: res,
			Values:   map[string]string{},
			IsStudy:  res.Collection == docstore.CollectionStudies,
			IsWord:   res.Collection == docstore.CollectionPastorWords,
		})
	}
}

func (app *App) handleEdit(res resource) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := r.PathValue("id")
		values, ok := app.recordValues(res.Collection, id)
		if !ok {
			// The record may have been deleted from another session
			// after this page linked to it. The form still opens,
			// with empty defaults.
			values = map[string]string{}
		}
		app.Edit.Open(res.Collection, id)
		app.render(w, r, formTemplate, res.Title, formContent{
			Resource: res,
			ID:       id,
			Values:   values,
			IsStudy:  res.Collection == docstore.CollectionStudies,
			IsWord:   res.Collection == docstore.CollectionPastorWords,
		})
	}
}

// recordValues reads the current record from the mirrors, keyed by
// form field name.
func (app *App) recordValues(collection, id string) (map[string]string, bool) {
	fields := func(m map[string]any) map[string]string {
		out := make(map[string]string, len(m))
		for k, v := range m {
			if s, ok := v.(string); ok {
				out[k] = s
			}
		}
		return out
	}
	switch collection {
	case docstore.CollectionMembers:
		for _, v := range app.Mirrors.Members.Snapshot() {
			if v.ID == id {
				return fields(v.Fields()), true
			}
		}
	case docstore.CollectionCells:
		for _, v := range app.Mirrors.Cells.Snapshot() {
			if v.ID == id {
				return fields(v.Fields()), true
			}
		}
	case docstore.CollectionLeaders:
		for _, v := range app.Mirrors.Leaders.Snapshot() {
			if v.ID == id {
				return fields(v.Fields()), true
			}
		}
	case docstore.CollectionMinistries:
		for _, v := range app.Mirrors.Ministries.Snapshot() {
			if v.ID == id {
				return fields(v.Fields()), true
			}
		}
	case docstore.CollectionStudies:
		for _, v := range app.Mirrors.Studies.Snapshot() {
			if v.ID == id {
				return fields(v.Fields()), true
			}
		}
	case docstore.CollectionAnnouncements:
		for _, v := range app.Mirrors.Announcements.Snapshot() {
			if v.ID == id {
				return fields(v.Fields()), true
			}
		}
	case docstore.CollectionPastorWords:
		for _, v := range app.Mirrors.PastorWords.Snapshot() {
			if v.ID == id {
				return fields(v.Fields()), true
			}
		}
	case docstore.CollectionTracks:
		for _, v := range app.Mirrors.Tracks.Snapshot() {
			if v.ID == id {
				return fields(v.Fields()), true
			}
		}
	}
	return nil, false
}

// maxUploadBytes caps study PDF uploads at 10 MiB.
const maxUploadBytes = 10 << 20

func (app *App) handleSave(res resource) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if res.Collection == docstore.CollectionStudies {
			if err := r.ParseMultipartForm(maxUploadBytes); err != nil && err != http.ErrNotMultipart {
				http.Error(w, "bad request", http.StatusBadRequest)
				return
			}
		} else if err := r.ParseForm(); err != nil {
			http.Error(w, "bad request", http.StatusBadRequest)
			return
		}

		fields := make(map[string]any, len(res.Fields))
		for _, name := range res.Fields {
			fields[name] = strings.TrimSpace(r.FormValue(name))
		}

		if err := validateFields(res.Collection, fields); err != nil {
			http.Error(w, err.Error(), http.StatusUnprocessableEntity)
			return
		}

		if res.Collection == docstore.CollectionStudies && r.MultipartForm != nil {
			if file, header, err := r.FormFile("pdf"); err == nil {
				data, readErr := io.ReadAll(file)
				file.Close()
				if readErr != nil {
					internalError(w, readErr)
					return
				}
				if err := app.Edit.AttachPDF(header.Filename, data); err != nil {
					http.Error(w, err.Error(), http.StatusConflict)
					return
				}
			}
		}

		if err := app.Edit.Save(r.Context(), fields); err != nil {
			switch err {
			case session.ErrSaveInFlight:
				http.Error(w, "salvamento em andamento", http.StatusConflict)
			case session.ErrNoEditSession:
				http.Error(w, "nenhuma edição aberta", http.StatusConflict)
			default:
				// The alert banner is already up and the session stays
				// open; re-render the form with the submitted values so
				// nothing the user typed is lost.
				_, id, _ := app.Edit.Editing()
				values := make(map[string]string, len(fields))
				for k, v := range fields {
					if s, ok := v.(string); ok {
						values[k] = s
					}
				}
				app.render(w, r, formTemplate, res.Title, formContent{
					Resource: res,
					ID:       id,
					Values:   values,
					IsStudy:  res.Collection == docstore.CollectionStudies,
					IsWord:   res.Collection == docstore.CollectionPastorWords,
				})
			}
			return
		}
		http.Redirect(w, r, "/"+res.Path, http.StatusSeeOther)
	}
}

// validateFields runs the domain validation for one collection.
func validateFields(collection string, fields map[string]any) error {
	switch collection {
	case docstore.CollectionMembers:
		v := member.FromFields("", fields)
		return v.Validate()
	case docstore.CollectionCells:
		v := cell.FromFields("", fields)
		return v.Validate()
	case docstore.CollectionLeaders:
		v := leader.FromFields("", fields)
		return v.Validate()
	case docstore.CollectionMinistries:
		v := ministry.FromFields("", fields)
		return v.Validate()
	case docstore.CollectionStudies:
		v := study.FromFields("", fields)
		return v.Validate()
	case docstore.CollectionAnnouncements:
		v := announcement.FromFields("", fields)
		return v.Validate()
	case docstore.CollectionPastorWords:
		v := pastorword.FromFields("", fields)
		return v.Validate()
	case docstore.CollectionTracks:
		v := track.FromFields("", fields)
		return v.Validate()
	}
	return fmt.Errorf("unknown collection %q", collection)
}

func (app *App) handleCancelEdit(w http.ResponseWriter, r *http.Request) {
	app.Edit.Close()
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// --- deletes ---

func (app *App) handleRequestDelete(res resource) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "bad request", http.StatusBadRequest)
			return
		}
		id := r.FormValue("id")
		if id == "" {
			http.Error(w, "bad request", http.StatusBadRequest)
			return
		}
		app.Edit.RequestDelete(res.Collection, id)
		http.Redirect(w, r, "/"+res.Path, http.StatusSeeOther)
	}
}

func (app *App) handleConfirmDelete(w http.ResponseWriter, r *http.Request) {
	req := app.Edit.PendingDelete()
	if err := app.Edit.ConfirmDelete(r.Context()); err != nil && err != session.ErrNoPendingDelete {
		// Banner already reports the failure.
		slog.Error("delete_failed", "error", err)
	}
	target := "/"
	if req != nil {
		for _, res := range resources {
			if res.Collection == req.Collection {
				target = "/" + res.Path
				break
			}
		}
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
}

func (app *App) handleCancelDelete(w http.ResponseWriter, r *http.Request) {
	app.Edit.CancelDelete()
	http.Redirect(w, r, backTarget(r), http.StatusSeeOther)
}

func (app *App) handleDismissNotification(w http.ResponseWriter, r *http.Request) {
	app.Notifier.Dismiss()
	http.Redirect(w, r, backTarget(r), http.StatusSeeOther)
}

// backTarget sends the user back where they came from, defaulting to
// the dashboard. Only same-site paths are honored.
func backTarget(r *http.Request) string {
	ref := r.Header.Get("Referer")
	if strings.HasPrefix(ref, "/") {
		return ref
	}
	return "/"
}

// --- detail views ---

// longFields are rendered as markdown blocks on detail pages.
var longFields = map[string]bool{"content": true, "description": true, "summary": true}

func (app *App) handleView(res resource) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := r.PathValue("id")
		values, ok := app.recordValues(res.Collection, id)
		if !ok {
			http.NotFound(w, r)
			return
		}
		type field struct {
			Name string
			Text string
			HTML template.HTML
		}
		fields := make([]field, 0, len(res.Fields))
		for _, name := range res.Fields {
			f := field{Name: name}
			if longFields[name] {
				f.HTML = renderMarkdown(values[name])
			} else {
				f.Text = values[name]
			}
			fields = append(fields, f)
		}
		app.render(w, r, viewTemplate, res.Title, map[string]any{
			"Resource": res,
			"ID":       id,
			"Fields":   fields,
		})
	}
}

// --- birthdays and reports ---

func (app *App) handleBirthdays(w http.ResponseWriter, r *http.Request) {
	now := timeNow()
	month := projections.BirthdaysInMonth(
		app.Mirrors.Members.Snapshot(), app.Mirrors.Leaders.Snapshot(),
		app.Mirrors.Cells.Snapshot(), app.Mirrors.Ministries.Snapshot(), now,
	)
	type entry struct {
		projections.BirthdayPerson
		WhatsApp string
	}
	entries := make([]entry, 0, len(month))
	for _, p := range month {
		entries = append(entries, entry{p, projections.WhatsAppLink(p.Phone)})
	}
	app.render(w, r, birthdaysTemplate, "Aniversariantes", map[string]any{
		"Month":   now.Format("01/2006"),
		"Entries": entries,
	})
}

func (app *App) handleReports(w http.ResponseWriter, r *http.Request) {
	app.render(w, r, reportsTemplate, "Relatórios", nil)
}

// handlePrintReport renders every roster on a single printable page.
func (app *App) handlePrintReport(w http.ResponseWriter, r *http.Request) {
	sections := make([]listContent, 0, len(resources))
	for _, res := range resources {
		sections = append(sections, app.buildList(res, r))
	}
	app.render(w, r, printTemplate, "Impressão", map[string]any{
		"Date":     timeNow().Format("02/01/2006"),
		"Sections": sections,
	})
}

func (app *App) handleReportCSV(w http.ResponseWriter, r *http.Request) {
	kind := r.URL.Query().Get("tipo")
	var doc, name string
	switch kind {
	case "membros":
		doc = projections.MembersCSV(app.Mirrors.Members.Snapshot(), app.Mirrors.Cells.Snapshot())
		name = "membros.csv"
	case "lideres":
		doc = projections.LeadersCSV(app.Mirrors.Leaders.Snapshot(), app.Mirrors.Ministries.Snapshot())
		name = "lideres.csv"
	case "celulas":
		doc = projections.CellsCSV(app.Mirrors.Cells.Snapshot())
		name = "celulas.csv"
	case "ministerios":
		doc = projections.MinistriesCSV(app.Mirrors.Ministries.Snapshot(), app.Mirrors.Leaders.Snapshot())
		name = "ministerios.csv"
	case "avisos":
		doc = projections.AnnouncementsCSV(app.Mirrors.Announcements.Snapshot())
		name = "avisos.csv"
	default:
		http.Error(w, "tipo inválido", http.StatusBadRequest)
		return
	}
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="`+name+`"`)
	io.WriteString(w, doc)
}

func (app *App) handleStudyPDF(w http.ResponseWriter, r *http.Request) {
	locator := session.AttachmentPrefix + r.PathValue("locator")
	att, ok := app.Attachments.Get(locator)
	if !ok {
		http.Error(w, "arquivo não disponível nesta sessão", http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `inline; filename="`+att.Name+`"`)
	w.Write(att.Data)
}

// --- generation and bulletin ---

func (app *App) handleGenerateWord(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}
	theme := strings.TrimSpace(r.FormValue("theme"))
	text := orchestrators.ExecuteGeneratePastorWord(r.Context(), orchestrators.GenerateDeps{Generator: app.Generator}, theme)

	var res resource
	for _, candidate := range resources {
		if candidate.Collection == docstore.CollectionPastorWords {
			res = candidate
		}
	}
	app.Edit.Open(docstore.CollectionPastorWords, r.FormValue("id"))
	app.render(w, r, formTemplate, res.Title, formContent{
		Resource: res,
		ID:       r.FormValue("id"),
		Values:   map[string]string{"theme": theme, "content": text, "date": r.FormValue("date")},
		IsWord:   true,
	})
}

func (app *App) handleExpandStudy(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}
	title := strings.TrimSpace(r.FormValue("title"))
	reference := strings.TrimSpace(r.FormValue("reference"))
	text := orchestrators.ExecuteExpandStudy(r.Context(), orchestrators.GenerateDeps{Generator: app.Generator}, title, reference)

	var res resource
	for _, candidate := range resources {
		if candidate.Collection == docstore.CollectionStudies {
			res = candidate
		}
	}
	app.Edit.Open(docstore.CollectionStudies, r.FormValue("id"))
	app.render(w, r, formTemplate, res.Title, formContent{
		Resource: res,
		ID:       r.FormValue("id"),
		Values: map[string]string{
			"title": title, "reference": reference,
			"suggestedPraise": r.FormValue("suggestedPraise"),
			"date":            r.FormValue("date"),
			"summary":         text,
		},
		IsStudy: true,
	})
}

func (app *App) handleSendBulletin(w http.ResponseWriter, r *http.Request) {
	input := orchestrators.BulletinInput{
		To:            app.BulletinTo,
		Words:         app.Mirrors.PastorWords.Snapshot(),
		Announcements: app.Mirrors.Announcements.Snapshot(),
	}
	if err := orchestrators.ExecuteSendBulletin(r.Context(), orchestrators.BulletinDeps{Sender: app.Sender}, input); err != nil {
		app.Notifier.Alert("Erro", "Não foi possível enviar o boletim.")
	} else {
		app.Notifier.Success("Enviado", "Boletim enviado para a liderança.")
	}
	http.Redirect(w, r, "/palavra", http.StatusSeeOther)
}
