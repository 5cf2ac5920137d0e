package web

import (
	"context"
	"database/sql"
	"errors"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"regexp"
	"strings"
	"testing"
	"time"

	_ "modernc.org/sqlite"

	"lideranca/internal/adapters/ai"
	"lideranca/internal/adapters/email"
	"lideranca/internal/adapters/storage"
	accountStore "lideranca/internal/adapters/storage/account"
	"lideranca/internal/adapters/storage/docstore"
	"lideranca/internal/application/mirror"
	"lideranca/internal/application/notify"
	"lideranca/internal/application/orchestrators"
	"lideranca/internal/application/session"
)

const (
	testEmail    = "pr@igreja.com"
	testPassword = "senha-muito-longa"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	return newTestServerWithStore(t, nil)
}

// newTestServerWithStore wires the console over an explicit document
// store; nil means a fresh SQLite-backed one.
func newTestServerWithStore(t *testing.T, store docstore.Store) *httptest.Server {
	t.Helper()
	RateLimitPerSecond = 1000

	path := filepath.Join(t.TempDir(), "test.db")
	db, err := sql.Open("sqlite", path)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	if err := storage.InitDB(db); err != nil {
		t.Fatalf("init db: %v", err)
	}

	accounts := accountStore.NewSQLiteStore(db)
	seed := orchestrators.SeedAdminInput{Email: testEmail, Password: testPassword}
	if err := orchestrators.ExecuteSeedAdmin(context.Background(), orchestrators.SeedAdminDeps{Accounts: accounts}, seed); err != nil {
		t.Fatalf("seed admin: %v", err)
	}

	if store == nil {
		store = docstore.NewSQLiteStore(db)
	}
	notifier := notify.New()
	mirrors := mirror.NewSet(store, nil)
	attachments := session.NewAttachmentCache()
	gate := session.NewGate(accounts, mirrors)
	edit := session.NewEditSession(store, notifier, attachments, mirrors.Studies)

	app := &App{
		Gate:        gate,
		Mirrors:     mirrors,
		Edit:        edit,
		Notifier:    notifier,
		Attachments: attachments,
		Store:       store,
		Generator:   ai.NewNoopGenerator(),
		Sender:      email.NewNoopSender(),
		BulletinTo:  []string{"lideranca@igreja.example"},
	}

	srv := httptest.NewServer(NewMux(app))
	t.Cleanup(srv.Close)
	return srv
}

func newClient(t *testing.T) *http.Client {
	t.Helper()
	jar, err := cookiejar.New(nil)
	if err != nil {
		t.Fatalf("cookie jar: %v", err)
	}
	return &http.Client{Jar: jar}
}

var csrfTokenRe = regexp.MustCompile(`name="gorilla\.csrf\.Token" value="([^"]+)"`)

// login walks the real login flow and leaves the session cookie in
// the client's jar.
func login(t *testing.T, srv *httptest.Server, client *http.Client) {
	t.Helper()
	resp, err := client.Get(srv.URL + "/login")
	if err != nil {
		t.Fatalf("get login: %v", err)
	}
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	match := csrfTokenRe.FindSubmatch(body)
	if match == nil {
		t.Fatal("no CSRF token on login page")
	}

	form := url.Values{
		"gorilla.csrf.Token": {string(match[1])},
		"email":              {testEmail},
		"password":           {testPassword},
	}
	resp, err = client.PostForm(srv.URL+"/login", form)
	if err != nil {
		t.Fatalf("post login: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("login flow ended with %d", resp.StatusCode)
	}
}

func TestUnauthenticatedRedirectsToLogin(t *testing.T) {
	srv := newTestServer(t)
	client := newClient(t)
	client.CheckRedirect = func(req *http.Request, via []*http.Request) error {
		return http.ErrUseLastResponse
	}

	for _, path := range []string{"/", "/membros", "/relatorios", "/aniversariantes"} {
		resp, err := client.Get(srv.URL + path)
		if err != nil {
			t.Fatalf("get %s: %v", path, err)
		}
		resp.Body.Close()
		if resp.StatusCode != http.StatusSeeOther {
			t.Errorf("GET %s = %d, want 303", path, resp.StatusCode)
		}
		if loc := resp.Header.Get("Location"); loc != "/login" {
			t.Errorf("GET %s redirects to %q, want /login", path, loc)
		}
	}
}

func TestLoginAndBrowse(t *testing.T) {
	srv := newTestServer(t)
	client := newClient(t)
	login(t, srv, client)

	for _, path := range []string{"/", "/membros", "/celulas", "/lideres", "/ministerios", "/estudos", "/avisos", "/palavra", "/louvor", "/aniversariantes", "/relatorios"} {
		resp, err := client.Get(srv.URL + path)
		if err != nil {
			t.Fatalf("get %s: %v", path, err)
		}
		body, _ := io.ReadAll(resp.Body)
		resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			t.Errorf("GET %s = %d, want 200", path, resp.StatusCode)
		}
		if !strings.Contains(string(body), "Liderança") {
			t.Errorf("GET %s missing layout", path)
		}
	}
}

func TestCreateMemberThroughForm(t *testing.T) {
	srv := newTestServer(t)
	client := newClient(t)
	login(t, srv, client)

	resp, err := client.Get(srv.URL + "/membros/novo")
	if err != nil {
		t.Fatalf("get form: %v", err)
	}
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	match := csrfTokenRe.FindSubmatch(body)
	if match == nil {
		t.Fatal("no CSRF token on member form")
	}

	form := url.Values{
		"gorilla.csrf.Token": {string(match[1])},
		"name":               {"Ana"},
		"phone":              {"123"},
		"birthday":           {"1990-03-15"},
		"role":               {"Membro"},
	}
	resp, err = client.PostForm(srv.URL+"/membros/salvar", form)
	if err != nil {
		t.Fatalf("post save: %v", err)
	}
	body, _ = io.ReadAll(resp.Body)
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("save flow ended with %d", resp.StatusCode)
	}
	if !strings.Contains(string(body), "Novo registro adicionado.") {
		t.Error("success notification not shown")
	}

	// The mirror updates through its subscription; poll briefly.
	deadline := time.Now().Add(5 * time.Second)
	for {
		resp, err := client.Get(srv.URL + "/membros")
		if err != nil {
			t.Fatalf("get members: %v", err)
		}
		body, _ := io.ReadAll(resp.Body)
		resp.Body.Close()
		if strings.Contains(string(body), "Ana") {
			break
		}
		if time.Now().After(deadline) {
			t.Fatal("member list never showed the created record")
		}
		time.Sleep(20 * time.Millisecond)
	}
}

// brokenDocs accepts subscriptions but rejects every write.
type brokenDocs struct{}

func (brokenDocs) Subscribe(ctx context.Context, collection string, onSnapshot docstore.SnapshotFunc, onError docstore.ErrorFunc) (func(), error) {
	onSnapshot(nil)
	return func() {}, nil
}

func (brokenDocs) Add(ctx context.Context, collection string, fields map[string]any) (string, error) {
	return "", errors.New("disk full")
}

func (brokenDocs) Update(ctx context.Context, collection, id string, fields map[string]any) error {
	return errors.New("disk full")
}

func (brokenDocs) Delete(ctx context.Context, collection, id string) error {
	return errors.New("disk full")
}

func TestFailedSaveKeepsFormValues(t *testing.T) {
	srv := newTestServerWithStore(t, brokenDocs{})
	client := newClient(t)
	login(t, srv, client)

	resp, err := client.Get(srv.URL + "/membros/novo")
	if err != nil {
		t.Fatalf("get form: %v", err)
	}
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	match := csrfTokenRe.FindSubmatch(body)
	if match == nil {
		t.Fatal("no CSRF token on member form")
	}

	form := url.Values{
		"gorilla.csrf.Token": {string(match[1])},
		"name":               {"Ana"},
		"phone":              {"123"},
		"role":               {"Membro"},
	}
	resp, err = client.PostForm(srv.URL+"/membros/salvar", form)
	if err != nil {
		t.Fatalf("post save: %v", err)
	}
	body, _ = io.ReadAll(resp.Body)
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("failed save = %d, want 200 with the form", resp.StatusCode)
	}
	page := string(body)
	if !strings.Contains(page, `action="/membros/salvar"`) {
		t.Error("form not re-rendered after the failed save")
	}
	if !strings.Contains(page, `value="Ana"`) {
		t.Error("submitted values lost after the failed save")
	}
	if !strings.Contains(page, "Não foi possível salvar no banco de dados.") {
		t.Error("alert banner missing after the failed save")
	}
}

func TestEditVanishedRecordOpensEmptyForm(t *testing.T) {
	srv := newTestServer(t)
	client := newClient(t)
	login(t, srv, client)

	resp, err := client.Get(srv.URL + "/membros/editar/fantasma")
	if err != nil {
		t.Fatalf("get edit: %v", err)
	}
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("edit of vanished record = %d, want 200", resp.StatusCode)
	}
	page := string(body)
	if !strings.Contains(page, `action="/membros/salvar"`) {
		t.Error("form not rendered for vanished record")
	}
	if !strings.Contains(page, `name="name" value=""`) {
		t.Error("form fields not empty for vanished record")
	}
}

func TestSecondBrowserCanLogIn(t *testing.T) {
	srv := newTestServer(t)
	first := newClient(t)
	login(t, srv, first)

	// A second browser hits the login form while the gate is already
	// authenticated; valid credentials must still reach the dashboard.
	second := newClient(t)
	resp, err := second.Get(srv.URL + "/login")
	if err != nil {
		t.Fatalf("get login: %v", err)
	}
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	match := csrfTokenRe.FindSubmatch(body)
	if match == nil {
		t.Fatal("no CSRF token on login page")
	}

	form := url.Values{
		"gorilla.csrf.Token": {string(match[1])},
		"email":              {testEmail},
		"password":           {testPassword},
	}
	resp, err = second.PostForm(srv.URL+"/login", form)
	if err != nil {
		t.Fatalf("post login: %v", err)
	}
	body, _ = io.ReadAll(resp.Body)
	resp.Body.Close()
	if !strings.Contains(string(body), "Painel") {
		t.Error("second browser login did not reach the dashboard")
	}
}

func TestReportCSVDownload(t *testing.T) {
	srv := newTestServer(t)
	client := newClient(t)
	login(t, srv, client)

	resp, err := client.Get(srv.URL + "/relatorios/csv?tipo=membros")
	if err != nil {
		t.Fatalf("get csv: %v", err)
	}
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("csv = %d, want 200", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); !strings.HasPrefix(ct, "text/csv") {
		t.Errorf("content type = %q", ct)
	}
	if !strings.HasPrefix(string(body), "\uFEFF") {
		t.Error("csv missing UTF-8 BOM")
	}
	if !strings.Contains(string(body), "Nome;Telefone;Aniversario;Celula;Funcao") {
		t.Error("csv missing header row")
	}

	resp, err = client.Get(srv.URL + "/relatorios/csv?tipo=desconhecido")
	if err != nil {
		t.Fatalf("get csv: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("unknown tipo = %d, want 400", resp.StatusCode)
	}
}

func TestLogoutClosesConsole(t *testing.T) {
	srv := newTestServer(t)
	client := newClient(t)
	login(t, srv, client)

	resp, err := client.Get(srv.URL + "/membros")
	if err != nil {
		t.Fatalf("get members: %v", err)
	}
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	match := csrfTokenRe.FindSubmatch(body)
	if match == nil {
		t.Fatal("no CSRF token on page")
	}

	form := url.Values{"gorilla.csrf.Token": {string(match[1])}}
	resp, err = client.PostForm(srv.URL+"/logout", form)
	if err != nil {
		t.Fatalf("post logout: %v", err)
	}
	resp.Body.Close()

	noRedirect := newClient(t)
	noRedirect.Jar = client.Jar
	noRedirect.CheckRedirect = func(req *http.Request, via []*http.Request) error {
		return http.ErrUseLastResponse
	}
	resp, err = noRedirect.Get(srv.URL + "/membros")
	if err != nil {
		t.Fatalf("get after logout: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusSeeOther {
		t.Errorf("after logout = %d, want 303 to /login", resp.StatusCode)
	}
}
