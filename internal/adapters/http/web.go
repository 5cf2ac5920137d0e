// Package web serves the leadership console over HTTP.
package web

import (
	"crypto/rand"
	"encoding/hex"
	"log"
	"net/http"
	"os"
	"time"

	"lideranca/internal/adapters/ai"
	"lideranca/internal/adapters/email"
	"lideranca/internal/adapters/http/middleware"
	"lideranca/internal/adapters/storage/docstore"
	"lideranca/internal/application/mirror"
	"lideranca/internal/application/notify"
	"lideranca/internal/application/session"
)

// App bundles every dependency the handlers need.
type App struct {
	Gate        *session.Gate
	Mirrors     *mirror.Set
	Edit        *session.EditSession
	Notifier    *notify.Notifier
	Attachments *session.AttachmentCache
	Store       docstore.Store
	Generator   ai.Generator
	Sender      email.Sender
	BulletinTo  []string

	sessions *middleware.SessionStore
}

// RateLimitPerSecond controls the per-IP rate limit. Tests can increase this.
var RateLimitPerSecond = 10

// loadCSRFKey reads the CSRF secret from LIDERANCA_CSRF_KEY (hex-encoded, 32 bytes).
// In production, the key MUST be set. In development, a random key is generated per startup.
func loadCSRFKey() []byte {
	if keyHex := os.Getenv("LIDERANCA_CSRF_KEY"); keyHex != "" {
		key, err := hex.DecodeString(keyHex)
		if err != nil || len(key) != 32 {
			log.Fatal("LIDERANCA_CSRF_KEY must be 64 hex characters (32 bytes)")
		}
		return key
	}
	if os.Getenv("LIDERANCA_ENV") == "production" {
		log.Fatal("LIDERANCA_CSRF_KEY is required in production")
	}
	key := make([]byte, 32)
	if _, err := rand.Read(key); err != nil {
		log.Fatalf("failed to generate CSRF key: %v", err)
	}
	log.Println("WARNING: using random CSRF key (sessions won't survive restart). Set LIDERANCA_CSRF_KEY for production.")
	return key
}

// NewMux wires HTTP handlers for the console.
func NewMux(app *App) http.Handler {
	app.sessions = middleware.NewSessionStore()
	middleware.SecureCookies = os.Getenv("LIDERANCA_ENV") == "production"

	mux := http.NewServeMux()
	app.registerRoutes(mux)

	csrfKey := loadCSRFKey()
	limiter := middleware.NewRateLimiter(RateLimitPerSecond, time.Second)

	// Apply middleware: Auth -> CSRF -> SecurityHeaders -> RateLimit -> Mux
	return middleware.Chain(mux,
		middleware.SecurityHeaders,
		middleware.CSRF(csrfKey),
		middleware.Auth(app.sessions),
		middleware.RateLimit(limiter),
	)
}

func (app *App) registerRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /login", app.handleLoginPage)
	mux.HandleFunc("POST /login", app.handleLogin)
	mux.HandleFunc("POST /logout", app.handleLogout)

	protected := func(h http.HandlerFunc) http.Handler {
		return middleware.RequireAuth(h)
	}

	mux.Handle("GET /{$}", protected(app.handleHome))

	// One list, form and mutation surface per collection.
	for _, res := range resources {
		res := res
		mux.Handle("GET /"+res.Path, protected(app.handleList(res)))
		mux.Handle("GET /"+res.Path+"/novo", protected(app.handleNew(res)))
		mux.Handle("GET /"+res.Path+"/editar/{id}", protected(app.handleEdit(res)))
		mux.Handle("GET /"+res.Path+"/ver/{id}", protected(app.handleView(res)))
		mux.Handle("POST /"+res.Path+"/salvar", protected(app.handleSave(res)))
		mux.Handle("POST /"+res.Path+"/excluir", protected(app.handleRequestDelete(res)))
	}
	mux.Handle("POST /excluir/confirmar", protected(app.handleConfirmDelete))
	mux.Handle("POST /excluir/cancelar", protected(app.handleCancelDelete))
	mux.Handle("POST /editar/cancelar", protected(app.handleCancelEdit))
	mux.Handle("POST /notificacao/fechar", protected(app.handleDismissNotification))

	mux.Handle("GET /aniversariantes", protected(app.handleBirthdays))
	mux.Handle("GET /relatorios", protected(app.handleReports))
	mux.Handle("GET /relatorios/csv", protected(app.handleReportCSV))
	mux.Handle("GET /relatorios/imprimir", protected(app.handlePrintReport))
	mux.Handle("GET /estudos/pdf/{locator}", protected(app.handleStudyPDF))

	mux.Handle("POST /palavra/gerar", protected(app.handleGenerateWord))
	mux.Handle("POST /estudos/expandir", protected(app.handleExpandStudy))
	mux.Handle("POST /boletim/enviar", protected(app.handleSendBulletin))
}
