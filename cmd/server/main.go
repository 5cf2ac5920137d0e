package main

import (
	"context"
	"database/sql"
	"log"
	"net/http"
	"os"
	"strings"

	_ "modernc.org/sqlite"

	aiPkg "lideranca/internal/adapters/ai"
	emailPkg "lideranca/internal/adapters/email"
	web "lideranca/internal/adapters/http"
	"lideranca/internal/adapters/storage"
	accountStore "lideranca/internal/adapters/storage/account"
	"lideranca/internal/adapters/storage/docstore"
	"lideranca/internal/application/mirror"
	"lideranca/internal/application/notify"
	"lideranca/internal/application/orchestrators"
	"lideranca/internal/application/session"
)

// version is set at build time via -ldflags "-X main.version=..."
var version = "dev"

func main() {
	dbPath := envOrDefault("LIDERANCA_DB", "lideranca.db")
	dsn := dbPath + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=foreign_keys(ON)&_pragma=synchronous(NORMAL)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		log.Fatalf("failed to open database: %v", err)
	}
	defer db.Close()

	// Connection pool settings for WAL mode
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)

	if err := db.Ping(); err != nil {
		log.Fatalf("database unreachable: %v", err)
	}
	if err := storage.InitDB(db); err != nil {
		log.Fatalf("failed to initialize database: %v", err)
	}
	log.Println("Database initialized successfully!")

	accounts := accountStore.NewSQLiteStore(db)
	store := docstore.NewSQLiteStore(db)

	// Seed default admin account if no accounts exist
	adminEmail := envOrDefault("LIDERANCA_ADMIN_EMAIL", "pastor@igreja.example")
	adminPassword := envOrDefault("LIDERANCA_ADMIN_PASSWORD", "mude esta senha")
	seedInput := orchestrators.SeedAdminInput{Email: adminEmail, Password: adminPassword}
	if err := orchestrators.ExecuteSeedAdmin(context.Background(), orchestrators.SeedAdminDeps{Accounts: accounts}, seedInput); err != nil {
		log.Fatalf("failed to seed admin: %v", err)
	}

	// Configure email sender
	var sender emailPkg.Sender
	resendKey := os.Getenv("LIDERANCA_RESEND_KEY")
	emailFrom := envOrDefault("LIDERANCA_RESEND_FROM", "Liderança <noreply@igreja.example>")
	if resendKey != "" {
		sender = emailPkg.NewResendSender(resendKey, emailFrom)
		log.Println("Email sender configured (Resend)")
	} else {
		sender = emailPkg.NewNoopSender()
		log.Println("Email sender configured (noop — set LIDERANCA_RESEND_KEY for real delivery)")
	}

	// Configure the draft generator
	var generator aiPkg.Generator
	if geminiKey := os.Getenv("LIDERANCA_GEMINI_KEY"); geminiKey != "" {
		gen, err := aiPkg.NewGeminiGenerator(context.Background(), geminiKey)
		if err != nil {
			log.Fatalf("failed to configure Gemini: %v", err)
		}
		generator = gen
		log.Println("Draft generator configured (Gemini)")
	} else {
		generator = aiPkg.NewNoopGenerator()
		log.Println("Draft generator configured (noop — set LIDERANCA_GEMINI_KEY to enable)")
	}

	notifier := notify.New()
	mirrors := mirror.NewSet(store, func(collection string, err error) {
		notifier.Alert("Erro de Conexão", "Falha ao sincronizar "+collection+".")
	})
	attachments := session.NewAttachmentCache()
	gate := session.NewGate(accounts, mirrors)
	edit := session.NewEditSession(store, notifier, attachments, mirrors.Studies)

	app := &web.App{
		Gate:        gate,
		Mirrors:     mirrors,
		Edit:        edit,
		Notifier:    notifier,
		Attachments: attachments,
		Store:       store,
		Generator:   generator,
		Sender:      sender,
		BulletinTo:  splitList(envOrDefault("LIDERANCA_BULLETIN_TO", adminEmail)),
	}
	mux := web.NewMux(app)

	addr := envOrDefault("LIDERANCA_ADDR", ":8080")
	log.Printf("Liderança %s starting on %s (env=%s)", version, addr, envOrDefault("LIDERANCA_ENV", "development"))

	if err := http.ListenAndServe(addr, mux); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
