package main

import (
	"context"
	"database/sql"
	"log"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	_ "modernc.org/sqlite"

	emailPkg "feisworks/internal/adapters/email"
	web "feisworks/internal/adapters/http"
	"feisworks/internal/adapters/storage"
	adjudicatorStore "feisworks/internal/adapters/storage/adjudicator"
	competitionStore "feisworks/internal/adapters/storage/competition"
	dancerStore "feisworks/internal/adapters/storage/dancer"
	entryStore "feisworks/internal/adapters/storage/entry"
	feisStore "feisworks/internal/adapters/storage/feis"
	schedulerStore "feisworks/internal/adapters/storage/scheduler"
	stageStore "feisworks/internal/adapters/storage/stage"
	"feisworks/internal/application/orchestrators"
)

// version is set at build time via -ldflags "-X main.version=..."
var version = "dev"

func main() {
	// Local development reads env vars from .env; missing file is fine.
	_ = godotenv.Load()

	// WAL mode, foreign keys, and busy timeout keep SQLite healthy under
	// concurrent web traffic.
	dbPath := envOrDefault("FEISWORKS_DB", "feisworks.db")
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

	// Query instrumentation: slow queries above FEISWORKS_SLOW_QUERY_MS log at WARN.
	timedDB := storage.NewTimedDB(db)

	stores := &web.Stores{
		FeisStore:        feisStore.NewSQLiteStore(timedDB),
		CompetitionStore: competitionStore.NewSQLiteStore(timedDB),
		EntryStore:       entryStore.NewSQLiteStore(timedDB),
		DancerStore:      dancerStore.NewSQLiteStore(timedDB),
		StageStore:       stageStore.NewSQLiteStore(timedDB),
		AdjudicatorStore: adjudicatorStore.NewSQLiteStore(timedDB),
		SchedulerStore:   schedulerStore.NewSQLiteStore(timedDB),
	}

	// Seed a demo feis for development only
	if os.Getenv("FEISWORKS_ENV") != "production" {
		seedDeps := orchestrators.SeedDemoFeisDeps{
			FeisStore:        stores.FeisStore,
			StageStore:       stores.StageStore,
			AdjudicatorStore: stores.AdjudicatorStore,
			CompetitionStore: stores.CompetitionStore,
			DancerStore:      stores.DancerStore,
			EntryStore:       stores.EntryStore,
		}
		if err := orchestrators.ExecuteSeedDemoFeis(context.Background(), seedDeps); err != nil {
			log.Fatalf("failed to seed demo feis: %v", err)
		}
		log.Println("Demo feis loaded (dev mode)")
	}

	// Configure email sender
	resendKey := os.Getenv("FEISWORKS_RESEND_KEY")
	emailFrom := envOrDefault("FEISWORKS_RESEND_FROM", "FeisWorks <noreply@feisworks.ie>")
	if resendKey != "" {
		web.SetEmailSender(emailPkg.NewResendSender(resendKey, emailFrom))
		log.Println("Email sender configured (Resend)")
	} else {
		web.SetEmailSender(emailPkg.NewNoopSender())
		if os.Getenv("FEISWORKS_ENV") == "production" {
			log.Println("WARNING: FEISWORKS_RESEND_KEY is not set — email delivery is DISABLED in production")
		} else {
			log.Println("Email sender configured (noop — set FEISWORKS_RESEND_KEY for real delivery)")
		}
	}

	mux := web.NewMux("static", stores)

	addr := envOrDefault("FEISWORKS_ADDR", ":8080")
	log.Printf("FeisWorks %s starting on %s (env=%s)", version, addr, envOrDefault("FEISWORKS_ENV", "development"))

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
