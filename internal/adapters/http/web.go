package web

import (
	"crypto/rand"
	"encoding/hex"
	"log"
	"net/http"
	"os"
	"sync"
	"time"

	"feisworks/internal/adapters/email"
	"feisworks/internal/adapters/http/middleware"
	adjudicatorStore "feisworks/internal/adapters/storage/adjudicator"
	competitionStore "feisworks/internal/adapters/storage/competition"
	dancerStore "feisworks/internal/adapters/storage/dancer"
	entryStore "feisworks/internal/adapters/storage/entry"
	feisStore "feisworks/internal/adapters/storage/feis"
	schedulerStore "feisworks/internal/adapters/storage/scheduler"
	stageStore "feisworks/internal/adapters/storage/stage"
)

// Stores holds all storage dependencies.
type Stores struct {
	FeisStore        feisStore.Store
	CompetitionStore competitionStore.Store
	EntryStore       entryStore.Store
	DancerStore      dancerStore.Store
	StageStore       stageStore.Store
	AdjudicatorStore adjudicatorStore.Store
	SchedulerStore   schedulerStore.Store
}

// loadCSRFKey reads the CSRF secret from FEISWORKS_CSRF_KEY (hex-encoded, 32 bytes).
// In production, the key MUST be set. In development, a random key is generated per startup.
func loadCSRFKey() []byte {
	if keyHex := os.Getenv("FEISWORKS_CSRF_KEY"); keyHex != "" {
		key, err := hex.DecodeString(keyHex)
		if err != nil || len(key) != 32 {
			log.Fatal("FEISWORKS_CSRF_KEY must be 64 hex characters (32 bytes)")
		}
		return key
	}
	if os.Getenv("FEISWORKS_ENV") == "production" {
		log.Fatal("FEISWORKS_CSRF_KEY is required in production")
	}
	key := make([]byte, 32)
	if _, err := rand.Read(key); err != nil {
		log.Fatalf("failed to generate CSRF key: %v", err)
	}
	log.Println("WARNING: using random CSRF key. Set FEISWORKS_CSRF_KEY for production.")
	return key
}

// Global stores instance (set by NewMux)
var stores *Stores

// RateLimitPerSecond controls the per-IP rate limit. Tests can increase this.
var RateLimitPerSecond = 10

// Global email sender instance (set by SetEmailSender)
var emailSender email.Sender

// scheduleLocks serializes scheduler runs per feis. Two concurrent runs for
// the same feis would race on the wholesale schedule replace.
var scheduleLocks sync.Map

// lockFeis returns the mutex for one feis, creating it on first use.
func lockFeis(feisID string) *sync.Mutex {
	mu, _ := scheduleLocks.LoadOrStore(feisID, &sync.Mutex{})
	return mu.(*sync.Mutex)
}

// SetEmailSender sets the global email sender for the application.
func SetEmailSender(sender email.Sender) {
	emailSender = sender
}

// NewMux wires HTTP handlers for the app.
func NewMux(staticDir string, s *Stores) http.Handler {
	stores = s

	mux := http.NewServeMux()
	mux.Handle("/", http.FileServer(http.Dir(staticDir)))
	registerRoutes(mux)

	// CSRF key: 32-byte hex-encoded secret from env var
	csrfKey := loadCSRFKey()

	// Rate limiter: configurable requests per second per IP (OWASP A04)
	limiter := middleware.NewRateLimiter(RateLimitPerSecond, time.Second)

	// Apply middleware: Timing -> RateLimit -> CSRF -> SecurityHeaders -> Mux
	return middleware.Chain(mux,
		middleware.SecurityHeaders,
		middleware.CSRF(csrfKey),
		middleware.RateLimit(limiter),
		middleware.Timing(),
	)
}
