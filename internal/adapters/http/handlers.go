package web

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/yuin/goldmark"
	goldmarkHTML "github.com/yuin/goldmark/renderer/html"

	"feisworks/internal/application/orchestrators"
	"feisworks/internal/application/projections"
	feisDomain "feisworks/internal/domain/feis"
	"feisworks/internal/domain/scheduling"
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

// generateID creates a new UUID string.
func generateID() string {
	return uuid.New().String()
}

// internalError logs the real error and returns a generic message to the client.
// This prevents leaking internal details per OWASP A05.
func internalError(w http.ResponseWriter, err error) {
	slog.Error("internal_error", "error", err.Error())
	http.Error(w, "internal server error", http.StatusInternalServerError)
}

// strictDecode decodes JSON from the request body, rejecting unknown fields.
func strictDecode(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("encode_response", "error", err.Error())
	}
}

func registerRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /health", handleHealth)

	mux.HandleFunc("POST /api/feis", handleCreateFeis)
	mux.HandleFunc("GET /api/feis", handleListFeis)
	mux.HandleFunc("GET /api/feis/{id}", handleGetFeis)

	mux.HandleFunc("POST /api/feis/{id}/schedule/instant", handleRunInstantScheduler)
	mux.HandleFunc("GET /api/feis/{id}/schedule", handleGetSchedule)
	mux.HandleFunc("GET /api/feis/{id}/schedule/conflicts", handleGetScheduleConflicts)
	mux.HandleFunc("DELETE /api/feis/{id}/schedule", handleClearSchedule)
	mux.HandleFunc("POST /api/feis/{id}/schedule/publish", handlePublishSchedule)

	mux.HandleFunc("GET /feis/{id}/schedule", handleSchedulePage)
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func handleCreateFeis(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name                 string `json:"name"`
		Date                 string `json:"date"`
		Venue                string `json:"venue"`
		OrganizerEmail       string `json:"organizer_email"`
		Notes                string `json:"notes"`
		VenueOpen            string `json:"venue_open"`
		VenueClose           string `json:"venue_close"`
		LunchWindowStart     string `json:"lunch_window_start"`
		LunchWindowEnd       string `json:"lunch_window_end"`
		LunchDurationMinutes int    `json:"lunch_duration_minutes"`
	}
	if err := strictDecode(r, &req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	f := feisDomain.Feis{
		ID:                   generateID(),
		Name:                 req.Name,
		Date:                 req.Date,
		Venue:                req.Venue,
		OrganizerEmail:       req.OrganizerEmail,
		Notes:                req.Notes,
		VenueOpen:            req.VenueOpen,
		VenueClose:           req.VenueClose,
		LunchWindowStart:     req.LunchWindowStart,
		LunchWindowEnd:       req.LunchWindowEnd,
		LunchDurationMinutes: req.LunchDurationMinutes,
	}
	if err := f.Validate(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err := stores.FeisStore.Save(r.Context(), f); err != nil {
		internalError(w, err)
		return
	}
	slog.Info("feis_event", "event", "feis_created", "feis_id", f.ID, "name", f.Name)
	writeJSON(w, http.StatusCreated, f)
}

func handleListFeis(w http.ResponseWriter, r *http.Request) {
	list, err := stores.FeisStore.List(r.Context())
	if err != nil {
		internalError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func handleGetFeis(w http.ResponseWriter, r *http.Request) {
	f, err := stores.FeisStore.GetByID(r.Context(), r.PathValue("id"))
	if errors.Is(err, feisDomain.ErrNotFound) {
		http.Error(w, "feis not found", http.StatusNotFound)
		return
	}
	if err != nil {
		internalError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, f)
}

func handleRunInstantScheduler(w http.ResponseWriter, r *http.Request) {
	feisID := r.PathValue("id")

	var req struct {
		Config *scheduling.ConfigOverride `json:"config"`
	}
	if err := strictDecode(r, &req); err != nil && !errors.Is(err, io.EOF) {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	mu := lockFeis(feisID)
	mu.Lock()
	defer mu.Unlock()

	result, err := orchestrators.ExecuteRunInstantScheduler(r.Context(),
		orchestrators.RunInstantSchedulerInput{FeisID: feisID, Config: req.Config},
		orchestrators.RunInstantSchedulerDeps{
			SchedulerStore: stores.SchedulerStore,
			Now:            timeNow,
		})
	if errors.Is(err, feisDomain.ErrNotFound) {
		http.Error(w, "feis not found", http.StatusNotFound)
		return
	}
	if err != nil {
		internalError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func handleGetSchedule(w http.ResponseWriter, r *http.Request) {
	view, err := projections.QueryGetFeisSchedule(r.Context(), r.PathValue("id"),
		projections.GetFeisScheduleDeps{SchedulerStore: stores.SchedulerStore})
	if errors.Is(err, feisDomain.ErrNotFound) {
		http.Error(w, "feis not found", http.StatusNotFound)
		return
	}
	if err != nil {
		internalError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

func handleGetScheduleConflicts(w http.ResponseWriter, r *http.Request) {
	conflicts, err := projections.QueryGetScheduleConflicts(r.Context(), r.PathValue("id"),
		projections.GetScheduleConflictsDeps{SchedulerStore: stores.SchedulerStore})
	if errors.Is(err, feisDomain.ErrNotFound) {
		http.Error(w, "feis not found", http.StatusNotFound)
		return
	}
	if err != nil {
		internalError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"feis_id":   r.PathValue("id"),
		"conflicts": conflicts,
	})
}

func handleClearSchedule(w http.ResponseWriter, r *http.Request) {
	feisID := r.PathValue("id")

	mu := lockFeis(feisID)
	mu.Lock()
	defer mu.Unlock()

	cleared, err := orchestrators.ExecuteClearSchedule(r.Context(),
		orchestrators.ClearScheduleInput{FeisID: feisID},
		orchestrators.ClearScheduleDeps{ScheduleStore: stores.SchedulerStore})
	if err != nil {
		internalError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"cleared": cleared})
}

func handlePublishSchedule(w http.ResponseWriter, r *http.Request) {
	messageID, err := orchestrators.ExecutePublishSchedule(r.Context(),
		orchestrators.PublishScheduleInput{FeisID: r.PathValue("id")},
		orchestrators.PublishScheduleDeps{
			SchedulerStore: stores.SchedulerStore,
			Sender:         emailSender,
			Now:            timeNow,
		})
	if errors.Is(err, feisDomain.ErrNotFound) {
		http.Error(w, "feis not found", http.StatusNotFound)
		return
	}
	if errors.Is(err, orchestrators.ErrNothingScheduled) || errors.Is(err, orchestrators.ErrNoOrganizerEmail) {
		http.Error(w, err.Error(), http.StatusConflict)
		return
	}
	if err != nil {
		internalError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message_id": messageID})
}

func handleSchedulePage(w http.ResponseWriter, r *http.Request) {
	view, err := projections.QueryGetFeisSchedule(r.Context(), r.PathValue("id"),
		projections.GetFeisScheduleDeps{SchedulerStore: stores.SchedulerStore})
	if errors.Is(err, feisDomain.ErrNotFound) {
		http.Error(w, "feis not found", http.StatusNotFound)
		return
	}
	if err != nil {
		internalError(w, err)
		return
	}

	var notesHTML bytes.Buffer
	if view.Notes != "" {
		if err := mdRenderer.Convert([]byte(view.Notes), &notesHTML); err != nil {
			internalError(w, err)
			return
		}
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	fmt.Fprintf(w, "<!DOCTYPE html><html><head><title>%s</title></head><body>", template.HTMLEscapeString(view.FeisName))
	fmt.Fprintf(w, "<h1>%s</h1><p>%s", template.HTMLEscapeString(view.FeisName), template.HTMLEscapeString(view.Date))
	if view.Venue != "" {
		fmt.Fprintf(w, " &mdash; %s", template.HTMLEscapeString(view.Venue))
	}
	io.WriteString(w, "</p>")
	if notesHTML.Len() > 0 {
		fmt.Fprintf(w, "<div class=\"notes\">%s</div>", notesHTML.String())
	}

	for _, st := range view.Stages {
		fmt.Fprintf(w, "<h2>%s</h2>", template.HTMLEscapeString(st.StageName))
		if len(st.Slots) == 0 {
			io.WriteString(w, "<p>No competitions scheduled.</p>")
			continue
		}
		io.WriteString(w, "<table><tr><th>Time</th><th>Competition</th><th>Age</th><th>Entries</th></tr>")
		for _, slot := range st.Slots {
			fmt.Fprintf(w, "<tr><td>%s&ndash;%s</td><td>%s</td><td>%s</td><td>%d</td></tr>",
				slot.ScheduledStart.Format("15:04"),
				slot.ScheduledEnd.Format("15:04"),
				template.HTMLEscapeString(slot.Name),
				template.HTMLEscapeString(slot.AgeRange),
				slot.EntryCount)
		}
		io.WriteString(w, "</table>")
	}

	if len(view.Unscheduled) > 0 {
		io.WriteString(w, "<h2>Unscheduled</h2><ul>")
		for _, slot := range view.Unscheduled {
			fmt.Fprintf(w, "<li>%s (%s)</li>", template.HTMLEscapeString(slot.Name), template.HTMLEscapeString(slot.AgeRange))
		}
		io.WriteString(w, "</ul>")
	}
	io.WriteString(w, "</body></html>")
}
