package orchestrators

import (
	"context"
	"errors"
	"fmt"
	"html"
	"log/slog"
	"sort"
	"strings"
	"time"

	emailAdapter "feisworks/internal/adapters/email"
	"feisworks/internal/domain/competition"
)

// ErrNothingScheduled is returned when publishing a feis with no placed
// competitions.
var ErrNothingScheduled = errors.New("no competitions are scheduled yet")

// ErrNoOrganizerEmail is returned when the feis has no organizer address to
// publish to.
var ErrNoOrganizerEmail = errors.New("feis has no organizer email")

// PublishScheduleInput carries input for the publish schedule orchestrator.
type PublishScheduleInput struct {
	FeisID string
}

// PublishScheduleDeps holds dependencies for PublishSchedule.
type PublishScheduleDeps struct {
	SchedulerStore SchedulerStoreForOrchestrator
	Sender         emailAdapter.Sender
	Now            func() time.Time
}

// ExecutePublishSchedule emails the current schedule to the feis organizer
// as a per-stage timetable.
// PRE: FeisID must be non-empty; the feis must exist, have an organizer
// email and at least one scheduled competition
// POST: One email is queued with the provider; returns its message ID
func ExecutePublishSchedule(ctx context.Context, input PublishScheduleInput, deps PublishScheduleDeps) (string, error) {
	if input.FeisID == "" {
		return "", errors.New("feis ID is required")
	}

	sctx, err := deps.SchedulerStore.LoadContext(ctx, input.FeisID)
	if err != nil {
		return "", err
	}
	if sctx.Feis.OrganizerEmail == "" {
		return "", ErrNoOrganizerEmail
	}

	scheduled := scheduledByStage(sctx.Competitions)
	if len(scheduled) == 0 {
		return "", ErrNothingScheduled
	}

	var b strings.Builder
	fmt.Fprintf(&b, "<h1>%s</h1>", html.EscapeString(sctx.Feis.Name))
	fmt.Fprintf(&b, "<p>%s", html.EscapeString(sctx.Feis.Date))
	if sctx.Feis.Venue != "" {
		fmt.Fprintf(&b, " &mdash; %s", html.EscapeString(sctx.Feis.Venue))
	}
	b.WriteString("</p>")

	stageIDs := make([]string, 0, len(scheduled))
	for id := range scheduled {
		stageIDs = append(stageIDs, id)
	}
	sort.Strings(stageIDs)

	counts := sctx.EntryCounts()
	for _, stageID := range stageIDs {
		name := stageID
		if s, ok := sctx.StageByID(stageID); ok {
			name = s.Name
		}
		fmt.Fprintf(&b, "<h2>%s</h2><table>", html.EscapeString(name))
		b.WriteString("<tr><th>Time</th><th>Competition</th><th>Entries</th></tr>")
		for _, c := range scheduled[stageID] {
			fmt.Fprintf(&b, "<tr><td>%s&ndash;%s</td><td>%s</td><td>%d</td></tr>",
				c.ScheduledStart.Format("15:04"),
				c.ScheduledEnd().Format("15:04"),
				html.EscapeString(c.Name),
				counts[c.ID])
		}
		b.WriteString("</table>")
	}

	result, err := deps.Sender.Send(ctx, emailAdapter.SendRequest{
		To:      []string{sctx.Feis.OrganizerEmail},
		Subject: fmt.Sprintf("Schedule for %s (%s)", sctx.Feis.Name, sctx.Feis.Date),
		HTML:    b.String(),
	})
	if err != nil {
		return "", err
	}

	slog.Info("scheduler_event", "event", "schedule_published",
		"feis_id", input.FeisID, "to", sctx.Feis.OrganizerEmail, "message_id", result.MessageID)
	return result.MessageID, nil
}

// scheduledByStage groups the scheduled competitions per stage, ordered by
// start time.
func scheduledByStage(comps []competition.Competition) map[string][]competition.Competition {
	byStage := make(map[string][]competition.Competition)
	for _, c := range comps {
		if !c.IsScheduled() {
			continue
		}
		byStage[c.StageID] = append(byStage[c.StageID], c)
	}
	for id := range byStage {
		list := byStage[id]
		sort.Slice(list, func(i, j int) bool { return list[i].ScheduledStart.Before(list[j].ScheduledStart) })
		byStage[id] = list
	}
	return byStage
}
