package orchestrators

import (
	"context"
	"errors"
	"testing"
)

type fakeClearStore struct {
	cleared  int
	clearErr error
	feisID   string
}

func (s *fakeClearStore) ClearSchedule(_ context.Context, feisID string) (int, error) {
	s.feisID = feisID
	if s.clearErr != nil {
		return 0, s.clearErr
	}
	return s.cleared, nil
}

// TestClearSchedule tests the cleared-count passthrough.
func TestClearSchedule(t *testing.T) {
	store := &fakeClearStore{cleared: 7}
	n, err := ExecuteClearSchedule(context.Background(), ClearScheduleInput{FeisID: "f1"}, ClearScheduleDeps{ScheduleStore: store})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n != 7 {
		t.Errorf("cleared = %d, want 7", n)
	}
	if store.feisID != "f1" {
		t.Errorf("feis ID = %q, want f1", store.feisID)
	}
}

// TestClearScheduleRequiresFeisID tests input validation.
func TestClearScheduleRequiresFeisID(t *testing.T) {
	_, err := ExecuteClearSchedule(context.Background(), ClearScheduleInput{}, ClearScheduleDeps{ScheduleStore: &fakeClearStore{}})
	if err == nil {
		t.Fatal("expected an error for empty feis ID")
	}
}

// TestClearSchedulePropagatesError tests store error passthrough.
func TestClearSchedulePropagatesError(t *testing.T) {
	boom := errors.New("locked")
	store := &fakeClearStore{clearErr: boom}
	_, err := ExecuteClearSchedule(context.Background(), ClearScheduleInput{FeisID: "f1"}, ClearScheduleDeps{ScheduleStore: store})
	if !errors.Is(err, boom) {
		t.Errorf("err = %v, want the store error", err)
	}
}
