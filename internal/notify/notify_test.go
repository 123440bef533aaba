package notify

import (
	"testing"
	"time"
)

func TestUrgencyValues(t *testing.T) {
	// Verify urgency constants match D-Bus spec
	if UrgencyLow != 0 {
		t.Errorf("UrgencyLow = %d, want 0", UrgencyLow)
	}
	if UrgencyNormal != 1 {
		t.Errorf("UrgencyNormal = %d, want 1", UrgencyNormal)
	}
	if UrgencyCritical != 2 {
		t.Errorf("UrgencyCritical = %d, want 2", UrgencyCritical)
	}
}

func TestWorkoutComplete(t *testing.T) {
	tests := []struct {
		rounds int
		total  time.Duration
		body   string
	}{
		{8, 230 * time.Second, "8 rounds · 3:50"},
		{1, 20 * time.Second, "1 round · 0:20"},
		{3, 19 * time.Second, "3 rounds · 0:19"},
	}

	for _, tt := range tests {
		n := WorkoutComplete(tt.rounds, tt.total)
		if n.Body != tt.body {
			t.Errorf("WorkoutComplete(%d, %s).Body = %q, want %q", tt.rounds, tt.total, n.Body, tt.body)
		}
		if n.Title == "" {
			t.Error("Title should not be empty")
		}
	}
}

func TestDisabled(t *testing.T) {
	n := Disabled()

	id, err := n.Notify(WorkoutComplete(8, time.Minute))
	if err != nil || id != 0 {
		t.Errorf("Notify() = %d, %v, want 0, nil", id, err)
	}
	if err := n.Close(id); err != nil {
		t.Errorf("Close() error: %v", err)
	}
}
