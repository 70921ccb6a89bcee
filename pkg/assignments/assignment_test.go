package assignments

import (
	"testing"
	"time"

	"github.com/coursedeck-app/coursedeck/pkg/date"
)

func TestAssignmentDueDateTime(t *testing.T) {
	assignment := Assignment{
		DueDate: date.NewDay(2024, 3, 1),
		DueTime: date.Clock{Hour: 14, Minute: 30},
	}

	want := time.Date(2024, 3, 1, 14, 30, 0, 0, time.Local)
	if !assignment.DueDateTime().Equal(want) {
		t.Errorf("DueDateTime() = %v, want %v", assignment.DueDateTime(), want)
	}
}

func TestAssignmentDisplaySubmissionURL(t *testing.T) {
	tests := []struct {
		name   string
		stored string
		want   string
	}{
		{name: "empty stays empty", stored: "", want: ""},
		{name: "scheme kept", stored: "https://classroom.google.com", want: "https://classroom.google.com"},
		{name: "http scheme kept", stored: "http://example.edu/submit", want: "http://example.edu/submit"},
		{name: "missing scheme assumed https", stored: "example.edu/submit", want: "https://example.edu/submit"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assignment := Assignment{SubmissionURL: tt.stored}
			if got := assignment.DisplaySubmissionURL(); got != tt.want {
				t.Errorf("DisplaySubmissionURL() = %q, want %q", got, tt.want)
			}

			if assignment.SubmissionURL != tt.stored {
				t.Errorf("stored value was rewritten to %q", assignment.SubmissionURL)
			}
		})
	}
}

func TestNewDraftDefaults(t *testing.T) {
	draft := NewDraft()

	if draft.DueTime != date.EndOfDay {
		t.Errorf("NewDraft() due time = %v, want %v", draft.DueTime, date.EndOfDay)
	}

	if draft.DueDate != date.Today() {
		t.Errorf("NewDraft() due date = %v, want today", draft.DueDate)
	}
}

func TestSampleAssignments(t *testing.T) {
	samples := SampleAssignments()

	if len(samples) != 4 {
		t.Fatalf("SampleAssignments() returned %d records, want 4", len(samples))
	}

	for i, sample := range samples {
		if sample.ID != i+1 {
			t.Errorf("sample %d has id %d, want %d", i, sample.ID, i+1)
		}
		if sample.Name == "" {
			t.Errorf("sample %d has no name", i)
		}
	}
}
