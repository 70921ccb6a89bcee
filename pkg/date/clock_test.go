package date

import (
	"encoding/json"
	"testing"
	"time"
)

func TestSplit(t *testing.T) {
	tests := []struct {
		name      string
		timestamp time.Time
		wantDay   Day
		wantClock Clock
	}{
		{
			name:      "afternoon deadline",
			timestamp: time.Date(2024, 3, 1, 14, 30, 0, 0, time.Local),
			wantDay:   NewDay(2024, 3, 1),
			wantClock: Clock{Hour: 14, Minute: 30},
		},
		{
			name:      "midnight",
			timestamp: time.Date(2024, 12, 31, 0, 0, 0, 0, time.Local),
			wantDay:   NewDay(2024, 12, 31),
			wantClock: Clock{},
		},
		{
			name:      "end of day",
			timestamp: time.Date(2023, 1, 15, 23, 59, 59, 0, time.Local),
			wantDay:   NewDay(2023, 1, 15),
			wantClock: EndOfDay,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			day, clock := Split(tt.timestamp)
			if day != tt.wantDay {
				t.Errorf("Split() day = %v, want %v", day, tt.wantDay)
			}
			if clock != tt.wantClock {
				t.Errorf("Split() clock = %v, want %v", clock, tt.wantClock)
			}
		})
	}
}

func TestDayAt(t *testing.T) {
	day := NewDay(2024, 3, 1)
	clock := Clock{Hour: 14, Minute: 30}

	combined := day.At(clock)
	want := time.Date(2024, 3, 1, 14, 30, 0, 0, time.Local)
	if !combined.Equal(want) {
		t.Errorf("At() = %v, want %v", combined, want)
	}
}

func TestDayAddDays(t *testing.T) {
	day := NewDay(2024, 2, 28)

	got := day.AddDays(2)
	want := NewDay(2024, 3, 1)
	if got != want {
		t.Errorf("AddDays() = %v, want %v", got, want)
	}
}

func TestDayJSON(t *testing.T) {
	binary, err := json.Marshal(NewDay(2024, 3, 1))
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	if string(binary) != `"2024-03-01"` {
		t.Errorf("Marshal() = %s, want %q", binary, "2024-03-01")
	}

	var day Day
	if err := json.Unmarshal([]byte(`"2024-03-01"`), &day); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if day != NewDay(2024, 3, 1) {
		t.Errorf("Unmarshal() = %v, want %v", day, NewDay(2024, 3, 1))
	}

	if err := json.Unmarshal([]byte(`"not-a-date"`), &day); err == nil {
		t.Error("Unmarshal() expected error for malformed day")
	}
}

func TestClockJSON(t *testing.T) {
	binary, err := json.Marshal(Clock{Hour: 14, Minute: 30})
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	if string(binary) != `"14:30:00"` {
		t.Errorf("Marshal() = %s, want %q", binary, "14:30:00")
	}

	var clock Clock
	if err := json.Unmarshal([]byte(`"23:59:59"`), &clock); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if clock != EndOfDay {
		t.Errorf("Unmarshal() = %v, want %v", clock, EndOfDay)
	}
}
