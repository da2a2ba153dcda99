package model

import (
	"encoding/json"
	"testing"
	"time"
)

func TestDate_MarshalJSON(t *testing.T) {
	d := NewDate(2026, time.March, 5)
	data, err := json.Marshal(d)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	if string(data) != `"2026-03-05"` {
		t.Errorf(`expected "2026-03-05", got %s`, data)
	}
}

func TestDate_UnmarshalJSON(t *testing.T) {
	var d Date
	if err := json.Unmarshal([]byte(`"2026-03-05"`), &d); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	if !d.Equal(NewDate(2026, time.March, 5).Time) {
		t.Errorf("expected 2026-03-05, got %s", d)
	}
}

func TestDate_UnmarshalInvalid(t *testing.T) {
	var d Date
	if err := json.Unmarshal([]byte(`"05/03/2026"`), &d); err == nil {
		t.Error("expected error for non ISO date")
	}
}

func TestDate_DaysUntil(t *testing.T) {
	tests := []struct {
		name string
		from Date
		to   Date
		want int
	}{
		{"three nights", NewDate(2026, time.March, 5), NewDate(2026, time.March, 8), 3},
		{"same day", NewDate(2026, time.March, 5), NewDate(2026, time.March, 5), 0},
		{"across month boundary", NewDate(2026, time.January, 30), NewDate(2026, time.February, 2), 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.from.DaysUntil(tt.to); got != tt.want {
				t.Errorf("DaysUntil = %d, want %d", got, tt.want)
			}
		})
	}
}
