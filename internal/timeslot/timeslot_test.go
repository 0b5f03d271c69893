package timeslot

import (
	"testing"
	"time"
)

func TestClassifyCoversEveryHour(t *testing.T) {
	want := map[int]Slot{
		0: Late, 1: VeryLate, 2: VeryLate, 3: VeryLate, 4: VeryLate,
		5: MorningEarly, 6: MorningEarly, 7: Morning, 8: Morning,
		9: MorningLate, 10: MorningLate, 11: Lunch, 12: Lunch,
		13: Afternoon, 14: Afternoon, 15: Snack, 16: Snack,
		17: Evening, 18: Evening, 19: Dinner, 20: Dinner,
		21: Night, 22: Night, 23: Late,
	}
	for hour := 0; hour < 24; hour++ {
		if got := Classify(hour); got != want[hour] {
			t.Errorf("Classify(%d) = %s, want %s", hour, got, want[hour])
		}
	}
}

func TestClassifyPartitionsDay(t *testing.T) {
	known := make(map[Slot]bool)
	for _, s := range All() {
		known[s] = true
	}
	if len(known) != 11 {
		t.Fatalf("expected 11 distinct slots, got %d", len(known))
	}
	seen := make(map[Slot]bool)
	for hour := 0; hour < 24; hour++ {
		s := Classify(hour)
		if !known[s] {
			t.Fatalf("Classify(%d) returned unknown slot %q", hour, s)
		}
		seen[s] = true
	}
	if len(seen) != 11 {
		t.Fatalf("expected all 11 slots reachable, got %d", len(seen))
	}
}

func TestClassifyNormalizesOutOfRange(t *testing.T) {
	if got := Classify(24); got != Late {
		t.Errorf("Classify(24) = %s, want %s", got, Late)
	}
	if got := Classify(-1); got != Late {
		t.Errorf("Classify(-1) = %s, want %s", got, Late)
	}
	if got := Classify(31); got != Morning {
		t.Errorf("Classify(31) = %s, want %s", got, Morning)
	}
}

func TestFromTime(t *testing.T) {
	at := time.Date(2026, 8, 31, 8, 30, 0, 0, time.UTC)
	if got := FromTime(at); got != Morning {
		t.Errorf("FromTime(08:30) = %s, want %s", got, Morning)
	}
}
