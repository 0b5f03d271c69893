// Package timeslot maps wall-clock hours to day-part buckets. This is the
// single canonical table; every other package derives slots from here.
package timeslot

import "time"

// Slot is one of 11 fixed day-part buckets.
type Slot string

const (
	VeryLate     Slot = "very_late"     // 1-4
	MorningEarly Slot = "morning_early" // 5-6
	Morning      Slot = "morning"       // 7-8
	MorningLate  Slot = "morning_late"  // 9-10
	Lunch        Slot = "lunch"         // 11-12
	Afternoon    Slot = "afternoon"     // 13-14
	Snack        Slot = "snack"         // 15-16
	Evening      Slot = "evening"       // 17-18
	Dinner       Slot = "dinner"        // 19-20
	Night        Slot = "night"         // 21-22
	Late         Slot = "late"          // 23-0
)

// All lists every slot in day order starting from midnight's bucket.
func All() []Slot {
	return []Slot{Late, VeryLate, MorningEarly, Morning, MorningLate, Lunch, Afternoon, Snack, Evening, Dinner, Night}
}

// Classify returns the slot for an hour of day. Total over 0-23; out-of-range
// hours are normalized mod 24 so the function never errors.
func Classify(hour int) Slot {
	hour = ((hour % 24) + 24) % 24
	switch {
	case hour == 0 || hour == 23:
		return Late
	case hour <= 4:
		return VeryLate
	case hour <= 6:
		return MorningEarly
	case hour <= 8:
		return Morning
	case hour <= 10:
		return MorningLate
	case hour <= 12:
		return Lunch
	case hour <= 14:
		return Afternoon
	case hour <= 16:
		return Snack
	case hour <= 18:
		return Evening
	case hour <= 20:
		return Dinner
	default:
		return Night
	}
}

// FromTime returns the slot for t in its own location.
func FromTime(t time.Time) Slot {
	return Classify(t.Hour())
}
