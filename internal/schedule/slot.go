// Package schedule implements the fixed weekly slot grid and the conflict
// rules shared by weekly sessions and date-anchored ratrapages. It is pure
// computation with no storage dependencies.
package schedule

import (
	"errors"
	"fmt"
	"time"
)

// Grid constants. Teaching days are Monday through Saturday; every slot is
// 90 minutes, the first starts at 08:30 and no slot may end after 18:00.
const (
	DayMin = 1 // Monday
	DayMax = 6 // Saturday

	SlotMinutes  = 90
	dayStartMins = 8*60 + 30 // 08:30
	dayEndMins   = 18 * 60   // 18:00
)

var (
	ErrInvalidDay       = errors.New("day must be between Monday and Saturday")
	ErrInvalidTime      = errors.New("time must be HH:MM between 00:00 and 23:59")
	ErrInvalidAlignment = errors.New("start time is not aligned to the slot grid")
)

// Slot is one bookable 90-minute interval.
type Slot struct {
	Index int    // 0-based position within the day
	Start string // "HH:MM"
	End   string // "HH:MM"
}

var daySlots = buildSlots()

func buildSlots() []Slot {
	var slots []Slot
	for start := dayStartMins; start+SlotMinutes <= dayEndMins; start += SlotMinutes {
		slots = append(slots, Slot{
			Index: len(slots),
			Start: formatMinutes(start),
			End:   formatMinutes(start + SlotMinutes),
		})
	}
	return slots
}

// Slots returns the day's slot grid in chronological order. The result is a
// copy; callers may modify it freely.
func Slots() []Slot {
	out := make([]Slot, len(daySlots))
	copy(out, daySlots)
	return out
}

// SlotCount is the number of bookable slots per day.
func SlotCount() int {
	return len(daySlots)
}

// SlotAt resolves a "HH:MM" start time to its grid slot. It returns
// ErrInvalidAlignment when the time parses but does not start a slot.
func SlotAt(start string) (Slot, error) {
	mins, err := parseClock(start)
	if err != nil {
		return Slot{}, err
	}
	if mins < dayStartMins || (mins-dayStartMins)%SlotMinutes != 0 {
		return Slot{}, ErrInvalidAlignment
	}
	idx := (mins - dayStartMins) / SlotMinutes
	if idx >= len(daySlots) {
		return Slot{}, ErrInvalidAlignment
	}
	return daySlots[idx], nil
}

// ValidDay reports whether day is a teaching day (1..6).
func ValidDay(day int) bool {
	return day >= DayMin && day <= DayMax
}

var dayNames = [...]string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday"}

// ParseDay maps an English day name to its 1..6 index. Sunday is not a
// teaching day and is rejected along with unknown names.
func ParseDay(name string) (int, error) {
	for i, n := range dayNames {
		if n == name {
			return i + 1, nil
		}
	}
	return 0, ErrInvalidDay
}

// FormatDay maps a 1..6 index back to its English day name.
func FormatDay(day int) (string, error) {
	if !ValidDay(day) {
		return "", ErrInvalidDay
	}
	return dayNames[day-1], nil
}

// Weekday maps a calendar date to the grid's 1..6 day index. Sunday maps to
// 0 with ok=false: nothing can be scheduled on it.
func Weekday(date time.Time) (int, bool) {
	wd := date.Weekday()
	if wd == time.Sunday {
		return 0, false
	}
	return int(wd), true
}

func parseClock(s string) (int, error) {
	var h, m int
	if _, err := fmt.Sscanf(s, "%02d:%02d", &h, &m); err != nil || len(s) != 5 {
		return 0, ErrInvalidTime
	}
	if h < 0 || h > 23 || m < 0 || m > 59 {
		return 0, ErrInvalidTime
	}
	return h*60 + m, nil
}

func formatMinutes(mins int) string {
	return fmt.Sprintf("%02d:%02d", mins/60, mins%60)
}
