package schedule

import "time"

// Resource names the scarce resource a conflict was found on. Conflicts are
// always reported in a fixed order (room, then professor, then class) so the
// same clash yields the same answer regardless of input ordering.
type Resource string

const (
	ResourceRoom      Resource = "room"
	ResourceProfessor Resource = "professor"
	ResourceClass     Resource = "class"
)

// Occurrence is when a booking happens: either every week on a fixed day, or
// once on a specific date.
type Occurrence struct {
	weekly bool
	day    int       // set for weekly occurrences
	date   time.Time // set for dated occurrences
}

// Weekly returns an occurrence repeating on the given 1..6 day.
func Weekly(day int) Occurrence {
	return Occurrence{weekly: true, day: day}
}

// Dated returns a one-off occurrence on the given calendar date.
func Dated(date time.Time) Occurrence {
	return Occurrence{date: date}
}

// IsWeekly reports whether the occurrence repeats every week.
func (o Occurrence) IsWeekly() bool {
	return o.weekly
}

// Date returns the calendar date of a dated occurrence (zero for weekly).
func (o Occurrence) Date() time.Time {
	return o.date
}

// EffectiveWeekday is the 1..6 day the occurrence lands on. ok is false for
// a dated occurrence falling on Sunday.
func (o Occurrence) EffectiveWeekday() (int, bool) {
	if o.weekly {
		return o.day, ValidDay(o.day)
	}
	return Weekday(o.date)
}

// collides reports whether two occurrences share at least one calendar day.
// Weekly vs weekly and weekly vs dated collide when their effective weekdays
// match; dated vs dated collide only on the same date.
func (o Occurrence) collides(other Occurrence) bool {
	if !o.weekly && !other.weekly {
		return o.date.Year() == other.date.Year() && o.date.YearDay() == other.date.YearDay()
	}
	d1, ok1 := o.EffectiveWeekday()
	d2, ok2 := other.EffectiveWeekday()
	return ok1 && ok2 && d1 == d2
}

// Booking is one claim on a (room, professor, class) triple at a slot.
type Booking struct {
	RoomID      string
	ProfessorID string
	ClassID     string
	Occurrence  Occurrence
	StartTime   string // slot-aligned "HH:MM"
}

// Conflict describes the first clash found between a candidate and an
// existing booking.
type Conflict struct {
	Resource Resource
	Existing Booking
}

// CheckConflict returns the first conflict between the candidate and the
// existing bookings, or nil when the candidate is free. Resources are
// checked resource-major, room before professor before class, so a clash on
// several resources always reports the same one no matter how the existing
// bookings are ordered.
func CheckConflict(candidate Booking, existing []Booking) *Conflict {
	checks := []struct {
		resource Resource
		match    func(b Booking) bool
	}{
		{ResourceRoom, func(b Booking) bool { return b.RoomID == candidate.RoomID }},
		{ResourceProfessor, func(b Booking) bool { return b.ProfessorID == candidate.ProfessorID }},
		{ResourceClass, func(b Booking) bool { return b.ClassID == candidate.ClassID }},
	}
	for _, c := range checks {
		for _, b := range existing {
			if b.StartTime != candidate.StartTime {
				continue
			}
			if !candidate.Occurrence.collides(b.Occurrence) {
				continue
			}
			if c.match(b) {
				return &Conflict{Resource: c.resource, Existing: b}
			}
		}
	}
	return nil
}
