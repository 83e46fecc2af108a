package repair

import "time"

// Side is one of the two activities in an overlapping pair.
type Side struct {
	ID       int64
	Start    time.Time
	Duration int // seconds
	AppName  string
	IsIdle   bool
}

// End returns the instant the side's interval ends.
func (s Side) End() time.Time {
	return s.Start.Add(time.Duration(s.Duration) * time.Second)
}

// OverlapPair is a pair of stored activities whose intervals overlap. First
// always starts no later than Second.
type OverlapPair struct {
	First  Side
	Second Side
}

// OverlapSeconds returns the length of the intersection of the two intervals.
func (p OverlapPair) OverlapSeconds() int {
	start := p.First.Start
	if p.Second.Start.After(start) {
		start = p.Second.Start
	}
	end := p.First.End()
	if p.Second.End().Before(end) {
		end = p.Second.End()
	}
	if !end.After(start) {
		return 0
	}
	return int(end.Sub(start).Seconds())
}

// Op is the kind of repair action.
type Op string

const (
	OpDelete      Op = "delete"
	OpSetDuration Op = "set_duration"
)

// Action is one planned or applied mutation resolving an overlap.
type Action struct {
	Op          Op
	ActivityID  int64
	NewDuration int
	Reason      string
}
