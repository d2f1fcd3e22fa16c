package domain

// Interval half-open interval [Start, End) in minutes since midnight
type Interval struct {
	Start int
	End   int
}

// NewInterval creates [start, start+duration)
func NewInterval(start, duration int) Interval {
	return Interval{Start: start, End: start + duration}
}

// Overlaps reports whether two half-open intervals share any instant
// Интервалы, которые только соприкасаются (конец одного = начало другого), не пересекаются
func (i Interval) Overlaps(other Interval) bool {
	return i.Start < other.End && i.End > other.Start
}

// Contains reports whether other lies entirely inside i
func (i Interval) Contains(other Interval) bool {
	return other.Start >= i.Start && other.End <= i.End
}

// Duration length of the interval in minutes
func (i Interval) Duration() int {
	return i.End - i.Start
}
