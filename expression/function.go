package expression

import "time"

// Today is the start of the evaluation day in the location of the evaluation clock.
type Today struct{ dateNode }

func (Today) Kind() Kind { return "Today" }

type DateAdd struct {
	dateNode
	Base Date `filter:"-"`
	Span time.Duration
}

func (DateAdd) Kind() Kind { return "DateAdd" }

type DateSubtract struct {
	dateNode
	Base Date `filter:"-"`
	Span time.Duration
}

func (DateSubtract) Kind() Kind { return "DateSubtract" }

// DateDiff is the number of days from Right to Left, fractional.
type DateDiff struct {
	numberNode
	Left  Date `filter:"-"`
	Right Date `filter:"-"`
}

func (DateDiff) Kind() Kind { return "DateDiff" }

// Day is a convenience span for date arithmetic.
const Day = 24 * time.Hour

// EndOfToday is the last instant of the evaluation day.
func EndOfToday() Date {
	return DateSubtract{Base: DateAdd{Base: Today{}, Span: Day}, Span: time.Millisecond}
}
