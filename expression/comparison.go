package expression

type NumberEquals struct {
	boolNode
	Left  Number `filter:"-"`
	Right Number `filter:"-"`
}

func (NumberEquals) Kind() Kind { return "NumberEquals" }

type NumberNotEquals struct {
	boolNode
	Left  Number `filter:"-"`
	Right Number `filter:"-"`
}

func (NumberNotEquals) Kind() Kind { return "NumberNotEquals" }

type NumberGreaterThan struct {
	boolNode
	Left  Number `filter:"-"`
	Right Number `filter:"-"`
}

func (NumberGreaterThan) Kind() Kind { return "NumberGreaterThan" }

type NumberGreaterThanEquals struct {
	boolNode
	Left  Number `filter:"-"`
	Right Number `filter:"-"`
}

func (NumberGreaterThanEquals) Kind() Kind { return "NumberGreaterThanEquals" }

type NumberLessThan struct {
	boolNode
	Left  Number `filter:"-"`
	Right Number `filter:"-"`
}

func (NumberLessThan) Kind() Kind { return "NumberLessThan" }

type NumberLessThanEquals struct {
	boolNode
	Left  Number `filter:"-"`
	Right Number `filter:"-"`
}

func (NumberLessThanEquals) Kind() Kind { return "NumberLessThanEquals" }

// DateEquals is true when both dates fall on the same calendar day.
type DateEquals struct {
	boolNode
	Left  Date `filter:"-"`
	Right Date `filter:"-"`
}

func (DateEquals) Kind() Kind { return "DateEquals" }

type DateNotEquals struct {
	boolNode
	Left  Date `filter:"-"`
	Right Date `filter:"-"`
}

func (DateNotEquals) Kind() Kind { return "DateNotEquals" }

type DateGreaterThan struct {
	boolNode
	Left  Date `filter:"-"`
	Right Date `filter:"-"`
}

func (DateGreaterThan) Kind() Kind { return "DateGreaterThan" }

type DateGreaterThanEquals struct {
	boolNode
	Left  Date `filter:"-"`
	Right Date `filter:"-"`
}

func (DateGreaterThanEquals) Kind() Kind { return "DateGreaterThanEquals" }

type DateLessThan struct {
	boolNode
	Left  Date `filter:"-"`
	Right Date `filter:"-"`
}

func (DateLessThan) Kind() Kind { return "DateLessThan" }

type DateLessThanEquals struct {
	boolNode
	Left  Date `filter:"-"`
	Right Date `filter:"-"`
}

func (DateLessThanEquals) Kind() Kind { return "DateLessThanEquals" }

type StringEquals struct {
	boolNode
	Left  String `filter:"-"`
	Right String `filter:"-"`
}

func (StringEquals) Kind() Kind { return "StringEquals" }

type StringNotEquals struct {
	boolNode
	Left  String `filter:"-"`
	Right String `filter:"-"`
}

func (StringNotEquals) Kind() Kind { return "StringNotEquals" }

type StringContains struct {
	boolNode
	Left  String `filter:"-"`
	Right String `filter:"-"`
}

func (StringContains) Kind() Kind { return "StringContains" }

type StringStartsWith struct {
	boolNode
	Left  String `filter:"-"`
	Right String `filter:"-"`
}

func (StringStartsWith) Kind() Kind { return "StringStartsWith" }

type StringEndsWith struct {
	boolNode
	Left  String `filter:"-"`
	Right String `filter:"-"`
}

func (StringEndsWith) Kind() Kind { return "StringEndsWith" }

// StringRegex matches Left against the pattern produced by Right.
type StringRegex struct {
	boolNode
	Left  String `filter:"-"`
	Right String `filter:"-"`
}

func (StringRegex) Kind() Kind { return "StringRegex" }
