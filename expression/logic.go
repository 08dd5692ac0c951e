package expression

type And struct {
	boolNode
	Left  Bool `filter:"-"`
	Right Bool `filter:"-"`
}

func (And) Kind() Kind { return "And" }

type Or struct {
	boolNode
	Left  Bool `filter:"-"`
	Right Bool `filter:"-"`
}

func (Or) Kind() Kind { return "Or" }

type Xor struct {
	boolNode
	Left  Bool `filter:"-"`
	Right Bool `filter:"-"`
}

func (Xor) Kind() Kind { return "Xor" }

type Not struct {
	boolNode
	Expression Bool `filter:"-"`
}

func (Not) Kind() Kind { return "Not" }

// AllOf folds expressions into a left-deep And chain. It returns nil for no expressions.
func AllOf(exprs ...Bool) Bool {
	return fold(exprs, func(left, right Bool) Bool { return And{Left: left, Right: right} })
}

// AnyOf folds expressions into a left-deep Or chain. It returns nil for no expressions.
func AnyOf(exprs ...Bool) Bool {
	return fold(exprs, func(left, right Bool) Bool { return Or{Left: left, Right: right} })
}

func fold(exprs []Bool, combine func(left, right Bool) Bool) Bool {
	var result Bool
	for _, e := range exprs {
		if e == nil {
			continue
		}
		if result == nil {
			result = e
			continue
		}
		result = combine(result, e)
	}
	return result
}
