package hook

// Chain composes hooks so that the first hook is the outermost wrapper.
func Chain[T any](hooks ...func(next T) T) func(next T) T {
	var nonNil []func(next T) T
	for _, h := range hooks {
		if h != nil {
			nonNil = append(nonNil, h)
		}
	}
	if len(nonNil) == 0 {
		return nil
	}
	return func(next T) T {
		for i := len(nonNil) - 1; i >= 0; i-- {
			next = nonNil[i](next)
		}
		return next
	}
}

// Prepend places hooks in front of an existing hook, keeping the existing one innermost.
func Prepend[T any](existing func(next T) T, hooks ...func(next T) T) func(next T) T {
	all := make([]func(next T) T, 0, len(hooks)+1)
	all = append(all, hooks...)
	return Chain(append(all, existing)...)
}
