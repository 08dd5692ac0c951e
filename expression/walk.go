package expression

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/samber/lo"

	"github.com/theplant/animefilter/filterable"
)

// Children returns the non-nil direct children of e in field order.
func Children(e Expression) []Expression {
	if e == nil {
		return nil
	}
	nt := lookup(e)
	v := reflect.ValueOf(e)
	result := make([]Expression, 0, len(nt.children))
	for _, idx := range nt.children {
		if child, ok := v.Field(idx).Interface().(Expression); ok && child != nil {
			result = append(result, child)
		}
	}
	return result
}

// Walk visits e and its descendants depth first. Returning false from fn
// skips the children of the visited node.
func Walk(e Expression, fn func(e Expression, depth int) bool) {
	walk(e, 1, fn)
}

func walk(e Expression, depth int, fn func(e Expression, depth int) bool) {
	if e == nil || !fn(e, depth) {
		return
	}
	for _, child := range Children(e) {
		walk(child, depth+1, fn)
	}
}

func anyNode(e Expression, pred func(info *Info) bool) bool {
	found := false
	Walk(e, func(n Expression, _ int) bool {
		if pred(lookup(n).info) {
			found = true
		}
		return !found
	})
	return found
}

// IsUserDependent reports whether e or any descendant reads user facts.
func IsUserDependent(e Expression) bool {
	return anyNode(e, func(info *Info) bool { return info.UserDependent })
}

// IsTimeDependent reports whether e or any descendant reads the clock.
func IsTimeDependent(e Expression) bool {
	return anyNode(e, func(info *Info) bool { return info.TimeDependent })
}

// IsDeprecated reports whether e or any descendant is deprecated.
func IsDeprecated(e Expression) bool {
	return anyNode(e, func(info *Info) bool { return info.Deprecated })
}

// Equal reports whether a and b are structurally equal: same kinds, equal
// parameters and equal children in order.
func Equal(a, b Expression) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	if a.Kind() != b.Kind() {
		return false
	}
	nt := lookup(a)
	va, vb := reflect.ValueOf(a), reflect.ValueOf(b)
	for _, idx := range nt.params {
		pa, pb := va.Field(idx).Interface(), vb.Field(idx).Interface()
		if ta, ok := pa.(time.Time); ok {
			if !ta.Equal(pb.(time.Time)) {
				return false
			}
			continue
		}
		if pa != pb {
			return false
		}
	}
	for _, idx := range nt.children {
		ca, _ := va.Field(idx).Interface().(Expression)
		cb, _ := vb.Field(idx).Interface().(Expression)
		if !Equal(ca, cb) {
			return false
		}
	}
	return true
}

// Validate reports nil children and invalid parameters anywhere in e.
func Validate(e Expression) error {
	if e == nil {
		return errors.New("nil expression")
	}
	nt := lookup(e)
	v := reflect.ValueOf(e)
	for _, idx := range nt.children {
		child, _ := v.Field(idx).Interface().(Expression)
		if child == nil {
			return errors.Errorf("%s.%s is nil", e.Kind(), nt.typ.Field(idx).Name)
		}
		if err := Validate(child); err != nil {
			return errors.Wrapf(err, "%s.%s", e.Kind(), nt.typ.Field(idx).Name)
		}
	}
	if n, ok := e.(InSeason); ok && !n.Season.Valid() {
		return errors.Errorf("%s has invalid season %q", e.Kind(), n.Season)
	}
	return nil
}

// Format renders e in a compact human readable form, e.g.
// And(HasTag(Tag: "Mecha"), Not(IsFinished)).
func Format(e Expression) string {
	var sb strings.Builder
	format(&sb, e)
	return sb.String()
}

func format(sb *strings.Builder, e Expression) {
	if e == nil {
		sb.WriteString("<nil>")
		return
	}
	nt := lookup(e)
	sb.WriteString(string(e.Kind()))
	if len(nt.params) == 0 && len(nt.children) == 0 {
		return
	}
	v := reflect.ValueOf(e)
	args := make([]string, 0, len(nt.params)+len(nt.children))
	for _, idx := range nt.children {
		child, _ := v.Field(idx).Interface().(Expression)
		args = append(args, Format(child))
	}
	args = append(args, lo.Map(nt.params, func(idx int, _ int) string {
		return nt.typ.Field(idx).Name + ": " + formatParameter(v.Field(idx).Interface())
	})...)
	sb.WriteString("(")
	sb.WriteString(strings.Join(args, ", "))
	sb.WriteString(")")
}

func formatParameter(p any) string {
	switch p := p.(type) {
	case string:
		return strconv.Quote(p)
	case filterable.Season:
		return string(p)
	case float64:
		return strconv.FormatFloat(p, 'f', -1, 64)
	case time.Time:
		return p.Format(time.RFC3339)
	case time.Duration:
		return p.String()
	}
	return fmt.Sprint(p)
}
