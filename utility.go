package animefilter

import "github.com/samber/lo"

// Integer is a type constraint for integer types.
type Integer interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 | ~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64
}

// PtrAs converts a pointer to a different integer type, e.g. a nullable
// database id to a preset parent id.
func PtrAs[From, To Integer](v *From) *To {
	if v == nil {
		return nil
	}
	return lo.ToPtr(To(*v))
}

// IDsAs converts a slice of ids to a different integer type.
func IDsAs[From, To Integer](ids []From) []To {
	return lo.Map(ids, func(id From, _ int) To { return To(id) })
}
