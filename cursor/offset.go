// Package cursor pages ordered evaluation results with opaque offset cursors.
package cursor

import (
	"strconv"

	"github.com/pkg/errors"

	"github.com/theplant/animefilter/internal/hook"
)

// Codec turns offsets into cursors and back.
type Codec interface {
	Encode(offset int) (string, error)
	Decode(cursor string) (int, error)
}

// Middleware wraps a codec, e.g. to encode or encrypt its cursors.
type Middleware func(next Codec) Codec

type codecFuncs struct {
	encode func(offset int) (string, error)
	decode func(cursor string) (int, error)
}

func (c codecFuncs) Encode(offset int) (string, error) { return c.encode(offset) }
func (c codecFuncs) Decode(cursor string) (int, error) { return c.decode(cursor) }

// Offset is the plain codec writing offsets as decimal strings.
var Offset Codec = codecFuncs{
	encode: func(offset int) (string, error) {
		return EncodeOffsetCursor(offset), nil
	},
	decode: DecodeOffsetCursor,
}

// NewCodec wraps Offset with middlewares, the first being the outermost.
func NewCodec(middlewares ...Middleware) Codec {
	chain := hook.Chain(middlewaresAsHooks(middlewares)...)
	if chain == nil {
		return Offset
	}
	return chain(Offset)
}

func middlewaresAsHooks(middlewares []Middleware) []func(next Codec) Codec {
	hooks := make([]func(next Codec) Codec, len(middlewares))
	for i, m := range middlewares {
		hooks[i] = m
	}
	return hooks
}

func EncodeOffsetCursor(offset int) string {
	return strconv.Itoa(offset)
}

func DecodeOffsetCursor(cursor string) (int, error) {
	offset, err := strconv.Atoi(cursor)
	if err != nil {
		return 0, errors.Wrapf(err, "invalid offset cursor %q: cannot convert to integer", cursor)
	}
	if offset < 0 {
		return 0, errors.Errorf("invalid offset cursor %q: must be non-negative", cursor)
	}
	return offset, nil
}
