package cursor

import (
	"encoding/base64"

	"github.com/pkg/errors"
)

// Base64 hides the offset behind URL safe base64.
func Base64(next Codec) Codec {
	return codecFuncs{
		encode: func(offset int) (string, error) {
			cursor, err := next.Encode(offset)
			if err != nil {
				return "", err
			}
			return base64.RawURLEncoding.EncodeToString([]byte(cursor)), nil
		},
		decode: func(cursor string) (int, error) {
			decoded, err := base64.RawURLEncoding.DecodeString(cursor)
			if err != nil {
				return 0, errors.Wrap(err, "invalid cursor")
			}
			return next.Decode(string(decoded))
		},
	}
}
