package cursor

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"io"

	"github.com/pkg/errors"
)

func encryptGCM(gcm cipher.AEAD, plainText string) (string, error) {
	nonce := make([]byte, gcm.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return "", errors.Wrap(err, "could not generate nonce")
	}

	cipherText := gcm.Seal(nonce, nonce, []byte(plainText), nil)
	return base64.RawURLEncoding.EncodeToString(cipherText), nil
}

func decryptGCM(gcm cipher.AEAD, cipherText string) (string, error) {
	decoded, err := base64.RawURLEncoding.DecodeString(cipherText)
	if err != nil {
		return "", errors.Wrap(err, "could not decode cipher text")
	}

	nonceSize := gcm.NonceSize()
	if len(decoded) < nonceSize {
		return "", errors.New("cipher text too short")
	}

	nonce, data := decoded[:nonceSize], decoded[nonceSize:]
	plainText, err := gcm.Open(nil, nonce, data, nil)
	if err != nil {
		return "", errors.Wrap(err, "could not decrypt cipher text")
	}
	return string(plainText), nil
}

// NewGCM creates an AES-GCM cipher from a 16, 24 or 32 byte key.
// The returned AEAD is safe for concurrent use.
func NewGCM(key []byte) (cipher.AEAD, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, errors.Wrap(err, "could not create cipher")
	}

	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, errors.Wrap(err, "could not create AEAD")
	}
	return gcm, nil
}

// GCM encrypts cursors so clients cannot forge offsets into another result.
func GCM(gcm cipher.AEAD) Middleware {
	return func(next Codec) Codec {
		return codecFuncs{
			encode: func(offset int) (string, error) {
				cursor, err := next.Encode(offset)
				if err != nil {
					return "", err
				}
				return encryptGCM(gcm, cursor)
			},
			decode: func(cursor string) (int, error) {
				decrypted, err := decryptGCM(gcm, cursor)
				if err != nil {
					return 0, errors.Wrap(err, "invalid cursor")
				}
				return next.Decode(decrypted)
			},
		}
	}
}
