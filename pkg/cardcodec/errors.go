package cardcodec

import (
	"errors"
	"sort"
	"strings"
)

const (
	ReasonUnrecognized = "not a recognized card code"
	ReasonMalformed    = "malformed payload"
)

// ErrInvalidPayload tüm payload hatalarının ortak sentinel'i.
var ErrInvalidPayload = errors.New("invalid payload")

// InvalidPayloadError taranan metnin neden reddedildiğini taşır.
type InvalidPayloadError struct {
	Reason string
}

func (e *InvalidPayloadError) Error() string {
	return "invalid payload: " + e.Reason
}

// Is errors.Is(err, ErrInvalidPayload) kontrolünü sağlar.
func (e *InvalidPayloadError) Is(target error) bool {
	return target == ErrInvalidPayload
}

// FieldErrors alan adı -> hata mesajı.
type FieldErrors map[string]string

func (fe FieldErrors) Error() string {
	keys := make([]string, 0, len(fe))
	for k := range fe {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+fe[k])
	}
	return "invalid card fields: " + strings.Join(parts, "; ")
}
