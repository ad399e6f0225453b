package pulse

import (
	"github.com/pthm/pulse/lib/encoding"
)

// Encoder is an alias for encoding.Encoder for convenience.
type Encoder = encoding.Encoder

// NewEncoder creates an options encoder with the given key.
func NewEncoder(key []byte) (*Encoder, error) {
	return encoding.NewEncoder(key)
}

// EncodeOptions packs opts for the <marker>-props attribute. It is the
// string form of Config.MarkerAttrs.
func EncodeOptions(enc *Encoder, opts map[string]string, sealed bool) (string, error) {
	if enc == nil {
		return "", ErrNoEncoder
	}
	return enc.EncodeOptions(opts, sealed)
}
