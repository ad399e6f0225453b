package pulse

import (
	"errors"
	"fmt"

	"github.com/pthm/pulse/lib/encoding"
)

// Sentinel errors for component operations.
var (
	ErrReservedName     = errors.New("pulse: property is reserved")
	ErrTemplateShape    = errors.New("pulse: template must resolve to exactly one root node")
	ErrTemplateNotFound = errors.New("pulse: template not found")
	ErrDestroyed        = errors.New("pulse: component destroyed")
	ErrInvalidSelector  = errors.New("pulse: invalid selector")
	ErrNoEncoder        = errors.New("pulse: no encoder configured")

	ErrInvalidFormat    = encoding.ErrInvalidFormat
	ErrSignatureInvalid = encoding.ErrSignatureInvalid
	ErrDecryptFailed    = encoding.ErrDecryptFailed
)

// ReservedNameError is returned by Mount when a behavior declares a member
// that shadows one of the base capabilities.
type ReservedNameError struct {
	Selector string
	Name     string
}

func (e *ReservedNameError) Error() string {
	return fmt.Sprintf("pulse: %s: %s property is reserved", e.Selector, e.Name)
}

func (e *ReservedNameError) Unwrap() error {
	return ErrReservedName
}

// TemplateShapeError is returned when substituted template markup does not
// parse to exactly one top-level node.
type TemplateShapeError struct {
	Selector string
	Template string
	Roots    int
}

func (e *TemplateShapeError) Error() string {
	return fmt.Sprintf("pulse: %s: template %q must resolve to exactly one root node, got %d",
		e.Selector, e.Template, e.Roots)
}

func (e *TemplateShapeError) Unwrap() error {
	return ErrTemplateShape
}

// IsReservedName checks if err is a reserved-name collision.
func IsReservedName(err error) bool {
	return errors.Is(err, ErrReservedName)
}

// IsTemplateShape checks if err is a multi-root (or empty) template error.
func IsTemplateShape(err error) bool {
	return errors.Is(err, ErrTemplateShape)
}

// IsDestroyed checks if err reports use of a destroyed component.
func IsDestroyed(err error) bool {
	return errors.Is(err, ErrDestroyed)
}

// IsDecodeError checks if err is a props decoding, signature or decryption error.
func IsDecodeError(err error) bool {
	return errors.Is(err, ErrInvalidFormat) ||
		errors.Is(err, ErrSignatureInvalid) ||
		errors.Is(err, ErrDecryptFailed)
}

// IsInvalidSelector checks if err reports a selector that failed to compile.
func IsInvalidSelector(err error) bool {
	return errors.Is(err, ErrInvalidSelector)
}
