package gifkit

import "errors"

// Kind classifies a gifkit error.
type Kind uint8

const (
	// KindConfiguration covers bad dimensions, bad geometry and double creation.
	KindConfiguration Kind = iota + 1

	// KindPalette covers palette overflow, mutation after sealing, sealing an
	// empty palette and out-of-range color indices.
	KindPalette

	// KindSequence covers calls made in the wrong document state.
	KindSequence

	// KindEncoding covers I/O failures while writing the output stream.
	KindEncoding
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindConfiguration:
		return "configuration error"
	case KindPalette:
		return "palette error"
	case KindSequence:
		return "sequence error"
	case KindEncoding:
		return "encoding error"
	default:
		return "unknown error"
	}
}

// Kind sentinels. Every error returned by a Document matches exactly one of
// these with errors.Is.
var (
	ErrConfiguration = errors.New("gifkit: configuration error")
	ErrPalette       = errors.New("gifkit: palette error")
	ErrSequence      = errors.New("gifkit: sequence error")
	ErrEncoding      = errors.New("gifkit: encoding error")
)

// Concrete errors.
var (
	// ErrInvalidDimensions is returned when the canvas width or height is
	// outside 1..65535.
	ErrInvalidDimensions = newError(KindConfiguration, "invalid canvas dimensions")

	// ErrAlreadyCreated is returned when an output is attached twice.
	ErrAlreadyCreated = newError(KindConfiguration, "document already created")

	// ErrInvalidRect is returned for a rectangle with negative width or height.
	ErrInvalidRect = newError(KindConfiguration, "rectangle width and height must be non-negative")

	// ErrPaletteFull is returned when more than 256 colors are registered.
	ErrPaletteFull = newError(KindPalette, "palette is full")

	// ErrPaletteSealed is returned when the palette is mutated after InitEnd.
	ErrPaletteSealed = newError(KindPalette, "palette is sealed")

	// ErrEmptyPalette is returned when InitEnd is called with no colors.
	ErrEmptyPalette = newError(KindPalette, "palette is empty")

	// ErrColorIndex is returned when a draw call names an unregistered color.
	ErrColorIndex = newError(KindPalette, "color index out of range")

	// ErrNotReady is returned when drawing or writing frames before InitEnd.
	ErrNotReady = newError(KindSequence, "document is not ready, call InitEnd first")

	// ErrNoOutput is returned by InitEnd when no output has been attached.
	ErrNoOutput = newError(KindSequence, "document has no output")

	// ErrHeaderWritten is returned by settings that only apply to the header.
	ErrHeaderWritten = newError(KindSequence, "header already written")

	// ErrDocumentClosed is returned by any call after Finish.
	ErrDocumentClosed = newError(KindSequence, "document is closed")
)

// Error is the error type returned by gifkit. It carries a Kind, the
// operation that failed and, for encoding errors, the underlying cause.
type Error struct {
	Kind Kind
	Op   string
	Msg  string
	Err  error

	base *Error
}

func newError(kind Kind, msg string) *Error {
	return &Error{Kind: kind, Msg: msg}
}

// Error implements the error interface.
func (e *Error) Error() string {
	s := "gifkit: "
	if e.Op != "" {
		s += e.Op + ": "
	}
	switch {
	case e.Msg != "" && e.Err != nil:
		return s + e.Msg + ": " + e.Err.Error()
	case e.Err != nil:
		return s + e.Err.Error()
	default:
		return s + e.Msg
	}
}

// Unwrap returns the underlying cause, if any.
func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches the kind sentinel of e and the concrete error e was built from.
func (e *Error) Is(target error) bool {
	if target == kindSentinel(e.Kind) {
		return true
	}
	return e.base != nil && target == e.base
}

func kindSentinel(k Kind) error {
	switch k {
	case KindConfiguration:
		return ErrConfiguration
	case KindPalette:
		return ErrPalette
	case KindSequence:
		return ErrSequence
	case KindEncoding:
		return ErrEncoding
	default:
		return nil
	}
}

// opError attaches an operation name to a concrete error.
func opError(op string, base *Error) error {
	return &Error{Kind: base.Kind, Op: op, Msg: base.Msg, base: base}
}

// encodingError wraps an I/O failure.
func encodingError(op string, err error) error {
	return &Error{Kind: KindEncoding, Op: op, Err: err}
}
