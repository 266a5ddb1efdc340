package vadpcm

import "fmt"

// Kind identifies a category of VADPCM error, mirroring the vadpcm_error
// enum of the reference codec.
type Kind int

const (
	// kindInvalidData indicates malformed frame data: an out-of-range shift
	// or predictor index, a truncated frame stream, or PCM input whose
	// length is not a whole number of frames.
	kindInvalidData Kind = iota + 1
	// kindLargeOrder indicates a codebook with a predictor order other than
	// Order (2).
	kindLargeOrder
	// kindLargePredictorCount indicates a predictor count outside 1..16.
	kindLargePredictorCount
	// kindUnknownVersion indicates a codebook wire format version this
	// package does not understand.
	kindUnknownVersion
	// kindInvalidParams indicates invalid Params passed to Encode.
	kindInvalidParams
	// kindMemory is kept for parity with the reference codec's error
	// taxonomy; Go reports allocation failure as a panic rather than an
	// error return, so this Kind is never produced in practice.
	kindMemory
)

func (k Kind) String() string {
	switch k {
	case kindInvalidData:
		return "invalid data"
	case kindLargeOrder:
		return "order is too large"
	case kindLargePredictorCount:
		return "predictor count is too large"
	case kindUnknownVersion:
		return "unknown codebook version"
	case kindInvalidParams:
		return "invalid parameters"
	case kindMemory:
		return "out of memory"
	default:
		return "unknown error"
	}
}

// Error is the error type this package returns for codec failures; I/O
// errors from ReadCodebook and WriteCodebook are returned as wrapped I/O
// errors instead. It carries a Kind so callers can test the failure category with
// errors.Is against the sentinel values below, even after the error has
// been wrapped with fmt.Errorf("...: %w", err).
type Error struct {
	Kind Kind
	// Msg, when non-empty, supplements Kind's generic description with the
	// specific value that failed validation.
	Msg string
}

func (e *Error) Error() string {
	if e.Msg == "" {
		return fmt.Sprintf("vadpcm: %s", e.Kind)
	}
	return fmt.Sprintf("vadpcm: %s: %s", e.Kind, e.Msg)
}

// Is reports whether target is an *Error with the same Kind, so that
// errors.Is(err, vadpcm.ErrInvalidData) matches regardless of Msg.
func (e *Error) Is(target error) bool {
	other, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Kind == other.Kind
}

func newError(kind Kind, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}

// Sentinel errors for use with errors.Is. Their Msg is always empty, so
// they compare equal to any *Error of the same Kind.
var (
	ErrInvalidData         = &Error{Kind: kindInvalidData}
	ErrLargeOrder          = &Error{Kind: kindLargeOrder}
	ErrLargePredictorCount = &Error{Kind: kindLargePredictorCount}
	ErrUnknownVersion      = &Error{Kind: kindUnknownVersion}
	ErrInvalidParams       = &Error{Kind: kindInvalidParams}
	ErrMemory              = &Error{Kind: kindMemory}
)
