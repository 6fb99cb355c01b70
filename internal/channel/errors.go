package channel

import "errors"

var (
	ErrEmptyTargetID     = errors.New("target id is empty")
	ErrInvalidTargetKind = errors.New("invalid target kind")
	ErrTargetRequired    = errors.New("target required")
	ErrKindMismatch      = errors.New("target kind mismatch")
	ErrAmbiguousInput    = errors.New("ambiguous target input")
	ErrInvalidMention    = errors.New("invalid mention format")
	ErrNoMatch           = errors.New("no directory match")
	ErrAmbiguousMatch    = errors.New("ambiguous directory match")

	ErrConfigNotFound    = errors.New("channel config not found")
	ErrUnsupportedType   = errors.New("unsupported channel type")
	ErrTargetUnsupported = errors.New("channel does not support target resolution")
)

// TargetError carries a human-readable message for one of the sentinel errors above.
type TargetError struct {
	Err     error
	Input   string
	Message string
}

func (e *TargetError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "target error"
}

func (e *TargetError) Unwrap() error {
	return e.Err
}
