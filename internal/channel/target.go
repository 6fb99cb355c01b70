package channel

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
)

// TargetKind is the addressee kind of a messaging target.
type TargetKind string

const (
	TargetUser    TargetKind = "user"
	TargetChannel TargetKind = "channel"
)

// Valid reports whether k is one of the known target kinds.
func (k TargetKind) Valid() bool {
	return k == TargetUser || k == TargetChannel
}

// ParseTargetKind normalizes raw into a TargetKind. An empty input yields an empty kind.
func ParseTargetKind(raw string) (TargetKind, error) {
	kind := TargetKind(strings.ToLower(strings.TrimSpace(raw)))
	if kind == "" {
		return "", nil
	}
	if !kind.Valid() {
		return "", &TargetError{Err: ErrInvalidTargetKind, Input: raw, Message: fmt.Sprintf("unsupported target kind %q (use user or channel)", raw)}
	}
	return kind, nil
}

// Target is a resolved, unambiguous addressee. The zero value means "no target".
type Target struct {
	kind TargetKind
	id   string
	raw  string
}

// BuildTarget constructs a target. It fails on an unknown kind or an empty id.
func BuildTarget(kind TargetKind, id, raw string) (Target, error) {
	if !kind.Valid() {
		return Target{}, &TargetError{Err: ErrInvalidTargetKind, Input: raw, Message: fmt.Sprintf("unsupported target kind %q", kind)}
	}
	id = strings.TrimSpace(id)
	if id == "" {
		return Target{}, &TargetError{Err: ErrEmptyTargetID, Input: raw, Message: fmt.Sprintf("%s target id is required", kind)}
	}
	return Target{kind: kind, id: id, raw: raw}, nil
}

func (t Target) Kind() TargetKind { return t.kind }

func (t Target) ID() string { return t.id }

// Raw returns the input the target was built from.
func (t Target) Raw() string { return t.raw }

func (t Target) IsZero() bool { return t.id == "" }

// String renders the target in prefixed form, e.g. "user:123".
func (t Target) String() string {
	if t.IsZero() {
		return ""
	}
	return string(t.kind) + ":" + t.id
}

type targetJSON struct {
	Kind TargetKind `json:"kind"`
	ID   string     `json:"id"`
	Raw  string     `json:"raw"`
}

func (t Target) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(targetJSON{Kind: t.kind, ID: t.id, Raw: t.raw})
}

// ParseOptions controls how an ambiguous bare id is interpreted.
type ParseOptions struct {
	DefaultKind      TargetKind
	AmbiguousMessage string
}

// AssertID returns the trimmed candidate when it matches pattern, and fail otherwise.
func AssertID(candidate string, pattern *regexp.Regexp, fail error) (string, error) {
	candidate = strings.TrimSpace(candidate)
	if pattern == nil || !pattern.MatchString(candidate) {
		return "", fail
	}
	return candidate, nil
}

// RequireKind returns the id of target when it is of the wanted kind.
// platform labels the error message (e.g. "Discord").
func RequireKind(platform string, target Target, kind TargetKind) (string, error) {
	if target.IsZero() {
		return "", &TargetError{Err: ErrTargetRequired, Message: fmt.Sprintf("%s %s id is required", platform, kind)}
	}
	if target.Kind() != kind {
		return "", &TargetError{
			Err:     ErrKindMismatch,
			Input:   target.Raw(),
			Message: fmt.Sprintf("%s %s id is required (got %s target %q)", platform, kind, target.Kind(), target.Raw()),
		}
	}
	return target.ID(), nil
}

type TargetHint struct {
	Example string `json:"example,omitempty"`
	Label   string `json:"label,omitempty"`
}

// TargetSpec documents the recipient formats a channel accepts.
type TargetSpec struct {
	Format string       `json:"format"`
	Hints  []TargetHint `json:"hints,omitempty"`
}
