package channel_test

import (
	"encoding/json"
	"errors"
	"regexp"
	"testing"

	"github.com/memohai/targetresolver/internal/channel"
)

func TestBuildTarget(t *testing.T) {
	t.Parallel()
	target, err := channel.BuildTarget(channel.TargetUser, " 123 ", "user:123")
	if err != nil {
		t.Fatalf("BuildTarget: %v", err)
	}
	if target.Kind() != channel.TargetUser || target.ID() != "123" || target.Raw() != "user:123" {
		t.Fatalf("BuildTarget = %+v", target)
	}
	if target.String() != "user:123" {
		t.Errorf("String() = %q", target.String())
	}
}

func TestBuildTarget_EmptyID(t *testing.T) {
	t.Parallel()
	_, err := channel.BuildTarget(channel.TargetChannel, "   ", "channel:")
	if !errors.Is(err, channel.ErrEmptyTargetID) {
		t.Fatalf("expected ErrEmptyTargetID, got %v", err)
	}
}

func TestBuildTarget_InvalidKind(t *testing.T) {
	t.Parallel()
	_, err := channel.BuildTarget(channel.TargetKind("group"), "1", "1")
	if !errors.Is(err, channel.ErrInvalidTargetKind) {
		t.Fatalf("expected ErrInvalidTargetKind, got %v", err)
	}
}

func TestParseTargetKind(t *testing.T) {
	t.Parallel()
	tests := []struct {
		input   string
		want    channel.TargetKind
		wantErr bool
	}{
		{"", "", false},
		{"user", channel.TargetUser, false},
		{" Channel ", channel.TargetChannel, false},
		{"group", "", true},
	}
	for _, tt := range tests {
		got, err := channel.ParseTargetKind(tt.input)
		if (err != nil) != tt.wantErr || got != tt.want {
			t.Errorf("ParseTargetKind(%q) = %q, %v; want %q, err=%v", tt.input, got, err, tt.want, tt.wantErr)
		}
	}
}

func TestTarget_ZeroValue(t *testing.T) {
	t.Parallel()
	var target channel.Target
	if !target.IsZero() || target.String() != "" {
		t.Fatalf("zero target = %+v", target)
	}
	data, err := json.Marshal(target)
	if err != nil || string(data) != "null" {
		t.Fatalf("Marshal(zero) = %s, %v", data, err)
	}
}

func TestTarget_MarshalJSON(t *testing.T) {
	t.Parallel()
	target, _ := channel.BuildTarget(channel.TargetChannel, "42", "channel:42")
	data, err := json.Marshal(target)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if string(data) != `{"kind":"channel","id":"42","raw":"channel:42"}` {
		t.Errorf("Marshal = %s", data)
	}
}

func TestAssertID(t *testing.T) {
	t.Parallel()
	pattern := regexp.MustCompile(`^\d+$`)
	fail := errors.New("need digits")
	id, err := channel.AssertID(" 42 ", pattern, fail)
	if err != nil || id != "42" {
		t.Fatalf("AssertID(42) = %q, %v", id, err)
	}
	if _, err := channel.AssertID("abc", pattern, fail); !errors.Is(err, fail) {
		t.Fatalf("AssertID(abc) err = %v", err)
	}
}

func TestRequireKind(t *testing.T) {
	t.Parallel()
	user, _ := channel.BuildTarget(channel.TargetUser, "7", "user:7")
	ch, _ := channel.BuildTarget(channel.TargetChannel, "8", "channel:8")

	id, err := channel.RequireKind("Test", ch, channel.TargetChannel)
	if err != nil || id != "8" {
		t.Fatalf("RequireKind(channel) = %q, %v", id, err)
	}

	_, err = channel.RequireKind("Test", user, channel.TargetChannel)
	if !errors.Is(err, channel.ErrKindMismatch) {
		t.Fatalf("expected ErrKindMismatch, got %v", err)
	}
	if got := err.Error(); got != `Test channel id is required (got user target "user:7")` {
		t.Errorf("message = %q", got)
	}

	_, err = channel.RequireKind("Test", channel.Target{}, channel.TargetChannel)
	if !errors.Is(err, channel.ErrTargetRequired) {
		t.Fatalf("expected ErrTargetRequired, got %v", err)
	}
}
