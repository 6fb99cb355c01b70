package channel_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/memohai/targetresolver/internal/channel"
)

const recordingType = channel.Type("recording")

// recordingAdapter resolves every input to a user and remembers what it was called with.
type recordingAdapter struct {
	cfg         channel.Config
	opts        channel.ParseOptions
	hasDeadline bool
	err         error
}

func (a *recordingAdapter) Type() channel.Type { return recordingType }

func (a *recordingAdapter) Descriptor() channel.Descriptor {
	return channel.Descriptor{Type: recordingType, DisplayName: "Recording"}
}

func (a *recordingAdapter) ParseTarget(raw string, opts channel.ParseOptions) (channel.Target, error) {
	a.opts = opts
	if a.err != nil {
		return channel.Target{}, a.err
	}
	if raw == "" {
		return channel.Target{}, nil
	}
	return channel.BuildTarget(channel.TargetUser, raw, raw)
}

func (a *recordingAdapter) ChannelID(raw string) (string, error) { return "c-" + raw, nil }

func (a *recordingAdapter) ResolveTarget(ctx context.Context, cfg channel.Config, raw string, opts channel.ParseOptions) (channel.Target, error) {
	a.cfg = cfg
	_, a.hasDeadline = ctx.Deadline()
	return a.ParseTarget(raw, opts)
}

func TestService_ParseTarget(t *testing.T) {
	t.Parallel()
	reg := channel.NewRegistry()
	rec := &recordingAdapter{}
	reg.MustRegister(rec)
	reg.MustRegister(&dirMockAdapter{})
	svc := channel.NewService(nil, reg, nil, channel.ServiceOptions{DefaultKind: channel.TargetChannel})

	res, err := svc.ParseTarget(channel.TargetRequest{Platform: "Recording", Input: "42", AmbiguousMessage: "pick one"})
	if err != nil {
		t.Fatalf("ParseTarget: %v", err)
	}
	if res.Platform != recordingType || res.Target.String() != "user:42" {
		t.Errorf("result = %+v", res)
	}
	if rec.opts.DefaultKind != channel.TargetChannel || rec.opts.AmbiguousMessage != "pick one" {
		t.Errorf("service default not applied: %+v", rec.opts)
	}
	if res.Formatted != "user:42" {
		t.Errorf("Formatted = %q", res.Formatted)
	}

	if _, err := svc.ParseTarget(channel.TargetRequest{Platform: "recording", Input: "1", DefaultKind: channel.TargetUser}); err != nil {
		t.Fatalf("ParseTarget: %v", err)
	}
	if rec.opts.DefaultKind != channel.TargetUser {
		t.Errorf("request kind must win, got %q", rec.opts.DefaultKind)
	}

	res, err = svc.ParseTarget(channel.TargetRequest{Platform: "dir-test", Input: "general"})
	if err != nil || res.Formatted != "#general" {
		t.Errorf("formatted = %q, %v", res.Formatted, err)
	}

	res, err = svc.ParseTarget(channel.TargetRequest{Platform: "recording", Input: ""})
	if err != nil || !res.Target.IsZero() || res.Formatted != "" {
		t.Errorf("empty = %+v, %v", res, err)
	}
}

func TestService_UnsupportedPlatform(t *testing.T) {
	t.Parallel()
	reg := channel.NewRegistry()
	reg.MustRegister(&plainAdapter{})
	svc := channel.NewService(nil, reg, nil, channel.ServiceOptions{})

	if _, err := svc.ParseTarget(channel.TargetRequest{Platform: "nope", Input: "x"}); !errors.Is(err, channel.ErrUnsupportedType) {
		t.Errorf("unknown platform error = %v", err)
	}
	if _, err := svc.ChannelID("plain", "x"); !errors.Is(err, channel.ErrTargetUnsupported) {
		t.Errorf("resolver-less platform error = %v", err)
	}
	if _, err := svc.GetDescriptor("nope"); !errors.Is(err, channel.ErrUnsupportedType) {
		t.Errorf("GetDescriptor error = %v", err)
	}
	desc, err := svc.GetDescriptor("plain")
	if err != nil || desc.DisplayName != "Plain" {
		t.Errorf("GetDescriptor = %+v, %v", desc, err)
	}
}

func TestService_ResolveTarget(t *testing.T) {
	t.Parallel()
	reg := channel.NewRegistry()
	rec := &recordingAdapter{}
	reg.MustRegister(rec)
	configs := channel.NewConfigSet(channel.Config{ID: "cfg-1", BotID: "bot-1", Type: recordingType})
	svc := channel.NewService(nil, reg, configs, channel.ServiceOptions{Timeout: time.Second})

	res, err := svc.ResolveTarget(context.Background(), channel.TargetRequest{Platform: "recording", Input: "alice", BotID: "bot-9"})
	if err != nil {
		t.Fatalf("ResolveTarget: %v", err)
	}
	if res.Target.ID() != "alice" {
		t.Errorf("target = %v", res.Target)
	}
	if rec.cfg.ID != "cfg-1" || rec.cfg.BotID != "bot-9" {
		t.Errorf("config = %+v", rec.cfg)
	}
	if !rec.hasDeadline {
		t.Error("expected resolution deadline")
	}

	rec.err = channel.ErrNoMatch
	if _, err := svc.ResolveTarget(context.Background(), channel.TargetRequest{Platform: "recording", Input: "x"}); !errors.Is(err, channel.ErrNoMatch) {
		t.Errorf("error = %v", err)
	}
}

func TestService_ResolveTarget_MissingConfigFallsBack(t *testing.T) {
	t.Parallel()
	reg := channel.NewRegistry()
	rec := &recordingAdapter{}
	reg.MustRegister(rec)
	svc := channel.NewService(nil, reg, channel.NewConfigSet(), channel.ServiceOptions{})

	if _, err := svc.ResolveTarget(context.Background(), channel.TargetRequest{Platform: "recording", Input: "a", BotID: "bot-2"}); err != nil {
		t.Fatalf("ResolveTarget: %v", err)
	}
	if rec.cfg.Type != recordingType || rec.cfg.BotID != "bot-2" {
		t.Errorf("fallback config = %+v", rec.cfg)
	}
	if rec.hasDeadline {
		t.Error("unexpected deadline without timeout")
	}
}

func TestService_ChannelIDAndDescriptors(t *testing.T) {
	t.Parallel()
	reg := channel.NewRegistry()
	reg.MustRegister(&recordingAdapter{})
	reg.MustRegister(&plainAdapter{})
	svc := channel.NewService(nil, reg, nil, channel.ServiceOptions{})

	id, err := svc.ChannelID("recording", "7")
	if err != nil || id != "c-7" {
		t.Errorf("ChannelID = %q, %v", id, err)
	}
	descs := svc.ListDescriptors()
	if len(descs) != 2 || descs[0].Type != plainChannelType || descs[1].Type != recordingType {
		t.Errorf("descriptors = %+v", descs)
	}
}
