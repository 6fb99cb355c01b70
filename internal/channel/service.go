package channel

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"
)

// ConfigResolver supplies the account context for a bot on a platform.
type ConfigResolver interface {
	ResolveEffectiveConfig(ctx context.Context, botID string, channelType Type) (Config, error)
}

// ServiceOptions holds process-wide resolution defaults.
type ServiceOptions struct {
	DefaultKind TargetKind
	// Timeout bounds one ResolveTarget call; zero means no bound beyond the caller's context.
	Timeout time.Duration
}

// TargetRequest is one recipient string to interpret on a platform.
type TargetRequest struct {
	Platform         string
	Input            string
	DefaultKind      TargetKind
	AmbiguousMessage string
	BotID            string
}

// TargetResult is an interpreted recipient. Target is zero when the input named nobody.
type TargetResult struct {
	Platform  Type   `json:"platform"`
	Target    Target `json:"target"`
	Formatted string `json:"formatted,omitempty"`
}

// Service dispatches target parsing and resolution to the registered adapters.
type Service struct {
	registry *Registry
	configs  ConfigResolver
	opts     ServiceOptions
	logger   *slog.Logger
}

// NewService creates a Service over the given registry. configs may be nil, in which case
// resolution runs with an empty account context.
func NewService(log *slog.Logger, registry *Registry, configs ConfigResolver, opts ServiceOptions) *Service {
	if log == nil {
		log = slog.Default()
	}
	if registry == nil {
		registry = NewRegistry()
	}
	return &Service{
		registry: registry,
		configs:  configs,
		opts:     opts,
		logger:   log.With(slog.String("service", "channel")),
	}
}

// ListDescriptors returns the descriptors of all registered platforms.
func (s *Service) ListDescriptors() []Descriptor {
	return s.registry.ListDescriptors()
}

// GetDescriptor returns the descriptor of one platform.
func (s *Service) GetDescriptor(platform string) (Descriptor, error) {
	ct, err := s.parsePlatform(platform)
	if err != nil {
		return Descriptor{}, err
	}
	desc, _ := s.registry.GetDescriptor(ct)
	return desc, nil
}

// ParseTarget interprets req.Input syntactically, without directory access.
func (s *Service) ParseTarget(req TargetRequest) (TargetResult, error) {
	ct, resolver, err := s.resolverFor(req.Platform)
	if err != nil {
		return TargetResult{}, err
	}
	target, err := resolver.ParseTarget(req.Input, s.parseOptions(req))
	if err != nil {
		return TargetResult{}, err
	}
	return s.result(ct, target), nil
}

// ResolveTarget interprets req.Input, consulting the platform directory for names.
func (s *Service) ResolveTarget(ctx context.Context, req TargetRequest) (TargetResult, error) {
	ct, resolver, err := s.resolverFor(req.Platform)
	if err != nil {
		return TargetResult{}, err
	}
	cfg, err := s.effectiveConfig(ctx, req.BotID, ct)
	if err != nil {
		return TargetResult{}, err
	}
	if s.opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.opts.Timeout)
		defer cancel()
	}
	target, err := resolver.ResolveTarget(ctx, cfg, req.Input, s.parseOptions(req))
	if err != nil {
		s.logger.Debug("resolve target failed",
			slog.String("platform", ct.String()),
			slog.String("input", req.Input),
			slog.Any("error", err),
		)
		return TargetResult{}, err
	}
	return s.result(ct, target), nil
}

// ChannelID extracts a channel id from input on the platform.
func (s *Service) ChannelID(platform, input string) (string, error) {
	_, resolver, err := s.resolverFor(platform)
	if err != nil {
		return "", err
	}
	return resolver.ChannelID(input)
}

func (s *Service) parsePlatform(platform string) (Type, error) {
	ct, err := s.registry.ParseType(platform)
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrUnsupportedType, strings.TrimSpace(platform))
	}
	return ct, nil
}

func (s *Service) resolverFor(platform string) (Type, TargetResolver, error) {
	ct, err := s.parsePlatform(platform)
	if err != nil {
		return "", nil, err
	}
	resolver, ok := s.registry.TargetResolver(ct)
	if !ok {
		return "", nil, fmt.Errorf("%w: %s", ErrTargetUnsupported, ct)
	}
	return ct, resolver, nil
}

func (s *Service) effectiveConfig(ctx context.Context, botID string, ct Type) (Config, error) {
	fallback := Config{Type: ct, BotID: strings.TrimSpace(botID)}
	if s.configs == nil {
		return fallback, nil
	}
	cfg, err := s.configs.ResolveEffectiveConfig(ctx, botID, ct)
	if errors.Is(err, ErrConfigNotFound) {
		return fallback, nil
	}
	return cfg, err
}

func (s *Service) parseOptions(req TargetRequest) ParseOptions {
	opts := ParseOptions{DefaultKind: req.DefaultKind, AmbiguousMessage: req.AmbiguousMessage}
	if opts.DefaultKind == "" {
		opts.DefaultKind = s.opts.DefaultKind
	}
	return opts
}

func (s *Service) result(ct Type, target Target) TargetResult {
	res := TargetResult{Platform: ct, Target: target}
	if !target.IsZero() {
		res.Formatted = s.registry.FormatTarget(ct, target)
	}
	return res
}
