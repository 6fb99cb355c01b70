package channel

import "context"

// Adapter is the minimal contract of a platform adapter.
type Adapter interface {
	Type() Type
	Descriptor() Descriptor
}

// Descriptor describes a registered platform.
type Descriptor struct {
	Type        Type       `json:"type"`
	DisplayName string     `json:"display_name"`
	Target      TargetSpec `json:"target"`
}

// TargetResolver turns raw recipient strings into targets.
type TargetResolver interface {
	ParseTarget(raw string, opts ParseOptions) (Target, error)
	ChannelID(raw string) (string, error)
	ResolveTarget(ctx context.Context, cfg Config, raw string, opts ParseOptions) (Target, error)
}

// TargetFormatter renders a target in the platform's native mention syntax.
type TargetFormatter interface {
	FormatTarget(target Target) string
}
