package discord

import (
	"fmt"

	"github.com/memohai/targetresolver/internal/channel"
)

// parseResult is the outcome of a syntax-only parse. A zero target with a nil
// error means the input named no target.
type parseResult struct {
	target channel.Target
	err    error
}

func (r parseResult) ok() bool {
	return r.err == nil && !r.target.IsZero()
}

// ParseTarget classifies raw into a user or channel target without any I/O.
// Empty input yields a zero target and a nil error.
func ParseTarget(raw string, opts channel.ParseOptions) (channel.Target, error) {
	res := parseClassified(classify(raw), opts)
	return res.target, res.err
}

// ChannelID parses raw as a channel reference and returns its id.
// Bare numeric input is read as a channel id; user forms are rejected.
func ChannelID(raw string) (string, error) {
	target, err := ParseTarget(raw, channel.ParseOptions{DefaultKind: channel.TargetChannel})
	if err != nil {
		return "", err
	}
	return channel.RequireKind(platformLabel, target, channel.TargetChannel)
}

func parseClassified(c classified, opts channel.ParseOptions) parseResult {
	switch c.form {
	case formEmpty:
		return parseResult{}
	case formMention:
		return buildResult(channel.TargetUser, c.body, c.input)
	case formUserPrefix, formLegacyPrefix:
		if c.body == "" {
			return parseResult{}
		}
		return buildResult(channel.TargetUser, c.body, c.input)
	case formChannelPrefix:
		if c.body == "" {
			return parseResult{}
		}
		return buildResult(channel.TargetChannel, c.body, c.input)
	case formAtSigil:
		id, err := channel.AssertID(c.body, numericPattern, invalidMentionError(c.input))
		if err != nil {
			return parseResult{err: err}
		}
		return buildResult(channel.TargetUser, id, c.input)
	case formNumeric:
		if opts.DefaultKind != "" {
			return buildResult(opts.DefaultKind, c.body, c.input)
		}
		return parseResult{err: ambiguousInputError(c.input, opts.AmbiguousMessage)}
	default:
		return buildResult(channel.TargetChannel, c.input, c.input)
	}
}

func buildResult(kind channel.TargetKind, id, raw string) parseResult {
	target, err := channel.BuildTarget(kind, id, raw)
	return parseResult{target: target, err: err}
}

func invalidMentionError(input string) error {
	return &channel.TargetError{
		Err:     channel.ErrInvalidMention,
		Input:   input,
		Message: fmt.Sprintf("%s DMs require a user id (use user:<id> or a <@id> mention), got %q", platformLabel, input),
	}
}

func ambiguousInputError(input, custom string) error {
	msg := custom
	if msg == "" {
		msg = fmt.Sprintf("ambiguous %s recipient %q: use user:%s for a direct message or channel:%s for a channel", platformLabel, input, input, input)
	}
	return &channel.TargetError{Err: channel.ErrAmbiguousInput, Input: input, Message: msg}
}
