package discord

import (
	"regexp"
	"strings"

	"github.com/memohai/targetresolver/internal/channel"
)

var (
	mentionPattern = regexp.MustCompile(`^<@!?(\d+)>$`)
	numericPattern = regexp.MustCompile(`^\d+$`)
)

// targetForm is the syntactic shape of a recipient string.
// Declaration order is classification precedence.
type targetForm int

const (
	formEmpty targetForm = iota
	formMention
	formUserPrefix
	formChannelPrefix
	formLegacyPrefix
	formAtSigil
	formNumeric
	// formPartialMention starts like a mention but is not one; it parses as free text.
	formPartialMention
	formFreeText
)

func (f targetForm) String() string {
	switch f {
	case formEmpty:
		return "empty"
	case formMention:
		return "mention"
	case formUserPrefix:
		return "user_prefix"
	case formChannelPrefix:
		return "channel_prefix"
	case formLegacyPrefix:
		return "legacy_prefix"
	case formAtSigil:
		return "at_sigil"
	case formNumeric:
		return "numeric"
	case formPartialMention:
		return "partial_mention"
	default:
		return "free_text"
	}
}

// classified is a recipient string with its form and the marker-stripped body.
type classified struct {
	form  targetForm
	input string
	body  string
}

var prefixForms = []struct {
	prefix string
	form   targetForm
}{
	{"user:", formUserPrefix},
	{"channel:", formChannelPrefix},
	{"discord:", formLegacyPrefix},
	{"@", formAtSigil},
}

func classify(raw string) classified {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return classified{form: formEmpty}
	}
	if m := mentionPattern.FindStringSubmatch(trimmed); m != nil {
		return classified{form: formMention, input: trimmed, body: m[1]}
	}
	for _, p := range prefixForms {
		if rest, ok := strings.CutPrefix(trimmed, p.prefix); ok {
			return classified{form: p.form, input: trimmed, body: strings.TrimSpace(rest)}
		}
	}
	if numericPattern.MatchString(trimmed) {
		return classified{form: formNumeric, input: trimmed, body: trimmed}
	}
	if strings.HasPrefix(trimmed, "<@") {
		return classified{form: formPartialMention, input: trimmed, body: trimmed}
	}
	return classified{form: formFreeText, input: trimmed, body: trimmed}
}

// likelyUsername reports whether the input reads as a human name that needs a directory lookup.
// Structured forms and inputs ending in a digit are not.
func (c classified) likelyUsername() bool {
	if c.form != formFreeText {
		return false
	}
	last := c.input[len(c.input)-1]
	return last < '0' || last > '9'
}

// explicitUserLookup reports whether the input explicitly addresses a user.
func (c classified) explicitUserLookup(defaultKind channel.TargetKind) bool {
	switch c.form {
	case formMention, formUserPrefix, formLegacyPrefix, formAtSigil:
		return true
	case formNumeric:
		return defaultKind == channel.TargetUser
	default:
		return false
	}
}
