package channel

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
)

// DecodeConfigMap decodes a JSON credentials blob.
func DecodeConfigMap(raw []byte) (map[string]any, error) {
	if len(raw) == 0 {
		return map[string]any{}, nil
	}
	var payload map[string]any
	if err := json.Unmarshal(raw, &payload); err != nil {
		return nil, err
	}
	if payload == nil {
		payload = map[string]any{}
	}
	return payload, nil
}

// ReadString returns the first present key as a string; non-string values are JSON-encoded.
func ReadString(raw map[string]any, keys ...string) string {
	for _, key := range keys {
		value, ok := raw[key]
		if !ok || value == nil {
			continue
		}
		switch v := value.(type) {
		case string:
			if strings.TrimSpace(v) == "" {
				continue
			}
			return v
		default:
			encoded, err := json.Marshal(v)
			if err == nil {
				return strings.Trim(string(encoded), "\"")
			}
		}
	}
	return ""
}

// ConfigSet is an in-memory store of channel configs keyed by channel type.
type ConfigSet struct {
	mu      sync.RWMutex
	configs map[Type]Config
}

func NewConfigSet(configs ...Config) *ConfigSet {
	set := &ConfigSet{configs: map[Type]Config{}}
	for _, cfg := range configs {
		set.Put(cfg)
	}
	return set
}

// Put stores cfg, replacing any config of the same type.
func (s *ConfigSet) Put(cfg Config) {
	ct := normalizeType(cfg.Type.String())
	if ct == "" {
		return
	}
	cfg.Type = ct
	s.mu.Lock()
	defer s.mu.Unlock()
	s.configs[ct] = cfg
}

// ResolveEffectiveConfig returns the config for channelType. A non-empty botID overrides the stored one.
func (s *ConfigSet) ResolveEffectiveConfig(_ context.Context, botID string, channelType Type) (Config, error) {
	ct := normalizeType(channelType.String())
	s.mu.RLock()
	cfg, ok := s.configs[ct]
	s.mu.RUnlock()
	if !ok {
		return Config{}, fmt.Errorf("%w: %s", ErrConfigNotFound, channelType)
	}
	if botID = strings.TrimSpace(botID); botID != "" {
		cfg.BotID = botID
	}
	return cfg, nil
}
