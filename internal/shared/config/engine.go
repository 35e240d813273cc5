package config

import (
	"fmt"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"

	"petmatch-backend/internal/recommendations/engine"
)

const engineEnvPrefix = "ENGINE_"

// LoadEngine layers engine defaults, an optional YAML file and ENGINE_* env overrides.
// ENGINE_PREFERENCE_WEIGHT=0.5 overrides preference_weight.
func LoadEngine(path string) (engine.Config, error) {
	k := koanf.New(".")
	if err := k.Load(structs.Provider(engine.DefaultConfig(), "koanf"), nil); err != nil {
		return engine.Config{}, fmt.Errorf("engine defaults: %w", err)
	}
	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return engine.Config{}, fmt.Errorf("engine config %s: %w", path, err)
		}
	}
	err := k.Load(env.ProviderWithValue(engineEnvPrefix, ".", func(key, value string) (string, interface{}) {
		if strings.TrimSpace(value) == "" {
			return "", nil
		}
		return strings.ToLower(strings.TrimPrefix(key, engineEnvPrefix)), value
	}), nil)
	if err != nil {
		return engine.Config{}, fmt.Errorf("engine env: %w", err)
	}

	var cfg engine.Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return engine.Config{}, fmt.Errorf("engine config decode: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return engine.Config{}, err
	}
	return cfg, nil
}
