package config

import (
	"fmt"
	"strings"

	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix is the prefix of every environment override
const EnvPrefix = "REELSHARE_"

// envKeys maps environment variable names (lowercased, prefix stripped) to
// koanf paths. Unknown variables are ignored.
var envKeys = map[string]string{
	"api_url":           "client.api_url",
	"client_timeout":    "client.timeout",
	"units_per_column":  "ui.units_per_column",
	"addr":              "server.addr",
	"jwt_secret":        "server.jwt_secret",
	"token_ttl":         "server.token_ttl",
	"data_dir":          "server.data_dir",
	"rate_limit_max":    "server.rate_limit_max",
	"rate_limit_window": "server.rate_limit_window",
	"max_upload_bytes":  "server.max_upload_bytes",
	"cors_origins":      "server.cors_origins",
	"media_backend":     "media.backend",
	"media_dir":         "media.local_dir",
	"media_base_url":    "media.public_base_url",
	"gcs_bucket":        "media.gcs_bucket",
	"log_level":         "log.level",
	"log_format":        "log.format",
	"log_file":          "log.file",
}

var sliceConfigPaths = []string{
	"server.cors_origins",
}

func envTransformFunc(key string) string {
	key = strings.ToLower(strings.TrimPrefix(key, EnvPrefix))
	return envKeys[key]
}

// applyEnv layers REELSHARE_* variables over cfg and returns the merged copy.
func applyEnv(cfg *Config) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(cfg, "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load config values: %w", err)
	}
	if err := k.Load(env.Provider(EnvPrefix, ".", envTransformFunc), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}
	if err := processSliceFields(k); err != nil {
		return nil, err
	}

	out := &Config{}
	if err := k.Unmarshal("", out); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}
	return out, nil
}

// processSliceFields splits comma-separated env values for slice settings.
func processSliceFields(k *koanf.Koanf) error {
	for _, path := range sliceConfigPaths {
		s, ok := k.Get(path).(string)
		if !ok {
			continue
		}
		var parts []string
		for _, p := range strings.Split(s, ",") {
			if p = strings.TrimSpace(p); p != "" {
				parts = append(parts, p)
			}
		}
		if err := k.Set(path, parts); err != nil {
			return fmt.Errorf("failed to set %s: %w", path, err)
		}
	}
	return nil
}
