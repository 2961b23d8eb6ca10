package config

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/sethvargo/go-envconfig"
)

// secretPrefix marks process environment variables that carry opaque secret
// values. FLOWCI_SECRET_TOKEN=abc becomes the secret TOKEN=abc, injected
// into every job instance environment and never echoed by the engine.
const secretPrefix = "FLOWCI_SECRET_"

// Runtime is engine configuration sourced from the process environment
type Runtime struct {
	WorkDir string `env:"FLOWCI_WORKDIR, default=."`
	Event   string `env:"FLOWCI_EVENT, default=push"`
	Branch  string `env:"FLOWCI_BRANCH"`
}

// Load reads runtime configuration from the process environment
func Load(ctx context.Context) (*Runtime, error) {
	var cfg Runtime
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return nil, fmt.Errorf("failed to load runtime config: %w", err)
	}
	return &cfg, nil
}

// Secrets collects secret values from the process environment. Names are
// dynamic, so this scans the environ rather than binding a struct field.
func Secrets() map[string]string {
	secrets := make(map[string]string)
	for _, entry := range os.Environ() {
		key, value, ok := strings.Cut(entry, "=")
		if !ok || !strings.HasPrefix(key, secretPrefix) {
			continue
		}
		name := strings.TrimPrefix(key, secretPrefix)
		if name != "" {
			secrets[name] = value
		}
	}
	return secrets
}
