// Package config assembles the run configuration: environment variables
// supply the defaults, an optional YAML file overrides them.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/artisanalfutures/craftgraph/internal/platform/envutil"
	"github.com/artisanalfutures/craftgraph/internal/platform/neo4jdb"
	"github.com/artisanalfutures/craftgraph/internal/platform/wordnet"
)

type Config struct {
	LogMode string         `yaml:"log_mode"`
	Neo4j   neo4jdb.Config `yaml:"neo4j"`
	Wordnet wordnet.Config `yaml:"wordnet"`
}

// Load resolves defaults from the environment and, when path is non-empty,
// overlays the YAML file on top.
func Load(path string) (Config, error) {
	cfg := Config{
		LogMode: envutil.String("LOG_MODE", "development"),
		Neo4j:   neo4jdb.ResolveConfigFromEnv(),
		Wordnet: wordnet.ResolveConfigFromEnv(),
	}
	if path == "" {
		return cfg, nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
	}
	return cfg, nil
}
