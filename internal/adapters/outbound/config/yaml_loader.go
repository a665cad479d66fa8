package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/abdidvp/integrity/internal/domain"
)

// DefaultFileName is the config file looked up when a directory is given.
const DefaultFileName = "integrity.yaml"

const envFileName = ".env"

// queryKey names the mapping key whose values are passed to the data source
// verbatim and never expanded.
const queryKey = "query"

var envRef = regexp.MustCompile(`\$\{([A-Za-z_][A-Za-z0-9_]*)\}`)

// YAMLLoader implements domain.ConfigLoader by reading integrity.yaml.
type YAMLLoader struct{}

// New creates a YAMLLoader.
func New() *YAMLLoader { return &YAMLLoader{} }

// Resolve returns the config file path for path, which may name the file
// itself or the directory holding integrity.yaml.
func Resolve(path string) string {
	if path == "" {
		return DefaultFileName
	}
	if info, err := os.Stat(path); err == nil && info.IsDir() {
		return filepath.Join(path, DefaultFileName)
	}
	return path
}

// Load reads the config file at path. An optional .env beside it is loaded
// first without overriding variables already set, then ${VAR} references in
// scalar values are expanded from the environment. Bare $name is left alone
// and check queries are never expanded. Defaults are applied before
// validation; SMTP settings are not validated here.
func (l *YAMLLoader) Load(path string) (domain.Config, error) {
	path = Resolve(path)
	name := filepath.Base(path)

	if err := loadEnvFile(filepath.Join(filepath.Dir(path), envFileName)); err != nil {
		return domain.Config{}, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return domain.Config{}, fmt.Errorf("config file %s not found", path)
		}
		return domain.Config{}, err
	}

	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return domain.Config{}, fmt.Errorf("parsing %s: %w", name, err)
	}

	var cfg domain.Config
	if doc.Kind != 0 {
		expandNode(&doc)
		expanded, err := yaml.Marshal(&doc)
		if err != nil {
			return domain.Config{}, fmt.Errorf("parsing %s: %w", name, err)
		}

		dec := yaml.NewDecoder(bytes.NewReader(expanded))
		dec.KnownFields(true)
		if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
			return domain.Config{}, fmt.Errorf("parsing %s: %w", name, err)
		}
	}

	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return domain.Config{}, fmt.Errorf("invalid %s: %w", name, err)
	}
	return cfg, nil
}

// expandNode replaces ${VAR} in every scalar below n except query values.
// An expanded plain scalar loses its resolved tag so "${DB_PORT}" can still
// decode into an int.
func expandNode(n *yaml.Node) {
	switch n.Kind {
	case yaml.ScalarNode:
		expanded := ExpandEnv(n.Value)
		if expanded == n.Value {
			return
		}
		n.Value = expanded
		if n.Style&yaml.TaggedStyle == 0 {
			n.Tag = ""
		}
	case yaml.MappingNode:
		for i := 0; i+1 < len(n.Content); i += 2 {
			if n.Content[i].Value == queryKey {
				continue
			}
			expandNode(n.Content[i+1])
		}
	default:
		for _, c := range n.Content {
			expandNode(c)
		}
	}
}

// ExpandEnv replaces ${VAR} references in s with their environment values.
// Unset variables expand to the empty string.
func ExpandEnv(s string) string {
	return envRef.ReplaceAllStringFunc(s, func(ref string) string {
		return os.Getenv(envRef.FindStringSubmatch(ref)[1])
	})
}

func loadEnvFile(path string) error {
	if _, err := os.Stat(path); err != nil {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("loading %s: %w", path, err)
	}
	return nil
}
