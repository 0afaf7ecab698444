package main

import (
	"bytes"
	_ "embed"
	"fmt"
	"os"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"gopkg.in/yaml.v3"
)

// config is the shape of xscheck.yaml. CLI flags override whichever of
// these fields they were explicitly given.
type config struct {
	IncludeDirs   []string `yaml:"includeDirs"`
	Ignores       []string `yaml:"ignores"`
	ExtraPreludes []string `yaml:"extraPreludes"`
	Files         []string `yaml:"files"`
}

//go:embed config.schema.json
var configSchemaSrc []byte

// loadConfig reads and validates path against the embedded JSON Schema.
// A missing default config file (path == "" and no xscheck.yaml present)
// is not an error: loadConfig returns a zero-value config.
func loadConfig(path string) (config, error) {
	if path == "" {
		path = "xscheck.yaml"
		if _, err := os.Stat(path); err != nil {
			return config{}, nil
		}
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return config{}, fmt.Errorf("reading config %s: %w", path, err)
	}

	var asMap map[string]any
	if err := yaml.Unmarshal(raw, &asMap); err != nil {
		return config{}, fmt.Errorf("parsing config %s: %w", path, err)
	}
	if err := validateConfigSchema(asMap); err != nil {
		return config{}, fmt.Errorf("config %s failed schema validation: %w", path, err)
	}

	var cfg config
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return config{}, fmt.Errorf("parsing config %s: %w", path, err)
	}
	return cfg, nil
}

func validateConfigSchema(doc map[string]any) error {
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("xscheck-config.json", bytes.NewReader(configSchemaSrc)); err != nil {
		return fmt.Errorf("loading embedded config schema: %w", err)
	}
	schema, err := compiler.Compile("xscheck-config.json")
	if err != nil {
		return fmt.Errorf("compiling embedded config schema: %w", err)
	}
	return schema.Validate(doc)
}
