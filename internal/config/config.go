/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

// Package config loads the harvester configuration file.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/suparena/rifcsharvest/errors"
	"github.com/suparena/rifcsharvest/mapping"
	"github.com/suparena/rifcsharvest/notify"
	"github.com/suparena/rifcsharvest/objectstore"
)

// Defaults.
const (
	DefaultPayloadID  = "metadata.json"
	DefaultKafkaTopic = "rifcs.render-pending"
	DefaultLogLevel   = "info"
	DefaultLogFormat  = "text"
)

// Config models the harvester YAML file.
type Config struct {
	Harvester struct {
		XML Harvest `yaml:"xml"`
	} `yaml:"harvester"`
	Storage objectstore.Config `yaml:"storage"`
	Notify  struct {
		Kafka notify.KafkaConfig `yaml:"kafka"`
	} `yaml:"notify"`
	Logging struct {
		Level  string `yaml:"level"`
		Format string `yaml:"format"`
	} `yaml:"logging"`
	Metrics struct {
		Textfile string `yaml:"textfile"`
	} `yaml:"metrics"`
}

// Harvest holds the harvester.xml section.
type Harvest struct {
	FileLocation        string         `yaml:"fileLocation"`
	PayloadID           string         `yaml:"payloadId"`
	RecordIDPrefix      string         `yaml:"recordIDPrefix"`
	IgnoreFields        []string       `yaml:"ignoreFields"`
	IncludedFields      []string       `yaml:"includedFields"`
	OptionalCategories  []string       `yaml:"optionalCategories"`
	FieldsMapping       map[string]any `yaml:"fieldsMapping"`
	// LegacyFieldsMapping accepts the historical misspelling of fieldsMapping.
	LegacyFieldsMapping map[string]any `yaml:"filedsMapping"`
	FieldsMappingFile   string         `yaml:"fieldsMappingFile"`
}

// FromYAML decodes, defaults and validates a config document.
func FromYAML(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("invalid config yaml: %w", err)
	}
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// FromFile reads path with FromYAML. A relative fieldsMappingFile is resolved against the
// directory of path.
func FromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("config %s not found: %w", path, err)
		}
		return nil, err
	}
	cfg, err := FromYAML(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if f := cfg.Harvester.XML.FieldsMappingFile; f != "" && !filepath.IsAbs(f) {
		cfg.Harvester.XML.FieldsMappingFile = filepath.Join(filepath.Dir(path), f)
	}
	return cfg, nil
}

// ApplyDefaults fills unset fields.
func (c *Config) ApplyDefaults() {
	if c.Harvester.XML.PayloadID == "" {
		c.Harvester.XML.PayloadID = DefaultPayloadID
	}
	if c.Logging.Level == "" {
		c.Logging.Level = DefaultLogLevel
	}
	if c.Logging.Format == "" {
		c.Logging.Format = DefaultLogFormat
	}
	if len(c.Notify.Kafka.Brokers) > 0 && c.Notify.Kafka.Topic == "" {
		c.Notify.Kafka.Topic = DefaultKafkaTopic
	}
	c.Storage.ApplyDefaults()
}

// Validate checks the configuration. The input file location is checked by the harvester
// itself so that it can be supplied on the command line.
func (c *Config) Validate() error {
	switch c.Logging.Format {
	case "text", "json":
	default:
		return errors.NewValidationError("logging.format", fmt.Sprintf("must be text or json, got %q", c.Logging.Format))
	}
	if _, err := c.Categories(); err != nil {
		return err
	}
	if len(c.Harvester.XML.FieldsMapping) > 0 && len(c.Harvester.XML.LegacyFieldsMapping) > 0 {
		return errors.NewValidationError("harvester.xml.fieldsMapping", "fieldsMapping and filedsMapping are mutually exclusive")
	}
	for _, b := range c.Notify.Kafka.Brokers {
		if b == "" {
			return errors.NewValidationError("notify.kafka.brokers", "empty broker address")
		}
	}
	return c.Storage.Validate()
}

// Categories parses optionalCategories.
func (c *Config) Categories() (mapping.Categories, error) {
	return mapping.ParseCategories(c.Harvester.XML.OptionalCategories)
}

// MappingTable builds the field-mapping table from the inline mapping (either spelling) and
// the optional mapping file.
func (c *Config) MappingTable() (*mapping.Table, error) {
	h := c.Harvester.XML

	inline := h.FieldsMapping
	if len(inline) == 0 {
		inline = h.LegacyFieldsMapping
	}
	tables := make([]*mapping.Table, 0, 2)
	if len(inline) > 0 {
		t, err := mapping.FromConfig(inline)
		if err != nil {
			return nil, err
		}
		tables = append(tables, t)
	}
	if h.FieldsMappingFile != "" {
		t, err := mapping.LoadFile(h.FieldsMappingFile)
		if err != nil {
			return nil, err
		}
		tables = append(tables, t)
	}
	return mapping.Merge(tables...)
}
