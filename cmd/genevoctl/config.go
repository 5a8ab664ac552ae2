package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"genevo/pkg/genevo"
)

// runConfig is the file form of a run request. Command-line flags that were
// set explicitly take precedence over file values.
type runConfig struct {
	Target        string   `json:"target" yaml:"target"`
	Alphabet      string   `json:"alphabet" yaml:"alphabet"`
	Population    int      `json:"population" yaml:"population" validate:"gte=0"`
	MutationRate  *float64 `json:"mutation_rate" yaml:"mutation_rate" validate:"omitempty,gte=0,lte=1"`
	Generations   int      `json:"generations" yaml:"generations" validate:"gte=0"`
	Seed          int64    `json:"seed" yaml:"seed"`
	Workers       int      `json:"workers" yaml:"workers" validate:"gte=0"`
	Selection     string   `json:"selection" yaml:"selection" validate:"omitempty,oneof=proportionate tournament"`
	LogIntervalMS int      `json:"log_interval_ms" yaml:"log_interval_ms" validate:"gte=0"`

	rate        float64
	logInterval time.Duration
}

var configValidator = newConfigValidator()

func newConfigValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
		if name == "" || name == "-" {
			return field.Name
		}
		return name
	})
	return v
}

func loadRunConfig(path string) (runConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return runConfig{}, err
	}

	var cfg runConfig
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".json":
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&cfg); err != nil {
			return runConfig{}, fmt.Errorf("parse %s: %w", path, err)
		}
	case ".yaml", ".yml":
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&cfg); err != nil {
			return runConfig{}, fmt.Errorf("parse %s: %w", path, err)
		}
	default:
		return runConfig{}, fmt.Errorf("unsupported config extension %q", ext)
	}
	return cfg, nil
}

// override copies every flag value whose name changed reports as set.
func (c runConfig) override(flags runConfig, changed func(string) bool) runConfig {
	if changed("target") {
		c.Target = flags.Target
	}
	if changed("alphabet") {
		c.Alphabet = flags.Alphabet
	}
	if changed("population") {
		c.Population = flags.Population
	}
	if changed("mutation-rate") {
		rate := flags.rate
		c.MutationRate = &rate
	}
	if changed("generations") {
		c.Generations = flags.Generations
	}
	if changed("seed") {
		c.Seed = flags.Seed
	}
	if changed("workers") {
		c.Workers = flags.Workers
	}
	if changed("selection") {
		c.Selection = flags.Selection
	}
	if changed("log-interval") {
		c.LogIntervalMS = int(flags.logInterval / time.Millisecond)
	}
	return c
}

func (c runConfig) validate() error {
	err := configValidator.Struct(c)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fmt.Sprintf("%s failed %s", fe.Field(), fe.Tag()))
	}
	return fmt.Errorf("invalid run config: %s", strings.Join(msgs, "; "))
}

func (c runConfig) request() genevo.RunRequest {
	logInterval := time.Second
	if c.LogIntervalMS > 0 {
		logInterval = time.Duration(c.LogIntervalMS) * time.Millisecond
	}
	return genevo.RunRequest{
		Target:       c.Target,
		Alphabet:     c.Alphabet,
		Population:   c.Population,
		MutationRate: c.MutationRate,
		Generations:  c.Generations,
		Seed:         c.Seed,
		Workers:      c.Workers,
		Selection:    c.Selection,
		LogInterval:  logInterval,
	}
}
