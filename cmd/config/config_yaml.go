// SPDX-License-Identifier: Apache-2.0

package config

import (
	"fmt"
	"time"

	"github.com/xataio/holocron/pkg/pipeline"
	"github.com/xataio/holocron/pkg/transform"
)

type YAMLConfig struct {
	LogLevel    string                     `mapstructure:"log_level" yaml:"log_level"`
	Mappings    MappingsConfig             `mapstructure:"mappings" yaml:"mappings"`
	Cache       CacheConfig                `mapstructure:"cache" yaml:"cache"`
	Fetch       FetchConfig                `mapstructure:"fetch" yaml:"fetch"`
	References  ReferencesConfig           `mapstructure:"references" yaml:"references"`
	Supplements map[string]string          `mapstructure:"supplements" yaml:"supplements"`
	Rules       map[string]transform.Rules `mapstructure:"rules" yaml:"rules"`
}

type MappingsConfig struct {
	File       string   `mapstructure:"file" yaml:"file"`
	NoneValues []string `mapstructure:"none_values" yaml:"none_values"`
}

type CacheConfig struct {
	Store string       `mapstructure:"store" yaml:"store"`
	Path  string       `mapstructure:"path" yaml:"path"`
	Redis *RedisConfig `mapstructure:"redis" yaml:"redis"`
}

type RedisConfig struct {
	URL string `mapstructure:"url" yaml:"url"`
	Key string `mapstructure:"key" yaml:"key"`
}

type FetchConfig struct {
	Timeout time.Duration `mapstructure:"timeout" yaml:"timeout"`
}

type ReferencesConfig struct {
	Policy string `mapstructure:"policy" yaml:"policy"`
}

func (c *YAMLConfig) toPipelineConfig() (*pipeline.Config, error) {
	supplements, err := parseSupplements(c.Supplements)
	if err != nil {
		return nil, err
	}

	rules, err := c.parseRules()
	if err != nil {
		return nil, err
	}

	policy, err := transform.ParseReferencePolicy(c.References.Policy)
	if err != nil {
		return nil, err
	}

	return &pipeline.Config{
		MappingFile:     c.Mappings.File,
		NoneValues:      c.Mappings.NoneValues,
		Cache:           c.Cache.toPipelineConfig(),
		FetchTimeout:    c.Fetch.Timeout,
		ReferencePolicy: policy,
		Supplements:     supplements,
		Rules:           rules,
	}, nil
}

func (c *CacheConfig) toPipelineConfig() pipeline.CacheConfig {
	cfg := pipeline.CacheConfig{
		Store: pipeline.StoreType(c.Store),
		Path:  c.Path,
	}
	if c.Redis != nil {
		cfg.RedisURL = c.Redis.URL
		cfg.RedisKey = c.Redis.Key
	}
	return cfg
}

func (c *YAMLConfig) parseRules() (map[transform.Kind]transform.Rules, error) {
	if len(c.Rules) == 0 {
		return nil, nil
	}

	rules := make(map[transform.Kind]transform.Rules, len(c.Rules))
	for name, kindRules := range c.Rules {
		kind, err := transform.ParseKind(name)
		if err != nil {
			return nil, fmt.Errorf("parsing rules: %w", err)
		}
		rules[kind] = kindRules
	}
	return rules, nil
}

func parseSupplements(files map[string]string) (map[transform.Kind]string, error) {
	if len(files) == 0 {
		return nil, nil
	}

	supplements := make(map[transform.Kind]string, len(files))
	for name, file := range files {
		kind, err := transform.ParseKind(name)
		if err != nil {
			return nil, fmt.Errorf("parsing supplements: %w", err)
		}
		supplements[kind] = file
	}
	return supplements, nil
}
