package config

import (
	"fmt"
	"os"

	"crm-dedupe/internal/matching"

	"github.com/pelletier/go-toml/v2"
)

// RulesFile is the on-disk form of the matcher rules. Omitted keys keep
// their defaults.
type RulesFile struct {
	Threshold           *int `toml:"threshold"`
	NameSimilarityMin   *int `toml:"name_similarity_min"`
	DomainSimilarityMin *int `toml:"domain_similarity_min"`
	PhoneConfidence     *int `toml:"phone_confidence"`
	DomainConfidence    *int `toml:"domain_confidence"`
}

// Apply overlays the values present in the file onto base.
func (f RulesFile) Apply(base matching.Rules) matching.Rules {
	set := func(dst *int, src *int) {
		if src != nil {
			*dst = *src
		}
	}
	set(&base.Threshold, f.Threshold)
	set(&base.NameSimilarityMin, f.NameSimilarityMin)
	set(&base.DomainSimilarityMin, f.DomainSimilarityMin)
	set(&base.PhoneConfidence, f.PhoneConfidence)
	set(&base.DomainConfidence, f.DomainConfidence)
	return base
}

// LoadRules builds the matcher rules for this configuration: the defaults,
// the configured threshold, then any overrides from the rules file.
func (c MatchingConfig) LoadRules() (matching.Rules, error) {
	rules := matching.DefaultRules.WithThreshold(c.DuplicateThreshold)
	if c.RulesPath == "" {
		return rules, nil
	}
	return LoadRulesFile(c.RulesPath, rules)
}

// LoadRulesFile reads a TOML rules file and applies it on top of base.
func LoadRulesFile(path string, base matching.Rules) (matching.Rules, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return matching.Rules{}, fmt.Errorf("failed to read rules file '%s': %w", path, err)
	}

	var file RulesFile
	if err := toml.Unmarshal(data, &file); err != nil {
		return matching.Rules{}, fmt.Errorf("failed to parse TOML: %w", err)
	}

	rules := file.Apply(base)
	if err := rules.Validate(); err != nil {
		return matching.Rules{}, fmt.Errorf("invalid rules in '%s': %w", path, err)
	}

	return rules, nil
}
