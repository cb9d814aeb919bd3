package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"crm-dedupe/internal/matching"

	"gopkg.in/yaml.v3"
)

// contactRecord is one entry of a contacts file.
type contactRecord struct {
	ID    string  `yaml:"id" json:"id"`
	Name  string  `yaml:"name" json:"name"`
	Email *string `yaml:"email" json:"email"`
	Phone *string `yaml:"phone" json:"phone"`
}

// loadContactsFile reads a YAML or JSON contacts file. Records without an ID
// are numbered by their 1-based position in the file.
func loadContactsFile(path string) ([]matching.Contact, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read contacts file '%s': %w", path, err)
	}

	var records []contactRecord
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &records); err != nil {
			return nil, fmt.Errorf("failed to parse YAML: %w", err)
		}
	case ".json":
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&records); err != nil {
			return nil, fmt.Errorf("failed to parse JSON: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported contacts file extension %q (want .yaml, .yml or .json)", ext)
	}

	contacts := make([]matching.Contact, len(records))
	for i, record := range records {
		id := record.ID
		if id == "" {
			id = strconv.Itoa(i + 1)
		}
		contacts[i] = matching.Contact{
			ID:    id,
			Name:  record.Name,
			Email: record.Email,
			Phone: record.Phone,
		}
	}
	return contacts, nil
}
