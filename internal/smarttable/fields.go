// Package smarttable orchestrates the formula engine over user-defined
// tables: calculated columns recomputed on edit, read-time projections with
// sorting, pagination, search highlighting, conditional formatting, and
// totals.
package smarttable

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// FieldType enumerates the column kinds a smart table supports.
type FieldType string

const (
	FieldText       FieldType = "text"
	FieldNumber     FieldType = "number"
	FieldDate       FieldType = "date"
	FieldSelect     FieldType = "select"
	FieldCalculated FieldType = "calculated"
)

// ConditionalFormat is derived styling metadata, computed per cell at read
// time and never persisted.
type ConditionalFormat struct {
	Type string   `yaml:"type"` // threshold | gradient
	High *float64 `yaml:"high,omitempty"`
	Low  *float64 `yaml:"low,omitempty"`
	Min  float64  `yaml:"min,omitempty"`
	Max  float64  `yaml:"max,omitempty"`
}

// FieldDefinition describes one smart-table column. Name is the stable
// storage key; Label is the display name and, for formulas, the substitution
// token.
type FieldDefinition struct {
	Name        string             `yaml:"name"`
	Label       string             `yaml:"label"`
	Type        FieldType          `yaml:"type"`
	Formula     string             `yaml:"formula,omitempty"`
	Precision   int                `yaml:"precision,omitempty"`
	ShowPercent bool               `yaml:"show_percent,omitempty"`
	Required    bool               `yaml:"required,omitempty"`
	Format      *ConditionalFormat `yaml:"conditional_format,omitempty"`
	Options     []string           `yaml:"options,omitempty"`
}

// ValidateFields enforces the schema invariants: a calculated field carries a
// non-empty formula, and labels are unique among non-calculated fields
// (labels are the substitution tokens a formula refers to).
func ValidateFields(fields []FieldDefinition) error {
	seenName := make(map[string]bool, len(fields))
	seenLabel := make(map[string]bool, len(fields))
	for _, f := range fields {
		if f.Name == "" {
			return fmt.Errorf("field with label %q has no name", f.Label)
		}
		if seenName[f.Name] {
			return fmt.Errorf("duplicate field name %q", f.Name)
		}
		seenName[f.Name] = true
		switch f.Type {
		case FieldText, FieldNumber, FieldDate, FieldSelect, FieldCalculated:
		default:
			return fmt.Errorf("field %q has unsupported type %q", f.Name, f.Type)
		}
		if f.Type == FieldCalculated {
			if f.Formula == "" {
				return fmt.Errorf("calculated field %q has no formula", f.Name)
			}
			continue
		}
		if f.Label == "" {
			return fmt.Errorf("field %q has no label", f.Name)
		}
		if seenLabel[f.Label] {
			return fmt.Errorf("duplicate field label %q", f.Label)
		}
		seenLabel[f.Label] = true
	}
	return nil
}

// LoadSchema reads a YAML list of field definitions and validates it.
func LoadSchema(path string) ([]FieldDefinition, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read schema: %w", err)
	}
	var fields []FieldDefinition
	if err := yaml.Unmarshal(b, &fields); err != nil {
		return nil, fmt.Errorf("parse schema: %w", err)
	}
	if err := ValidateFields(fields); err != nil {
		return nil, fmt.Errorf("invalid schema: %w", err)
	}
	return fields, nil
}

// substitutionLabels returns the labels formulas may reference: every
// non-calculated field's label. Calculated fields cannot feed each other;
// that keeps recomputation single-pass and cycle-free.
func substitutionLabels(fields []FieldDefinition) []string {
	labels := make([]string, 0, len(fields))
	for _, f := range fields {
		if f.Type != FieldCalculated && f.Label != "" {
			labels = append(labels, f.Label)
		}
	}
	return labels
}
