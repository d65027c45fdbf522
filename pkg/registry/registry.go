// pkg/registry/registry.go
package registry

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// reserved names are written by the form itself and cannot be redefined.
var reserved = map[string]bool{
	"latitude":            true,
	"longitude":           true,
	"family_members_data": true,
	"Timestamp":           true,
	"secretToken":         true,
}

var reservedPrefixes = []string{"name-", "age-", "id-"}

func LoadRegistry(path string) (*FormRegistry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var reg FormRegistry
	if err := json.Unmarshal(data, &reg); err != nil {
		return nil, fmt.Errorf("parse registry %s: %w", path, err)
	}
	if err := reg.Validate(); err != nil {
		return nil, err
	}
	return &reg, nil
}

// SaveRegistry writes reg as indented JSON, creating the parent directory.
func SaveRegistry(reg *FormRegistry, path string) error {
	data, err := json.MarshalIndent(reg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal registry: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("failed to write registry file: %w", err)
	}
	return nil
}

// Field returns the definition named name.
func (r *FormRegistry) Field(name string) (*FieldDefinition, bool) {
	for i := range r.Fields {
		if r.Fields[i].Name == name {
			return &r.Fields[i], true
		}
	}
	return nil, false
}

// Default is the built-in respondent section used when no registry file is configured.
func Default() *FormRegistry {
	return &FormRegistry{
		Version: "1",
		Fields: []FieldDefinition{
			{Name: "full_name", Label: "Full Name", Kind: KindText, Rules: "required,min=2"},
			{Name: "phone", Label: "Phone Number", Kind: KindTel, Rules: "required,numeric,len=10", Placeholder: "0712345678"},
			{Name: "address", Label: "Address", Kind: KindText, Rules: "required,min=5"},
			{Name: "email", Label: "Email", Kind: KindEmail, Rules: "omitempty,email"},
		},
	}
}

func (r *FormRegistry) Validate() error {
	if len(r.Fields) == 0 {
		return fmt.Errorf("registry defines no fields")
	}
	seen := make(map[string]bool, len(r.Fields))
	for i, f := range r.Fields {
		if f.Name == "" {
			return fmt.Errorf("field %d has no name", i)
		}
		if reserved[f.Name] {
			return fmt.Errorf("field name %q is reserved", f.Name)
		}
		for _, p := range reservedPrefixes {
			if strings.HasPrefix(f.Name, p) {
				return fmt.Errorf("field name %q uses reserved prefix %q", f.Name, p)
			}
		}
		if seen[f.Name] {
			return fmt.Errorf("duplicate field name %q", f.Name)
		}
		seen[f.Name] = true
	}
	return nil
}

func splitRules(rules string) []string {
	if rules == "" {
		return nil
	}
	parts := strings.Split(rules, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}
