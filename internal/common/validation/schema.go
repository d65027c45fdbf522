package validation

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

type ValidationResult struct {
	Valid  bool              `json:"valid"`
	Errors []ValidationError `json:"errors,omitempty"`
}

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

// PayloadSchema describes the document posted to the collection endpoint.
// Respondent fields are free-form strings, so additional properties are allowed.
func PayloadSchema() map[string]interface{} {
	return map[string]interface{}{
		"$schema": "http://json-schema.org/draft-07/schema#",
		"type":    "object",
		"required": []interface{}{
			"latitude", "longitude", "family_members_data", "Timestamp",
		},
		"properties": map[string]interface{}{
			"latitude": map[string]interface{}{
				"type":    "string",
				"pattern": `^-?\d{1,2}\.\d{6}$`,
			},
			"longitude": map[string]interface{}{
				"type":    "string",
				"pattern": `^-?\d{1,3}\.\d{6}$`,
			},
			"family_members_data": map[string]interface{}{
				"type":      "string",
				"minLength": 1,
			},
			"Timestamp": map[string]interface{}{
				"type":      "string",
				"minLength": 1,
			},
			"secretToken": map[string]interface{}{
				"type":      "string",
				"minLength": 1,
			},
		},
		"additionalProperties": map[string]interface{}{"type": "string"},
	}
}

// LoadSchemaFile reads a JSON schema document from disk.
func LoadSchemaFile(path string) (map[string]interface{}, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read schema: %w", err)
	}
	var schema map[string]interface{}
	if err := json.Unmarshal(raw, &schema); err != nil {
		return nil, fmt.Errorf("parse schema: %w", err)
	}
	return schema, nil
}

// ValidateDocument checks document against schema. An empty schema accepts anything.
func ValidateDocument(schema map[string]interface{}, document interface{}) (*ValidationResult, error) {
	if len(schema) == 0 {
		return &ValidationResult{Valid: true}, nil
	}

	result, err := gojsonschema.Validate(
		gojsonschema.NewGoLoader(schema),
		gojsonschema.NewGoLoader(document),
	)
	if err != nil {
		return nil, fmt.Errorf("validation error: %w", err)
	}

	out := &ValidationResult{Valid: result.Valid()}
	for _, desc := range result.Errors() {
		out.Errors = append(out.Errors, ValidationError{
			Field:   desc.Field(),
			Message: desc.Description(),
			Code:    strings.ToUpper(desc.Type()),
		})
	}
	return out, nil
}

// GetErrorMessages returns a simple list of error messages
func (vr *ValidationResult) GetErrorMessages() []string {
	messages := make([]string, len(vr.Errors))
	for i, err := range vr.Errors {
		messages[i] = fmt.Sprintf("%s: %s", err.Field, err.Message)
	}
	return messages
}

// HasErrors checks if validation has errors for specific field
func (vr *ValidationResult) HasErrors(field string) bool {
	for _, err := range vr.Errors {
		if err.Field == field {
			return true
		}
	}
	return false
}
