// pkg/registry/schema.go
package registry

// FormRegistry lists the primary respondent fields in document order.
type FormRegistry struct {
	Version     string            `json:"version"`
	LastUpdated string            `json:"lastUpdated"`
	Fields      []FieldDefinition `json:"fields"`
}

// FieldDefinition describes one named respondent field. Rules uses
// go-playground/validator tag syntax, e.g. "required,email".
type FieldDefinition struct {
	Name        string `json:"name"`
	Label       string `json:"label"`
	Kind        string `json:"kind"`
	Rules       string `json:"rules"`
	Placeholder string `json:"placeholder,omitempty"`
}

const (
	KindText  = "text"
	KindTel   = "tel"
	KindEmail = "email"
)

// Required reports whether the field's rules demand a value.
func (f FieldDefinition) Required() bool {
	for _, r := range splitRules(f.Rules) {
		if r == "required" {
			return true
		}
	}
	return false
}
