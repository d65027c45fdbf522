package members

import (
	"fmt"
	"strings"
)

// Registry owns the member records currently present on the form.
// It is not safe for concurrent use; the form controller is its only caller.
type Registry struct {
	lastID  int
	records []*Record
}

func NewRegistry() *Registry {
	return &Registry{}
}

// Add allocates a record with a fresh id and empty fields.
func (r *Registry) Add() int {
	r.lastID++
	r.records = append(r.records, &Record{ID: r.lastID})
	return r.lastID
}

// Remove drops the record with id. Unknown ids are ignored and report false.
func (r *Registry) Remove(id int) bool {
	for i, rec := range r.records {
		if rec.ID == id {
			r.records = append(r.records[:i], r.records[i+1:]...)
			return true
		}
	}
	return false
}

// Count is the live member count used by the validator.
func (r *Registry) Count() int {
	return len(r.records)
}

// Records returns copies of the records in insertion order.
func (r *Registry) Records() []Record {
	out := make([]Record, len(r.records))
	for i, rec := range r.records {
		out[i] = *rec
	}
	return out
}

func (r *Registry) Get(id int) (Record, bool) {
	if rec := r.find(id); rec != nil {
		return *rec, true
	}
	return Record{}, false
}

func (r *Registry) SetName(id int, name string) bool {
	rec := r.find(id)
	if rec == nil {
		return false
	}
	rec.Name = name
	return true
}

// SetAge stores the age text and re-evaluates identifier visibility. A
// member who is no longer an adult loses any identifier already entered.
func (r *Registry) SetAge(id int, age string) bool {
	rec := r.find(id)
	if rec == nil {
		return false
	}
	rec.Age = age
	rec.IdentifierVisible = IdentifierVisible(age)
	if !rec.IdentifierVisible {
		rec.Identifier = ""
	}
	return true
}

// SetIdentifier stores the identifier; it is ignored while the field is hidden.
func (r *Registry) SetIdentifier(id int, identifier string) bool {
	rec := r.find(id)
	if rec == nil || !rec.IdentifierVisible {
		return false
	}
	rec.Identifier = identifier
	return true
}

// Reset drops every record. Ids keep increasing afterwards.
func (r *Registry) Reset() {
	r.records = nil
}

// Entries renders each complete record as "name (age)" with " [identifier]"
// appended for a visible, well-formed identifier. Records missing a name
// or an age are skipped.
func (r *Registry) Entries() []string {
	var out []string
	for _, rec := range r.records {
		name := strings.TrimSpace(rec.Name)
		age := strings.TrimSpace(rec.Age)
		if name == "" || age == "" {
			continue
		}
		entry := fmt.Sprintf("%s (%s)", name, age)
		id := strings.TrimSpace(rec.Identifier)
		if rec.IdentifierVisible && id != "" && IdentifierPattern.MatchString(id) {
			entry += fmt.Sprintf(" [%s]", id)
		}
		out = append(out, entry)
	}
	return out
}

// Serialize joins Entries into the flat string sent as family_members_data.
func (r *Registry) Serialize() string {
	return strings.Join(r.Entries(), ", ")
}

func (r *Registry) find(id int) *Record {
	for _, rec := range r.records {
		if rec.ID == id {
			return rec
		}
	}
	return nil
}
