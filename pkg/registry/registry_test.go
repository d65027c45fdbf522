package registry

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	reg := Default()
	require.NoError(t, reg.Validate())
	require.Len(t, reg.Fields, 4)
	assert.Equal(t, "full_name", reg.Fields[0].Name)
	assert.True(t, reg.Fields[0].Required())
	assert.False(t, reg.Fields[3].Required())
}

func TestLoadRegistry(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "fields.json")
	body := `{"version":"2","fields":[{"name":"household_head","label":"Head of Household","kind":"text","rules":"required"}]}`
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))

	reg, err := LoadRegistry(path)
	require.NoError(t, err)
	assert.Equal(t, "2", reg.Version)
	require.Len(t, reg.Fields, 1)
	assert.Equal(t, "Head of Household", reg.Fields[0].Label)
}

func TestValidate_Rejects(t *testing.T) {
	tests := []struct {
		name   string
		fields []FieldDefinition
		errMsg string
	}{
		{name: "empty", fields: nil, errMsg: "no fields"},
		{name: "unnamed", fields: []FieldDefinition{{Label: "x"}}, errMsg: "has no name"},
		{name: "reserved", fields: []FieldDefinition{{Name: "latitude"}}, errMsg: "reserved"},
		{name: "member prefix", fields: []FieldDefinition{{Name: "age-1"}}, errMsg: "reserved prefix"},
		{name: "duplicate", fields: []FieldDefinition{{Name: "a"}, {Name: "a"}}, errMsg: "duplicate"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := (&FormRegistry{Fields: tt.fields}).Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

func TestSaveRegistry_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "form.json")
	reg := Default()
	reg.Version = "3"

	require.NoError(t, SaveRegistry(reg, path))

	loaded, err := LoadRegistry(path)
	require.NoError(t, err)
	assert.Equal(t, reg, loaded)
}

func TestField(t *testing.T) {
	reg := Default()

	f, ok := reg.Field("phone")
	require.True(t, ok)
	f.Label = "Mobile"
	assert.Equal(t, "Mobile", reg.Fields[1].Label)

	_, ok = reg.Field("missing")
	assert.False(t, ok)
}
