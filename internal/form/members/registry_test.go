package members

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry_AddAssignsIncreasingIDs(t *testing.T) {
	r := NewRegistry()

	a := r.Add()
	b := r.Add()
	require.True(t, r.Remove(a))
	c := r.Add()

	assert.Equal(t, 1, a)
	assert.Equal(t, 2, b)
	assert.Equal(t, 3, c, "removed ids are never reused")
	assert.Equal(t, 2, r.Count())
}

func TestRegistry_RemoveUnknownIsNoop(t *testing.T) {
	r := NewRegistry()
	id := r.Add()

	assert.False(t, r.Remove(42))
	assert.True(t, r.Remove(id))
	assert.False(t, r.Remove(id), "second remove of the same id")
	assert.Equal(t, 0, r.Count())
}

func TestRegistry_CountTracksRandomSequences(t *testing.T) {
	rng := rand.New(rand.NewSource(7))

	for run := 0; run < 50; run++ {
		r := NewRegistry()
		live := map[int]bool{}
		for step := 0; step < 40; step++ {
			if rng.Intn(3) == 0 || len(live) == 0 {
				live[r.Add()] = true
				continue
			}
			// Mix existing and non-existent ids.
			id := rng.Intn(45) + 1
			removed := r.Remove(id)
			assert.Equal(t, live[id], removed)
			delete(live, id)
		}
		assert.Equal(t, len(live), r.Count())
		assert.Len(t, r.Records(), len(live))
	}
}

func TestRegistry_SetAgeTogglesIdentifier(t *testing.T) {
	tests := []struct {
		name        string
		age         string
		wantVisible bool
	}{
		{name: "adult", age: "30", wantVisible: true},
		{name: "exactly eighteen", age: "18", wantVisible: true},
		{name: "fractional adult", age: "18.5", wantVisible: true},
		{name: "minor", age: "17", wantVisible: false},
		{name: "empty", age: "", wantVisible: false},
		{name: "not a number", age: "abc", wantVisible: false},
		{name: "padded", age: " 45 ", wantVisible: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewRegistry()
			id := r.Add()
			require.True(t, r.SetAge(id, tt.age))

			rec, ok := r.Get(id)
			require.True(t, ok)
			assert.Equal(t, tt.wantVisible, rec.IdentifierVisible)
		})
	}
}

func TestRegistry_MinorLosesIdentifier(t *testing.T) {
	for _, age := range []string{"17", "1", "", "0", "x"} {
		r := NewRegistry()
		id := r.Add()
		require.True(t, r.SetAge(id, "40"))
		require.True(t, r.SetIdentifier(id, "123456789012"))

		r.SetAge(id, age)

		rec, _ := r.Get(id)
		assert.Empty(t, rec.Identifier, "age %q", age)

		// Becoming an adult again does not bring the old value back.
		r.SetAge(id, "40")
		rec, _ = r.Get(id)
		assert.Empty(t, rec.Identifier)
	}
}

func TestRegistry_SetIdentifierIgnoredWhileHidden(t *testing.T) {
	r := NewRegistry()
	id := r.Add()
	r.SetAge(id, "10")

	assert.False(t, r.SetIdentifier(id, "1234567890"))
	rec, _ := r.Get(id)
	assert.Empty(t, rec.Identifier)
}

func TestRegistry_SettersOnUnknownID(t *testing.T) {
	r := NewRegistry()
	assert.False(t, r.SetName(9, "x"))
	assert.False(t, r.SetAge(9, "20"))
	assert.False(t, r.SetIdentifier(9, "1234567890"))
	_, ok := r.Get(9)
	assert.False(t, ok)
}

func addMember(r *Registry, name, age, identifier string) int {
	id := r.Add()
	r.SetName(id, name)
	r.SetAge(id, age)
	if identifier != "" {
		r.SetIdentifier(id, identifier)
	}
	return id
}

func TestRegistry_Serialize(t *testing.T) {
	r := NewRegistry()
	addMember(r, "Asha", "30", "1234567890")
	addMember(r, "Bo", "10", "")

	assert.Equal(t, "Asha (30) [1234567890], Bo (10)", r.Serialize())
}

func TestRegistry_SerializeRules(t *testing.T) {
	tests := []struct {
		name  string
		build func(r *Registry)
		want  string
	}{
		{
			name:  "empty registry",
			build: func(*Registry) {},
			want:  "",
		},
		{
			name: "incomplete records are skipped",
			build: func(r *Registry) {
				addMember(r, "", "30", "")
				addMember(r, "Chamari", "", "")
				addMember(r, "Dinesh", "52", "")
			},
			want: "Dinesh (52)",
		},
		{
			name: "whitespace is trimmed",
			build: func(r *Registry) {
				addMember(r, "  Ela ", " 21 ", " 199012345678 ")
			},
			want: "Ela (21) [199012345678]",
		},
		{
			name: "malformed identifier is dropped",
			build: func(r *Registry) {
				addMember(r, "Farah", "33", "12345")
			},
			want: "Farah (33)",
		},
		{
			name: "trailing letter accepted",
			build: func(r *Registry) {
				addMember(r, "Gihan", "60", "1234567890V")
				addMember(r, "Hiru", "19", "123456789012v")
			},
			want: "Gihan (60) [1234567890V], Hiru (19) [123456789012v]",
		},
		{
			name: "eleven digits rejected",
			build: func(r *Registry) {
				addMember(r, "Isuru", "25", "12345678901")
			},
			want: "Isuru (25)",
		},
		{
			name: "removed records are not serialized",
			build: func(r *Registry) {
				id := addMember(r, "Jay", "40", "")
				addMember(r, "Kal", "8", "")
				r.Remove(id)
			},
			want: "Kal (8)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewRegistry()
			tt.build(r)
			assert.Equal(t, tt.want, r.Serialize())
		})
	}
}

func TestRegistry_ResetKeepsSequence(t *testing.T) {
	r := NewRegistry()
	r.Add()
	r.Add()
	r.Reset()

	assert.Equal(t, 0, r.Count())
	assert.Equal(t, 3, r.Add())
}

func TestParseAge(t *testing.T) {
	tests := []struct {
		in   string
		want int
		ok   bool
	}{
		{"42", 42, true},
		{"42abc", 42, true},
		{"-3", -3, true},
		{"", 0, false},
		{"-", 0, false},
		{"v12", 0, false},
	}
	for _, tt := range tests {
		got, ok := ParseAge(tt.in)
		assert.Equal(t, tt.ok, ok, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}
}

func TestFieldKeys(t *testing.T) {
	assert.Equal(t, "name-3", NameKey(3))
	assert.Equal(t, "age-3", AgeKey(3))
	assert.Equal(t, "id-3", IdentifierKey(3))
}
