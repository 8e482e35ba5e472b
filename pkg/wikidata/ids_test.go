package wikidata

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEntityID(t *testing.T) {
	tests := []struct {
		uri  string
		want string
	}{
		{"http://www.wikidata.org/entity/Q42", "Q42"},
		{"http://www.wikidata.org/entity/P297", "P297"},
		{"Q7", "Q7"},
		{"http://example.org/", ""},
	}
	for _, tt := range tests {
		t.Run(tt.uri, func(t *testing.T) {
			assert.Equal(t, tt.want, EntityID(tt.uri))
		})
	}
}

func TestIsEntityID(t *testing.T) {
	assert.True(t, IsEntityID("Q1"))
	assert.True(t, IsEntityID("P31"))
	assert.True(t, IsEntityID("L5"))
	assert.False(t, IsEntityID(""))
	assert.False(t, IsEntityID("Q"))
	assert.False(t, IsEntityID("q1"))
	assert.False(t, IsEntityID("Q1 }"))
	assert.False(t, IsEntityID("wd:Q1"))
}

func TestMapping(t *testing.T) {
	m := Mapping{"Q1": "Q99", "Q5": "Q6"}

	assert.Equal(t, "Q99", m.Get("Q1"))
	assert.Equal(t, "Q2", m.Get("Q2"), "absent ids map to themselves")

	got, ok := m.Lookup("Q5")
	assert.True(t, ok)
	assert.Equal(t, "Q6", got)

	_, ok = m.Lookup("Q6")
	assert.False(t, ok)

	assert.Equal(t, 2, m.Len())
	assert.Equal(t, []string{"Q1", "Q5"}, m.Keys())
}

func TestMappingNotTransitive(t *testing.T) {
	m := Mapping{"Q1": "Q2", "Q2": "Q3"}
	assert.Equal(t, "Q2", m.Get("Q1"))
}

func TestNilMapping(t *testing.T) {
	var m Mapping
	assert.Equal(t, "Q1", m.Get("Q1"))
	assert.Zero(t, m.Len())
}
