package schema

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTag(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want Tag
	}{
		{"empty", "", Tag{}},
		{"whitespace only", "   ", Tag{}},
		{"create required", "create(required)", Tag{Create: ModeRequired}},
		{"update optional", "update(optional)", Tag{Update: ModeOptional}},
		{"bare versioned", "versioned", Tag{Versioned: true}},
		{"versioned true", "versioned(true)", Tag{Versioned: true}},
		{"versioned false", "versioned(false)", Tag{}},
		{"search", "search", Tag{Search: true}},
		{"search false", "search(false)", Tag{}},
		{
			"all categories",
			"create(required) update(optional) versioned search",
			Tag{Create: ModeRequired, Update: ModeOptional, Versioned: true, Search: true},
		},
		{
			"order independent",
			"search versioned(true)   update(required) create(optional)",
			Tag{Create: ModeOptional, Update: ModeRequired, Versioned: true, Search: true},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseTag(tt.raw)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseTag_Errors(t *testing.T) {
	tests := []struct {
		name  string
		raw   string
		token string
	}{
		{"unknown tag", "readonly", "readonly"},
		{"unknown mode", "create(maybe)", "create(maybe)"},
		{"create without mode", "create", "create"},
		{"duplicate category", "create(required) create(optional)", "create(optional)"},
		{"duplicate versioned", "versioned versioned(false)", "versioned(false)"},
		{"bad bool", "search(yes)", "search(yes)"},
		{"unbalanced open", "create(required", "create(required"},
		{"unbalanced close", "versioned)", "versioned)"},
		{"empty argument", "update()", "update()"},
		{"nested parens", "create((required))", "create((required))"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseTag(tt.raw)
			require.Error(t, err)
			var tagErr *TagError
			require.True(t, errors.As(err, &tagErr))
			assert.Equal(t, tt.raw, tagErr.Tag)
			assert.Equal(t, tt.token, tagErr.Token)
		})
	}
}

func TestTag_StringRoundTrip(t *testing.T) {
	tags := []Tag{
		{},
		{Create: ModeRequired},
		{Create: ModeOptional, Update: ModeRequired},
		{Versioned: true, Search: true},
		{Create: ModeRequired, Update: ModeOptional, Versioned: true, Search: true},
	}
	for _, tag := range tags {
		got, err := ParseTag(tag.String())
		require.NoError(t, err, tag.String())
		assert.Equal(t, tag, got)
	}
}

func TestTag_Classes(t *testing.T) {
	assert.Equal(t, []Class{ClassPlain}, Tag{}.Classes())
	assert.True(t, Tag{}.IsPlain())

	tag := MustParseTag("create(required) update(optional) versioned search")
	assert.Equal(t, []Class{
		ClassCreateRequired,
		ClassUpdateOptional,
		ClassVersioned,
		ClassSearchable,
	}, tag.Classes())
	assert.False(t, tag.IsPlain())
}

func TestMustParseTag_Panics(t *testing.T) {
	assert.Panics(t, func() { MustParseTag("bogus") })
}
