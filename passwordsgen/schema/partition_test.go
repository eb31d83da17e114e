package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func names(fields []Field) []string {
	if len(fields) == 0 {
		return nil
	}
	out := make([]string, len(fields))
	for i, f := range fields {
		out[i] = f.Name
	}
	return out
}

func field(name, tag string) Field {
	return Field{Name: name, JSONName: name, Type: "string", Tag: MustParseTag(tag)}
}

func TestPartition(t *testing.T) {
	e := &Entity{
		Name:     "Label",
		Endpoint: "1.0/label",
		Fields: []Field{
			field("ID", "update(required)"),
			field("Label", "create(required) update(required) versioned"),
			field("Parent", "versioned create(optional) update(optional) search"),
			field("Created", "search"),
			field("Edited", "versioned update(optional)"),
			field("Client", ""),
		},
	}

	sets := Partition(e)

	assert.Equal(t, []string{"ID", "Created", "Client"}, names(sets.NotVersioned))
	assert.Equal(t, []string{"Label", "Parent", "Edited"}, names(sets.Versioned))
	assert.Equal(t, []string{"Label"}, names(sets.CreateRequired))
	assert.Equal(t, []string{"Parent"}, names(sets.CreateOptional))
	assert.Equal(t, []string{"ID", "Label"}, names(sets.UpdateRequired))
	assert.Equal(t, []string{"Parent", "Edited"}, names(sets.UpdateOptional))
	assert.Equal(t, []string{"Parent", "Created"}, names(sets.Searchable))
	assert.True(t, sets.HasCreate())
	assert.True(t, sets.HasUpdate())
}

func TestPartition_CreateAndUpdateAreExclusivePerMode(t *testing.T) {
	e := &Entity{Fields: []Field{
		field("A", "create(required) update(optional)"),
		field("B", "create(optional) update(required)"),
		field("C", "versioned search"),
	}}
	sets := Partition(e)

	for _, f := range e.Fields {
		inReq := contains(sets.CreateRequired, f.Name)
		inOpt := contains(sets.CreateOptional, f.Name)
		if f.Tag.Create == ModeNone {
			assert.False(t, inReq || inOpt, f.Name)
		} else {
			assert.True(t, inReq != inOpt, f.Name)
		}

		inReq = contains(sets.UpdateRequired, f.Name)
		inOpt = contains(sets.UpdateOptional, f.Name)
		if f.Tag.Update == ModeNone {
			assert.False(t, inReq || inOpt, f.Name)
		} else {
			assert.True(t, inReq != inOpt, f.Name)
		}
	}
}

func TestPartition_PlainFieldOnlyNotVersioned(t *testing.T) {
	sets := Partition(&Entity{Fields: []Field{field("ID", "")}})

	assert.Equal(t, []string{"ID"}, names(sets.NotVersioned))
	assert.Empty(t, sets.Versioned)
	assert.Empty(t, sets.Searchable)
	assert.False(t, sets.HasCreate())
	assert.False(t, sets.HasUpdate())
}

func TestPartition_Deterministic(t *testing.T) {
	e := &Entity{Fields: []Field{
		field("A", "versioned search"),
		field("B", "create(required)"),
		field("C", "search"),
	}}
	assert.Equal(t, Partition(e), Partition(e))
}

func contains(fields []Field, name string) bool {
	for _, f := range fields {
		if f.Name == name {
			return true
		}
	}
	return false
}
