package schema

// FieldSets is the partition of an entity's fields. Every set keeps the
// declaration order of the schema, and a field may appear in several sets.
type FieldSets struct {
	NotVersioned   []Field
	Versioned      []Field
	CreateRequired []Field
	CreateOptional []Field
	UpdateRequired []Field
	UpdateOptional []Field
	Searchable     []Field
}

// HasCreate reports whether any field takes part in create payloads.
func (s FieldSets) HasCreate() bool {
	return len(s.CreateRequired)+len(s.CreateOptional) > 0
}

// HasUpdate reports whether any field takes part in update payloads.
func (s FieldSets) HasUpdate() bool {
	return len(s.UpdateRequired)+len(s.UpdateOptional) > 0
}

// Partition splits the entity's fields into the generated field sets.
func Partition(e *Entity) FieldSets {
	var s FieldSets
	for _, f := range e.Fields {
		if f.Tag.Versioned {
			s.Versioned = append(s.Versioned, f)
		} else {
			s.NotVersioned = append(s.NotVersioned, f)
		}
		switch f.Tag.Create {
		case ModeRequired:
			s.CreateRequired = append(s.CreateRequired, f)
		case ModeOptional:
			s.CreateOptional = append(s.CreateOptional, f)
		}
		switch f.Tag.Update {
		case ModeRequired:
			s.UpdateRequired = append(s.UpdateRequired, f)
		case ModeOptional:
			s.UpdateOptional = append(s.UpdateOptional, f)
		}
		if f.Tag.Search {
			s.Searchable = append(s.Searchable, f)
		}
	}
	return s
}
