//go:build passwordsgen

package schemadef

import "github.com/google/uuid"

// Tag is a colored label attached to passwords.
//
//passwords:entity 1.0/tag
//passwords:details revisions passwords
type Tag struct {
	ID        uuid.UUID      `json:"id" pw:"update(required)"`
	Label     string         `json:"label" pw:"versioned create(required) update(required)"`
	Color     Color          `json:"color" pw:"versioned create(required) update(required)"`
	Created   int64          `json:"created" pw:"search"`
	Updated   int64          `json:"updated" pw:"versioned search"`
	Edited    int64          `json:"edited" pw:"versioned create(optional) update(optional)"`
	Revision  uuid.UUID      `json:"revision" pw:"versioned"`
	CSEType   string         `json:"cseType" pw:"versioned create(optional) update(optional)"`
	CSEKey    string         `json:"cseKey" pw:"versioned create(optional) update(optional)"`
	SSEType   string         `json:"sseType" pw:"versioned"`
	Client    string         `json:"client" pw:"versioned"`
	Hidden    bool           `json:"hidden" pw:"versioned create(optional) update(optional)"`
	Trashed   bool           `json:"trashed" pw:"versioned search"`
	Favorite  bool           `json:"favorite" pw:"versioned create(optional) update(optional) search"`
	Revisions []VersionedTag `json:"revisions,omitempty"`
	Passwords []Password     `json:"passwords,omitempty"`
}
