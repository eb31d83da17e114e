//go:build passwordsgen

package schemadef

import "github.com/google/uuid"

// Folder groups passwords and other folders.
//
//passwords:entity 1.0/folder
//passwords:details revisions folders passwords tags
type Folder struct {
	ID        uuid.UUID         `json:"id" pw:"update(required)"`
	Label     string            `json:"label" pw:"versioned create(required) update(required)"`
	Parent    uuid.UUID         `json:"parent" pw:"versioned create(optional) update(optional) search"`
	Created   int64             `json:"created" pw:"search"`
	Updated   int64             `json:"updated" pw:"versioned search"`
	Edited    int64             `json:"edited" pw:"versioned update(optional)"`
	Revision  uuid.UUID         `json:"revision" pw:"versioned"`
	CSEType   string            `json:"cseType" pw:"versioned create(optional) update(optional) search"`
	CSEKey    string            `json:"cseKey" pw:"versioned create(optional) update(optional)"`
	SSEType   string            `json:"sseType" pw:"versioned search"`
	Client    string            `json:"client" pw:"versioned"`
	Hidden    bool              `json:"hidden" pw:"versioned create(optional) update(optional)"`
	Trashed   bool              `json:"trashed" pw:"versioned search"`
	Favorite  bool              `json:"favorite" pw:"versioned create(optional) update(optional) search"`
	Revisions []VersionedFolder `json:"revisions,omitempty"`
	Folders   []Folder          `json:"folders,omitempty"`
	Passwords []Password        `json:"passwords,omitempty"`
}
