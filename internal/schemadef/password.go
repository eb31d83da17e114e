//go:build passwordsgen

package schemadef

import "github.com/google/uuid"

// Password is a stored credential.
//
//passwords:entity 1.0/password
//passwords:details revisions folder tags shares
type Password struct {
	ID           uuid.UUID           `json:"id" pw:"update(required) versioned(false)"`
	Label        string              `json:"label" pw:"create(required) versioned(true) update(required)"`
	Username     string              `json:"username" pw:"create(optional) versioned(true) update(optional)"`
	Password     string              `json:"password" pw:"create(required) versioned(true) update(required)"`
	URL          string              `json:"url" pw:"create(optional) versioned(true) update(optional)"`
	Notes        string              `json:"notes" pw:"create(optional) versioned(true) update(optional)"`
	CustomFields string              `json:"customFields" pw:"create(optional) versioned(true) update(optional)"`
	Hash         string              `json:"hash" pw:"create(required) versioned(true) update(required)"`
	CSEType      string              `json:"cseType" pw:"create(optional) versioned(true) update(optional) search"`
	CSEKey       string              `json:"cseKey" pw:"create(optional) versioned(true) update(optional)"`
	SSEType      string              `json:"sseType" pw:"versioned(true) search"`
	Hidden       bool                `json:"hidden" pw:"create(optional) versioned(true) update(optional)"`
	Favorite     bool                `json:"favorite" pw:"create(optional) versioned(true) update(optional) search"`
	Edited       int64               `json:"edited" pw:"create(optional) versioned(true) update(optional) search"`
	Trashed      bool                `json:"trashed" pw:"versioned(true) search"`
	Updated      int64               `json:"updated" pw:"versioned(true) search"`
	Client       string              `json:"client" pw:"versioned(true)"`
	Status       SecurityStatus      `json:"status" pw:"versioned(true) search"`
	StatusCode   StatusCode          `json:"statusCode" pw:"versioned(true)"`
	Revision     uuid.UUID           `json:"revision" pw:"versioned(false)"`
	Share        *uuid.UUID          `json:"share" pw:"versioned(false)"`
	Shared       bool                `json:"shared" pw:"versioned(false)"`
	Editable     bool                `json:"editable" pw:"versioned(false)"`
	Created      int64               `json:"created" pw:"search versioned(false)"`
	Folder       Relation[Folder]    `json:"folder" pw:"create(optional) update(optional) versioned(false)"`
	Tags         []Tag               `json:"tags,omitempty" pw:"versioned(false)"`
	Shares       []Share             `json:"shares,omitempty" pw:"versioned(false)"`
	Revisions    []VersionedPassword `json:"revisions,omitempty" pw:"versioned(false)"`
}
