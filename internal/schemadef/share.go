//go:build passwordsgen

package schemadef

import "github.com/google/uuid"

// Share is a password shared between two users. Creating, updating and
// deleting shares return bare ids and are implemented by hand.
//
//passwords:entity 1.0/share list,get,find
//passwords:details password
type Share struct {
	ID            uuid.UUID          `json:"id" pw:"update(required)"`
	Created       int64              `json:"created" pw:"search"`
	Updated       int64              `json:"updated" pw:"search"`
	Expires       int64              `json:"expires" pw:"update(optional) search"`
	Editable      bool               `json:"editable" pw:"update(optional) search"`
	Shareable     bool               `json:"shareable" pw:"update(optional) search"`
	UpdatePending bool               `json:"updatePending"`
	Password      Relation[Password] `json:"password"`
	Owner         Person             `json:"owner"`
	Receiver      Person             `json:"receiver"`
}
