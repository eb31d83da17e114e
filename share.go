package passwords

import (
	"context"
	"net/http"
	"net/url"
	"sort"

	"github.com/google/uuid"
)

// Person is a user taking part in a share.
type Person struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// ShareType is the kind of receiver of a share. Only user shares exist today.
type ShareType string

const ShareTypeUser ShareType = "user"

// CreateShare is the payload for sharing a password with another user.
type CreateShare struct {
	Password  uuid.UUID       `json:"password" validate:"required"`
	Receiver  string          `json:"receiver" validate:"required"`
	Type      ShareType       `json:"type" validate:"oneof=user"`
	Expires   Optional[int64] `json:"expires,omitzero"`
	Editable  Optional[bool]  `json:"editable,omitzero"`
	Shareable Optional[bool]  `json:"shareable,omitzero"`
}

// NewCreateShare shares password with the user receiver.
func NewCreateShare(password uuid.UUID, receiver string) CreateShare {
	return CreateShare{Password: password, Receiver: receiver, Type: ShareTypeUser}
}

// WithExpires returns a copy of c expiring at the given unix time.
func (c CreateShare) WithExpires(expires int64) CreateShare {
	c.Expires = Some(expires)
	return c
}

// WithEditable returns a copy of c with Editable set.
func (c CreateShare) WithEditable(editable bool) CreateShare {
	c.Editable = Some(editable)
	return c
}

// WithShareable returns a copy of c with Shareable set.
func (c CreateShare) WithShareable(shareable bool) CreateShare {
	c.Shareable = Some(shareable)
	return c
}

type shareID struct {
	ID uuid.UUID `json:"id"`
}

// Create shares a password and returns the id of the new share.
func (a *ShareAPI) Create(ctx context.Context, value CreateShare) (uuid.UUID, error) {
	path := a.ep.path("create")
	if err := check(path, value); err != nil {
		return uuid.Nil, err
	}
	var out shareID
	err := a.ep.client.call(ctx, http.MethodPost, path, value, &out)
	return out.ID, err
}

// Update changes the permissions or expiry of a share.
func (a *ShareAPI) Update(ctx context.Context, value UpdateShare) (uuid.UUID, error) {
	var out shareID
	err := a.ep.client.call(ctx, http.MethodPost, a.ep.path("update"), value, &out)
	return out.ID, err
}

// Delete removes a share. Shares have no trash.
func (a *ShareAPI) Delete(ctx context.Context, id uuid.UUID) (uuid.UUID, error) {
	var out shareID
	err := a.ep.client.call(ctx, http.MethodDelete, a.ep.path("delete"), shareID{ID: id}, &out)
	return out.ID, err
}

// Partner is a user the current user may share with.
type Partner struct {
	UserID      string
	DisplayName string
}

// PartnerQuery narrows the partner list.
type PartnerQuery struct {
	Search string `json:"search,omitempty" schema:"search,omitempty"`
	Limit  int    `json:"limit,omitempty" schema:"limit,omitempty" validate:"omitempty,min=5,max=256"`
}

// Partners returns the users the current user can share with, sorted by
// user id. The call fails when sharing is disabled on the server.
func (a *ShareAPI) Partners(ctx context.Context, q PartnerQuery) ([]Partner, error) {
	path := a.ep.path("partners")
	if err := check(path, q); err != nil {
		return nil, err
	}

	var raw map[string]string
	if q.Search == "" {
		values := url.Values{}
		if err := queryEncoder.Encode(q, values); err != nil {
			return nil, wrapError(path, err)
		}
		if err := a.ep.client.callQuery(ctx, path, values, &raw); err != nil {
			return nil, err
		}
	} else if err := a.ep.client.call(ctx, http.MethodPost, path, q, &raw); err != nil {
		return nil, err
	}

	out := make([]Partner, 0, len(raw))
	for id, name := range raw {
		out = append(out, Partner{UserID: id, DisplayName: name})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].UserID < out[j].UserID })
	return out, nil
}
