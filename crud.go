package passwords

import (
	"context"
	"net/http"

	"github.com/google/uuid"
)

// Identifier names a record revision returned by create, update and restore.
type Identifier struct {
	ID       uuid.UUID `json:"id"`
	Revision uuid.UUID `json:"revision"`
}

// TrashedIdentifier is the result of a delete. Revision is set when the
// record was moved to the trash and nil when it was removed for good.
type TrashedIdentifier struct {
	ID       uuid.UUID  `json:"id"`
	Revision *uuid.UUID `json:"revision"`
}

// InTrash reports whether the record still exists in the trash.
func (t TrashedIdentifier) InTrash() bool {
	return t.Revision != nil
}

// endpoint binds an entity's wire prefix to a client.
type endpoint struct {
	client *Client
	prefix string // e.g. "1.0/folder"
}

func (e endpoint) path(action string) string {
	return e.prefix + "/" + action
}

type detailsRequest struct {
	Details string `json:"details"`
}

type showRequest struct {
	ID      uuid.UUID `json:"id"`
	Details string    `json:"details"`
}

type findRequest[S any] struct {
	Criteria S      `json:"criteria"`
	Details  string `json:"details"`
}

type revisionRequest struct {
	ID       uuid.UUID  `json:"id"`
	Revision *uuid.UUID `json:"revision"`
}

func listCall[T any](ctx context.Context, ep endpoint, details string) ([]T, error) {
	var out []T
	if err := ep.client.call(ctx, http.MethodPost, ep.path("list"), detailsRequest{Details: details}, &out); err != nil {
		return nil, err
	}
	if out == nil {
		out = []T{}
	}
	return out, nil
}

func getCall[T any](ctx context.Context, ep endpoint, id uuid.UUID, details string) (*T, error) {
	var out T
	if err := ep.client.call(ctx, http.MethodPost, ep.path("show"), showRequest{ID: id, Details: details}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func findCall[T, S any](ctx context.Context, ep endpoint, criteria S, details string) ([]T, error) {
	var out []T
	req := findRequest[S]{Criteria: criteria, Details: details}
	if err := ep.client.call(ctx, http.MethodPost, ep.path("find"), req, &out); err != nil {
		return nil, err
	}
	if out == nil {
		out = []T{}
	}
	return out, nil
}

func createCall[C any](ctx context.Context, ep endpoint, value C) (Identifier, error) {
	var out Identifier
	err := ep.client.call(ctx, http.MethodPost, ep.path("create"), value, &out)
	return out, err
}

func updateCall[U any](ctx context.Context, ep endpoint, value U) (Identifier, error) {
	var out Identifier
	err := ep.client.call(ctx, http.MethodPost, ep.path("update"), value, &out)
	return out, err
}

func deleteCall(ctx context.Context, ep endpoint, id uuid.UUID, revision *uuid.UUID) (TrashedIdentifier, error) {
	var out TrashedIdentifier
	err := ep.client.call(ctx, http.MethodDelete, ep.path("delete"), revisionRequest{ID: id, Revision: revision}, &out)
	return out, err
}

func restoreCall(ctx context.Context, ep endpoint, id uuid.UUID, revision *uuid.UUID) (Identifier, error) {
	var out Identifier
	err := ep.client.call(ctx, http.MethodPatch, ep.path("restore"), revisionRequest{ID: id, Revision: revision}, &out)
	return out, err
}
