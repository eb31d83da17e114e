package passwordstest

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/google/uuid"
)

// BaseFolder is the id of the root folder.
var BaseFolder = uuid.Nil

type ctxKey int

const userCtxKey ctxKey = 0

func withUser(ctx context.Context, user string) context.Context {
	return context.WithValue(ctx, userCtxKey, user)
}

func userFrom(ctx context.Context) string {
	u, _ := ctx.Value(userCtxKey).(string)
	return u
}

// record is one stored object. Fields holds the current revision; every
// revision, including the current one, is kept in revisions.
type record struct {
	id        uuid.UUID
	created   int64
	fields    map[string]any
	revisions []map[string]any
}

func (r *record) revision() string {
	rev, _ := r.fields["revision"].(string)
	return rev
}

func (r *record) trashed() bool { return r.fields["trashed"] == true }
func (r *record) hidden() bool  { return r.fields["hidden"] == true }
func (r *record) owner() string { return toString(r.fields["owner"]) }

// setRevision assigns a new revision id and snapshots the fields.
func (r *record) setRevision() string {
	rev := uuid.NewString()
	r.fields["revision"] = rev
	snap := make(map[string]any, len(r.fields))
	for k, v := range r.fields {
		snap[k] = v
	}
	r.revisions = append(r.revisions, snap)
	return rev
}

// object renders the record as sent on the wire.
func (r *record) object(withRevisions bool) map[string]any {
	out := make(map[string]any, len(r.fields)+3)
	for k, v := range r.fields {
		if k == "owner" {
			continue
		}
		out[k] = v
	}
	out["id"] = r.id.String()
	out["created"] = r.created
	if withRevisions {
		revs := make([]map[string]any, len(r.revisions))
		for i, rev := range r.revisions {
			revs[i] = make(map[string]any, len(rev))
			for k, v := range rev {
				if k != "owner" {
					revs[i][k] = v
				}
			}
		}
		out["revisions"] = revs
	}
	return out
}

type store struct {
	name     string
	required []string
	records  map[uuid.UUID]*record
	order    []uuid.UUID
}

func newStore(name string, required ...string) *store {
	return &store{name: name, required: required, records: map[uuid.UUID]*record{}}
}

// visible returns the records of user in creation order.
func (st *store) visible(user string) []*record {
	out := make([]*record, 0, len(st.order))
	for _, id := range st.order {
		rec, ok := st.records[id]
		if !ok || rec.owner() != user {
			continue
		}
		out = append(out, rec)
	}
	return out
}

func (st *store) lookup(user string, id uuid.UUID) (*record, bool) {
	rec, ok := st.records[id]
	if !ok || rec.owner() != user {
		return nil, false
	}
	return rec, true
}

func (st *store) insert(rec *record) {
	st.records[rec.id] = rec
	st.order = append(st.order, rec.id)
}

func (st *store) remove(id uuid.UUID) {
	delete(st.records, id)
	for i, o := range st.order {
		if o == id {
			st.order = append(st.order[:i], st.order[i+1:]...)
			break
		}
	}
}

type detailsBody struct {
	ID       uuid.UUID                  `json:"id"`
	Details  string                     `json:"details"`
	Criteria map[string]json.RawMessage `json:"criteria"`
}

type revisionBody struct {
	ID       uuid.UUID  `json:"id"`
	Revision *uuid.UUID `json:"revision"`
}

func hasDetail(details, flag string) bool {
	for _, part := range strings.Split(details, "+")[1:] {
		if part == flag {
			return true
		}
	}
	return false
}

// render applies the detail level to rec.
func (s *Server) render(name string, rec *record, details, user string) map[string]any {
	obj := rec.object(hasDetail(details, "revisions"))
	switch name {
	case "password":
		if hasDetail(details, "folder") {
			if id, err := uuid.Parse(toString(obj["folder"])); err == nil {
				if f, ok := s.stores["folder"].lookup(user, id); ok {
					obj["folder"] = f.object(false)
				}
			}
		}
	case "folder":
		if hasDetail(details, "passwords") {
			var children []map[string]any
			for _, p := range s.stores["password"].visible(user) {
				if toString(p.fields["folder"]) == rec.id.String() && !p.trashed() {
					children = append(children, p.object(false))
				}
			}
			obj["passwords"] = children
		}
	case "share":
		obj["owner"] = s.person(rec.owner())
		obj["receiver"] = s.person(toString(rec.fields["receiver"]))
		if hasDetail(details, "password") {
			if id, err := uuid.Parse(toString(obj["password"])); err == nil {
				if p, ok := s.stores["password"].records[id]; ok {
					obj["password"] = p.object(false)
				}
			}
		}
	}
	return obj
}

func (s *Server) list(name string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body detailsBody
		if !decode(w, r, &body) {
			return
		}
		user := userFrom(r.Context())
		s.mu.Lock()
		defer s.mu.Unlock()
		out := []map[string]any{}
		for _, rec := range s.stores[name].visible(user) {
			if rec.trashed() || rec.hidden() {
				continue
			}
			out = append(out, s.render(name, rec, body.Details, user))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

func (s *Server) show(name string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body detailsBody
		if !decode(w, r, &body) {
			return
		}
		user := userFrom(r.Context())
		s.mu.Lock()
		defer s.mu.Unlock()
		rec, ok := s.stores[name].lookup(user, body.ID)
		if !ok {
			writeError(w, http.StatusNotFound, ErrIDNotFound, "Object not found")
			return
		}
		writeJSON(w, http.StatusOK, s.render(name, rec, body.Details, user))
	}
}

func (s *Server) find(name string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body detailsBody
		if !decode(w, r, &body) {
			return
		}
		criteria := make(map[string]criterion, len(body.Criteria))
		for field, raw := range body.Criteria {
			c, err := parseCriterion(raw)
			if err != nil {
				writeError(w, http.StatusBadRequest, ErrIDBadRequest, "Invalid criteria for "+field)
				return
			}
			criteria[field] = c
		}
		if _, ok := criteria["trashed"]; !ok && name != "share" {
			criteria["trashed"] = criterion{op: "eq", value: false}
		}

		user := userFrom(r.Context())
		s.mu.Lock()
		defer s.mu.Unlock()
		out := []map[string]any{}
		for _, rec := range s.stores[name].visible(user) {
			if rec.hidden() {
				continue
			}
			obj := rec.object(false)
			matched := true
			for field, c := range criteria {
				if !c.match(obj[field]) {
					matched = false
					break
				}
			}
			if matched {
				out = append(out, s.render(name, rec, body.Details, user))
			}
		}
		writeJSON(w, http.StatusOK, out)
	}
}

func (s *Server) create(name string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var fields map[string]any
		if !decode(w, r, &fields) {
			return
		}
		st := s.stores[name]
		for _, f := range st.required {
			if v, ok := fields[f]; !ok || v == nil || v == "" {
				writeError(w, http.StatusBadRequest, ErrIDMissingField, `Field "`+f+`" can not be empty`)
				return
			}
		}
		if f, ok := invalidRelation(name, fields); !ok {
			writeError(w, http.StatusBadRequest, ErrIDBadRequest, `Field "`+f+`" must be an id`)
			return
		}
		delete(fields, "id")

		s.mu.Lock()
		defer s.mu.Unlock()
		now := s.now().Unix()
		for k, v := range map[string]any{
			"hidden": false, "favorite": false, "trashed": false,
			"cseType": "none", "sseType": "SSEv1r2", "client": "passwordstest",
			"edited": now,
		} {
			if _, ok := fields[k]; !ok {
				fields[k] = v
			}
		}
		if name == "folder" {
			if _, ok := fields["parent"]; !ok {
				fields["parent"] = BaseFolder.String()
			}
		}
		if name == "password" {
			if _, ok := fields["folder"]; !ok {
				fields["folder"] = BaseFolder.String()
			}
			fields["status"] = 0
			fields["statusCode"] = "GOOD"
			fields["shared"] = false
			fields["editable"] = true
		}
		fields["updated"] = now
		fields["owner"] = userFrom(r.Context())

		rec := &record{id: uuid.New(), created: now, fields: fields}
		rev := rec.setRevision()
		st.insert(rec)
		writeJSON(w, http.StatusCreated, map[string]any{"id": rec.id.String(), "revision": rev})
	}
}

// relationFields hold ids of other records and are never sent embedded.
var relationFields = map[string][]string{
	"folder":   {"parent"},
	"password": {"folder"},
}

// invalidRelation returns the first relation field of an entity whose value
// is not an id.
func invalidRelation(name string, fields map[string]any) (string, bool) {
	for _, f := range relationFields[name] {
		v, present := fields[f]
		if !present {
			continue
		}
		str, isString := v.(string)
		if !isString {
			return f, false
		}
		if _, err := uuid.Parse(str); err != nil {
			return f, false
		}
	}
	return "", true
}

func (s *Server) update(name string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var fields map[string]any
		if !decode(w, r, &fields) {
			return
		}
		id, err := uuid.Parse(toString(fields["id"]))
		if err != nil {
			writeError(w, http.StatusBadRequest, ErrIDMissingField, `Field "id" can not be empty`)
			return
		}
		st := s.stores[name]
		for _, f := range st.required {
			if v, ok := fields[f]; !ok || v == nil || v == "" {
				writeError(w, http.StatusBadRequest, ErrIDMissingField, `Field "`+f+`" can not be empty`)
				return
			}
		}
		if f, ok := invalidRelation(name, fields); !ok {
			writeError(w, http.StatusBadRequest, ErrIDBadRequest, `Field "`+f+`" must be an id`)
			return
		}

		s.mu.Lock()
		defer s.mu.Unlock()
		rec, ok := st.lookup(userFrom(r.Context()), id)
		if !ok {
			writeError(w, http.StatusNotFound, ErrIDNotFound, "Object not found")
			return
		}
		delete(fields, "id")
		delete(fields, "owner")
		for k, v := range fields {
			rec.fields[k] = v
		}
		rec.fields["updated"] = s.now().Unix()
		rev := rec.setRevision()
		writeJSON(w, http.StatusOK, map[string]any{"id": id.String(), "revision": rev})
	}
}

func (s *Server) delete(name string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body revisionBody
		if !decode(w, r, &body) {
			return
		}
		st := s.stores[name]
		s.mu.Lock()
		defer s.mu.Unlock()
		rec, ok := st.lookup(userFrom(r.Context()), body.ID)
		if !ok {
			writeError(w, http.StatusNotFound, ErrIDNotFound, "Object not found")
			return
		}
		if body.Revision != nil && body.Revision.String() != rec.revision() {
			writeError(w, http.StatusBadRequest, ErrIDOutdated, "Outdated revision id")
			return
		}
		if rec.trashed() {
			st.remove(rec.id)
			writeJSON(w, http.StatusOK, map[string]any{"id": rec.id.String(), "revision": nil})
			return
		}
		rec.fields["trashed"] = true
		rec.fields["updated"] = s.now().Unix()
		rev := rec.setRevision()
		writeJSON(w, http.StatusOK, map[string]any{"id": rec.id.String(), "revision": rev})
	}
}

func (s *Server) restore(name string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body revisionBody
		if !decode(w, r, &body) {
			return
		}
		st := s.stores[name]
		s.mu.Lock()
		defer s.mu.Unlock()
		rec, ok := st.lookup(userFrom(r.Context()), body.ID)
		if !ok {
			writeError(w, http.StatusNotFound, ErrIDNotFound, "Object not found")
			return
		}

		if body.Revision == nil {
			if !rec.trashed() {
				writeJSON(w, http.StatusOK, map[string]any{"id": rec.id.String(), "revision": rec.revision()})
				return
			}
			rec.fields["trashed"] = false
		} else {
			var found map[string]any
			for _, rev := range rec.revisions {
				if rev["revision"] == body.Revision.String() {
					found = rev
					break
				}
			}
			if found == nil {
				writeError(w, http.StatusBadRequest, ErrIDInvalidRevision, "Invalid revision id")
				return
			}
			for k, v := range found {
				rec.fields[k] = v
			}
			rec.fields["trashed"] = false
		}
		rec.fields["updated"] = s.now().Unix()
		rev := rec.setRevision()
		writeJSON(w, http.StatusOK, map[string]any{"id": rec.id.String(), "revision": rev})
	}
}

func (s *Server) shareCreate(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Password  uuid.UUID `json:"password"`
		Receiver  string    `json:"receiver"`
		Type      string    `json:"type"`
		Expires   *int64    `json:"expires"`
		Editable  *bool     `json:"editable"`
		Shareable *bool     `json:"shareable"`
	}
	if !decode(w, r, &body) {
		return
	}
	me := userFrom(r.Context())
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.stores["password"].lookup(me, body.Password); !ok {
		writeError(w, http.StatusNotFound, ErrIDNotFound, "Object not found")
		return
	}
	if _, ok := s.users[body.Receiver]; !ok || body.Receiver == me {
		writeError(w, http.StatusBadRequest, ErrIDBadRequest, "Invalid receiver uid")
		return
	}
	now := s.now().Unix()
	fields := map[string]any{
		"password":      body.Password.String(),
		"owner":         me,
		"receiver":      body.Receiver,
		"updated":       now,
		"expires":       deref(body.Expires),
		"editable":      body.Editable != nil && *body.Editable,
		"shareable":     body.Shareable == nil || *body.Shareable,
		"updatePending": false,
	}
	rec := &record{id: uuid.New(), created: now, fields: fields}
	s.stores["share"].insert(rec)
	writeJSON(w, http.StatusCreated, map[string]any{"id": rec.id.String()})
}

func (s *Server) shareUpdate(w http.ResponseWriter, r *http.Request) {
	var body struct {
		ID        uuid.UUID `json:"id"`
		Expires   *int64    `json:"expires"`
		Editable  *bool     `json:"editable"`
		Shareable *bool     `json:"shareable"`
	}
	if !decode(w, r, &body) {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.stores["share"].lookup(userFrom(r.Context()), body.ID)
	if !ok {
		writeError(w, http.StatusNotFound, ErrIDNotFound, "Object not found")
		return
	}
	if body.Expires != nil {
		rec.fields["expires"] = *body.Expires
	}
	if body.Editable != nil {
		rec.fields["editable"] = *body.Editable
	}
	if body.Shareable != nil {
		rec.fields["shareable"] = *body.Shareable
	}
	rec.fields["updated"] = s.now().Unix()
	writeJSON(w, http.StatusOK, map[string]any{"id": rec.id.String()})
}

func (s *Server) shareDelete(w http.ResponseWriter, r *http.Request) {
	var body struct {
		ID uuid.UUID `json:"id"`
	}
	if !decode(w, r, &body) {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	st := s.stores["share"]
	if _, ok := st.lookup(userFrom(r.Context()), body.ID); !ok {
		writeError(w, http.StatusNotFound, ErrIDNotFound, "Object not found")
		return
	}
	st.remove(body.ID)
	writeJSON(w, http.StatusOK, map[string]any{"id": body.ID.String()})
}

func (s *Server) person(user string) map[string]any {
	return map[string]any{"id": user, "name": s.names[user]}
}

func deref(p *int64) int64 {
	if p == nil {
		return 0
	}
	return *p
}
