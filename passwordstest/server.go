// Package passwordstest provides an in-memory Passwords server for tests.
//
// The server speaks the same wire protocol as the real app closely enough
// to exercise a client end to end: sessions with basic auth and a session
// token, settings, CRUD with revisions and a trash, shares and the helper
// services. It keeps everything in memory and records every call so tests
// can assert on paths and verbs.
package passwordstest

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

const (
	// APIRoot is the path prefix of every API call.
	APIRoot = "/index.php/apps/passwords/api/"

	sessionHeader = "X-API-SESSION"

	// DefaultLifetime is the session lifetime reported unless overridden.
	DefaultLifetime int64 = 600
)

// Error ids sent in error objects.
const (
	ErrIDUnauthorized    int64 = 0x1a
	ErrIDNotFound        int64 = 0x4b
	ErrIDMissingField    int64 = 0x5c
	ErrIDOutdated        int64 = 0x6d
	ErrIDInvalidRevision int64 = 0x7e
	ErrIDBadRequest      int64 = 0x8f
	ErrIDInjected        int64 = 0x99
)

// Call is one request received by the server.
type Call struct {
	Method string
	Path   string // relative to APIRoot, e.g. "1.0/folder/list"
	Token  string
}

type injected struct {
	status  int
	id      int64
	message string
}

// Server is an in-memory Passwords server.
type Server struct {
	URL string

	srv *httptest.Server
	now func() time.Time

	mu        sync.Mutex
	users     map[string]string // username -> password
	names     map[string]string // username -> display name
	lifetime  int64
	challenge bool
	sessions  map[string]string // token -> username
	settings  map[string]any
	defaults  map[string]any
	stores    map[string]*store
	failures  map[string][]injected
	calls     []Call
}

// Option configures a Server.
type Option func(*Server)

// WithUser adds an account. The first account added is also the default
// one used by Username and Password.
func WithUser(username, password, displayName string) Option {
	return func(s *Server) {
		s.users[username] = password
		s.names[username] = displayName
	}
}

// WithSessionLifetime sets the value of user.session.lifetime in seconds.
func WithSessionLifetime(seconds int64) Option {
	return func(s *Server) {
		s.lifetime = seconds
	}
}

// WithClock sets the clock used for timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Server) {
		s.now = now
	}
}

// WithChallenge makes the server demand a client side encryption
// challenge before opening a session.
func WithChallenge() Option {
	return func(s *Server) {
		s.challenge = true
	}
}

// Default credentials.
const (
	Username = "alice"
	Password = "correct horse battery staple"
)

// New starts a server and registers its shutdown with t.Cleanup.
func New(t testing.TB, opts ...Option) *Server {
	t.Helper()
	s := newServer(opts...)
	s.srv = httptest.NewServer(s.Handler())
	s.URL = s.srv.URL
	t.Cleanup(s.srv.Close)
	return s
}

func newServer(opts ...Option) *Server {
	s := &Server{
		now:      time.Now,
		users:    map[string]string{},
		names:    map[string]string{},
		lifetime: DefaultLifetime,
		sessions: map[string]string{},
		stores: map[string]*store{
			"folder":   newStore("folder", "label"),
			"password": newStore("password", "label", "password", "hash"),
			"tag":      newStore("tag", "label", "color"),
			"share":    newStore("share", "password", "receiver"),
		},
		failures: map[string][]injected{},
	}
	for _, o := range opts {
		o(s)
	}
	if len(s.users) == 0 {
		s.users[Username] = Password
		s.names[Username] = "Alice"
		s.users["bob"] = "hunter2"
		s.names["bob"] = "Bob"
		s.users["carol"] = "hunter3"
		s.names["carol"] = "Carol"
	}
	s.defaults = map[string]any{
		"user.password.generator.strength":  1,
		"user.password.generator.numbers":   false,
		"user.password.generator.special":   false,
		"user.password.security.duplicates": true,
		"user.password.security.age":        0,
		"user.mail.security":                true,
		"user.mail.shares":                  false,
		"user.notification.security":        true,
		"user.notification.shares":          true,
		"user.notification.errors":          true,
		"user.encryption.sse":               1,
		"user.encryption.cse":               0,
		"user.session.lifetime":             s.lifetime,
		"server.version":                    "2024.1.0",
		"server.baseUrl":                    "https://cloud.example.com/",
		"server.sharing.enabled":            true,
		"server.sharing.resharing":          true,
		"server.sharing.autocomplete":       true,
		"server.sharing.types":              []string{"user"},
		"server.theme.label":                "Nextcloud",
	}
	s.settings = make(map[string]any, len(s.defaults))
	for k, v := range s.defaults {
		s.settings[k] = v
	}
	return s
}

// Handler returns the HTTP handler of the server.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(s.record)
	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, ErrIDNotFound, "Unknown route "+r.URL.Path)
	})

	r.Route(APIRoot+"1.0", func(r chi.Router) {
		r.Use(s.inject)
		r.Get("/session/request", s.sessionRequest)
		r.Post("/session/open", s.sessionOpen)

		r.Group(func(r chi.Router) {
			r.Use(s.requireSession)

			r.Get("/session/keepalive", s.sessionKeepAlive)
			r.Get("/session/close", s.sessionClose)

			r.Post("/settings/get", s.settingsGet)
			r.Post("/settings/set", s.settingsSet)
			r.Post("/settings/reset", s.settingsReset)
			r.Post("/settings/list", s.settingsList)

			for _, name := range []string{"folder", "password", "tag"} {
				r.Post("/"+name+"/list", s.list(name))
				r.Post("/"+name+"/show", s.show(name))
				r.Post("/"+name+"/find", s.find(name))
				r.Post("/"+name+"/create", s.create(name))
				r.Post("/"+name+"/update", s.update(name))
				r.Delete("/"+name+"/delete", s.delete(name))
				r.Patch("/"+name+"/restore", s.restore(name))
			}

			r.Post("/share/list", s.list("share"))
			r.Post("/share/show", s.show("share"))
			r.Post("/share/find", s.find("share"))
			r.Post("/share/create", s.shareCreate)
			r.Post("/share/update", s.shareUpdate)
			r.Delete("/share/delete", s.shareDelete)
			r.Get("/share/partners", s.sharePartners)
			r.Post("/share/partners", s.sharePartners)

			r.Get("/service/password", s.generatePassword)
			r.Post("/service/password", s.generatePassword)
			r.Get("/service/avatar/{user}/{size}", s.image("image/png"))
			r.Get("/service/favicon/{domain}/{size}", s.image("image/png"))
			r.Get("/service/preview/{domain}/{view}/{width}/{height}", s.image("image/jpeg"))

			r.Get("/token/{provider}/request", s.tokenRequest)
		})
	})
	return r
}

// Calls returns the calls received so far.
func (s *Server) Calls() []Call {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Call(nil), s.calls...)
}

// CallCount returns how many calls were made to path.
func (s *Server) CallCount(path string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, c := range s.calls {
		if c.Path == path {
			n++
		}
	}
	return n
}

// ResetCalls forgets recorded calls.
func (s *Server) ResetCalls() {
	s.mu.Lock()
	s.calls = nil
	s.mu.Unlock()
}

// Fail makes the next call to path answer with an error object.
func (s *Server) Fail(path string, status int, message string) {
	s.mu.Lock()
	s.failures[path] = append(s.failures[path], injected{status: status, id: ErrIDInjected, message: message})
	s.mu.Unlock()
}

// ExpireSessions drops every open session on the server side.
func (s *Server) ExpireSessions() {
	s.mu.Lock()
	clear(s.sessions)
	s.mu.Unlock()
}

// OpenSessions returns the number of open sessions.
func (s *Server) OpenSessions() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

// HasSession reports whether token names an open session.
func (s *Server) HasSession(token string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.sessions[token]
	return ok
}

// Setting returns the stored value of a setting.
func (s *Server) Setting(name string) (any, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.settings[name]
	return v, ok
}

// Record returns the current state of a stored record.
func (s *Server) Record(entity string, id uuid.UUID) (map[string]any, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	st, ok := s.stores[entity]
	if !ok {
		return nil, false
	}
	rec, ok := st.records[id]
	if !ok {
		return nil, false
	}
	return rec.object(false), true
}

func (s *Server) record(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		s.calls = append(s.calls, Call{
			Method: r.Method,
			Path:   strings.TrimPrefix(r.URL.Path, APIRoot),
			Token:  r.Header.Get(sessionHeader),
		})
		s.mu.Unlock()
		next.ServeHTTP(w, r)
	})
}

func (s *Server) inject(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path := strings.TrimPrefix(r.URL.Path, APIRoot)
		s.mu.Lock()
		queue := s.failures[path]
		var f *injected
		if len(queue) > 0 {
			f = &queue[0]
			s.failures[path] = queue[1:]
		}
		s.mu.Unlock()
		if f != nil {
			writeError(w, f.status, f.id, f.message)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// authenticate checks basic auth and returns the user.
func (s *Server) authenticate(r *http.Request) (string, bool) {
	user, pass, ok := r.BasicAuth()
	if !ok {
		return "", false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	want, exists := s.users[user]
	return user, exists && want == pass
}

type userKey struct{}

func (s *Server) requireSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, ok := s.authenticate(r)
		if !ok {
			writeError(w, http.StatusUnauthorized, ErrIDUnauthorized, "Authorization required")
			return
		}
		s.mu.Lock()
		owner, open := s.sessions[r.Header.Get(sessionHeader)]
		s.mu.Unlock()
		if !open || owner != user {
			writeError(w, http.StatusUnauthorized, ErrIDUnauthorized, "Authorization required")
			return
		}
		next.ServeHTTP(w, r.WithContext(withUser(r.Context(), user)))
	})
}

func (s *Server) sessionRequest(w http.ResponseWriter, r *http.Request) {
	if _, ok := s.authenticate(r); !ok {
		writeError(w, http.StatusUnauthorized, ErrIDUnauthorized, "Authorization required")
		return
	}
	if s.challenge {
		writeJSON(w, http.StatusOK, map[string]any{
			"challenge": map[string]any{"type": "PWDv1r1", "salts": []string{"a", "b", "c"}},
		})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{})
}

func (s *Server) sessionOpen(w http.ResponseWriter, r *http.Request) {
	user, ok := s.authenticate(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, ErrIDUnauthorized, "Authorization required")
		return
	}
	token := uuid.NewString()
	s.mu.Lock()
	s.sessions[token] = user
	s.mu.Unlock()
	w.Header().Set(sessionHeader, token)
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "keys": map[string]any{}})
}

func (s *Server) sessionKeepAlive(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"success": true})
}

func (s *Server) sessionClose(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	delete(s.sessions, r.Header.Get(sessionHeader))
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, map[string]any{"success": true})
}

func (s *Server) settingsGet(w http.ResponseWriter, r *http.Request) {
	var names []string
	if !decode(w, r, &names) {
		return
	}
	s.mu.Lock()
	out := make(map[string]any, len(names))
	for _, n := range names {
		if v, ok := s.settings[n]; ok {
			out[n] = v
		}
	}
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) settingsSet(w http.ResponseWriter, r *http.Request) {
	var values map[string]any
	if !decode(w, r, &values) {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for name := range values {
		if !strings.HasPrefix(name, "user.") && !strings.HasPrefix(name, "client.") {
			writeError(w, http.StatusBadRequest, ErrIDBadRequest, "Invalid setting "+name)
			return
		}
	}
	for name, v := range values {
		s.settings[name] = v
	}
	writeJSON(w, http.StatusOK, values)
}

func (s *Server) settingsReset(w http.ResponseWriter, r *http.Request) {
	var names []string
	if !decode(w, r, &names) {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[string]any, len(names))
	for _, n := range names {
		if v, ok := s.defaults[n]; ok {
			s.settings[n] = v
		} else {
			delete(s.settings, n)
		}
		out[n] = s.defaults[n]
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) settingsList(w http.ResponseWriter, r *http.Request) {
	var scopes []string
	if r.ContentLength != 0 && !decode(w, r, &scopes) {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	out := map[string]any{}
	for name, v := range s.settings {
		if len(scopes) == 0 {
			out[name] = v
			continue
		}
		for _, scope := range scopes {
			if strings.HasPrefix(name, scope+".") {
				out[name] = v
			}
		}
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) sharePartners(w http.ResponseWriter, r *http.Request) {
	var q struct {
		Search string `json:"search"`
		Limit  int    `json:"limit"`
	}
	if r.Method == http.MethodPost {
		if !decode(w, r, &q) {
			return
		}
	} else {
		q.Search = r.URL.Query().Get("search")
		fmt.Sscan(r.URL.Query().Get("limit"), &q.Limit)
	}

	me := userFrom(r.Context())
	s.mu.Lock()
	defer s.mu.Unlock()
	if enabled, _ := s.settings["server.sharing.enabled"].(bool); !enabled {
		writeError(w, http.StatusForbidden, ErrIDBadRequest, "Sharing disabled")
		return
	}
	ids := make([]string, 0, len(s.users))
	for id := range s.users {
		if id == me {
			continue
		}
		if q.Search != "" && !strings.Contains(strings.ToLower(id+" "+s.names[id]), strings.ToLower(q.Search)) {
			continue
		}
		ids = append(ids, id)
	}
	sort.Strings(ids)
	if q.Limit > 0 && len(ids) > q.Limit {
		ids = ids[:q.Limit]
	}
	out := make(map[string]string, len(ids))
	for _, id := range ids {
		out[id] = s.names[id]
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) generatePassword(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	req := struct {
		Strength int  `json:"strength"`
		Numbers  bool `json:"numbers"`
		Special  bool `json:"special"`
	}{
		Strength: toInt(s.settings["user.password.generator.strength"]),
		Numbers:  s.settings["user.password.generator.numbers"] == true,
		Special:  s.settings["user.password.generator.special"] == true,
	}
	s.mu.Unlock()
	if r.Method == http.MethodPost && !decode(w, r, &req) {
		return
	}

	words := []string{"correct", "horse", "battery", "staple"}[:min(4, req.Strength+1)]
	pw := strings.Join(words, "-")
	if req.Numbers {
		pw += "42"
	}
	if req.Special {
		pw += "!"
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"password": pw,
		"words":    words,
		"strength": req.Strength,
		"numbers":  req.Numbers,
		"special":  req.Special,
	})
}

func (s *Server) image(contentType string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", contentType)
		w.WriteHeader(http.StatusOK)
		io.WriteString(w, contentType+":"+strings.TrimPrefix(r.URL.Path, APIRoot))
	}
}

func (s *Server) tokenRequest(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"data":    map[string]any{"provider": chi.URLParam(r, "provider")},
	})
}

func decode(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, ErrIDBadRequest, "Invalid request body: "+err.Error())
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, id int64, message string) {
	writeJSON(w, status, map[string]any{"status": "error", "id": id, "message": message})
}
