package passwords

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
)

const (
	pathServicePassword = "1.0/service/password"
	pathServiceAvatar   = "1.0/service/avatar"
	pathServiceFavicon  = "1.0/service/favicon"
	pathServicePreview  = "1.0/service/preview"

	defaultPreviewWidth  = "640"
	defaultPreviewHeight = "360..."
)

// MiniatureSize is the edge length in pixels of an avatar or favicon.
// It must be a multiple of 8 between 16 and 256.
type MiniatureSize int

// DefaultMiniatureSize is used when a zero size is given.
const DefaultMiniatureSize MiniatureSize = 32

// Valid reports whether s is an accepted size.
func (s MiniatureSize) Valid() bool {
	return s%8 == 0 && s >= 16 && s <= 256
}

func (s MiniatureSize) orDefault() (MiniatureSize, error) {
	if s == 0 {
		return DefaultMiniatureSize, nil
	}
	if !s.Valid() {
		return 0, Errorf(KindInvalidArgument, "miniature size %d: must be a multiple of 8 between 16 and 256", int(s))
	}
	return s, nil
}

// View selects the layout a preview is rendered for.
type View string

const (
	ViewDesktop View = "desktop"
	ViewMobile  View = "mobile"
)

// PreviewOptions controls the preview image. Width and height accept a
// number or a range such as "360...", "...720" or "240...720"; empty
// values use 640 by "360...".
type PreviewOptions struct {
	View   View   `validate:"omitempty,oneof=desktop mobile"`
	Width  string `validate:"omitempty,preview_size"`
	Height string `validate:"omitempty,preview_size"`
}

// GeneratePassword holds the settings for a generated password. Absent
// settings fall back to the server defaults.
type GeneratePassword struct {
	Strength Optional[int]  `json:"strength,omitzero"`
	Numbers  Optional[bool] `json:"numbers,omitzero"`
	Special  Optional[bool] `json:"special,omitzero"`
}

// NewGeneratePassword returns settings with every value left to the server.
func NewGeneratePassword() GeneratePassword {
	return GeneratePassword{}
}

// WithStrength returns a copy of g with the given strength, from 1 to 4.
// Higher values give longer passwords.
func (g GeneratePassword) WithStrength(strength int) GeneratePassword {
	g.Strength = Some(strength)
	return g
}

// WithNumbers returns a copy of g with Numbers set.
func (g GeneratePassword) WithNumbers(numbers bool) GeneratePassword {
	g.Numbers = Some(numbers)
	return g
}

// WithSpecial returns a copy of g with Special set.
func (g GeneratePassword) WithSpecial(special bool) GeneratePassword {
	g.Special = Some(special)
	return g
}

// Words are the words a generated password was built from.
type Words []string

// UnmarshalJSON accepts both a list and a single space separated string.
func (w *Words) UnmarshalJSON(data []byte) error {
	var list []string
	if err := json.Unmarshal(data, &list); err == nil {
		*w = list
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	*w = strings.Fields(s)
	return nil
}

// GeneratedPassword is the result of a password generation.
type GeneratedPassword struct {
	Password string `json:"password"`
	Words    Words  `json:"words"`
	Strength int    `json:"strength"`
	Numbers  bool   `json:"numbers"`
	Special  bool   `json:"special"`
}

// ServiceAPI exposes the server's helper services.
type ServiceAPI struct {
	c *Client
}

// Service returns the service API of c.
func (c *Client) Service() *ServiceAPI {
	return &ServiceAPI{c: c}
}

// GeneratePassword generates one password with the given settings. The
// server checks generated passwords for security.
func (a *ServiceAPI) GeneratePassword(ctx context.Context, settings GeneratePassword) (*GeneratedPassword, error) {
	if s, ok := settings.Strength.Get(); ok && (s < 1 || s > 4) {
		return nil, Errorf(KindInvalidArgument, "strength %d: must be between 1 and 4", s)
	}
	var out GeneratedPassword
	if err := a.c.call(ctx, http.MethodPost, pathServicePassword, settings, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GenerateWithUserSettings generates one password using the user's
// generator settings.
func (a *ServiceAPI) GenerateWithUserSettings(ctx context.Context) (*GeneratedPassword, error) {
	var out GeneratedPassword
	if err := a.c.call(ctx, http.MethodGet, pathServicePassword, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Avatar returns the PNG avatar of a user. The server generates a default
// image when the user has none.
func (a *ServiceAPI) Avatar(ctx context.Context, user string, size MiniatureSize) ([]byte, error) {
	size, err := size.orDefault()
	if err != nil {
		return nil, wrapError(pathServiceAvatar, err)
	}
	if user == "" {
		return nil, Errorf(KindInvalidArgument, "avatar: user is required")
	}
	return a.image(ctx, fmt.Sprintf("%s/%s/%d", pathServiceAvatar, url.PathEscape(user), int(size)))
}

// Favicon returns the PNG favicon of a domain. The server generates a
// default image when none can be found.
func (a *ServiceAPI) Favicon(ctx context.Context, domain string, size MiniatureSize) ([]byte, error) {
	size, err := size.orDefault()
	if err != nil {
		return nil, wrapError(pathServiceFavicon, err)
	}
	if domain == "" {
		return nil, Errorf(KindInvalidArgument, "favicon: domain is required")
	}
	return a.image(ctx, fmt.Sprintf("%s/%s/%d", pathServiceFavicon, url.PathEscape(domain), int(size)))
}

// Preview returns a JPEG screenshot of a domain. It can be slow when the
// server has no cached copy.
func (a *ServiceAPI) Preview(ctx context.Context, domain string, opts PreviewOptions) ([]byte, error) {
	if domain == "" {
		return nil, Errorf(KindInvalidArgument, "preview: domain is required")
	}
	if err := check(pathServicePreview, opts); err != nil {
		return nil, err
	}
	if opts.View == "" {
		opts.View = ViewDesktop
	}
	if opts.Width == "" {
		opts.Width = defaultPreviewWidth
	}
	if opts.Height == "" {
		opts.Height = defaultPreviewHeight
	}
	path := fmt.Sprintf("%s/%s/%s/%s/%s", pathServicePreview, url.PathEscape(domain), opts.View, opts.Width, opts.Height)
	return a.image(ctx, path)
}

// image fetches path through the image cache. Entries are keyed by user
// as well so that sessions never see each other's avatars.
func (a *ServiceAPI) image(ctx context.Context, path string) ([]byte, error) {
	cache := a.c.images
	var key string
	if cache != nil {
		if s := a.c.snapshot(); s != nil {
			key = s.Username + "\x00" + path
			if b, ok := cache.Get(key); ok {
				return bytes.Clone(b), nil
			}
		}
	}

	b, err := a.c.callBytes(ctx, path)
	if err != nil {
		return nil, err
	}
	if cache != nil && key != "" {
		cache.Set(key, bytes.Clone(b))
	}
	return b, nil
}
