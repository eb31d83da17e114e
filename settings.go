package passwords

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"
)

const (
	pathSettingsGet   = "1.0/settings/get"
	pathSettingsSet   = "1.0/settings/set"
	pathSettingsReset = "1.0/settings/reset"
	pathSettingsList  = "1.0/settings/list"

	clientSettingPrefix = "client."
)

// Setting names one server-side setting. It is implemented only by
// UserSetting, ServerSetting and ClientSetting.
type Setting interface {
	SettingName() string
	isSetting()
}

// ValueKind is the type of a setting value.
type ValueKind int

const (
	KindString ValueKind = iota
	KindInt
	KindBool
	KindURL
	KindStringList
)

func (k ValueKind) String() string {
	switch k {
	case KindInt:
		return "int"
	case KindBool:
		return "bool"
	case KindURL:
		return "url"
	case KindStringList:
		return "[]string"
	default:
		return "string"
	}
}

// UserSetting is a per-user preference that can be read, set and reset.
type UserSetting int

const (
	UserPasswordStrength UserSetting = iota
	UserPasswordNumbers
	UserPasswordSpecial
	UserCheckDuplicates
	UserCheckAge
	UserMailSecurity
	UserMailShares
	UserNotifySecurity
	UserNotifyShares
	UserNotifyErrors
	UserServerSideEncryption
	UserClientSideEncryption
	UserSessionLifetime
)

// ServerSetting is a read-only server property.
type ServerSetting int

const (
	ServerVersion ServerSetting = iota
	ServerBaseURL
	ServerBaseURLWebDAV
	ServerSharing
	ServerResharing
	ServerAutocomplete
	ServerSharingTypes
	ServerPrimaryColor
	ServerTextColor
	ServerBackgroundColor
	ServerBackgroundTheme
	ServerLogo
	ServerLabel
	ServerAppIcon
	ServerFolderIcon
)

// ClientSetting is a free-form string setting owned by a client
// application. It is stored on the server as "client.<name>".
type ClientSetting string

type settingSpec struct {
	name string
	kind ValueKind
}

var userSettings = [...]settingSpec{
	UserPasswordStrength:     {"user.password.generator.strength", KindInt},
	UserPasswordNumbers:      {"user.password.generator.numbers", KindBool},
	UserPasswordSpecial:      {"user.password.generator.special", KindBool},
	UserCheckDuplicates:      {"user.password.security.duplicates", KindBool},
	UserCheckAge:             {"user.password.security.age", KindInt},
	UserMailSecurity:         {"user.mail.security", KindBool},
	UserMailShares:           {"user.mail.shares", KindBool},
	UserNotifySecurity:       {"user.notification.security", KindBool},
	UserNotifyShares:         {"user.notification.shares", KindBool},
	UserNotifyErrors:         {"user.notification.errors", KindBool},
	UserServerSideEncryption: {"user.encryption.sse", KindInt},
	UserClientSideEncryption: {"user.encryption.cse", KindInt},
	UserSessionLifetime:      {"user.session.lifetime", KindInt},
}

var serverSettings = [...]settingSpec{
	ServerVersion:         {"server.version", KindString},
	ServerBaseURL:         {"server.baseUrl", KindURL},
	ServerBaseURLWebDAV:   {"server.baseUrl.webdav", KindURL},
	ServerSharing:         {"server.sharing.enabled", KindBool},
	ServerResharing:       {"server.sharing.resharing", KindBool},
	ServerAutocomplete:    {"server.sharing.autocomplete", KindBool},
	ServerSharingTypes:    {"server.sharing.types", KindStringList},
	ServerPrimaryColor:    {"server.theme.color.primary", KindString},
	ServerTextColor:       {"server.theme.color.text", KindString},
	ServerBackgroundColor: {"server.theme.color.background", KindString},
	ServerBackgroundTheme: {"server.theme.background", KindURL},
	ServerLogo:            {"server.theme.logo", KindURL},
	ServerLabel:           {"server.theme.label", KindString},
	ServerAppIcon:         {"server.theme.app.icon", KindURL},
	ServerFolderIcon:      {"server.theme.folder.icon", KindURL},
}

// settingsByName is the reverse of the tables above.
var settingsByName = func() map[string]Setting {
	m := make(map[string]Setting, len(userSettings)+len(serverSettings))
	for i, s := range userSettings {
		m[s.name] = UserSetting(i)
	}
	for i, s := range serverSettings {
		m[s.name] = ServerSetting(i)
	}
	return m
}()

func (s UserSetting) SettingName() string {
	if int(s) < 0 || int(s) >= len(userSettings) {
		return fmt.Sprintf("user.unknown(%d)", int(s))
	}
	return userSettings[s].name
}

// Kind returns the type of the setting's value.
func (s UserSetting) Kind() ValueKind {
	if !s.known() {
		return KindString
	}
	return userSettings[s].kind
}

func (s UserSetting) known() bool { return int(s) >= 0 && int(s) < len(userSettings) }

func (s UserSetting) String() string { return s.SettingName() }
func (UserSetting) isSetting()       {}

func (s ServerSetting) SettingName() string {
	if int(s) < 0 || int(s) >= len(serverSettings) {
		return fmt.Sprintf("server.unknown(%d)", int(s))
	}
	return serverSettings[s].name
}

// Kind returns the type of the setting's value.
func (s ServerSetting) Kind() ValueKind {
	if !s.known() {
		return KindString
	}
	return serverSettings[s].kind
}

func (s ServerSetting) known() bool { return int(s) >= 0 && int(s) < len(serverSettings) }

func (s ServerSetting) String() string { return s.SettingName() }
func (ServerSetting) isSetting()       {}

func (s ClientSetting) SettingName() string { return clientSettingPrefix + string(s) }
func (s ClientSetting) String() string      { return s.SettingName() }
func (ClientSetting) isSetting()            {}

// LookupSetting resolves a wire name such as "user.session.lifetime".
func LookupSetting(name string) (Setting, bool) {
	if s, ok := settingsByName[name]; ok {
		return s, true
	}
	if rest, ok := strings.CutPrefix(name, clientSettingPrefix); ok && rest != "" {
		return ClientSetting(rest), true
	}
	return nil, false
}

// checkSetting rejects settings outside the name tables.
func checkSetting(s Setting) error {
	switch s := s.(type) {
	case UserSetting:
		if !s.known() {
			return Errorf(KindInvalidArgument, "unknown setting %s", s.SettingName())
		}
	case ServerSetting:
		if !s.known() {
			return Errorf(KindInvalidArgument, "unknown setting %s", s.SettingName())
		}
	case ClientSetting:
		if s == "" {
			return Errorf(KindInvalidArgument, "client setting name is empty")
		}
	case nil:
		return Errorf(KindInvalidArgument, "setting is nil")
	}
	return nil
}

// KindOfSetting returns the value kind of s. Client settings are strings.
func KindOfSetting(s Setting) ValueKind {
	switch s := s.(type) {
	case UserSetting:
		return s.Kind()
	case ServerSetting:
		return s.Kind()
	default:
		return KindString
	}
}

// SettingValue is the value of one setting as returned by the server.
type SettingValue struct {
	Setting Setting
	Raw     json.RawMessage
}

// Int returns the value of an integer setting.
func (v SettingValue) Int() (int64, error) {
	var n int64
	if err := json.Unmarshal(v.Raw, &n); err != nil {
		return 0, v.kindError(KindInt, err)
	}
	return n, nil
}

// Bool returns the value of a boolean setting.
func (v SettingValue) Bool() (bool, error) {
	var b bool
	if err := json.Unmarshal(v.Raw, &b); err != nil {
		return false, v.kindError(KindBool, err)
	}
	return b, nil
}

// Str returns the value of a string setting.
func (v SettingValue) Str() (string, error) {
	var s string
	if err := json.Unmarshal(v.Raw, &s); err != nil {
		return "", v.kindError(KindString, err)
	}
	return s, nil
}

// URL returns the value of a URL setting.
func (v SettingValue) URL() (*url.URL, error) {
	s, err := v.Str()
	if err != nil {
		return nil, v.kindError(KindURL, err)
	}
	u, err := url.Parse(s)
	if err != nil {
		return nil, v.kindError(KindURL, err)
	}
	return u, nil
}

// Strings returns the value of a string list setting.
func (v SettingValue) Strings() ([]string, error) {
	var out []string
	if err := json.Unmarshal(v.Raw, &out); err != nil {
		return nil, v.kindError(KindStringList, err)
	}
	return out, nil
}

// String renders the raw value.
func (v SettingValue) String() string {
	return string(v.Raw)
}

func (v SettingValue) kindError(want ValueKind, err error) error {
	return &Error{Kind: KindDecode, Op: v.Setting.SettingName(), Message: "value is not " + want.String(), Err: err}
}

// ParseSettingValue converts a textual value, e.g. from a command line,
// into the Go value expected by s.
func ParseSettingValue(s Setting, text string) (any, error) {
	if err := checkSetting(s); err != nil {
		return nil, err
	}
	switch KindOfSetting(s) {
	case KindInt:
		n, err := strconv.ParseInt(text, 10, 64)
		if err != nil {
			return nil, Errorf(KindInvalidArgument, "%s: %q is not a number", s.SettingName(), text)
		}
		return n, nil
	case KindBool:
		b, err := strconv.ParseBool(text)
		if err != nil {
			return nil, Errorf(KindInvalidArgument, "%s: %q is not a boolean", s.SettingName(), text)
		}
		return b, nil
	case KindStringList:
		return strings.Split(text, ","), nil
	default:
		return text, nil
	}
}

// SettingsAPI reads and writes user, server and client settings.
type SettingsAPI struct {
	c *Client
}

// Settings returns the settings API of c.
func (c *Client) Settings() *SettingsAPI {
	return &SettingsAPI{c: c}
}

// Get returns the values of the given settings in request order.
func (a *SettingsAPI) Get(ctx context.Context, settings ...Setting) ([]SettingValue, error) {
	if len(settings) == 0 {
		return nil, nil
	}
	names := make([]string, len(settings))
	for i, s := range settings {
		if err := checkSetting(s); err != nil {
			return nil, wrapError(pathSettingsGet, err)
		}
		names[i] = s.SettingName()
	}

	var raw map[string]json.RawMessage
	if err := a.c.call(ctx, http.MethodPost, pathSettingsGet, names, &raw); err != nil {
		return nil, err
	}

	out := make([]SettingValue, len(settings))
	for i, s := range settings {
		v, ok := raw[s.SettingName()]
		if !ok {
			return nil, &Error{Kind: KindDecode, Op: pathSettingsGet, Message: "server did not return " + s.SettingName()}
		}
		out[i] = SettingValue{Setting: s, Raw: v}
	}
	return out, nil
}

// Set changes a user or client setting and returns the value stored by the
// server. Server settings are read-only.
func (a *SettingsAPI) Set(ctx context.Context, s Setting, value any) (SettingValue, error) {
	if err := checkSetting(s); err != nil {
		return SettingValue{}, wrapError(pathSettingsSet, err)
	}
	if _, ok := s.(ServerSetting); ok {
		return SettingValue{}, &Error{Kind: KindInvalidArgument, Op: pathSettingsSet, Message: s.SettingName() + " is read-only"}
	}
	if err := checkSettingValue(s, value); err != nil {
		return SettingValue{}, wrapError(pathSettingsSet, err)
	}

	var raw map[string]json.RawMessage
	body := map[string]any{s.SettingName(): value}
	if err := a.c.call(ctx, http.MethodPost, pathSettingsSet, body, &raw); err != nil {
		return SettingValue{}, err
	}
	v, ok := raw[s.SettingName()]
	if !ok {
		return SettingValue{}, &Error{Kind: KindDecode, Op: pathSettingsSet, Message: "server did not return " + s.SettingName()}
	}
	return SettingValue{Setting: s, Raw: v}, nil
}

// Reset restores a user or client setting to its default and returns the
// default value.
func (a *SettingsAPI) Reset(ctx context.Context, s Setting) (SettingValue, error) {
	if err := checkSetting(s); err != nil {
		return SettingValue{}, wrapError(pathSettingsReset, err)
	}
	if _, ok := s.(ServerSetting); ok {
		return SettingValue{}, &Error{Kind: KindInvalidArgument, Op: pathSettingsReset, Message: s.SettingName() + " is read-only"}
	}
	var raw map[string]json.RawMessage
	if err := a.c.call(ctx, http.MethodPost, pathSettingsReset, []string{s.SettingName()}, &raw); err != nil {
		return SettingValue{}, err
	}
	v, ok := raw[s.SettingName()]
	if !ok {
		return SettingValue{}, &Error{Kind: KindDecode, Op: pathSettingsReset, Message: "server did not return " + s.SettingName()}
	}
	return SettingValue{Setting: s, Raw: v}, nil
}

// List returns every setting in the given scopes ("user", "server",
// "client"), or all of them when no scope is given, sorted by name.
// Names this package does not know are skipped.
func (a *SettingsAPI) List(ctx context.Context, scopes ...string) ([]SettingValue, error) {
	var body any
	if len(scopes) > 0 {
		body = scopes
	}
	var raw map[string]json.RawMessage
	if err := a.c.call(ctx, http.MethodPost, pathSettingsList, body, &raw); err != nil {
		return nil, err
	}

	out := make([]SettingValue, 0, len(raw))
	for name, v := range raw {
		s, ok := LookupSetting(name)
		if !ok {
			continue
		}
		out = append(out, SettingValue{Setting: s, Raw: v})
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Setting.SettingName() < out[j].Setting.SettingName()
	})
	return out, nil
}

func checkSettingValue(s Setting, value any) error {
	kind := KindOfSetting(s)
	ok := false
	switch value.(type) {
	case int, int8, int16, int32, int64, uint8, uint16, uint32:
		ok = kind == KindInt
	case bool:
		ok = kind == KindBool
	case string:
		ok = kind == KindString || kind == KindURL
	case []string:
		ok = kind == KindStringList
	}
	if !ok {
		return Errorf(KindInvalidArgument, "%s expects a %s value, got %T", s.SettingName(), kind, value)
	}
	return nil
}
