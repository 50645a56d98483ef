package state

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/ai-stack/stackbuilder/internal/catalog"
	"github.com/ai-stack/stackbuilder/internal/stack"
)

// URL parameter names outside the catalog categories.
const (
	ParamName = "name"
	ParamView = "view"
	ParamFile = "file"
)

// View is the builder pane shown for a shared URL.
type View string

const (
	ViewConfigure View = "configure"
	ViewPreview   View = "preview"
)

// ViewState is the non-stack part of a shared URL.
type ViewState struct {
	View View   `json:"view"`
	File string `json:"file,omitempty"`
}

// ToParams encodes only the fields that differ from the default stack.
func ToParams(s stack.State) url.Values {
	def := stack.Default()
	v := url.Values{}

	if s.ProjectName != def.ProjectName {
		v.Set(ParamName, s.ProjectName)
	}
	for _, c := range catalog.Categories() {
		if catalog.IsMulti(c) {
			if !sameAddons(s.Addons, def.Addons) {
				v.Set(string(c), stack.JoinAddons(s.Addons))
			}
			continue
		}
		if val := s.Get(c); val != def.Get(c) {
			v.Set(string(c), val)
		}
	}
	return v
}

// FromParams overlays the present parameters onto the default stack.
// Unknown parameters are ignored; an empty addons parameter means no
// add-ons.
func FromParams(v url.Values) stack.State {
	s := stack.Default()
	if vals, ok := v[ParamName]; ok && len(vals) > 0 {
		s.ProjectName = vals[0]
	}
	for _, c := range catalog.Categories() {
		if vals, ok := v[string(c)]; ok && len(vals) > 0 {
			s.Set(c, vals[0])
		}
	}
	return s
}

// ParseView reads the view and file parameters. Anything but "preview"
// selects the configure view.
func ParseView(v url.Values) ViewState {
	vs := ViewState{View: ViewConfigure, File: v.Get(ParamFile)}
	if View(v.Get(ParamView)) == ViewPreview {
		vs.View = ViewPreview
	}
	return vs
}

// EncodeView adds the view state to v, omitting defaults.
func EncodeView(vs ViewState, v url.Values) {
	if vs.View == ViewPreview {
		v.Set(ParamView, string(ViewPreview))
	}
	if vs.File != "" {
		v.Set(ParamFile, vs.File)
	}
}

// Query renders the shareable query string for s and vs.
func Query(s stack.State, vs ViewState) string {
	v := ToParams(s)
	EncodeView(vs, v)
	return v.Encode()
}

// ParseURL decodes a full URL, a "?query" or a bare query string.
func ParseURL(raw string) (stack.State, ViewState, error) {
	raw = strings.TrimSpace(raw)
	query := raw
	if strings.Contains(raw, "://") {
		u, err := url.Parse(raw)
		if err != nil {
			return stack.State{}, ViewState{}, fmt.Errorf("invalid URL: %w", err)
		}
		query = u.RawQuery
	} else if i := strings.IndexByte(raw, '?'); i >= 0 {
		query = raw[i+1:]
	}

	v, err := url.ParseQuery(query)
	if err != nil {
		return stack.State{}, ViewState{}, fmt.Errorf("invalid query: %w", err)
	}
	return FromParams(v), ParseView(v), nil
}

func sameAddons(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
