package stack

import "strings"

// HasAddon reports whether id is selected.
func (s State) HasAddon(id string) bool {
	for _, a := range s.Addons {
		if a == id {
			return true
		}
	}
	return false
}

// WithAddon returns a copy with id appended if it is not already present.
func (s State) WithAddon(id string) State {
	out := s.Clone()
	if !out.HasAddon(id) {
		out.Addons = append(out.Addons, id)
	}
	return out
}

// WithoutAddon returns a copy with every occurrence of id removed.
func (s State) WithoutAddon(id string) State {
	out := s.Clone()
	out.Addons = withoutString(out.Addons, id)
	return out
}

// JoinAddons renders add-ons the way URLs and CLI flags carry them.
func JoinAddons(addons []string) string {
	return strings.Join(addons, ",")
}

// SplitAddons parses a comma-joined add-on list, skipping blanks.
func SplitAddons(raw string) []string {
	out := []string{}
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}

func withoutString(in []string, drop string) []string {
	out := make([]string, 0, len(in))
	for _, v := range in {
		if v != drop {
			out = append(out, v)
		}
	}
	return out
}
