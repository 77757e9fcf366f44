package assets

import (
	"encoding/json"
	"strings"
)

// DefaultFallback is displayed for assets with no stored path.
const DefaultFallback = "/avatar.png"

// SplitPaths expands a stored asset field into its individual paths. The
// field may be a comma-joined list or a JSON array of strings. Entries are
// trimmed and empty entries dropped.
func SplitPaths(stored string) []string {
	stored = strings.TrimSpace(stored)
	if stored == "" {
		return nil
	}

	var parts []string
	if strings.HasPrefix(stored, "[") {
		if err := json.Unmarshal([]byte(stored), &parts); err != nil {
			parts = strings.Split(strings.Trim(stored, "[]"), ",")
		}
	} else {
		parts = strings.Split(stored, ",")
	}

	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.Trim(strings.TrimSpace(p), `"`)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

// Resolver converts between stored asset paths and display URLs.
//
// Paths are kept in server-relative form internally. Absolute URLs under
// BaseURL are reduced to their relative path; absolute URLs on any other
// host are kept verbatim.
type Resolver struct {
	BaseURL  string
	Fallback string
}

// Normalize returns the canonical stored form of path.
func (r Resolver) Normalize(path string) string {
	path = strings.TrimSpace(path)
	if path == "" {
		return ""
	}

	if base := strings.TrimRight(r.BaseURL, "/"); base != "" {
		if rest, ok := strings.CutPrefix(path, base+"/"); ok {
			path = rest
		}
	}

	if isAbsolute(path) {
		return path
	}
	return strings.TrimLeft(path, "/")
}

// Resolve returns the URL used to display path.
func (r Resolver) Resolve(path string) string {
	if path == "" {
		if r.Fallback != "" {
			return r.Fallback
		}
		return DefaultFallback
	}
	if isAbsolute(path) {
		return path
	}

	base := strings.TrimRight(r.BaseURL, "/")
	return base + "/" + strings.TrimLeft(path, "/")
}

func isAbsolute(path string) bool {
	return strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://")
}
