package restkit

import (
	"fmt"
	"net/url"
	"path"
	"regexp"
	"strings"
)

// PathFunc computes a command path from the resource's bound URL
// parameters. It wins over a literal command path when both are set.
type PathFunc func(params map[string]string) string

var placeholderPattern = regexp.MustCompile(`\{(\w+)\}`)

// InterpolatePath substitutes {name} placeholders in a path template
// with values from params, escaping each value for use in a URL path.
// A placeholder with no matching entry is a programmer error and is
// reported rather than substituted with an empty string.
func InterpolatePath(template string, params map[string]string) (string, error) {
	var missing []string
	out := placeholderPattern.ReplaceAllStringFunc(template, func(m string) string {
		name := m[1 : len(m)-1]
		v, ok := params[name]
		if !ok {
			missing = append(missing, name)
			return m
		}
		return url.PathEscape(v)
	})
	if len(missing) > 0 {
		return "", fmt.Errorf("restkit: missing URL parameter(s) %s in path template %q",
			strings.Join(missing, ", "), template)
	}
	return out, nil
}

// ComposePath joins path segments into one normalized, absolute URL
// path. Backslashes are normalized to forward slashes, duplicate
// separators are collapsed, and empty segments are dropped. Joining
// nothing yields "/".
func ComposePath(segments ...string) string {
	parts := make([]string, 0, len(segments))
	for _, s := range segments {
		s = strings.ReplaceAll(s, `\`, "/")
		s = strings.Trim(s, "/")
		if s != "" {
			parts = append(parts, s)
		}
	}
	return "/" + path.Join(parts...)
}
