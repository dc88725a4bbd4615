package httpx

import (
	"net/url"
	"strings"
)

// Endpoint is a request path plus the template it came from.
// The template labels metrics so ids never leak into label values.
type Endpoint struct {
	Template string
	Path     string
}

// Route fills {placeholders} in template, in order, with path-escaped params.
func Route(template string, params ...string) Endpoint {
	var b strings.Builder
	rest := template
	for _, p := range params {
		i := strings.IndexByte(rest, '{')
		if i < 0 {
			break
		}
		j := strings.IndexByte(rest[i:], '}')
		if j < 0 {
			break
		}
		b.WriteString(rest[:i])
		b.WriteString(url.PathEscape(p))
		rest = rest[i+j+1:]
	}
	b.WriteString(rest)
	return Endpoint{Template: template, Path: b.String()}
}
