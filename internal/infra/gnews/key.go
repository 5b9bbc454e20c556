package gnews

import (
	"sort"
	"strings"
)

// CacheKey derives the cache key of a request: the endpoint, a colon, then the
// "name:value" pairs sorted by name and joined by "|". Parameters with an empty
// value are left out, so the key does not depend on map order or on whether an
// optional parameter was absent or blank. "%", "|" and ":" inside names and
// values are percent-escaped so that one parameter cannot forge another.
//
//	CacheKey("search", map[string]string{"q": "go", "max": "10"}) // "search:max:10|q:go"
var keyEscaper = strings.NewReplacer("%", "%25", "|", "%7C", ":", "%3A")

func CacheKey(endpoint string, params map[string]string) string {
	names := make([]string, 0, len(params))
	for name, value := range params {
		if value != "" {
			names = append(names, name)
		}
	}
	sort.Strings(names)

	var b strings.Builder
	b.WriteString(endpoint)
	b.WriteByte(':')
	for i, name := range names {
		if i > 0 {
			b.WriteByte('|')
		}
		b.WriteString(keyEscaper.Replace(name))
		b.WriteByte(':')
		b.WriteString(keyEscaper.Replace(params[name]))
	}
	return b.String()
}
