package env

import (
	"sort"
	"strings"
)

// MarshalMap renders a key/value set as .env content with deterministic
// key order, so repeated installer runs produce identical files. Empty
// keys and empty values are dropped.
func MarshalMap(vars map[string]string) string {
	keys := make([]string, 0, len(vars))
	for key := range vars {
		if key == "" || vars[key] == "" {
			continue
		}
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var b strings.Builder
	for _, key := range keys {
		b.WriteString(key)
		b.WriteByte('=')
		b.WriteString(vars[key])
		b.WriteByte('\n')
	}
	return b.String()
}
