// Package record implements dotted-path field resolution over semi-structured
// product records. Both marketplaces ship differently shaped attribute trees,
// so every lookup probes an ordered list of known path variants and treats
// any traversal or coercion failure as "absent".
package record

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/ZaryabShah/matching-score/internal/models"
)

var numberPattern = regexp.MustCompile(`\d+(?:\.\d+)?`)

// Lookup walks a single dotted path through nested maps. It returns false on
// any missing key, nil value, or non-map branch in the middle of the path.
func Lookup(rec models.Record, path string) (any, bool) {
	if rec == nil || path == "" {
		return nil, false
	}

	var current any = map[string]any(rec)
	for _, key := range strings.Split(path, ".") {
		node, ok := current.(map[string]any)
		if !ok {
			return nil, false
		}
		current, ok = node[key]
		if !ok || current == nil {
			return nil, false
		}
	}
	return current, true
}

// First returns the value behind the first path that resolves.
func First(rec models.Record, paths []string) (any, bool) {
	for _, path := range paths {
		if value, ok := Lookup(rec, path); ok {
			return value, true
		}
	}
	return nil, false
}

// FirstString returns the first path that resolves to a non-empty textual or
// numeric scalar, as a trimmed string. Absent fields yield "".
func FirstString(rec models.Record, paths []string) string {
	for _, path := range paths {
		value, ok := Lookup(rec, path)
		if !ok {
			continue
		}
		if s := scalarString(value); s != "" {
			return s
		}
	}
	return ""
}

// FirstFloat returns the first path that resolves to a usable number.
// String values are coerced defensively: currency symbols, units and
// thousands separators are stripped before parsing. Coercion failures move
// on to the next candidate path.
func FirstFloat(rec models.Record, paths []string) (float64, bool) {
	for _, path := range paths {
		value, ok := Lookup(rec, path)
		if !ok {
			continue
		}
		if f, ok := coerceFloat(value); ok {
			return f, true
		}
	}
	return 0, false
}

// StringSet collects lowercase tokens from every path that resolves. Lists
// contribute one token per element, scalars contribute a single token.
func StringSet(rec models.Record, paths []string) map[string]bool {
	set := make(map[string]bool)
	for _, path := range paths {
		value, ok := Lookup(rec, path)
		if !ok {
			continue
		}
		switch v := value.(type) {
		case []any:
			for _, item := range v {
				if s := scalarString(item); s != "" {
					set[strings.ToLower(s)] = true
				}
			}
		default:
			if s := scalarString(v); s != "" {
				set[strings.ToLower(s)] = true
			}
		}
	}
	return set
}

// Subtree returns the first path that resolves to a nested map.
func Subtree(rec models.Record, paths []string) (map[string]any, bool) {
	for _, path := range paths {
		value, ok := Lookup(rec, path)
		if !ok {
			continue
		}
		if node, ok := value.(map[string]any); ok {
			return node, true
		}
	}
	return nil, false
}

// AsString coerces a scalar leaf value to a trimmed string; non-scalars
// yield "".
func AsString(value any) string {
	return scalarString(value)
}

// AsFloat coerces a scalar leaf value to a float, applying the same
// defensive string cleanup as FirstFloat.
func AsFloat(value any) (float64, bool) {
	return coerceFloat(value)
}

func scalarString(value any) string {
	switch v := value.(type) {
	case string:
		return strings.TrimSpace(v)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case int:
		return strconv.Itoa(v)
	case bool:
		return strconv.FormatBool(v)
	default:
		return ""
	}
}

func coerceFloat(value any) (float64, bool) {
	switch v := value.(type) {
	case float64:
		return v, true
	case int:
		return float64(v), true
	case string:
		cleaned := strings.ReplaceAll(strings.TrimSpace(v), ",", "")
		match := numberPattern.FindString(cleaned)
		if match == "" {
			return 0, false
		}
		f, err := strconv.ParseFloat(match, 64)
		if err != nil {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}
