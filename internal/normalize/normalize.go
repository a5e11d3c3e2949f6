package normalize

import (
	"encoding/json"
	"strconv"

	"jobsearch-engine/internal/domain"
)

// MissingTitle is the documented default for a record whose payload
// carried no usable title under any alias.
const MissingTitle = "N/A"

// Normalize builds a canonical record from one upstream job object.
// Only top-level keys are consulted; for each field the first alias with
// a usable value wins. Pure function of its inputs, never errors.
func Normalize(raw map[string]any, table AliasTable) domain.JobRecord {
	rec := domain.JobRecord{
		Title:       lookup(raw, table[FieldTitle]),
		CompanyName: lookup(raw, table[FieldCompanyName]),
		JobLink:     lookup(raw, table[FieldJobLink]),
		Location:    lookup(raw, table[FieldLocation]),
		DatePosted:  lookup(raw, table[FieldDatePosted]),
		Description: HTMLToText(lookup(raw, table[FieldDescription])),
	}
	if rec.Title == "" {
		rec.Title = MissingTitle
	}
	return rec
}

// lookup walks aliases in order and returns the first usable value,
// coerced to a string. Absent keys, nil, empty strings, and false all
// count as "no value" and are skipped.
func lookup(raw map[string]any, aliases []string) string {
	for _, key := range aliases {
		v, ok := raw[key]
		if !ok || v == nil {
			continue
		}
		if s := stringify(v); s != "" {
			return s
		}
	}
	return ""
}

// stringify coerces a scalar to its string form. Nested maps and lists
// are not traversed and yield nothing.
func stringify(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case bool:
		if !t {
			return ""
		}
		return "true"
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case int:
		return strconv.Itoa(t)
	case int64:
		return strconv.FormatInt(t, 10)
	case json.Number:
		return t.String()
	default:
		return ""
	}
}
