package normalize

import (
	"sort"

	"jobsearch-engine/internal/domain"
)

// wrapperKeys are tried first when the payload wraps its result list in
// an object. Providers disagree about the name.
var wrapperKeys = []string{"jobs", "jobs_results", "results", "data", "items"}

// ExtractAll locates the result list inside an upstream payload and
// normalizes up to limit entries (limit <= 0 means no cap). Entries that
// are not objects are skipped. A payload with no list anywhere at the
// top level is a valid zero-result response, never an error.
func ExtractAll(payload any, table AliasTable, limit int) []domain.JobRecord {
	entries := findList(payload)
	out := make([]domain.JobRecord, 0, len(entries))
	for _, e := range entries {
		if limit > 0 && len(out) >= limit {
			break
		}
		m, ok := e.(map[string]any)
		if !ok {
			continue
		}
		out = append(out, Normalize(m, table))
	}
	return out
}

func findList(payload any) []any {
	switch t := payload.(type) {
	case []any:
		return t
	case map[string]any:
		for _, k := range wrapperKeys {
			if l, ok := t[k].([]any); ok {
				return l
			}
		}
		// unknown wrapper name: take the first list-typed value, in
		// key order so the choice is reproducible
		keys := make([]string, 0, len(t))
		for k := range t {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			if l, ok := t[k].([]any); ok {
				return l
			}
		}
	}
	return nil
}
