// Package cases turns untrusted model output into the flat test-case schema
// consumed by the executor, and reads and writes case files.
package cases

// wrapperKey names the nested request object some models emit.
const wrapperKey = "request"

var (
	queryAliases = []string{"params", "query", "query_params"}
	bodyAliases  = []string{"data", "body", "json"}
)

// Normalize lifts fields out of a nested "request" wrapper and resolves
// aliases onto the flat keys url, method, headers, params and data. Keys
// already present at the top level are never overwritten. The wrapper key is
// always removed. A top-level "body" is renamed to "data" when "data" is
// absent. raw is modified in place and returned.
//
// Normalize is idempotent.
func Normalize(raw map[string]any) map[string]any {
	if wrapped, ok := raw[wrapperKey]; ok {
		if req, ok := wrapped.(map[string]any); ok {
			for _, k := range []string{"url", "method", "headers"} {
				liftKey(raw, k, req, k)
			}
			liftFirst(raw, "params", req, queryAliases)
			liftFirst(raw, "data", req, bodyAliases)
		}
		delete(raw, wrapperKey)
	}

	if _, ok := raw["data"]; !ok {
		if body, ok := raw["body"]; ok {
			raw["data"] = body
			delete(raw, "body")
		}
	}
	return raw
}

// liftKey copies src[from] to dst[to] when dst lacks to and src has from.
func liftKey(dst map[string]any, to string, src map[string]any, from string) {
	if _, exists := dst[to]; exists {
		return
	}
	if v, ok := src[from]; ok {
		dst[to] = v
	}
}

// liftFirst copies the first non-null alias from src into dst[to] unless dst
// already has to.
func liftFirst(dst map[string]any, to string, src map[string]any, aliases []string) {
	if _, exists := dst[to]; exists {
		return
	}
	for _, a := range aliases {
		if v := src[a]; v != nil {
			dst[to] = v
			return
		}
	}
}

// NormalizeAll normalizes every mapping in raw and converts it to a
// TestCase. Elements that are not mappings are dropped.
func NormalizeAll(raw []any) []TestCase {
	out := make([]TestCase, 0, len(raw))
	for _, item := range raw {
		m, ok := item.(map[string]any)
		if !ok {
			continue
		}
		out = append(out, FromRaw(Normalize(m)))
	}
	return out
}
