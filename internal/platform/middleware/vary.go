package middleware

import (
	"net/http"
	"strings"
)

// Vary adds Accept to the Vary response header. Problem responses are negotiated between
// JSON and CBOR. CORS adds Origin on its own.
func Vary() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			AddVary(w.Header(), "Accept")
			next.ServeHTTP(w, r)
		})
	}
}

// AddVary appends values to the Vary header, skipping any already listed either as a
// separate header line or inside a comma-separated one.
func AddVary(h http.Header, values ...string) {
	seen := make(map[string]struct{})
	for _, line := range h.Values("Vary") {
		for part := range strings.SplitSeq(line, ",") {
			if p := strings.TrimSpace(part); p != "" {
				seen[strings.ToLower(p)] = struct{}{}
			}
		}
	}
	for _, v := range values {
		key := strings.ToLower(strings.TrimSpace(v))
		if key == "" {
			continue
		}
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		h.Add("Vary", v)
	}
}
