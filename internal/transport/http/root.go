package http

import "net/http"

// RootHandler serves the service descriptor on "/" and a JSON 404 for every
// other unmatched route.
func RootHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			writeError(w, http.StatusNotFound, codeNotFound, "not found")
			return
		}
		if r.Method != http.MethodGet {
			writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "method not allowed")
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{
			"status": "active",
			"system": "Harriot Inc. Experience Engine",
		})
	})
}
