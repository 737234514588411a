package aasahttp

import (
	"encoding/json"
	"net/http"

	"github.com/frantjc/aasa"
	"github.com/frantjc/aasa/internal/aasaerr"
	"github.com/timewasted/go-accept-headers"
)

func respondJSON(w http.ResponseWriter, a any, pretty bool) error {
	w.Header().Set("Content-Type", aasa.ContentTypeJSON)

	enc := json.NewEncoder(w)
	if pretty {
		enc.SetIndent("", "  ")
	}

	return enc.Encode(a)
}

// respondErrorJSON writes err as {"error": "..."} with the status code
// from aasaerr.HTTPStatusCode, falling back to text/plain for
// clients that do not accept JSON.
func respondErrorJSON(w http.ResponseWriter, r *http.Request, err error, pretty bool) error {
	httpStatusCode := aasaerr.HTTPStatusCode(err)

	if acceptHeader := r.Header.Get("Accept"); acceptHeader != "" {
		if contentType, nErr := accept.Negotiate(acceptHeader, aasa.ContentTypeJSON); nErr != nil || contentType == "" {
			http.Error(w, err.Error(), httpStatusCode)
			return nil
		}
	}

	w.Header().Set("Content-Type", aasa.ContentTypeJSON)
	w.WriteHeader(httpStatusCode)

	return respondJSON(w, map[string]string{"error": err.Error()}, pretty)
}
