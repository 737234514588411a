package aasahttp

import (
	_ "crypto/sha256"
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/frantjc/aasa"
	"github.com/frantjc/aasa/internal/aasaerr"
	"github.com/opencontainers/go-digest"
)

// CacheControl makes clients and intermediaries revalidate the
// apple-app-site-association on every use instead of serving a stale one.
const CacheControl = "public, must-revalidate"

func getAssociation(cfg *aasa.Config, m *metrics) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var (
			log    = aasa.LoggerFrom(r.Context())
			pretty = pretty(r)
		)

		b, err := marshal(cfg.Render(), pretty)
		if err != nil {
			log.Error(err, "rendering apple-app-site-association")
			m.observe(http.StatusInternalServerError)
			_ = respondErrorJSON(w, r, aasaerr.HTTPStatusCodeError(err, http.StatusInternalServerError), pretty)
			return
		}

		etag := strconv.Quote(digest.FromBytes(b).Encoded())

		w.Header().Set("Content-Type", aasa.ContentTypeJSON)
		w.Header().Set("Cache-Control", CacheControl)
		w.Header().Set("ETag", etag)

		if ifNoneMatch := r.Header.Get("If-None-Match"); ifNoneMatch != "" && etagMatches(ifNoneMatch, etag) {
			m.observe(http.StatusNotModified)
			w.WriteHeader(http.StatusNotModified)
			return
		}

		m.observe(http.StatusOK)
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(b)
	}
}

func marshal(a any, pretty bool) ([]byte, error) {
	if pretty {
		return json.MarshalIndent(a, "", "  ")
	}

	return json.Marshal(a)
}

// etagMatches implements the weak comparison that If-None-Match calls for.
func etagMatches(ifNoneMatch, etag string) bool {
	for _, candidate := range strings.Split(ifNoneMatch, ",") {
		candidate = strings.TrimSpace(candidate)
		if candidate == "*" || strings.TrimPrefix(candidate, "W/") == etag {
			return true
		}
	}

	return false
}
