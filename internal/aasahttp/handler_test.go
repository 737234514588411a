package aasahttp

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/frantjc/aasa"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func serve(t *testing.T, h http.Handler, method, target string, header http.Header) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(method, target, nil)
	for k, v := range header {
		req.Header[k] = v
	}

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	return rec
}

func configured() *aasa.Config {
	return aasa.New(func(c *aasa.Config) {
		c.SetApps([]string{})
		c.SetDetails([]aasa.Detail{{"appID": "ABCD1234.com.apple.wwdc", "paths": "*"}})
		c.SetWebCredentials(map[string]any{"apps": []string{"ABCD1234.com.apple.wwdc"}})
	})
}

func assertAssociationHeaders(t *testing.T, rec *httptest.ResponseRecorder) {
	t.Helper()

	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.Equal(t, "public, must-revalidate", rec.Header().Get("Cache-Control"))
}

func TestGetAssociationDefault(t *testing.T) {
	rec := serve(t, NewHandler(aasa.New()), http.MethodGet, "/apple-app-site-association", nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	assertAssociationHeaders(t, rec)
	assert.Equal(t, `{"applinks":{"apps":[],"details":[],"webcredentials":{}}}`, rec.Body.String())
}

func TestGetAssociationNilConfig(t *testing.T) {
	rec := serve(t, NewHandler(nil), http.MethodGet, "/apple-app-site-association", nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, `{"applinks":{"apps":[],"details":[],"webcredentials":{}}}`, rec.Body.String())
}

func TestGetAssociationConfigured(t *testing.T) {
	h := NewHandler(configured())

	for _, target := range []string{"/apple-app-site-association", "/.well-known/apple-app-site-association"} {
		t.Run(target, func(t *testing.T) {
			rec := serve(t, h, http.MethodGet, target, nil)

			assert.Equal(t, http.StatusOK, rec.Code)
			assertAssociationHeaders(t, rec)

			body := map[string]map[string]any{}
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))

			applinks, ok := body["applinks"]
			require.True(t, ok)
			assert.Equal(t, []any{}, applinks["apps"])
			assert.Equal(t, []any{map[string]any{"appID": "ABCD1234.com.apple.wwdc", "paths": "*"}}, applinks["details"])
			assert.Equal(t, map[string]any{"apps": []any{"ABCD1234.com.apple.wwdc"}}, applinks["webcredentials"])
		})
	}
}

func TestGetAssociationReflectsReconfiguration(t *testing.T) {
	var (
		cfg = configured()
		h   = NewHandler(cfg)
	)

	cfg.SetApps([]string{"a", "b", "c"})

	rec := serve(t, h, http.MethodGet, "/apple-app-site-association", nil)

	association := &aasa.AppleAppSiteAssociation{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), association))
	assert.Equal(t, []string{"a", "b", "c"}, association.AppLinks.Apps)
}

func TestGetAssociationPretty(t *testing.T) {
	rec := serve(t, NewHandler(aasa.New()), http.MethodGet, "/apple-app-site-association?pretty=true", nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	assertAssociationHeaders(t, rec)
	assert.Equal(t, `{
  "applinks": {
    "apps": [],
    "details": [],
    "webcredentials": {}
  }
}`, rec.Body.String())
}

func TestGetAssociationHead(t *testing.T) {
	rec := serve(t, NewHandler(configured()), http.MethodHead, "/apple-app-site-association", nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	assertAssociationHeaders(t, rec)
}

func TestGetAssociationETag(t *testing.T) {
	var (
		reg  = prometheus.NewRegistry()
		h    = NewHandler(configured(), &Opts{Registry: reg})
		rec  = serve(t, h, http.MethodGet, "/apple-app-site-association", nil)
		etag = rec.Header().Get("ETag")
	)

	require.NotEmpty(t, etag)
	assert.Equal(t, etag, serve(t, h, http.MethodGet, "/apple-app-site-association", nil).Header().Get("ETag"))

	for _, ifNoneMatch := range []string{etag, "W/" + etag, `"nope", ` + etag, "*"} {
		t.Run(ifNoneMatch, func(t *testing.T) {
			rec := serve(t, h, http.MethodGet, "/apple-app-site-association", http.Header{"If-None-Match": {ifNoneMatch}})

			assert.Equal(t, http.StatusNotModified, rec.Code)
			assertAssociationHeaders(t, rec)
			assert.Equal(t, etag, rec.Header().Get("ETag"))
			assert.Empty(t, rec.Body.String())
		})
	}

	rec = serve(t, h, http.MethodGet, "/apple-app-site-association", http.Header{"If-None-Match": {`"stale"`}})
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, rec.Body.String())
}

func TestGetAssociationRenderError(t *testing.T) {
	h := NewHandler(aasa.New().SetDetails([]aasa.Detail{{"appID": make(chan int)}}))

	t.Run("json", func(t *testing.T) {
		rec := serve(t, h, http.MethodGet, "/apple-app-site-association", http.Header{"Accept": {"application/json"}})

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
		assert.Empty(t, rec.Header().Get("Cache-Control"))

		body := map[string]string{}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.NotEmpty(t, body["error"])
		assert.NotContains(t, rec.Body.String(), "applinks")
	})

	t.Run("text", func(t *testing.T) {
		rec := serve(t, h, http.MethodGet, "/apple-app-site-association", http.Header{"Accept": {"text/plain"}})

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.True(t, strings.HasPrefix(rec.Header().Get("Content-Type"), "text/plain"))
	})
}

func TestMetrics(t *testing.T) {
	var (
		reg = prometheus.NewRegistry()
		h   = NewHandler(configured(), &Opts{Registry: reg})
	)

	first := serve(t, h, http.MethodGet, "/apple-app-site-association", nil)
	serve(t, h, http.MethodGet, "/.well-known/apple-app-site-association", nil)
	serve(t, h, http.MethodGet, "/apple-app-site-association", http.Header{"If-None-Match": {first.Header().Get("ETag")}})

	m := newMetrics(reg)
	assert.Equal(t, float64(2), testutil.ToFloat64(m.requests.WithLabelValues("200")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.requests.WithLabelValues("304")))

	rec := serve(t, h, http.MethodGet, "/metrics", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `aasa_association_requests_total{code="200"} 2`)
}

func TestHealth(t *testing.T) {
	h := NewHandler(aasa.New())

	for _, target := range []string{"/healthz", "/readyz"} {
		rec := serve(t, h, http.MethodGet, target, nil)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "ok", rec.Body.String())
	}
}

func TestNotFound(t *testing.T) {
	rec := serve(t, NewHandler(aasa.New()), http.MethodGet, "/assetlinks.json", nil)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"error":"/assetlinks.json not found"}`, rec.Body.String())
}

func TestRequestID(t *testing.T) {
	h := NewHandler(aasa.New())

	generated := serve(t, h, http.MethodGet, "/healthz", nil).Header().Get("X-Request-Id")
	_, err := uuid.Parse(generated)
	assert.NoError(t, err)

	given := uuid.NewString()
	assert.Equal(t, given, serve(t, h, http.MethodGet, "/healthz", http.Header{"X-Request-Id": {given}}).Header().Get("X-Request-Id"))

	assert.NotEqual(t, "not-a-uuid", serve(t, h, http.MethodGet, "/healthz", http.Header{"X-Request-Id": {"not-a-uuid"}}).Header().Get("X-Request-Id"))
}
