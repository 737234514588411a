package aasa_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/frantjc/aasa"
	"github.com/frantjc/aasa/internal/aasahttp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.Handler) *aasa.Client {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	base, err := url.Parse(srv.URL)
	require.NoError(t, err)

	return &aasa.Client{HTTPClient: srv.Client(), Base: base}
}

func TestClient(t *testing.T) {
	var (
		ctx = context.Background()
		cfg = aasa.New(func(c *aasa.Config) {
			c.SetApps([]string{})
			c.SetDetails([]aasa.Detail{{"appID": "ABCD1234.com.apple.wwdc", "paths": "*"}})
			c.SetWebCredentials(map[string]any{"apps": []string{"ABCD1234.com.apple.wwdc"}})
		})
		cli = newTestClient(t, aasahttp.NewHandler(cfg))
	)

	require.NoError(t, cli.Healthz(ctx))
	require.NoError(t, cli.Readyz(ctx))

	association, err := cli.GetAssociation(ctx)
	require.NoError(t, err)

	assert.Equal(t, []string{}, association.AppLinks.Apps)
	assert.Equal(t, []aasa.Detail{{"appID": "ABCD1234.com.apple.wwdc", "paths": "*"}}, association.AppLinks.Details)
	assert.Equal(t, map[string]any{"apps": []any{"ABCD1234.com.apple.wwdc"}}, association.AppLinks.WebCredentials)
}

func TestClientError(t *testing.T) {
	var (
		ctx = context.Background()
		cli = newTestClient(t, aasahttp.NewHandler(
			aasa.New().SetWebCredentials(map[string]any{"apps": make(chan int)}),
		))
	)

	_, err := cli.GetAssociation(ctx)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "http status code 500")
}
