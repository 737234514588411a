package aasa

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
)

const (
	PathAppleAppSiteAssociation          = "/apple-app-site-association"
	PathWellKnownAppleAppSiteAssociation = "/.well-known/apple-app-site-association"
)

// Client talks to an aasa server, or to any
// other host that serves an apple-app-site-association.
type Client struct {
	HTTPClient *http.Client
	Base       *url.URL
}

func (c *Client) init() error {
	if c.HTTPClient == nil {
		c.HTTPClient = http.DefaultClient
	}
	if c.Base == nil {
		var err error
		c.Base, err = url.Parse("http://localhost:8080/")
		return err
	}
	return nil
}

func (c *Client) GetAssociation(ctx context.Context) (*AppleAppSiteAssociation, error) {
	if err := c.init(); err != nil {
		return nil, err
	}

	res, err := c.get(ctx, PathAppleAppSiteAssociation)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return nil, errorFromResponse(res)
	}

	association := &AppleAppSiteAssociation{}
	if err = json.NewDecoder(res.Body).Decode(association); err != nil {
		return nil, err
	}

	return association, nil
}

func (c *Client) Readyz(ctx context.Context) error {
	return c.ok(ctx, "/readyz")
}

func (c *Client) Healthz(ctx context.Context) error {
	return c.ok(ctx, "/healthz")
}

func (c *Client) ok(ctx context.Context, path string) error {
	if err := c.init(); err != nil {
		return err
	}

	res, err := c.get(ctx, path)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return fmt.Errorf("http status code %d", res.StatusCode)
	}

	return nil
}

func (c *Client) get(ctx context.Context, path string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.Base.JoinPath(path).String(), nil)
	if err != nil {
		return nil, err
	}

	req.Header.Set("Accept", ContentTypeJSON)

	return c.HTTPClient.Do(req)
}

func errorFromResponse(res *http.Response) error {
	body := map[string]string{}
	if err := json.NewDecoder(res.Body).Decode(&body); err == nil {
		if body["error"] != "" {
			return fmt.Errorf("http status code %d: %s", res.StatusCode, body["error"])
		}
	}

	return fmt.Errorf("http status code %d", res.StatusCode)
}
