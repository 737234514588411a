package aasahttp

import (
	"fmt"
	"net/http"

	"github.com/frantjc/aasa"
	"github.com/frantjc/aasa/internal/aasaerr"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Opts struct {
	// Registry is where metrics are registered and gathered from
	// for /metrics. Defaults to a new, empty prometheus.Registry.
	Registry *prometheus.Registry
}

type Opt interface {
	Apply(*Opts)
}

func (o *Opts) Apply(opts *Opts) {
	if o != nil {
		if opts != nil {
			if o.Registry != nil {
				opts.Registry = o.Registry
			}
		}
	}
}

func newOpts(opts ...Opt) *Opts {
	o := &Opts{}

	for _, opt := range opts {
		opt.Apply(o)
	}

	if o.Registry == nil {
		o.Registry = prometheus.NewRegistry()
	}

	return o
}

// NewHandler returns an http.Handler that serves cfg at
// /apple-app-site-association and /.well-known/apple-app-site-association,
// alongside /healthz, /readyz and /metrics. cfg is only ever read from.
func NewHandler(cfg *aasa.Config, opts ...Opt) http.Handler {
	var (
		o = newOpts(opts...)
		r = chi.NewRouter()
	)

	if cfg == nil {
		cfg = aasa.New()
	}

	r.Use(middleware.RealIP, requestLogger, middleware.GetHead)

	getAssociation := getAssociation(cfg, newMetrics(o.Registry))

	r.Get(aasa.PathAppleAppSiteAssociation, getAssociation)
	r.Get(aasa.PathWellKnownAppleAppSiteAssociation, getAssociation)

	r.Get("/healthz", ok)
	r.Get("/readyz", ok)

	r.Handle("/metrics", promhttp.HandlerFor(o.Registry, promhttp.HandlerOpts{}))

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		_ = respondErrorJSON(w, r, aasaerr.HTTPStatusCodeError(fmt.Errorf("%s not found", r.URL.Path), http.StatusNotFound), pretty(r))
	})

	return r
}

func ok(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", aasa.ContentTypeText)
	fmt.Fprint(w, "ok")
}
