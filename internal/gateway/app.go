package gateway

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"SameKart/internal/session"
	"SameKart/pkg/kit"
)

type HTTPDeps struct {
	Log      *zap.Logger
	Service  string
	Registry *prometheus.Registry

	MetricsEnabled bool
	MetricsToken   string
}

type Deps struct {
	StorefrontURL string
	AdminURL      string
	JWTSecret     string
}

const (
	readyTimeout      = 2 * time.Second
	readyProbeTimeout = 700 * time.Millisecond
)

var readyClient = &http.Client{
	Transport: &http.Transport{
		MaxIdleConns:        50,
		MaxIdleConnsPerHost: 10,
		IdleConnTimeout:     30 * time.Second,
	},
}

func NewHandler(deps Deps, httpDeps HTTPDeps) (http.Handler, error) {
	storefrontProxy, err := NewReverseProxy(deps.StorefrontURL, httpDeps.Log)
	if err != nil {
		return nil, err
	}
	adminProxy, err := NewReverseProxy(deps.AdminURL, httpDeps.Log)
	if err != nil {
		return nil, err
	}

	jwt := session.NewTokenMaker(deps.JWTSecret)

	r := chi.NewRouter()
	setupMiddleware(r, httpDeps)
	setupMetrics(r, httpDeps)

	r.Get("/healthz", healthz)
	r.Get("/readyz", readyz(deps, httpDeps.Log))

	r.Group(func(pub chi.Router) {
		pub.Use(StripIdentityHeaders)

		pub.Handle("/products", storefrontProxy)
		pub.Handle("/products/*", storefrontProxy)
		pub.Handle("/categories", storefrontProxy)
		pub.Handle("/featured", storefrontProxy)
		pub.Handle("/deals", storefrontProxy)
		pub.Handle("/cart", storefrontProxy)
		pub.Handle("/cart/*", storefrontProxy)

		pub.Handle("/admin/login", adminProxy)
		pub.Handle("/admin/logout", adminProxy)
		pub.Handle("/admin/whoami", adminProxy)
	})

	r.Group(func(pr chi.Router) {
		pr.Use(AuthJWT(jwt))
		pr.Use(InjectHeaders)

		pr.Handle("/admin/products", storefrontProxy)
		pr.Handle("/admin/products/*", storefrontProxy)
		pr.Handle("/admin/clicks", storefrontProxy)
		pr.Handle("/admin/dashboard", adminProxy)
	})

	return r, nil
}

func setupMiddleware(r *chi.Mux, deps HTTPDeps) {
	r.Use(chimw.RequestID)
	r.Use(kit.Recoverer)
	r.Use(kit.Logging(deps.Log))
}

func setupMetrics(r *chi.Mux, deps HTTPDeps) {
	if deps.Registry == nil {
		return
	}

	metrics := kit.NewMetrics(deps.Registry)
	r.Use(metrics.Middleware(deps.Service, kit.ChiRoutePatternOrPath))

	if !deps.MetricsEnabled {
		return
	}

	r.With(kit.MetricsAuth(deps.MetricsToken)).
		Handle("/metrics", promhttp.HandlerFor(deps.Registry, promhttp.HandlerOpts{}))
}

func healthz(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
}

func readyz(deps Deps, log *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), readyTimeout)
		defer cancel()

		if err := checkReady(ctx, deps.StorefrontURL+"/readyz"); err != nil {
			if log != nil {
				log.Warn("readyz failed: storefront", zap.Error(err))
			}
			kit.WriteError(w, r, http.StatusServiceUnavailable, "storefront not ready", nil)
			return
		}

		if err := checkReady(ctx, deps.AdminURL+"/readyz"); err != nil {
			if log != nil {
				log.Warn("readyz failed: admin", zap.Error(err))
			}
			kit.WriteError(w, r, http.StatusServiceUnavailable, "admin not ready", nil)
			return
		}

		w.WriteHeader(http.StatusOK)
	}
}

func checkReady(ctx context.Context, url string) error {
	cctx, cancel := context.WithTimeout(ctx, readyProbeTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(cctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}

	resp, err := readyClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("status=%d", resp.StatusCode)
	}

	return nil
}
