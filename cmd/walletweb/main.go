package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"strings"

	"walletweb/internal/balancer"
	"walletweb/internal/limiter"
	"walletweb/internal/middleware"
	"walletweb/internal/proxy"
	"walletweb/internal/rewrite"
	"walletweb/internal/server"
	"walletweb/internal/static"

	"github.com/sirupsen/logrus"
)

// Minimal config via flags/env; the zero-flag invocation serves the
// connect page on :8080 from the directory next to the binary.
type Config struct {
	ListenAddr    string
	SiteDir       string
	APIPrefix     string
	UpstreamStr   string
	RPS           float64
	Burst         int
	TrustedHeader string
}

func main() {
	cfg := loadConfig()

	rr, err := balancer.NewRoundRobin(cfg.UpstreamStr)
	if err != nil {
		logrus.Fatalf("failed to parse upstreams: %v", err)
	}

	ctx := context.Background()

	limStore := limiter.NewStore(cfg.RPS, cfg.Burst)
	go limStore.CleanupLoop(ctx)

	mux := http.NewServeMux()

	// Health
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	// Wallet backend proxy (if upstreams). The backend mounts its
	// routes under the same /api prefix the page fetches, so the full
	// path is forwarded as-is.
	if rr.Count() > 0 {
		prefix := normalizePrefix(cfg.APIPrefix)
		mux.Handle(prefix, proxy.BuildAPIHandler(rr))
		logrus.Infof("api proxy: %s -> %d upstream(s)", prefix, rr.Count())
	}

	// Connect page and everything else under the site root
	mux.Handle("/", rewrite.Handler(static.BuildSiteHandler(cfg.SiteDir)))
	logrus.Infof("serving %s, root rewrites to %s", cfg.SiteDir, rewrite.ConnectPage)

	// Compose middleware: logging -> rateLimit -> mux
	var handler http.Handler = mux
	handler = limStore.Middleware(cfg.TrustedHeader)(handler)
	handler = middleware.Logging(handler)

	srv := server.New(cfg.ListenAddr, handler)
	if err := srv.Start(ctx); err != nil {
		logrus.Fatalf("server error: %v", err)
	}
}

func loadConfig() Config {
	var cfg Config
	flag.StringVar(&cfg.ListenAddr, "listen", getEnv("WALLETWEB_LISTEN", ":8080"), "Address to listen on, e.g. :8080")
	flag.StringVar(&cfg.SiteDir, "dir", getEnv("WALLETWEB_DIR", static.DefaultRoot()), "Site root containing public/simple-connect.html")
	flag.StringVar(&cfg.APIPrefix, "apiPrefix", getEnv("WALLETWEB_API_PREFIX", "/api"), "URL prefix proxied to the wallet backend")
	flag.StringVar(&cfg.UpstreamStr, "upstreams", getEnv("WALLETWEB_UPSTREAMS", ""), "Comma-separated wallet backend URLs (empty to disable proxying)")
	flag.Float64Var(&cfg.RPS, "rps", getEnvFloat("WALLETWEB_RPS", 5), "Rate limit: req/s per client IP")
	flag.IntVar(&cfg.Burst, "burst", getEnvInt("WALLETWEB_BURST", 10), "Rate limit: burst per client IP")
	flag.StringVar(&cfg.TrustedHeader, "trustedHeader", getEnv("WALLETWEB_TRUSTED_HEADER", ""), "Optional header for real client IP (e.g., X-Real-IP)")
	flag.Parse()
	return cfg
}

// --- small helpers (local to main to avoid extra package config) ---
func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		var x int
		if _, err := fmt.Sscanf(v, "%d", &x); err == nil {
			return x
		}
	}
	return def
}
func getEnvFloat(key string, def float64) float64 {
	if v := os.Getenv(key); v != "" {
		var x float64
		if _, err := fmt.Sscanf(v, "%f", &x); err == nil {
			return x
		}
	}
	return def
}
func normalizePrefix(p string) string {
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	if !strings.HasSuffix(p, "/") {
		p += "/"
	}
	return p
}
