package proxy

import (
	"net/http"
	"net/http/httputil"

	"walletweb/internal/balancer"
	"walletweb/internal/util"

	"github.com/sirupsen/logrus"
)

// BuildAPIHandler reverse-proxies wallet backend calls (setup-token
// validation, wallet-setup completion) to the next upstream in
// rotation, so the connect page can reach the backend from the same
// origin it was served from.
func BuildAPIHandler(rr *balancer.RoundRobin) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		target := rr.Next()
		if target == nil {
			http.Error(w, "no backend upstream configured", http.StatusBadGateway)
			return
		}

		proxy := httputil.NewSingleHostReverseProxy(target)
		origDirector := proxy.Director
		proxy.Director = func(req *http.Request) {
			origDirector(req)
			req.Host = target.Host
			req.Header.Set("X-Forwarded-Host", r.Host)
			req.Header.Set("X-Forwarded-Proto", util.SchemeOf(r))
			req.Header.Set("X-Real-IP", util.ForwardedClientIP(r))
		}
		proxy.ErrorHandler = func(w http.ResponseWriter, req *http.Request, err error) {
			logrus.WithError(err).WithField("upstream", target.Host).Warn("backend proxy error")
			http.Error(w, "backend unavailable", http.StatusBadGateway)
		}
		proxy.ServeHTTP(w, r)
	})
}
