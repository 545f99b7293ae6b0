package rewrite

import (
	"net/http"
	"strings"
)

// ConnectPage is the canonical asset every rewritten request lands on.
const ConnectPage = "/public/simple-connect.html"

// Resolve maps an incoming request path to the asset path to serve.
// The connect page owns the root path: "/" bare, or "/" with a query
// that begins with token=, resolves to ConnectPage. Everything else is
// a literal file lookup and passes through unchanged.
//
// The match is deliberately narrow: "/foo?token=x" is not root and is
// not rewritten, and neither is a root request whose query carries
// other parameters before token. The query itself is never consumed
// here; it stays on the request for the page to read.
func Resolve(path, rawQuery string) string {
	if path != "/" {
		return path
	}
	if rawQuery == "" || strings.HasPrefix(rawQuery, "token=") {
		return ConnectPage
	}
	return path
}

// Handler applies Resolve to the request path before delegating.
func Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		r.URL.Path = Resolve(r.URL.Path, r.URL.RawQuery)
		next.ServeHTTP(w, r)
	})
}
