package static

import (
	"net/http"
	"os"
	"path/filepath"
)

// BuildSiteHandler serves the site root directory. Containment, 404s
// and content-type inference are http.FileServer's.
func BuildSiteHandler(dir string) http.Handler {
	return http.FileServer(http.Dir(dir))
}

// DefaultRoot is the directory containing the running binary, the same
// place serve scripts drop public/ next to the server. Falls back to
// the working directory when the executable path cannot be resolved.
func DefaultRoot() string {
	exe, err := os.Executable()
	if err != nil {
		return "."
	}
	return filepath.Dir(exe)
}
