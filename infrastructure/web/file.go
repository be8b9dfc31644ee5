package web

import (
	"fmt"
	"io/fs"
	"net/http"
	"regexp"
	"strings"
)

var fileMatcher = regexp.MustCompile(`\.[a-zA-Z0-9]*$`)

// FileServerReact serves a statically built single page app from fsys under
// path. Requests that do not name a file get index.html so client side
// routing works.
func (a *WebHandler) FileServerReact(fsys fs.FS, path string) error {
	if _, err := fs.Stat(fsys, "index.html"); err != nil {
		return fmt.Errorf("static folder has no index.html: %w", err)
	}

	prefix := strings.TrimSuffix(path, "/")
	fileServer := http.StripPrefix(prefix, http.FileServer(http.FS(fsys)))

	h := func(w http.ResponseWriter, r *http.Request) {
		if !fileMatcher.MatchString(r.URL.Path) {
			p, err := fs.ReadFile(fsys, "index.html")
			if err != nil {
				a.log.ErrorContext(r.Context(), "FileServerReact: index.html not found", "error", err)
				http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
				return
			}

			w.Header().Set("Content-Type", "text/html; charset=utf-8")
			w.Write(p)
			return
		}

		fileServer.ServeHTTP(w, r)
	}

	a.mux.HandleFunc(fmt.Sprintf("GET %s/", prefix), h)

	return nil
}
