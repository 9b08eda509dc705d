package api

import (
	"errors"
	"io/fs"
	"net/http"
	"path"
	"strings"

	"github.com/go-chi/chi/v5"
)

// MountFrontend serves a built frontend bundle from root at "/". Paths
// that do not name a file (client routes such as /pokemon/pikachu) get
// index.html so the browser-side router can take over. /api and /health
// are left to their own handlers.
func MountFrontend(r chi.Router, root fs.FS) {
	files := http.FileServer(http.FS(root))

	r.Get("/*", func(w http.ResponseWriter, req *http.Request) {
		name := strings.TrimPrefix(path.Clean(req.URL.Path), "/")
		if name == "" {
			name = "."
		}

		if _, err := fs.Stat(root, name); errors.Is(err, fs.ErrNotExist) {
			index, err := fs.ReadFile(root, "index.html")
			if err != nil {
				http.NotFound(w, req)
				return
			}
			w.Header().Set("Content-Type", "text/html; charset=utf-8")
			w.Write(index)
			return
		}
		files.ServeHTTP(w, req)
	})
}
