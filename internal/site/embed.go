package site

import (
	"embed"
	"io/fs"
	"net/http"
)

//go:embed templates/*.html static/*
var assets embed.FS

// Static serves the embedded script and other assets under /static/.
func Static() http.Handler {
	sub, err := fs.Sub(assets, "static")
	if err != nil {
		panic(err)
	}
	return http.StripPrefix("/static/", http.FileServer(http.FS(sub)))
}
