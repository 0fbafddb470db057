package static

import (
	"embed"
	"io/fs"
)

// templates holds the server-rendered gallery page and its fragments.
//
//go:embed templates/*.html
var templates embed.FS

// assets holds files served under /static/.
//
//go:embed assets
var assets embed.FS

// Templates returns the page templates.
func Templates() fs.FS {
	return templates
}

// Assets returns the static asset tree rooted at the assets directory.
func Assets() fs.FS {
	sub, err := fs.Sub(assets, "assets")
	if err != nil {
		// The directory is embedded at build time.
		panic(err)
	}
	return sub
}
