package vanilla

import (
	"embed"
	"io/fs"
)

//go:embed templates
var embeddedTemplates embed.FS

// templateFS is the default template set, rooted at the templates directory.
var templateFS = func() fs.FS {
	sub, err := fs.Sub(embeddedTemplates, "templates")
	if err != nil {
		panic(err)
	}
	return sub
}()
