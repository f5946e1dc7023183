package routes

import (
	"io/fs"
	"net/http"
	"path"
	"slices"

	"github.com/templui/folio/internal/handler"
	"github.com/templui/folio/internal/service"
	"github.com/templui/folio/internal/sitegen"
)

// staticFiles serves files under root without directory listings. A
// directory is only served through its index.html.
func staticFiles(root string) http.Handler {
	return http.FileServer(indexOnlyFS{http.Dir(root)})
}

type indexOnlyFS struct {
	fs http.FileSystem
}

func (f indexOnlyFS) Open(name string) (http.File, error) {
	file, err := f.fs.Open(name)
	if err != nil {
		return nil, err
	}

	info, err := file.Stat()
	if err != nil {
		file.Close()
		return nil, err
	}

	if info.IsDir() {
		index, err := f.fs.Open(path.Join(name, "index.html"))
		if err != nil {
			file.Close()
			return nil, fs.ErrNotExist
		}
		index.Close()
	}

	return file, nil
}

// templateAssets serves only the asset folders of template bundles, for
// pages rendered in memory by the preview. Mounted on
// /template-assets/{folder}/{dir}/{file...}.
func templateAssets(root string) http.Handler {
	files := http.StripPrefix(service.TemplateAssetsURLPrefix+"/", staticFiles(root))

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		folder := r.PathValue("folder")
		if sitegen.SafeSegment(folder, "") != folder || !slices.Contains(sitegen.StaticAssetDirs, r.PathValue("dir")) {
			handler.NotFound(w, r)
			return
		}
		files.ServeHTTP(w, r)
	})
}
