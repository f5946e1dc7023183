package sitegen

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"
)

// InstallBundles copies every top-level folder of src into root unless a
// folder of that name already exists there, so local edits are never
// overwritten. It returns the folders installed.
func InstallBundles(src fs.FS, root string) ([]string, error) {
	entries, err := fs.ReadDir(src, ".")
	if err != nil {
		return nil, fmt.Errorf("read bundles: %w", err)
	}

	err = os.MkdirAll(root, 0755)
	if err != nil {
		return nil, err
	}

	var installed []string
	for _, e := range entries {
		if !e.IsDir() || SafeSegment(e.Name(), "") != e.Name() {
			continue
		}

		target := filepath.Join(root, e.Name())
		_, err := os.Stat(target)
		if err == nil {
			continue
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return installed, err
		}

		err = copyFS(src, e.Name(), target)
		if err != nil {
			return installed, fmt.Errorf("install %s: %w", e.Name(), err)
		}
		installed = append(installed, e.Name())
	}

	return installed, nil
}

func copyFS(src fs.FS, dir, dst string) error {
	return fs.WalkDir(src, dir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		rel := p[len(dir):]
		target := filepath.Join(dst, filepath.FromSlash(path.Clean("/"+rel)))

		if d.IsDir() {
			return os.MkdirAll(target, 0755)
		}
		if !d.Type().IsRegular() {
			return nil
		}

		in, err := src.Open(p)
		if err != nil {
			return err
		}
		defer in.Close()

		out, err := os.OpenFile(target, os.O_CREATE|os.O_WRONLY|os.O_EXCL, 0644)
		if err != nil {
			return err
		}

		_, err = io.Copy(out, in)
		if err != nil {
			out.Close()
			return err
		}
		return out.Close()
	})
}
