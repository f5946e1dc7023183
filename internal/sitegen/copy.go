package sitegen

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
)

// StaticAssetDirs are the template subfolders copied next to the rendered page.
var StaticAssetDirs = []string{"css", "js", "images", "assets"}

// CopyStaticAssets copies each of StaticAssetDirs from templateDir into outDir.
// Folders the template does not have are skipped. It returns the folders copied.
func CopyStaticAssets(templateDir, outDir string) ([]string, error) {
	var copied []string

	for _, name := range StaticAssetDirs {
		src := filepath.Join(templateDir, name)

		info, err := os.Lstat(src)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return copied, fmt.Errorf("stat %s: %w", name, err)
		}
		if !info.IsDir() {
			continue
		}

		err = CopyDir(src, filepath.Join(outDir, name))
		if err != nil {
			return copied, err
		}
		copied = append(copied, name)
	}

	return copied, nil
}

// CopyDir recursively copies src into dst, depth first. Directories are
// created 0755, files keep their source mode, and symlinks are skipped.
// Files already copied stay in place if a later entry fails.
func CopyDir(src, dst string) error {
	return filepath.WalkDir(src, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		rel, err := filepath.Rel(src, path)
		if err != nil {
			return err
		}
		target := filepath.Join(dst, rel)

		switch {
		case d.Type()&fs.ModeSymlink != 0:
			return nil
		case d.IsDir():
			return os.MkdirAll(target, 0755)
		case d.Type().IsRegular():
			info, err := d.Info()
			if err != nil {
				return err
			}
			return copyFile(path, target, info.Mode().Perm())
		default:
			// Sockets, devices and pipes have no place in a static site
			return nil
		}
	})
}

func copyFile(src, dst string, perm fs.FileMode) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, perm)
	if err != nil {
		return err
	}

	_, err = io.Copy(out, in)
	if err != nil {
		out.Close()
		return fmt.Errorf("copy %s: %w", filepath.Base(src), err)
	}

	return out.Close()
}
