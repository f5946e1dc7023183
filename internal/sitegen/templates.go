package sitegen

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"github.com/templui/folio/internal/markdown"
	"github.com/templui/folio/internal/model"
)

const (
	// ManifestFile optionally describes a bundle in YAML frontmatter.
	ManifestFile = "template.md"
	PreviewFile  = "preview.png"
)

// TemplateManifest describes one template bundle found on disk.
type TemplateManifest struct {
	Folder       string
	Name         string `yaml:"name"`
	Description  string `yaml:"description"`
	PreviewImage string `yaml:"preview"`
}

// TemplateRepository reads template bundles from a root directory, one
// bundle per subdirectory.
type TemplateRepository struct {
	root   string
	parser *markdown.Parser
}

func NewTemplateRepository(root string, parser *markdown.Parser) *TemplateRepository {
	return &TemplateRepository{root: root, parser: parser}
}

func (r *TemplateRepository) Root() string {
	return r.root
}

// Dir resolves a stored folder path under the root. The folder is sanitized
// first so it can never point outside the root; unusable values resolve to
// the default bundle.
func (r *TemplateRepository) Dir(folderPath string) string {
	return filepath.Join(r.root, SafeSegment(folderPath, model.DefaultTemplateFolder))
}

// Exists reports whether the bundle has a page definition.
func (r *TemplateRepository) Exists(folderPath string) bool {
	info, err := os.Stat(filepath.Join(r.Dir(folderPath), PageFile))
	return err == nil && info.Mode().IsRegular()
}

// Scan lists every bundle under the root, sorted by folder name.
func (r *TemplateRepository) Scan() ([]TemplateManifest, error) {
	entries, err := os.ReadDir(r.root)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read template root: %w", err)
	}

	var manifests []TemplateManifest
	for _, entry := range entries {
		if !entry.IsDir() || SafeSegment(entry.Name(), "") != entry.Name() {
			continue
		}
		if !r.Exists(entry.Name()) {
			continue
		}

		manifest, err := r.manifest(entry.Name())
		if err != nil {
			return nil, err
		}
		manifests = append(manifests, manifest)
	}

	sort.Slice(manifests, func(i, j int) bool {
		return manifests[i].Folder < manifests[j].Folder
	})

	return manifests, nil
}

func (r *TemplateRepository) manifest(folder string) (TemplateManifest, error) {
	m := TemplateManifest{}
	dir := filepath.Join(r.root, folder)

	source, err := os.ReadFile(filepath.Join(dir, ManifestFile))
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return m, fmt.Errorf("read %s manifest: %w", folder, err)
	}
	if err == nil {
		err = r.parser.ExtractFrontmatter(source, &m)
		if err != nil {
			return m, fmt.Errorf("decode %s manifest: %w", folder, err)
		}
	}

	m.Folder = folder
	if m.Name == "" {
		m.Name = folder
	}
	if m.PreviewImage == "" {
		_, err := os.Stat(filepath.Join(dir, PreviewFile))
		if err == nil {
			m.PreviewImage = PreviewFile
		}
	}

	return m, nil
}
