package sitegen

import (
	"context"
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/templui/folio/internal/markdown"
	"github.com/templui/folio/internal/model"
	"github.com/templui/folio/internal/testutil"
)

func sampleContext() *RenderContext {
	desc := "First general-purpose computer"
	return &RenderContext{
		User: model.SafeUser{ID: 1, Username: "Ada Lovelace", Email: "ada@example.com"},
		Portfolio: PortfolioView{
			Title:        "Ada's Portfolio",
			BioHTML:      "<p><em>Poet</em> of science</p>",
			SocialLinks:  model.StringMap{"github": "https://github.com/ada"},
			CustomConfig: model.StringMap{"containerClass": "p-8"},
		},
		Works: []WorkView{
			NewWorkView(&model.Work{ID: 3, Title: "Engine", Description: &desc, Category: "hardware design"}),
			NewWorkView(&model.Work{ID: 1, Title: "Notes <G>", Category: "writing"}),
		},
	}
}

func TestRenderer_Render(t *testing.T) {
	dir := t.TempDir()
	testutil.WriteFiles(t, dir, testutil.MinimalTemplate)

	out, err := NewRenderer().Render(context.Background(), dir, sampleContext())
	require.NoError(t, err)

	html := string(out)
	assert.Contains(t, html, "<title>Ada&#39;s Portfolio</title>")
	assert.Contains(t, html, "<h1>Ada Lovelace</h1>")
	assert.Contains(t, html, "<p><em>Poet</em> of science</p>")
	assert.Contains(t, html, `Engine (Hardware Design)`)
	assert.Contains(t, html, "Notes &lt;G&gt;")
	assert.Contains(t, html, `class="bg-white p-8"`)
	assert.Contains(t, html, `href="https://github.com/ada"`)
	assert.Less(t, strings.Index(html, "Engine"), strings.Index(html, "Notes"))
}

func TestWithBase(t *testing.T) {
	tests := []struct {
		name string
		page string
		want string
	}{
		{"head", "<html><head><title>x</title></head></html>", `<html><head><base href="/a/">`},
		{"head with attributes", `<HEAD lang="en"><title>x</title>`, `<HEAD lang="en"><base href="/a/"><title>`},
		{"header is not head", "<header>x</header>", `<base href="/a/"><header>`},
		{"no head", "<p>x</p>", `<base href="/a/"><p>x</p>`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := string(WithBase([]byte(tt.page), "/a/"))
			assert.Contains(t, got, tt.want)
			assert.Equal(t, 1, strings.Count(got, "<base"))
		})
	}
}

func TestRenderer_MissingPage(t *testing.T) {
	_, err := NewRenderer().Render(context.Background(), t.TempDir(), sampleContext())
	assert.ErrorIs(t, err, ErrTemplateNotFound)
}

func TestRenderer_MalformedTemplate(t *testing.T) {
	dir := t.TempDir()
	testutil.WriteFiles(t, dir, map[string]string{PageFile: "{{.User.Username"})

	_, err := NewRenderer().Render(context.Background(), dir, sampleContext())
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrTemplateNotFound)
}

func TestRenderer_ExecutionError(t *testing.T) {
	dir := t.TempDir()
	testutil.WriteFiles(t, dir, map[string]string{PageFile: "{{.User.PasswordHash}}"})

	_, err := NewRenderer().Render(context.Background(), dir, sampleContext())
	assert.Error(t, err)
}

func TestRenderContext_HasNoCredentials(t *testing.T) {
	raw, err := json.Marshal(sampleContext())
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "password")
	assert.NotContains(t, string(raw), "Password")
}

func TestNewPortfolioView_DefaultsMaps(t *testing.T) {
	view := NewPortfolioView(&model.Portfolio{Title: "t"})
	assert.NotNil(t, view.SocialLinks)
	assert.NotNil(t, view.CustomConfig)
	assert.Empty(t, view.SocialLinks)
}

func TestTemplateRepository_Scan(t *testing.T) {
	root := t.TempDir()
	testutil.WriteFiles(t, filepath.Join(root, "minimal"), testutil.MinimalTemplate)
	testutil.WriteFiles(t, root, map[string]string{
		"grid/index.html":     "<html></html>",
		"grid/preview.png":    "png",
		"broken/style.css":    "no page",
		"bad name/index.html": "<html></html>",
	})

	repo := NewTemplateRepository(root, markdown.NewParser())

	manifests, err := repo.Scan()
	require.NoError(t, err)
	require.Len(t, manifests, 2)

	assert.Equal(t, TemplateManifest{Folder: "grid", Name: "grid", PreviewImage: "preview.png"}, manifests[0])
	assert.Equal(t, "minimal", manifests[1].Folder)
	assert.Equal(t, "Minimal", manifests[1].Name)
	assert.Equal(t, "A clean single page layout", manifests[1].Description)

	assert.True(t, repo.Exists("minimal"))
	assert.False(t, repo.Exists("broken"))
	assert.Equal(t, filepath.Join(root, "etc_passwd"), repo.Dir("../../etc/passwd"))
	assert.Equal(t, filepath.Join(root, "minimal"), repo.Dir(""))
}

func TestTemplateRepository_ScanMissingRoot(t *testing.T) {
	repo := NewTemplateRepository(filepath.Join(t.TempDir(), "nope"), markdown.NewParser())
	manifests, err := repo.Scan()
	require.NoError(t, err)
	assert.Empty(t, manifests)
}
