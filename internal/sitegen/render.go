package sitegen

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"html/template"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"time"

	twmerge "github.com/Oudwins/tailwind-merge-go"
	"github.com/a-h/templ"
	"github.com/templui/folio/internal/model"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// PageFile is the page definition every template bundle must provide.
const PageFile = "index.html"

var ErrTemplateNotFound = errors.New("template page not found")

// RenderContext is everything a template can see. It only carries the safe
// user projection.
type RenderContext struct {
	User        model.SafeUser `json:"user"`
	Portfolio   PortfolioView  `json:"portfolio"`
	Works       []WorkView     `json:"works"`
	GeneratedAt time.Time      `json:"generatedAt"`
}

type PortfolioView struct {
	Title        string          `json:"title"`
	Bio          string          `json:"bio"`
	BioHTML      template.HTML   `json:"-"`
	SocialLinks  model.StringMap `json:"socialLinks"`
	CustomConfig model.StringMap `json:"customConfig"`
	Template     *model.Template `json:"template"`
	GeneratedURL *string         `json:"generatedUrl"`
}

type WorkView struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	CoverImage  string `json:"coverImage"`
	Category    string `json:"category"`
	Link        string `json:"link"`
}

func NewWorkView(w *model.Work) WorkView {
	return WorkView{
		ID:          w.ID,
		Title:       w.Title,
		Description: deref(w.Description),
		CoverImage:  deref(w.CoverImage),
		Category:    w.Category,
		Link:        deref(w.Link),
	}
}

// NewPortfolioView copies the portfolio with nil maps replaced by empty ones.
func NewPortfolioView(p *model.Portfolio) PortfolioView {
	return PortfolioView{
		Title:        p.Title,
		Bio:          deref(p.Bio),
		SocialLinks:  p.SocialLinks.Clone(),
		CustomConfig: p.CustomConfig.Clone(),
		Template:     p.Template,
		GeneratedURL: p.GeneratedURL,
	}
}

type Renderer struct {
	funcs template.FuncMap
}

func NewRenderer() *Renderer {
	return &Renderer{
		funcs: template.FuncMap{
			// Casers are stateful, so each call gets its own
			"title": func(s string) string {
				return cases.Title(language.English).String(s)
			},
			// mergeClasses lets customConfig class overrides win over template defaults
			"mergeClasses": func(classes ...string) string {
				return twmerge.Merge(classes...)
			},
			"default": func(def, value string) string {
				if value == "" {
					return def
				}
				return value
			},
		},
	}
}

// Component parses the bundle's page definition and binds it to data.
func (r *Renderer) Component(templateDir string, data *RenderContext) (templ.Component, error) {
	path := filepath.Join(templateDir, PageFile)

	_, err := os.Stat(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrTemplateNotFound, path)
	}
	if err != nil {
		return nil, err
	}

	t, err := template.New(PageFile).Funcs(r.funcs).ParseFiles(path)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", PageFile, err)
	}

	return templ.FromGoHTML(t, data), nil
}

// Render executes the page fully in memory so a failure writes nothing.
func (r *Renderer) Render(ctx context.Context, templateDir string, data *RenderContext) ([]byte, error) {
	component, err := r.Component(templateDir, data)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	err = component.Render(ctx, &buf)
	if err != nil {
		return nil, fmt.Errorf("execute %s: %w", PageFile, err)
	}

	return buf.Bytes(), nil
}

var headTag = regexp.MustCompile(`(?i)<head(\s[^>]*)?>`)

// WithBase inserts a <base> element at the start of <head> so relative
// asset links in page resolve against href.
func WithBase(page []byte, href string) []byte {
	base := []byte(`<base href="` + template.HTMLEscapeString(href) + `">`)

	loc := headTag.FindIndex(page)
	if loc == nil {
		return append(base, page...)
	}

	out := make([]byte, 0, len(page)+len(base))
	out = append(out, page[:loc[1]]...)
	out = append(out, base...)
	return append(out, page[loc[1]:]...)
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
