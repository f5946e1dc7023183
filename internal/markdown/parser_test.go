package markdown

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_DropsRawHTML(t *testing.T) {
	p := NewParser()

	out, err := p.Parse([]byte("**Mathematician**\n\n<script>alert(1)</script>"))
	require.NoError(t, err)
	assert.Contains(t, string(out), "<strong>Mathematician</strong>")
	assert.NotContains(t, string(out), "<script>")
}

func TestExtractFrontmatter(t *testing.T) {
	p := NewParser()

	var meta struct {
		Name        string `yaml:"name"`
		Description string `yaml:"description"`
	}
	err := p.ExtractFrontmatter([]byte("---\nname: Minimal\ndescription: Clean\n---\n# Body\n"), &meta)
	require.NoError(t, err)
	assert.Equal(t, "Minimal", meta.Name)
	assert.Equal(t, "Clean", meta.Description)
}
