// Package testutil holds fixtures shared by package tests.
package testutil

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"
	"github.com/templui/folio/internal/db"
)

var dbCounter atomic.Int64

// NewDB returns a migrated in-memory SQLite database private to the test.
func NewDB(t *testing.T) *sqlx.DB {
	t.Helper()

	name := fmt.Sprintf("file:test%d?mode=memory&cache=shared&_pragma=foreign_keys(1)", dbCounter.Add(1))
	database, err := db.Init("sqlite", name)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close(database) })

	err = db.RunMigrations(context.Background(), database.DB, "sqlite")
	require.NoError(t, err)

	return database
}

// WriteFiles creates each relative path under root with the given content.
func WriteFiles(t *testing.T, root string, files map[string]string) {
	t.Helper()

	for rel, content := range files {
		path := filepath.Join(root, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	}
}

// MinimalTemplate is a small template bundle exercising every render context field.
var MinimalTemplate = map[string]string{
	"index.html": `<!DOCTYPE html>
<html>
<head><title>{{.Portfolio.Title}}</title><link rel="stylesheet" href="css/style.css"></head>
<body class="{{mergeClasses "p-4 bg-white" (index .Portfolio.CustomConfig "containerClass")}}">
<h1>{{.User.Username}}</h1>
{{if .Portfolio.BioHTML}}<div class="bio">{{.Portfolio.BioHTML}}</div>{{end}}
<ul>
{{range .Works}}<li data-id="{{.ID}}">{{.Title}} ({{title .Category}})</li>
{{end}}</ul>
{{range $k, $v := .Portfolio.SocialLinks}}<a data-key="{{$k}}" href="{{$v}}">{{$k}}</a>{{end}}
</body>
</html>
`,
	"template.md":      "---\nname: Minimal\ndescription: A clean single page layout\n---\n",
	"css/style.css":    "body { margin: 0; }\n",
	"js/main.js":       "console.log('ready');\n",
	"images/logo.svg":  "<svg></svg>\n",
	"images/sub/a.txt": "nested\n",
}
