package folio

import "embed"

// TemplatesFS contains the built-in template bundles, one folder each.
// They are installed into TEMPLATES_DIR when missing there.
//
//go:embed templates
var TemplatesFS embed.FS
