// Package web bundles the HTML templates and static assets into the binary.
package web

import "embed"

// Templates embeds the layouts, partials and pages.
//
//go:embed templates/layouts/*.html templates/partials/*.html templates/pages/*.html
var Templates embed.FS

// Static embeds stylesheets and images served under /static/.
//
//go:embed static/css/*.css static/img/*.svg
var Static embed.FS
