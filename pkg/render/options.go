package render

// ContentType is the media type every renderer reports.
const ContentType = "application/javascript; charset=utf-8"

// RenderOptions describe per-request output settings.
type RenderOptions struct {
	// Minify drops all whitespace outside string literals. Minified output
	// is structurally equivalent to the indented form (see Equivalent).
	Minify bool
}
