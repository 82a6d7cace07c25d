package render

import "strings"

// Markdown renders content with a cached renderer for opts.
func Markdown(content string, opts Options) (string, error) {
	r, err := renderers.get(opts)
	if err != nil {
		return "", err
	}
	return r.render(content)
}

// MarkdownOrPlain renders content, falling back to the raw text when rendering
// fails. Surrounding blank lines added by glamour are trimmed.
func MarkdownOrPlain(content string, opts Options) string {
	out, err := Markdown(content, opts)
	if err != nil {
		return content
	}
	return strings.Trim(out, "\n")
}
