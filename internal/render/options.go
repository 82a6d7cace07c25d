// Package render turns chat replies into styled terminal text and holds the
// colour themes of the TUI.
package render

// Options configures glamour. It is comparable and keys the renderer cache.
type Options struct {
	Width int

	// Style is a built-in style name (see BuiltinStyles) or a path to a JSON style file
	Style string

	EnableEmoji      bool
	PreserveNewLines bool
	TableWrap        bool
	InlineTableLinks bool
}

// DefaultOptions returns the options used when the config has no markdown section.
func DefaultOptions() Options {
	return Options{
		Width:            80,
		Style:            "dark",
		EnableEmoji:      true,
		PreserveNewLines: true,
		TableWrap:        true,
	}
}

// WithWidth returns a copy of o wrapping at width columns.
func (o Options) WithWidth(width int) Options {
	if width < 10 {
		width = 10
	}
	o.Width = width
	return o
}

// WithStyle returns a copy of o using style.
func (o Options) WithStyle(style string) Options {
	o.Style = style
	return o
}
