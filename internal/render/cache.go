package render

import (
	"sync"

	"github.com/charmbracelet/glamour"
)

// maxRenderers bounds the cache. Chat bubbles are rendered at the current
// terminal width, so every resize would otherwise add an entry.
const maxRenderers = 16

// cachedRenderer guards one glamour renderer, which is not safe for
// concurrent Render calls.
type cachedRenderer struct {
	mu       sync.Mutex
	renderer *glamour.TermRenderer
}

// rendererCache keeps one renderer per Options value, evicting the oldest
// entry once maxRenderers is reached.
type rendererCache struct {
	mu      sync.Mutex
	entries map[Options]*cachedRenderer
	order   []Options
}

var renderers = &rendererCache{entries: make(map[Options]*cachedRenderer)}

func (c *rendererCache) get(opts Options) (*cachedRenderer, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if e, ok := c.entries[opts]; ok {
		return e, nil
	}

	r, err := createRenderer(opts)
	if err != nil {
		return nil, err
	}
	if len(c.order) >= maxRenderers {
		delete(c.entries, c.order[0])
		c.order = c.order[1:]
	}
	e := &cachedRenderer{renderer: r}
	c.entries[opts] = e
	c.order = append(c.order, opts)
	return e, nil
}

func (e *cachedRenderer) render(content string) (string, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.renderer.Render(content)
}

// createRenderer builds a TermRenderer for opts.
func createRenderer(opts Options) (*glamour.TermRenderer, error) {
	rendererOpts := []glamour.TermRendererOption{
		glamour.WithWordWrap(opts.Width),
		glamour.WithTableWrap(opts.TableWrap),
		glamour.WithInlineTableLinks(opts.InlineTableLinks),
	}

	if name, ok := standardStyleName(opts.Style); ok {
		rendererOpts = append(rendererOpts, glamour.WithStandardStyle(name))
	} else {
		rendererOpts = append(rendererOpts, glamour.WithStylePath(opts.Style))
	}
	if opts.EnableEmoji {
		rendererOpts = append(rendererOpts, glamour.WithEmoji())
	}
	if opts.PreserveNewLines {
		rendererOpts = append(rendererOpts, glamour.WithPreservedNewLines())
	}

	return glamour.NewTermRenderer(rendererOpts...)
}

// ClearCache drops every cached renderer.
func ClearCache() {
	renderers.mu.Lock()
	renderers.entries = make(map[Options]*cachedRenderer)
	renderers.order = nil
	renderers.mu.Unlock()
}

// CacheSize returns the number of cached renderers.
func CacheSize() int {
	renderers.mu.Lock()
	defer renderers.mu.Unlock()
	return len(renderers.entries)
}
