package treeviz

import (
	"context"

	"github.com/ioxu/boxer/pkg/cache"
)

// Renderer renders DOT to SVG through a cache. Identical DOT source renders
// once; graphviz start-up dominates the cost of a small tree.
type Renderer struct {
	cache cache.Cache
}

// NewRenderer creates a renderer backed by c. A nil c disables caching.
func NewRenderer(c cache.Cache) *Renderer {
	if c == nil {
		c = cache.NewNullCache()
	}
	return &Renderer{cache: c}
}

// SVG returns the SVG for dot and whether it came from the cache. Cache
// failures fall through to a fresh render.
func (r *Renderer) SVG(ctx context.Context, dot string) ([]byte, bool, error) {
	key := cache.Key("svg", dot)
	if data, ok, err := r.cache.Get(ctx, key); err == nil && ok {
		return data, true, nil
	}
	svg, err := RenderSVG(ctx, dot)
	if err != nil {
		return nil, false, err
	}
	_ = r.cache.Set(ctx, key, svg)
	return svg, false, nil
}
