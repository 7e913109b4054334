package scene

import (
	"sync"

	"github.com/gogpu/vg/paint"
	"github.com/gogpu/vg/path"
)

// DrawListPool manages reusable draw lists for batching.
//
// Usage:
//
//	pool := NewDrawListPool(opts, nil)
//	dl := pool.Get()
//	defer pool.Put(dl)
type DrawListPool struct {
	pool sync.Pool
}

// NewDrawListPool creates a pool whose draw lists use opts and read path
// geometry through cache, which may be nil.
func NewDrawListPool(opts Options, cache *path.Cache) *DrawListPool {
	return &DrawListPool{
		pool: sync.Pool{
			New: func() any {
				dl := paint.NewDrawList()
				dl.SetFeathering(opts.Feathering)
				dl.SetTolerance(opts.Tolerance)
				dl.SetPathCache(cache)
				return dl
			},
		},
	}
}

// Get returns an empty draw list.
func (p *DrawListPool) Get() *paint.DrawList {
	dl := p.pool.Get().(*paint.DrawList)
	dl.Reset()
	return dl
}

// Put returns a draw list to the pool.
func (p *DrawListPool) Put(dl *paint.DrawList) {
	if dl == nil {
		return
	}
	dl.SetMiddleware(nil)
	p.pool.Put(dl)
}
