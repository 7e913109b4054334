// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package atlas packs bitmaps into a small number of large GPU textures.
//
// A Manager owns one list of textures per Kind. GetOrInsert maps a Key to a
// Tile, rasterizing and uploading its bitmap only the first time the key is
// seen. When every texture of a kind is full, a new texture is appended;
// tiles are never evicted or moved.
//
// Manager is safe for concurrent use: asset loaders may insert tiles from
// worker goroutines while the render thread resolves keys.
package atlas

import (
	"fmt"
	"iter"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/gogpu/vg/gpu"
	"github.com/gogpu/vg/internal/vglog"
)

// Device is the subset of gpu.Device the manager uses.
type Device interface {
	CreateTexture(desc gpu.TextureDescriptor) (gpu.TextureID, error)
	WriteTexture(id gpu.TextureID, x, y, width, height uint32, data []byte) error
	DestroyTexture(id gpu.TextureID)
}

// texture is one physical atlas texture.
type texture struct {
	id    TextureID
	gpu   gpu.TextureID
	alloc *ShelfAllocator
	w, h  int
}

// Manager maps keys to tiles across growable lists of atlas textures.
type Manager struct {
	mu     sync.Mutex
	device Device
	cfg    Config
	closed bool

	// slots[kind][slot] is nil for a free slot.
	slots map[Kind][]*texture
	// order[kind] lists live slots in creation order.
	order map[Kind][]int
	free  map[Kind][]int

	tiles    map[Key]Tile
	nextTile TileID

	hits   atomic.Uint64
	misses atomic.Uint64
}

// NewManager creates a manager and inserts the reserved white tile.
func NewManager(device Device, cfg Config) (*Manager, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	m := &Manager{
		device:   device,
		cfg:      cfg,
		slots:    make(map[Kind][]*texture),
		order:    make(map[Kind][]int),
		free:     make(map[Kind][]int),
		tiles:    make(map[Key]Tile),
		nextTile: 1,
	}
	_, err := m.GetOrInsert(WhiteKey(), func() (Bitmap, error) {
		return Bitmap{Width: 1, Height: 1, Pixels: []byte{0xFF, 0xFF, 0xFF, 0xFF}}, nil
	})
	if err != nil {
		return nil, fmt.Errorf("atlas: insert white tile: %w", err)
	}
	return m, nil
}

// GetOrInsert returns the tile for key. On a hit the existing tile is
// returned and rasterize is not called. On a miss rasterize produces the
// bitmap, which is allocated and uploaded as one atomic step.
//
// rasterize runs without the lock held. If two goroutines miss on the same
// key at once both may rasterize, but only one tile is created.
func (m *Manager) GetOrInsert(key Key, rasterize func() (Bitmap, error)) (Tile, error) {
	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return Tile{}, ErrClosed
	}
	if t, ok := m.tiles[key]; ok {
		m.mu.Unlock()
		m.hits.Add(1)
		return t, nil
	}
	m.mu.Unlock()

	bm, err := rasterize()
	if err != nil {
		return Tile{}, fmt.Errorf("atlas: rasterize %s: %w", key, err)
	}
	kind := key.Kind()
	if bm.Width <= 0 || bm.Height <= 0 {
		return Tile{}, fmt.Errorf("%s %dx%d: %w", key, bm.Width, bm.Height, ErrInvalidSize)
	}
	if want := bm.Width * bm.Height * kind.BytesPerPixel(); len(bm.Pixels) != want {
		return Tile{}, fmt.Errorf("%s: got %d bytes, want %d: %w", key, len(bm.Pixels), want, ErrDataSize)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return Tile{}, ErrClosed
	}
	if t, ok := m.tiles[key]; ok {
		m.hits.Add(1)
		return t, nil
	}
	m.misses.Add(1)

	tex, bounds, err := m.allocate(kind, bm.Width, bm.Height)
	if err != nil {
		return Tile{}, err
	}
	if err := m.write(tex, bounds, bm.Pixels); err != nil {
		// The region stays reserved; the tile is still recorded so callers
		// do not re-rasterize every frame.
		vglog.Logger().Error("atlas: tile upload failed", "key", key.String(), "texture", tex.id, "err", err)
	}

	t := Tile{ID: m.nextTile, Texture: tex.id, Bounds: bounds}
	m.nextTile++
	m.tiles[key] = t
	return t, nil
}

// allocate places a w x h tile in a texture of kind, creating a texture
// when none has room. Callers hold m.mu.
func (m *Manager) allocate(kind Kind, w, h int) (*texture, Rect, error) {
	order := m.order[kind]
	for i := len(order) - 1; i >= 0; i-- {
		tex := m.slots[kind][order[i]]
		if w > tex.w || h > tex.h {
			continue
		}
		if r, ok := tex.alloc.Allocate(w, h); ok {
			return tex, r, nil
		}
	}

	tex, err := m.newTexture(kind, max(m.cfg.DefaultSize, w), max(m.cfg.DefaultSize, h))
	if err != nil {
		return nil, Rect{}, err
	}
	r, ok := tex.alloc.Allocate(w, h)
	if !ok {
		return nil, Rect{}, fmt.Errorf("%dx%d in %s: %w", w, h, tex.id, ErrAllocation)
	}
	return tex, r, nil
}

// newTexture creates and zero-fills a texture. Callers hold m.mu.
func (m *Manager) newTexture(kind Kind, w, h int) (*texture, error) {
	slot := len(m.slots[kind])
	if free := m.free[kind]; len(free) > 0 {
		slot = free[len(free)-1]
	}
	id := TextureID{Kind: kind, Slot: slot}

	gid, err := m.device.CreateTexture(gpu.TextureDescriptor{
		Label:  fmt.Sprintf("vg_atlas_%s_%d", kind, slot),
		Width:  uint32(w), //nolint:gosec // validated positive
		Height: uint32(h), //nolint:gosec // validated positive
		Format: kind.Format(),
	})
	if err != nil {
		return nil, fmt.Errorf("atlas: create texture %s: %w", id, err)
	}
	// Sampled regions must never expose stale contents.
	zeros := make([]byte, w*h*kind.BytesPerPixel())
	if err := m.device.WriteTexture(gid, 0, 0, uint32(w), uint32(h), zeros); err != nil { //nolint:gosec // validated positive
		m.device.DestroyTexture(gid)
		return nil, fmt.Errorf("atlas: clear texture %s: %w", id, err)
	}

	tex := &texture{id: id, gpu: gid, alloc: NewShelfAllocator(w, h, m.cfg.Padding), w: w, h: h}
	if slot == len(m.slots[kind]) {
		m.slots[kind] = append(m.slots[kind], tex)
	} else {
		m.free[kind] = m.free[kind][:len(m.free[kind])-1]
		m.slots[kind][slot] = tex
	}
	m.order[kind] = append(m.order[kind], slot)

	vglog.Logger().Info("atlas: texture created", "texture", id.String(), "width", w, "height", h)
	return tex, nil
}

func (m *Manager) lookup(id TextureID) *texture {
	slots := m.slots[id.Kind]
	if id.Slot < 0 || id.Slot >= len(slots) {
		return nil
	}
	return slots[id.Slot]
}

func (m *Manager) write(tex *texture, bounds Rect, data []byte) error {
	return m.device.WriteTexture(tex.gpu,
		uint32(bounds.X), uint32(bounds.Y), //nolint:gosec // allocator output is non-negative
		uint32(bounds.Width), uint32(bounds.Height), //nolint:gosec // allocator output is non-negative
		data)
}

// Upload writes data into bounds of an existing texture. A missing texture
// or a failed write is logged and reported as false; it is never fatal.
func (m *Manager) Upload(id TextureID, bounds Rect, data []byte) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	tex := m.lookup(id)
	if tex == nil {
		vglog.Logger().Error("atlas: texture not found", "texture", id.String())
		return false
	}
	if err := m.write(tex, bounds, data); err != nil {
		vglog.Logger().Error("atlas: upload failed", "texture", id.String(), "bounds", bounds.String(), "err", err)
		return false
	}
	return true
}

// Get returns the tile for key without inserting.
func (m *Manager) Get(key Key) (Tile, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	t, ok := m.tiles[key]
	return t, ok
}

// TextureInfo resolves a single key.
func (m *Manager) TextureInfo(key Key) (TextureInfo, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.info(key)
}

func (m *Manager) info(key Key) (TextureInfo, bool) {
	t, ok := m.tiles[key]
	if !ok {
		return TextureInfo{}, false
	}
	tex := m.lookup(t.Texture)
	if tex == nil {
		return TextureInfo{}, false
	}
	return TextureInfo{Texture: t.Texture, Bounds: t.Bounds, AtlasWidth: tex.w, AtlasHeight: tex.h}, true
}

// TextureInfos resolves every key in keys. Keys without a tile are absent
// from the result.
func (m *Manager) TextureInfos(keys iter.Seq[Key]) InfoMap {
	m.mu.Lock()
	defer m.mu.Unlock()

	infos := make(InfoMap)
	for k := range keys {
		if _, done := infos[k]; done {
			continue
		}
		if ti, ok := m.info(k); ok {
			infos[k] = ti
		}
	}
	return infos
}

// Textures returns a snapshot of the live textures in kind and creation
// order.
func (m *Manager) Textures() []TextureDescriptor {
	m.mu.Lock()
	defer m.mu.Unlock()

	var out []TextureDescriptor
	for _, kind := range []Kind{KindMask, KindColor} {
		for _, slot := range m.order[kind] {
			tex := m.slots[kind][slot]
			out = append(out, TextureDescriptor{ID: tex.id, GPU: tex.gpu, Width: tex.w, Height: tex.h})
		}
	}
	return out
}

// GPUTexture returns the device texture backing id.
func (m *Manager) GPUTexture(id TextureID) (gpu.TextureID, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if tex := m.lookup(id); tex != nil {
		return tex.gpu, true
	}
	return gpu.InvalidID, false
}

// DropTexture destroys a whole texture and forgets every tile on it. The
// slot is reused by the next texture of the same kind. Dropping the texture
// holding the white tile is refused.
func (m *Manager) DropTexture(id TextureID) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	tex := m.lookup(id)
	if tex == nil {
		return false
	}
	if white, ok := m.tiles[WhiteKey()]; ok && white.Texture == id {
		vglog.Logger().Warn("atlas: refusing to drop texture holding the white tile", "texture", id.String())
		return false
	}
	for k, t := range m.tiles {
		if t.Texture == id {
			delete(m.tiles, k)
		}
	}
	m.slots[id.Kind][id.Slot] = nil
	m.free[id.Kind] = append(m.free[id.Kind], id.Slot)
	order := m.order[id.Kind]
	for i, s := range order {
		if s == id.Slot {
			m.order[id.Kind] = append(order[:i], order[i+1:]...)
			break
		}
	}
	m.device.DestroyTexture(tex.gpu)
	return true
}

// Stats is a snapshot of manager counters.
type Stats struct {
	Hits     uint64
	Misses   uint64
	Textures int
	Tiles    int
}

// LogValue implements slog.LogValuer.
func (s Stats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Uint64("hits", s.Hits),
		slog.Uint64("misses", s.Misses),
		slog.Int("textures", s.Textures),
		slog.Int("tiles", s.Tiles),
	)
}

// Stats returns the current counters.
func (m *Manager) Stats() Stats {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, o := range m.order {
		n += len(o)
	}
	return Stats{
		Hits:     m.hits.Load(),
		Misses:   m.misses.Load(),
		Textures: n,
		Tiles:    len(m.tiles),
	}
}

// Close destroys every texture. Further inserts fail with ErrClosed.
func (m *Manager) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return
	}
	m.closed = true
	for kind, order := range m.order {
		for _, slot := range order {
			m.device.DestroyTexture(m.slots[kind][slot].gpu)
		}
	}
	m.slots = make(map[Kind][]*texture)
	m.order = make(map[Kind][]int)
	m.free = make(map[Kind][]int)
	m.tiles = make(map[Key]Tile)
}
