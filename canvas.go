package vg

import (
	"errors"
	"fmt"

	"github.com/gogpu/vg/atlas"
	"github.com/gogpu/vg/geom"
	"github.com/gogpu/vg/gpu"
	"github.com/gogpu/vg/paint"
	"github.com/gogpu/vg/path"
	"github.com/gogpu/vg/render"
	"github.com/gogpu/vg/scene"
	"github.com/gogpu/vg/text"
)

// ErrClosed is returned when using a closed canvas.
var ErrClosed = errors.New("vg: canvas is closed")

// Canvas is the drawing surface. Draw calls record instructions into the
// current scene; Paint batches the scene under the active clip rectangle
// into renderables; Finish uploads and draws everything painted since
// BeginFrame.
//
// A Canvas is not safe for concurrent use. Its atlas may be filled from
// other goroutines, for example by an asset.Loader.
type Canvas struct {
	device   gpu.Device
	cfg      Config
	atlas    *atlas.Manager
	paths    *path.Cache
	scene    *scene.Scene
	renderer *render.Renderer
	clips    *render.ClipStack
	items    []render.Renderable
	closed   bool
}

// NewCanvas creates a canvas drawing on device.
func NewCanvas(device gpu.Device, cfg Config) (*Canvas, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	am, err := atlas.NewManager(device, cfg.Atlas)
	if err != nil {
		return nil, fmt.Errorf("vg: create atlas: %w", err)
	}
	r, err := render.New(device, am, cfg.renderConfig())
	if err != nil {
		am.Close()
		return nil, fmt.Errorf("vg: create renderer: %w", err)
	}
	paths := cfg.pathCache()
	c := &Canvas{
		device:   device,
		cfg:      cfg,
		atlas:    am,
		paths:    paths,
		scene:    scene.New(cfg.Scene, paths),
		renderer: r,
		clips:    render.NewClipStack(float32(cfg.Width), float32(cfg.Height)),
	}
	Logger().Info("vg: canvas created", "width", cfg.Width, "height", cfg.Height, "batching", cfg.Scene.Mode.String())
	return c, nil
}

// Atlas returns the canvas's texture atlas.
func (c *Canvas) Atlas() *atlas.Manager { return c.atlas }

// Renderer returns the canvas's renderer, for registering user textures.
func (c *Canvas) Renderer() *render.Renderer { return c.renderer }

// Scene returns the scene draw calls record into.
func (c *Canvas) Scene() *scene.Scene { return c.scene }

// PathCache returns the cache of flattened paths.
func (c *Canvas) PathCache() *path.Cache { return c.paths }

// Size returns the logical size of the canvas.
func (c *Canvas) Size() (width, height uint32) { return c.cfg.Width, c.cfg.Height }

// BeginFrame discards everything recorded or painted in the previous frame
// and resets the clip stack.
func (c *Canvas) BeginFrame() {
	c.ClearStaged()
	c.ClearUnstaged()
	c.clips.Reset()
}

// ClearStaged drops painted renderables.
func (c *Canvas) ClearStaged() {
	clear(c.items)
	c.items = c.items[:0]
}

// ClearUnstaged drops recorded instructions that have not been painted.
func (c *Canvas) ClearUnstaged() {
	c.scene.Clear()
}

// Draw records an instruction. Nothing is drawn until Paint.
func (c *Canvas) Draw(in scene.Instruction) {
	c.scene.Add(in)
}

// FillRect records a solid rectangle.
func (c *Canvas) FillRect(r geom.Rect, color paint.Color) {
	c.scene.AddQuad(r, geom.Corners{}, paint.Filled(color))
}

// DrawQuad records a possibly rounded rectangle.
func (c *Canvas) DrawQuad(r geom.Rect, corners geom.Corners, b paint.Brush) {
	c.scene.AddQuad(r, corners, b)
}

// DrawCircle records a circle.
func (c *Canvas) DrawCircle(center geom.Point, radius float32, b paint.Brush) {
	c.scene.AddCircle(center, radius, b)
}

// DrawPath records a path.
func (c *Canvas) DrawPath(p *path.Path2D, b paint.Brush) {
	c.scene.AddPath(p, b)
}

// DrawImage records the atlas image id stretched over r. The image must be
// in the atlas by the time Paint is called, or it is dropped.
func (c *Canvas) DrawImage(r geom.Rect, id atlas.ImageID) {
	c.scene.AddImage(r, atlas.ImageKey(id))
}

// DrawUserTexture records a quad sampling a texture the application owns.
// The texture must be registered with the renderer before Finish.
func (c *Canvas) DrawUserTexture(r geom.Rect, tex gpu.TextureID) {
	c.scene.Add(scene.NewInstruction(paint.Quad{Rect: r}, paint.Filled(paint.White)).
		WithTexture(paint.UserTexture(tex)))
}

// DrawGlyphRun records a laid-out glyph run.
func (c *Canvas) DrawGlyphRun(run scene.GlyphRun) {
	c.scene.AddGlyphRun(run)
}

// DrawText lays out s on one line with its baseline at origin, caches the
// glyph masks in the atlas and records the resulting glyph run.
func (c *Canvas) DrawText(face *text.Face, s string, size float32, origin geom.Point, color paint.Color) error {
	run, err := text.Layout(c.atlas, face, s, size, origin, color)
	if err != nil {
		return err
	}
	c.scene.AddGlyphRun(run)
	return nil
}

// renderables batches sc and stamps every mesh with the active clip.
func (c *Canvas) renderables(sc *scene.Scene) {
	if sc.Len() == 0 {
		return
	}
	infos := c.atlas.TextureInfos(sc.RequiredKeys())
	clipRect := c.clips.Current()
	for mesh := range sc.BatchesSeq(infos) {
		c.items = append(c.items, render.Renderable{Clip: clipRect, Mesh: mesh})
	}
}

// Paint batches the recorded instructions under the active clip rectangle
// and clears the scene.
func (c *Canvas) Paint() {
	c.renderables(c.scene)
	c.scene.Clear()
}

// PaintScene batches sc under the active clip rectangle. sc is left
// unchanged, so a static scene can be painted every frame.
func (c *Canvas) PaintScene(sc *scene.Scene) {
	c.renderables(sc)
}

// ClipRect returns the active clip rectangle: the intersection of every
// pushed clip, or the whole canvas when none is pushed.
func (c *Canvas) ClipRect() geom.Rect { return c.clips.Current() }

// WithClip runs fn with r intersected into the clip rectangle. Only what
// fn paints is clipped; instructions it records but does not paint are
// clipped by whatever clip is active when they are painted.
func (c *Canvas) WithClip(r geom.Rect, fn func(*Canvas)) {
	c.clips.Push(r)
	defer c.clips.Pop()
	fn(c)
}

// PaintWithClip runs fn with r intersected into the clip rectangle and then
// paints the scene under that clip.
func (c *Canvas) PaintWithClip(r geom.Rect, fn func(*Canvas)) {
	c.clips.Push(r)
	defer c.clips.Pop()
	fn(c)
	c.Paint()
}

// Resize changes the logical size of the canvas.
func (c *Canvas) Resize(width, height uint32) {
	if width == 0 || height == 0 {
		return
	}
	c.cfg.Width, c.cfg.Height = width, height
	c.renderer.Resize(width, height)
	c.clips.Resize(float32(width), float32(height))
}

// Renderables returns what has been painted since BeginFrame. The slice
// is valid until the next BeginFrame.
func (c *Canvas) Renderables() []render.Renderable { return c.items }

// Finish uploads everything painted since BeginFrame and records its draw
// calls into pass. Painted renderables are kept until BeginFrame.
func (c *Canvas) Finish(pass gpu.Pass) error {
	if c.closed {
		return ErrClosed
	}
	c.renderer.RegisterTextures(c.items)
	if err := c.renderer.Prepare(c.items); err != nil {
		return fmt.Errorf("vg: prepare frame: %w", err)
	}
	defer c.renderer.End()
	if err := c.renderer.Render(pass, c.items); err != nil {
		return fmt.Errorf("vg: render frame: %w", err)
	}
	return nil
}

// Close releases the canvas's GPU resources. The device itself is owned by
// the caller.
func (c *Canvas) Close() {
	if c.closed {
		return
	}
	c.closed = true
	c.renderer.Close()
	c.atlas.Close()
	c.paths.Purge()
	c.items = nil
}
