package render

import (
	"encoding/binary"
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/gogpu/naga"

	"github.com/gogpu/vg/atlas"
	"github.com/gogpu/vg/geom"
	"github.com/gogpu/vg/gpu"
	"github.com/gogpu/vg/internal/gputest"
	"github.com/gogpu/vg/paint"
)

type fixture struct {
	dev   *gputest.Device
	atlas *atlas.Manager
	r     *Renderer
	white atlas.TextureID
}

func newFixture(t *testing.T, cfg Config) *fixture {
	t.Helper()
	dev := gputest.NewDevice()
	m, err := atlas.NewManager(dev, atlas.Config{DefaultSize: 64, Padding: 1})
	if err != nil {
		t.Fatalf("NewManager: %v", err)
	}
	t.Cleanup(m.Close)
	r, err := New(dev, m, cfg)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	t.Cleanup(r.Close)
	white, _ := m.Get(atlas.WhiteKey())
	return &fixture{dev: dev, atlas: m, r: r, white: white.Texture}
}

func quadMesh(tex atlas.TextureID, x, y float32) paint.Mesh {
	m := paint.Mesh{Texture: paint.AtlasRenderTexture(tex)}
	dl := paint.NewDrawList()
	dl.AddQuad(paint.NewQuad(x, y, 10, 10), paint.Filled(paint.Red), false)
	built := dl.Build()
	m.Vertices, m.Indices = built.Vertices, built.Indices
	return m
}

func screen(w, h float32) geom.Rect { return geom.NewRect(0, 0, w, h) }

func TestSceneShaderCompiles(t *testing.T) {
	src := SceneShaderSource()
	for _, want := range []string{"vs_main", "fs_main", "@group(0) @binding(0)", "@group(1) @binding(2)"} {
		if !strings.Contains(src, want) {
			t.Errorf("shader source missing %q", want)
		}
	}
	spirv, err := naga.Compile(src)
	if err != nil {
		t.Fatalf("naga.Compile: %v", err)
	}
	if len(spirv) < 4 || binary.LittleEndian.Uint32(spirv) != 0x07230203 {
		t.Error("output does not start with the SPIR-V magic number")
	}
}

func TestNewCreatesResources(t *testing.T) {
	f := newFixture(t, DefaultConfig())

	if len(f.dev.Pipelines) != 1 {
		t.Fatalf("pipelines = %d, want 1", len(f.dev.Pipelines))
	}
	for _, p := range f.dev.Pipelines {
		if p.VertexStride != paint.VertexSize || len(p.Attributes) != 3 {
			t.Errorf("pipeline layout = stride %d, %d attributes", p.VertexStride, len(p.Attributes))
		}
	}
	st := f.r.Stats()
	if st.VertexCapacity != 1024*paint.VertexSize {
		t.Errorf("vertex capacity = %d, want %d", st.VertexCapacity, 1024*paint.VertexSize)
	}
	if st.IndexCapacity != 3072*4 {
		t.Errorf("index capacity = %d, want %d", st.IndexCapacity, 3072*4)
	}

	proj := f.dev.Buffer(f.r.globals).Data
	sx := math.Float32frombits(binary.LittleEndian.Uint32(proj[0:]))
	if sx != 2.0/800 {
		t.Errorf("projection x scale = %g, want %g", sx, 2.0/800)
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
	}{
		{"zero size", Config{InitialVertices: 1, InitialIndices: 1}},
		{"no vertices", Config{Width: 1, Height: 1, InitialIndices: 1}},
		{"no indices", Config{Width: 1, Height: 1, InitialVertices: 1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var cerr *ConfigError
			if err := tt.cfg.Validate(); !errors.As(err, &cerr) {
				t.Errorf("Validate() = %v, want *ConfigError", err)
			}
		})
	}
	if err := DefaultConfig().Validate(); err != nil {
		t.Errorf("DefaultConfig().Validate() = %v", err)
	}
}

func TestPrepareStagesContiguously(t *testing.T) {
	f := newFixture(t, DefaultConfig())
	items := []Renderable{
		{Clip: screen(800, 600), Mesh: quadMesh(f.white, 0, 0)},
		{Clip: screen(800, 600), Mesh: quadMesh(f.white, 20, 0)},
	}
	if err := f.r.Prepare(items); err != nil {
		t.Fatalf("Prepare: %v", err)
	}

	vs := f.r.vertices.slices
	if len(vs) != 2 || vs[0] != (byteRange{0, 4 * paint.VertexSize}) || vs[1].start != vs[0].end {
		t.Errorf("vertex slices = %v", vs)
	}
	is := f.r.indices.slices
	if len(is) != 2 || is[1] != (byteRange{24, 48}) {
		t.Errorf("index slices = %v", is)
	}

	data := f.dev.Buffer(f.r.vertices.id).Data
	x := math.Float32frombits(binary.LittleEndian.Uint32(data[4*paint.VertexSize:]))
	if x != 20 {
		t.Errorf("first vertex of second mesh x = %g, want 20", x)
	}
	alpha := math.Float32frombits(binary.LittleEndian.Uint32(data[28:]))
	if alpha != 1 {
		t.Errorf("first vertex alpha = %g, want 1", alpha)
	}
}

func TestPrepareGrowsBuffers(t *testing.T) {
	cfg := DefaultConfig()
	cfg.InitialVertices = 4
	cfg.InitialIndices = 6
	f := newFixture(t, cfg)

	one := []Renderable{{Clip: screen(800, 600), Mesh: quadMesh(f.white, 0, 0)}}
	if err := f.r.Prepare(one); err != nil {
		t.Fatalf("Prepare: %v", err)
	}
	if got := f.r.Stats().VertexCapacity; got != 4*paint.VertexSize {
		t.Fatalf("capacity grew for a mesh that fits: %d", got)
	}
	f.r.End()

	// Two quads need exactly twice the capacity.
	two := append(one, Renderable{Clip: screen(800, 600), Mesh: quadMesh(f.white, 20, 0)})
	if err := f.r.Prepare(two); err != nil {
		t.Fatalf("Prepare: %v", err)
	}
	if got := f.r.Stats().VertexCapacity; got != 8*paint.VertexSize {
		t.Errorf("vertex capacity = %d, want doubled %d", got, 8*paint.VertexSize)
	}
	f.r.End()

	// Five quads need more than double, so the exact requirement wins.
	var many []Renderable
	for i := range 5 {
		many = append(many, Renderable{Clip: screen(800, 600), Mesh: quadMesh(f.white, float32(i)*20, 0)})
	}
	if err := f.r.Prepare(many); err != nil {
		t.Fatalf("Prepare: %v", err)
	}
	st := f.r.Stats()
	if st.VertexCapacity != 20*paint.VertexSize {
		t.Errorf("vertex capacity = %d, want %d", st.VertexCapacity, 20*paint.VertexSize)
	}
	if st.IndexCapacity != 30*4 {
		t.Errorf("index capacity = %d, want %d", st.IndexCapacity, 30*4)
	}
	if f.dev.Buffer(f.r.vertices.id) == nil {
		t.Error("current vertex buffer does not exist")
	}
}

func TestRenderIssuesScissoredDraws(t *testing.T) {
	f := newFixture(t, DefaultConfig())
	if err := f.r.RegisterAtlasTexture(f.white); err != nil {
		t.Fatalf("RegisterAtlasTexture: %v", err)
	}
	items := []Renderable{
		{Clip: geom.NewRect(-10, 5.5, 100, 50), Mesh: quadMesh(f.white, 0, 0)},
		{Clip: geom.NewRect(700, 500, 500, 500), Mesh: quadMesh(f.white, 20, 0)},
	}
	if err := f.r.Prepare(items); err != nil {
		t.Fatalf("Prepare: %v", err)
	}
	var pass gputest.Pass
	if err := f.r.Render(&pass, items); err != nil {
		t.Fatalf("Render: %v", err)
	}
	f.r.End()

	draws := pass.Filter(gputest.OpDrawIndexed)
	if len(draws) != 2 || draws[0].Index != 6 || draws[1].Index != 6 {
		t.Fatalf("draws = %v, want two draws of 6 indices", draws)
	}
	scissors := pass.Filter(gputest.OpSetScissor)
	want := [][4]uint32{
		{0, 5, 90, 51},
		{700, 500, 100, 100},
		{0, 0, 800, 600},
	}
	if len(scissors) != len(want) {
		t.Fatalf("scissors = %v", scissors)
	}
	for i, w := range want {
		if scissors[i].Rect != w {
			t.Errorf("scissor %d = %v, want %v", i, scissors[i].Rect, w)
		}
	}
	vbs := pass.Filter(gputest.OpSetVertexBuffer)
	if vbs[1].Offset != 4*paint.VertexSize {
		t.Errorf("second vertex offset = %d, want %d", vbs[1].Offset, 4*paint.VertexSize)
	}
	ibs := pass.Filter(gputest.OpSetIndexBuffer)
	if ibs[1].Offset != 24 {
		t.Errorf("second index offset = %d, want 24", ibs[1].Offset)
	}
}

func TestRenderSkipsUnregisteredTexture(t *testing.T) {
	f := newFixture(t, DefaultConfig())
	tile, err := f.atlas.GetOrInsert(atlas.GlyphKey(atlas.GlyphID{Font: 1, Glyph: 3}, false), func() (atlas.Bitmap, error) {
		return atlas.Bitmap{Width: 2, Height: 2, Pixels: make([]byte, 4)}, nil
	})
	if err != nil {
		t.Fatalf("GetOrInsert: %v", err)
	}
	if err := f.r.RegisterAtlasTexture(f.white); err != nil {
		t.Fatalf("RegisterAtlasTexture: %v", err)
	}

	items := []Renderable{
		{Clip: screen(800, 600), Mesh: quadMesh(tile.Texture, 0, 0)},
		{Clip: screen(800, 600), Mesh: quadMesh(f.white, 20, 0)},
	}
	if err := f.r.Prepare(items); err != nil {
		t.Fatalf("Prepare: %v", err)
	}
	var pass gputest.Pass
	if err := f.r.Render(&pass, items); err != nil {
		t.Fatalf("Render: %v", err)
	}
	draws := pass.Filter(gputest.OpDrawIndexed)
	if len(draws) != 1 {
		t.Fatalf("draws = %d, want 1", len(draws))
	}
	vbs := pass.Filter(gputest.OpSetVertexBuffer)
	if vbs[0].Offset != 4*paint.VertexSize {
		t.Errorf("drawn mesh offset = %d, want the second mesh's %d", vbs[0].Offset, 4*paint.VertexSize)
	}

	// Registering through the items makes the glyph mesh drawable.
	f.r.RegisterTextures(items)
	pass.Reset()
	if err := f.r.Render(&pass, items); err != nil {
		t.Fatalf("Render: %v", err)
	}
	if n := len(pass.Filter(gputest.OpDrawIndexed)); n != 2 {
		t.Errorf("draws after registering = %d, want 2", n)
	}
}

func TestRenderMoreItemsThanStagedPanics(t *testing.T) {
	f := newFixture(t, DefaultConfig())
	items := []Renderable{{Clip: screen(800, 600), Mesh: quadMesh(f.white, 0, 0)}}
	if err := f.r.Prepare(items); err != nil {
		t.Fatalf("Prepare: %v", err)
	}
	f.r.End()

	defer func() {
		if recover() == nil {
			t.Error("Render after End did not panic")
		}
	}()
	_ = f.r.Render(&gputest.Pass{}, items)
}

func TestResizeUpdatesProjectionLazily(t *testing.T) {
	f := newFixture(t, DefaultConfig())
	f.r.Resize(400, 200)
	if w, h := f.r.Size(); w != 400 || h != 200 {
		t.Fatalf("Size() = %d, %d", w, h)
	}
	proj := f.dev.Buffer(f.r.globals).Data
	if sx := math.Float32frombits(binary.LittleEndian.Uint32(proj[0:])); sx != 2.0/800 {
		t.Errorf("projection updated before Render: %g", sx)
	}

	if err := f.r.Prepare(nil); err != nil {
		t.Fatalf("Prepare: %v", err)
	}
	var pass gputest.Pass
	if err := f.r.Render(&pass, nil); err != nil {
		t.Fatalf("Render: %v", err)
	}
	if sx := math.Float32frombits(binary.LittleEndian.Uint32(proj[0:])); sx != 2.0/400 {
		t.Errorf("projection x scale = %g, want %g", sx, 2.0/400)
	}
	sc := pass.Filter(gputest.OpSetScissor)
	if len(sc) != 1 || sc[0].Rect != [4]uint32{0, 0, 400, 200} {
		t.Errorf("final scissor = %v", sc)
	}
}

func TestRegisterTextures(t *testing.T) {
	f := newFixture(t, DefaultConfig())
	if err := f.r.RegisterAtlasTexture(atlas.TextureID{Kind: atlas.KindMask, Slot: 9}); !errors.Is(err, ErrUnknownTexture) {
		t.Errorf("unknown atlas texture: err = %v, want ErrUnknownTexture", err)
	}

	user, err := f.dev.CreateTexture(gpu.TextureDescriptor{Label: "user", Width: 4, Height: 4, Format: gpu.FormatRGBA8Unorm})
	if err != nil {
		t.Fatalf("CreateTexture: %v", err)
	}
	for range 2 {
		if err := f.r.RegisterUserTexture(user); err != nil {
			t.Fatalf("RegisterUserTexture: %v", err)
		}
	}
	if got := f.r.Stats().Textures; got != 1 {
		t.Errorf("registered textures = %d, want 1", got)
	}
	f.r.UnregisterTexture(paint.UserRenderTexture(user))
	if got := f.r.Stats().Textures; got != 0 {
		t.Errorf("registered textures after unregister = %d, want 0", got)
	}
}

func TestRegisterAtlasTextureFollowsDrops(t *testing.T) {
	f := newFixture(t, DefaultConfig())
	insert := func(glyph uint32) atlas.TextureID {
		t.Helper()
		tile, err := f.atlas.GetOrInsert(atlas.GlyphKey(atlas.GlyphID{Font: 1, Glyph: glyph}, false), func() (atlas.Bitmap, error) {
			return atlas.Bitmap{Width: 2, Height: 2, Pixels: make([]byte, 4)}, nil
		})
		if err != nil {
			t.Fatalf("GetOrInsert: %v", err)
		}
		return tile.Texture
	}

	id := insert(1)
	if err := f.r.RegisterAtlasTexture(id); err != nil {
		t.Fatalf("RegisterAtlasTexture: %v", err)
	}
	f.atlas.DropTexture(id)
	if err := f.r.RegisterAtlasTexture(id); !errors.Is(err, ErrUnknownTexture) {
		t.Errorf("dropped texture: err = %v, want ErrUnknownTexture", err)
	}
	if got := f.r.Stats().Textures; got != 0 {
		t.Errorf("dropped texture kept its bind group: %d registered", got)
	}

	if again := insert(2); again != id {
		t.Fatalf("slot not reused: %v, want %v", again, id)
	}
	if err := f.r.RegisterAtlasTexture(id); err != nil {
		t.Fatalf("RegisterAtlasTexture: %v", err)
	}
	tex, _ := f.atlas.GPUTexture(id)
	for _, bound := range f.dev.BindGroups {
		if bound == uint64(tex) {
			return
		}
	}
	t.Errorf("no bind group samples the new gpu texture %d", tex)
}

func TestClosedRenderer(t *testing.T) {
	f := newFixture(t, DefaultConfig())
	f.r.Close()
	if err := f.r.Prepare(nil); !errors.Is(err, ErrClosed) {
		t.Errorf("Prepare after Close: err = %v, want ErrClosed", err)
	}
	if len(f.dev.Pipelines) != 0 {
		t.Errorf("pipelines after Close = %d, want 0", len(f.dev.Pipelines))
	}
}
