package main

import (
	"strings"
	"testing"

	"golang.org/x/image/font/gofont/goregular"

	"github.com/gogpu/vg"
	"github.com/gogpu/vg/geom"
	"github.com/gogpu/vg/internal/gputest"
	"github.com/gogpu/vg/scene"
	"github.com/gogpu/vg/text"
)

const testScene = `
width = 400
height = 300
batching = "strict"

[[shape]]
kind = "rect"
rect = [10.0, 10.0, 100.0, 50.0]
corners = 8.0
fill = "#ff0000"

[[shape]]
kind = "circle"
center = [200.0, 150.0]
radius = 40.0
fill = "#00ff00"
stroke = "#000000"
stroke_width = 2.0
clip = [0.0, 0.0, 200.0, 300.0]

[[shape]]
kind = "path"
points = [[0.0, 0.0], [50.0, 0.0], [25.0, 40.0]]
closed = true
stroke = "#0000ff"
join = "round"

[[text]]
text = "hi"
origin = [10.0, 280.0]
size = 16.0
color = "#ffffff"
`

func TestDecodeScene(t *testing.T) {
	sf, err := decodeScene(testScene)
	if err != nil {
		t.Fatalf("decodeScene: %v", err)
	}
	if len(sf.Shapes) != 3 || len(sf.Texts) != 1 {
		t.Fatalf("decoded %d shapes, %d texts", len(sf.Shapes), len(sf.Texts))
	}
	cfg, err := sf.config()
	if err != nil {
		t.Fatalf("config: %v", err)
	}
	if cfg.Width != 400 || cfg.Height != 300 || cfg.Scene.Mode != scene.BatchStrict {
		t.Errorf("config = %dx%d mode %v", cfg.Width, cfg.Height, cfg.Scene.Mode)
	}
}

func TestDecodeSceneErrors(t *testing.T) {
	tests := []struct {
		name, data, want string
	}{
		{"unknown field", "colour = 1\n", "undecoded"},
		{"bad toml", "width = \n", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := decodeScene(tt.data)
			if err == nil {
				t.Fatal("decodeScene succeeded")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("err = %v, want it to mention %q", err, tt.want)
			}
		})
	}

	sf, err := decodeScene(`batching = "random"`)
	if err != nil {
		t.Fatalf("decodeScene: %v", err)
	}
	if _, err := sf.config(); err == nil {
		t.Error("unknown batching mode accepted")
	}
}

func TestBuildScene(t *testing.T) {
	sf, err := decodeScene(testScene)
	if err != nil {
		t.Fatalf("decodeScene: %v", err)
	}
	cfg, err := sf.config()
	if err != nil {
		t.Fatalf("config: %v", err)
	}
	cv, err := vg.NewCanvas(gputest.NewDevice(), cfg)
	if err != nil {
		t.Fatalf("NewCanvas: %v", err)
	}
	defer cv.Close()
	face, err := text.LoadFace(goregular.TTF)
	if err != nil {
		t.Fatalf("LoadFace: %v", err)
	}

	cv.BeginFrame()
	if err := sf.build(cv, face); err != nil {
		t.Fatalf("build: %v", err)
	}

	// rect | clipped circle | path + text (white and mask textures)
	items := cv.Renderables()
	if len(items) != 4 {
		t.Fatalf("got %d renderables, want 4", len(items))
	}
	if want := geom.NewRect(0, 0, 200, 300); items[1].Clip != want {
		t.Errorf("circle clip = %v, want %v", items[1].Clip, want)
	}
	for i, it := range items {
		if !it.Mesh.IsValid() {
			t.Errorf("renderable %d has an invalid mesh", i)
		}
	}
}

func TestBuildSceneRejectsBadShapes(t *testing.T) {
	cv, err := vg.NewCanvas(gputest.NewDevice(), vg.DefaultConfig())
	if err != nil {
		t.Fatalf("NewCanvas: %v", err)
	}
	defer cv.Close()

	for _, data := range []string{
		"[[shape]]\nkind = \"star\"\n",
		"[[shape]]\nkind = \"rect\"\nrect = [1.0, 2.0]\n",
		"[[shape]]\nkind = \"path\"\npoints = [[1.0, 2.0]]\n",
		"[[shape]]\nkind = \"circle\"\ncenter = [1.0, 2.0]\nstroke = \"#fff\"\njoin = \"pointy\"\n",
		"[[shape]]\nkind = \"rect\"\nrect = [0.0, 0.0, 1.0, 1.0]\nfill = \"#ff00zz\"\n",
		"[[shape]]\nkind = \"rect\"\nrect = [0.0, 0.0, 1.0, 1.0]\nstroke = \"red\"\n",
		"[[text]]\ntext = \"x\"\norigin = [0.0, 0.0]\nsize = 12.0\ncolor = \"nope\"\n",
	} {
		sf, err := decodeScene(data)
		if err != nil {
			t.Fatalf("decodeScene(%q): %v", data, err)
		}
		if err := sf.build(cv, nil); err == nil {
			t.Errorf("build(%q) succeeded", data)
		}
	}
}
