package main

import (
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/gogpu/vg"
	"github.com/gogpu/vg/asset"
	"github.com/gogpu/vg/atlas"
	"github.com/gogpu/vg/geom"
	"github.com/gogpu/vg/paint"
	"github.com/gogpu/vg/path"
	"github.com/gogpu/vg/scene"
	"github.com/gogpu/vg/text"
)

// sceneFile is the TOML description of one frame. Numbers that end up as
// coordinates must be written as floats (10.0, not 10).
type sceneFile struct {
	Width      uint32     `toml:"width"`
	Height     uint32     `toml:"height"`
	Batching   string     `toml:"batching"`
	Feathering float32    `toml:"feathering"`
	Images     []imageDef `toml:"image"`
	Shapes     []shapeDef `toml:"shape"`
	Texts      []textDef  `toml:"text"`
}

type imageDef struct {
	ID   uint64 `toml:"id"`
	Path string `toml:"path"`
}

type shapeDef struct {
	Kind    string      `toml:"kind"` // rect, circle, path or image
	Rect    []float32   `toml:"rect"`
	Corners float32     `toml:"corners"`
	Center  []float32   `toml:"center"`
	Radius  float32     `toml:"radius"`
	Points  [][]float32 `toml:"points"`
	Closed  bool        `toml:"closed"`
	Image   uint64      `toml:"image"`
	Clip    []float32   `toml:"clip"`

	Fill        string  `toml:"fill"`
	Stroke      string  `toml:"stroke"`
	StrokeWidth float32 `toml:"stroke_width"`
	Join        string  `toml:"join"`
	Cap         string  `toml:"cap"`
	Antialias   bool    `toml:"antialias"`
}

type textDef struct {
	Text   string    `toml:"text"`
	Origin []float32 `toml:"origin"`
	Size   float32   `toml:"size"`
	Color  string    `toml:"color"`
}

func decodeScene(data string) (*sceneFile, error) {
	sf := &sceneFile{Width: 800, Height: 600, Feathering: 1}
	md, err := toml.Decode(data, sf)
	if err != nil {
		return nil, err
	}
	if u := md.Undecoded(); len(u) > 0 {
		return nil, fmt.Errorf("undecoded fields in scene: %v", u)
	}
	return sf, nil
}

func loadScene(name string) (*sceneFile, error) {
	sf := &sceneFile{Width: 800, Height: 600, Feathering: 1}
	md, err := toml.DecodeFile(name, sf)
	if err != nil {
		return nil, err
	}
	if u := md.Undecoded(); len(u) > 0 {
		return nil, fmt.Errorf("undecoded fields in %s: %v", name, u)
	}
	return sf, nil
}

func (sf *sceneFile) config() (vg.Config, error) {
	cfg := vg.DefaultConfig()
	cfg.Width, cfg.Height = sf.Width, sf.Height
	cfg.Scene.Feathering = sf.Feathering
	switch strings.ToLower(sf.Batching) {
	case "", "grouped":
		cfg.Scene.Mode = scene.BatchGrouped
	case "strict":
		cfg.Scene.Mode = scene.BatchStrict
	default:
		return cfg, fmt.Errorf("unknown batching mode %q", sf.Batching)
	}
	return cfg, cfg.Validate()
}

func (sf *sceneFile) sources() []asset.Source {
	src := make([]asset.Source, 0, len(sf.Images))
	for _, im := range sf.Images {
		src = append(src, asset.Source{ID: atlas.ImageID(im.ID), Path: im.Path})
	}
	return src
}

func rectOf(v []float32) (geom.Rect, error) {
	if len(v) != 4 {
		return geom.Rect{}, fmt.Errorf("rectangle needs 4 numbers, got %d", len(v))
	}
	return geom.NewRect(v[0], v[1], v[2], v[3]), nil
}

func pointOf(v []float32) (geom.Point, error) {
	if len(v) != 2 {
		return geom.Point{}, fmt.Errorf("point needs 2 numbers, got %d", len(v))
	}
	return geom.Pt(v[0], v[1]), nil
}

func (s *shapeDef) brush() (paint.Brush, error) {
	var b paint.Brush
	if s.Fill != "" {
		fill, err := paint.ParseHex(s.Fill)
		if err != nil {
			return b, err
		}
		b = paint.Filled(fill)
	}
	if s.Stroke != "" {
		stroke, err := paint.ParseHex(s.Stroke)
		if err != nil {
			return b, err
		}
		st := paint.DefaultStroke().WithColor(stroke).WithWidth(max(s.StrokeWidth, 1))
		if s.Join != "" {
			j, err := paint.ParseLineJoin(s.Join)
			if err != nil {
				return b, err
			}
			st = st.WithJoin(j)
		}
		if s.Cap != "" {
			c, err := paint.ParseLineCap(s.Cap)
			if err != nil {
				return b, err
			}
			st = st.WithCap(c)
		}
		b = b.WithStroke(st)
	}
	return b.WithAntialias(s.Antialias), nil
}

func (s *shapeDef) draw(cv *vg.Canvas) error {
	switch s.Kind {
	case "image":
		r, err := rectOf(s.Rect)
		if err != nil {
			return err
		}
		cv.DrawImage(r, atlas.ImageID(s.Image))
		return nil
	}

	b, err := s.brush()
	if err != nil {
		return err
	}
	switch s.Kind {
	case "rect":
		r, err := rectOf(s.Rect)
		if err != nil {
			return err
		}
		cv.DrawQuad(r, geom.UniformCorners(s.Corners), b)
	case "circle":
		c, err := pointOf(s.Center)
		if err != nil {
			return err
		}
		cv.DrawCircle(c, s.Radius, b)
	case "path":
		if len(s.Points) < 2 {
			return fmt.Errorf("path needs at least 2 points, got %d", len(s.Points))
		}
		p := path.NewPath2D()
		for i, v := range s.Points {
			pt, err := pointOf(v)
			if err != nil {
				return err
			}
			if i == 0 {
				p.MoveTo(pt)
			} else {
				p.LineTo(pt)
			}
		}
		if s.Closed {
			p.Close()
		}
		cv.DrawPath(p, b)
	default:
		return fmt.Errorf("unknown shape kind %q", s.Kind)
	}
	return nil
}

// build records and paints the whole scene into cv. Shapes with a clip are
// painted on their own under that clip.
func (sf *sceneFile) build(cv *vg.Canvas, face *text.Face) error {
	for i := range sf.Shapes {
		s := &sf.Shapes[i]
		if len(s.Clip) == 0 {
			if err := s.draw(cv); err != nil {
				return fmt.Errorf("shape %d: %w", i, err)
			}
			continue
		}
		clipRect, err := rectOf(s.Clip)
		if err != nil {
			return fmt.Errorf("shape %d clip: %w", i, err)
		}
		// Everything recorded so far keeps the outer clip.
		cv.Paint()
		cv.PaintWithClip(clipRect, func(cv *vg.Canvas) {
			err = s.draw(cv)
		})
		if err != nil {
			return fmt.Errorf("shape %d: %w", i, err)
		}
	}
	for i, t := range sf.Texts {
		origin, err := pointOf(t.Origin)
		if err != nil {
			return fmt.Errorf("text %d: %w", i, err)
		}
		c := paint.Black
		if t.Color != "" {
			if c, err = paint.ParseHex(t.Color); err != nil {
				return fmt.Errorf("text %d: %w", i, err)
			}
		}
		if err := cv.DrawText(face, t.Text, t.Size, origin, c); err != nil {
			return fmt.Errorf("text %d: %w", i, err)
		}
	}
	cv.Paint()
	return nil
}
