package stage

import (
	"encoding/json"
	"fmt"
	"slices"

	"github.com/hajimehoshi/ebiten/v2"
)

// atlasFrame is one named region of an atlas page.
type atlasFrame struct {
	page       int
	x, y, w, h float64
}

// Atlas holds one or more atlas page images and a map of named regions.
type Atlas struct {
	// Pages contains the atlas page images indexed by page number.
	Pages  []*ebiten.Image
	frames map[string]atlasFrame
}

// LoadAtlas parses TexturePacker JSON data and associates the given page images.
// Supports both the hash format (single "frames" object) and the array format
// ("textures" array with per-page frame lists). Rotated frames are rejected.
func LoadAtlas(jsonData []byte, pages []*ebiten.Image) (*Atlas, error) {
	// Probe top-level keys to detect format.
	var doc struct {
		Frames   json.RawMessage `json:"frames"`
		Textures json.RawMessage `json:"textures"`
	}
	if err := json.Unmarshal(jsonData, &doc); err != nil {
		return nil, fmt.Errorf("stage: failed to parse atlas JSON: %w", err)
	}

	atlas := &Atlas{
		Pages:  pages,
		frames: make(map[string]atlasFrame),
	}

	switch {
	case doc.Textures != nil:
		var textures []jsonTexturePage
		if err := json.Unmarshal(doc.Textures, &textures); err != nil {
			return nil, fmt.Errorf("stage: failed to parse atlas textures array: %w", err)
		}
		for i, tex := range textures {
			if err := atlas.addFrames(tex.Frames, i); err != nil {
				return nil, err
			}
		}
	case doc.Frames != nil:
		var frames map[string]jsonFrame
		if err := json.Unmarshal(doc.Frames, &frames); err != nil {
			return nil, fmt.Errorf("stage: failed to parse atlas frames: %w", err)
		}
		if err := atlas.addFrames(frames, 0); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("stage: atlas JSON has neither \"frames\" nor \"textures\" key")
	}
	return atlas, nil
}

type jsonRect struct {
	X int `json:"x"`
	Y int `json:"y"`
	W int `json:"w"`
	H int `json:"h"`
}

type jsonFrame struct {
	Frame   jsonRect `json:"frame"`
	Rotated bool     `json:"rotated"`
}

type jsonTexturePage struct {
	Image  string               `json:"image"`
	Frames map[string]jsonFrame `json:"frames"`
}

func (a *Atlas) addFrames(frames map[string]jsonFrame, page int) error {
	for name, f := range frames {
		if f.Rotated {
			return fmt.Errorf("stage: atlas frame %q is rotated, which is not supported", name)
		}
		a.frames[name] = atlasFrame{
			page: page,
			x:    float64(f.Frame.X),
			y:    float64(f.Frame.Y),
			w:    float64(f.Frame.W),
			h:    float64(f.Frame.H),
		}
	}
	return nil
}

// Names returns the region names in sorted order.
func (a *Atlas) Names() []string {
	names := make([]string, 0, len(a.frames))
	for name := range a.frames {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Sprite returns a sprite drawing the named region. The sprite's image is
// nil when the region's page was not supplied.
func (a *Atlas) Sprite(name string) (*Sprite, bool) {
	f, ok := a.frames[name]
	if !ok {
		return nil, false
	}
	var img *ebiten.Image
	if f.page < len(a.Pages) {
		img = a.Pages[f.page]
	}
	return NewSpriteRegion(img, f.x, f.y, f.w, f.h), true
}

// Animation builds a looping animation from the named regions in order.
func (a *Atlas) Animation(frameDuration float64, names ...string) (*Animation, error) {
	frames := make([]Graphic, 0, len(names))
	for _, name := range names {
		s, ok := a.Sprite(name)
		if !ok {
			return nil, fmt.Errorf("stage: atlas has no region %q", name)
		}
		frames = append(frames, s)
	}
	return NewAnimation(frameDuration, frames...), nil
}
