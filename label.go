package stage

import (
	"bufio"
	"bytes"
	"fmt"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/hajimehoshi/ebiten/v2"
)

// --- SpriteFont ---

type fontGlyph struct {
	sprite  *Sprite
	xOffset float64
	yOffset float64
	advance float64
}

// SpriteFont maps characters to regions of a glyph atlas image.
type SpriteFont struct {
	// CaseInsensitive folds lookups to lower case. Glyphs are stored under
	// their lower-case rune when set.
	CaseInsensitive bool

	lineHeight float64
	glyphs     map[rune]fontGlyph
}

// NewSpriteFont slices a grid atlas into glyphs. The i-th rune of alphabet
// is the cell at column i%columns, row i/columns.
func NewSpriteFont(img *ebiten.Image, alphabet string, caseInsensitive bool, columns, rows int, cellW, cellH float64) (*SpriteFont, error) {
	if img == nil {
		return nil, fmt.Errorf("stage: sprite font needs an atlas image")
	}
	if columns <= 0 || rows <= 0 || cellW <= 0 || cellH <= 0 {
		return nil, fmt.Errorf("stage: invalid sprite font grid %dx%d of %gx%g cells", columns, rows, cellW, cellH)
	}
	n := utf8.RuneCountInString(alphabet)
	if n > columns*rows {
		return nil, fmt.Errorf("stage: alphabet has %d characters but the grid holds %d", n, columns*rows)
	}

	f := &SpriteFont{
		CaseInsensitive: caseInsensitive,
		lineHeight:      cellH,
		glyphs:          make(map[rune]fontGlyph, n),
	}
	i := 0
	for _, r := range alphabet {
		col, row := i%columns, i/columns
		f.glyphs[f.fold(r)] = fontGlyph{
			sprite:  NewSpriteRegion(img, float64(col)*cellW, float64(row)*cellH, cellW, cellH),
			advance: cellW,
		}
		i++
	}
	return f, nil
}

// LoadBitmapFont parses BMFont .fnt text-format data into a SpriteFont
// whose glyphs are regions of page.
func LoadBitmapFont(fntData []byte, page *ebiten.Image) (*SpriteFont, error) {
	if page == nil {
		return nil, fmt.Errorf("stage: bitmap font needs an atlas page")
	}
	f := &SpriteFont{glyphs: make(map[rune]fontGlyph)}

	scanner := bufio.NewScanner(bytes.NewReader(fntData))
	var charCount int
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		tag, rest := splitTag(line)
		fields := parseFields(rest)

		switch tag {
		case "common":
			f.lineHeight = fieldFloat(fields, "lineHeight")
		case "char":
			charCount++
			id := rune(fieldFloat(fields, "id"))
			f.glyphs[id] = fontGlyph{
				sprite: NewSpriteRegion(page,
					fieldFloat(fields, "x"), fieldFloat(fields, "y"),
					fieldFloat(fields, "width"), fieldFloat(fields, "height")),
				xOffset: fieldFloat(fields, "xoffset"),
				yOffset: fieldFloat(fields, "yoffset"),
				advance: fieldFloat(fields, "xadvance"),
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("stage: error reading .fnt data: %w", err)
	}
	if f.lineHeight == 0 {
		return nil, fmt.Errorf("stage: .fnt data missing common lineHeight")
	}
	if charCount == 0 {
		return nil, fmt.Errorf("stage: .fnt data has no char definitions")
	}
	return f, nil
}

// splitTag splits a BMFont line into its tag and the rest of the line.
func splitTag(line string) (string, string) {
	idx := strings.IndexByte(line, ' ')
	if idx == -1 {
		return line, ""
	}
	return line[:idx], line[idx+1:]
}

// parseFields parses "key=value key=value ..." into a map. Quoted values
// may contain spaces.
func parseFields(s string) map[string]string {
	m := make(map[string]string)
	for len(s) > 0 {
		s = strings.TrimLeft(s, " ")
		eq := strings.IndexByte(s, '=')
		if eq == -1 {
			break
		}
		key := s[:eq]
		s = s[eq+1:]
		var val string
		if strings.HasPrefix(s, `"`) {
			end := strings.IndexByte(s[1:], '"')
			if end == -1 {
				val, s = s[1:], ""
			} else {
				val, s = s[1:end+1], s[end+2:]
			}
		} else {
			sp := strings.IndexByte(s, ' ')
			if sp == -1 {
				val, s = s, ""
			} else {
				val, s = s[:sp], s[sp+1:]
			}
		}
		m[key] = val
	}
	return m
}

func fieldFloat(fields map[string]string, key string) float64 {
	v, _ := strconv.ParseFloat(fields[key], 64)
	return v
}

func (f *SpriteFont) fold(r rune) rune {
	if f.CaseInsensitive {
		return unicode.ToLower(r)
	}
	return r
}

func (f *SpriteFont) glyph(r rune) (fontGlyph, bool) {
	g, ok := f.glyphs[f.fold(r)]
	return g, ok
}

// LineHeight returns the vertical distance between lines.
func (f *SpriteFont) LineHeight() float64 {
	return f.lineHeight
}

// Has reports whether the font has a glyph for r.
func (f *SpriteFont) Has(r rune) bool {
	_, ok := f.glyph(r)
	return ok
}

// --- Text ---

// Text is a single line graphic drawn from a SpriteFont. Characters the
// font lacks are skipped and reported once each through the diagnostic
// channel.
type Text struct {
	Font          *SpriteFont
	Content       string
	LetterSpacing float64
	Alpha         float64

	logger  Logger
	missing map[rune]bool
}

// NewText returns an opaque text graphic.
func NewText(font *SpriteFont, content string) *Text {
	return &Text{Font: font, Content: content, Alpha: 1}
}

func (t *Text) Opacity() float64 { return t.Alpha }

// Width returns the advance of the whole line including letter spacing.
func (t *Text) Width() float64 {
	if t.Font == nil {
		return 0
	}
	var w float64
	n := 0
	for _, r := range t.Content {
		if g, ok := t.Font.glyph(r); ok {
			w += g.advance
			n++
		}
	}
	if n > 1 {
		w += t.LetterSpacing * float64(n-1)
	}
	return w
}

func (t *Text) Height() float64 {
	if t.Font == nil {
		return 0
	}
	return t.Font.lineHeight
}

func (t *Text) Draw(ctx Context, x, y float64) {
	if t.Font == nil {
		return
	}
	cx := x
	for _, r := range t.Content {
		g, ok := t.Font.glyph(r)
		if !ok {
			t.reportMissing(r)
			continue
		}
		g.sprite.Draw(ctx, cx+g.xOffset, y+g.yOffset)
		cx += g.advance + t.LetterSpacing
	}
}

func (t *Text) reportMissing(r rune) {
	if t.missing[r] {
		return
	}
	if t.missing == nil {
		t.missing = make(map[rune]bool)
	}
	t.missing[r] = true
	l := t.logger
	if l == nil {
		l = defaultLogger
	}
	l.Errorf("SpriteFont error drawing char %q", r)
}

// NewLabel creates an actor sized to the rendered text that shows it.
func NewLabel(name, content string, x, y float64, font *SpriteFont) *Actor {
	t := NewText(font, content)
	a := NewActor(name, x, y, t.Width(), t.Height())
	a.Anchor = VecZero
	a.resizeBox()
	t.logger = labelLogger{a}
	NewGraphicsComponent(a).Use("text", t)
	return a
}

// SetLabelText replaces the text of a label created with NewLabel and
// resizes the actor to fit.
func SetLabelText(a *Actor, content string) {
	if a.Graphics == nil {
		return
	}
	g, ok := a.Graphics.Get("text")
	if !ok {
		return
	}
	t, ok := g.(*Text)
	if !ok {
		return
	}
	t.Content = content
	a.Width, a.Height = t.Width(), t.Height()
	a.resizeBox()
}

// labelLogger resolves the actor's logger at log time so a label picks up
// its scene's logger once added.
type labelLogger struct{ a *Actor }

func (l labelLogger) Debugf(format string, args ...any) { l.a.logger().Debugf(format, args...) }
func (l labelLogger) Warnf(format string, args ...any)  { l.a.logger().Warnf(format, args...) }
func (l labelLogger) Errorf(format string, args ...any) { l.a.logger().Errorf(format, args...) }
