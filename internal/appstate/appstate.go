package appstate

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"log"
	"time"

	"golang.org/x/exp/shiny/screen"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"
	"golang.org/x/mobile/event/key"

	"github.com/example/pinpoint/internal/annotate"
	"github.com/example/pinpoint/internal/render"
	"github.com/example/pinpoint/internal/theme"
)

const (
	headerHeight = 24
	bottomHeight = 24
)

var panelWidth = 220

// frameDropThreshold specifies how many consecutive frames can be canceled
// before a draw is allowed to complete to keep the UI responsive.
const frameDropThreshold = 10

// Mode selects the initial interaction behaviour of the window.
type Mode int

const (
	// ModeAnnotate allows placing, labelling and removing points.
	ModeAnnotate Mode = iota
	// ModeView shows the annotated image read-only until annotation is enabled.
	ModeView
)

var goregularFont *sfnt.Font
var panelFace font.Face
var labelFace font.Face
var messageFace font.Face

func init() {
	f, err := opentype.Parse(goregular.TTF)
	if err != nil {
		log.Fatalf("parse font: %v", err)
	}
	goregularFont = f
	panelFace, err = opentype.NewFace(f, &opentype.FaceOptions{Size: 12, DPI: 72, Hinting: font.HintingFull})
	if err != nil {
		log.Fatalf("font face: %v", err)
	}
	labelFace, err = opentype.NewFace(f, &opentype.FaceOptions{Size: 14, DPI: 72, Hinting: font.HintingFull})
	if err != nil {
		log.Fatalf("font face: %v", err)
	}
	messageFace, err = opentype.NewFace(f, &opentype.FaceOptions{Size: 32, DPI: 72, Hinting: font.HintingFull})
	if err != nil {
		log.Fatalf("font face: %v", err)
	}
}

// MarkerOptionsFor builds the marker style from a theme and radius. A nil
// theme keeps the classic red marker defaults.
func MarkerOptionsFor(th *theme.Theme, radius int) render.MarkerOptions {
	opts := render.DefaultMarkerOptions()
	opts.Radius = radius
	opts.Face = labelFace
	if th != nil {
		opts.Fill = th.MarkerFill
		opts.Outline = th.MarkerOutline
		opts.LabelText = th.LabelText
		opts.LabelBack = th.LabelBackground
	}
	return opts
}

// drawCheckerboard fills rect of dst with a checkerboard pattern of the given
// colors. size controls the checker square size.
func drawCheckerboard(dst *image.RGBA, rect image.Rectangle, size int, light, dark color.Color) {
	for y := rect.Min.Y; y < rect.Max.Y; y++ {
		for x := rect.Min.X; x < rect.Max.X; x++ {
			if ((x/size)+(y/size))%2 == 0 {
				dst.Set(x, y, light)
			} else {
				dst.Set(x, y, dark)
			}
		}
	}
}

// backdropCache holds a cached checkerboard backdrop.
var backdropCache *image.RGBA
var backdropColors [2]color.RGBA

// drawBackdrop fills dst with a cached checkerboard pattern.
func drawBackdrop(dst *image.RGBA, light, dark color.RGBA) {
	b := dst.Bounds()
	if backdropCache == nil || backdropCache.Bounds() != b || backdropColors != [2]color.RGBA{light, dark} {
		backdropCache = image.NewRGBA(b)
		drawCheckerboard(backdropCache, backdropCache.Bounds(), 8, light, dark)
		backdropColors = [2]color.RGBA{light, dark}
	}
	draw.Draw(dst, b, backdropCache, image.Point{}, draw.Src)
}

// confirmGate arms on the first trigger of a destructive action and only
// lets the second consecutive trigger through.
type confirmGate struct {
	armed bool
}

// Arm reports whether the action may proceed. The first call arms the gate
// and returns false; the next call fires and disarms.
func (g *confirmGate) Arm() bool {
	if g.armed {
		g.armed = false
		return true
	}
	g.armed = true
	return false
}

// Reset disarms the gate. Any unrelated action in between cancels the
// pending confirmation.
func (g *confirmGate) Reset() { g.armed = false }

// KeyShortcut describes a keyboard combination that triggers an action.
type KeyShortcut struct {
	Rune      rune
	Code      key.Code
	Modifiers key.Modifiers
}

// KeyboardShortcuts returns the shortcuts associated with an action.
type KeyboardShortcuts interface {
	KeyboardShortcuts() []KeyShortcut
}

// shortcutList is a helper to easily satisfy the KeyboardShortcuts interface.
type shortcutList []KeyShortcut

func (s shortcutList) KeyboardShortcuts() []KeyShortcut { return []KeyShortcut(s) }

// ButtonState describes the visual state of a button.
type ButtonState int

const (
	StateDefault ButtonState = iota
	StateHover
	StatePressed
)

// Button represents an interactive UI element.
// Activate performs the button's action when clicked.
type Button interface {
	Draw(dst *image.RGBA, state ButtonState)
	Rect() image.Rectangle
	SetRect(r image.Rectangle)
	Activate()
}

// Shortcut is a labelled button in the bottom bar.
type Shortcut struct {
	label  string
	action func()
	rect   image.Rectangle
	theme  *theme.Theme
}

var _ Button = (*Shortcut)(nil)

func (s *Shortcut) Draw(dst *image.RGBA, state ButtonState) {
	th := s.theme
	if th == nil {
		th = theme.Default()
	}
	col := th.ButtonBackground
	switch state {
	case StateHover:
		col = th.ButtonBackgroundHover
	case StatePressed:
		col = th.ButtonBackgroundPress
	}
	draw.Draw(dst, s.rect, &image.Uniform{col}, image.Point{}, draw.Src)
	drawRectBorder(dst, s.rect, th.ButtonBorder)
	d := &font.Drawer{Dst: dst, Src: image.NewUniform(th.ButtonText), Face: basicfont.Face7x13,
		Dot: fixed.P(s.rect.Min.X+2, s.rect.Min.Y+14)}
	d.DrawString(s.label)
}

func (s *Shortcut) Rect() image.Rectangle { return s.rect }

func (s *Shortcut) SetRect(r image.Rectangle) {
	if r != s.rect {
		s.rect = r
	}
}

func (s *Shortcut) Activate() {
	if s.action != nil {
		s.action()
	}
}

func drawRectBorder(img *image.RGBA, rect image.Rectangle, col color.Color) {
	for x := rect.Min.X; x < rect.Max.X; x++ {
		img.Set(x, rect.Min.Y, col)
		img.Set(x, rect.Max.Y-1, col)
	}
	for y := rect.Min.Y; y < rect.Max.Y; y++ {
		img.Set(rect.Min.X, y, col)
		img.Set(rect.Max.X-1, y, col)
	}
}

var shortcutRects []Shortcut
var hoverShortcut = -1
var hoverRow = -1

func drawHeader(dst *image.RGBA, width int, title string, count int, th *theme.Theme) {
	draw.Draw(dst, image.Rect(0, 0, width, headerHeight),
		&image.Uniform{th.PanelBackground}, image.Point{}, draw.Src)
	d := &font.Drawer{Dst: dst, Src: image.NewUniform(th.PanelText), Face: basicfont.Face7x13,
		Dot: fixed.P(4, 16)}
	d.DrawString("Pinpoint")
	if title != "" {
		d.Dot = fixed.P(100, 16)
		d.DrawString(title)
	}
	countStr := fmt.Sprintf("%d points", count)
	w := d.MeasureString(countStr).Ceil()
	d.Dot = fixed.P(width-w-4, 16)
	d.DrawString(countStr)
}

// drawPanel renders the annotation table on the right hand side. The most
// recent annotation is highlighted so undo feedback is visible.
func drawPanel(dst *image.RGBA, width, height int, annotations []annotate.Annotation, th *theme.Theme) {
	rect := image.Rect(width-panelWidth, headerHeight, width, height-bottomHeight)
	draw.Draw(dst, rect, &image.Uniform{th.PanelBackground}, image.Point{}, draw.Src)

	ascent := panelFace.Metrics().Ascent.Ceil()
	rowH := panelRowHeight()
	y := rect.Min.Y + 4
	for i, a := range annotations {
		if y+rowH > rect.Max.Y {
			more := fmt.Sprintf("... %d more", len(annotations)-i)
			d := &font.Drawer{Dst: dst, Src: image.NewUniform(th.PanelText), Face: panelFace,
				Dot: fixed.P(rect.Min.X+6, y+ascent)}
			d.DrawString(more)
			break
		}
		rowRect := image.Rect(rect.Min.X, y, rect.Max.X, y+rowH)
		if i == len(annotations)-1 || i == hoverRow {
			draw.Draw(dst, rowRect, &image.Uniform{th.PanelHighlight}, image.Point{}, draw.Src)
		}
		line := fmt.Sprintf("%d. %s (%.0f, %.0f)", i+1, a.Label, a.X, a.Y)
		d := &font.Drawer{Dst: dst, Src: image.NewUniform(th.PanelText), Face: panelFace,
			Dot: fixed.P(rect.Min.X+6, y+ascent)}
		d.DrawString(line)
		y += rowH
	}
}

func panelRowHeight() int {
	m := panelFace.Metrics()
	return m.Ascent.Ceil() + m.Descent.Ceil() + 4
}

func drawShortcuts(dst *image.RGBA, width, height int, labelActive bool, pointSize, displayWidth int, th *theme.Theme, trigger func(string)) {
	rect := image.Rect(0, height-bottomHeight, width, height)
	draw.Draw(dst, rect, &image.Uniform{th.PanelBackground}, image.Point{}, draw.Src)
	shortcutRects = shortcutRects[:0]
	var shortcuts []Shortcut
	if labelActive {
		shortcuts = []Shortcut{
			{label: "Enter:add", action: func() { trigger("labeldone") }},
			{label: "Esc:cancel", action: func() { trigger("labelcancel") }},
		}
	} else {
		sizeStr := fmt.Sprintf("+:size (%d)", pointSize)
		widthStr := fmt.Sprintf("]:width (%d)", displayWidth)
		shortcuts = []Shortcut{
			{label: "U:undo", action: func() { trigger("undo") }},
			{label: "X:clear", action: func() { trigger("clear") }},
			{label: "E:export", action: func() { trigger("export") }},
			{label: "S:save", action: func() { trigger("save") }},
			{label: "C:copy", action: func() { trigger("copy") }},
			{label: "-:size", action: func() { trigger("sizedown") }},
			{label: sizeStr, action: func() { trigger("sizeup") }},
			{label: "[:width", action: func() { trigger("widthdown") }},
			{label: widthStr, action: func() { trigger("widthup") }},
			{label: "Q:quit", action: func() { trigger("quit") }},
		}
	}
	x := 4
	y := height - bottomHeight + 16
	meas := &font.Drawer{Face: basicfont.Face7x13}
	for i := range shortcuts {
		sc := &shortcuts[i]
		sc.theme = th
		w := meas.MeasureString(sc.label).Ceil()
		sc.SetRect(image.Rect(x-2, y-14, x+w+2, y+4))
		state := StateDefault
		if i == hoverShortcut {
			state = StateHover
		}
		sc.Draw(dst, state)
		shortcutRects = append(shortcutRects, *sc)
		x = sc.rect.Max.X + 8
	}
}

type paintState struct {
	width, height  int
	base           *image.RGBA
	annotations    []annotate.Annotation
	mapper         annotate.Mapper
	pointSize      int
	pending        annotate.Point
	hasPending     bool
	labelActive    bool
	labelInput     string
	title          string
	message        string
	messageUntil   time.Time
	theme          *theme.Theme
	handleShortcut func(string)
}

func drawFrame(ctx context.Context, s screen.Screen, w screen.Window, st paintState) {
	b, err := s.NewBuffer(image.Point{st.width, st.height})
	if err != nil {
		log.Printf("new buffer: %v", err)
		return
	}
	defer b.Release()

	th := st.theme
	if th == nil {
		th = theme.Default()
	}

	drawBackdrop(b.RGBA(), th.CheckerLight, th.CheckerDark)
	if ctx.Err() != nil {
		return
	}

	imgOrigin := image.Pt(0, headerHeight)
	if st.base != nil {
		draw.Draw(b.RGBA(), st.base.Bounds().Add(imgOrigin), st.base, image.Point{}, draw.Over)
	}
	if ctx.Err() != nil {
		return
	}

	opts := MarkerOptionsFor(th, st.pointSize)
	for _, a := range st.annotations {
		if ctx.Err() != nil {
			return
		}
		dx, dy := st.mapper.ToDisplay(a.X, a.Y)
		x := int(dx+0.5) + imgOrigin.X
		y := int(dy+0.5) + imgOrigin.Y
		render.DrawMarker(b.RGBA(), x, y, opts)
		render.DrawLabel(b.RGBA(), x+opts.Radius+5, y-opts.Radius, a.Label, opts)
	}

	if st.hasPending {
		pendingOpts := opts
		pendingOpts.Fill = th.PendingMarker
		dx, dy := st.mapper.ToDisplay(st.pending.X, st.pending.Y)
		x := int(dx+0.5) + imgOrigin.X
		y := int(dy+0.5) + imgOrigin.Y
		render.DrawPendingMarker(b.RGBA(), x, y, pendingOpts)
		if st.labelActive {
			render.DrawLabel(b.RGBA(), x+opts.Radius+5, y-opts.Radius, st.labelInput+"|", opts)
		}
	}

	if ctx.Err() != nil {
		return
	}

	drawHeader(b.RGBA(), st.width, st.title, len(st.annotations), th)
	drawPanel(b.RGBA(), st.width, st.height, st.annotations, th)
	displayW, _ := st.mapper.DisplaySize()
	drawShortcuts(b.RGBA(), st.width, st.height, st.labelActive, st.pointSize, displayW, th, st.handleShortcut)

	if ctx.Err() != nil {
		return
	}

	if st.message != "" && time.Now().Before(st.messageUntil) {
		d := &font.Drawer{Dst: b.RGBA(), Src: image.NewUniform(th.MessageText), Face: messageFace}
		wmsg := d.MeasureString(st.message).Ceil()
		ascent := messageFace.Metrics().Ascent.Ceil()
		descent := messageFace.Metrics().Descent.Ceil()
		px := (st.width - wmsg) / 2
		py := (st.height-ascent-descent)/2 + ascent
		rect := image.Rect(px-8, py-ascent-8, px+wmsg+8, py+descent+8)
		draw.Draw(b.RGBA(), rect, &image.Uniform{th.MessageBackground}, image.Point{}, draw.Over)
		drawRectBorder(b.RGBA(), rect, th.Foreground)
		d.Dot = fixed.P(px, py)
		d.DrawString(st.message)
	}

	if ctx.Err() != nil {
		return
	}

	w.Upload(image.Point{}, b, b.Bounds())
	w.Publish()
}
