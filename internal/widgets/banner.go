package widgets

import (
	"image/color"

	"github.com/SiirRandall/hud-banner/internal/display"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/widget"
)

var (
	colAmber = color.NRGBA{R: 0xE6, G: 0xA2, B: 0x3C, A: 255}
	colBlue  = color.NRGBA{R: 0x40, G: 0x9E, B: 0xFF, A: 255}
	colGrey  = color.NRGBA{R: 0x88, G: 0x88, B: 0x88, A: 255}
	colGreen = color.NRGBA{R: 0x67, G: 0xC2, B: 0x3A, A: 255}
	colWhite = color.NRGBA{R: 255, G: 255, B: 255, A: 255}
	colHigh  = color.NRGBA{R: 0xFF, G: 0x5F, B: 0x5F, A: 255}
	colLow   = color.NRGBA{R: 0x5F, G: 0xAF, B: 0xFF, A: 255}
	colRed   = color.NRGBA{R: 255, G: 0, B: 0, A: 255}

	colBackground = color.NRGBA{R: 10, G: 10, B: 15, A: 230}
	colBorder     = color.NRGBA{R: 0x3A, G: 0x3A, B: 0x4A, A: 255}
)

// Style is how one display role is drawn.
type Style struct {
	Color color.Color
	Size  float32
}

var styles = map[display.Role]Style{
	display.RoleCallsign:      {colAmber, 18},
	display.RoleUTCLabel:      {colBlue, 11},
	display.RoleUTCTime:       {colBlue, 24},
	display.RoleDate:          {colGrey, 14},
	display.RoleTZLabel:       {colAmber, 11},
	display.RoleLocalTime:     {colAmber, 24},
	display.RoleWXLabel:       {colGreen, 11},
	display.RoleCity:          {colWhite, 18},
	display.RoleHigh:          {colHigh, 18},
	display.RoleLow:           {colLow, 18},
	display.RoleWXPlaceholder: {colGrey, 18},
	display.RoleWarning:       {colRed, 10},
}

// StyleFor returns the style of r, white 14pt for unknown roles.
func StyleFor(r display.Role) Style {
	if s, ok := styles[r]; ok {
		return s
	}
	return Style{colWhite, 14}
}

// gapAfter widens the space after the big blocks, like the &nbsp; runs of a
// text banner.
func gapAfter(r display.Role) bool {
	switch r {
	case display.RoleCallsign, display.RoleUTCTime, display.RoleDate, display.RoleLocalTime:
		return true
	}
	return false
}

// Banner is the HUD's translucent rounded panel holding one line of styled
// text and a resize grip.
type Banner struct {
	widget.BaseWidget
	bg      *canvas.Rectangle
	line    *fyne.Container
	grip    *Grip
	content *fyne.Container

	OnSecondaryTap func(*fyne.PointEvent)
}

func NewBanner(initial string, onResize func(fyne.Delta)) *Banner {
	bg := canvas.NewRectangle(colBackground)
	bg.StrokeColor = colBorder
	bg.StrokeWidth = 1
	bg.CornerRadius = 12

	line := container.NewHBox(newText(display.Segment{Role: display.RoleWXPlaceholder, Text: initial}))
	grip := NewGrip(onResize)

	inner := container.NewBorder(nil,
		container.NewHBox(layout.NewSpacer(), grip),
		nil, nil,
		container.New(layout.NewCustomPaddedLayout(15, 0, 30, 30), container.NewCenter(line)),
	)
	content := container.NewStack(bg, inner)

	b := &Banner{bg: bg, line: line, grip: grip, content: content}
	b.ExtendBaseWidget(b)
	return b
}

func newText(s display.Segment) *canvas.Text {
	st := StyleFor(s.Role)
	t := canvas.NewText(s.Text, st.Color)
	t.TextSize = st.Size
	t.TextStyle = fyne.TextStyle{Bold: true, Monospace: true}
	return t
}

// SetText replaces the displayed line. Call on the UI goroutine.
func (b *Banner) SetText(txt display.Text) {
	objs := make([]fyne.CanvasObject, 0, len(txt.Segments)*2)
	for _, s := range txt.Segments {
		objs = append(objs, newText(s))
		if gapAfter(s.Role) {
			objs = append(objs, canvas.NewText("  ", colWhite))
		}
	}
	b.line.Objects = objs
	b.line.Refresh()
}

// Texts returns the drawn text segments, skipping spacers.
func (b *Banner) Texts() []*canvas.Text {
	var out []*canvas.Text
	for _, o := range b.line.Objects {
		if t, ok := o.(*canvas.Text); ok && t.Text != "  " {
			out = append(out, t)
		}
	}
	return out
}

func (b *Banner) TappedSecondary(ev *fyne.PointEvent) {
	if b.OnSecondaryTap != nil {
		b.OnSecondaryTap(ev)
	}
}

func (b *Banner) CreateRenderer() fyne.WidgetRenderer {
	return &bannerRenderer{banner: b, objects: []fyne.CanvasObject{b.content}}
}

type bannerRenderer struct {
	banner  *Banner
	objects []fyne.CanvasObject
}

func (r *bannerRenderer) Layout(size fyne.Size)        { r.objects[0].Resize(size) }
func (r *bannerRenderer) MinSize() fyne.Size           { return r.objects[0].MinSize() }
func (r *bannerRenderer) Refresh()                     { canvas.Refresh(r.banner) }
func (r *bannerRenderer) Objects() []fyne.CanvasObject { return r.objects }
func (r *bannerRenderer) Destroy()                     {}

// Grip is the bottom-right resize handle; dragging it reports the delta.
type Grip struct {
	widget.BaseWidget
	mark     *canvas.Text
	OnResize func(fyne.Delta)
}

func NewGrip(onResize func(fyne.Delta)) *Grip {
	mark := canvas.NewText("◢", colBorder)
	mark.TextSize = 12
	g := &Grip{mark: mark, OnResize: onResize}
	g.ExtendBaseWidget(g)
	return g
}

func (g *Grip) Dragged(ev *fyne.DragEvent) {
	if g.OnResize != nil {
		g.OnResize(ev.Dragged)
	}
}

func (g *Grip) DragEnd() {}

func (g *Grip) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(g.mark)
}
