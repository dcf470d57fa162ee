package viewer

import (
	"errors"
	"fmt"
	"image/color"
	"sort"
	"strings"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/lukaszgryglicki/wisdom3d/internal/wisdom3d"
)

type panel int

const (
	panelNone panel = iota
	panelLog
	panelAbout
)

const (
	lineHeight   = 16
	logItemLines = 4
	coverSize    = 64
)

var (
	background = color.RGBA{0x05, 0x05, 0x10, 0xff}
	panelColor = color.RGBA{0x10, 0x10, 0x20, 0xe0}
)

// RunWindow opens the window and blocks until it is closed.
func RunWindow(co *wisdom3d.Coordinator, cfg *wisdom3d.Config) error {
	g := newGame(co, cfg)
	ebiten.SetWindowTitle(cfg.Window.Title)
	ebiten.SetWindowSize(cfg.Window.Width, cfg.Window.Height)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(60)
	err := ebiten.RunGame(g)
	if m, ok := g.music.(*musicPlayer); ok {
		_ = m.Close()
	}
	if errors.Is(err, ebiten.Termination) {
		return nil
	}
	return err
}

type game struct {
	co     *wisdom3d.Coordinator
	cfg    *wisdom3d.Config
	music  wisdom3d.AudioPlayer
	covers *covers

	width, height int
	panel         panel
	logScroll     int
	lastCursor    mgl64.Vec2
	lastTouch     mgl64.Vec2
	captured      bool
	touches       []ebiten.TouchID
}

func newGame(co *wisdom3d.Coordinator, cfg *wisdom3d.Config) *game {
	g := &game{
		co:     co,
		cfg:    cfg,
		covers: newCovers(coverTTL),
		width:  cfg.Window.Width,
		height: cfg.Window.Height,
	}
	g.music = loadMusic(cfg.MusicFile)
	if g.music != nil {
		co.SetAudio(g.music)
	}
	return g
}

func (g *game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) {
		return ebiten.Termination
	}
	st := g.co.State
	if !st.Started {
		// splash: any click, tap or key starts the fly-through
		if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) ||
			len(inpututil.AppendJustPressedTouchIDs(nil)) > 0 ||
			inpututil.IsKeyJustPressed(ebiten.KeySpace) || inpututil.IsKeyJustPressed(ebiten.KeyEnter) {
			g.co.Start()
		}
		return nil
	}

	g.handleKeys()
	if g.captured && (g.panel != panelNone || !g.freeLook()) {
		g.co.PointerUp()
		g.releaseCursor()
	}
	if g.panel == panelNone {
		g.handleMouse()
		g.handleTouches()
	} else if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		g.panel = panelNone
	}
	g.co.Frame(g.co.Now())
	if st.Tracker.TakeDirty() {
		// start the cover download as soon as the overlay changes
		if m, ok := g.co.Latest(); ok {
			g.covers.Get(m.ImageURL)
		}
	}
	return nil
}

func (g *game) handleKeys() {
	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyEscape):
		g.panel = panelNone
	case inpututil.IsKeyJustPressed(ebiten.KeyF):
		if g.co.State.UI.FlyEnabled {
			g.co.SetMode(wisdom3d.ModeFlight)
		}
	case inpututil.IsKeyJustPressed(ebiten.KeyE):
		if g.co.State.UI.ExploreEnabled {
			g.co.SetMode(wisdom3d.ModeExplore)
		}
	case inpututil.IsKeyJustPressed(ebiten.KeyEqual), inpututil.IsKeyJustPressed(ebiten.KeyKPAdd):
		g.co.Zoom(true)
	case inpututil.IsKeyJustPressed(ebiten.KeyMinus), inpututil.IsKeyJustPressed(ebiten.KeyKPSubtract):
		g.co.Zoom(false)
	case inpututil.IsKeyJustPressed(ebiten.KeyL):
		g.togglePanel(panelLog)
	case inpututil.IsKeyJustPressed(ebiten.KeyA):
		g.togglePanel(panelAbout)
	}
	if _, dy := ebiten.Wheel(); dy != 0 {
		if g.panel == panelLog {
			g.logScroll -= int(dy)
			if g.logScroll < 0 {
				g.logScroll = 0
			}
		} else {
			g.co.Zoom(dy > 0)
		}
	}
}

func (g *game) togglePanel(p panel) {
	if g.panel == p {
		g.panel = panelNone
		return
	}
	g.panel = p
	g.logScroll = 0
}

// handleMouse routes the cursor. A free-look drag captures the cursor so
// turning is fed from per-frame deltas and never stops at the window edge.
func (g *game) handleMouse() {
	x, y := ebiten.CursorPosition()
	p := mgl64.Vec2{float64(x), float64(y)}
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		g.co.PointerDown(p, false)
		if g.freeLook() {
			ebiten.SetCursorMode(ebiten.CursorModeCaptured)
			g.captured = true
		}
	}
	if inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft) {
		g.co.PointerUp()
		g.releaseCursor()
	}
	if p == g.lastCursor {
		return
	}
	d := p.Sub(g.lastCursor)
	g.lastCursor = p
	g.co.PointerMove(p)
	if g.captured {
		g.co.Look(d)
		// a captured cursor has no place on screen, select what is straight ahead
		g.co.Pointer(mgl64.Vec2{})
		return
	}
	g.co.Pointer(g.ndc(p))
}

func (g *game) freeLook() bool {
	return g.co.State.Mode == wisdom3d.ModeExplore && g.co.Navigation().Style() == wisdom3d.NavFreeLook
}

func (g *game) releaseCursor() {
	if !g.captured {
		return
	}
	ebiten.SetCursorMode(ebiten.CursorModeVisible)
	g.captured = false
}

// handleTouches treats a single touch like the mouse: start selects and
// starts a drag, move drags and selects, release ends the drag.
func (g *game) handleTouches() {
	if !g.co.TouchEnabled() {
		return
	}
	g.touches = ebiten.AppendTouchIDs(g.touches[:0])
	for _, id := range inpututil.AppendJustPressedTouchIDs(nil) {
		if len(g.touches) != 1 {
			break
		}
		p := touchPos(id)
		g.lastTouch = p
		g.co.Pointer(g.ndc(p))
		g.co.PointerDown(p, true)
	}
	if len(g.touches) == 1 {
		p := touchPos(g.touches[0])
		if p != g.lastTouch {
			d := p.Sub(g.lastTouch)
			g.lastTouch = p
			g.co.PointerMove(p)
			g.co.Look(d)
			g.co.Pointer(g.ndc(p))
		}
	}
	if len(g.touches) == 0 && len(inpututil.AppendJustReleasedTouchIDs(nil)) > 0 {
		g.co.PointerUp()
	}
}

func touchPos(id ebiten.TouchID) mgl64.Vec2 {
	x, y := ebiten.TouchPosition(id)
	return mgl64.Vec2{float64(x), float64(y)}
}

func (g *game) ndc(p mgl64.Vec2) mgl64.Vec2 {
	return wisdom3d.PointerToNDC(p.X(), p.Y(), float64(g.width), float64(g.height))
}

func (g *game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth > 0 && outsideHeight > 0 && (outsideWidth != g.width || outsideHeight != g.height) {
		g.width, g.height = outsideWidth, outsideHeight
		g.co.State.Camera.Aspect = float64(outsideWidth) / float64(outsideHeight)
		wisdom3d.DebugLogOnce("Window resized to %dx%d", outsideWidth, outsideHeight)
	}
	return g.width, g.height
}

func (g *game) Draw(screen *ebiten.Image) {
	screen.Fill(background)
	if !g.co.State.Started {
		g.drawSplash(screen)
		return
	}
	g.drawOrbs(screen)
	g.drawOverlay(screen)
	g.drawControls(screen)
	switch g.panel {
	case panelLog:
		g.drawLog(screen)
	case panelAbout:
		g.drawText(screen, aboutText)
	}
}

type projected struct {
	x, y, r float32
	depth   float64
	c       color.RGBA
}

// drawOrbs paints every visible orb as a disc, far to near.
func (g *game) drawOrbs(screen *ebiten.Image) {
	st := g.co.State
	cam := st.Camera
	w, h := float64(g.width), float64(g.height)
	vp := cam.ViewProjection()
	out := make([]projected, 0, st.Scene.Len())
	for _, o := range st.Scene.Orbs {
		ndc, depth, ok := cam.ProjectWith(vp, st.Scene.WorldPosition(o))
		if !ok || ndc.X() < -1.2 || ndc.X() > 1.2 || ndc.Y() < -1.2 || ndc.Y() > 1.2 {
			continue
		}
		r := cam.ProjectedRadius(o.Radius, depth) * h / 2
		if r < 0.5 {
			r = 0.5
		}
		out = append(out, projected{
			x:     float32((ndc.X() + 1) / 2 * w),
			y:     float32((1 - ndc.Y()) / 2 * h),
			r:     float32(r),
			depth: depth,
			c:     shade(o.Color, depth, cam.Far),
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].depth > out[j].depth })
	for _, p := range out {
		vector.DrawFilledCircle(screen, p.x, p.y, p.r, p.c, true)
	}
}

// shade dims far orbs a little, standing in for the lights of a real renderer.
func shade(c wisdom3d.RGB, depth, far float64) color.RGBA {
	k := 1 - 0.6*mgl64.Clamp(depth/far, 0, 1)
	return color.RGBA{
		R: uint8(c.R * k * 255),
		G: uint8(c.G * k * 255),
		B: uint8(c.B * k * 255),
		A: 0xff,
	}
}

func (g *game) drawOverlay(screen *ebiten.Image) {
	m, ok := g.co.Latest()
	if !ok {
		return
	}
	const x, y = 12, 12
	w := float32(g.width) / 2
	vector.DrawFilledRect(screen, x-6, y-6, w, coverSize+12, panelColor, false)
	tx := x
	if img, ok := g.covers.Get(m.ImageURL); ok {
		op := &ebiten.DrawImageOptions{}
		b := img.Bounds()
		s := float64(coverSize) / float64(max(b.Dx(), b.Dy()))
		op.GeoM.Scale(s, s)
		op.GeoM.Translate(x, y)
		screen.DrawImage(img, op)
		tx += coverSize + 8
	}
	ebitenutil.DebugPrintAt(screen, wrap(m.Sentence, 60), tx, y)
	ebitenutil.DebugPrintAt(screen, m.Title, tx, y+3*lineHeight)
	ebitenutil.DebugPrintAt(screen, m.Author, tx, y+4*lineHeight-4)
}

func (g *game) drawControls(screen *ebiten.Image) {
	ui := g.co.State.UI
	var parts []string
	if ui.FlyEnabled {
		parts = append(parts, "[F] fly")
	} else {
		parts = append(parts, "(flying)")
	}
	if ui.ExploreEnabled {
		parts = append(parts, "[E] explore")
	} else {
		parts = append(parts, "(exploring, drag to rotate)")
	}
	if ui.ZoomVisible {
		parts = append(parts, "[+/-] zoom")
	}
	parts = append(parts, "[L] log", "[A] about", "[Q] quit")
	ebitenutil.DebugPrintAt(screen, strings.Join(parts, "  "), 12, g.height-2*lineHeight)

	// time left until the next flight target
	if g.co.State.Mode == wisdom3d.ModeFlight {
		f := g.co.Flight().HoldFraction(g.co.Now())
		w := float32(g.width - 24)
		vector.DrawFilledRect(screen, 12, float32(g.height-6), w, 2, panelColor, false)
		vector.DrawFilledRect(screen, 12, float32(g.height-6), w*float32(f), 2, color.RGBA{0x80, 0x80, 0xc0, 0xff}, false)
	}
}

func (g *game) drawLog(screen *ebiten.Image) {
	items := g.co.Log()
	var b strings.Builder
	fmt.Fprintf(&b, "Log: %d unique pieces of advice (newest first, wheel to scroll)\n\n", len(items))
	visible := (g.height - 4*lineHeight) / (logItemLines * lineHeight)
	if g.logScroll > len(items)-1 {
		g.logScroll = max(len(items)-1, 0)
	}
	end := min(len(items), g.logScroll+visible)
	for _, m := range items[g.logScroll:end] {
		fmt.Fprintf(&b, "%s\n  %s, %s\n\n", wrap(m.Sentence, 100), m.Title, m.Author)
	}
	g.drawText(screen, b.String())
}

func (g *game) drawText(screen *ebiten.Image, s string) {
	vector.DrawFilledRect(screen, 24, 24, float32(g.width-48), float32(g.height-48), panelColor, false)
	ebitenutil.DebugPrintAt(screen, s, 36, 36)
}

func (g *game) drawSplash(screen *ebiten.Image) {
	msg := fmt.Sprintf("Wisdom\n\n%d orbs loaded.\n\nClick, tap or press Space to start.", g.co.State.Scene.Len())
	ebitenutil.DebugPrintAt(screen, msg, g.width/2-120, g.height/2-2*lineHeight)
}

// wrap breaks s into lines of at most n runes at spaces.
func wrap(s string, n int) string {
	words := strings.Fields(s)
	var b strings.Builder
	line := 0
	for _, w := range words {
		l := len([]rune(w))
		if line > 0 && line+1+l > n {
			b.WriteByte('\n')
			line = 0
		} else if line > 0 {
			b.WriteByte(' ')
			line++
		}
		b.WriteString(w)
		line += l
	}
	return b.String()
}
