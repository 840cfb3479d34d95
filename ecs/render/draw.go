package render

import (
	"image"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/customgravity/ecs"
	"github.com/milk9111/customgravity/ecs/component"
)

const (
	circleSegments = 24
	dotSize        = 4
)

var (
	whiteImage    = ebiten.NewImage(3, 3)
	whiteSubImage = whiteImage.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image)
)

func init() {
	whiteImage.Fill(color.White)
}

// View maps world coordinates (y up, origin at the screen center) to screen
// pixels.
type View struct {
	Width  float64
	Height float64
	Zoom   float64
}

func (v View) ToScreen(p cp.Vector) (float64, float64) {
	zoom := v.Zoom
	if zoom == 0 {
		zoom = 1
	}
	return v.Width/2 + p.X*zoom, v.Height/2 - p.Y*zoom
}

func (v View) scale() float64 {
	if v.Zoom == 0 {
		return 1
	}
	return v.Zoom
}

// DrawBodies fills every shape in the space with its entity's Tint.
func DrawBodies(screen *ebiten.Image, space *cp.Space, w *ecs.World, view View) {
	if screen == nil || space == nil {
		return
	}
	cp.DrawSpace(space, &shapeDrawer{screen: screen, world: w, view: view})
}

// DrawDebug outlines every shape and marks body centers.
func DrawDebug(screen *ebiten.Image, space *cp.Space, view View) {
	if screen == nil || space == nil {
		return
	}
	cp.DrawSpace(space, &shapeDrawer{screen: screen, view: view, outlineOnly: true})
	space.EachBody(func(b *cp.Body) {
		if b.GetType() != cp.BODY_DYNAMIC {
			return
		}
		d := &shapeDrawer{screen: screen, view: view}
		d.DrawDot(dotSize, b.Position(), debugOutline, nil)
	})
}

var (
	debugOutline = cp.FColor{R: 0.2, G: 1, B: 0.2, A: 0.9}
	defaultFill  = cp.FColor{R: 1, G: 1, B: 1, A: 1}
)

type shapeDrawer struct {
	screen      *ebiten.Image
	world       *ecs.World
	view        View
	outlineOnly bool
}

func (d *shapeDrawer) DrawCircle(pos cp.Vector, angle, radius float64, outline, fill cp.FColor, data interface{}) {
	if radius <= 0 {
		return
	}
	x, y := d.view.ToScreen(pos)
	r := radius * d.view.scale()
	if !d.outlineOnly {
		vector.FillCircle(d.screen, float32(x), float32(y), float32(r), toNRGBA(fill), true)
	}
	d.drawCircle(pos, radius, outline)
	end := cp.Vector{X: pos.X + math.Cos(angle)*radius, Y: pos.Y + math.Sin(angle)*radius}
	d.drawLine(pos, end, outline)
}

func (d *shapeDrawer) DrawSegment(a, b cp.Vector, fill cp.FColor, data interface{}) {
	d.drawLine(a, b, fill)
}

func (d *shapeDrawer) DrawFatSegment(a, b cp.Vector, radius float64, outline, fill cp.FColor, data interface{}) {
	if !d.outlineOnly && radius > 0 {
		ax, ay := d.view.ToScreen(a)
		bx, by := d.view.ToScreen(b)
		r := radius * d.view.scale()
		c := toNRGBA(fill)
		vector.StrokeLine(d.screen, float32(ax), float32(ay), float32(bx), float32(by), float32(2*r), c, true)
		vector.FillCircle(d.screen, float32(ax), float32(ay), float32(r), c, true)
		vector.FillCircle(d.screen, float32(bx), float32(by), float32(r), c, true)
	}
	d.drawLine(a, b, outline)
	if radius > 0 {
		d.drawCircle(a, radius, outline)
		d.drawCircle(b, radius, outline)
	}
}

func (d *shapeDrawer) DrawPolygon(count int, verts []cp.Vector, radius float64, outline, fill cp.FColor, data interface{}) {
	if count <= 0 {
		return
	}
	if !d.outlineOnly {
		d.fillConvex(verts[:count], fill)
	}
	d.drawPolygon(verts[:count], outline)
}

func (d *shapeDrawer) DrawDot(size float64, pos cp.Vector, fill cp.FColor, data interface{}) {
	if size <= 0 {
		size = dotSize
	}
	half := size / 2 / d.view.scale()
	d.drawLine(cp.Vector{X: pos.X - half, Y: pos.Y}, cp.Vector{X: pos.X + half, Y: pos.Y}, fill)
	d.drawLine(cp.Vector{X: pos.X, Y: pos.Y - half}, cp.Vector{X: pos.X, Y: pos.Y + half}, fill)
}

func (d *shapeDrawer) Flags() uint {
	return cp.DRAW_SHAPES
}

func (d *shapeDrawer) OutlineColor() cp.FColor {
	if d.outlineOnly {
		return debugOutline
	}
	return cp.FColor{R: 0, G: 0, B: 0, A: 0.35}
}

// ShapeColor looks up the Tint of the entity stored in the body's UserData.
func (d *shapeDrawer) ShapeColor(shape *cp.Shape, data interface{}) cp.FColor {
	if d.world == nil || shape == nil || shape.Body() == nil {
		return defaultFill
	}
	e, ok := shape.Body().UserData.(ecs.Entity)
	if !ok {
		return defaultFill
	}
	tint, ok := ecs.Get(d.world, e, component.TintComponent)
	if !ok {
		return defaultFill
	}
	return toFColor(tint.Color)
}

func (d *shapeDrawer) ConstraintColor() cp.FColor {
	return cp.FColor{R: 1, G: 0.5, B: 0.1, A: 0.9}
}

func (d *shapeDrawer) CollisionPointColor() cp.FColor {
	return cp.FColor{R: 1, G: 0.2, B: 0.2, A: 0.9}
}

func (d *shapeDrawer) Data() interface{} {
	return nil
}

func (d *shapeDrawer) fillConvex(verts []cp.Vector, fill cp.FColor) {
	if len(verts) < 3 {
		return
	}
	r, g, b, a := fill.R, fill.G, fill.B, fill.A
	vs := make([]ebiten.Vertex, len(verts))
	for i, v := range verts {
		x, y := d.view.ToScreen(v)
		vs[i] = ebiten.Vertex{
			DstX:   float32(x),
			DstY:   float32(y),
			SrcX:   1,
			SrcY:   1,
			ColorR: r,
			ColorG: g,
			ColorB: b,
			ColorA: a,
		}
	}
	// Chipmunk polygons are convex, so a fan covers them.
	is := make([]uint16, 0, 3*(len(verts)-2))
	for i := 1; i < len(verts)-1; i++ {
		is = append(is, 0, uint16(i), uint16(i+1))
	}
	op := &ebiten.DrawTrianglesOptions{AntiAlias: true}
	d.screen.DrawTriangles(vs, is, whiteSubImage, op)
}

func (d *shapeDrawer) drawLine(a, b cp.Vector, c cp.FColor) {
	x1, y1 := d.view.ToScreen(a)
	x2, y2 := d.view.ToScreen(b)
	ebitenutil.DrawLine(d.screen, x1, y1, x2, y2, toNRGBA(c))
}

func (d *shapeDrawer) drawPolygon(verts []cp.Vector, c cp.FColor) {
	for i := 0; i < len(verts); i++ {
		d.drawLine(verts[i], verts[(i+1)%len(verts)], c)
	}
}

func (d *shapeDrawer) drawCircle(center cp.Vector, radius float64, c cp.FColor) {
	if radius <= 0 {
		return
	}
	points := make([]cp.Vector, 0, circleSegments)
	for i := 0; i < circleSegments; i++ {
		t := (2 * math.Pi) * (float64(i) / float64(circleSegments))
		points = append(points, cp.Vector{X: center.X + math.Cos(t)*radius, Y: center.Y + math.Sin(t)*radius})
	}
	d.drawPolygon(points, c)
}

func toNRGBA(c cp.FColor) color.NRGBA {
	return color.NRGBA{
		R: uint8(clamp01(c.R) * 255),
		G: uint8(clamp01(c.G) * 255),
		B: uint8(clamp01(c.B) * 255),
		A: uint8(clamp01(c.A) * 255),
	}
}

func toFColor(c color.NRGBA) cp.FColor {
	return cp.FColor{
		R: float32(c.R) / 255,
		G: float32(c.G) / 255,
		B: float32(c.B) / 255,
		A: float32(c.A) / 255,
	}
}

func clamp01(v float32) float32 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
