package render

import (
	"image"
	"io"
	"strconv"
	"strings"

	"github.com/fogleman/gg"

	"mouseparallax/pkg/css"
	"mouseparallax/pkg/layout"
)

type Renderer struct {
	context *gg.Context
}

func NewRenderer(width, height int) *Renderer {
	return &Renderer{context: gg.NewContext(width, height)}
}

// Render paints boxes back to front, in stacking order.
func (r *Renderer) Render(boxes []*layout.Box) {
	r.context.SetRGB(1, 1, 1)
	r.context.Clear()

	for _, box := range layout.PaintOrder(boxes) {
		r.drawBox(box)
	}
}

func (r *Renderer) drawBox(box *layout.Box) {
	if box.Style == nil || box.Width <= 0 || box.Height <= 0 {
		return
	}
	opacity := getOpacity(box.Style)

	if bgColor, ok := box.Style.Get("background-color"); ok {
		if color, ok := css.ParseColor(bgColor); ok && color.A > 0 {
			r.setColor(color, opacity)
			if radius, ok := box.Style.GetLength("border-radius"); ok && radius > 0 {
				r.context.DrawRoundedRectangle(box.X, box.Y, box.Width, box.Height, radius)
			} else {
				r.context.DrawRectangle(box.X, box.Y, box.Width, box.Height)
			}
			r.context.Fill()
		}
	}

	r.drawBorder(box, opacity)
}

// drawBorder strokes a uniform border from border-width and border-color,
// inside the box edge.
func (r *Renderer) drawBorder(box *layout.Box, opacity float64) {
	width, ok := box.Style.GetLength("border-width")
	if !ok || width <= 0 {
		return
	}
	colorVal, ok := box.Style.Get("border-color")
	if !ok {
		colorVal = "black"
	}
	color, ok := css.ParseColor(colorVal)
	if !ok || color.A == 0 {
		return
	}
	r.setColor(color, opacity)
	r.context.SetLineWidth(width)
	half := width / 2
	r.context.DrawRectangle(box.X+half, box.Y+half, box.Width-width, box.Height-width)
	r.context.Stroke()
}

// DrawPointer marks a pointer position with a small ring.
func (r *Renderer) DrawPointer(x, y float64) {
	r.context.SetRGBA(0.85, 0.1, 0.1, 0.9)
	r.context.SetLineWidth(2)
	r.context.DrawCircle(x, y, 6)
	r.context.Stroke()
}

func (r *Renderer) setColor(c css.Color, opacity float64) {
	r.context.SetRGBA(
		float64(c.R)/255.0,
		float64(c.G)/255.0,
		float64(c.B)/255.0,
		c.A*opacity,
	)
}

// getOpacity reads opacity as a number in [0, 1]; anything else is 1.
func getOpacity(s *css.Style) float64 {
	v, ok := s.Get("opacity")
	if !ok {
		return 1
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
	if err != nil || f > 1 {
		return 1
	}
	if f < 0 {
		return 0
	}
	return f
}

func (r *Renderer) SavePNG(filename string) error {
	return r.context.SavePNG(filename)
}

// EncodePNG writes the current frame to w.
func (r *Renderer) EncodePNG(w io.Writer) error {
	return r.context.EncodePNG(w)
}

// Image returns the current frame.
func (r *Renderer) Image() image.Image {
	return r.context.Image()
}
