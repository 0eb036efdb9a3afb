package main

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/driver/mobile"
	"fyne.io/fyne/v2/widget"

	"mouseparallax/pkg/config"
	"mouseparallax/pkg/scene"
)

// sceneView shows the scene's latest frame stretched over the widget and
// feeds mouse and touch positions back to it in viewport coordinates.
type sceneView struct {
	widget.BaseWidget

	scene    *scene.Scene
	viewport config.Viewport
	img      *canvas.Image
	onMove   func(x, y float64)
}

var (
	_ desktop.Hoverable = (*sceneView)(nil)
	_ fyne.Draggable    = (*sceneView)(nil)
	_ mobile.Touchable  = (*sceneView)(nil)
)

func newSceneView(s *scene.Scene, vp config.Viewport, onMove func(x, y float64)) *sceneView {
	v := &sceneView{scene: s, viewport: vp, onMove: onMove}
	v.img = canvas.NewImageFromImage(s.Image(false))
	v.img.FillMode = canvas.ImageFillStretch
	v.ExtendBaseWidget(v)
	return v
}

func (v *sceneView) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(v.img)
}

func (v *sceneView) MinSize() fyne.Size {
	return fyne.NewSize(float32(v.viewport.Width), float32(v.viewport.Height))
}

// toViewport maps a widget position to scene coordinates.
func (v *sceneView) toViewport(p fyne.Position) (float64, float64) {
	size := v.Size()
	if size.Width <= 0 || size.Height <= 0 {
		return float64(p.X), float64(p.Y)
	}
	return float64(p.X) * v.viewport.Width / float64(size.Width),
		float64(p.Y) * v.viewport.Height / float64(size.Height)
}

func (v *sceneView) redraw(x, y float64) {
	v.img.Image = v.scene.Image(false)
	v.img.Refresh()
	if v.onMove != nil {
		v.onMove(x, y)
	}
}

func (v *sceneView) MouseIn(ev *desktop.MouseEvent) {
	v.MouseMoved(ev)
}

func (v *sceneView) MouseMoved(ev *desktop.MouseEvent) {
	x, y := v.toViewport(ev.Position)
	v.scene.Dispatch(x, y)
	v.redraw(x, y)
}

func (v *sceneView) MouseOut() {}

// Dragged keeps the layers following the pointer while a button is held
// or a finger slides, since the driver stops sending MouseMoved then.
func (v *sceneView) Dragged(ev *fyne.DragEvent) {
	x, y := v.toViewport(ev.Position)
	v.scene.Touch(x, y)
	v.redraw(x, y)
}

func (v *sceneView) DragEnd() {}

// tick delivers events the throttle held back and repaints if any landed.
func (v *sceneView) tick() {
	if v.scene.Tick() > 0 {
		v.img.Image = v.scene.Image(false)
		v.img.Refresh()
	}
}

func (v *sceneView) TouchDown(ev *mobile.TouchEvent) {
	x, y := v.toViewport(ev.Position)
	v.scene.Touch(x, y)
	v.redraw(x, y)
}

func (v *sceneView) TouchUp(*mobile.TouchEvent) {}

func (v *sceneView) TouchCancel(*mobile.TouchEvent) {}
