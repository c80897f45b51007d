package ui

import (
	"fmt"
	"log"

	"LetsGetSketchy/internal/board"
	"LetsGetSketchy/internal/state"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"
)

// BoardWidget shows the board's visible surface and feeds it pointer input.
type BoardWidget struct {
	widget.BaseWidget
	board     *board.Board
	image     *canvas.Image
	statusBar *widget.Label

	pressed bool
	inside  bool
}

var _ fyne.Widget = (*BoardWidget)(nil)
var _ fyne.Draggable = (*BoardWidget)(nil)
var _ desktop.Mouseable = (*BoardWidget)(nil)
var _ desktop.Hoverable = (*BoardWidget)(nil)

func NewBoardWidget(b *board.Board) *BoardWidget {
	w := &BoardWidget{
		board:     b,
		image:     canvas.NewImageFromImage(b.Frame()),
		statusBar: widget.NewLabel("Ready"),
	}
	w.image.FillMode = canvas.ImageFillStretch
	w.image.ScaleMode = canvas.ImageScalePixels
	w.ExtendBaseWidget(w)

	b.Subscribe(state.EventDrawingChanged, w.image.Refresh)
	b.Subscribe(state.EventToolMoved, w.image.Refresh)
	return w
}

// SetStatus shows text under the board.
func (w *BoardWidget) SetStatus(text string) {
	w.statusBar.SetText(text)
}

// SaveToFile exports the committed marks as PNG into writer.
func (w *BoardWidget) SaveToFile(writer fyne.URIWriteCloser) {
	defer func() {
		if err := writer.Close(); err != nil {
			log.Printf("[UI] error closing %s: %v", writer.URI(), err)
		}
	}()

	if err := w.board.ExportPNG(writer); err != nil {
		log.Printf("[UI] export to %s failed: %v", writer.URI(), err)
		w.SetStatus("Error saving image")
		return
	}
	w.SetStatus(fmt.Sprintf("Saved %s", writer.URI().Name()))
}

// toSurface maps a widget position to surface pixels.
func (w *BoardWidget) toSurface(pos fyne.Position) (state.Point, bool) {
	size := w.Size()
	inside := pos.X >= 0 && pos.Y >= 0 && pos.X < size.Width && pos.Y < size.Height
	if size.Width <= 0 || size.Height <= 0 {
		return state.Point{X: float64(pos.X), Y: float64(pos.Y)}, inside
	}
	sw, sh := w.board.Surface().Size()
	return state.Point{
		X: float64(pos.X) * float64(sw) / float64(size.Width),
		Y: float64(pos.Y) * float64(sh) / float64(size.Height),
	}, inside
}

func (w *BoardWidget) MouseDown(e *desktop.MouseEvent) {
	if e.Button != desktop.MouseButtonPrimary {
		return
	}
	p, _ := w.toSurface(e.Position)
	w.pressed = true
	w.board.PointerDown(p)
}

func (w *BoardWidget) MouseUp(e *desktop.MouseEvent) {
	if e.Button != desktop.MouseButtonPrimary {
		return
	}
	w.release()
}

func (w *BoardWidget) DragEnd() { w.release() }

func (w *BoardWidget) release() {
	if !w.pressed {
		return
	}
	w.pressed = false
	w.board.PointerUp()
}

// Dragged keeps reporting positions outside the widget while the button is
// held; leaving the bounds is treated like the pointer leaving.
func (w *BoardWidget) Dragged(e *fyne.DragEvent) {
	p, inside := w.toSurface(e.Position)
	switch {
	case !inside && w.inside:
		w.MouseOut()
	case inside && !w.inside:
		w.inside = true
		w.board.PointerEnter(p)
	case inside:
		w.board.PointerMove(p, w.pressed)
	}
}

func (w *BoardWidget) MouseIn(e *desktop.MouseEvent) {
	p, _ := w.toSurface(e.Position)
	w.inside = true
	w.board.PointerEnter(p)
}

// MouseMoved only tracks hover. Motion with the button held arrives through
// Dragged.
func (w *BoardWidget) MouseMoved(e *desktop.MouseEvent) {
	if w.pressed {
		return
	}
	p, _ := w.toSurface(e.Position)
	w.board.PointerMove(p, false)
}

func (w *BoardWidget) MouseOut() {
	w.inside = false
	w.board.PointerLeave()
}

func (w *BoardWidget) CreateRenderer() fyne.WidgetRenderer {
	return &boardWidgetRenderer{board: w}
}

type boardWidgetRenderer struct {
	board *BoardWidget
}

func (r *boardWidgetRenderer) Objects() []fyne.CanvasObject {
	return []fyne.CanvasObject{r.board.image}
}

func (r *boardWidgetRenderer) Layout(size fyne.Size) {
	r.board.image.Resize(size)
}

func (r *boardWidgetRenderer) MinSize() fyne.Size {
	w, h := r.board.board.Surface().Size()
	return fyne.NewSize(float32(w), float32(h))
}

func (r *boardWidgetRenderer) Refresh() { r.board.image.Refresh() }
func (r *boardWidgetRenderer) Destroy() {}
