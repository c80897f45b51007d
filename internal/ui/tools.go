package ui

import (
	"fmt"
	"image/color"
	"log"
	"strings"

	"LetsGetSketchy/internal/board"
	"LetsGetSketchy/internal/state"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
)

// palette is the row of quick colors next to the picker.
var palette = []color.Color{
	color.Black,
	color.NRGBA{R: 255, A: 255},         // Red
	color.NRGBA{G: 255, A: 255},         // Green
	color.NRGBA{B: 255, A: 255},         // Blue
	color.NRGBA{R: 255, G: 255, A: 255}, // Yellow
}

// --- Custom Widget for Color Swatches ---
type colorSwatch struct {
	widget.BaseWidget
	Color    color.Color
	OnTapped func(color.Color)
}

func newColorSwatch(c color.Color, tapped func(color.Color)) *colorSwatch {
	s := &colorSwatch{Color: c, OnTapped: tapped}
	s.ExtendBaseWidget(s)
	return s
}

func (s *colorSwatch) CreateRenderer() fyne.WidgetRenderer {
	rect := canvas.NewRectangle(s.Color)
	rect.SetMinSize(fyne.NewSize(32, 32))

	border := canvas.NewRectangle(color.Transparent)
	border.StrokeColor = color.Gray{Y: 150}
	border.StrokeWidth = 1

	return widget.NewSimpleRenderer(container.NewStack(rect, border))
}

func (s *colorSwatch) Tapped(_ *fyne.PointEvent) {
	if s.OnTapped != nil {
		s.OnTapped(s.Color)
	}
}

// toolbar holds the controls that drive one board.
type toolbar struct {
	board  *board.Board
	canvas *BoardWidget
	window fyne.Window
	file   string

	thin, thick   *widget.Button
	colorPicker   *widget.Button
	stickers      *fyne.Container
	addSticker    *widget.Button
	rotation      *widget.Slider
	rotationLabel *widget.Label
	actions       *widget.Toolbar
}

func newToolbar(b *board.Board, bw *BoardWidget, win fyne.Window, glyphs []string, exportFile string) *toolbar {
	t := &toolbar{board: b, canvas: bw, window: win, file: exportFile}

	t.thin = widget.NewButton("Thin", func() { b.SelectBrush(state.BrushThin) })
	t.thick = widget.NewButton("Thick", func() { b.SelectBrush(state.BrushThick) })

	t.colorPicker = widget.NewButtonWithIcon("", theme.ColorPaletteIcon(), t.pickColor)

	t.stickers = container.NewHBox()
	for _, g := range glyphs {
		t.appendSticker(g)
	}
	t.addSticker = widget.NewButtonWithIcon("Add Sticker", theme.ContentAddIcon(), t.promptSticker)

	t.rotationLabel = widget.NewLabel(formatDegrees(0))
	t.rotation = widget.NewSlider(0, 360)
	t.rotation.Step = 1
	t.rotation.OnChanged = func(deg float64) {
		t.rotationLabel.SetText(formatDegrees(deg))
		b.SetRotation(deg)
	}

	t.actions = widget.NewToolbar(
		widget.NewToolbarAction(theme.ContentUndoIcon(), b.Undo),
		widget.NewToolbarAction(theme.ContentRedoIcon(), b.Redo),
		widget.NewToolbarAction(theme.DeleteIcon(), b.Clear),
		widget.NewToolbarSeparator(),
		widget.NewToolbarAction(theme.DocumentSaveIcon(), t.save),
	)
	return t
}

func formatDegrees(deg float64) string {
	return fmt.Sprintf("%3.0f°", deg)
}

func (t *toolbar) appendSticker(glyph string) {
	t.stickers.Add(widget.NewButton(glyph, func() { t.board.SelectSticker(glyph) }))
}

func (t *toolbar) onColor(c color.Color) {
	t.board.SelectColor(c)
}

func (t *toolbar) pickColor() {
	picker := dialog.NewColorPicker("Brush color", "Pick a brush color", func(c color.Color) {
		t.onColor(c)
	}, t.window)
	picker.Advanced = true
	picker.Show()
}

// addGlyph adds a sticker button for text and selects it. Blank text is
// ignored.
func (t *toolbar) addGlyph(text string) bool {
	glyph := strings.TrimSpace(text)
	if glyph == "" {
		return false
	}
	t.appendSticker(glyph)
	t.board.SelectSticker(glyph)
	log.Printf("[UI] added sticker %q", glyph)
	return true
}

func (t *toolbar) promptSticker() {
	entry := widget.NewEntry()
	entry.SetPlaceHolder("🌈")
	items := []*widget.FormItem{widget.NewFormItem("Sticker", entry)}
	dialog.ShowForm("Add Sticker", "Add", "Cancel", items, func(ok bool) {
		if ok {
			t.addGlyph(entry.Text)
		}
	}, t.window)
}

func (t *toolbar) save() {
	d := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil {
			dialog.ShowError(err, t.window)
			return
		}
		if writer == nil {
			return
		}
		t.canvas.SaveToFile(writer)
	}, t.window)
	d.SetFileName(t.file)
	d.Show()
}

func (t *toolbar) object() fyne.CanvasObject {
	colorBox := container.NewHBox()
	for _, c := range palette {
		colorBox.Add(newColorSwatch(c, t.onColor))
	}
	colorBox.Add(t.colorPicker)

	sliderContainer := container.New(layout.NewGridWrapLayout(fyne.NewSize(150, 35)), t.rotation)

	return container.NewHBox(
		widget.NewLabel("Brush:"),
		t.thin,
		t.thick,
		widget.NewSeparator(),
		widget.NewLabel("Color:"),
		colorBox,
		widget.NewSeparator(),
		widget.NewLabel("Stickers:"),
		t.stickers,
		t.addSticker,
		widget.NewSeparator(),
		widget.NewLabel("Rotate:"),
		sliderContainer,
		t.rotationLabel,
		layout.NewSpacer(),
		t.actions,
	)
}

// NewToolbar builds the controls for bw's board.
func NewToolbar(bw *BoardWidget, win fyne.Window, glyphs []string, exportFile string) fyne.CanvasObject {
	return newToolbar(bw.board, bw, win, glyphs, exportFile).object()
}
