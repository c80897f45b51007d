// Package board is the sketch session: it owns the history, the tool
// configuration and the cursor preview, turns pointer input into marks, and
// repaints the visible surface whenever the bus reports a change.
package board

import (
	"fmt"
	"image/color"
	"log"

	"LetsGetSketchy/internal/config"
	"LetsGetSketchy/internal/export"
	"LetsGetSketchy/internal/paint"
	"LetsGetSketchy/internal/state"
)

// Board is one sketch session bound to one visible surface.
//
// A Board is not safe for concurrent use; all calls are expected from a
// single event loop.
type Board struct {
	surface paint.Surface
	fonts   *paint.Fonts
	history *state.History
	tools   *state.Toolbox
	cursor  state.Cursor
	bus     *state.Bus
	active  state.Drawable // mark under the pressed pointer

	exportOpts export.Options
	redraws    int
}

// New binds a session to surface. Both drawing-changed and tool-moved are
// wired to Redraw before anything else can subscribe.
func New(surface paint.Surface, fonts *paint.Fonts, exportOpts export.Options) *Board {
	if surface == nil {
		panic("board: nil surface")
	}
	w, h := surface.Size()
	bus := state.NewBus()
	b := &Board{
		surface:    surface,
		fonts:      fonts,
		history:    state.NewHistory(),
		tools:      state.NewToolbox(),
		cursor:     state.NewCursor(state.CursorBrush, state.OffSurface(w, h), bus),
		bus:        bus,
		exportOpts: exportOpts,
	}
	bus.Subscribe(state.EventDrawingChanged, b.Redraw)
	bus.Subscribe(state.EventToolMoved, b.Redraw)
	return b
}

// FromConfig builds the fonts and the visible raster described by cfg.
func FromConfig(cfg config.Config) (*Board, *paint.Raster, error) {
	fonts, err := paint.LoadFonts(cfg.Font.Path, cfg.Font.Size, cfg.Font.Fallbacks...)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load fonts: %w", err)
	}
	raster := paint.NewRaster(cfg.Canvas.Width, cfg.Canvas.Height, fonts)
	opts := export.Options{
		Width:      cfg.Export.Width,
		Height:     cfg.Export.Height,
		Scale:      cfg.Export.Scale,
		Background: color.White,
	}
	b := New(raster, fonts, opts)
	b.Redraw()
	return b, raster, nil
}

// Subscribe registers h after the board's own redraw handler, so h always
// sees a freshly painted surface.
func (b *Board) Subscribe(e state.Event, h state.Handler) {
	b.bus.Subscribe(e, h)
}

func (b *Board) History() *state.History { return b.history }
func (b *Board) Cursor() state.Cursor    { return b.cursor }
func (b *Board) Surface() paint.Surface  { return b.surface }

// Tools returns a copy of the current tool configuration.
func (b *Board) Tools() state.Toolbox { return *b.tools }

// Redraws counts completed repaints.
func (b *Board) Redraws() int { return b.redraws }

// PointerDown starts a new mark at p and commits it, discarding redo.
func (b *Board) PointerDown(p state.Point) {
	d := state.NewDrawable(p, b.tools)
	b.active = d
	b.history.BeginNew(d)
	log.Printf("[BOARD] new %s %s at %s", d.Kind(), d.ID(), p)
	b.bus.Publish(state.EventDrawingChanged)
}

// PointerMove extends the active mark while the primary button is held, and
// always moves the cursor preview.
func (b *Board) PointerMove(p state.Point, pressed bool) {
	if pressed && b.active != nil {
		b.active.Extend(p)
		b.bus.Publish(state.EventDrawingChanged)
	}
	b.cursor.Moved(p)
}

// PointerUp finishes the active mark. It is never changed again.
func (b *Board) PointerUp() {
	b.active = nil
}

func (b *Board) PointerEnter(p state.Point) {
	b.cursor.Moved(p)
}

// PointerLeave hides the preview and ends any drag in progress.
func (b *Board) PointerLeave() {
	b.active = nil
	b.cursor.Left()
}

// SelectBrush switches to the brush tool with width w.
func (b *Board) SelectBrush(w state.BrushWidth) {
	b.tools.SelectBrush(w)
	b.switchCursor()
}

// SelectColor changes the brush color. The active tool is unchanged.
func (b *Board) SelectColor(c color.Color) {
	b.tools.SelectColor(c)
	b.bus.Publish(state.EventToolMoved)
}

// SelectSticker switches to the sticker tool with glyph.
func (b *Board) SelectSticker(glyph string) {
	b.tools.SelectSticker(glyph)
	b.switchCursor()
}

// SetRotation sets the sticker rotation in degrees. Placed stamps keep the
// rotation they were created with.
func (b *Board) SetRotation(degrees float64) {
	b.tools.SetRotation(degrees)
	b.bus.Publish(state.EventToolMoved)
}

func (b *Board) switchCursor() {
	kind := state.CursorFor(b.tools.Tool)
	if kind != b.cursor.Kind() {
		b.cursor = state.SwitchCursor(kind, b.cursor)
		log.Printf("[BOARD] cursor is now %s", kind)
	}
	b.bus.Publish(state.EventToolMoved)
}

// Undo hides the newest mark. Nothing happens when there is none.
func (b *Board) Undo() {
	b.active = nil
	if b.history.Undo() {
		b.bus.Publish(state.EventDrawingChanged)
	}
}

// Redo restores the newest undone mark. Nothing happens when there is none.
func (b *Board) Redo() {
	b.active = nil
	if b.history.Redo() {
		b.bus.Publish(state.EventDrawingChanged)
	}
}

// Clear drops every mark, including the redo stack.
func (b *Board) Clear() {
	b.active = nil
	b.history.Clear()
	b.bus.Publish(state.EventDrawingChanged)
}
