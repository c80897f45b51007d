package ui

import (
	"LetsGetSketchy/internal/board"
	"LetsGetSketchy/internal/config"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
)

// Content lays out the toolbar, the board and its status line.
func Content(b *board.Board, win fyne.Window, cfg config.Config) fyne.CanvasObject {
	bw := NewBoardWidget(b)
	toolbar := NewToolbar(bw, win, cfg.Stickers.Glyphs, cfg.Export.File)
	return container.NewBorder(toolbar, bw.statusBar, nil, nil, container.NewCenter(bw))
}

func RunApp(cfg config.Config, b *board.Board) {
	myApp := app.New()
	myWindow := myApp.NewWindow("Let's Get Sketchy")
	myWindow.Resize(fyne.NewSize(1024, 600))

	myWindow.SetContent(Content(b, myWindow, cfg))
	myWindow.ShowAndRun()
}
