// SheetQuote is a desktop app for instant sheet-metal part quotes.
//
// A cross-platform desktop application that turns a part template,
// dimensions and material choice into a live price with quantity tiers,
// and exports quote sheets, DXF profiles and cutting programs.
//
// Build:
//   go build -o sheetquote ./cmd/sheetquote
//
// Cross-compile:
//   GOOS=windows GOARCH=amd64 go build -o sheetquote.exe ./cmd/sheetquote
//   GOOS=darwin  GOARCH=amd64 go build -o sheetquote-darwin ./cmd/sheetquote
//
// Using fyne-cross (recommended for proper packaging):
//   go install github.com/fyne-io/fyne-cross@latest
//   fyne-cross windows -arch=amd64
//   fyne-cross darwin  -arch=amd64,arm64

package main

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"

	"github.com/piwi3910/SheetQuote/internal/logger"
	"github.com/piwi3910/SheetQuote/internal/ui"
)

func main() {
	logger.Init()

	application := app.NewWithID("com.piwi3910.sheetquote")
	window := application.NewWindow("SheetQuote — Instant Sheet-Metal Quotes")

	appUI := ui.NewApp(application, window)
	appUI.SetupMenus()
	window.SetContent(appUI.Build())
	window.Resize(fyne.NewSize(1200, 780))
	window.CenterOnScreen()
	window.ShowAndRun()
}
