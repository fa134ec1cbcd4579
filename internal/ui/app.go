package ui

import (
	"log/slog"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	fynetooltip "github.com/dweymouth/fyne-tooltip"
	ttwidget "github.com/dweymouth/fyne-tooltip/widget"

	"github.com/piwi3910/SheetQuote/internal/engine"
	"github.com/piwi3910/SheetQuote/internal/model"
	"github.com/piwi3910/SheetQuote/internal/project"
	"github.com/piwi3910/SheetQuote/internal/ui/widgets"
)

// App holds all application state and UI references.
type App struct {
	fyneApp fyne.App
	window  fyne.Window

	config  model.AppConfig
	catalog model.Catalog
	pricer  *engine.Pricer
	presets project.PresetStore
	theme   *SheetQuoteTheme

	// The live quote: the current snapshot and its evaluation.
	history *History
	current Snapshot
	quote   model.Quote
	label   string

	// syncing suppresses change callbacks while the form mirrors a snapshot.
	syncing bool
	hovered model.Template

	form    quoteForm
	preview *widgets.PartPreview
	summary *fyne.Container

	pdfButton     *ttwidget.Button
	cutFileButton *ttwidget.Button
	compareButton *ttwidget.Button
	undoItem      *fyne.MenuItem
	redoItem      *fyne.MenuItem
}

// NewApp loads the saved configuration, price catalog, custom cutting
// profiles and part presets. Load failures fall back to defaults and are logged.
func NewApp(fyneApp fyne.App, window fyne.Window) *App {
	cfg, err := project.LoadDefaultAppConfig()
	if err != nil {
		slog.Warn("failed to load config, using defaults", "error", err)
	}
	catalog, err := project.ResolveCatalog(cfg.CatalogPath)
	if err != nil {
		slog.Warn("failed to load catalog, using built-in prices", "error", err)
	}
	if _, err := project.LoadCustomProfilesFromDefault(); err != nil {
		slog.Warn("failed to load custom cutting profiles", "error", err)
	}
	presets := project.NewPresetStore()
	if path, err := project.DefaultPresetsPath(); err == nil {
		if presets, err = project.LoadPresets(path); err != nil {
			slog.Warn("failed to load part presets", "error", err)
			presets = project.NewPresetStore()
		}
	}

	a := &App{
		fyneApp: fyneApp,
		window:  window,
		config:  cfg,
		catalog: catalog,
		pricer:  engine.New(catalog),
		presets: presets,
		history: NewHistory(),
		theme:   ThemeForSetting(cfg.Theme),
	}
	fyneApp.Settings().SetTheme(a.theme)

	a.current = MakeSnapshot(cfg.ApplyToRequest(model.NewQuoteRequest()), "")
	a.quote = a.pricer.Evaluate(a.current.Request)
	return a
}

// SetupMenus creates the native menu bar for the application.
func (a *App) SetupMenus() {
	undoKey := &desktop.CustomShortcut{KeyName: fyne.KeyZ, Modifier: fyne.KeyModifierShortcutDefault}
	redoKey := &desktop.CustomShortcut{KeyName: fyne.KeyY, Modifier: fyne.KeyModifierShortcutDefault}

	a.undoItem = fyne.NewMenuItem("Undo", a.undo)
	a.undoItem.Shortcut = undoKey
	a.redoItem = fyne.NewMenuItem("Redo", a.redo)
	a.redoItem.Shortcut = redoKey

	fileMenu := fyne.NewMenu("File",
		fyne.NewMenuItem("New Quote", a.newQuote),
		fyne.NewMenuItem("Import Part from DXF...", a.importPartDXF),
		fyne.NewMenuItem("Batch Quote from CSV/Excel...", a.batchQuote),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Export Quote Sheet (PDF)...", a.exportPDF),
		fyne.NewMenuItem("Export Cut Profile (DXF)...", a.exportDXF),
		fyne.NewMenuItem("Export Cutting Program (G-code)...", a.exportGCode),
		fyne.NewMenuItem("Export Preview (SVG)...", a.exportSVG),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Save Part Preset...", a.savePresetDialog),
		fyne.NewMenuItem("Load Part Preset...", a.loadPresetDialog),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Quit", func() { a.window.Close() }),
	)
	editMenu := fyne.NewMenu("Edit", a.undoItem, a.redoItem)
	toolsMenu := fyne.NewMenu("Tools",
		fyne.NewMenuItem("Compare Materials...", a.compareMaterials),
		fyne.NewMenuItem("Price Catalog...", a.showCatalogDialog),
		fyne.NewMenuItem("Cutting Settings...", a.showCutSettingsDialog),
		fyne.NewMenuItem("Cutting Profiles...", func() { a.showProfileManager(nil) }),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Preferences...", a.showSettingsDialog),
		fyne.NewMenuItem("Backup / Restore...", a.showImportExportDialog),
	)
	helpMenu := fyne.NewMenu("Help",
		fyne.NewMenuItem("About", a.showAboutDialog),
	)

	a.window.SetMainMenu(fyne.NewMainMenu(fileMenu, editMenu, toolsMenu, helpMenu))
	a.window.Canvas().AddShortcut(undoKey, func(fyne.Shortcut) { a.undo() })
	a.window.Canvas().AddShortcut(redoKey, func(fyne.Shortcut) { a.redo() })
	a.refreshHistoryMenu()
}

func (a *App) showAboutDialog() {
	dialog.ShowInformation(
		"About SheetQuote",
		"SheetQuote — Instant Sheet-Metal Part Quotes\n\n"+
			"Pick a part template, enter its dimensions and material,\n"+
			"and get a live price with quantity discounts.\n\n"+
			"Version 1.0.0",
		a.window,
	)
}

// Build constructs the full UI and returns the root container.
func (a *App) Build() fyne.CanvasObject {
	a.preview = widgets.NewPartPreview(320)
	a.summary = container.NewVBox()

	a.pdfButton = newActionButton("Quote Sheet", theme.DocumentPrintIcon(),
		"Printable quote, available once the part has an instant estimate", a.exportPDF)
	a.pdfButton.Importance = widget.HighImportance
	a.cutFileButton = newActionButton("Cut Files", theme.DownloadIcon(),
		"DXF, G-code or SVG, available once the dimensions are valid", a.showCutFileMenu)
	a.compareButton = newActionButton("Compare", theme.ListIcon(),
		"Price this part in every catalog material", a.compareMaterials)

	toolbar := container.NewHBox(
		newToolButton(theme.ContentUndoIcon(), "Undo", a.undo),
		newToolButton(theme.ContentRedoIcon(), "Redo", a.redo),
		widget.NewSeparator(),
		newToolButton(theme.FileIcon(), "New quote", a.newQuote),
		newToolButton(theme.FolderOpenIcon(), "Import part from DXF", a.importPartDXF),
		newToolButton(theme.StorageIcon(), "Batch quote from CSV or Excel", a.batchQuote),
		newToolButton(theme.SettingsIcon(), "Cutting settings", a.showCutSettingsDialog),
	)

	formPanel := container.NewVScroll(a.buildQuoteForm())
	formPanel.SetMinSize(fyne.NewSize(360, 0))

	summaryPanel := container.NewBorder(
		nil,
		container.NewGridWithColumns(3, a.pdfButton, a.cutFileButton, a.compareButton),
		nil, nil,
		container.NewVScroll(a.summary),
	)

	right := container.NewHSplit(
		container.NewPadded(a.preview),
		summaryPanel,
	)
	right.SetOffset(0.55)

	main := container.NewHSplit(formPanel, right)
	main.SetOffset(0.3)

	a.syncForm()
	a.refreshQuote()

	content := container.NewBorder(toolbar, nil, nil, nil, main)
	return fynetooltip.AddWindowToolTipLayer(content, a.window.Canvas())
}

// ─── Snapshot flow ─────────────────────────────────────────

// apply records the current snapshot for undo, makes req current and
// re-evaluates it in full.
func (a *App) apply(label string, req model.QuoteRequest) {
	if a.syncing {
		return
	}
	a.history.Push(MakeSnapshot(a.current.Request, label))
	a.current = MakeSnapshot(req, label)
	a.reevaluate()
}

// typeEdit is edit for text fields; consecutive keystrokes in one field
// share a single undo step.
func (a *App) typeEdit(label string, change func(r model.QuoteRequest) model.QuoteRequest) {
	if a.syncing {
		return
	}
	a.history.PushMerged(MakeSnapshot(a.current.Request, label))
	a.current = MakeSnapshot(change(a.current.Request), label)
	a.reevaluate()
}

// edit derives a new snapshot from the current request.
func (a *App) edit(label string, change func(r model.QuoteRequest) model.QuoteRequest) {
	if a.syncing {
		return
	}
	a.apply(label, change(a.current.Request))
}

func (a *App) reevaluate() {
	a.quote = a.pricer.Evaluate(a.current.Request)
	a.refreshQuote()
	a.refreshHistoryMenu()
}

func (a *App) undo() {
	snap, ok := a.history.Undo(a.current)
	if !ok {
		return
	}
	a.restore(snap)
}

func (a *App) redo() {
	snap, ok := a.history.Redo(a.current)
	if !ok {
		return
	}
	a.restore(snap)
}

func (a *App) restore(snap Snapshot) {
	a.current = snap
	a.syncForm()
	a.reevaluate()
}

func (a *App) newQuote() {
	a.apply("New Quote", a.config.ApplyToRequest(model.NewQuoteRequest()))
	a.label = ""
	a.syncForm()
}

// setCatalog swaps the price table and re-prices the current snapshot.
func (a *App) setCatalog(c model.Catalog) {
	a.catalog = c
	a.pricer = engine.New(c)
	a.syncForm()
	a.reevaluate()
}

func (a *App) refreshHistoryMenu() {
	if a.undoItem == nil {
		return
	}
	a.undoItem.Label = "Undo"
	if l := a.history.UndoLabel(); l != "" {
		a.undoItem.Label = "Undo " + l
	}
	a.undoItem.Disabled = !a.history.CanUndo()
	a.redoItem.Label = "Redo"
	if l := a.history.RedoLabel(); l != "" {
		a.redoItem.Label = "Redo " + l
	}
	a.redoItem.Disabled = !a.history.CanRedo()
	if m := a.window.MainMenu(); m != nil {
		m.Refresh()
	}
}

// partLabel names the part in exports and file names.
func (a *App) partLabel() string {
	if a.label != "" {
		return a.label
	}
	if t := a.current.Request.Part.Template; t.Known() {
		return t.DisplayName()
	}
	return "Part"
}

// recordExport remembers an exported file in the recent list.
func (a *App) recordExport(path string) {
	slog.Info("exported", "path", path)
	a.config.AddRecentExport(path)
	if err := project.SaveDefaultAppConfig(a.config); err != nil {
		slog.Warn("failed to save recent exports", "error", err)
	}
}
