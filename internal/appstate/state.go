package appstate

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"log"
	"sync"
	"time"
	"unicode"

	"golang.org/x/exp/shiny/driver"
	"golang.org/x/exp/shiny/screen"
	"golang.org/x/mobile/event/key"
	"golang.org/x/mobile/event/lifecycle"
	"golang.org/x/mobile/event/mouse"
	"golang.org/x/mobile/event/paint"
	"golang.org/x/mobile/event/size"

	"github.com/example/pinpoint/internal/annotate"
	"github.com/example/pinpoint/internal/clipboard"
	"github.com/example/pinpoint/internal/imageio"
	"github.com/example/pinpoint/internal/notify"
	"github.com/example/pinpoint/internal/render"
	"github.com/example/pinpoint/internal/theme"
)

// AppState holds application configuration for the UI.
type AppState struct {
	Image        *image.RGBA
	Store        *annotate.Store
	Title        string
	Output       string
	ExportPath   string
	DisplayWidth int
	PointSize    int
	Theme        *theme.Theme
	Mode         Mode
	Notifier     *notify.Notifier

	sendControl func(controlEvent)

	settingsMu sync.Mutex
	settingsFn func(displayWidth, pointSize int)

	onClose   func()
	closeOnce sync.Once
}

// Option modifies an AppState during creation.
type Option func(*AppState)

// WithImage sets the image displayed by the application.
func WithImage(img *image.RGBA) Option { return func(a *AppState) { a.Image = img } }

// WithStore sets the annotation store backing the session.
func WithStore(st *annotate.Store) Option { return func(a *AppState) { a.Store = st } }

// WithTitle sets the window header title, typically the image filename.
func WithTitle(title string) Option { return func(a *AppState) { a.Title = title } }

// WithOutput sets the file path used when saving the annotated image.
func WithOutput(out string) Option { return func(a *AppState) { a.Output = out } }

// WithExportPath sets the CSV path used when exporting annotations.
func WithExportPath(path string) Option { return func(a *AppState) { a.ExportPath = path } }

// WithDisplayWidth sets the initial display width of the resized image.
func WithDisplayWidth(w int) Option { return func(a *AppState) { a.DisplayWidth = w } }

// WithPointSize sets the initial marker radius.
func WithPointSize(r int) Option { return func(a *AppState) { a.PointSize = r } }

// WithTheme sets the color theme for the UI and markers.
func WithTheme(th *theme.Theme) Option { return func(a *AppState) { a.Theme = th } }

// WithMode configures the UI mode for the state machine.
func WithMode(mode Mode) Option { return func(a *AppState) { a.Mode = mode } }

// WithNotifier sets the notifier used for export, save and copy events.
func WithNotifier(n *notify.Notifier) Option { return func(a *AppState) { a.Notifier = n } }

// WithSettingsListener registers a callback for when display settings change.
func WithSettingsListener(fn func(displayWidth, pointSize int)) Option {
	return func(a *AppState) { a.settingsFn = fn }
}

// WithOnClose registers a callback invoked when the window closes.
func WithOnClose(fn func()) Option { return func(a *AppState) { a.onClose = fn } }

// New creates an AppState with the provided options.
func New(opts ...Option) *AppState {
	a := &AppState{
		DisplayWidth: annotate.DefaultDisplayWidth,
		PointSize:    annotate.DefaultPointSize,
		Mode:         ModeAnnotate,
	}
	for _, o := range opts {
		o(a)
	}
	if a.Store == nil {
		a.Store = annotate.NewStore()
	}
	a.DisplayWidth = annotate.ClampDisplayWidth(a.DisplayWidth)
	a.PointSize = annotate.ClampPointSize(a.PointSize)
	return a
}

type controlEvent struct {
	DisplayWidth *int
	PointSize    *int
}

// ApplySettings synchronizes display settings between the CLI and UI.
func (a *AppState) ApplySettings(displayWidth, pointSize int) {
	displayWidth = annotate.ClampDisplayWidth(displayWidth)
	pointSize = annotate.ClampPointSize(pointSize)

	a.settingsMu.Lock()
	a.DisplayWidth = displayWidth
	a.PointSize = pointSize
	fn := a.settingsFn
	sender := a.sendControl
	a.settingsMu.Unlock()

	if sender != nil {
		dw := displayWidth
		ps := pointSize
		sender(controlEvent{DisplayWidth: &dw, PointSize: &ps})
	}
	if fn != nil {
		fn(displayWidth, pointSize)
	}
}

func (a *AppState) applySettingsFromUI(displayWidth, pointSize int) {
	displayWidth = annotate.ClampDisplayWidth(displayWidth)
	pointSize = annotate.ClampPointSize(pointSize)

	a.settingsMu.Lock()
	a.DisplayWidth = displayWidth
	a.PointSize = pointSize
	fn := a.settingsFn
	a.settingsMu.Unlock()

	if fn != nil {
		fn(displayWidth, pointSize)
	}
}

func (a *AppState) setControlSender(fn func(controlEvent)) {
	a.settingsMu.Lock()
	a.sendControl = fn
	a.settingsMu.Unlock()
}

func (a *AppState) notifyClose() {
	a.closeOnce.Do(func() {
		a.setControlSender(nil)
		if a.onClose != nil {
			a.onClose()
		}
	})
}

// exportCSV writes the current annotations to the export path.
func (a *AppState) exportCSV() (string, error) {
	path := a.ExportPath
	if path == "" {
		path = "annotations.csv"
	}
	if err := annotate.SaveCSV(path, a.Store.Annotations()); err != nil {
		return "", err
	}
	return path, nil
}

// saveAnnotated renders the annotations onto a full resolution copy of the
// image and writes it to the output path. The marker radius scales with the
// image so the saved file matches what the display shows.
func (a *AppState) saveAnnotated(m annotate.Mapper, pointSize int) (string, *image.RGBA, error) {
	path := a.Output
	if path == "" {
		path = "annotated.png"
	}
	b := a.Image.Bounds()
	full := annotate.NewMapper(b.Dx(), b.Dy(), b.Dx())
	opts := MarkerOptionsFor(a.Theme, int(float64(pointSize)*m.ScaleX()+0.5))
	out := render.Annotated(a.Image, a.Store.Annotations(), full, opts)
	if err := imageio.Save(path, out); err != nil {
		return "", nil, err
	}
	return path, out, nil
}

// copyCSV places the CSV serialization of the annotations on the clipboard.
func (a *AppState) copyCSV() error {
	var buf bytes.Buffer
	if err := annotate.WriteCSV(&buf, a.Store.Annotations()); err != nil {
		return err
	}
	return clipboard.WriteText(buf.String())
}

// Run executes the UI loop using shiny's driver.
func (a *AppState) Run() { driver.Main(a.Main) }

func (a *AppState) Main(s screen.Screen) {
	rgba := a.Image
	store := a.Store
	th := a.Theme
	if th == nil {
		th = theme.Default()
	}
	displayWidth := annotate.ClampDisplayWidth(a.DisplayWidth)
	pointSize := annotate.ClampPointSize(a.PointSize)

	b := rgba.Bounds()
	mapper := annotate.NewMapper(b.Dx(), b.Dy(), displayWidth)
	base := render.Display(rgba, mapper)

	dispW, dispH := mapper.DisplaySize()
	width := dispW + panelWidth
	height := dispH + headerHeight + bottomHeight
	w, err := s.NewWindow(&screen.NewWindowOptions{Width: width, Height: height, Title: "Pinpoint"})
	if err != nil {
		log.Fatalf("new window: %v", err)
	}
	defer w.Release()

	defer a.notifyClose()

	a.setControlSender(func(ev controlEvent) { w.Send(ev) })

	var labelActive bool
	var labelInput string
	var message string
	var messageUntil time.Time
	var clearConfirm confirmGate
	var paintMu sync.Mutex
	var paintCancel context.CancelFunc
	var dropCount int
	paintCh := make(chan paintState, 1)
	go func() {
		for st := range paintCh {
			ctx, cancel := context.WithCancel(context.Background())
			paintMu.Lock()
			paintCancel = cancel
			paintMu.Unlock()
			drawFrame(ctx, s, w, st)
			paintMu.Lock()
			paintCancel = nil
			if ctx.Err() == nil {
				dropCount = 0
			}
			paintMu.Unlock()
		}
	}()

	a.applySettingsFromUI(displayWidth, pointSize)

	annotationEnabled := a.Mode != ModeView

	showMessage := func(msg string) {
		message = msg
		log.Print(msg)
		messageUntil = time.Now().Add(2 * time.Second)
	}

	rebuildDisplay := func() {
		mapper = annotate.NewMapper(b.Dx(), b.Dy(), displayWidth)
		base = render.Display(rgba, mapper)
	}

	keyboardAction := map[KeyShortcut]string{}
	actions := map[string]func(){}

	register := func(name string, keys KeyboardShortcuts, fn func()) {
		actions[name] = fn
		if keys != nil {
			for _, sc := range keys.KeyboardShortcuts() {
				keyboardAction[sc] = name
			}
		}
	}

	var configureMode func()

	configureMode = func() {
		actions = map[string]func(){}
		keyboardAction = map[KeyShortcut]string{}
		hoverShortcut = -1
		hoverRow = -1

		register("export", shortcutList{{Rune: 'e'}}, func() {
			path, err := a.exportCSV()
			if err != nil {
				log.Printf("export: %v", err)
				return
			}
			showMessage(fmt.Sprintf("exported %s", path))
			a.Notifier.Export(path)
		})

		register("save", shortcutList{{Rune: 's'}}, func() {
			path, out, err := a.saveAnnotated(mapper, pointSize)
			if err != nil {
				log.Printf("save: %v", err)
				return
			}
			showMessage(fmt.Sprintf("saved %s", path))
			a.Notifier.Save(path, out)
		})

		register("copy", shortcutList{{Rune: 'c'}}, func() {
			if err := a.copyCSV(); err != nil {
				log.Printf("copy: %v", err)
				return
			}
			showMessage("annotations copied to clipboard")
			a.Notifier.Copy(fmt.Sprintf("%d annotations", store.Len()))
		})

		register("sizeup", shortcutList{{Rune: '+'}, {Rune: '='}}, func() {
			pointSize = annotate.ClampPointSize(pointSize + 1)
			a.applySettingsFromUI(displayWidth, pointSize)
		})

		register("sizedown", shortcutList{{Rune: '-'}}, func() {
			pointSize = annotate.ClampPointSize(pointSize - 1)
			a.applySettingsFromUI(displayWidth, pointSize)
		})

		register("widthup", shortcutList{{Rune: ']'}}, func() {
			displayWidth = annotate.ClampDisplayWidth(displayWidth + 100)
			rebuildDisplay()
			a.applySettingsFromUI(displayWidth, pointSize)
		})

		register("widthdown", shortcutList{{Rune: '['}}, func() {
			displayWidth = annotate.ClampDisplayWidth(displayWidth - 100)
			rebuildDisplay()
			a.applySettingsFromUI(displayWidth, pointSize)
		})

		register("quit", nil, func() {
			w.Send(lifecycle.Event{To: lifecycle.StageDead})
		})

		if !annotationEnabled {
			register("annotate", shortcutList{{Rune: 'a'}}, func() {
				annotationEnabled = true
				configureMode()
				w.Send(paint.Event{})
			})
			return
		}

		register("undo", shortcutList{{Rune: 'u'}}, func() {
			if store.Len() == 0 {
				return
			}
			store.RemoveLast()
			showMessage("removed last point")
		})

		register("clear", shortcutList{{Rune: 'x'}}, func() {
			store.Clear()
			showMessage("cleared all points")
		})

		register("labeldone", shortcutList{{Code: key.CodeReturnEnter}}, func() {
			if store.Commit(labelInput) {
				labelActive = false
				labelInput = ""
			}
		})

		register("labelcancel", shortcutList{{Code: key.CodeEscape}}, func() {
			store.ClearPending()
			labelActive = false
			labelInput = ""
		})
	}

	// handleShortcut is the single dispatch point for both keyboard
	// shortcuts and bottom-bar buttons, so clear is confirm-gated on
	// either path.
	handleShortcut := func(action string) {
		if action == "clear" {
			if !clearConfirm.Arm() {
				showMessage("press X again to clear")
				w.Send(paint.Event{})
				return
			}
		} else {
			clearConfirm.Reset()
		}
		if fn, ok := actions[action]; ok {
			fn()
		}
		w.Send(paint.Event{})
	}

	configureMode()

	for {
		e := w.NextEvent()
		switch e := e.(type) {
		case controlEvent:
			if e.DisplayWidth != nil {
				displayWidth = annotate.ClampDisplayWidth(*e.DisplayWidth)
				rebuildDisplay()
			}
			if e.PointSize != nil {
				pointSize = annotate.ClampPointSize(*e.PointSize)
			}
			a.applySettingsFromUI(displayWidth, pointSize)
			w.Send(paint.Event{})
		case lifecycle.Event:
			if e.To == lifecycle.StageDead {
				paintMu.Lock()
				if paintCancel != nil {
					paintCancel()
				}
				paintMu.Unlock()
				return
			}
		case size.Event:
			width = e.WidthPx
			height = e.HeightPx
			w.Send(paint.Event{})
		case paint.Event:
			paintMu.Lock()
			if paintCancel != nil {
				if dropCount < frameDropThreshold {
					paintCancel()
					dropCount++
				}
			}
			paintMu.Unlock()
			pending, hasPending := store.Pending()
			st := paintState{
				width:          width,
				height:         height,
				base:           base,
				annotations:    store.Annotations(),
				mapper:         mapper,
				pointSize:      pointSize,
				pending:        pending,
				hasPending:     hasPending,
				labelActive:    labelActive,
				labelInput:     labelInput,
				title:          a.Title,
				message:        message,
				messageUntil:   messageUntil,
				theme:          th,
				handleShortcut: handleShortcut,
			}
			select {
			case paintCh <- st:
			default:
				<-paintCh
				paintCh <- st
			}
		case mouse.Event:
			if message != "" && time.Now().Before(messageUntil) && e.Direction == mouse.DirPress {
				messageUntil = time.Time{}
				w.Send(paint.Event{})
				continue
			}
			if int(e.Y) >= height-bottomHeight {
				p := image.Point{int(e.X), int(e.Y)}
				hoverShortcut = -1
				for i, sc := range shortcutRects {
					if p.In(sc.rect) {
						hoverShortcut = i
						if e.Button == mouse.ButtonLeft && e.Direction == mouse.DirPress {
							sc.Activate()
						}
						break
					}
				}
				if e.Direction == mouse.DirNone {
					w.Send(paint.Event{})
				}
				continue
			}
			if int(e.X) >= width-panelWidth && int(e.Y) >= headerHeight {
				row := (int(e.Y) - headerHeight - 4) / panelRowHeight()
				hoverRow = -1
				if row >= 0 && row < store.Len() {
					hoverRow = row
				}
				if e.Direction == mouse.DirNone {
					w.Send(paint.Event{})
				}
				continue
			}
			hoverRow = -1

			if !annotationEnabled {
				continue
			}
			dispW, dispH := mapper.DisplaySize()
			dx := float64(e.X)
			dy := float64(e.Y) - headerHeight
			inImage := dx >= 0 && dx < float64(dispW) && dy >= 0 && dy < float64(dispH)
			if e.Button == mouse.ButtonLeft && e.Direction == mouse.DirPress && inImage {
				x, y := mapper.ToOriginal(dx, dy)
				store.SetPending(x, y)
				labelActive = true
				labelInput = ""
				w.Send(paint.Event{})
			}
		case key.Event:
			if e.Direction != key.DirPress {
				continue
			}
			if labelActive {
				switch e.Code {
				case key.CodeReturnEnter:
					handleShortcut("labeldone")
					continue
				case key.CodeEscape:
					handleShortcut("labelcancel")
					continue
				case key.CodeDeleteBackspace:
					if len(labelInput) > 0 {
						labelInput = labelInput[:len(labelInput)-1]
						w.Send(paint.Event{})
					}
					continue
				}
				if e.Rune > 0 && unicode.IsPrint(e.Rune) {
					labelInput += string(e.Rune)
					w.Send(paint.Event{})
				}
				continue
			}
			ks := KeyShortcut{Rune: unicode.ToLower(e.Rune), Code: e.Code, Modifiers: e.Modifiers}
			action, ok := keyboardAction[ks]
			if !ok {
				// Rune shortcuts are registered without a key code.
				action, ok = keyboardAction[KeyShortcut{Rune: ks.Rune, Modifiers: ks.Modifiers}]
			}
			if !ok {
				action, ok = keyboardAction[KeyShortcut{Code: ks.Code, Modifiers: ks.Modifiers}]
			}
			if ok {
				handleShortcut(action)
				continue
			}
			clearConfirm.Reset()
			switch e.Rune {
			case 'q', 'Q':
				paintMu.Lock()
				if paintCancel != nil {
					paintCancel()
				}
				paintMu.Unlock()
				return
			}
		}
	}
}
