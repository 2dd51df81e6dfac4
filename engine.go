package html2pdf

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
	"github.com/google/uuid"

	"github.com/alnah/go-html2pdf/internal/fileutil"
)

// Engine is a handle to one running rendering-engine process.
// A disconnected engine must not be handed out for new renders.
type Engine interface {
	// ID identifies the underlying process, for log correlation only.
	ID() string
	// Connected reports whether the engine process is still reachable.
	Connected() bool
	// OnDisconnect registers fn to run once when the engine connection
	// is lost (crash, external kill, or Close). Safe to call concurrently.
	OnDisconnect(fn func())
	// NewSession opens a fresh rendering context (one page).
	NewSession() (Session, error)
	// Close terminates the engine process.
	Close() error
}

// Session is a single rendering context bound to one Engine,
// used for exactly one render.
type Session interface {
	// Load feeds HTML into the session and waits for it to settle.
	Load(html string) error
	// EmitPDF produces the paginated artifact from the loaded content.
	EmitPDF() ([]byte, error)
	// Close destroys the session. Idempotent.
	Close() error
	// Closed reports whether Close has been called.
	Closed() bool
}

// Compile-time interface checks
var (
	_ Engine  = (*rodEngine)(nil)
	_ Session = (*rodSession)(nil)
)

// PDF page geometry. Callers supply arbitrary HTML, so the output contract
// is fixed: A4, print-background on, uniform 10mm margins.
const (
	a4WidthInches  = 8.27
	a4HeightInches = 11.7

	marginMillimeters = 10.0
	marginInches      = marginMillimeters / 25.4
)

// networkQuietWindow is how long the page must go without any in-flight
// network request before content is treated as ready.
const networkQuietWindow = 500 * time.Millisecond

// LaunchFunc launches a rendering engine. It exists so the lifecycle
// manager and the request pipeline can be tested without a browser.
type LaunchFunc func() (Engine, error)

// rodEngine implements Engine on a headless Chromium controlled via go-rod.
// Rod automatically downloads Chromium on first run if not found.
type rodEngine struct {
	id      string
	browser *rod.Browser

	mu           sync.Mutex
	connected    bool
	disconnectCB []func()
	notified     bool
}

// LaunchEngine starts a new browser process and connects to it.
func LaunchEngine() (Engine, error) {
	l := launcher.New()

	// Use pre-installed browser if specified (Docker/containerized environments)
	if bin := os.Getenv("ROD_BROWSER_BIN"); bin != "" {
		l = l.Bin(bin)
	}

	// NoSandbox required for CI and containerized environments
	if os.Getenv("CI") == "true" || os.Getenv("ROD_BROWSER_BIN") != "" {
		l = l.NoSandbox(true)
	}

	u, err := l.Launch()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEngineLaunch, err)
	}

	browser := rod.New().ControlURL(u)
	if err := browser.Connect(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEngineConnect, err)
	}

	e := &rodEngine{
		id:        uuid.NewString(),
		browser:   browser,
		connected: true,
	}
	go e.watch()

	return e, nil
}

// watch blocks until the devtools event stream closes, which happens when
// the browser process dies or the connection is closed, then notifies.
func (e *rodEngine) watch() {
	for range e.browser.Event() {
		// Drain; only channel closure matters here.
	}
	e.notifyDisconnect()
}

// notifyDisconnect marks the engine disconnected and fires callbacks once.
func (e *rodEngine) notifyDisconnect() {
	e.mu.Lock()
	if e.notified {
		e.mu.Unlock()
		return
	}
	e.notified = true
	e.connected = false
	callbacks := e.disconnectCB
	e.disconnectCB = nil
	e.mu.Unlock()

	for _, fn := range callbacks {
		fn()
	}
}

func (e *rodEngine) ID() string { return e.id }

func (e *rodEngine) Connected() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.connected
}

func (e *rodEngine) OnDisconnect(fn func()) {
	e.mu.Lock()
	if e.notified {
		e.mu.Unlock()
		fn()
		return
	}
	e.disconnectCB = append(e.disconnectCB, fn)
	e.mu.Unlock()
}

func (e *rodEngine) NewSession() (Session, error) {
	page, err := e.browser.Page(proto.TargetCreateTarget{})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSessionOpen, err)
	}
	return &rodSession{page: page}, nil
}

func (e *rodEngine) Close() error {
	e.mu.Lock()
	e.connected = false
	e.mu.Unlock()
	return e.browser.Close()
}

// rodSession implements Session on a single browser page.
type rodSession struct {
	page *rod.Page

	mu     sync.Mutex
	closed bool
}

// Load writes the HTML to a temp file, navigates the page to it, and waits
// for the load event plus network quiescence: content is not treated as
// ready until no requests have been in flight for the quiet window, so slow
// subresources (images, fonts, stylesheets) arrive before printing. The
// rendering profile is forced to "screen" since callers expect screen-like
// fidelity, not print styling.
func (s *rodSession) Load(html string) error {
	tmpPath, cleanup, err := fileutil.WriteTempFile(html)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrContentLoad, err)
	}
	defer cleanup()

	// Armed before navigation so every request the page issues is tracked.
	waitQuiet := s.page.WaitRequestIdle(networkQuietWindow, nil, nil, nil)

	if err := s.page.Navigate("file://" + tmpPath); err != nil {
		return fmt.Errorf("%w: %v", ErrContentLoad, err)
	}
	if err := s.page.WaitLoad(); err != nil {
		return fmt.Errorf("%w: %v", ErrContentLoad, err)
	}
	waitQuiet()

	media := proto.EmulationSetEmulatedMedia{Media: "screen"}
	if err := media.Call(s.page); err != nil {
		return fmt.Errorf("%w: setting emulated media: %v", ErrContentLoad, err)
	}

	return nil
}

// EmitPDF renders the loaded page to PDF bytes.
func (s *rodSession) EmitPDF() ([]byte, error) {
	opts := &proto.PagePrintToPDF{
		PaperWidth:      floatPtr(a4WidthInches),
		PaperHeight:     floatPtr(a4HeightInches),
		MarginTop:       floatPtr(marginInches),
		MarginBottom:    floatPtr(marginInches),
		MarginLeft:      floatPtr(marginInches),
		MarginRight:     floatPtr(marginInches),
		PrintBackground: true,
	}

	reader, err := s.page.PDF(opts)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPDFGeneration, err)
	}

	pdfBuf, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("%w: reading PDF stream: %v", ErrPDFGeneration, err)
	}

	return pdfBuf, nil
}

func (s *rodSession) Close() error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	s.closed = true
	s.mu.Unlock()
	return s.page.Close()
}

func (s *rodSession) Closed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}

// floatPtr returns a pointer to a float64 value.
func floatPtr(v float64) *float64 {
	return &v
}
