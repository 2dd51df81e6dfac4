// Package html2pdf converts HTML documents to PDF using headless Chrome.
//
// The package is built around three pieces:
//
//   - Engine: a handle to one running Chromium process, launched with
//     LaunchEngine. Sessions (pages) are opened on an engine, one per render.
//   - Coordinator: drives a single render — open a session, load the HTML,
//     emit the PDF — with an independent deadline on each stage.
//   - SharedEngine: a process-lifetime engine singleton with single-flight
//     launching and automatic recovery when the browser dies.
//
// # Quick Start
//
// Render once with a private engine:
//
//	eng, err := html2pdf.LaunchEngine()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer eng.Close()
//
//	coord := html2pdf.NewCoordinator()
//	session, pdf, err := coord.Render(eng, "<html><body>Hello</body></html>", "")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer session.Close()
//	os.WriteFile("out.pdf", pdf, 0644)
//
// Or reuse one browser across many renders:
//
//	shared := html2pdf.NewSharedEngine(html2pdf.LaunchEngine)
//	defer shared.Close()
//
//	eng, err := shared.Acquire(ctx)
//
// Sessions returned by a successful Render are left open so callers can tie
// their closure to their own response lifecycle; on any failure the
// Coordinator closes the session itself.
//
// Rod downloads Chromium on first run if no browser is found. Set
// ROD_BROWSER_BIN to use a pre-installed binary (Docker/CI).
package html2pdf
