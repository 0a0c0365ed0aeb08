// Package markpad is the editing core of a live-preview markup editor:
// cursor-aware markup insertion plus a reactive preview pipeline that
// tolerates render failures.
//
// # Quick Start
//
// Create a coordinator, feed it edits and toolbar actions, and read the
// preview from the display callback:
//
//	coord := markpad.NewCoordinator(
//	    markpad.WithStore(markpad.NewFileStore("draft.md")),
//	    markpad.WithDisplay(func(res markpad.RenderResult) {
//	        if res.Failed {
//	            showErrorBlock(res.Message)
//	            return
//	        }
//	        showPreview(res.HTML)
//	    }),
//	)
//	defer coord.Close()
//
//	coord.ApplyEdit("# Draft", 7, 7) // typed input, debounced render
//	coord.ApplyAction(markpad.ActionBold)
//
// # Pipeline
//
// Every accepted edit follows the same path:
//
//  1. The buffer snapshot is persisted synchronously (Store.Save).
//  2. Typed edits arm a trailing-edge debounce; toolbar actions render
//     immediately.
//  3. One render cycle: sanitize, transform to HTML (Goldmark with GFM
//     and syntax highlighting by default), publish a RenderResult.
//  4. A transform failure becomes a Failed result, never a panic or a
//     lost buffer.
//
// # Markup Insertion
//
// Insertion rules wrap the current selection in prefix/suffix tokens.
// Block-level rules (headings, lists, quotes) get newline normalization
// so they always start on their own line:
//
//	buf := markpad.NewTextBuffer("hello").WithSelection(0, 5)
//	rule, _ := markpad.LookupRule(markpad.ActionBold)
//	out, caret := markpad.Insert(buf, rule) // "**hello**", caret 9
//
// # Export
//
// The export-pdf action renders the current content and writes a PDF
// via headless Chrome (go-rod). Exports run asynchronously and never
// block editing:
//
//	coord := markpad.NewCoordinator(
//	    markpad.WithExporter(markpad.NewPDFExporter()),
//	    markpad.WithExportPath("out.pdf"),
//	)
//	coord.ApplyAction(markpad.ActionExportPDF)
//
// PDF generation requires Chrome/Chromium; go-rod downloads a managed
// Chromium on first run. Set ROD_BROWSER_BIN to use a pre-installed
// binary in containers.
package markpad
