package markpad

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// State is the coordinator's position in the edit/render cycle.
type State int

const (
	// StateIdle: no edits pending since the last render.
	StateIdle State = iota
	// StateDirty: the buffer changed and a render is scheduled.
	StateDirty
	// StateRendering: a render cycle is in progress.
	StateRendering
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateDirty:
		return "dirty"
	case StateRendering:
		return "rendering"
	default:
		return "idle"
	}
}

// DefaultDebounce is the quiet period after a keystroke before the
// preview re-renders.
const DefaultDebounce = 300 * time.Millisecond

// scheduler arms a one-shot timer; swapped out by tests.
type scheduler func(d time.Duration, fn func()) *time.Timer

// Coordinator sequences buffer edits, synchronous persistence, and
// debounced preview rendering for one document session.
//
// Typed edits arrive through ApplyEdit and coalesce behind a
// trailing-edge debounce: each edit saves immediately but re-arms the
// render timer, so a burst of keystrokes produces a single render of
// the final content. Toolbar actions arrive through ApplyAction and
// render immediately, since they are discrete deliberate operations.
//
// The buffer is owned by the coordinator; collaborators receive value
// snapshots. No failure path discards buffer content.
type Coordinator struct {
	mu        sync.Mutex
	buf       TextBuffer
	state     State
	timer     *time.Timer
	closed    bool
	last      RenderResult
	rendered  bool
	gen       uint64
	published uint64

	store      Store
	renderer   *Renderer
	inserter   *Inserter
	recorder   *Recorder
	events     *Dispatcher
	exporter   Exporter
	exportPath string
	display    func(RenderResult)
	debounce   time.Duration
	schedule   scheduler

	exports sync.WaitGroup
}

// CoordinatorOption configures a Coordinator.
type CoordinatorOption func(*Coordinator)

// WithStore sets the persistence collaborator (default: MemStore).
func WithStore(s Store) CoordinatorOption {
	return func(c *Coordinator) { c.store = s }
}

// WithRenderer sets the preview renderer.
func WithRenderer(r *Renderer) CoordinatorOption {
	return func(c *Coordinator) { c.renderer = r }
}

// WithInserter sets the markup inserter.
func WithInserter(ins *Inserter) CoordinatorOption {
	return func(c *Coordinator) { c.inserter = ins }
}

// WithRecorder sets the debug recorder.
func WithRecorder(r *Recorder) CoordinatorOption {
	return func(c *Coordinator) { c.recorder = r }
}

// WithDisplay sets the display surface callback. It receives every
// render result, rendered or failed, after the cycle completes.
func WithDisplay(fn func(RenderResult)) CoordinatorOption {
	return func(c *Coordinator) { c.display = fn }
}

// WithDebounce sets the render quiet period.
// Panics if d < 0 (programmer error).
func WithDebounce(d time.Duration) CoordinatorOption {
	if d < 0 {
		panic("markpad: WithDebounce duration must not be negative")
	}
	return func(c *Coordinator) { c.debounce = d }
}

// WithExporter sets the document exporter used by the export-pdf action.
func WithExporter(e Exporter) CoordinatorOption {
	return func(c *Coordinator) { c.exporter = e }
}

// WithExportPath sets the output path used by the export-pdf action.
func WithExportPath(path string) CoordinatorOption {
	return func(c *Coordinator) { c.exportPath = path }
}

// NewCoordinator creates a coordinator and loads the initial document
// from its store. A load failure is reported through Notify and the
// session starts blank; it is never fatal.
func NewCoordinator(opts ...CoordinatorOption) *Coordinator {
	c := &Coordinator{
		state:    StateIdle,
		debounce: DefaultDebounce,
		schedule: time.AfterFunc,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.store == nil {
		c.store = NewMemStore()
	}
	if c.renderer == nil {
		c.renderer = NewRenderer()
	}
	if c.inserter == nil {
		c.inserter = NewInserter()
	}
	if c.recorder == nil {
		c.recorder = NewRecorder(false)
	}
	if c.events == nil {
		c.events = NewDispatcher()
	}

	content, err := c.store.Load()
	if err != nil {
		c.store.Notify(fmt.Sprintf("could not load document: %v", err), LevelError)
		c.recorder.Record("load failed", map[string]any{"error": err.Error()})
		content = ""
	}
	c.buf = NewTextBuffer(content)
	return c
}

// Events returns the coordinator's event dispatcher for subscriptions.
func (c *Coordinator) Events() *Dispatcher {
	return c.events
}

// Buffer returns a snapshot of the current buffer.
func (c *Coordinator) Buffer() TextBuffer {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.buf
}

// State returns the current pipeline state.
func (c *Coordinator) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// LastResult returns the most recent render result, if any cycle has
// completed yet.
func (c *Coordinator) LastResult() (RenderResult, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.last, c.rendered
}

// SetSelection moves the selection without editing content. Not an
// edit: nothing is saved or rendered.
func (c *Coordinator) SetSelection(start, end int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.buf = c.buf.WithSelection(start, end)
}

// ApplyEdit accepts a text change (typed input, blur-save). The content
// is persisted synchronously; rendering is deferred behind the debounce
// so bursts of keystrokes coalesce into one render of the last content.
func (c *Coordinator) ApplyEdit(content string, selStart, selEnd int) {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.buf = TextBuffer{Content: content, SelStart: selStart, SelEnd: selEnd}.Clamped()
	c.gen++
	c.persistLocked()
	c.state = StateDirty
	if c.timer != nil {
		c.timer.Stop()
	}
	c.timer = c.schedule(c.debounce, c.debounceElapsed)
	snapshot := c.buf.Content
	c.mu.Unlock()

	c.events.Dispatch(EventContentChanged, ContentChangedData{Content: snapshot})
}

// ApplyAction executes a toolbar action by tag. Insertion actions wrap
// the current selection, persist, and render immediately (no debounce).
// The export-pdf action starts an asynchronous export. Unknown tags are
// recorded and rejected without touching any state.
func (c *Coordinator) ApplyAction(tag string) error {
	if tag == ActionExportPDF {
		return c.StartExport(context.Background(), c.exportPath)
	}

	rule, ok := LookupRule(tag)
	if !ok {
		c.recorder.Record("unknown action", map[string]any{"tag": tag})
		return fmt.Errorf("%w: %q", ErrUnknownAction, tag)
	}
	return c.ApplyRule(rule)
}

// ApplyRule wraps the current selection in a rule's markup, persists,
// and renders immediately. Exported so embedders can define ad-hoc
// rules beyond the built-in action set.
func (c *Coordinator) ApplyRule(rule Rule) error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return nil
	}
	newBuf, _ := c.inserter.Insert(c.buf, rule)
	c.buf = newBuf
	c.gen++
	c.persistLocked()
	c.state = StateDirty
	if c.timer != nil {
		c.timer.Stop() // the pending debounce is superseded by this render
	}
	snapshot := c.buf.Content
	c.mu.Unlock()

	c.events.Dispatch(EventContentChanged, ContentChangedData{Content: snapshot})
	c.renderCycle()
	return nil
}

// Flush renders immediately when edits are pending, bypassing the
// debounce. Used on shutdown and blur.
func (c *Coordinator) Flush() {
	c.mu.Lock()
	if c.closed || c.state != StateDirty {
		c.mu.Unlock()
		return
	}
	if c.timer != nil {
		c.timer.Stop()
	}
	c.mu.Unlock()
	c.renderCycle()
}

// StartExport renders the current content and exports it asynchronously.
// The export is independent of the edit/preview pipeline: edits made
// while it runs are accepted and rendered, a second export may overlap
// the first, and there is no cancellation beyond ctx.
func (c *Coordinator) StartExport(ctx context.Context, outputPath string) error {
	if c.exporter == nil {
		return fmt.Errorf("%w: no exporter configured", ErrExport)
	}
	if outputPath == "" {
		return fmt.Errorf("%w: no output path configured", ErrExport)
	}

	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return fmt.Errorf("%w: session closed", ErrExport)
	}
	snapshot := c.buf.Content
	c.exports.Add(1)
	c.mu.Unlock()

	c.events.Dispatch(EventExportStarted, nil)

	go func() {
		defer c.exports.Done()

		res := c.renderer.Render(ctx, snapshot)
		if res.Failed {
			c.finishExport(outputPath, fmt.Errorf("%w: %s", ErrExport, res.Message))
			return
		}
		c.finishExport(outputPath, c.exporter.ExportPDF(ctx, res.HTML, outputPath))
	}()
	return nil
}

// finishExport publishes the outcome of an export. Editor state is
// untouched either way.
func (c *Coordinator) finishExport(outputPath string, err error) {
	if err != nil {
		c.store.Notify(fmt.Sprintf("export failed: %v", err), LevelError)
		c.recorder.Record("export failed", map[string]any{"path": outputPath, "error": err.Error()})
		c.events.Dispatch(EventExportFailed, ExportFailedData{Err: err})
		return
	}
	c.store.Notify(fmt.Sprintf("exported %s", outputPath), LevelInfo)
	c.recorder.Record("export finished", map[string]any{"path": outputPath})
	c.events.Dispatch(EventExportSucceeded, ExportSucceededData{Path: outputPath})
}

// Close cancels any pending render and waits for in-flight exports.
// The buffer remains readable after Close.
func (c *Coordinator) Close() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.closed = true
	if c.timer != nil {
		c.timer.Stop()
	}
	c.mu.Unlock()
	c.exports.Wait()
}

// persistLocked saves and recounts synchronously. A save failure is
// surfaced as a notification; the in-memory buffer is retained, so no
// content is lost.
func (c *Coordinator) persistLocked() {
	if err := c.store.Save(c.buf.Content); err != nil {
		c.store.Notify(fmt.Sprintf("could not save document: %v", err), LevelError)
		c.recorder.Record("save failed", map[string]any{"error": err.Error()})
	}
	c.store.UpdateWordCount(c.buf.Content)
}

// debounceElapsed fires when the quiet period passes with no further
// edits. A fresh edit re-arms the timer and leaves state Dirty, so a
// stale timer that already lost the race does nothing.
func (c *Coordinator) debounceElapsed() {
	c.mu.Lock()
	if c.closed || c.state != StateDirty {
		c.mu.Unlock()
		return
	}
	c.mu.Unlock()
	c.renderCycle()
}

// renderTrace is the recorded input/output of one render cycle.
type renderTrace struct {
	Input   string `json:"input"`
	Failed  bool   `json:"failed"`
	Output  string `json:"output,omitempty"`
	Message string `json:"message,omitempty"`
}

// renderCycle runs one sanitize→transform→publish pass over the current
// content. The transform runs outside the lock so a slow render never
// blocks edits; an edit arriving mid-render marks the state Dirty again
// and schedules its own cycle. Each cycle carries the buffer generation
// it rendered; a cycle that finishes after a newer generation has already
// published is stale and discarded, so the latest content always wins no
// matter which render completes last.
func (c *Coordinator) renderCycle() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.state = StateRendering
	gen := c.gen
	content := c.buf.Content
	c.mu.Unlock()

	res := c.renderer.Render(context.Background(), content)

	c.mu.Lock()
	if gen < c.published {
		c.mu.Unlock()
		return
	}
	c.published = gen
	c.last = res
	c.rendered = true
	if c.state == StateRendering {
		c.state = StateIdle
	}
	display := c.display
	c.mu.Unlock()

	if display != nil {
		display(res)
	}
	c.recorder.Record("render cycle", renderTrace{
		Input:   content,
		Failed:  res.Failed,
		Output:  res.HTML,
		Message: res.Message,
	})
}
