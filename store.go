package markpad

import (
	"bytes"
	"fmt"
	"log/slog"
	"os"
	"sync"

	"github.com/quessia/markpad/internal/fileutil"
)

// Level grades a persistence notification.
type Level int

const (
	LevelInfo Level = iota
	LevelWarn
	LevelError
)

// String returns the level name.
func (l Level) String() string {
	switch l {
	case LevelWarn:
		return "warn"
	case LevelError:
		return "error"
	default:
		return "info"
	}
}

// Store is the persistence collaborator the coordinator notifies on
// every accepted edit. Save is synchronous and independent of the render
// debounce; the last saved content survives any render or export failure.
type Store interface {
	Save(content string) error
	Load() (string, error)
	UpdateWordCount(content string)
	Notify(message string, level Level)
}

// Notice is one user-facing notification retained by a store.
type Notice struct {
	Message string
	Level   Level
}

// countWords counts whitespace-separated words.
func countWords(content string) int {
	return len(bytes.Fields([]byte(content)))
}

// MemStore is an in-memory Store, the default for a session without a
// backing file. Useful for tests and for embedders that own persistence.
type MemStore struct {
	mu      sync.Mutex
	content string
	words   int
	notices []Notice
}

// NewMemStore creates an empty in-memory store.
func NewMemStore() *MemStore {
	return &MemStore{}
}

// Save retains content in memory.
func (s *MemStore) Save(content string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.content = content
	return nil
}

// Load returns the last saved content.
func (s *MemStore) Load() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.content, nil
}

// UpdateWordCount recomputes the word count for content.
func (s *MemStore) UpdateWordCount(content string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.words = countWords(content)
}

// WordCount returns the last computed word count.
func (s *MemStore) WordCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.words
}

// Notify retains the notification.
func (s *MemStore) Notify(message string, level Level) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.notices = append(s.notices, Notice{Message: message, Level: level})
}

// Notices returns a copy of retained notifications.
func (s *MemStore) Notices() []Notice {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Notice, len(s.notices))
	copy(out, s.notices)
	return out
}

// FileStore persists the document to a single file path with atomic
// writes. Notifications are mirrored to slog when a logger is attached.
type FileStore struct {
	mu     sync.Mutex
	path   string
	words  int
	logger *slog.Logger
	last   *Notice
}

// FileStoreOption configures a FileStore.
type FileStoreOption func(*FileStore)

// WithStoreLogger mirrors notifications to a slog logger.
func WithStoreLogger(l *slog.Logger) FileStoreOption {
	return func(s *FileStore) { s.logger = l }
}

// NewFileStore creates a store backed by path. The file need not exist
// yet; Load on a missing file returns empty content.
func NewFileStore(path string, opts ...FileStoreOption) *FileStore {
	s := &FileStore{path: path}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Path returns the backing file path.
func (s *FileStore) Path() string {
	return s.path
}

// Save writes content atomically (temp file + rename).
func (s *FileStore) Save(content string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := fileutil.WriteFileAtomic(s.path, content); err != nil {
		return fmt.Errorf("%w: %v", ErrSaveDocument, err)
	}
	return nil
}

// Load reads the backing file. A missing file is empty content, not an
// error: a fresh session starts blank.
func (s *FileStore) Load() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil
		}
		return "", fmt.Errorf("%w: %v", ErrLoadDocument, err)
	}
	return string(data), nil
}

// UpdateWordCount recomputes the word count for content.
func (s *FileStore) UpdateWordCount(content string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.words = countWords(content)
}

// WordCount returns the last computed word count.
func (s *FileStore) WordCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.words
}

// Notify retains the most recent notification and mirrors it to the
// attached logger.
func (s *FileStore) Notify(message string, level Level) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.last = &Notice{Message: message, Level: level}
	if s.logger == nil {
		return
	}
	switch level {
	case LevelError:
		s.logger.Error(message)
	case LevelWarn:
		s.logger.Warn(message)
	default:
		s.logger.Info(message)
	}
}

// LastNotice returns the most recent notification, or nil.
func (s *FileStore) LastNotice() *Notice {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.last == nil {
		return nil
	}
	n := *s.last
	return &n
}
