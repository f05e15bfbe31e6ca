package contexts

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/Iron-Ham/azctx/internal/errors"
	"gopkg.in/yaml.v3"
)

// StoreFileName is the name of the contexts file within the storage directory.
const StoreFileName = "contexts.yaml"

// document is the on-disk shape of the contexts file.
type document struct {
	Contexts []yaml.Node `yaml:"contexts"`
}

// Store is the durable collection of saved contexts, backed by a single
// YAML file. All writes are whole-file rewrites through an atomic
// temp-file-and-rename, so the file is always syntactically consistent at
// rest. The store performs no cross-process locking; concurrent writers
// race on load-modify-save and the last write wins.
type Store struct {
	path string
	mu   sync.Mutex
}

// DefaultDir returns the per-user storage directory (~/.azctx).
func DefaultDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".azctx"
	}
	return filepath.Join(home, ".azctx")
}

// NewStore creates a Store rooted at the given directory. The directory is
// created lazily on first write, not here; a missing file reads as empty.
func NewStore(dir string) *Store {
	if dir == "" {
		dir = DefaultDir()
	}
	return &Store{path: filepath.Join(dir, StoreFileName)}
}

// Path returns the full path of the contexts file.
func (s *Store) Path() string {
	return s.path
}

// Load parses the contexts file and returns all well-formed records in file
// order. A missing file is an empty store, not an error.
//
// Degraded files are handled in two tiers:
//   - The file exists but is not parseable YAML at all: returns no records
//     and a StoreError wrapping ErrStoreCorrupted.
//   - Individual entries are malformed (wrong shape, missing required
//     fields, bad timestamp): the valid subset is returned together with a
//     StoreError wrapping ErrStorePartial. Callers decide whether the
//     degraded view is usable; mutating operations refuse it.
func (s *Store) Load() ([]Context, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load()
}

// load is the lock-free implementation shared by the mutating operations.
func (s *Store) load() ([]Context, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, errors.NewStoreError("failed to read contexts file", err).WithPath(s.path)
	}

	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, errors.NewStoreError("failed to parse contexts file",
			errors.Join(errors.ErrStoreCorrupted, err)).WithPath(s.path)
	}

	records := make([]Context, 0, len(doc.Contexts))
	skipped := 0
	for i := range doc.Contexts {
		var c Context
		if err := doc.Contexts[i].Decode(&c); err != nil || !c.valid() {
			skipped++
			continue
		}
		records = append(records, c)
	}

	if skipped > 0 {
		return records, errors.NewStoreError("skipped malformed context entries", errors.ErrStorePartial).
			WithPath(s.path).
			WithSkipped(skipped).
			WithSeverity(errors.SeverityWarning)
	}
	return records, nil
}

// Save writes the full collection back, overwriting the file. The containing
// directory is created if missing.
func (s *Store) Save(records []Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.save(records)
}

func (s *Store) save(records []Context) error {
	nodes := make([]yaml.Node, len(records))
	for i := range records {
		if err := nodes[i].Encode(records[i]); err != nil {
			return errors.NewStoreError("failed to encode context", err).WithPath(s.path)
		}
	}

	data, err := yaml.Marshal(document{Contexts: nodes})
	if err != nil {
		return errors.NewStoreError("failed to encode contexts file", err).WithPath(s.path)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return errors.NewStoreError("failed to create storage directory", err).WithPath(dir)
	}

	if err := atomicWriteFile(s.path, data, 0644); err != nil {
		return errors.NewStoreError("failed to write contexts file", err).WithPath(s.path)
	}
	return nil
}

// Add appends a record after checking id uniqueness. The comparison is exact
// and case-sensitive: "DEV" and "dev" are independent records. Add refuses
// to modify a corrupted or partially readable file: saving a degraded view
// would silently drop the entries that failed to parse.
func (s *Store) Add(record Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	records, err := s.load()
	if err != nil {
		return errors.Wrap(err, "refusing to modify unreadable contexts file")
	}

	for i := range records {
		if records[i].ContextID == record.ContextID {
			return errors.NewContextError("a context with this id already exists", errors.ErrDuplicateContext).
				WithContextID(record.ContextID)
		}
	}

	return s.save(append(records, record))
}

// Delete removes the record with the given id. Like Add, it refuses to
// rewrite a degraded file.
func (s *Store) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	records, err := s.load()
	if err != nil {
		return errors.Wrap(err, "refusing to modify unreadable contexts file")
	}

	kept := records[:0]
	found := false
	for i := range records {
		if records[i].ContextID == id {
			found = true
			continue
		}
		kept = append(kept, records[i])
	}
	if !found {
		return errors.NewContextError("no saved context with this id", errors.ErrContextNotFound).
			WithContextID(id)
	}

	return s.save(kept)
}

// FindByID returns the record with the given id, or nil if absent. Lookup is
// a case-sensitive linear scan; the collection is expected to stay well
// under a thousand records.
func (s *Store) FindByID(id string) (*Context, error) {
	records, err := s.Load()
	if err != nil && !errors.Is(err, errors.ErrStorePartial) {
		return nil, err
	}
	for i := range records {
		if records[i].ContextID == id {
			return &records[i], nil
		}
	}
	return nil, nil
}

// IDs returns all context ids in lexicographic order. Used to build the
// candidate list shown when a lookup fails.
func (s *Store) IDs() ([]string, error) {
	records, err := s.Load()
	if err != nil && !errors.Is(err, errors.ErrStorePartial) {
		return nil, err
	}
	ids := make([]string, len(records))
	for i := range records {
		ids[i] = records[i].ContextID
	}
	sort.Strings(ids)
	return ids, nil
}

// atomicWriteFile writes data to a file atomically by writing to a temporary
// file first, then renaming. This ensures the target file is never in a
// partially-written state.
func atomicWriteFile(path string, data []byte, perm os.FileMode) error {
	dir := filepath.Dir(path)

	// Create temp file in same directory to ensure atomic rename
	tmpFile, err := os.CreateTemp(dir, ".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmpFile.Name()

	// Clean up temp file on any error
	success := false
	defer func() {
		if !success {
			os.Remove(tmpPath)
		}
	}()

	if _, err := tmpFile.Write(data); err != nil {
		tmpFile.Close()
		return fmt.Errorf("failed to write temp file: %w", err)
	}

	if err := tmpFile.Sync(); err != nil {
		tmpFile.Close()
		return fmt.Errorf("failed to sync temp file: %w", err)
	}

	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}

	if err := os.Chmod(tmpPath, perm); err != nil {
		return fmt.Errorf("failed to set permissions: %w", err)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("failed to rename temp file: %w", err)
	}

	success = true
	return nil
}
