package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/jinzhu/copier"
	"github.com/rs/zerolog/log"
)

// DefaultDebounce is the quiet period the writer waits for after the
// last mutation before serializing the table to disk.
const DefaultDebounce = time.Second

// Kind selects which table of the data file a record lives in.
type Kind string

const (
	KindUser  Kind = "users"
	KindGuild Kind = "guilds"
)

// Factory produces the canonical default document for a record that is
// being created on first access.
type Factory func(id string) Doc

// tables mirrors the layout of the on-disk JSON file.
type tables struct {
	Users       map[string]Doc `json:"users"`
	Guilds      map[string]Doc `json:"guilds"`
	Settings    Doc            `json:"settings"`
	GlobalStats Doc            `json:"globalStats"`
}

func emptyTables() tables {
	return tables{
		Users:       map[string]Doc{},
		Guilds:      map[string]Doc{},
		Settings:    Doc{},
		GlobalStats: Doc{},
	}
}

// Store is a JSON-file-backed document store for player and guild
// records and for named global blobs. All mutation goes through
// Get/Update; callers only ever see deep copies of the stored
// documents, so a copy mutated outside the store never leaks back in.
//
// Durability is best effort: mutations land in memory immediately and a
// single background goroutine owns the file write, debounced so that a
// burst of updates coalesces into one whole-file rewrite. The in-memory
// table stays authoritative even when a flush fails.
type Store struct {
	path      string
	debounce  time.Duration
	factories map[Kind]Factory

	mu   sync.Mutex
	data tables

	dirty  chan struct{}
	done   chan struct{}
	wg     sync.WaitGroup
	opened bool
}

// New creates a store backed by the JSON file at path. A zero debounce
// selects DefaultDebounce. The store is not usable until Open is called.
func New(path string, debounce time.Duration, factories map[Kind]Factory) *Store {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	return &Store{
		path:      path,
		debounce:  debounce,
		factories: factories,
		data:      emptyTables(),
	}
}

// Open loads the data file and starts the background writer. A missing
// or corrupt file is never fatal: the store logs a warning and starts
// from the empty default structure.
func (s *Store) Open() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.opened {
		return errors.New("store is already open")
	}

	raw, err := os.ReadFile(s.path)
	switch {
	case errors.Is(err, os.ErrNotExist):
		log.Info().Msg(fmt.Sprintf("Data file %s does not exist yet, starting empty", s.path))
	case err != nil:
		log.Warn().Msg(fmt.Sprintf("Could not read data file %s, starting empty: %v", s.path, err))
	default:
		if err := json.Unmarshal(raw, &s.data); err != nil {
			log.Warn().Msg(fmt.Sprintf("Data file %s is corrupt, starting empty: %v", s.path, err))
			s.data = emptyTables()
		}
	}
	// Readers assume every table exists, also for files written by
	// older versions that missed one
	if s.data.Users == nil {
		s.data.Users = map[string]Doc{}
	}
	if s.data.Guilds == nil {
		s.data.Guilds = map[string]Doc{}
	}
	if s.data.Settings == nil {
		s.data.Settings = Doc{}
	}
	if s.data.GlobalStats == nil {
		s.data.GlobalStats = Doc{}
	}

	s.dirty = make(chan struct{}, 1)
	s.done = make(chan struct{})
	s.opened = true
	s.wg.Add(1)
	go s.writer()
	return nil
}

// Close stops the background writer and flushes one last time.
func (s *Store) Close() error {
	s.mu.Lock()
	if !s.opened {
		s.mu.Unlock()
		return nil
	}
	s.opened = false
	s.mu.Unlock()

	close(s.done)
	s.wg.Wait()
	return s.Flush()
}

// Get returns the record for id, creating it from the kind's factory if
// it has never been seen. The returned document is a deep copy; mutating
// it has no effect until the mutation is passed back through Update.
func (s *Store) Get(kind Kind, id string) Doc {
	s.mu.Lock()
	defer s.mu.Unlock()

	table := s.table(kind)
	doc, ok := table[id]
	if !ok {
		doc = s.factories[kind](id)
		table[id] = doc
		s.markDirty()
		log.Debug().Msg(fmt.Sprintf("Created default %s record for id %s", kind, id))
	}

	copied, err := deepCopy(doc)
	if err != nil {
		log.Error().Msg(fmt.Sprintf("Could not copy %s record %s: %v", kind, id, err))
		return s.factories[kind](id)
	}
	return copied
}

// Update deep-merges partial into the record for id, creating the
// record first if needed, and stamps the record's lastSeen time. It
// returns false when the merged record could not be produced or would
// not serialize; in that case the stored record is left exactly as it
// was and the caller should surface a temporary failure, not crash.
func (s *Store) Update(kind Kind, id string, partial Doc) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	table := s.table(kind)
	doc, ok := table[id]
	if !ok {
		doc = s.factories[kind](id)
	}

	// Merge into copies so a failure cannot leave the stored record
	// half mutated, and so the caller's partial is never aliased
	base, err := deepCopy(doc)
	if err != nil {
		log.Error().Msg(fmt.Sprintf("Update of %s record %s failed copying the record: %v", kind, id, err))
		return false
	}
	patch, err := deepCopy(partial)
	if err != nil {
		log.Error().Msg(fmt.Sprintf("Update of %s record %s failed copying the patch: %v", kind, id, err))
		return false
	}
	merged := Merge(base, patch)
	merged["lastSeen"] = time.Now().UnixMilli()
	if _, err := json.Marshal(merged); err != nil {
		log.Error().Msg(fmt.Sprintf("Update of %s record %s does not serialize: %v", kind, id, err))
		return false
	}

	table[id] = merged
	s.markDirty()
	return true
}

// GetGlobalData returns the named global blob as a deep copy, creating
// an empty one on first access. Global blobs hold shared state that is
// not tied to one user, like the marketplace listing table.
func (s *Store) GetGlobalData(name string) Doc {
	s.mu.Lock()
	defer s.mu.Unlock()

	value, ok := s.data.GlobalStats[name].(Doc)
	if !ok {
		return Doc{}
	}
	copied, err := deepCopy(value)
	if err != nil {
		log.Error().Msg(fmt.Sprintf("Could not copy global blob %s: %v", name, err))
		return Doc{}
	}
	return copied
}

// SetGlobalData replaces the named global blob outright. Unlike Update
// there is no merge: the caller provides the full new value.
func (s *Store) SetGlobalData(name string, value Doc) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	copied, err := deepCopy(value)
	if err != nil {
		log.Error().Msg(fmt.Sprintf("Could not copy new value for global blob %s: %v", name, err))
		return false
	}
	if _, err := json.Marshal(copied); err != nil {
		log.Error().Msg(fmt.Sprintf("New value for global blob %s does not serialize: %v", name, err))
		return false
	}
	s.data.GlobalStats[name] = copied
	s.markDirty()
	return true
}

// Flush serializes the whole table to the data file synchronously.
// The file is replaced via a temp file and rename, so a crash mid-write
// leaves the previous file intact.
func (s *Store) Flush() error {
	s.mu.Lock()
	raw, err := json.MarshalIndent(s.data, "", "  ")
	s.mu.Unlock()
	if err != nil {
		return fmt.Errorf("could not serialize data: %w", err)
	}

	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("could not create data directory: %w", err)
		}
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, raw, 0o644); err != nil {
		return fmt.Errorf("could not write data file: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("could not replace data file: %w", err)
	}
	return nil
}

// writer owns the write path. Mutators only signal the dirty channel;
// each signal restarts the debounce timer and the file is rewritten
// once the quiet period elapses. Write errors are logged and swallowed,
// the in-memory table stays authoritative.
func (s *Store) writer() {
	defer s.wg.Done()

	timer := time.NewTimer(s.debounce)
	if !timer.Stop() {
		<-timer.C
	}
	for {
		select {
		case <-s.dirty:
			if !timer.Stop() {
				select {
				case <-timer.C:
				default:
				}
			}
			timer.Reset(s.debounce)
		case <-timer.C:
			if err := s.Flush(); err != nil {
				log.Error().Msg(fmt.Sprintf("Debounced save failed: %v", err))
			}
		case <-s.done:
			timer.Stop()
			return
		}
	}
}

func (s *Store) table(kind Kind) map[string]Doc {
	switch kind {
	case KindGuild:
		return s.data.Guilds
	default:
		return s.data.Users
	}
}

// markDirty wakes the writer without blocking; a pending signal already
// covers this mutation. Callers hold the mutex.
func (s *Store) markDirty() {
	if !s.opened {
		return
	}
	select {
	case s.dirty <- struct{}{}:
	default:
	}
}

func deepCopy(doc Doc) (Doc, error) {
	if doc == nil {
		return nil, nil
	}
	copied := make(Doc, len(doc))
	if err := copier.CopyWithOption(&copied, doc, copier.Option{DeepCopy: true}); err != nil {
		return nil, err
	}
	return copied, nil
}
