package geocode

import (
	"context"
	"encoding/gob"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"sync"
)

type record struct {
	Place string
	Entry Entry
}

// GobStore keeps entries in memory and saves them as a stream of
// gob-encoded records when closed.
type GobStore struct {
	path string

	mu      sync.Mutex
	entries map[string]Entry
	dirty   bool
}

// OpenGobStore restores entries from path. A missing file yields an empty
// store.
func OpenGobStore(path string) (*GobStore, error) {
	s := &GobStore{path: path, entries: make(map[string]Entry)}
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return s, nil
		}
		return nil, fmt.Errorf("error opening %s for reading: %w", path, err)
	}
	defer f.Close()
	dec := gob.NewDecoder(f)
	for {
		var r record
		if err := dec.Decode(&r); err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, fmt.Errorf("error decoding %s: %w", path, err)
		}
		s.entries[r.Place] = r.Entry
	}
	return s, nil
}

func (s *GobStore) Get(_ context.Context, place string) (Entry, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.entries[place]
	return e, ok, nil
}

func (s *GobStore) Put(_ context.Context, place string, e Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if old, ok := s.entries[place]; ok && old == e {
		return nil
	}
	s.entries[place] = e
	s.dirty = true
	return nil
}

// Entries returns a copy of all stored entries.
func (s *GobStore) Entries() map[string]Entry {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[string]Entry, len(s.entries))
	for k, v := range s.entries {
		out[k] = v
	}
	return out
}

// Close writes the entries back to disk if anything changed.
func (s *GobStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.dirty {
		return nil
	}
	tmp, err := os.CreateTemp(filepath.Dir(s.path), filepath.Base(s.path)+".*")
	if err != nil {
		return fmt.Errorf("error creating temporary file for %s: %w", s.path, err)
	}
	places := make([]string, 0, len(s.entries))
	for k := range s.entries {
		places = append(places, k)
	}
	sort.Strings(places)
	enc := gob.NewEncoder(tmp)
	for _, p := range places {
		if err := enc.Encode(record{Place: p, Entry: s.entries[p]}); err != nil {
			tmp.Close()
			os.Remove(tmp.Name())
			return fmt.Errorf("error encoding %s: %w", s.path, err)
		}
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("error closing file %s: %w", tmp.Name(), err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("error replacing %s: %w", s.path, err)
	}
	s.dirty = false
	return nil
}
