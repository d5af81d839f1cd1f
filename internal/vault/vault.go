// Package vault holds the in-memory credential store.
//
// The store is a name→secret mapping owned by exactly one session. It is
// the unit of persistence: the whole map is serialized, sealed and written
// as one container, never partially.
package vault

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/passmgr/internal/common"
)

// Store maps credential names to secrets, preserving insertion order for
// listing. Ordering is cosmetic: the serialized payload is a JSON object,
// so order across processes is not guaranteed.
type Store struct {
	entries map[string]string
	names   []string
	index   *trie
}

// New returns an empty store.
func New() *Store {
	return &Store{entries: make(map[string]string), index: newTrie()}
}

// Add inserts a new credential. Fails with ErrEntryAlreadyExists if the
// name is taken; the store is left unchanged in that case.
func (s *Store) Add(name, secret string) error {
	if name == "" {
		return errors.New("credential name is empty")
	}
	if _, ok := s.entries[name]; ok {
		return fmt.Errorf("%q: %w", name, common.ErrEntryAlreadyExists)
	}
	s.entries[name] = secret
	s.names = append(s.names, name)
	s.index.insert(name)
	return nil
}

// Get returns the secret stored under name.
func (s *Store) Get(name string) (string, error) {
	secret, ok := s.entries[name]
	if !ok {
		return "", fmt.Errorf("%q: %w", name, common.ErrEntryNotFound)
	}
	return secret, nil
}

// Edit overwrites the secret of an existing credential.
func (s *Store) Edit(name, secret string) error {
	if _, ok := s.entries[name]; !ok {
		return fmt.Errorf("%q: %w", name, common.ErrEntryNotFound)
	}
	s.entries[name] = secret
	return nil
}

// Remove deletes a credential.
func (s *Store) Remove(name string) error {
	if _, ok := s.entries[name]; !ok {
		return fmt.Errorf("%q: %w", name, common.ErrEntryNotFound)
	}
	delete(s.entries, name)
	for i, n := range s.names {
		if n == name {
			s.names = append(s.names[:i], s.names[i+1:]...)
			break
		}
	}
	s.index.remove(name)
	return nil
}

// List returns all credential names in insertion order.
func (s *Store) List() []string {
	return append([]string(nil), s.names...)
}

// Completions returns the stored names starting with prefix, in
// lexicographic order. An empty prefix matches everything.
func (s *Store) Completions(prefix string) []string {
	return s.index.completions(prefix)
}

// Len reports the number of stored credentials.
func (s *Store) Len() int {
	return len(s.entries)
}

// MarshalPayload serializes the store to its plaintext payload, a UTF-8
// JSON object mapping names to secrets. The caller owns the returned
// bytes and must wipe them once sealed.
func (s *Store) MarshalPayload() ([]byte, error) {
	payload, err := json.Marshal(s.entries)
	if err != nil {
		return nil, fmt.Errorf("marshal store: %w", err)
	}
	return payload, nil
}

// UnmarshalPayload replaces the store contents with the given plaintext
// payload produced by MarshalPayload.
func (s *Store) UnmarshalPayload(payload []byte) error {
	entries := make(map[string]string)
	if err := json.Unmarshal(payload, &entries); err != nil {
		return fmt.Errorf("unmarshal store: %w", err)
	}

	s.entries = entries
	s.names = s.names[:0]
	s.index = newTrie()
	for name := range entries {
		s.names = append(s.names, name)
		s.index.insert(name)
	}
	return nil
}
