// Package session owns the unlock-and-persistence pipeline.
//
// A Session is the single mutator of one container file. It derives the
// master key, opens the sealed store, applies commands to the in-memory
// vault, re-seals and atomically persists after every mutation, and wipes
// all sensitive buffers on every path out, including failed unlocks.
package session

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/dmitrijs2005/passmgr/internal/common"
	"github.com/dmitrijs2005/passmgr/internal/container"
	"github.com/dmitrijs2005/passmgr/internal/filex"
	"github.com/dmitrijs2005/passmgr/internal/kdf"
	"github.com/dmitrijs2005/passmgr/internal/logging"
	"github.com/dmitrijs2005/passmgr/internal/secrets"
	"github.com/dmitrijs2005/passmgr/internal/vault"
)

// State tracks the controller's position in its lifecycle.
type State int

const (
	Locked State = iota
	Unlocking
	Unlocked
	Terminated
)

// Session drives one unlock → command loop → teardown cycle over a single
// container file. It is not safe for concurrent use; the command surface
// is strictly one-at-a-time by design.
type Session struct {
	dbPath string
	params kdf.Params
	log    logging.Logger

	state State
	salt  []byte
	key   *secrets.Buffer
	store *vault.Store
}

// New returns a locked session for the container at dbPath. params are
// the cost factors for a container created on first save; an existing
// container always wins with the parameters persisted in its header.
func New(dbPath string, params kdf.Params, log logging.Logger) *Session {
	return &Session{
		dbPath: dbPath,
		params: params,
		log:    log.With("session_id", uuid.NewString()),
		state:  Locked,
		store:  vault.New(),
	}
}

// State reports the current lifecycle state.
func (s *Session) State() State {
	return s.state
}

// Unlock takes ownership of password, derives the master key and opens
// the container. The password buffer is wiped before Unlock returns, on
// success and on every failure.
//
// Outcomes:
//   - missing container: a fresh salt is generated and an empty store is
//     sealed and persisted immediately, so the file exists after setup;
//   - structural garbage: ErrMalformedContainer, nothing decrypted;
//   - tag mismatch: ErrAuthenticationFailed, session terminated before a
//     single command can run, on-disk file untouched.
func (s *Session) Unlock(ctx context.Context, password *secrets.Buffer) error {
	defer password.Wipe()

	if s.state != Locked {
		return fmt.Errorf("unlock from state %d", s.state)
	}
	s.state = Unlocking

	if password.Len() == 0 {
		s.terminate()
		return common.ErrEmptyPassword
	}

	raw, err := container.Load(s.dbPath)
	switch {
	case errors.Is(err, common.ErrNoStore):
		return s.initialize(ctx, password)
	case err != nil:
		s.terminate()
		return err
	}

	hdr, ciphertext, err := container.Decode(raw)
	if err != nil {
		s.terminate()
		s.log.Warn(ctx, "container rejected", "err", err)
		return err
	}

	s.key = secrets.New(kdf.Derive(password.Bytes(), hdr.Salt, hdr.Params))
	password.Wipe()

	plaintext, err := container.Open(hdr.Nonce, ciphertext, s.key.Bytes())
	if err != nil {
		s.terminate()
		s.log.Warn(ctx, "unlock failed")
		return err
	}

	payload := secrets.New(plaintext)
	defer payload.Wipe()

	if err := s.store.UnmarshalPayload(payload.Bytes()); err != nil {
		s.terminate()
		return fmt.Errorf("%w: %v", common.ErrMalformedContainer, err)
	}

	s.salt = hdr.Salt
	s.params = hdr.Params
	s.state = Unlocked
	s.log.Info(ctx, "store unlocked", "entries", s.store.Len())
	return nil
}

// initialize sets up a brand-new container: fresh salt, empty store,
// first save. Runs only when no container file exists yet.
func (s *Session) initialize(ctx context.Context, password *secrets.Buffer) error {
	if err := s.params.Validate(); err != nil {
		s.terminate()
		return fmt.Errorf("kdf parameters: %w", err)
	}

	salt, err := container.NewSalt()
	if err != nil {
		s.terminate()
		return err
	}
	s.salt = salt

	s.key = secrets.New(kdf.Derive(password.Bytes(), s.salt, s.params))
	password.Wipe()

	if err := s.save(); err != nil {
		s.terminate()
		return err
	}

	s.state = Unlocked
	s.log.Info(ctx, "new store created")
	return nil
}

// Add inserts a credential and persists the store. On a persistence
// failure the entry stays applied in memory and the previous on-disk
// container is left intact; the caller is told the save did not happen.
func (s *Session) Add(name, secret string) error {
	if err := s.store.Add(name, secret); err != nil {
		return err
	}
	return s.save()
}

// Get returns the secret stored under name.
func (s *Session) Get(name string) (string, error) {
	return s.store.Get(name)
}

// Peek is Get; the difference (no trailing line terminator) is purely an
// output-formatting concern of the command loop.
func (s *Session) Peek(name string) (string, error) {
	return s.store.Get(name)
}

// Edit overwrites an existing secret and persists the store.
func (s *Session) Edit(name, secret string) error {
	if err := s.store.Edit(name, secret); err != nil {
		return err
	}
	return s.save()
}

// Remove deletes a credential and persists the store.
func (s *Session) Remove(name string) error {
	if err := s.store.Remove(name); err != nil {
		return err
	}
	return s.save()
}

// List returns credential names; with a non-empty prefix only matching
// names are returned.
func (s *Session) List(prefix string) []string {
	if prefix == "" {
		return s.store.List()
	}
	return s.store.Completions(prefix)
}

// save re-seals the whole store under the held key with a fresh nonce and
// atomically replaces the container file. The plaintext payload is wiped
// as soon as it has been sealed.
func (s *Session) save() error {
	if s.key == nil || s.key.Len() == 0 {
		return fmt.Errorf("%w: no key held", common.ErrPersistence)
	}

	raw, err := s.store.MarshalPayload()
	if err != nil {
		return fmt.Errorf("%w: %v", common.ErrPersistence, err)
	}
	payload := secrets.New(raw)
	defer payload.Wipe()

	nonce, ciphertext, err := container.Seal(payload.Bytes(), s.key.Bytes())
	if err != nil {
		return fmt.Errorf("%w: %v", common.ErrPersistence, err)
	}

	hdr := container.Header{
		Version: container.Version,
		Params:  s.params,
		Salt:    s.salt,
		Nonce:   nonce,
	}

	if err := filex.WriteFileAtomic(s.dbPath, container.Encode(hdr, ciphertext), 0o600); err != nil {
		return fmt.Errorf("%w: %v", common.ErrPersistence, err)
	}
	return nil
}

// Close tears the session down, wiping the master key. Idempotent and
// safe on every exit route, including sessions that never unlocked.
func (s *Session) Close() {
	s.terminate()
}

func (s *Session) terminate() {
	s.key.Wipe()
	s.state = Terminated
}
