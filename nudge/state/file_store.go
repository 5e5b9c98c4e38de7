package state

import (
	"encoding/json"
	"fmt"
	"path"
	"regexp"
	"time"

	"github.com/gofrs/flock"
	"github.com/spf13/afero"

	"github.com/nudgeworks/nudge/internal/file"
	"github.com/nudgeworks/nudge/internal/log"
)

const (
	FileName     = "state.json"
	lockFileName = "state.lock"
)

var unsafePathChars = regexp.MustCompile(`[^A-Za-z0-9._-]+`)

var _ Store = (*FileStore)(nil)

type locker interface {
	Lock() error
	Unlock() error
}

type nopLocker struct{}

func (nopLocker) Lock() error   { return nil }
func (nopLocker) Unlock() error { return nil }

// FileStore keeps State as a JSON document at <root>/<app identifier>/state.json.
type FileStore struct {
	fs   afero.Fs
	dir  string
	path string
	lock locker
}

// NewFileStore returns a store keyed by the consuming app's identity. When backed by the OS filesystem every
// read-modify-write is serialized with an advisory file lock so concurrent processes do not clobber each other.
func NewFileStore(fs afero.Fs, rootDir, appIdentifier string) (*FileStore, error) {
	if appIdentifier == "" {
		return nil, fmt.Errorf("an app identifier is required to key the state store")
	}
	if rootDir == "" {
		return nil, fmt.Errorf("a state directory is required")
	}

	dir := path.Join(rootDir, unsafePathChars.ReplaceAllString(appIdentifier, "_"))

	var lock locker = nopLocker{}
	if _, ok := fs.(*afero.OsFs); ok {
		if err := fs.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("unable to create state directory %q: %w", dir, err)
		}
		lock = flock.New(path.Join(dir, lockFileName))
	}

	return &FileStore{
		fs:   fs,
		dir:  dir,
		path: path.Join(dir, FileName),
		lock: lock,
	}, nil
}

// Location is the path of the backing state file.
func (s *FileStore) Location() string {
	return s.path
}

func (s *FileStore) Get() (State, error) {
	if err := s.lock.Lock(); err != nil {
		return State{}, fmt.Errorf("unable to lock state: %w", err)
	}
	defer s.unlock()

	return s.read()
}

func (s *FileStore) SetLastAlertDate(t time.Time) error {
	return s.update(func(st *State) {
		utc := t.UTC()
		st.LastAlertDate = &utc
	})
}

func (s *FileStore) SetSkippedVersion(v string) error {
	return s.update(func(st *State) {
		st.SkippedVersion = v
	})
}

func (s *FileStore) SetPendingNextLaunchCheck(pending bool) error {
	return s.update(func(st *State) {
		st.PendingNextLaunchCheck = pending
	})
}

// Reset forgets all persisted state.
func (s *FileStore) Reset() error {
	if err := s.lock.Lock(); err != nil {
		return fmt.Errorf("unable to lock state: %w", err)
	}
	defer s.unlock()

	exists, err := file.Exists(s.fs, s.path)
	if err != nil {
		return err
	}
	if !exists {
		return nil
	}
	if err := s.fs.Remove(s.path); err != nil {
		return fmt.Errorf("unable to remove state (%s): %w", s.path, err)
	}
	return nil
}

func (s *FileStore) update(mutate func(*State)) error {
	if err := s.lock.Lock(); err != nil {
		return fmt.Errorf("unable to lock state: %w", err)
	}
	defer s.unlock()

	current, err := s.read()
	if err != nil {
		// a corrupt document should not block recording new state; the other fields start over.
		log.Warnf("discarding unreadable state: %+v", err)
		current = State{}
	}

	mutate(&current)

	contents, err := json.MarshalIndent(&current, "", " ")
	if err != nil {
		return fmt.Errorf("failed to encode state: %w", err)
	}

	if err := file.WriteAtomic(s.fs, s.path, contents, 0600); err != nil {
		return fmt.Errorf("failed to write state: %w", err)
	}
	log.Debugf("persisted %s to %s", current, s.path)
	return nil
}

func (s *FileStore) read() (State, error) {
	exists, err := file.Exists(s.fs, s.path)
	if err != nil {
		return State{}, fmt.Errorf("unable to check if state exists (%s): %w", s.path, err)
	}
	if !exists {
		return State{}, nil
	}

	contents, err := afero.ReadFile(s.fs, s.path)
	if err != nil {
		return State{}, fmt.Errorf("unable to read state (%s): %w", s.path, err)
	}

	var st State
	if err := json.Unmarshal(contents, &st); err != nil {
		return State{}, fmt.Errorf("unable to parse state (%s): %w", s.path, err)
	}
	return st, nil
}

func (s *FileStore) unlock() {
	if err := s.lock.Unlock(); err != nil {
		log.Warnf("unable to unlock state: %+v", err)
	}
}
