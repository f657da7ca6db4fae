package client

import (
	"os"
	"path/filepath"
	"sync"

	"gopkg.in/ini.v1"
)

// CredentialStore owns the active credential value. Read reports absence
// with the second return; an absent credential means "unauthenticated".
type CredentialStore interface {
	Read() (string, bool)
	Write(value string) error
	Clear() error
}

const credentialSection = "auth"

// fileStore persists the credential in an ini file and keeps an in-process
// cache so repeated reads cost no I/O. A missing or unwritable durable
// layer degrades to cache-only operation rather than erroring: the store
// must keep working in environments without a home directory.
type fileStore struct {
	mu     sync.Mutex
	path   string
	key    string
	loaded bool
	value  string
	exists bool
}

// NewFileStore returns a credential store backed by the ini file at path.
// key is the ini key the value lives under, namespaced per credential mode
// so token and session-key deployments never collide.
func NewFileStore(path string, mode CredentialMode) CredentialStore {
	key := "token"
	if mode == ModeSessionKey {
		key = "session_key"
	}
	return &fileStore{path: path, key: key}
}

func (s *fileStore) Read() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.loaded {
		s.load()
	}
	return s.value, s.exists
}

func (s *fileStore) Write(value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.loaded = true
	s.value = value
	s.exists = value != ""
	s.persist()
	return nil
}

func (s *fileStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.loaded = true
	s.value = ""
	s.exists = false
	s.persist()
	return nil
}

func (s *fileStore) load() {
	s.loaded = true

	cfg, err := ini.Load(s.path)
	if err != nil {
		// Absent file reads as absent credential.
		return
	}

	key := cfg.Section(credentialSection).Key(s.key)
	if v := key.String(); v != "" {
		s.value = v
		s.exists = true
	}
}

func (s *fileStore) persist() {
	cfg, err := ini.Load(s.path)
	if err != nil {
		cfg = ini.Empty()
	}

	section := cfg.Section(credentialSection)
	if s.exists {
		section.Key(s.key).SetValue(s.value)
	} else {
		section.DeleteKey(s.key)
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return
	}
	_ = cfg.SaveTo(s.path)
}

// memoryStore holds the credential in process only. Used in tests and as
// the fallback when no durable location is configured.
type memoryStore struct {
	mu     sync.Mutex
	value  string
	exists bool
}

func NewMemoryStore() CredentialStore {
	return &memoryStore{}
}

func (s *memoryStore) Read() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.value, s.exists
}

func (s *memoryStore) Write(value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.value = value
	s.exists = value != ""
	return nil
}

func (s *memoryStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.value = ""
	s.exists = false
	return nil
}
