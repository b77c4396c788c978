// Package store persists the small amount of client-local state that must
// survive restarts: the auth token pair plus two user preferences (UI
// language, recently used category codes).
package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"sync"
)

const (
	keyToken        = "basaaj_token"
	keyRefreshToken = "basaaj_refresh_token"
	keyLanguage     = "basaaj_language"
	keyRecentCats   = "basaaj_recent_categories"
)

// maxRecentCategories bounds the recent-category preference.
const maxRecentCategories = 5

// Store is a file-backed string key/value table. A Store opened with an
// empty path keeps everything in memory, which tests rely on.
type Store struct {
	mu   sync.Mutex
	path string
	data map[string]string
}

// Open loads existing state from path, creating parent directories as
// needed. A missing file is not an error; it simply starts empty.
func Open(path string) (*Store, error) {
	s := &Store{path: path, data: make(map[string]string)}
	if path == "" {
		return s, nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, fmt.Errorf("failed to create state directory: %w", err)
	}
	raw, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read state file: %w", err)
	}
	if err := json.Unmarshal(raw, &s.data); err != nil {
		// A corrupt state file degrades to a fresh anonymous session.
		s.data = make(map[string]string)
	}
	return s, nil
}

// Memory returns a purely in-memory store.
func Memory() *Store {
	return &Store{data: make(map[string]string)}
}

// persist writes the table atomically (temp file + rename). Caller holds mu.
func (s *Store) persist() error {
	if s.path == "" {
		return nil
	}
	raw, err := json.MarshalIndent(s.data, "", "  ")
	if err != nil {
		return err
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, raw, 0o600); err != nil {
		return fmt.Errorf("failed to write state file: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("failed to replace state file: %w", err)
	}
	return nil
}

// Token returns the persisted access token, or "" when anonymous.
func (s *Store) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.data[keyToken]
}

// RefreshToken returns the persisted refresh token, if any.
func (s *Store) RefreshToken() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.data[keyRefreshToken]
}

// SetTokens stores the access token and, when present, the refresh token.
func (s *Store) SetTokens(access, refresh string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[keyToken] = access
	if refresh != "" {
		s.data[keyRefreshToken] = refresh
	}
	return s.persist()
}

// ClearTokens removes both tokens, returning the session to anonymous.
func (s *Store) ClearTokens() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, keyToken)
	delete(s.data, keyRefreshToken)
	return s.persist()
}

func (s *Store) Language() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.data[keyLanguage]
}

func (s *Store) SetLanguage(lang string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[keyLanguage] = lang
	return s.persist()
}

// RecentCategories returns the most recently used category codes, newest
// first.
func (s *Store) RecentCategories() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return decodeList(s.data[keyRecentCats])
}

// PushRecentCategory moves code to the front of the recent list,
// deduplicating and keeping at most maxRecentCategories entries.
func (s *Store) PushRecentCategory(code string) error {
	if code == "" {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	list := decodeList(s.data[keyRecentCats])
	list = slices.DeleteFunc(list, func(c string) bool { return c == code })
	list = append([]string{code}, list...)
	if len(list) > maxRecentCategories {
		list = list[:maxRecentCategories]
	}
	raw, err := json.Marshal(list)
	if err != nil {
		return err
	}
	s.data[keyRecentCats] = string(raw)
	return s.persist()
}

func decodeList(raw string) []string {
	if raw == "" {
		return nil
	}
	var list []string
	if err := json.Unmarshal([]byte(raw), &list); err != nil {
		return nil
	}
	return list
}
