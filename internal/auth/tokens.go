package auth

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"
)

// TokenSource is the auth context handed to the API client. It replaces
// ad hoc reads of client-side storage: every call site that needs the
// bearer token goes through the same injected object, and a 401 from the
// backend clears it in one place.
type TokenSource interface {
	// Token returns the current bearer token, or "" if logged out.
	Token() string
	// Clear drops all stored tokens. Called by the API client on a 401.
	Clear()
}

// StaticToken wraps a token forwarded per-request (the BFF case: the
// browser already holds the token and sends it in the Authorization
// header). Clear only empties the in-memory copy.
type StaticToken struct {
	mu  sync.Mutex
	tok string
}

func NewStaticToken(tok string) *StaticToken {
	return &StaticToken{tok: tok}
}

func (s *StaticToken) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tok
}

func (s *StaticToken) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tok = ""
}

// storedTokens is the on-disk shape of the token file.
type storedTokens struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token,omitempty"`
}

// FileStore keeps tokens in a local JSON file (token.json style), for the
// CLI / local-dev case where no browser session exists.
type FileStore struct {
	mu   sync.Mutex
	path string
}

func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Token retrieves the access token from the local file.
func (f *FileStore) Token() string {
	f.mu.Lock()
	defer f.mu.Unlock()

	file, err := os.Open(f.path)
	if err != nil {
		return ""
	}
	defer file.Close()

	var tok storedTokens
	if err := json.NewDecoder(file).Decode(&tok); err != nil {
		return ""
	}
	return tok.AccessToken
}

// Save writes the tokens to the file path.
func (f *FileStore) Save(access, refresh string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	file, err := os.OpenFile(f.path, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return fmt.Errorf("unable to cache auth tokens: %w", err)
	}
	defer file.Close()
	return json.NewEncoder(file).Encode(storedTokens{AccessToken: access, RefreshToken: refresh})
}

// Clear removes the token file. The session is gone either way, so a
// missing file is not an error.
func (f *FileStore) Clear() {
	f.mu.Lock()
	defer f.mu.Unlock()
	_ = os.Remove(f.path)
}
