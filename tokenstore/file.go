package tokenstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/tutorlink/authgate/core"
	"github.com/tutorlink/authgate/pkg/crypto"
)

// tokenKey is the single fixed slot the token lives under, mirroring the
// browser client's local-storage key.
const tokenKey = "authToken"

// File persists the token as a small JSON document on disk, mode 0600.
// With a passphrase set, the document is sealed at rest so a copied file
// is useless on its own.
type File struct {
	path       string
	passphrase string
	mu         sync.Mutex
}

var _ core.TokenStore = (*File)(nil)

// NewFile stores the token at path. passphrase may be empty for
// plaintext storage.
func NewFile(path, passphrase string) *File {
	return &File{path: path, passphrase: passphrase}
}

type tokenFile struct {
	AuthToken string `json:"authToken"`
}

func (f *File) Load(ctx context.Context) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	raw, err := os.ReadFile(f.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", nil
		}
		return "", fmt.Errorf("read token file: %w", err)
	}

	if f.passphrase != "" {
		raw, err = crypto.Open(raw, f.passphrase)
		if err != nil {
			return "", fmt.Errorf("unseal token file: %w", err)
		}
	}

	var doc tokenFile
	if err := json.Unmarshal(raw, &doc); err != nil {
		return "", fmt.Errorf("parse token file: %w", err)
	}
	return doc.AuthToken, nil
}

func (f *File) Save(ctx context.Context, token string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	raw, err := json.Marshal(tokenFile{AuthToken: token})
	if err != nil {
		return fmt.Errorf("encode token file: %w", err)
	}

	if f.passphrase != "" {
		raw, err = crypto.Seal(raw, f.passphrase)
		if err != nil {
			return fmt.Errorf("seal token file: %w", err)
		}
	}

	if dir := filepath.Dir(f.path); dir != "." {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return fmt.Errorf("create token dir: %w", err)
		}
	}

	if err := os.WriteFile(f.path, raw, 0o600); err != nil {
		return fmt.Errorf("write token file: %w", err)
	}
	return nil
}

func (f *File) Clear(ctx context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := os.Remove(f.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("remove token file: %w", err)
	}
	return nil
}
