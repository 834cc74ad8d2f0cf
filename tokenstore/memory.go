// Package tokenstore provides durable storage for the bearer token: one
// token under one fixed slot, present only while authenticated.
package tokenstore

import (
	"context"
	"sync"

	"github.com/tutorlink/authgate/core"
)

// Memory holds the token in process memory only. Suited to tests and to
// clients that should forget the session on exit.
type Memory struct {
	mu    sync.Mutex
	token string
}

var _ core.TokenStore = (*Memory)(nil)

func NewMemory() *Memory {
	return &Memory{}
}

func (m *Memory) Load(ctx context.Context) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.token, nil
}

func (m *Memory) Save(ctx context.Context, token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.token = token
	return nil
}

func (m *Memory) Clear(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.token = ""
	return nil
}
