package services

import (
	"context"
	"sync"

	"github.com/tutorlink/authgate/core"
)

// FakeAuthAPI is a test-only fake implementing core.AuthAPI. It exposes
// per-call error fields for behavior injection, counts calls, and can
// block a call on a channel to exercise concurrency.
type FakeAuthAPI struct {
	mu sync.Mutex

	SignInResult *core.SignInResult
	SessionUser  *core.Identity

	SignUpErr  error
	SignInErr  error
	SignOutErr error
	SessionErr error

	SignUpCalls  int
	SignInCalls  int
	SignOutCalls int
	SessionCalls int

	// SignInGate, when non-nil, blocks SignIn until the channel is
	// closed. Used to hold a login in flight.
	SignInGate chan struct{}
}

var _ core.AuthAPI = (*FakeAuthAPI)(nil)

func NewFakeAuthAPI() *FakeAuthAPI {
	return &FakeAuthAPI{}
}

func (f *FakeAuthAPI) SignUp(ctx context.Context, input core.SignUpInput) error {
	f.mu.Lock()
	f.SignUpCalls++
	err := f.SignUpErr
	f.mu.Unlock()
	return err
}

func (f *FakeAuthAPI) SignIn(ctx context.Context, input core.SignInInput) (*core.SignInResult, error) {
	f.mu.Lock()
	f.SignInCalls++
	gate := f.SignInGate
	result, err := f.SignInResult, f.SignInErr
	f.mu.Unlock()

	if gate != nil {
		<-gate
	}
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (f *FakeAuthAPI) SignOut(ctx context.Context, token string) error {
	f.mu.Lock()
	f.SignOutCalls++
	err := f.SignOutErr
	f.mu.Unlock()
	return err
}

func (f *FakeAuthAPI) Session(ctx context.Context, token string) (*core.Identity, error) {
	f.mu.Lock()
	f.SessionCalls++
	user, err := f.SessionUser, f.SessionErr
	f.mu.Unlock()

	if err != nil {
		return nil, err
	}
	return user, nil
}

// FakeTokenStore is a test-only in-memory token store with injectable
// errors.
type FakeTokenStore struct {
	mu    sync.Mutex
	token string

	LoadErr  error
	SaveErr  error
	ClearErr error

	ClearCalls int
}

var _ core.TokenStore = (*FakeTokenStore)(nil)

func NewFakeTokenStore(token string) *FakeTokenStore {
	return &FakeTokenStore{token: token}
}

func (f *FakeTokenStore) Load(ctx context.Context) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.LoadErr != nil {
		return "", f.LoadErr
	}
	return f.token, nil
}

func (f *FakeTokenStore) Save(ctx context.Context, token string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.SaveErr != nil {
		return f.SaveErr
	}
	f.token = token
	return nil
}

func (f *FakeTokenStore) Clear(ctx context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.ClearCalls++
	if f.ClearErr != nil {
		return f.ClearErr
	}
	f.token = ""
	return nil
}

func (f *FakeTokenStore) Token() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.token
}

// FakeNavigator records every path the controller navigates to.
type FakeNavigator struct {
	mu    sync.Mutex
	paths []string
}

func NewFakeNavigator() *FakeNavigator {
	return &FakeNavigator{}
}

func (f *FakeNavigator) Navigate(path string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.paths = append(f.paths, path)
}

func (f *FakeNavigator) Paths() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.paths...)
}

func (f *FakeNavigator) Last() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.paths) == 0 {
		return ""
	}
	return f.paths[len(f.paths)-1]
}

// FakeIdentityCache is a test-only identity cache.
type FakeIdentityCache struct {
	mu      sync.Mutex
	entries map[string]*core.Identity

	GetCalls int
	SetCalls int
}

var _ core.IdentityCache = (*FakeIdentityCache)(nil)

func NewFakeIdentityCache() *FakeIdentityCache {
	return &FakeIdentityCache{entries: make(map[string]*core.Identity)}
}

func (f *FakeIdentityCache) Get(ctx context.Context, tokenHash string) (*core.Identity, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.GetCalls++
	identity, ok := f.entries[tokenHash]
	if !ok {
		return nil, core.ErrCacheMiss
	}
	return identity, nil
}

func (f *FakeIdentityCache) Set(ctx context.Context, tokenHash string, identity *core.Identity) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.SetCalls++
	f.entries[tokenHash] = identity
	return nil
}

func (f *FakeIdentityCache) Delete(ctx context.Context, tokenHash string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.entries, tokenHash)
	return nil
}
