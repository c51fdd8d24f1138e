package handlers

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/fatih/color"

	"github.com/xolan/daylog/internal/cli"
	"github.com/xolan/daylog/internal/config"
	"github.com/xolan/daylog/internal/form"
	"github.com/xolan/daylog/internal/service"
	"github.com/xolan/daylog/internal/session"
	"github.com/xolan/daylog/internal/store"
	"github.com/xolan/daylog/internal/supabase"
)

var testNow = time.Date(2024, time.March, 10, 9, 30, 0, 0, time.UTC)

func fixedNow() time.Time { return testNow }

func init() {
	color.NoColor = true
}

func testConfig() config.Config {
	cfg := config.DefaultConfig()
	cfg.Backend = config.BackendMemory
	cfg.Presets = map[string]config.PresetConfig{
		"run": {Category: "exercise", Title: "Evening run", Values: map[string]string{"exercise_type": "running"}},
	}
	return cfg
}

func newDeps(t *testing.T, services *service.Services, cfg config.Config) (*cli.Deps, *bytes.Buffer, *bytes.Buffer, *int) {
	t.Helper()
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}
	exitCode := 0

	deps := &cli.Deps{
		Stdout:   stdout,
		Stderr:   stderr,
		Stdin:    strings.NewReader(""),
		Exit:     func(code int) { exitCode = code },
		Services: services,
		Config:   cfg,
		Sleep:    func(time.Duration) {},
	}
	return deps, stdout, stderr, &exitCode
}

// setupTestDeps creates deps over an in-memory journal without accounts.
func setupTestDeps(t *testing.T) (*cli.Deps, *bytes.Buffer, *bytes.Buffer, *int) {
	t.Helper()
	cfg := testConfig()
	services, err := service.NewServices(context.Background(), service.Options{
		Config:     cfg,
		ConfigPath: filepath.Join(t.TempDir(), "config.toml"),
		Now:        fixedNow,
	})
	if err != nil {
		t.Fatalf("NewServices failed: %v", err)
	}
	return newDeps(t, services, cfg)
}

// setupLocalDeps creates deps over a JSONL file in a temp directory.
func setupLocalDeps(t *testing.T) (*cli.Deps, *bytes.Buffer, *bytes.Buffer, *int) {
	t.Helper()
	cfg := testConfig()
	cfg.Backend = config.BackendLocal
	cfg.Local.Path = filepath.Join(t.TempDir(), "entries.jsonl")
	services, err := service.NewServices(context.Background(), service.Options{
		Config:     cfg,
		ConfigPath: filepath.Join(t.TempDir(), "config.toml"),
		Now:        fixedNow,
	})
	if err != nil {
		t.Fatalf("NewServices failed: %v", err)
	}
	return newDeps(t, services, cfg)
}

type fakeAuth struct {
	session *supabase.Session
	signUp  *supabase.SignUpResult
	err     error
	email   string
}

func (f *fakeAuth) SignInWithPassword(_ context.Context, email, _ string) (*supabase.Session, error) {
	f.email = email
	return f.session, f.err
}
func (f *fakeAuth) RefreshSession(context.Context, string) (*supabase.Session, error) {
	return f.session, f.err
}
func (f *fakeAuth) SignUp(context.Context, string, string) (*supabase.SignUpResult, error) {
	return f.signUp, f.err
}
func (f *fakeAuth) Recover(_ context.Context, email, _ string) error {
	f.email = email
	return f.err
}
func (f *fakeAuth) GetUser(context.Context, string) (*supabase.User, error) {
	return f.session.User, f.err
}
func (f *fakeAuth) UpdatePassword(context.Context, string, string) (*supabase.User, error) {
	return f.session.User, f.err
}
func (f *fakeAuth) Logout(context.Context, string) error { return nil }

// setupAccountDeps creates deps with a session gateway over a fake auth
// service.
func setupAccountDeps(t *testing.T) (*cli.Deps, *bytes.Buffer, *bytes.Buffer, *int, *fakeAuth) {
	t.Helper()
	auth := &fakeAuth{session: &supabase.Session{
		AccessToken: "token",
		ExpiresAt:   testNow.Add(time.Hour).Unix(),
		User:        &supabase.User{ID: "user-1", Email: "ada@example.com"},
	}}
	gateway := session.NewGateway(auth, session.NewDiskCache(t.TempDir()),
		session.WithClock(fixedNow), session.WithRedirectDelay(0))

	cfg := config.DefaultConfig()
	services, err := service.NewServices(context.Background(), service.Options{
		Config:     cfg,
		ConfigPath: filepath.Join(t.TempDir(), "config.toml"),
		Now:        fixedNow,
		Backend:    store.NewMemoryBackend(),
		Gateway:    gateway,
	})
	if err != nil {
		t.Fatalf("NewServices failed: %v", err)
	}
	deps, stdout, stderr, exitCode := newDeps(t, services, cfg)
	return deps, stdout, stderr, exitCode, auth
}

func addEntry(t *testing.T, deps *cli.Deps, category, title string, values map[form.Field]string) {
	t.Helper()
	if values == nil {
		values = map[form.Field]string{}
	}
	values[form.FieldTitle] = title
	_, err := deps.Services.Journal.Add(context.Background(), service.AddRequest{Category: category, Values: values})
	if err != nil {
		t.Fatalf("Add failed: %v", err)
	}
}
