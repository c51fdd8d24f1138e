package osutil

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

// MockPathProvider is a mock implementation for testing.
type MockPathProvider struct {
	UserConfigDirFn func() (string, error)
	MkdirAllFn      func(path string, perm os.FileMode) error
}

func (m *MockPathProvider) UserConfigDir() (string, error) {
	if m.UserConfigDirFn != nil {
		return m.UserConfigDirFn()
	}
	return "", nil
}

func (m *MockPathProvider) MkdirAll(path string, perm os.FileMode) error {
	if m.MkdirAllFn != nil {
		return m.MkdirAllFn(path, perm)
	}
	return nil
}

func TestDefaultPathProvider_UserConfigDir(t *testing.T) {
	p := DefaultPathProvider{}
	dir, err := p.UserConfigDir()
	if err != nil {
		t.Fatalf("UserConfigDir returned error: %v", err)
	}
	if dir == "" {
		t.Error("UserConfigDir returned empty string")
	}
}

func TestDefaultPathProvider_MkdirAll(t *testing.T) {
	p := DefaultPathProvider{}
	tmpDir := t.TempDir()
	testDir := tmpDir + "/test/nested/dir"

	err := p.MkdirAll(testDir, 0755)
	if err != nil {
		t.Fatalf("MkdirAll returned error: %v", err)
	}

	// Verify directory was created
	info, err := os.Stat(testDir)
	if err != nil {
		t.Fatalf("Failed to stat created directory: %v", err)
	}
	if !info.IsDir() {
		t.Error("MkdirAll did not create a directory")
	}
}

func TestSetProvider(t *testing.T) {
	// Save original provider
	original := Provider
	defer func() { Provider = original }()

	mock := &MockPathProvider{
		UserConfigDirFn: func() (string, error) {
			return "/mock/config", nil
		},
	}

	SetProvider(mock)

	if Provider != mock {
		t.Error("SetProvider did not set the provider")
	}

	dir, _ := Provider.UserConfigDir()
	if dir != "/mock/config" {
		t.Errorf("Expected /mock/config, got %s", dir)
	}
}

func TestResetProvider(t *testing.T) {
	// Save original provider
	original := Provider
	defer func() { Provider = original }()

	mock := &MockPathProvider{}
	SetProvider(mock)

	ResetProvider()

	_, ok := Provider.(DefaultPathProvider)
	if !ok {
		t.Error("ResetProvider did not reset to DefaultPathProvider")
	}
}

func TestAppDir(t *testing.T) {
	defer ResetProvider()
	root := t.TempDir()
	SetProvider(&MockPathProvider{
		UserConfigDirFn: func() (string, error) { return root, nil },
		MkdirAllFn:      os.MkdirAll,
	})

	dir, err := AppDir("daylog")
	if err != nil {
		t.Fatalf("AppDir returned error: %v", err)
	}
	if dir != filepath.Join(root, "daylog") {
		t.Errorf("AppDir = %q, want %q", dir, filepath.Join(root, "daylog"))
	}
	if info, err := os.Stat(dir); err != nil || !info.IsDir() {
		t.Errorf("AppDir did not create %s", dir)
	}
}

func TestAppDir_Errors(t *testing.T) {
	defer ResetProvider()
	boom := errors.New("permission denied")

	SetProvider(&MockPathProvider{
		UserConfigDirFn: func() (string, error) { return "", boom },
	})
	if _, err := AppDir("daylog"); !errors.Is(err, boom) {
		t.Errorf("expected config dir error, got %v", err)
	}

	SetProvider(&MockPathProvider{
		UserConfigDirFn: func() (string, error) { return "/mock/config", nil },
		MkdirAllFn:      func(string, os.FileMode) error { return boom },
	})
	if _, err := AppDir("daylog"); !errors.Is(err, boom) {
		t.Errorf("expected mkdir error, got %v", err)
	}
}
