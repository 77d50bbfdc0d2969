package state

import (
	"path/filepath"
	"testing"
	"time"
)

func TestLoad_MissingFile(t *testing.T) {
	store := NewStoreAt(filepath.Join(t.TempDir(), "manifest.yaml"))

	m, err := store.Load()
	if err != nil {
		t.Fatalf("Load() on missing file error = %v", err)
	}
	if m == nil {
		t.Fatal("Load() should return an empty manifest, not nil")
	}
	if m.Renderer != nil || m.Bootstrap != nil {
		t.Error("empty manifest should have no recorded state")
	}
}

func TestSaveLoad_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "manifest.yaml")
	store := NewStoreAt(path)

	installedAt := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	in := &Manifest{
		SetupID: "b2fcf95a-3a0f-4a64-9c1a-111111111111",
		Renderer: &RendererState{
			Version:        "wkhtmltopdf 0.12.6.1 (with patched qt)",
			PackageVersion: "0.12.6.1-2",
			URL:            "https://github.com/wkhtmltopdf/packaging/releases/download/0.12.6.1-2/wkhtmltox_0.12.6.1-2.jammy_amd64.deb",
			Codename:       "jammy",
			Arch:           "amd64",
			InstalledAt:    installedAt,
		},
		Bootstrap: &BootstrapState{
			VenvDir:     "venv",
			EnvFile:     ".env",
			CompletedAt: installedAt,
		},
	}

	if err := store.Save(in); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	out, err := store.Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if out.SetupID != in.SetupID {
		t.Errorf("SetupID = %q, want %q", out.SetupID, in.SetupID)
	}
	if out.Renderer == nil || out.Renderer.Codename != "jammy" {
		t.Errorf("Renderer state did not survive: %+v", out.Renderer)
	}
	if !out.Renderer.InstalledAt.Equal(installedAt) {
		t.Errorf("InstalledAt = %v, want %v", out.Renderer.InstalledAt, installedAt)
	}
	if out.Bootstrap == nil || out.Bootstrap.VenvDir != "venv" {
		t.Errorf("Bootstrap state did not survive: %+v", out.Bootstrap)
	}
}

func TestSave_PartialManifest(t *testing.T) {
	store := NewStoreAt(filepath.Join(t.TempDir(), "manifest.yaml"))

	if err := store.Save(&Manifest{SetupID: "id-only"}); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	out, err := store.Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if out.SetupID != "id-only" {
		t.Errorf("SetupID = %q", out.SetupID)
	}
	if out.Renderer != nil {
		t.Error("Renderer should stay nil in a partial manifest")
	}
}
