package doctor

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/researchagg/hostprep/internal/operations/pyenv"
	"github.com/researchagg/hostprep/internal/state"
	"github.com/researchagg/hostprep/pkg/logger"
)

func TestMain(m *testing.M) {
	if err := logger.Init(logger.Config{Level: "error", Format: "text"}); err != nil {
		panic(err)
	}
	os.Exit(m.Run())
}

type fakeRunner struct {
	version    string
	versionErr error
}

func (f *fakeRunner) Run(ctx context.Context, cmd string, args ...string) error {
	return nil
}

func (f *fakeRunner) RunWithOutput(ctx context.Context, cmd string, args ...string) ([]byte, error) {
	return nil, nil
}

func (f *fakeRunner) RunWithS(ctx context.Context, cmd string, args ...string) error {
	return nil
}

func (f *fakeRunner) RunWithOutputS(ctx context.Context, cmd string, args ...string) ([]byte, error) {
	return nil, nil
}

func (f *fakeRunner) RunAndTrimmedOutput(ctx context.Context, cmd string, args ...string) (string, error) {
	return f.version, f.versionErr
}

func (f *fakeRunner) LookPath(cmd string) (string, error) {
	return "/usr/bin/" + cmd, nil
}

func preparedHost(t *testing.T) (Options, *state.Store) {
	t.Helper()
	dir := t.TempDir()

	venv := filepath.Join(dir, "venv")
	if err := os.MkdirAll(filepath.Join(venv, "bin"), 0755); err != nil {
		t.Fatalf("failed to create venv fixture: %v", err)
	}
	if err := os.WriteFile(filepath.Join(venv, "bin", "python"), []byte("#!/bin/sh\n"), 0755); err != nil {
		t.Fatalf("failed to create interpreter fixture: %v", err)
	}

	envFile := filepath.Join(dir, ".env")
	if _, err := pyenv.WriteEnvFile(envFile, false); err != nil {
		t.Fatalf("failed to create env file fixture: %v", err)
	}

	store := state.NewStoreAt(filepath.Join(dir, "manifest.yaml"))
	err := store.Save(&state.Manifest{
		SetupID: "test-host",
		Renderer: &state.RendererState{
			PackageVersion: "0.12.6.1-2",
			InstalledAt:    time.Now().UTC(),
		},
		Bootstrap: &state.BootstrapState{
			VenvDir:     venv,
			CompletedAt: time.Now().UTC(),
		},
	})
	if err != nil {
		t.Fatalf("failed to save manifest fixture: %v", err)
	}

	return Options{VenvDir: venv, EnvFile: envFile}, store
}

func TestRun_HealthyHost(t *testing.T) {
	opts, store := preparedHost(t)
	runner := &fakeRunner{version: "wkhtmltopdf 0.12.6.1 (with patched qt)"}

	report := New(opts, runner, store).Run(context.Background())

	if !report.Healthy() {
		t.Errorf("report should be healthy: %+v", report.Checks)
	}
	if len(report.Checks) != 4 {
		t.Errorf("got %d checks, want 4", len(report.Checks))
	}
}

func TestRun_MissingRenderer(t *testing.T) {
	opts, store := preparedHost(t)
	runner := &fakeRunner{versionErr: fmt.Errorf("command error: executable not found")}

	report := New(opts, runner, store).Run(context.Background())

	if report.Healthy() {
		t.Fatal("report should not be healthy without the renderer")
	}
	if report.Problems() != 1 {
		t.Errorf("Problems() = %d, want 1", report.Problems())
	}
}

func TestRun_MissingEnvKeys(t *testing.T) {
	opts, store := preparedHost(t)
	if err := os.WriteFile(opts.EnvFile, []byte("GOOGLE_SHEET_ID=x\n"), 0600); err != nil {
		t.Fatalf("failed to rewrite env file: %v", err)
	}
	runner := &fakeRunner{version: "wkhtmltopdf 0.12.6.1"}

	report := New(opts, runner, store).Run(context.Background())

	if report.Healthy() {
		t.Fatal("report should flag missing env keys")
	}

	var envCheck *Check
	for i := range report.Checks {
		if report.Checks[i].Name == "env file" {
			envCheck = &report.Checks[i]
		}
	}
	if envCheck == nil || envCheck.OK {
		t.Fatalf("env file check should fail: %+v", envCheck)
	}
	if !strings.Contains(envCheck.Detail, "SERVICE_ACCOUNT_FILE") {
		t.Errorf("detail should name a missing key: %s", envCheck.Detail)
	}
}

func TestRun_EmptyManifest(t *testing.T) {
	opts, _ := preparedHost(t)
	manifestPath := filepath.Join(t.TempDir(), "manifest.yaml")
	emptyStore := state.NewStoreAt(manifestPath)
	runner := &fakeRunner{version: "wkhtmltopdf 0.12.6.1"}

	report := New(opts, runner, emptyStore).Run(context.Background())

	if report.Healthy() {
		t.Fatal("report should flag a missing manifest")
	}

	// Doctor is read-only: the missing manifest must not be created
	if _, err := os.Stat(manifestPath); !os.IsNotExist(err) {
		t.Error("doctor should not create the manifest")
	}
}
