package platform

import (
	"os"
	"path/filepath"
	"testing"
)

func writeOSRelease(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "os-release")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write os-release fixture: %v", err)
	}
	return path
}

func TestDetect_VersionCodename(t *testing.T) {
	path := writeOSRelease(t, `NAME="Ubuntu"
VERSION="22.04.3 LTS (Jammy Jellyfish)"
ID=ubuntu
VERSION_CODENAME=jammy
UBUNTU_CODENAME=jammy
`)

	d := NewDetectorWithReleaseFile(path)
	d.goos = func() string { return "linux" }
	d.goarch = func() string { return "amd64" }

	info, err := d.Detect()
	if err != nil {
		t.Fatalf("Detect() error = %v", err)
	}
	if info.Codename != "jammy" {
		t.Errorf("Codename = %q, want jammy", info.Codename)
	}
	if info.Arch != "amd64" {
		t.Errorf("Arch = %q, want amd64", info.Arch)
	}
}

func TestDetect_UbuntuCodenameFallback(t *testing.T) {
	path := writeOSRelease(t, `NAME="Pop!_OS"
ID=pop
UBUNTU_CODENAME=focal
`)

	d := NewDetectorWithReleaseFile(path)
	d.goos = func() string { return "linux" }
	d.goarch = func() string { return "arm64" }

	info, err := d.Detect()
	if err != nil {
		t.Fatalf("Detect() error = %v", err)
	}
	if info.Codename != "focal" {
		t.Errorf("Codename = %q, want focal", info.Codename)
	}
	if info.Arch != "arm64" {
		t.Errorf("Arch = %q, want arm64", info.Arch)
	}
}

func TestDetect_QuotedCodename(t *testing.T) {
	path := writeOSRelease(t, `VERSION_CODENAME="bionic"`)

	d := NewDetectorWithReleaseFile(path)
	d.goos = func() string { return "linux" }
	d.goarch = func() string { return "amd64" }

	info, err := d.Detect()
	if err != nil {
		t.Fatalf("Detect() error = %v", err)
	}
	if info.Codename != "bionic" {
		t.Errorf("Codename = %q, want bionic", info.Codename)
	}
}

func TestDetect_MissingCodename(t *testing.T) {
	path := writeOSRelease(t, `NAME="Some Linux"
ID=something
`)

	d := NewDetectorWithReleaseFile(path)
	d.goos = func() string { return "linux" }
	d.goarch = func() string { return "amd64" }

	if _, err := d.Detect(); err == nil {
		t.Error("Detect() should fail when no codename is present")
	}
}

func TestDetect_UnsupportedOS(t *testing.T) {
	d := NewDetector()
	d.goos = func() string { return "darwin" }

	if _, err := d.Detect(); err == nil {
		t.Error("Detect() should fail on non-linux")
	}
}

func TestDetect_UnsupportedArch(t *testing.T) {
	d := NewDetector()
	d.goos = func() string { return "linux" }
	d.goarch = func() string { return "mips" }

	if _, err := d.Detect(); err == nil {
		t.Error("Detect() should fail on unsupported architecture")
	}
}

func TestDetect_I386Mapping(t *testing.T) {
	path := writeOSRelease(t, `VERSION_CODENAME=xenial`)

	d := NewDetectorWithReleaseFile(path)
	d.goos = func() string { return "linux" }
	d.goarch = func() string { return "386" }

	info, err := d.Detect()
	if err != nil {
		t.Fatalf("Detect() error = %v", err)
	}
	if info.Arch != "i386" {
		t.Errorf("Arch = %q, want i386", info.Arch)
	}
}
