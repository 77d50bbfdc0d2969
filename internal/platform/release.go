package platform

import (
	"bufio"
	"fmt"
	"os"
	"runtime"
	"strings"
)

const osReleasePath = "/etc/os-release"

// Info describes the host as read from the OS, never from a caller.
type Info struct {
	Codename string
	Arch     string
}

var debArchs = map[string]string{
	"amd64": "amd64",
	"arm64": "arm64",
	"386":   "i386",
}

// Detector resolves the host's release codename and deb architecture.
// The os-release path and GOOS/GOARCH sources are injectable for tests.
type Detector struct {
	releaseFile string
	goos        func() string
	goarch      func() string
}

// NewDetector creates a detector reading the real host values.
func NewDetector() *Detector {
	return &Detector{
		releaseFile: osReleasePath,
		goos:        func() string { return runtime.GOOS },
		goarch:      func() string { return runtime.GOARCH },
	}
}

// NewDetectorWithReleaseFile creates a detector reading codename data
// from the given file. Used by tests.
func NewDetectorWithReleaseFile(path string) *Detector {
	d := NewDetector()
	d.releaseFile = path
	return d
}

// Detect reads the release codename and maps the CPU architecture.
func (d *Detector) Detect() (Info, error) {
	if d.goos() != "linux" {
		return Info{}, fmt.Errorf("unsupported operating system: %s", d.goos())
	}

	arch, ok := debArchs[d.goarch()]
	if !ok {
		return Info{}, fmt.Errorf("unsupported architecture: %s", d.goarch())
	}

	codename, err := d.readCodename()
	if err != nil {
		return Info{}, err
	}

	return Info{Codename: codename, Arch: arch}, nil
}

// readCodename parses VERSION_CODENAME (falling back to UBUNTU_CODENAME)
// out of the os-release file.
func (d *Detector) readCodename() (string, error) {
	file, err := os.Open(d.releaseFile)
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", d.releaseFile, err)
	}
	defer file.Close()

	var versionCodename, ubuntuCodename string

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		key, value, found := strings.Cut(line, "=")
		if !found {
			continue
		}
		value = strings.Trim(value, `"`)

		switch key {
		case "VERSION_CODENAME":
			versionCodename = value
		case "UBUNTU_CODENAME":
			ubuntuCodename = value
		}
	}
	if err := scanner.Err(); err != nil {
		return "", fmt.Errorf("failed to parse %s: %w", d.releaseFile, err)
	}

	if versionCodename != "" {
		return versionCodename, nil
	}
	if ubuntuCodename != "" {
		return ubuntuCodename, nil
	}

	return "", fmt.Errorf("no release codename found in %s", d.releaseFile)
}
