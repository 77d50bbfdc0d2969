package wkhtmltox

import (
	"fmt"
	"strings"

	"github.com/researchagg/hostprep/internal/platform"
)

// UnsupportedReleaseError reports a host release codename that has no
// published wkhtmltox build.
type UnsupportedReleaseError struct {
	Codename string
}

func (e *UnsupportedReleaseError) Error() string {
	return fmt.Sprintf("unsupported OS release codename %q (supported: %s)",
		e.Codename, strings.Join(SupportedCodenames(), ", "))
}

// SupportedCodenames lists the codenames present in the release map,
// in stable order.
func SupportedCodenames() []string {
	return []string{"jammy", "focal", "bionic", "xenial"}
}

// Resolve maps the detected host platform to a concrete download URL.
// It performs no I/O, so an unsupported codename fails before any
// network call is attempted.
func Resolve(baseURL string, host platform.Info) (Artifact, error) {
	release, ok := releases[host.Codename]
	if !ok {
		return Artifact{}, &UnsupportedReleaseError{Codename: host.Codename}
	}

	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	baseURL = strings.TrimRight(baseURL, "/")

	url := fmt.Sprintf("%s/%s/wkhtmltox_%s.%s_%s.deb",
		baseURL, release.Tag, release.PackageVersion, host.Codename, host.Arch)

	return Artifact{
		URL:      url,
		Codename: host.Codename,
		Arch:     host.Arch,
		Release:  release,
	}, nil
}
