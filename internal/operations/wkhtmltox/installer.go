package wkhtmltox

import (
	"context"
	"fmt"

	"github.com/researchagg/hostprep/internal/cmdrunner"
	"github.com/sirupsen/logrus"
)

// Installer drives the OS package manager for the downloaded deb.
type Installer struct {
	runner cmdrunner.CommandRunner
	logger *logrus.Entry
}

func NewInstaller(runner cmdrunner.CommandRunner) *Installer {
	return &Installer{
		runner: runner,
		logger: logrus.WithField("component", "wkhtmltox-installer"),
	}
}

// InstallPackage installs the downloaded deb via dpkg.
func (i *Installer) InstallPackage(ctx context.Context, artifactPath string) error {
	i.logger.WithField("artifact", artifactPath).Info("Installing package")

	if err := i.runner.RunWithS(ctx, "dpkg", "-i", artifactPath); err != nil {
		return fmt.Errorf("dpkg install failed: %w", err)
	}
	return nil
}

// RepairDependencies asks apt to satisfy any dependency declarations
// dpkg left unmet.
func (i *Installer) RepairDependencies(ctx context.Context) error {
	i.logger.Info("Repairing unmet dependencies")

	if err := i.runner.RunWithS(ctx, "apt-get", "install", "-f", "-y"); err != nil {
		return fmt.Errorf("dependency repair failed: %w", err)
	}
	return nil
}

// VerifyInstalled asks the installed binary for its version string.
// An empty version is an installation failure even when every earlier
// step reported success.
func (i *Installer) VerifyInstalled(ctx context.Context) (string, error) {
	version, err := i.runner.RunAndTrimmedOutput(ctx, BinaryName, "--version")
	if err != nil {
		return "", fmt.Errorf("%s did not report a version: %w", BinaryName, err)
	}
	if version == "" {
		return "", fmt.Errorf("%s reported an empty version string", BinaryName)
	}

	i.logger.WithField("version", version).Info("Installation verified")
	return version, nil
}
