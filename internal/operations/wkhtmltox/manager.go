package wkhtmltox

import (
	"context"
	"os"
	"time"

	"github.com/researchagg/hostprep/internal/cmdrunner"
	"github.com/researchagg/hostprep/internal/operations/common"
	"github.com/researchagg/hostprep/internal/platform"
	"github.com/sirupsen/logrus"
)

// Options tunes the install flow. Zero values fall back to defaults.
type Options struct {
	BaseURL         string
	ArtifactPath    string
	SHA256          string
	DownloadTimeout time.Duration
}

// Result describes a completed install.
type Result struct {
	Version        string
	PackageVersion string
	URL            string
	Codename       string
	Arch           string
}

type Manager struct {
	downloader *Downloader
	installer  *Installer
	detector   *platform.Detector
	opts       Options
	logger     *logrus.Entry
}

func NewManager(opts Options, runner cmdrunner.CommandRunner) *Manager {
	if opts.ArtifactPath == "" {
		opts.ArtifactPath = "wkhtmltox.deb"
	}
	return &Manager{
		downloader: NewDownloader(opts.DownloadTimeout),
		installer:  NewInstaller(runner),
		detector:   platform.NewDetector(),
		opts:       opts,
		logger:     logrus.WithField("component", "wkhtmltox-manager"),
	}
}

// Install runs the full sequence: detect host, resolve the mapped URL,
// probe reachability, download, install, repair dependencies, verify.
// It fails fast at the first broken step and never retries; re-running
// repeats every step from scratch. The downloaded artifact is removed
// on every exit path once the download has happened.
func (m *Manager) Install(ctx context.Context) (*Result, error) {
	var (
		host       platform.Info
		artifact   Artifact
		version    string
		downloaded bool
	)

	defer func() {
		if !downloaded {
			return
		}
		if err := os.Remove(m.opts.ArtifactPath); err != nil && !os.IsNotExist(err) {
			m.logger.WithError(err).Warning("Failed to remove downloaded artifact")
		}
	}()

	steps := []common.Step{
		{Name: "detect platform", Run: func(ctx context.Context) error {
			var err error
			host, err = m.detector.Detect()
			return err
		}},
		{Name: "resolve package url", Run: func(ctx context.Context) error {
			var err error
			artifact, err = Resolve(m.opts.BaseURL, host)
			return err
		}},
		{Name: "check url reachability", Run: func(ctx context.Context) error {
			return m.downloader.CheckReachable(ctx, artifact.URL)
		}},
		{Name: "download package", Run: func(ctx context.Context) error {
			if err := m.downloader.DownloadArtifact(ctx, artifact.URL, m.opts.ArtifactPath); err != nil {
				return err
			}
			downloaded = true
			return nil
		}},
	}

	if m.opts.SHA256 != "" {
		steps = append(steps, common.Step{Name: "verify checksum", Run: func(ctx context.Context) error {
			return m.downloader.VerifyChecksum(m.opts.ArtifactPath, m.opts.SHA256)
		}})
	}

	steps = append(steps,
		common.Step{Name: "install package", Run: func(ctx context.Context) error {
			return m.installer.InstallPackage(ctx, m.opts.ArtifactPath)
		}},
		common.Step{Name: "repair dependencies", Run: func(ctx context.Context) error {
			return m.installer.RepairDependencies(ctx)
		}},
		common.Step{Name: "verify installation", Run: func(ctx context.Context) error {
			var err error
			version, err = m.installer.VerifyInstalled(ctx)
			return err
		}},
	)

	if err := common.RunSteps(ctx, m.logger, steps); err != nil {
		return nil, err
	}

	m.logger.WithFields(logrus.Fields{
		"version":  version,
		"codename": artifact.Codename,
		"arch":     artifact.Arch,
	}).Info("Renderer installed")

	return &Result{
		Version:        version,
		PackageVersion: artifact.Release.PackageVersion,
		URL:            artifact.URL,
		Codename:       artifact.Codename,
		Arch:           artifact.Arch,
	}, nil
}
