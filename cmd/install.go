package cmd

import (
	"time"

	"github.com/researchagg/hostprep/internal/cmdrunner"
	"github.com/researchagg/hostprep/internal/config"
	"github.com/researchagg/hostprep/internal/operations/wkhtmltox"
	"github.com/researchagg/hostprep/internal/state"
	"github.com/researchagg/hostprep/pkg/logger"
	"github.com/spf13/cobra"
)

var installCmd = &cobra.Command{
	Use:   "install",
	Short: "Install the wkhtmltopdf PDF renderer",
	Long: `Resolve the wkhtmltox package matching this host's OS release
codename and CPU architecture, verify the download URL is reachable,
download and install the package, repair unmet dependencies and verify
the installed binary reports a version.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		log := logger.NewLogger("install")

		timeout, err := time.ParseDuration(Cfg.Renderer.DownloadTimeout)
		if err != nil {
			log.Warnf("Invalid download_timeout %q, using default", Cfg.Renderer.DownloadTimeout)
			timeout = 0
		}

		manager := wkhtmltox.NewManager(wkhtmltox.Options{
			BaseURL:         Cfg.Renderer.BaseURL,
			ArtifactPath:    Cfg.Renderer.ArtifactPath,
			SHA256:          Cfg.Renderer.SHA256,
			DownloadTimeout: timeout,
		}, cmdrunner.NewCommandsRunner())

		result, err := manager.Install(cmd.Context())
		if err != nil {
			return err
		}

		log.Infof("Installed %s (%s/%s)", result.Version, result.Codename, result.Arch)
		recordInstall(log, result)
		return nil
	},
}

// recordInstall updates the host manifest. The install itself already
// succeeded, so manifest trouble is only warned about.
func recordInstall(log *logger.Logger, result *wkhtmltox.Result) {
	store := state.NewStore()
	manifest, err := store.Load()
	if err != nil {
		log.Warnf("Could not read manifest: %v", err)
		manifest = &state.Manifest{}
	}

	if manifest.SetupID == "" {
		if id, err := config.GetStoredSetupID(); err == nil {
			manifest.SetupID = id
		} else {
			log.Warnf("Could not obtain setup ID: %v", err)
		}
	}

	manifest.Renderer = &state.RendererState{
		Version:        result.Version,
		PackageVersion: result.PackageVersion,
		URL:            result.URL,
		Codename:       result.Codename,
		Arch:           result.Arch,
		InstalledAt:    time.Now().UTC(),
	}

	if err := store.Save(manifest); err != nil {
		log.Warnf("Could not write manifest: %v", err)
	}
}

func init() {
	RootCmd.AddCommand(installCmd)
}
