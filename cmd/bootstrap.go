package cmd

import (
	"time"

	"github.com/researchagg/hostprep/internal/cmdrunner"
	"github.com/researchagg/hostprep/internal/config"
	"github.com/researchagg/hostprep/internal/operations/pyenv"
	"github.com/researchagg/hostprep/internal/state"
	"github.com/researchagg/hostprep/pkg/logger"
	"github.com/spf13/cobra"
)

var forceEnvFile bool

var bootstrapCmd = &cobra.Command{
	Use:   "bootstrap",
	Short: "Bootstrap the Python runtime environment",
	Long: `Create the isolated Python environment, install the declared
dependency set into it and generate the placeholder env file with the
settings a human fills in afterwards. An existing env file is kept
unless --force-env is given.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		log := logger.NewLogger("bootstrap")

		manager := pyenv.NewManager(pyenv.Options{
			Interpreter:  Cfg.Python.Interpreter,
			VenvDir:      Cfg.Python.VenvDir,
			Requirements: Cfg.Python.Requirements,
			EnvFile:      Cfg.Python.EnvFile,
			ForceEnvFile: forceEnvFile,
		}, cmdrunner.NewCommandsRunner())

		result, err := manager.Bootstrap(cmd.Context())
		if err != nil {
			return err
		}

		if result.EnvFileWritten {
			log.Infof("Environment ready: %s (placeholder values in %s need real secrets)",
				result.VenvDir, result.EnvFile)
		} else {
			log.Infof("Environment ready: %s (existing %s kept)", result.VenvDir, result.EnvFile)
		}
		recordBootstrap(log, result)
		return nil
	},
}

// recordBootstrap updates the host manifest. Bootstrap already
// succeeded, so manifest trouble is only warned about.
func recordBootstrap(log *logger.Logger, result *pyenv.Result) {
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

	manifest.Bootstrap = &state.BootstrapState{
		VenvDir:     result.VenvDir,
		EnvFile:     result.EnvFile,
		CompletedAt: time.Now().UTC(),
	}

	if err := store.Save(manifest); err != nil {
		log.Warnf("Could not write manifest: %v", err)
	}
}

func init() {
	bootstrapCmd.Flags().BoolVar(&forceEnvFile, "force-env", false, "overwrite an existing env file with placeholders")
	RootCmd.AddCommand(bootstrapCmd)
}
