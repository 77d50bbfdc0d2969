package cmd

import (
	"fmt"
	"os"

	"github.com/researchagg/hostprep/internal/config"
	"github.com/spf13/cobra"
)

var (
	cfgFile string
	Cfg     *config.Config
	Version string
)

var RootCmd = &cobra.Command{
	Use:   "hostprep",
	Short: "Hostprep - prepares a host for the research aggregation stack",
	Long: `Hostprep installs the wkhtmltopdf PDF renderer, bootstraps the
isolated Python runtime environment and generates the placeholder env
file the research aggregation application needs on a fresh host.`,
}

func Execute(version string) error {
	Version = version
	return RootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)
	RootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ./config.yaml)")
}

func initConfig() {
	var err error

	Cfg, err = config.LoadConfig(cfgFile)
	if err != nil {
		fmt.Printf("Fatal: Configuration could not be loaded: %v\n", err)
		os.Exit(1)
	}
}
