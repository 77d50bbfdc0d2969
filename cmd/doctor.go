package cmd

import (
	"fmt"

	"github.com/researchagg/hostprep/internal/cmdrunner"
	"github.com/researchagg/hostprep/internal/operations/doctor"
	"github.com/researchagg/hostprep/internal/state"
	"github.com/spf13/cobra"
)

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Audit a prepared host",
	Long: `Check the installed PDF renderer, the Python environment, the env
file and the setup manifest without changing anything on the host.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		d := doctor.New(doctor.Options{
			VenvDir: Cfg.Python.VenvDir,
			EnvFile: Cfg.Python.EnvFile,
		}, cmdrunner.NewCommandsRunner(), state.NewStore())

		report := d.Run(cmd.Context())

		for _, check := range report.Checks {
			status := "ok"
			if !check.OK {
				status = "PROBLEM"
			}
			fmt.Printf("%-10s %-16s %s\n", status, check.Name, check.Detail)
		}

		if !report.Healthy() {
			return fmt.Errorf("doctor found %d problem(s)", report.Problems())
		}
		return nil
	},
}

func init() {
	RootCmd.AddCommand(doctorCmd)
}
