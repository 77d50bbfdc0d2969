package doctor

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/researchagg/hostprep/internal/cmdrunner"
	"github.com/researchagg/hostprep/internal/operations/pyenv"
	"github.com/researchagg/hostprep/internal/operations/wkhtmltox"
	"github.com/researchagg/hostprep/internal/state"
	"github.com/researchagg/hostprep/pkg/logger"
)

// Check is the outcome of one read-only probe.
type Check struct {
	Name   string
	OK     bool
	Detail string
}

// Report collects the probe outcomes of one doctor run.
type Report struct {
	Checks []Check
}

// Healthy reports whether every check passed.
func (r *Report) Healthy() bool {
	for _, c := range r.Checks {
		if !c.OK {
			return false
		}
	}
	return true
}

// Problems counts failed checks.
func (r *Report) Problems() int {
	n := 0
	for _, c := range r.Checks {
		if !c.OK {
			n++
		}
	}
	return n
}

// Options names the host locations doctor inspects.
type Options struct {
	VenvDir string
	EnvFile string
}

// Doctor audits a prepared host without mutating it.
type Doctor struct {
	runner cmdrunner.CommandRunner
	store  *state.Store
	opts   Options
	logger *logger.Logger
}

func New(opts Options, runner cmdrunner.CommandRunner, store *state.Store) *Doctor {
	return &Doctor{
		runner: runner,
		store:  store,
		opts:   opts,
		logger: logger.NewLogger("doctor"),
	}
}

// Run executes every probe. Unlike install and bootstrap, doctor does
// not short-circuit: the report is most useful complete.
func (d *Doctor) Run(ctx context.Context) *Report {
	report := &Report{}

	report.Checks = append(report.Checks,
		d.checkRenderer(ctx),
		d.checkVenv(),
		d.checkEnvFile(),
		d.checkManifest(),
	)

	for _, c := range report.Checks {
		if c.OK {
			d.logger.Infof("ok: %s - %s", c.Name, c.Detail)
		} else {
			d.logger.Warnf("problem: %s - %s", c.Name, c.Detail)
		}
	}

	return report
}

func (d *Doctor) checkRenderer(ctx context.Context) Check {
	check := Check{Name: "pdf renderer"}

	version, err := d.runner.RunAndTrimmedOutput(ctx, wkhtmltox.BinaryName, "--version")
	if err != nil {
		check.Detail = fmt.Sprintf("%s is not installed or not responding: %v", wkhtmltox.BinaryName, err)
		return check
	}
	if version == "" {
		check.Detail = fmt.Sprintf("%s reports an empty version", wkhtmltox.BinaryName)
		return check
	}

	check.OK = true
	check.Detail = version
	return check
}

func (d *Doctor) checkVenv() Check {
	check := Check{Name: "virtualenv"}

	interpreter := filepath.Join(d.opts.VenvDir, "bin", "python")
	if _, err := os.Stat(interpreter); err != nil {
		check.Detail = fmt.Sprintf("no interpreter at %s", interpreter)
		return check
	}

	check.OK = true
	check.Detail = d.opts.VenvDir
	return check
}

func (d *Doctor) checkEnvFile() Check {
	check := Check{Name: "env file"}

	keys, err := pyenv.ReadEnvKeys(d.opts.EnvFile)
	if err != nil {
		check.Detail = fmt.Sprintf("cannot read %s: %v", d.opts.EnvFile, err)
		return check
	}

	present := make(map[string]bool, len(keys))
	for _, k := range keys {
		present[k] = true
	}

	var missing []string
	for _, want := range pyenv.PlaceholderKeys() {
		if !present[want] {
			missing = append(missing, want)
		}
	}
	if len(missing) > 0 {
		check.Detail = fmt.Sprintf("%s is missing keys %v", d.opts.EnvFile, missing)
		return check
	}

	check.OK = true
	check.Detail = fmt.Sprintf("%s has all expected keys", d.opts.EnvFile)
	return check
}

func (d *Doctor) checkManifest() Check {
	check := Check{Name: "setup manifest"}

	manifest, err := d.store.Load()
	if err != nil {
		check.Detail = fmt.Sprintf("manifest unreadable: %v", err)
		return check
	}
	if manifest.Renderer == nil && manifest.Bootstrap == nil {
		check.Detail = "no recorded install or bootstrap on this host"
		return check
	}

	check.OK = true
	switch {
	case manifest.Renderer != nil && manifest.Bootstrap != nil:
		check.Detail = fmt.Sprintf("renderer %s installed %s, bootstrap completed %s",
			manifest.Renderer.PackageVersion,
			manifest.Renderer.InstalledAt.Format("2006-01-02"),
			manifest.Bootstrap.CompletedAt.Format("2006-01-02"))
	case manifest.Renderer != nil:
		check.Detail = fmt.Sprintf("renderer %s installed %s, bootstrap not recorded",
			manifest.Renderer.PackageVersion,
			manifest.Renderer.InstalledAt.Format("2006-01-02"))
	default:
		check.Detail = fmt.Sprintf("bootstrap completed %s, renderer not recorded",
			manifest.Bootstrap.CompletedAt.Format("2006-01-02"))
	}
	return check
}
