package pyenv

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/researchagg/hostprep/internal/cmdrunner"
	"github.com/researchagg/hostprep/internal/operations/common"
	"github.com/sirupsen/logrus"
)

// Options tunes the bootstrap flow. Zero values fall back to defaults.
type Options struct {
	Interpreter  string
	VenvDir      string
	Requirements string
	EnvFile      string
	ForceEnvFile bool
}

// Result describes a completed bootstrap.
type Result struct {
	VenvDir        string
	EnvFile        string
	EnvFileWritten bool
}

// Manager prepares the isolated Python runtime environment the
// aggregation app runs in.
type Manager struct {
	runner cmdrunner.CommandRunner
	opts   Options
	logger *logrus.Entry
}

func NewManager(opts Options, runner cmdrunner.CommandRunner) *Manager {
	if opts.Interpreter == "" {
		opts.Interpreter = "python3"
	}
	if opts.VenvDir == "" {
		opts.VenvDir = "venv"
	}
	if opts.Requirements == "" {
		opts.Requirements = "requirements.txt"
	}
	if opts.EnvFile == "" {
		opts.EnvFile = ".env"
	}
	return &Manager{
		runner: runner,
		opts:   opts,
		logger: logrus.WithField("component", "pyenv-manager"),
	}
}

// Bootstrap creates the virtualenv, installs the declared dependency
// set and generates the placeholder env file. Fail-fast, no retry, no
// rollback of already-completed steps.
func (m *Manager) Bootstrap(ctx context.Context) (*Result, error) {
	var envWritten bool

	steps := []common.Step{
		{Name: "check interpreter", Run: func(ctx context.Context) error {
			if _, err := m.runner.LookPath(m.opts.Interpreter); err != nil {
				return fmt.Errorf("interpreter %q not found on PATH: %w", m.opts.Interpreter, err)
			}
			return nil
		}},
		{Name: "create virtualenv", Run: func(ctx context.Context) error {
			return m.runner.Run(ctx, m.opts.Interpreter, "-m", "venv", m.opts.VenvDir)
		}},
		{Name: "install dependencies", Run: func(ctx context.Context) error {
			if _, err := os.Stat(m.opts.Requirements); err != nil {
				return fmt.Errorf("requirements file %s not found: %w", m.opts.Requirements, err)
			}
			pip := filepath.Join(m.opts.VenvDir, "bin", "pip")
			return m.runner.Run(ctx, pip, "install", "-r", m.opts.Requirements)
		}},
		{Name: "write env file", Run: func(ctx context.Context) error {
			written, err := WriteEnvFile(m.opts.EnvFile, m.opts.ForceEnvFile)
			if err != nil {
				return err
			}
			envWritten = written
			if !written {
				m.logger.WithField("path", m.opts.EnvFile).Info("Env file already exists, keeping it")
			}
			return nil
		}},
	}

	if err := common.RunSteps(ctx, m.logger, steps); err != nil {
		return nil, err
	}

	m.logger.WithFields(logrus.Fields{
		"venv":     m.opts.VenvDir,
		"env_file": m.opts.EnvFile,
	}).Info("Runtime environment ready")

	return &Result{
		VenvDir:        m.opts.VenvDir,
		EnvFile:        m.opts.EnvFile,
		EnvFileWritten: envWritten,
	}, nil
}
