package cmdrunner

import (
	"context"

	"github.com/researchagg/hostprep/pkg/logger"
)

// CommandRunner abstracts subprocess execution so install and bootstrap
// flows can be exercised against a fake in tests.
type CommandRunner interface {
	Run(ctx context.Context, cmd string, args ...string) error
	RunWithOutput(ctx context.Context, cmd string, args ...string) ([]byte, error)
	RunWithS(ctx context.Context, cmd string, args ...string) error
	RunWithOutputS(ctx context.Context, cmd string, args ...string) ([]byte, error)
	RunAndTrimmedOutput(ctx context.Context, cmd string, args ...string) (string, error)
	LookPath(cmd string) (string, error)
}

type CommandsRunner struct {
	logger *logger.Logger
}

func NewCommandsRunner() *CommandsRunner {
	return &CommandsRunner{logger: logger.NewLogger("command_runner")}
}
