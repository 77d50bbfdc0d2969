package common

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
)

// Step is one named unit of a host-mutation sequence.
type Step struct {
	Name string
	Run  func(ctx context.Context) error
}

// StepError tags a failure with the step that produced it, so the
// terminal message always names what failed.
type StepError struct {
	Step string
	Err  error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("step %q failed: %v", e.Step, e.Err)
}

func (e *StepError) Unwrap() error {
	return e.Err
}

// RunSteps executes steps in order and short-circuits at the first
// failure. There is no retry and no rollback of completed steps.
func RunSteps(ctx context.Context, logger *logrus.Entry, steps []Step) error {
	for _, step := range steps {
		if ctx.Err() != nil {
			return &StepError{Step: step.Name, Err: ctx.Err()}
		}

		logger.WithField("step", step.Name).Info("Running step")
		if err := step.Run(ctx); err != nil {
			logger.WithFields(logrus.Fields{
				"step":  step.Name,
				"error": err,
			}).Error("Step failed")
			return &StepError{Step: step.Name, Err: err}
		}
	}
	return nil
}
