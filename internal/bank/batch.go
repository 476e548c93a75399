package bank

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"devaforge/internal/faults"
	"devaforge/internal/logging"
)

// Failure pairs a bank directory with the error that stopped its build.
type Failure struct {
	Dir string `json:"dir"`
	Err error  `json:"-"`
}

// Summary reports the outcome of BuildAll.
type Summary struct {
	Total    int       `json:"total"`
	Built    []Result  `json:"built"`
	Failures []Failure `json:"failures"`
}

// BatchError aggregates per-bank failures of a batch build.
type BatchError struct {
	Total    int
	Failures []Failure
}

func (e *BatchError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "some banks failed (%d/%d):", len(e.Failures), e.Total)
	for _, f := range e.Failures {
		fmt.Fprintf(&b, "\n - %s -> %v", f.Dir, f.Err)
	}
	return b.String()
}

// Unwrap exposes every per-bank error to errors.Is and errors.As.
func (e *BatchError) Unwrap() []error {
	errs := make([]error, 0, len(e.Failures))
	for _, f := range e.Failures {
		errs = append(errs, f.Err)
	}
	return errs
}

// BuildAll builds every bank under the banks root in path order. A failing
// bank does not stop the batch. The error is nil only when every bank built;
// otherwise it is a *BatchError. Finding no banks is a not-found error.
func (b *Builder) BuildAll(ctx context.Context) (Summary, error) {
	dirs, err := b.layout.Banks()
	if err != nil {
		return Summary{}, err
	}
	if len(dirs) == 0 {
		return Summary{}, faults.Wrap(faults.ErrNotFound, "", "discover banks",
			fmt.Sprintf("no banks to build (%s is empty)", b.layout.BanksRoot), nil)
	}

	summary := Summary{Total: len(dirs)}
	for _, dir := range dirs {
		if err := ctx.Err(); err != nil {
			return summary, err
		}
		res, err := b.Build(ctx, dir)
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return summary, err
			}
			summary.Failures = append(summary.Failures, Failure{Dir: dir, Err: err})
			continue
		}
		summary.Built = append(summary.Built, res)
	}

	b.logger.Info("batch complete",
		logging.String(logging.FieldEventType, "batch_complete"),
		logging.Int("total", summary.Total),
		logging.Int("built", len(summary.Built)),
		logging.Int("failed", len(summary.Failures)),
	)
	if len(summary.Failures) > 0 {
		return summary, &BatchError{Total: summary.Total, Failures: summary.Failures}
	}
	return summary, nil
}
