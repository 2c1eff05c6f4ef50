package testutil

import (
	"context"

	"github.com/arthur-debert/deptool/pkg/errors"
	"github.com/arthur-debert/deptool/pkg/shell"
	"github.com/stretchr/testify/mock"
)

// MockRunner is a testify mock of shell.Runner.
type MockRunner struct {
	mock.Mock
}

func (m *MockRunner) Run(ctx context.Context, commands []string, opts shell.Options) error {
	args := m.Called(ctx, commands, opts)
	return args.Error(0)
}

// CommandFailed builds the error a runner returns when line exits with code.
func CommandFailed(line string, code int) error {
	return errors.Newf(errors.ErrCommandFailed, "Command '%s' returned with code '%d'", line, code).
		WithDetails(map[string]interface{}{
			shell.DetailCommand:  line,
			shell.DetailExitCode: code,
		})
}
