package apperrors

import (
	"context"
	"errors"
	"fmt"
	"io"
)

// ColorProvider supplies the escape sequences used when printing errors.
// A nil provider prints without color.
type ColorProvider interface {
	Yellow() string
	Red() string
	Reset() string
}

type noColors struct{}

func (noColors) Yellow() string { return "" }
func (noColors) Red() string    { return "" }
func (noColors) Reset() string  { return "" }

// ExitCodeFor maps an error to the process exit code without printing it.
func ExitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var (
		configErr ConfigError
		valErr    ValidationError
		verifyErr VerificationError
		timeout   TimeoutError
	)
	switch {
	case errors.Is(err, context.DeadlineExceeded), errors.As(err, &timeout):
		return ExitErrorTimeout
	case errors.Is(err, context.Canceled):
		return ExitErrorCanceled
	case errors.As(err, &configErr), errors.As(err, &valErr):
		return ExitErrorConfig
	case errors.As(err, &verifyErr):
		return ExitErrorMismatch
	default:
		return ExitErrorGeneric
	}
}

// HandleBenchmarkError prints a one-line diagnosis of err to out and returns
// the matching exit code. It returns ExitSuccess for a nil error.
func HandleBenchmarkError(err error, out io.Writer, colors ColorProvider) int {
	if err == nil {
		return ExitSuccess
	}
	if colors == nil {
		colors = noColors{}
	}
	code := ExitCodeFor(err)
	switch code {
	case ExitErrorTimeout:
		fmt.Fprintf(out, "%sBenchmark timed out:%s %v\n", colors.Yellow(), colors.Reset(), err)
	case ExitErrorCanceled:
		fmt.Fprintf(out, "%sBenchmark canceled:%s %v\n", colors.Yellow(), colors.Reset(), err)
	case ExitErrorMismatch:
		fmt.Fprintf(out, "%sVerification failed:%s %v\n", colors.Red(), colors.Reset(), err)
	default:
		fmt.Fprintf(out, "%sError:%s %v\n", colors.Red(), colors.Reset(), err)
	}
	return code
}
