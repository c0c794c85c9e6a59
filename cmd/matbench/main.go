package main

import (
	"context"
	"os"

	"github.com/agbru/matbench/internal/app"
	apperrors "github.com/agbru/matbench/internal/errors"
)

func main() {
	if app.HasVersionFlag(os.Args[1:]) {
		app.PrintVersion(os.Stdout)
		return
	}

	application, err := app.New(os.Args, os.Stderr)
	if err != nil {
		if app.IsHelpError(err) {
			os.Exit(apperrors.ExitSuccess)
		}
		os.Exit(apperrors.HandleBenchmarkError(err, os.Stderr, nil))
	}

	os.Exit(application.Run(context.Background(), os.Stdout))
}
