package main

import (
	"context"
	"fmt"
	"os"

	"go.uber.org/fx"
)

type lifecycle interface {
	Start(ctx context.Context) error
	Stop(ctx context.Context) error
	Done() <-chan os.Signal
}

var _ lifecycle = (*fx.App)(nil)

func run(ctx context.Context, app lifecycle) error {
	if err := app.Start(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "failed to start order service: %v\n", err)
		return err
	}

	select {
	case <-ctx.Done():
	case <-app.Done():
	}

	// ctx may already be cancelled here, stop timeouts come from fx
	if err := app.Stop(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "failed to stop order service: %v\n", err)
		return err
	}
	return nil
}
