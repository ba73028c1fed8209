package main

import (
	"context"
	"errors"
	"os"
	"testing"
)

type appStub struct {
	startErr error
	stopErr  error
	done     chan os.Signal
	stopped  bool
}

func (a *appStub) Start(context.Context) error { return a.startErr }

func (a *appStub) Stop(context.Context) error {
	a.stopped = true
	return a.stopErr
}

func (a *appStub) Done() <-chan os.Signal { return a.done }

func TestRunStopsOnContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	app := &appStub{done: make(chan os.Signal)}
	if err := run(ctx, app); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !app.stopped {
		t.Fatal("expected app to be stopped")
	}
}

func TestRunStopsOnAppDone(t *testing.T) {
	app := &appStub{done: make(chan os.Signal, 1), stopErr: errors.New("stop")}
	app.done <- os.Interrupt
	if err := run(context.Background(), app); err == nil {
		t.Fatal("expected stop error")
	}
}

func TestRunStartFailure(t *testing.T) {
	app := &appStub{startErr: errors.New("boom")}
	if err := run(context.Background(), app); err == nil {
		t.Fatal("expected start error")
	}
	if app.stopped {
		t.Fatal("expected stop to be skipped after failed start")
	}
}
