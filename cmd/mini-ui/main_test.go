package main

import (
	"testing"
	"time"
)

func TestShutdownHookSkipsStopAfterTeardown(t *testing.T) {
	done := make(chan struct{})
	close(done)
	called := false
	shutdownHook(done, func() { called = true })()
	if called {
		t.Fatal("stop requested after teardown finished")
	}
}

func TestShutdownHookWaitsForTeardown(t *testing.T) {
	done := make(chan struct{})
	stopped := make(chan struct{})
	returned := make(chan struct{})
	go func() {
		shutdownHook(done, func() { close(stopped) })()
		close(returned)
	}()

	select {
	case <-stopped:
	case <-time.After(time.Second):
		t.Fatal("stop was not requested")
	}
	select {
	case <-returned:
		t.Fatal("hook returned before teardown finished")
	case <-time.After(10 * time.Millisecond):
	}
	close(done)
	select {
	case <-returned:
	case <-time.After(time.Second):
		t.Fatal("hook did not return after teardown")
	}
}
