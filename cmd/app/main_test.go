package main

import (
	"context"
	"errors"
	"net"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWaitForServer(t *testing.T) {
	t.Run("bind failure is returned", func(t *testing.T) {
		bindErr := &net.OpError{Op: "listen", Net: "tcp", Err: errors.New("address already in use")}
		serverErr := make(chan error, 1)
		serverErr <- bindErr
		close(serverErr)

		err := waitForServer(context.Background(), serverErr)

		assert.ErrorIs(t, err, bindErr)
	})

	t.Run("clean server exit", func(t *testing.T) {
		serverErr := make(chan error)
		close(serverErr)

		assert.NoError(t, waitForServer(context.Background(), serverErr))
	})

	t.Run("shutdown signal", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		assert.NoError(t, waitForServer(ctx, make(chan error)))
	})
}
