package main

import (
	"net"
	"os"
	"syscall"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type blockingListener struct {
	release chan struct{}
}

func (l *blockingListener) Listen(string) error {
	<-l.release
	return nil
}

func TestServe_PuertoOcupadoDevuelveError(t *testing.T) {
	busy, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer busy.Close()

	app := fiber.New(fiber.Config{DisableStartupMessage: true})
	quit := make(chan os.Signal, 1)

	done := make(chan error, 1)
	go func() { done <- serve(app, busy.Addr().String(), quit) }()

	select {
	case err := <-done:
		assert.Error(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("serve no terminó con el puerto ocupado")
	}
}

func TestServe_SeñalTerminaSinError(t *testing.T) {
	l := &blockingListener{release: make(chan struct{})}
	defer close(l.release)
	quit := make(chan os.Signal, 1)
	quit <- syscall.SIGTERM

	assert.NoError(t, serve(l, ":0", quit))
}
