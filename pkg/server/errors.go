package server

import "errors"

var (
	// ErrSessionClosed is returned when an operation is attempted on a closed session.
	ErrSessionClosed = errors.New("server: session closed")

	// ErrDispatchQueueFull is returned when a session's loop is too far behind.
	ErrDispatchQueueFull = errors.New("server: dispatch queue full")

	// ErrServerClosed is returned by Run after Shutdown.
	ErrServerClosed = errors.New("server: closed")
)
