package redis

import (
	"errors"
	"time"
)

const (
	// DefaultConnectTimeout is the timeout for the initial ping.
	DefaultConnectTimeout = 5 * time.Second
)

var (
	// ErrHostRequired is returned when no host is configured.
	ErrHostRequired = errors.New("redis host is required")
	// ErrInvalidPort is returned when the port is out of range.
	ErrInvalidPort = errors.New("redis port is invalid")
)
