package kernel

import "errors"

var (
	// ErrAlreadyInitialized is returned by a second call to Init.
	ErrAlreadyInitialized = errors.New("kernel: already initialized")
	// ErrDestroyed is returned when a destroyed kernel is set up again.
	ErrDestroyed = errors.New("kernel: destroyed")
	// ErrInvalidChannelCount is returned by Init for fewer than one channel.
	ErrInvalidChannelCount = errors.New("kernel: channel count must be >= 1")
	// ErrInvalidSampleRate is returned by Init for non-positive or
	// non-finite sample rates.
	ErrInvalidSampleRate = errors.New("kernel: sample rate must be positive and finite")
	// ErrRunning is returned by setup calls made while the kernel is started.
	ErrRunning = errors.New("kernel: setup not allowed while started")
	// ErrNotInitialized is returned by setup calls that need Init first.
	ErrNotInitialized = errors.New("kernel: not initialized")
	// ErrEmptyTable is returned by Convolution.SetUpTable for an empty table.
	ErrEmptyTable = errors.New("kernel: empty impulse response table")
	// ErrInvalidPartitionLength is returned for partition lengths that are
	// not a positive power of two.
	ErrInvalidPartitionLength = errors.New("kernel: partition length must be a power of two")
	// ErrInvalidLoopDuration is returned for non-positive loop durations.
	ErrInvalidLoopDuration = errors.New("kernel: loop duration must be positive and finite")
)
