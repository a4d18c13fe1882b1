package abierrors

import (
	"errors"
	"fmt"
)

var (
	// ErrReadABI indicates the ABI document could not be read.
	ErrReadABI = errors.New("read ABI")

	// ErrParseABI indicates the ABI document is not valid JSON or lacks its body.
	ErrParseABI = errors.New("parse ABI")

	// ErrFetchABI indicates the ABI download step failed.
	ErrFetchABI = errors.New("fetch ABI")

	// ErrCompile indicates the type declaration compiler failed.
	ErrCompile = errors.New("compile types")

	// ErrWrite indicates an error occurred while writing.
	ErrWrite = errors.New("write")

	// ErrWriteFile indicates an error occurred while writing a file.
	ErrWriteFile = fmt.Errorf("file: %w", ErrWrite)

	// ErrInvalidTarget indicates an unknown compiler target was requested.
	ErrInvalidTarget = errors.New("invalid target")

	// ErrInvalidArguments indicates invalid arguments were provided.
	ErrInvalidArguments = errors.New("invalid arguments")

	// ErrStrict indicates warnings were produced while strict mode was enabled.
	ErrStrict = errors.New("strict mode")
)
