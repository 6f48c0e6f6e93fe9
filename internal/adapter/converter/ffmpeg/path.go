package ffmpeg

import (
	"errors"
	"strings"
)

var (
	ErrEmptyPath   = errors.New("path is empty")
	ErrInvalidPath = errors.New("path contains invalid characters")
)

// validatePath rejects paths that would be misread by ffmpeg's argument parser.
func validatePath(path string) error {
	if path == "" {
		return ErrEmptyPath
	}
	if strings.ContainsRune(path, 0) {
		return ErrInvalidPath
	}
	// a leading dash would be taken as an option
	if strings.HasPrefix(path, "-") {
		return ErrInvalidPath
	}
	return nil
}
