package structure

import (
	"errors"
	"fmt"

	"structcraft.dev/internal/nbt"
)

// ErrOutOfBounds marks a position or region outside the document size.
// The failed operation leaves the document unchanged.
var ErrOutOfBounds = errors.New("structure: position out of bounds")

// ErrPaletteIndex marks a block entry referencing a nonexistent palette
// slot. It signals an internal-consistency violation, not a recoverable
// runtime condition.
var ErrPaletteIndex = errors.New("structure: palette index out of range")

// ErrFormat is re-exported so callers can match document-level decode
// failures without importing the codec package.
var ErrFormat = nbt.ErrFormat

func formatErr(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrFormat, fmt.Sprintf(format, args...))
}

func oobErr(p Vec3, size Vec3) error {
	return fmt.Errorf("%w: %v outside size %v", ErrOutOfBounds, p, size)
}
