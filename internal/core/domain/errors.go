package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrBackup: the archive copy failed. The original stays untouched in the
	// inbound folder; the operator must intervene manually.
	ErrBackup = errors.New("backup failed")
	// ErrConversion: no rasterizer could render page 1 of the document.
	ErrConversion = errors.New("pdf conversion failed")
	// ErrAnalysis: model unreachable, timed out, or response unparsable.
	ErrAnalysis = errors.New("analysis failed")
	// ErrMove: the final filing move failed after successful classification.
	ErrMove = errors.New("move failed")

	ErrTemporary = errors.New("temporary failure")
)

// WrapError preserves typed semantic errors with operation context.
func WrapError(kind error, operation string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w: %w", operation, kind, err)
}

func IsKind(err error, kind error) bool {
	return errors.Is(err, kind)
}
