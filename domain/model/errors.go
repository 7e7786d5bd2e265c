package model

import "errors"

var (
	// ErrDuplicateColumnName is returned when a file yields two identical
	// column names after normalization.
	ErrDuplicateColumnName = errors.New("duplicate column name")

	// ErrEmptyFile is returned when a file contains no header row.
	ErrEmptyFile = errors.New("empty file")

	// ErrUnsupportedFileType is returned for files whose extension is not
	// a supported format.
	ErrUnsupportedFileType = errors.New("unsupported file type")
)
