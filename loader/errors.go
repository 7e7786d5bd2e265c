package loader

import "errors"

var (
	// ErrMissingSourceFile is returned when a required table of the fixed
	// mapping has no source file in the data directory.
	ErrMissingSourceFile = errors.New("loader: required source file missing")

	// ErrDuplicateTableName is returned when two equally compressed files
	// would feed the same table.
	ErrDuplicateTableName = errors.New("loader: duplicate table name")
)
