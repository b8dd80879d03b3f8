package constants

import "time"

const (
	// DefaultImportURL is the sample-habit endpoint used when no --url flag
	// is given. It serves a JSON array of candidate habits.
	DefaultImportURL = "https://68e67be521dd31f22cc5d844.mockapi.io/habit"

	// ImportTimeout bounds the single import fetch attempt. There is no
	// retry; a timeout is a hard failure for that import call.
	ImportTimeout = 15 * time.Second

	// MaxBackups is the maximum number of database backups to keep.
	MaxBackups = 14
)
