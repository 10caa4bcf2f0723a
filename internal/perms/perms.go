// Package perms holds the permissions radixd uses for files and directories it creates.
package perms

import "os"

const (
	// RegularFile is used for the configuration template and log file (0644).
	RegularFile os.FileMode = 0o644

	// RegularDir is used for generated documentation directories (0755).
	RegularDir os.FileMode = 0o755
)
