// Package ports defines interfaces for external dependencies (Ports and Adapters pattern).
package ports

import "io/fs"

// FileSystem abstracts the file operations config loading needs.
type FileSystem interface {
	// ReadFile reads the named file and returns its contents.
	ReadFile(name string) ([]byte, error)

	// Stat returns file info for the named file.
	Stat(name string) (fs.FileInfo, error)
}
