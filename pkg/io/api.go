package io

import (
	"os"
)

// FileIO is an interface for the file operations the catalog store relies on
type FileIO interface {
	Stat(name string) (os.FileInfo, error)
	MkdirAll(name string, perm os.FileMode) error
	ReadFile(name string) ([]byte, error)
	WriteFile(name string, data []byte, perm os.FileMode) error
	ReadDir(name string) ([]os.DirEntry, error)
	Rename(source, target string) error
	Remove(name string) error
}
