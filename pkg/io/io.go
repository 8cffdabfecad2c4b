package io

import (
	"errors"
	"os"
)

var _ FileIO = (*OSFileSystem)(nil)

// OSFileSystem is the default implementation of file io using the os package
type OSFileSystem struct{}

// Stat is a wrapper around os.Stat
func (o *OSFileSystem) Stat(name string) (os.FileInfo, error) {
	return os.Stat(name)
}

// MkdirAll is a wrapper around os.MkdirAll
func (o *OSFileSystem) MkdirAll(name string, perm os.FileMode) error {
	return os.MkdirAll(name, perm)
}

// ReadFile is a wrapper around os.ReadFile
func (o *OSFileSystem) ReadFile(name string) ([]byte, error) {
	return os.ReadFile(name)
}

// WriteFile is a wrapper around os.WriteFile
func (o *OSFileSystem) WriteFile(name string, data []byte, perm os.FileMode) error {
	return os.WriteFile(name, data, perm)
}

// ReadDir is a wrapper around os.ReadDir. Entries are sorted by filename.
func (o *OSFileSystem) ReadDir(name string) ([]os.DirEntry, error) {
	return os.ReadDir(name)
}

// Rename is a wrapper around os.Rename, an existing target is replaced
func (o *OSFileSystem) Rename(source, target string) error {
	return os.Rename(source, target)
}

// Remove is a wrapper around os.Remove that ignores missing files
func (o *OSFileSystem) Remove(name string) error {
	err := os.Remove(name)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return err
}

// FileExists reports whether a file can be stat'd at path
func (o *OSFileSystem) FileExists(path string) bool {
	_, err := o.Stat(path)
	return err == nil
}
