package filemanager

import (
	"io/fs"
	"time"
)

const (
	// MaxArchiveSize bounds a single submitted archive.
	MaxArchiveSize = 512 * 1024 * 1024
	// ArchiveExtension is the only extension accepted for submitted archives.
	ArchiveExtension = ".zip"

	defaultFilePerm  fs.FileMode = 0644
	defaultDirPerm   fs.FileMode = 0755
	defaultWriteWait             = 30 * time.Second
)

// ReadOptions limits what ReadFile accepts. Zero values disable a check.
type ReadOptions struct {
	MaxSize    int64
	Extensions []string
}

// ArchiveReadOptions accepts .zip files up to MaxArchiveSize.
func ArchiveReadOptions() ReadOptions {
	return ReadOptions{
		MaxSize:    MaxArchiveSize,
		Extensions: []string{ArchiveExtension},
	}
}

// WriteOptions controls WriteFile.
type WriteOptions struct {
	Perm    fs.FileMode
	Timeout time.Duration // 0 waits as long as ctx allows
}

// DefaultWriteOptions writes 0644 files and gives up after 30 seconds.
func DefaultWriteOptions() WriteOptions {
	return WriteOptions{
		Perm:    defaultFilePerm,
		Timeout: defaultWriteWait,
	}
}
