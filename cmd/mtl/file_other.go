//go:build !linux

package main

import (
	"os"
	"time"
)

// osFile implements both provider.FileHandle and builtin.FileStat over
// a real filesystem path, the concrete collaborator the CLI demo needs;
// any other host wires its own. This build lacks syscall.Stat_t, so
// ownership is unknown and the creation/access times fall back to the
// one timestamp os.FileInfo guarantees everywhere: ModTime.
type osFile struct {
	path string
	info os.FileInfo
}

func newOSFile(path string) (*osFile, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	return &osFile{path: path, info: info}, nil
}

func (f *osFile) Path() string { return f.path }

func (f *osFile) Size() int64 { return f.info.Size() }

func (f *osFile) UID() int { return -1 }

func (f *osFile) GID() int { return -1 }

func (f *osFile) User() string { return "" }

func (f *osFile) Group() string { return "" }

func (f *osFile) Created() time.Time { return f.info.ModTime() }

func (f *osFile) Modified() time.Time { return f.info.ModTime() }

func (f *osFile) Accessed() time.Time { return f.info.ModTime() }
