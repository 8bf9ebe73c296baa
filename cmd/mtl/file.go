//go:build linux

package main

import (
	"os"
	"os/user"
	"strconv"
	"syscall"
	"time"
)

// osFile implements both provider.FileHandle and builtin.FileStat over
// a real filesystem path, the concrete collaborator the CLI demo needs;
// any other host wires its own.
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

func (f *osFile) UID() int {
	if st, ok := f.info.Sys().(*syscall.Stat_t); ok {
		return int(st.Uid)
	}
	return -1
}

func (f *osFile) GID() int {
	if st, ok := f.info.Sys().(*syscall.Stat_t); ok {
		return int(st.Gid)
	}
	return -1
}

func (f *osFile) User() string {
	if u, err := user.LookupId(strconv.Itoa(f.UID())); err == nil {
		return u.Username
	}
	return ""
}

func (f *osFile) Group() string {
	if g, err := user.LookupGroupId(strconv.Itoa(f.GID())); err == nil {
		return g.Name
	}
	return ""
}

func (f *osFile) Created() time.Time {
	if st, ok := f.info.Sys().(*syscall.Stat_t); ok {
		return time.Unix(st.Ctim.Sec, st.Ctim.Nsec)
	}
	return f.info.ModTime()
}

func (f *osFile) Modified() time.Time { return f.info.ModTime() }

func (f *osFile) Accessed() time.Time {
	if st, ok := f.info.Sys().(*syscall.Stat_t); ok {
		return time.Unix(st.Atim.Sec, st.Atim.Nsec)
	}
	return f.info.ModTime()
}
