package builtin

import "time"

// FileStat is the optional richer capability a provider.FileHandle can
// implement to serve the general file-metadata fields (spec.md §6:
// size, uid, gid, user, group, created, modified, accessed). A
// FileHandle that doesn't implement it still gets filepath/today/now,
// but the stat-backed fields decline (UnknownField) instead of
// fabricating values.
type FileStat interface {
	Size() int64
	UID() int
	GID() int
	User() string
	Group() string
	Created() time.Time
	Modified() time.Time
	Accessed() time.Time
}
