// Package builtin ships the provider set the engine itself carries:
// punctuation escapes, the string-formatting helpers (strip, format,
// var), general file metadata, and date/time attribute rendering
// (spec.md §4.4, §6). The actual audio/PDF/Office decoders and the
// filesystem/date provider's real stat/clock access are out of scope
// per spec.md §1 — NoNamespace here validates and renders everything
// spec.md's tables define, backed by whatever provider.FileHandle the
// host supplies, and AudioProvider/PDFProvider/DocxProvider register
// their namespaces and subfield catalogs with decoder bodies stubbed.
package builtin

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/mtlang/mtl/mtlerr"
	"github.com/mtlang/mtl/provider"
)

// NoNamespace serves the "", "var", and "format" namespaces: every
// field spec.md groups under "built into the engine itself" rather
// than a pluggable metadata reader.
type NoNamespace struct {
	// Now supplies the current time; defaults to time.Now when nil.
	// Exposed for deterministic tests (spec.md §9's "freeze time
	// between {today} and {now} reads").
	Now func() time.Time
}

func (p *NoNamespace) now() time.Time {
	if p.Now != nil {
		return p.Now()
	}
	return time.Now()
}

// Namespaces implements provider.Provider.
func (p *NoNamespace) Namespaces() []string { return []string{"", "var", "format"} }

// APIVersion implements provider.Versioned.
func (p *NoNamespace) APIVersion() string { return "1.0.0" }

// Resolve implements provider.Provider.
func (p *NoNamespace) Resolve(ctx context.Context, req provider.Request) ([]string, bool, bool, error) {
	switch req.Namespace {
	case "var":
		return resolveVar(ctx, req, "")
	case "format":
		return resolveFormat(ctx, req, "")
	}

	if lit, ok := punctuation[req.Field]; ok {
		return []string{lit}, false, true, nil
	}

	switch req.Field {
	case "strip":
		return resolveStrip(ctx, req)
	case "size", "uid", "gid", "user", "group":
		return p.resolveStat(req)
	case "filepath":
		values, ok := resolveFilepathAttrs(req.File.Path(), req.Attrs)
		return values, false, ok, nil
	case "created", "modified", "accessed":
		stat, ok := req.File.(FileStat)
		if !ok {
			return nil, false, false, nil
		}
		var t time.Time
		switch req.Field {
		case "created":
			t = stat.Created()
		case "modified":
			t = stat.Modified()
		case "accessed":
			t = stat.Accessed()
		}
		return resolveDateAttrs(ctx, t, req)
	case "today":
		return resolveDateAttrs(ctx, provider.Today(ctx, p.now), req)
	case "now":
		return resolveDateAttrs(ctx, p.now(), req)
	}

	return nil, false, false, nil
}

func (p *NoNamespace) resolveStat(req provider.Request) ([]string, bool, bool, error) {
	stat, ok := req.File.(FileStat)
	if !ok {
		return nil, false, false, nil
	}
	switch req.Field {
	case "size":
		return []string{strconv.FormatInt(stat.Size(), 10)}, false, true, nil
	case "uid":
		return []string{fmt.Sprintf("%d", stat.UID())}, false, true, nil
	case "gid":
		return []string{fmt.Sprintf("%d", stat.GID())}, false, true, nil
	case "user":
		return []string{stat.User()}, false, true, nil
	case "group":
		return []string{stat.Group()}, false, true, nil
	}
	return nil, false, false, mtlerr.UnknownField("", "", req.Field)
}
