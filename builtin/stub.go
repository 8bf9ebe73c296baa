package builtin

import (
	"context"

	"github.com/mtlang/mtl/mtlerr"
	"github.com/mtlang/mtl/provider"
)

// catalogProvider registers one namespace and validates subfield names
// against a fixed catalog (spec.md §6), but returns ProviderError for
// every resolution: the actual audio/PDF/Office decoders are out of
// scope per spec.md §1. A host that needs real metadata registers its
// own provider ahead of this one; the registry tries providers for a
// namespace in registration order (spec.md §4.4), so this stub only
// fires when nothing else claimed the field first.
type catalogProvider struct {
	namespace string
	subfields map[string]bool
}

func newCatalogProvider(namespace string, subfields ...string) *catalogProvider {
	set := make(map[string]bool, len(subfields))
	for _, s := range subfields {
		set[s] = true
	}
	return &catalogProvider{namespace: namespace, subfields: set}
}

func (p *catalogProvider) Namespaces() []string { return []string{p.namespace} }

func (p *catalogProvider) APIVersion() string { return "1.0.0" }

func (p *catalogProvider) Resolve(_ context.Context, req provider.Request) ([]string, bool, bool, error) {
	if !p.subfields[req.Field] {
		return nil, false, false, nil
	}
	return nil, false, true, mtlerr.ProviderError("", p.namespace,
		errDecoderNotWired{namespace: p.namespace, field: req.Field})
}

type errDecoderNotWired struct{ namespace, field string }

func (e errDecoderNotWired) Error() string {
	return e.namespace + ":" + e.field + ": decoder not wired"
}

// NewAudioProvider registers the "audio" namespace's subfield catalog.
func NewAudioProvider() provider.Provider {
	return newCatalogProvider("audio",
		"album", "albumartist", "artist", "audio_offset", "bitrate", "comment",
		"composer", "disc", "disc_total", "duration", "genre", "samplerate",
		"title", "track", "track_total", "year", "filesize")
}

// NewPDFProvider registers the "pdf" namespace's subfield catalog.
func NewPDFProvider() provider.Provider {
	return newCatalogProvider("pdf",
		"author", "creator", "producer", "created", "modified", "subject",
		"title", "keywords")
}

// NewDocxProvider registers the "docx" namespace's subfield catalog.
func NewDocxProvider() provider.Provider {
	return newCatalogProvider("docx",
		"author", "category", "comments", "content_status", "created",
		"identifier", "keywords", "language", "last_modified_by",
		"last_printed", "modified", "revision", "subject", "title", "version")
}
