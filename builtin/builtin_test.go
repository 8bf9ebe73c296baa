package builtin

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mtlang/mtl/ast"
	"github.com/mtlang/mtl/mtlerr"
	"github.com/mtlang/mtl/provider"
)

// fakeFile is a minimal provider.FileHandle + FileStat used across
// builtin's tests.
type fakeFile struct {
	path string
	t    time.Time
}

func (f *fakeFile) Path() string        { return f.path }
func (f *fakeFile) Size() int64         { return 4096 }
func (f *fakeFile) UID() int            { return 501 }
func (f *fakeFile) GID() int            { return 20 }
func (f *fakeFile) User() string        { return "alice" }
func (f *fakeFile) Group() string       { return "staff" }
func (f *fakeFile) Created() time.Time  { return f.t }
func (f *fakeFile) Modified() time.Time { return f.t }
func (f *fakeFile) Accessed() time.Time { return f.t }

// bareFile implements only provider.FileHandle, for exercising the
// "no FileStat" decline path.
type bareFile struct{ path string }

func (f *bareFile) Path() string { return f.path }

func literalEval(ctx context.Context, prog ast.Program) ([]string, error) {
	var out []string
	for _, node := range prog {
		if lit, ok := node.(*ast.Literal); ok {
			out = append(out, lit.Text)
		}
	}
	return out, nil
}

func TestPunctuationFields(t *testing.T) {
	p := &NoNamespace{}
	values, consumed, ok, err := p.Resolve(context.Background(), provider.Request{Field: "pipe"})
	require.NoError(t, err)
	assert.True(t, ok)
	assert.False(t, consumed)
	assert.Equal(t, []string{"|"}, values)
}

func TestStatFields(t *testing.T) {
	p := &NoNamespace{}
	file := &fakeFile{path: "/tmp/x"}

	values, _, ok, err := p.Resolve(context.Background(), provider.Request{Field: "size", File: file})
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, []string{"4096"}, values)

	values, _, ok, err = p.Resolve(context.Background(), provider.Request{Field: "user", File: file})
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, []string{"alice"}, values)
}

func TestStatFieldsDeclineWithoutFileStat(t *testing.T) {
	p := &NoNamespace{}
	_, _, ok, err := p.Resolve(context.Background(), provider.Request{Field: "size", File: &bareFile{path: "x"}})
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestFilepathAttributes(t *testing.T) {
	values, ok := resolveFilepathAttrs("/a/b/report.final.pdf", []string{"name"})
	require.True(t, ok)
	assert.Equal(t, []string{"report.final.pdf"}, values)

	values, ok = resolveFilepathAttrs("/a/b/report.final.pdf", []string{"stem"})
	require.True(t, ok)
	assert.Equal(t, []string{"report.final"}, values)

	values, ok = resolveFilepathAttrs("/a/b/report.final.pdf", []string{"suffix"})
	require.True(t, ok)
	assert.Equal(t, []string{".pdf"}, values)

	values, ok = resolveFilepathAttrs("/a/b/report.final.pdf", []string{"parent"})
	require.True(t, ok)
	assert.Equal(t, []string{"/a/b"}, values)
}

func TestFilepathChainedAttributes(t *testing.T) {
	values, ok := resolveFilepathAttrs("/a/b/report.final.pdf", []string{"parent", "name"})
	require.True(t, ok)
	assert.Equal(t, []string{"b"}, values)
}

func TestFilepathUnknownAttributeDeclines(t *testing.T) {
	_, ok := resolveFilepathAttrs("/a/b", []string{"bogus"})
	assert.False(t, ok)
}

func TestDateAttributeSet(t *testing.T) {
	ts := time.Date(2020, time.February, 4, 19, 7, 38, 0, time.UTC)
	req := provider.Request{Attrs: []string{"year"}}
	values, consumed, ok, err := resolveDateAttrs(context.Background(), ts, req)
	require.NoError(t, err)
	require.True(t, ok)
	assert.False(t, consumed)
	assert.Equal(t, []string{"2020"}, values)

	req = provider.Request{Attrs: []string{"dow"}}
	values, _, ok, err = resolveDateAttrs(context.Background(), ts, req)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, []string{"Tuesday"}, values)
}

func TestDateStrftimeConsumesDefault(t *testing.T) {
	ts := time.Date(2020, time.February, 4, 19, 7, 38, 0, time.UTC)
	req := provider.Request{
		Attrs:   []string{"strftime"},
		Default: ast.Program{&ast.Literal{Text: "%Y-%m-%d-%H%M%S"}},
		Eval:    literalEval,
	}
	values, consumed, ok, err := resolveDateAttrs(context.Background(), ts, req)
	require.NoError(t, err)
	require.True(t, ok)
	assert.True(t, consumed)
	assert.Equal(t, []string{"2020-02-04-190738"}, values)
}

func TestCreatedModifiedAccessedFields(t *testing.T) {
	p := &NoNamespace{}
	ts := time.Date(1999, time.January, 1, 0, 0, 0, 0, time.UTC)
	file := &fakeFile{path: "x", t: ts}

	values, _, ok, err := p.Resolve(context.Background(), provider.Request{Field: "created", Attrs: []string{"year"}, File: file})
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, []string{"1999"}, values)
}

func TestTodayIsSticky(t *testing.T) {
	calls := 0
	p := &NoNamespace{Now: func() time.Time {
		calls++
		return time.Date(2024, time.January, calls, 0, 0, 0, 0, time.UTC)
	}}
	ctx := provider.WithTodayCache(context.Background())

	first, _, ok, err := p.Resolve(ctx, provider.Request{Field: "today", Attrs: []string{"year"}})
	require.NoError(t, err)
	require.True(t, ok)
	second, _, _, err := p.Resolve(ctx, provider.Request{Field: "today", Attrs: []string{"dd"}})
	require.NoError(t, err)
	assert.Equal(t, []string{"2024"}, first)
	assert.Equal(t, []string{"01"}, second, "today stays pinned to the first call's timestamp")
}

func TestNowIsFreshEveryCall(t *testing.T) {
	calls := 0
	p := &NoNamespace{Now: func() time.Time {
		calls++
		return time.Date(2024, time.January, calls, 0, 0, 0, 0, time.UTC)
	}}
	ctx := context.Background()

	p.Resolve(ctx, provider.Request{Field: "now", Attrs: []string{"dd"}})
	p.Resolve(ctx, provider.Request{Field: "now", Attrs: []string{"dd"}})
	assert.Equal(t, 2, calls)
}

func TestVarFieldBindsAndEmitsNothing(t *testing.T) {
	p := &NoNamespace{}
	binder := &fakeBinder{values: map[string][]string{}}
	req := provider.Request{
		Namespace: "var",
		Field:     "x",
		Default:   ast.Program{&ast.Literal{Text: "hello"}},
		Eval:      literalEval,
		Vars:      binder,
	}
	values, consumed, ok, err := p.Resolve(context.Background(), req)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.True(t, consumed)
	assert.Nil(t, values)
	assert.Equal(t, []string{"hello"}, binder.values["x"])
}

func TestFormatIntField(t *testing.T) {
	p := &NoNamespace{}
	req := provider.Request{
		Namespace: "format",
		Field:     "int:%05d",
		Default:   ast.Program{&ast.Literal{Text: "42"}},
		Eval:      literalEval,
	}
	values, consumed, ok, err := p.Resolve(context.Background(), req)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.True(t, consumed)
	assert.Equal(t, []string{"00042"}, values)
}

func TestFormatBadIntIsCoercionError(t *testing.T) {
	p := &NoNamespace{}
	req := provider.Request{
		Namespace: "format",
		Field:     "int:%05d",
		Default:   ast.Program{&ast.Literal{Text: "not-a-number"}},
		Eval:      literalEval,
	}
	_, _, _, err := p.Resolve(context.Background(), req)
	require.Error(t, err)
	assert.ErrorIs(t, err, mtlerr.ErrCoercion)
}

func TestStripTrimsWhitespace(t *testing.T) {
	p := &NoNamespace{}
	req := provider.Request{
		Field:   "strip",
		Default: ast.Program{&ast.Literal{Text: "  padded  "}},
		Eval:    literalEval,
	}
	values, consumed, ok, err := p.Resolve(context.Background(), req)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.True(t, consumed)
	assert.Equal(t, []string{"padded"}, values)
}

func TestStrftimeTranslation(t *testing.T) {
	assert.Equal(t, "2006-01-02", translateStrftime("%Y-%m-%d"))
	assert.Equal(t, "15:04:05", translateStrftime("%H:%M:%S"))
	assert.Equal(t, "100%", translateStrftime("100%%"))
}

func TestCatalogProviderDeclinesUnknownSubfield(t *testing.T) {
	p := NewAudioProvider()
	_, _, ok, err := p.Resolve(context.Background(), provider.Request{Field: "bogus"})
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestCatalogProviderReportsUnwiredDecoder(t *testing.T) {
	p := NewAudioProvider()
	_, _, ok, err := p.Resolve(context.Background(), provider.Request{Field: "artist"})
	require.Error(t, err)
	assert.True(t, ok, "a recognized subfield is claimed even though the decoder errors")
	assert.ErrorIs(t, err, mtlerr.ErrProviderError)
}

func TestPDFAndDocxCatalogsRecognizeTitle(t *testing.T) {
	_, _, ok, _ := NewPDFProvider().Resolve(context.Background(), provider.Request{Field: "title"})
	assert.True(t, ok)
	_, _, ok, _ = NewDocxProvider().Resolve(context.Background(), provider.Request{Field: "title"})
	assert.True(t, ok)
}

type fakeBinder struct{ values map[string][]string }

func (b *fakeBinder) Bind(name string, value []string) { b.values[name] = value }

func (b *fakeBinder) Lookup(name string) ([]string, bool) {
	v, ok := b.values[name]
	return v, ok
}
