package parse

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mtlang/mtl/ast"
	"github.com/mtlang/mtl/mtlerr"
)

func mustStatement(t *testing.T, prog ast.Program, i int) *ast.Statement {
	t.Helper()
	require.Greater(t, len(prog), i)
	stmt, ok := prog[i].(*ast.Statement)
	require.True(t, ok, "node %d is not a *ast.Statement", i)
	return stmt
}

func TestParseLiteralOnly(t *testing.T) {
	prog, err := Parse("t", "hello world")
	require.NoError(t, err)
	require.Len(t, prog, 1)
	lit, ok := prog[0].(*ast.Literal)
	require.True(t, ok)
	assert.Equal(t, "hello world", lit.Text)
}

func TestParseSimpleField(t *testing.T) {
	prog, err := Parse("t", "{size}")
	require.NoError(t, err)
	stmt := mustStatement(t, prog, 0)
	assert.Equal(t, "", stmt.Namespace)
	assert.Equal(t, "size", stmt.Field)
}

func TestParseBareFieldWithAttributes(t *testing.T) {
	prog, err := Parse("t", "{created.year}")
	require.NoError(t, err)
	stmt := mustStatement(t, prog, 0)
	assert.Equal(t, "", stmt.Namespace)
	assert.Equal(t, "created", stmt.Field)
	assert.Equal(t, []string{"year"}, stmt.Attributes)
}

func TestParseNamespaceColon(t *testing.T) {
	prog, err := Parse("t", "{audio:title}")
	require.NoError(t, err)
	stmt := mustStatement(t, prog, 0)
	assert.Equal(t, "audio", stmt.Namespace)
	assert.Equal(t, "title", stmt.Field)
}

func TestParseFormatFieldKeepsEmbeddedColon(t *testing.T) {
	prog, err := Parse("t", "{format:int:%05d,{size}}")
	require.NoError(t, err)
	stmt := mustStatement(t, prog, 0)
	assert.Equal(t, "format", stmt.Namespace)
	assert.Equal(t, "int:%05d", stmt.Field)
	require.True(t, stmt.HasDefault)
}

func TestParseDelimPlusInPlace(t *testing.T) {
	prog, err := Parse("t", "{,+exiftool:Keywords}")
	require.NoError(t, err)
	stmt := mustStatement(t, prog, 0)
	assert.True(t, stmt.InPlace)
	assert.Equal(t, ",", stmt.Delim)
	assert.Equal(t, "exiftool", stmt.Namespace)
	assert.Equal(t, "Keywords", stmt.Field)
}

func TestParseFilterPipeline(t *testing.T) {
	prog, err := Parse("t", "{exiftool:Keywords|lower|parens}")
	require.NoError(t, err)
	stmt := mustStatement(t, prog, 0)
	require.Len(t, stmt.Filters, 2)
	assert.Equal(t, "lower", stmt.Filters[0].Name)
	assert.Equal(t, "parens", stmt.Filters[1].Name)
}

func TestParseFilterWithArg(t *testing.T) {
	prog, err := Parse("t", "{exiftool:Keywords|slice(0:2)}")
	require.NoError(t, err)
	stmt := mustStatement(t, prog, 0)
	require.Len(t, stmt.Filters, 1)
	require.True(t, stmt.Filters[0].HasArg)
	lit, ok := stmt.Filters[0].Arg[0].(*ast.Literal)
	require.True(t, ok)
	assert.Equal(t, "0:2", lit.Text)
}

func TestParseReplacements(t *testing.T) {
	prog, err := Parse("t", "{audio:title[-,%pipe]}")
	require.NoError(t, err)
	stmt := mustStatement(t, prog, 0)
	require.Len(t, stmt.Replacements, 1)
	assert.Equal(t, "-", stmt.Replacements[0].Find)
	assert.Equal(t, "%pipe", stmt.Replacements[0].Replace)
}

func TestParseConditionalLongestMatch(t *testing.T) {
	prog, err := Parse("t", "{exiftool:Keywords <= 5}")
	require.NoError(t, err)
	stmt := mustStatement(t, prog, 0)
	require.NotNil(t, stmt.Conditional)
	assert.Equal(t, ast.OpLE, stmt.Conditional.Op)
}

func TestParseConditionalWordOperatorBoundary(t *testing.T) {
	prog, err := Parse("t", "{exiftool:Keywords matches Beach}")
	require.NoError(t, err)
	stmt := mustStatement(t, prog, 0)
	require.NotNil(t, stmt.Conditional)
	assert.Equal(t, ast.OpMatches, stmt.Conditional.Op)
}

func TestParseConditionalNegate(t *testing.T) {
	prog, err := Parse("t", "{exiftool:Keywords not contains Beach}")
	require.NoError(t, err)
	stmt := mustStatement(t, prog, 0)
	require.NotNil(t, stmt.Conditional)
	assert.True(t, stmt.Conditional.Negate)
	assert.Equal(t, ast.OpContains, stmt.Conditional.Op)
}

func TestParseCombineAndDefault(t *testing.T) {
	prog, err := Parse("t", "{created.year&{audio:title,}}")
	require.NoError(t, err)
	stmt := mustStatement(t, prog, 0)
	require.True(t, stmt.HasCombine)
	require.Len(t, stmt.Combine, 1)
	inner := mustStatement(t, stmt.Combine, 0)
	assert.Equal(t, "audio", inner.Namespace)
	assert.True(t, inner.HasDefault)
	assert.Empty(t, inner.Default)
}

func TestParseTrueAndDefaultClauses(t *testing.T) {
	prog, err := Parse("t", "{audio:title?I have a title,I do not have a title}")
	require.NoError(t, err)
	stmt := mustStatement(t, prog, 0)
	require.True(t, stmt.HasTrue)
	require.True(t, stmt.HasDefault)
	trueLit := stmt.True[0].(*ast.Literal)
	assert.Equal(t, "I have a title", trueLit.Text)
	defLit := stmt.Default[0].(*ast.Literal)
	assert.Equal(t, "I do not have a title", defLit.Text)
}

func TestParseMultipleTopLevelCombineIsSyntaxError(t *testing.T) {
	_, err := Parse("t", "{size&{a}&{b}}")
	require.Error(t, err)
	assert.ErrorIs(t, err, mtlerr.ErrSyntax)
}

func TestParseUnterminatedStatement(t *testing.T) {
	_, err := Parse("t", "{size")
	require.Error(t, err)
	assert.ErrorIs(t, err, mtlerr.ErrSyntax)
}

func TestParseNestedStatementsInFilterArg(t *testing.T) {
	prog, err := Parse("t", "{title|split({pipe})}")
	require.NoError(t, err)
	stmt := mustStatement(t, prog, 0)
	require.Len(t, stmt.Filters, 1)
	require.True(t, stmt.Filters[0].HasArg)
	inner := mustStatement(t, stmt.Filters[0].Arg, 0)
	assert.Equal(t, "pipe", inner.Field)
}
