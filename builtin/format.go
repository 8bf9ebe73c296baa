package builtin

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/mtlang/mtl/mtlerr"
	"github.com/mtlang/mtl/provider"
)

// resolveFormat implements "{format:TYPE:FORMAT,TEMPLATE}" (spec.md
// §4.4): coerce TEMPLATE's rendered text to TYPE, then apply FORMAT as
// a fmt.Sprintf verb. fmt's own width/fill/align/sign/precision
// handling already is the printf-style mini-language the field asks
// for, so there is nothing a third-party library would add here (see
// DESIGN.md).
func resolveFormat(ctx context.Context, req provider.Request, traceID string) ([]string, bool, bool, error) {
	typ, format, ok := strings.Cut(req.Field, ":")
	if !ok {
		return nil, false, false, mtlerr.Coercion(traceID, req.Field, "")
	}
	if req.Default == nil {
		return nil, false, false, mtlerr.Coercion(traceID, typ, "")
	}
	rendered, err := req.Eval(ctx, req.Default)
	if err != nil {
		return nil, false, false, err
	}
	raw := strings.TrimSpace(join(rendered))

	var out string
	switch typ {
	case "int":
		n, perr := strconv.ParseInt(raw, 10, 64)
		if perr != nil {
			return nil, false, false, mtlerr.Coercion(traceID, "int", raw)
		}
		out = fmt.Sprintf(format, n)
	case "float":
		f, perr := strconv.ParseFloat(raw, 64)
		if perr != nil {
			return nil, false, false, mtlerr.Coercion(traceID, "float", raw)
		}
		out = fmt.Sprintf(format, f)
	case "str":
		out = fmt.Sprintf(format, raw)
	default:
		return nil, false, false, mtlerr.Coercion(traceID, typ, raw)
	}
	return []string{out}, true, true, nil
}
