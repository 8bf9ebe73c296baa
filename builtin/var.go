package builtin

import (
	"context"

	"github.com/mtlang/mtl/mtlerr"
	"github.com/mtlang/mtl/provider"
)

// resolveVar implements "{var:NAME,VALUE}": bind NAME to VALUE's
// rendered list in the render's variable scope and emit no output
// (spec.md §4.4, §4.5).
func resolveVar(ctx context.Context, req provider.Request, traceID string) (values []string, consumedDefault, ok bool, err error) {
	if req.Default == nil {
		return nil, false, false, mtlerr.Coercion(traceID, "var", "")
	}
	rendered, err := req.Eval(ctx, req.Default)
	if err != nil {
		return nil, false, false, err
	}
	req.Vars.Bind(req.Field, rendered)
	return nil, true, true, nil
}
