package builtin

import (
	"context"
	"strings"

	"github.com/mtlang/mtl/provider"
)

// resolveStrip implements "{strip,TEMPLATE}": render TEMPLATE (carried
// as the default sub-template, consumed as a payload rather than a
// fallback) and trim surrounding whitespace from each element.
func resolveStrip(ctx context.Context, req provider.Request) (values []string, consumedDefault, ok bool, err error) {
	if req.Default == nil {
		return nil, false, false, nil
	}
	rendered, err := req.Eval(ctx, req.Default)
	if err != nil {
		return nil, false, false, err
	}
	out := make([]string, len(rendered))
	for i, v := range rendered {
		out[i] = strings.TrimSpace(v)
	}
	return out, true, true, nil
}
