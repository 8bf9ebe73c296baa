package builtin

import (
	"context"
	"fmt"
	"time"

	"github.com/mtlang/mtl/provider"
)

// resolveDateAttrs renders the fixed date/time attribute set of
// spec.md §4.4 against t, using the last attribute in the dot-chain
// (e.g. {created.year} -> "year"). Every attribute except "strftime"
// produces a value directly; "strftime" consumes req.Default as its
// format-directive payload and reports consumedDefault.
func resolveDateAttrs(ctx context.Context, t time.Time, req provider.Request) (values []string, consumedDefault, ok bool, err error) {
	if len(req.Attrs) == 0 {
		return []string{t.Format("2006-01-02T15:04:05")}, false, true, nil
	}
	attr := req.Attrs[len(req.Attrs)-1]
	switch attr {
	case "date":
		return []string{t.Format("2006-01-02")}, false, true, nil
	case "year":
		return []string{fmt.Sprintf("%04d", t.Year())}, false, true, nil
	case "yy":
		return []string{fmt.Sprintf("%02d", t.Year()%100)}, false, true, nil
	case "month":
		return []string{t.Month().String()}, false, true, nil
	case "mon":
		return []string{t.Format("Jan")}, false, true, nil
	case "mm":
		return []string{fmt.Sprintf("%02d", int(t.Month()))}, false, true, nil
	case "dd":
		return []string{fmt.Sprintf("%02d", t.Day())}, false, true, nil
	case "dow":
		return []string{t.Weekday().String()}, false, true, nil
	case "doy":
		return []string{fmt.Sprintf("%03d", t.YearDay())}, false, true, nil
	case "hour":
		return []string{fmt.Sprintf("%02d", t.Hour())}, false, true, nil
	case "min":
		return []string{fmt.Sprintf("%02d", t.Minute())}, false, true, nil
	case "sec":
		return []string{fmt.Sprintf("%02d", t.Second())}, false, true, nil
	case "strftime":
		if req.Default == nil {
			return nil, false, false, nil
		}
		directives, err := req.Eval(ctx, req.Default)
		if err != nil {
			return nil, false, false, err
		}
		layout := translateStrftime(join(directives))
		return []string{t.Format(layout)}, true, true, nil
	}
	return nil, false, false, nil
}

func join(vs []string) string {
	out := ""
	for _, v := range vs {
		out += v
	}
	return out
}
