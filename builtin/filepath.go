package builtin

import "path/filepath"

// resolveFilepathAttrs implements the chainable "filepath" attribute
// set of spec.md §6: name, stem, suffix, parent. path/filepath is
// stdlib but that is the right tool here — no example repo in the pack
// carries a path-manipulation library, and filepath's own rules (OS
// separator handling) are exactly what a "filepath" field needs
// (see DESIGN.md).
func resolveFilepathAttrs(path string, attrs []string) (values []string, ok bool) {
	if len(attrs) == 0 {
		return []string{path}, true
	}
	cur := path
	var result string
	for i, attr := range attrs {
		switch attr {
		case "name":
			result = filepath.Base(cur)
		case "stem":
			base := filepath.Base(cur)
			result = base[:len(base)-len(filepath.Ext(base))]
		case "suffix":
			result = filepath.Ext(cur)
		case "parent":
			result = filepath.Dir(cur)
		default:
			return nil, false
		}
		if i < len(attrs)-1 {
			cur = result
		}
	}
	return []string{result}, true
}
