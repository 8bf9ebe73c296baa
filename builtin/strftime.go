package builtin

import "strings"

// translateStrftime maps the common strftime directives onto Go's
// reference-time layout string. Out of scope per spec.md §1 (the date
// provider itself is a host concern); this covers the directive set
// spec.md §8 scenario 5 exercises plus the few others listed below
// (other directives are not translated), standard-library-only since
// time.Format has no strftime mode and no
// example repo in the pack carries a strftime translator of its own
// (see DESIGN.md).
var strftimeDirectives = map[byte]string{
	'Y': "2006",
	'y': "06",
	'm': "01",
	'd': "02",
	'H': "15",
	'I': "03",
	'M': "04",
	'S': "05",
	'p': "PM",
	'B': "January",
	'b': "Jan",
	'A': "Monday",
	'a': "Mon",
	'Z': "MST",
	'z': "-0700",
	'j': "002",
	'%': "%",
}

func translateStrftime(format string) string {
	var b strings.Builder
	for i := 0; i < len(format); i++ {
		if format[i] != '%' || i+1 >= len(format) {
			b.WriteByte(format[i])
			continue
		}
		if layout, ok := strftimeDirectives[format[i+1]]; ok {
			b.WriteString(layout)
			i++
			continue
		}
		b.WriteByte(format[i])
	}
	return b.String()
}
