package builtin

// punctuation is the fixed escape-character field table of spec.md §6.
// Because these fields emit reserved characters only after parsing,
// they can't be used to smuggle a separator into the same clause they
// appear in — {var:...} plus "%name" is the documented escape for that.
var punctuation = map[string]string{
	"comma":        ",",
	"semicolon":    ";",
	"questionmark": "?",
	"pipe":         "|",
	"percent":      "%",
	"ampersand":    "&",
	"openbrace":    "{",
	"closebrace":   "}",
	"openparens":   "(",
	"closeparens":  ")",
	"openbracket":  "[",
	"closebracket": "]",
	"newline":      "\n",
	"lf":           "\n",
	"cr":           "\r",
	"crlf":         "\r\n",
}
