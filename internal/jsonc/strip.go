package jsonc

// Strip removes comment spans and trailing commas from JSONC source,
// returning text a strict JSON parser accepts.
//
// The result has the same length and line structure as the input: every
// stripped byte becomes a space except newlines, which are kept. Sequences
// that merely look like comments inside quoted strings are left untouched.
func Strip(src []byte) []byte {
	out := stripComments(src)
	return stripTrailingCommas(out)
}

const (
	stateCode = iota
	stateString
	stateLineComment
	stateBlockComment
)

func stripComments(src []byte) []byte {
	out := make([]byte, len(src))
	copy(out, src)

	state := stateCode
	escaped := false
	for i := 0; i < len(src); i++ {
		c := src[i]
		switch state {
		case stateCode:
			switch {
			case c == '"':
				state = stateString
			case c == '/' && i+1 < len(src) && src[i+1] == '/':
				state = stateLineComment
				out[i] = ' '
			case c == '/' && i+1 < len(src) && src[i+1] == '*':
				state = stateBlockComment
				out[i] = ' '
			}
		case stateString:
			if escaped {
				escaped = false
			} else if c == '\\' {
				escaped = true
			} else if c == '"' {
				state = stateCode
			}
		case stateLineComment:
			if c == '\n' {
				state = stateCode
			} else {
				out[i] = ' '
			}
		case stateBlockComment:
			if c == '*' && i+1 < len(src) && src[i+1] == '/' {
				out[i] = ' '
				out[i+1] = ' '
				i++
				state = stateCode
			} else if c != '\n' {
				out[i] = ' '
			}
		}
	}
	return out
}

// stripTrailingCommas blanks any comma whose next non-whitespace byte closes
// an object or array. Runs on comment-free text, so only strings need care.
func stripTrailingCommas(src []byte) []byte {
	inString := false
	escaped := false
	for i := 0; i < len(src); i++ {
		c := src[i]
		if inString {
			if escaped {
				escaped = false
			} else if c == '\\' {
				escaped = true
			} else if c == '"' {
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case ',':
			if next, ok := nextNonSpace(src, i+1); ok && (next == '}' || next == ']') {
				src[i] = ' '
			}
		}
	}
	return src
}

func nextNonSpace(src []byte, from int) (byte, bool) {
	for i := from; i < len(src); i++ {
		switch src[i] {
		case ' ', '\t', '\n', '\r':
			continue
		default:
			return src[i], true
		}
	}
	return 0, false
}
