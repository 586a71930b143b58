package lexer

func isSpace(b byte) bool {
	switch b {
	case ' ', '\t', '\n', '\r', '\v', '\f':
		return true
	}
	return false
}

func isWordByte(b byte) bool {
	return b != '(' && b != ')' && b != 0 && !isSpace(b)
}
