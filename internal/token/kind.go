package token

// Kind represents the category of a token.
type Kind uint8

const (
	// Invalid indicates an erroneous token.
	Invalid Kind = iota
	// EOF marks the end of the input range.
	EOF
	// LParen is the opening bracket '('.
	LParen
	// RParen is the closing bracket ')'.
	RParen
	// Word is a bare label or leaf word.
	Word
)

var kindNames = [...]string{
	Invalid: "Invalid",
	EOF:     "EOF",
	LParen:  "(",
	RParen:  ")",
	Word:    "Word",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "Kind(?)"
}
