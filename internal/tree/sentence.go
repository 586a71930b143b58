package tree

import "strings"

// Token is one word of a sentence with its part-of-speech tag.
type Token struct {
	Word string
	Tag  string
}

// Sentence is the flat token sequence of one tree, indexed by span position.
type Sentence []Token

func (s Sentence) Words() []string {
	out := make([]string, len(s))
	for i, t := range s {
		out[i] = t.Word
	}
	return out
}

func (s Sentence) Tags() []string {
	out := make([]string, len(s))
	for i, t := range s {
		out[i] = t.Tag
	}
	return out
}

// String renders the sentence as "word/TAG word/TAG ...".
func (s Sentence) String() string {
	var sb strings.Builder
	for i, t := range s {
		if i > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(t.Word)
		sb.WriteByte('/')
		sb.WriteString(t.Tag)
	}
	return sb.String()
}
