package diag

import (
	"fmt"
)

type Code uint16

const (
	UnknownCode Code = 0

	// Лексические
	LexInfo         Code = 1000
	LexUnknownChar  Code = 1001
	LexTokenTooLong Code = 1005
	LexBadEncoding  Code = 1006

	// Синтаксические (скобочная запись)
	SynInfo            Code = 2000
	SynUnexpectedToken Code = 2001
	SynUnclosedParen   Code = 2006
	SynTrailingInput   Code = 2040
	SynMixedContent    Code = 2041
	SynEmptyTree       Code = 2042
	SynEmptyInput      Code = 2043

	// Запросы по спанам
	QryInfo          Code = 3000
	QryEmptySpan     Code = 3001
	QryOutOfRange    Code = 3002
	QryNoExactMatch  Code = 3003
	QryInvariantFail Code = 3010

	// IO
	IOLoadFileError Code = 4001
	IOCacheError    Code = 4002
	IONoInputs      Code = 4003

	// Observability
	ObsInfo    Code = 6000
	ObsTimings Code = 6001
)

var codeDescription = map[Code]string{
	UnknownCode:        "Unknown error",
	LexInfo:            "Lexical information",
	LexUnknownChar:     "Unknown character",
	LexTokenTooLong:    "Token too long",
	LexBadEncoding:     "Invalid UTF-8 encoding",
	SynInfo:            "Syntax information",
	SynUnexpectedToken: "Unexpected token",
	SynUnclosedParen:   "Unclosed parenthesis",
	SynTrailingInput:   "Trailing input after tree",
	SynMixedContent:    "Word mixed with child brackets",
	SynEmptyTree:       "Tree without tokens",
	SynEmptyInput:      "Empty input",
	QryInfo:            "Query information",
	QryEmptySpan:       "Empty span",
	QryOutOfRange:      "Span out of range",
	QryNoExactMatch:    "No constituent with this span",
	QryInvariantFail:   "Span invariant violated",
	IOLoadFileError:    "I/O load file error",
	IOCacheError:       "Tree cache error",
	IONoInputs:         "No treebank files found",
	ObsInfo:            "Observability information",
	ObsTimings:         "Pipeline timings",
}

func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("LEX%04d", ic)
	case ic >= 2000 && ic < 3000:
		return fmt.Sprintf("SYN%04d", ic)
	case ic >= 3000 && ic < 4000:
		return fmt.Sprintf("QRY%04d", ic)
	case ic >= 4000 && ic < 5000:
		return fmt.Sprintf("IO%04d", ic)
	case ic >= 6000 && ic < 7000:
		return fmt.Sprintf("OBS%04d", ic)
	}
	return "E0000"
}

func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[UnknownCode]
	}
	return desc
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}
