package source

import (
	"bytes"
	"slices"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// decode снимает BOM и заменяет \r\n на \n; одиночные \r остаются.
func decode(raw []byte) ([]byte, FileFlags) {
	var flags FileFlags
	if bytes.HasPrefix(raw, utf8BOM) {
		raw = raw[len(utf8BOM):]
		flags |= FileHadBOM
	}
	if !slices.Contains(raw, '\r') {
		return raw, flags
	}
	out := make([]byte, 0, len(raw))
	for i := 0; i < len(raw); i++ {
		if raw[i] == '\r' && i+1 < len(raw) && raw[i+1] == '\n' {
			flags |= FileNormalizedCRLF
			continue
		}
		out = append(out, raw[i])
	}
	return out, flags
}

// Encode reverses the normalization Load applied, for content derived from a
// file with these flags: LF becomes CRLF again and the BOM is restored.
func (fl FileFlags) Encode(content []byte) []byte {
	if fl&FileNormalizedCRLF != 0 {
		content = bytes.ReplaceAll(content, []byte("\n"), []byte("\r\n"))
	}
	if fl&FileHadBOM != 0 {
		content = append(slices.Clip(utf8BOM), content...)
	}
	return content
}
