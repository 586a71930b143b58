package source

import "testing"

func TestDecodeKeepsLoneCR(t *testing.T) {
	out, flags := decode([]byte("a\r\nb\rc"))
	if flags != FileNormalizedCRLF || string(out) != "a\nb\rc" {
		t.Errorf("decode = %q, %b", out, flags)
	}
}

func TestEncodeRoundTrip(t *testing.T) {
	for _, raw := range []string{
		"(A a)\n(B b)\n",
		"\xEF\xBB\xBF(A a)\r\n(B b)\r\n",
		"\xEF\xBB\xBF(A a)",
		"(A a)\r\n",
	} {
		content, flags := decode([]byte(raw))
		if got := string(flags.Encode(content)); got != raw {
			t.Errorf("Encode(decode(%q)) = %q", raw, got)
		}
	}
}

func TestEncodeLeavesBOMTemplateIntact(t *testing.T) {
	FileHadBOM.Encode([]byte("x"))
	if got := string(FileHadBOM.Encode([]byte("y"))); got != "\xEF\xBB\xBFy" {
		t.Fatalf("got %q", got)
	}
}
