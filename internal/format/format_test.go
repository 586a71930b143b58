package format

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"

	"treespan/internal/parser"
	"treespan/internal/tree"
)

func mustParse(t *testing.T, line string) *tree.Node {
	t.Helper()
	n, err := parser.ParseLine(line, parser.Options{})
	if err != nil {
		t.Fatalf("parse %q: %v", line, err)
	}
	return n
}

const sample = "(S (NP (DT the) (NN dog)) (VP (VBZ barks)))"

func TestPretty(t *testing.T) {
	got := Pretty(mustParse(t, sample), Options{})
	want := "(S\n  (NP (DT the) (NN dog))\n  (VP (VBZ barks)))\n"
	if got != want {
		t.Fatalf("got:\n%s\nwant:\n%s", got, want)
	}

	nested := mustParse(t, "(S (NP (NP (NN a)) (PP (IN of) (NN b))))")
	got = Pretty(nested, Options{UseTabs: true})
	want = "(S\n\t(NP\n\t\t(NP (NN a))\n\t\t(PP (IN of) (NN b))))\n"
	if got != want {
		t.Fatalf("got:\n%q\nwant:\n%q", got, want)
	}
}

func TestPrettyReparses(t *testing.T) {
	root := mustParse(t, sample)
	back := mustParse(t, strings.ReplaceAll(Pretty(root, Options{}), "\n", " "))
	if back.String() != root.String() {
		t.Fatalf("pretty output does not reparse: %s", back)
	}
}

func TestTokensAndBracketed(t *testing.T) {
	root := mustParse(t, sample)
	if got := Tokens(root); got != "the/DT dog/NN barks/VBZ" {
		t.Fatalf("tokens = %q", got)
	}
	if got := Tokens(root.Children()[1]); got != "barks/VBZ" {
		t.Fatalf("subtree tokens = %q", got)
	}
	if Bracketed(root) != sample {
		t.Fatalf("bracketed = %q", Bracketed(root))
	}
}

func TestStructured(t *testing.T) {
	root := mustParse(t, sample)

	var buf bytes.Buffer
	if err := JSON(&buf, root); err != nil {
		t.Fatal(err)
	}
	var fromJSON Constituent
	if err := json.Unmarshal(buf.Bytes(), &fromJSON); err != nil {
		t.Fatal(err)
	}

	buf.Reset()
	if err := YAML(&buf, root); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "span: [0, 2]") {
		t.Fatalf("span should be a flow sequence:\n%s", buf.String())
	}
	var fromYAML Constituent
	if err := yaml.Unmarshal(buf.Bytes(), &fromYAML); err != nil {
		t.Fatal(err)
	}

	for _, c := range []Constituent{fromJSON, fromYAML} {
		if c.Label != "S" || c.Span != [2]int{0, 2} || len(c.Children) != 2 {
			t.Fatalf("unexpected root %+v", c)
		}
		dog := c.Children[0].Children[1]
		if dog.Label != "NN" || dog.Word != "dog" || dog.Span != [2]int{1, 1} {
			t.Fatalf("unexpected leaf %+v", dog)
		}
	}
}

func TestParseStyle(t *testing.T) {
	for _, name := range []string{"bracket", "pretty", "JSON", "yaml", "tokens"} {
		s, err := ParseStyle(name)
		if err != nil {
			t.Fatalf("%s: %v", name, err)
		}
		if !strings.EqualFold(s.String(), name) {
			t.Fatalf("%s round-tripped to %s", name, s)
		}
	}
	if _, err := ParseStyle("xml"); err == nil {
		t.Fatal("expected error for unknown style")
	}
}

func TestWrite(t *testing.T) {
	root := mustParse(t, "(NP (DT a) (NN b))")
	var buf bytes.Buffer
	if err := Write(&buf, root, StyleBracket, Options{}); err != nil {
		t.Fatal(err)
	}
	if err := Write(&buf, root, StyleTokens, Options{}); err != nil {
		t.Fatal(err)
	}
	if buf.String() != "(NP (DT a) (NN b))\na/DT b/NN\n" {
		t.Fatalf("got %q", buf.String())
	}
	if err := Encode(&buf, StylePretty, root); err == nil {
		t.Fatal("pretty is not a structured format")
	}
}
