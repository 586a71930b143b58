package fuzztests

import (
	"bytes"
	"io/fs"
	"os"
	"path/filepath"
	"testing"
)

const (
	maxSeedBytes = 64 << 10 // 64 KiB: ограничение для тестового корпуса
)

var builtinSeeds = []string{
	"",
	"(S (NP (DT the) (NN dog)) (VP (VBZ barks)))",
	"(TOP (S (NP-SBJ (PRP I)) (VP (VBD ran))))",
	"(TOP (TOP (A a)))",
	"((S (NN x)))",
	"(NP (-NONE- *T*-1) (NN a  b))",
	"(S (NP a (b c)))",
	"(S (NP (NN a)",
	"(A a)) x",
	"(A \x00)",
	"(NN caf\xc3\xa9)",
}

func addCorpusSeeds(f *testing.F) {
	for _, s := range builtinSeeds {
		f.Add([]byte(s))
	}
	addTestdataSeeds(f)
}

// addTestdataSeeds adds every line of the repository treebank samples.
func addTestdataSeeds(f *testing.F) {
	root := filepath.Join("..", "..", "testdata")
	if _, err := os.Stat(root); err != nil {
		return
	}
	_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil || d.IsDir() {
			return nil
		}
		// #nosec G304 -- path comes from repository testdata walk
		src, err := os.ReadFile(path)
		if err != nil {
			return nil
		}
		for _, line := range bytes.Split(src, []byte{'\n'}) {
			if len(bytes.TrimSpace(line)) > 0 {
				f.Add(clampSeed(line))
			}
		}
		return nil
	})
}

func clampSeed(src []byte) []byte {
	if len(src) <= maxSeedBytes {
		return append([]byte(nil), src...)
	}
	return append([]byte(nil), src[:maxSeedBytes]...)
}
