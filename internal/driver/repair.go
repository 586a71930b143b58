package driver

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"treespan/internal/diag"
	"treespan/internal/fix"
	"treespan/internal/parser"
	"treespan/internal/source"
)

// DefaultRepairRounds bounds fix rounds per line.
const DefaultRepairRounds = 64

type RepairRequest struct {
	Path      string
	Parse     parser.Options
	MaxRounds int
	DryRun    bool
}

// LineRepair describes one rewritten line.
type LineRepair struct {
	Line   int
	Before string
	After  string
	Fixes  []string
}

// LineFailure is a line that is still malformed after repair.
type LineFailure struct {
	Line int
	Diag diag.Diagnostic
}

type RepairResult struct {
	Path     string
	Repaired []LineRepair
	Failed   []LineFailure
	Content  []byte
	Written  bool
}

// Repair reparses every line of req.Path and applies the fixes the parser
// suggests until the line parses, no fix is offered, or MaxRounds is hit.
// The file is rewritten only when something changed and DryRun is off.
func Repair(ctx context.Context, req RepairRequest) (*RepairResult, error) {
	fs := source.NewFileSet()
	id, err := fs.Load(req.Path)
	if err != nil {
		return nil, err
	}
	file := fs.Get(id)
	rounds := req.MaxRounds
	if rounds <= 0 {
		rounds = DefaultRepairRounds
	}

	res := &RepairResult{Path: req.Path}
	lines := file.Lines()
	out := make([]string, len(lines))
	for i, sp := range lines {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		text := file.Text(sp)
		out[i] = text
		if strings.TrimSpace(text) == "" {
			continue
		}
		fixed, titles, failure := repairLine(text, req.Parse, rounds)
		if failure != nil {
			res.Failed = append(res.Failed, LineFailure{Line: i + 1, Diag: *failure})
		}
		if len(titles) > 0 {
			out[i] = fixed
			res.Repaired = append(res.Repaired, LineRepair{Line: i + 1, Before: text, After: fixed, Fixes: titles})
		}
	}

	content := strings.Join(out, "\n")
	if len(file.Content) > 0 && file.Content[len(file.Content)-1] == '\n' {
		content += "\n"
	}
	res.Content = file.Flags.Encode([]byte(content))
	if len(res.Repaired) == 0 || req.DryRun {
		return res, nil
	}
	if err := fix.WriteFile(req.Path, res.Content); err != nil {
		return res, err
	}
	res.Written = true
	return res, nil
}

// repairLine возвращает исправленную строку, применённые фиксы и
// диагностику, если строку починить не удалось.
func repairLine(text string, opts parser.Options, rounds int) (string, []string, *diag.Diagnostic) {
	opts.Reporter = nil
	var titles []string
	for range rounds {
		_, err := parser.ParseLine(text, opts)
		if err == nil {
			return text, titles, nil
		}
		var perr *parser.Error
		if !errors.As(err, &perr) {
			d := diag.NewError(diag.SynUnexpectedToken, source.Span{}, err.Error())
			return text, titles, &d
		}
		if len(perr.Diag.Fixes) == 0 {
			return text, titles, &perr.Diag
		}
		next, applied, _ := fix.Apply([]byte(text), perr.Diag.Fixes[:1])
		if len(applied) == 0 {
			return text, titles, &perr.Diag
		}
		text = string(next)
		titles = append(titles, applied[0].Title)
	}
	d := diag.NewError(diag.SynUnclosedParen, source.Span{}, fmt.Sprintf("line still malformed after %d fix rounds", rounds))
	return text, titles, &d
}
