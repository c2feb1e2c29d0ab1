package differ

import (
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"
)

// DiffProcessor runs line-mode diffs over newline separated path lists.
type DiffProcessor struct {
	dmp *diffmatchpatch.DiffMatchPatch
}

// NewDiffProcessor creates a processor. The diff timeout is disabled so the
// result is always a minimal edit script.
func NewDiffProcessor() *DiffProcessor {
	dmp := diffmatchpatch.New()
	dmp.DiffTimeout = 0
	return &DiffProcessor{dmp: dmp}
}

// ProcessLines diffs two line lists and returns line-granular diffs whose
// Text holds newline terminated lines.
func (dp *DiffProcessor) ProcessLines(previous, current []string) []diffmatchpatch.Diff {
	enc := newLineEncoder()
	diffs := dp.dmp.DiffMainRunes(enc.encode(previous), enc.encode(current), false)
	for i := range diffs {
		diffs[i].Text = enc.decode(diffs[i].Text)
	}
	return diffs
}

// lineEncoder maps every distinct line to one rune so the character diff
// works on whole lines.
type lineEncoder struct {
	index map[string]rune
	lines []string
}

func newLineEncoder() *lineEncoder {
	return &lineEncoder{index: make(map[string]rune)}
}

func (e *lineEncoder) encode(lines []string) []rune {
	out := make([]rune, len(lines))
	for i, line := range lines {
		r, ok := e.index[line]
		if !ok {
			r = indexToRune(len(e.lines))
			e.index[line] = r
			e.lines = append(e.lines, line)
		}
		out[i] = r
	}
	return out
}

func (e *lineEncoder) decode(text string) string {
	var b strings.Builder
	for _, r := range text {
		b.WriteString(e.lines[runeToIndex(r)])
		b.WriteByte('\n')
	}
	return b.String()
}

// Surrogate code points are not valid in strings and are skipped.
const (
	surrogateMin = 0xD800
	surrogateLen = 0x800
)

func indexToRune(i int) rune {
	if i >= surrogateMin {
		return rune(i + surrogateLen)
	}
	return rune(i)
}

func runeToIndex(r rune) int {
	if r >= surrogateMin+surrogateLen {
		return int(r) - surrogateLen
	}
	return int(r)
}

// DiffStatistics counts lines per diff operation.
type DiffStatistics struct {
	Inserted  []string
	Deleted   []string
	Unchanged int
}

// CalculateStats splits every diff back into lines.
func CalculateStats(diffs []diffmatchpatch.Diff) DiffStatistics {
	stats := DiffStatistics{Inserted: []string{}, Deleted: []string{}}
	for _, diff := range diffs {
		lines := splitLines(diff.Text)
		switch diff.Type {
		case diffmatchpatch.DiffInsert:
			stats.Inserted = append(stats.Inserted, lines...)
		case diffmatchpatch.DiffDelete:
			stats.Deleted = append(stats.Deleted, lines...)
		case diffmatchpatch.DiffEqual:
			stats.Unchanged += len(lines)
		}
	}
	return stats
}

func splitLines(text string) []string {
	text = strings.TrimSuffix(text, "\n")
	if text == "" {
		return nil
	}
	return strings.Split(text, "\n")
}
