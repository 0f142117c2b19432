// Package utils holds small text helpers shared by the analysis pipeline.
package utils

import (
	"strings"
	"unicode/utf8"

	"github.com/RichardScottOZ/Foundation-Character-Interactions/pkg/pool"
)

// Preview truncates s to n bytes for diagnostic logging, appending "..." when
// anything was cut.
func Preview(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}

// CleanJSON strips a surrounding markdown code fence (```json ... ```) and
// outer whitespace. It performs no other recovery; near-JSON stays near-JSON.
func CleanJSON(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	lines := strings.Split(s, "\n")
	if len(lines) < 2 {
		return s
	}
	lines = lines[1:]
	if strings.HasPrefix(strings.TrimSpace(lines[len(lines)-1]), "```") {
		lines = lines[:len(lines)-1]
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}

type dpRow struct {
	cells []int
}

func (r *dpRow) Reset() {
	r.cells = r.cells[:0]
}

var rowPool = pool.New(func() *dpRow {
	return &dpRow{cells: make([]int, 0, 128)}
})

// Levenshtein returns the edit distance between two strings, rune-wise.
func Levenshtein(a, b string) int {
	ar, br := []rune(a), []rune(b)
	if len(ar) == 0 {
		return len(br)
	}
	if len(br) == 0 {
		return len(ar)
	}
	if len(br) > len(ar) {
		ar, br = br, ar
	}

	row := rowPool.Get()
	defer rowPool.Put(row)
	if cap(row.cells) < len(br)+1 {
		row.cells = make([]int, len(br)+1)
	} else {
		row.cells = row.cells[:len(br)+1]
	}
	for j := range row.cells {
		row.cells[j] = j
	}

	for i := 1; i <= len(ar); i++ {
		prev := row.cells[0] // row[i-1][j-1]
		row.cells[0] = i
		for j := 1; j <= len(br); j++ {
			sub := prev
			if ar[i-1] != br[j-1] {
				sub++
			}
			prev = row.cells[j]
			row.cells[j] = min(sub, row.cells[j]+1, row.cells[j-1]+1)
		}
	}
	return row.cells[len(br)]
}

// Similarity returns 1 for identical strings and 0 for completely different
// ones, case-insensitive and trimmed.
func Similarity(a, b string) float64 {
	a, b = strings.ToLower(strings.TrimSpace(a)), strings.ToLower(strings.TrimSpace(b))
	if a == "" && b == "" {
		return 1.0
	}
	maxLen := max(utf8.RuneCountInString(a), utf8.RuneCountInString(b))
	if maxLen == 0 {
		return 0
	}
	return 1.0 - float64(Levenshtein(a, b))/float64(maxLen)
}
