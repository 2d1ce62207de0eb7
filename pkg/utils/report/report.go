package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/m-mizutani/warden/pkg/domain/model"
)

var (
	passMark = color.New(color.FgGreen).SprintFunc()
	failMark = color.New(color.FgRed, color.Bold).SprintFunc()
)

// Write renders the report as the line-oriented CI log: an info line per
// commit, a P/F line per check result, a series block when series checks
// ran, and a final summary line.
func Write(w io.Writer, r *model.SeriesReport) {
	for i := range r.Commits {
		cr := &r.Commits[i]
		fmt.Fprintf(w, "-- Check commit %s (%q)\n", cr.ShortSHA(), cr.Title)
		for _, res := range cr.Results {
			writeResult(w, res)
		}
	}

	if len(r.Series) > 0 {
		fmt.Fprintf(w, "-- Check series (%d commits)\n", len(r.Commits))
		for _, res := range r.Series {
			writeResult(w, res)
		}
	}

	if r.Passed() {
		fmt.Fprintf(w, "-- Check result: %s\n", passMark("PASSED"))
	} else {
		fmt.Fprintf(w, "-- Check result: %s\n", failMark("FAILED"))
	}
}

func writeResult(w io.Writer, res model.CheckResult) {
	if res.Passed {
		fmt.Fprintf(w, "   %s: %s\n", passMark("P"), res.Message)
	} else {
		fmt.Fprintf(w, "   %s: %s\n", failMark("F"), res.Message)
	}
}

// Markdown renders the report as a GitHub PR comment body
func Markdown(r *model.SeriesReport) string {
	var b strings.Builder

	if r.Passed() {
		b.WriteString("## Patch series check: PASSED :white_check_mark:\n\n")
	} else {
		b.WriteString("## Patch series check: FAILED :x:\n\n")
	}

	for i := range r.Commits {
		cr := &r.Commits[i]
		fmt.Fprintf(&b, "### `%s` %s\n\n", cr.ShortSHA(), cr.Title)
		for _, res := range cr.Results {
			writeMarkdownResult(&b, res)
		}
		b.WriteString("\n")
	}

	if len(r.Series) > 0 {
		b.WriteString("### Series consistency\n\n")
		for _, res := range r.Series {
			writeMarkdownResult(&b, res)
		}
	}

	return b.String()
}

func writeMarkdownResult(b *strings.Builder, res model.CheckResult) {
	mark := ":white_check_mark:"
	if !res.Passed {
		mark = ":x:"
	}
	fmt.Fprintf(b, "- %s %s\n", mark, res.Message)
}
