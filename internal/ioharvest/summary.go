package ioharvest

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/gnames/gnbryo/pkg/harvest"
	"github.com/gnames/gnfmt"
)

// skipOrder lists skip reasons in the order of the pipeline.
var skipOrder = []harvest.SkipReason{
	harvest.Unresolved,
	harvest.AlreadyVisited,
	harvest.Placeholder,
	harvest.Duplicate,
	harvest.Incomplete,
}

// Report formats the summary for the console.
func Report(sum harvest.Summary) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Processed %s of %s taxa in %s\n",
		humanize.Comma(int64(sum.Processed)),
		humanize.Comma(int64(sum.Total)),
		gnfmt.TimeString(sum.Duration.Seconds()),
	)
	fmt.Fprintf(&sb, "  merged:   %s\n", humanize.Comma(int64(sum.Merged)))
	if sum.Replaced > 0 {
		fmt.Fprintf(&sb, "  replaced: %s\n", humanize.Comma(int64(sum.Replaced)))
	}
	fmt.Fprintf(&sb, "  skipped:  %s\n", humanize.Comma(int64(sum.SkippedTotal())))
	for _, v := range skipOrder {
		if n := sum.Skipped[v]; n > 0 {
			fmt.Fprintf(&sb, "    %-16s %s\n", v.String()+":", humanize.Comma(int64(n)))
		}
	}
	fmt.Fprintf(&sb, "  stored:   %s species, %d checkpoints",
		humanize.Comma(int64(sum.Stored)), sum.Flushes)
	return sb.String()
}

// Log writes the summary to the log.
func Log(sum harvest.Summary) {
	args := []any{
		"total", sum.Total,
		"processed", sum.Processed,
		"merged", sum.Merged,
		"replaced", sum.Replaced,
		"skipped", sum.SkippedTotal(),
		"stored", sum.Stored,
		"flushes", sum.Flushes,
		"duration", gnfmt.TimeString(sum.Duration.Seconds()),
	}
	for _, v := range skipOrder {
		if n := sum.Skipped[v]; n > 0 {
			args = append(args, "skipped_"+v.String(), n)
		}
	}
	slog.Info("Harvest finished", args...)
}
