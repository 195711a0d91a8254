package search

import (
	"fmt"
	"io"

	"github.com/drakos74/odsearch/internal/emoji"
	"github.com/olekukonko/tablewriter"
)

// Leaderboard renders the ranked candidates as a table.
func (r *Result) Leaderboard(w io.Writer, top int) {
	if top <= 0 || top > len(r.Candidates) {
		top = len(r.Candidates)
	}
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"rank", "detector", "config", "score", "precision", "recall", "fit"})
	for _, c := range r.Candidates[:top] {
		table.Append([]string{
			fmt.Sprintf("%d", c.Rank),
			c.Detector,
			c.Config.Format(),
			fmt.Sprintf("%.4f %s", c.Score, emoji.MapScore(c.Score)),
			fmt.Sprintf("%.4f", c.Matrix.Precision()),
			fmt.Sprintf("%.4f", c.Matrix.Recall()),
			fmt.Sprintf("%v", c.FitTime),
		})
	}
	table.Render()
}

// Summary formats the run statistics.
func (r *Result) Summary() string {
	best, ok := r.Best()
	if !ok {
		return fmt.Sprintf("run %s: no candidate completed (%d failed)", r.RunID, r.Failed)
	}
	return fmt.Sprintf("run %s: %d candidates evaluated, %d failed, best %s %s score %.4f in %v",
		r.RunID, r.Evaluated, r.Failed, best.Detector, best.Config.Format(), best.Score, r.Elapsed)
}
