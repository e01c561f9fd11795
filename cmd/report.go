package cmd

import (
	"fmt"
	"io"

	"github.com/achilleasa/glperf/bench"
	"github.com/achilleasa/glperf/scene"
	"github.com/olekukonko/tablewriter"
)

const rowFormat = "|%-15s| %-15s | %-8s | %-8s | %s\n"

// tableReporter prints one row per completed scene followed by a summary
// table of category scores.
type tableReporter struct {
	w    io.Writer
	rows int
}

func newTableReporter(w io.Writer) *tableReporter {
	return &tableReporter{w: w}
}

func (r *tableReporter) SceneCompleted(node *scene.Node) {
	if r.rows == 0 {
		fmt.Fprintf(r.w, rowFormat, "Scene", "Category", "Weight", "FPS", "Result")
	}
	r.rows++

	fmt.Fprintf(r.w, rowFormat,
		node.Name(),
		node.Category(),
		fmt.Sprintf("%d", node.Weight()),
		fmt.Sprintf("%.2f", node.AverageFPS()),
		node.Result(),
	)
}

func (r *tableReporter) Summary(runID string, scores []bench.CategoryScore) {
	table := tablewriter.NewWriter(r.w)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetHeader([]string{"Category", "Scenes", "Weight", "Score"})
	for _, score := range scores {
		table.Append([]string{
			score.Category.String(),
			fmt.Sprintf("%d", score.Scenes),
			fmt.Sprintf("%d", score.Weight),
			fmt.Sprintf("%.2f", score.Score),
		})
	}
	table.SetFooter([]string{"", "", "RUN", runID})

	fmt.Fprintln(r.w)
	table.Render()
}
