// Package format renders catalog, advisories and input charts for terminals.
package format

import (
	"fmt"
	"math"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/miradorstack/engine-condition/internal/models"
)

// Mode controls the output format.
type Mode int

const (
	ASCII    Mode = iota // Fixed-width terminal tables
	Markdown             // GitHub-flavoured Markdown tables
)

// DefaultBarWidth is the number of cells used by the longest bar.
const DefaultBarWidth = 40

const (
	positiveCell = "█"
	negativeCell = "▒"
)

func newWriter(m Mode) table.Writer {
	w := table.NewWriter()
	if m == ASCII {
		w.SetStyle(table.StyleLight)
	}
	return w
}

func render(w table.Writer, m Mode) string {
	if m == Markdown {
		return w.RenderMarkdown()
	}
	return w.Render()
}

func number(v float64) string {
	return fmt.Sprintf("%.2f", v)
}

// SensorTable lists every field with its bounds, default and description.
func SensorTable(specs []models.SensorSpec, m Mode) string {
	w := newWriter(m)
	w.SetTitle("Feature Descriptions")
	w.AppendHeader(table.Row{"Field", "Label", "Min", "Max", "Default", "Step", "Description"})
	for _, spec := range specs {
		w.AppendRow(table.Row{
			spec.Field.Key(),
			spec.Label,
			number(spec.Min),
			number(spec.Max),
			number(spec.Default()),
			spec.Step,
			spec.Description,
		})
	}
	w.SetColumnConfigs([]table.ColumnConfig{
		{Number: 3, Align: text.AlignRight},
		{Number: 4, Align: text.AlignRight},
		{Number: 5, Align: text.AlignRight},
		{Number: 6, Align: text.AlignRight},
		{Number: 7, WidthMax: 48},
	})
	return render(w, m)
}

// Advisories renders one line per advisory in evaluation order.
func Advisories(advisories []models.Advisory) string {
	if len(advisories) == 0 {
		return "No sensor advisories.\n"
	}
	var b strings.Builder
	for _, adv := range advisories {
		fmt.Fprintf(&b, "- %s\n", adv.Message)
	}
	return b.String()
}

// BarChart draws the chart as a table with one bar per input. Bars share a
// common scale set by the largest absolute value; negative values use a
// shaded cell.
func BarChart(chart models.Chart, width int, m Mode) string {
	if width <= 0 {
		width = DefaultBarWidth
	}
	maxAbs := 0.0
	for _, bar := range chart.Bars {
		maxAbs = math.Max(maxAbs, math.Abs(bar.Value))
	}

	w := newWriter(m)
	w.SetTitle(chart.Title)
	w.AppendHeader(table.Row{"Sensor", "Value", ""})
	for _, bar := range chart.Bars {
		w.AppendRow(table.Row{bar.Label, number(bar.Value), Bar(bar.Value, maxAbs, width)})
	}
	w.SetColumnConfigs([]table.ColumnConfig{
		{Number: 2, Align: text.AlignRight},
	})
	return render(w, m)
}

// Bar returns the cells for v on a scale where maxAbs fills width cells.
func Bar(v, maxAbs float64, width int) string {
	if maxAbs <= 0 || width <= 0 || math.IsNaN(v) {
		return ""
	}
	cells := int(math.Round(math.Abs(v) / maxAbs * float64(width)))
	if cells == 0 && v != 0 {
		cells = 1
	}
	if cells > width {
		cells = width
	}
	if v < 0 {
		return strings.Repeat(negativeCell, cells)
	}
	return strings.Repeat(positiveCell, cells)
}

// Assessment renders the advisories, the verdict and the input chart.
func Assessment(a models.Assessment, width int, m Mode) string {
	var b strings.Builder
	b.WriteString(Advisories(a.Advisories))
	b.WriteString("\n")
	b.WriteString(a.VerdictMessage)
	b.WriteString("\n\n")
	b.WriteString(BarChart(a.Chart, width, m))
	b.WriteString("\n")
	return b.String()
}
