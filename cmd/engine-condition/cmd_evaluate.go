package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/miradorstack/engine-condition/internal/chart"
	"github.com/miradorstack/engine-condition/internal/classifier"
	"github.com/miradorstack/engine-condition/internal/format"
	"github.com/miradorstack/engine-condition/internal/models"
	"github.com/miradorstack/engine-condition/internal/services"
)

var evaluateOpts struct {
	values         [models.FieldCount]float64
	modelPath      string
	advisoriesOnly bool
	output         string
	width          int
}

var evaluateCmd = &cobra.Command{
	Use:   "evaluate",
	Short: "Evaluate one sensor reading and print advisories, verdict and chart",
	Long: `Evaluate runs the threshold advisor and the condition classifier on a
single reading. Fields not given on the command line take the midpoint of
their configured range.`,
	RunE: runEvaluate,
}

func init() {
	flags := evaluateCmd.Flags()
	for _, spec := range models.DefaultSensorSpecs() {
		flags.Float64Var(&evaluateOpts.values[spec.Field], flagName(spec.Field), spec.Default(),
			fmt.Sprintf("%s (%g to %g)", spec.Description, spec.Min, spec.Max))
	}
	flags.StringVar(&evaluateOpts.modelPath, "model", "", "classifier artifact path, overriding model.path")
	flags.BoolVar(&evaluateOpts.advisoriesOnly, "advisories-only", false, "skip the classifier")
	flags.StringVarP(&evaluateOpts.output, "output", "o", "text", "output format: text, markdown or json")
	flags.IntVar(&evaluateOpts.width, "width", format.DefaultBarWidth, "width of the longest chart bar")
}

// flagName turns lub_oil_pressure into lub-oil-pressure.
func flagName(f models.Field) string {
	return strings.ReplaceAll(f.Key(), "_", "-")
}

func runEvaluate(cmd *cobra.Command, _ []string) error {
	rt, err := loadRuntime(cmd.ErrOrStderr())
	if err != nil {
		return err
	}

	// Unset fields follow the configured catalog, which may differ from the
	// stock bounds used for flag defaults.
	values := rt.catalog.DefaultReading().Values()
	for _, field := range models.Fields() {
		if cmd.Flags().Changed(flagName(field)) {
			values[field] = evaluateOpts.values[field]
		}
	}
	reading, err := models.ReadingFromValues(values[:])
	if err != nil {
		return err
	}

	var clf classifier.Classifier
	if !evaluateOpts.advisoriesOnly {
		path := rt.cfg.Model.Path
		if evaluateOpts.modelPath != "" {
			path = evaluateOpts.modelPath
		}
		model, err := classifier.Load(path)
		if err != nil {
			return err
		}
		clf = model
	}
	svc := services.NewConditionService(rt.logger, rt.catalog, rt.advisor, clf)

	mode := format.ASCII
	switch strings.ToLower(evaluateOpts.output) {
	case "text":
	case "markdown":
		mode = format.Markdown
	case "json":
		return evaluateJSON(cmd.OutOrStdout(), svc, reading)
	default:
		return fmt.Errorf("unknown output format %q", evaluateOpts.output)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, format.SensorTable(rt.catalog.Specs(), mode))
	fmt.Fprintln(out)

	if evaluateOpts.advisoriesOnly {
		advisories, err := svc.Advisories(reading)
		if err != nil {
			return err
		}
		fmt.Fprint(out, format.Advisories(advisories))
		fmt.Fprintln(out)
		fmt.Fprintln(out, format.BarChart(chart.Build(reading, rt.catalog), evaluateOpts.width, mode))
		return nil
	}

	assessment, err := svc.Assess(reading)
	if err != nil {
		return err
	}
	fmt.Fprint(out, format.Assessment(assessment, evaluateOpts.width, mode))
	return nil
}

func evaluateJSON(w io.Writer, svc *services.ConditionService, reading models.SensorReading) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if evaluateOpts.advisoriesOnly {
		advisories, err := svc.Advisories(reading)
		if err != nil {
			return err
		}
		return enc.Encode(map[string]interface{}{"advisories": advisories})
	}
	assessment, err := svc.Assess(reading)
	if err != nil {
		return err
	}
	return enc.Encode(assessment)
}
