package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/miradorstack/engine-condition/internal/format"
)

var sensorsMarkdown bool

var sensorsCmd = &cobra.Command{
	Use:   "sensors",
	Short: "List the sensor fields with their bounds and defaults",
	RunE: func(cmd *cobra.Command, _ []string) error {
		rt, err := loadRuntime(cmd.ErrOrStderr())
		if err != nil {
			return err
		}
		mode := format.ASCII
		if sensorsMarkdown {
			mode = format.Markdown
		}
		fmt.Fprintln(cmd.OutOrStdout(), format.SensorTable(rt.catalog.Specs(), mode))
		return nil
	},
}

func init() {
	sensorsCmd.Flags().BoolVar(&sensorsMarkdown, "markdown", false, "render as a Markdown table")
}
