package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	excel "github.com/geoirb/xlsx-template"
)

func newInspectCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "inspect <template.xlsx>",
		Short: "List the placeholders of a template",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInspect(cmd.OutOrStdout(), args[0])
		},
	}
}

func runInspect(stdout io.Writer, path string) error {
	tmpl, err := excel.NewTemplate()
	if err != nil {
		return err
	}
	defer tmpl.Close()

	if err = tmpl.LoadTemplate(path); err != nil {
		return err
	}
	matches, err := tmpl.Placeholders()
	if err != nil {
		return err
	}
	if len(matches) == 0 {
		fmt.Fprintln(stdout, color.YellowString("no placeholders in %s", path))
		return nil
	}

	w := tabwriter.NewWriter(stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "SHEET\tCELL\tKIND\tPATH\tFORMAT")
	for _, m := range matches {
		cell := m.Cell
		if cell == "" {
			cell = "(title)"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", m.Sheet, cell, m.Kind, m.Path, m.Format)
	}
	return w.Flush()
}
