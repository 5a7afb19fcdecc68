package main

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	excel "github.com/geoirb/xlsx-template"
)

type fillOptions struct {
	template string
	data     string
	format   string
	out      string
}

func newFillCommand() *cobra.Command {
	opts := &fillOptions{}
	cmd := &cobra.Command{
		Use:   "fill",
		Short: "Bind data into a template and save the result",
		Example: `  xlsx-template fill -t invoice.xlsx -d invoice.json -o out.xlsx
  cat data.yaml | xlsx-template fill -t report.xlsx -d - -f yaml -o report-q1.xlsx`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runFill(cmd.OutOrStdout(), cmd.InOrStdin(), opts)
		},
	}
	cmd.Flags().StringVarP(&opts.template, "template", "t", "", "Template .xlsx file (default a blank workbook)")
	cmd.Flags().StringVarP(&opts.data, "data", "d", "", `Data file, or "-" for stdin`)
	cmd.Flags().StringVarP(&opts.format, "format", "f", "", "Data format: json or yaml (default from the data file extension)")
	cmd.Flags().StringVarP(&opts.out, "out", "o", "", "Output .xlsx file")
	_ = cmd.MarkFlagRequired("out")

	return cmd
}

func runFill(stdout io.Writer, stdin io.Reader, opts *fillOptions) error {
	logger, err := newLogger()
	if err != nil {
		return err
	}

	var payload any
	if opts.data != "" {
		if payload, err = readPayload(stdin, opts.data, opts.format); err != nil {
			return err
		}
	}

	tmpl, err := excel.NewTemplate(
		excel.WithConfig(excel.ConfigFromEnvironment()),
		excel.WithLogger(logger),
	)
	if err != nil {
		return err
	}
	defer tmpl.Close()

	var source any
	if opts.template != "" {
		source = opts.template
	}
	if err = tmpl.LoadTemplate(source); err != nil {
		return err
	}
	if err = tmpl.ApplyData(payload); err != nil {
		return err
	}
	if err = tmpl.ToFile(opts.out); err != nil {
		return err
	}

	fmt.Fprintln(stdout, color.GreenString("saved %s", opts.out))
	return nil
}

func readPayload(stdin io.Reader, path, format string) (any, error) {
	if format == "" {
		format = formatFromPath(path)
	}
	if path == "-" {
		return decodePayload(stdin, format)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return decodePayload(f, format)
}
