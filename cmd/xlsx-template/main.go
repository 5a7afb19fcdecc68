// Command xlsx-template fills spreadsheet templates from JSON or YAML data.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var logLevel = "warn"

func main() {
	if err := newRootCommand().Execute(); err != nil {
		color.New(color.FgRed).Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "xlsx-template",
		Short: "Fill .xlsx templates with data",
		Long: `Fill placeholders of .xlsx templates with JSON or YAML data.

Placeholders:
  str(path)            text or native scalar
  number(path fmt)     number with optional number format
  date(path fmt)       date with optional date format
  link(path)           hyperlink from {text, ref}
  qrcode(path)         QR code picture
  {text}               literal text, never bound

Paths use dots and brackets. A [i] marker fills one row per array element.

Formatting defaults are read from XLSX_TEMPLATE_* environment variables.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "Log level: debug, info, warn or error")

	cmd.AddCommand(newFillCommand())
	cmd.AddCommand(newInspectCommand())

	return cmd
}

func newLogger() (*slog.Logger, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(logLevel)); err != nil {
		return nil, fmt.Errorf("invalid log level %q", logLevel)
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})), nil
}
