package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/edyy78/uireplay/internal/output"
	"github.com/edyy78/uireplay/internal/script"
)

var checkCmd = &cobra.Command{
	Use:   "check SCRIPT...",
	Short: "Parse scripts without running them",
	Long: `Parse each script and report malformed lines and kinds that would be ignored.
Nothing is sent to the desktop. Exits non-zero if any script has a malformed line.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}

		malformed := 0
		for _, path := range args {
			report, err := lintFile(path, cfg.Encoding)
			if err != nil {
				return err
			}
			formatReport(cmd.OutOrStdout(), report)
			malformed += len(report.Malformed)
		}

		if malformed > 0 {
			return fmt.Errorf("%d malformed line(s)", malformed)
		}
		return nil
	},
}

func lintFile(path, encoding string) (script.Report, error) {
	r, err := script.Open(path, encoding)
	if err != nil {
		return script.Report{}, err
	}
	defer r.Close()

	report, err := script.Lint(r)
	if err != nil {
		return report, fmt.Errorf("failed to read script %s: %w", path, err)
	}
	return report, nil
}

func formatReport(w io.Writer, report script.Report) {
	output.FormatInfo(w, fmt.Sprintf("%s: %d lines, %d commands, %d skipped",
		report.Path, report.Lines, len(report.Commands), len(report.Skipped)))
	if report.Title != "" {
		output.FormatInfo(w, "  title: "+report.Title)
	}
	if report.Author != "" {
		output.FormatInfo(w, "  author: "+report.Author)
	}
	for _, c := range report.Malformed {
		output.FormatWarning(w, fmt.Sprintf("%s:%d: malformed line %q", report.Path, c.Line, c.Raw))
	}
	for _, c := range report.Unknown {
		if _, err := script.ValidateKind(string(c.Kind)); err != nil {
			output.FormatWarning(w, fmt.Sprintf("%s:%d: %v, line will be ignored", report.Path, c.Line, err))
		}
	}
}

func init() {
	rootCmd.AddCommand(checkCmd)
}
