package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/bibbank/scamguard/internal/domain/model"
	"github.com/bibbank/scamguard/internal/domain/service"
	"github.com/bibbank/scamguard/internal/domain/valueobject"
)

// displayedFlags is how many red flags the text report lists before
// collapsing the rest behind --all.
const displayedFlags = 4

var (
	colorHigh   = color.New(color.FgRed, color.Bold)
	colorMedium = color.New(color.FgYellow, color.Bold)
	colorLow    = color.New(color.FgGreen, color.Bold)
	colorDim    = color.New(color.FgHiBlack)
)

type assessOptions struct {
	file   string
	format string
	all    bool
}

func newAssessCmd() *cobra.Command {
	opts := &assessOptions{}

	cmd := &cobra.Command{
		Use:   "assess [text]",
		Short: "Score a pitch for scam indicators",
		Long: `Score a pitch for scam indicators.

The text is taken from the argument, from --file, or from stdin when neither
is given. Text shorter than 10 characters is rejected.

Examples:
  scamguard assess "Guaranteed 500% returns, act now!"
  scamguard assess --file pitch.txt --format json
  cat pitch.txt | scamguard assess --all`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAssess(cmd, args, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.file, "file", "f", "", "read the pitch from a file")
	cmd.Flags().StringVarP(&opts.format, "format", "o", "text", "output format (text, json)")
	cmd.Flags().BoolVar(&opts.all, "all", false, "list every red flag instead of the first four")
	return cmd
}

func runAssess(cmd *cobra.Command, args []string, opts *assessOptions) error {
	if opts.format != "text" && opts.format != "json" {
		return fmt.Errorf("unsupported format %q (want text or json)", opts.format)
	}

	text, err := readPitch(cmd.InOrStdin(), args, opts.file)
	if err != nil {
		return err
	}
	if err := model.ValidateText(text); err != nil {
		return err
	}

	assessment := service.NewRiskScorer().Assess(text)

	out := cmd.OutOrStdout()
	if opts.format == "json" {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(assessment)
	}
	printAssessment(out, assessment, opts.all)
	return nil
}

func readPitch(stdin io.Reader, args []string, file string) (string, error) {
	switch {
	case len(args) == 1 && file != "":
		return "", fmt.Errorf("pass the text either as an argument or with --file, not both")
	case len(args) == 1:
		return args[0], nil
	case file != "":
		data, err := os.ReadFile(file)
		if err != nil {
			return "", fmt.Errorf("read %s: %w", file, err)
		}
		return string(data), nil
	default:
		data, err := io.ReadAll(stdin)
		if err != nil {
			return "", fmt.Errorf("read stdin: %w", err)
		}
		return strings.TrimRight(string(data), "\r\n"), nil
	}
}

func levelColor(level valueobject.RiskLevel) *color.Color {
	switch {
	case level.Equal(valueobject.RiskLevelHigh):
		return colorHigh
	case level.Equal(valueobject.RiskLevelMedium):
		return colorMedium
	default:
		return colorLow
	}
}

func severityColor(severity valueobject.Severity) *color.Color {
	switch {
	case severity.Equal(valueobject.SeverityHigh):
		return colorHigh
	case severity.Equal(valueobject.SeverityMedium):
		return colorMedium
	default:
		return colorDim
	}
}

func printAssessment(w io.Writer, a valueobject.RiskAssessment, all bool) {
	level := a.Level()
	c := levelColor(level)

	fmt.Fprintf(w, "Risk score: %s\n", c.Sprintf("%d/100", a.Score()))
	fmt.Fprintf(w, "Risk level: %s\n", c.Sprint(strings.ToUpper(level.String())))
	fmt.Fprintln(w)
	fmt.Fprintln(w, a.Explanation())
	fmt.Fprintln(w)
	fmt.Fprintf(w, "Recommendation: %s\n", a.Recommendation())

	flags := a.RedFlags()
	if len(flags) == 0 {
		return
	}

	fmt.Fprintln(w)
	fmt.Fprintf(w, "%d Red Flags / %d Warnings / %d Minor Issues\n",
		a.CountBySeverity(valueobject.SeverityHigh),
		a.CountBySeverity(valueobject.SeverityMedium),
		a.CountBySeverity(valueobject.SeverityLow),
	)

	shown := flags
	if !all && len(shown) > displayedFlags {
		shown = shown[:displayedFlags]
	}
	for _, f := range shown {
		fmt.Fprintf(w, "  [%s] %s: %q\n", severityColor(f.Severity).Sprint(f.Severity.String()), f.Type, f.Excerpt)
		fmt.Fprintf(w, "      %s\n", f.Description)
	}
	if len(shown) < len(flags) {
		fmt.Fprintf(w, "  ... view all %d red flags with --all\n", len(flags))
	}
}
