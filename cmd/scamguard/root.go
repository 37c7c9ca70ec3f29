package main

import (
	"github.com/spf13/cobra"
)

// Version is set at build time with -ldflags.
var Version = "dev"

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:     "scamguard",
		Version: Version,
		Short:   "Score investment pitches for scam language",
		Long: `scamguard scores free-form investment pitches against a fixed table of
known scam-language indicators and reports a 0-100 risk score, a risk tier
and the matched red flags.

Scoring runs locally with the rule-based scorer; no server is required.`,
		SilenceUsage: true,
	}

	root.AddCommand(newAssessCmd())
	root.AddCommand(newRulesCmd())
	root.AddCommand(newCertsCmd())
	return root
}
