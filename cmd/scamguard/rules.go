package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/bibbank/scamguard/internal/domain/service"
)

type ruleOutput struct {
	Category    string `json:"category" yaml:"category"`
	Severity    string `json:"severity" yaml:"severity"`
	Pattern     string `json:"pattern" yaml:"pattern"`
	Description string `json:"description" yaml:"description"`
}

func newRulesCmd() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "rules",
		Short: "Print the indicator rule table",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			rules := service.NewRiskScorer().Rules()
			out := make([]ruleOutput, 0, len(rules))
			for _, r := range rules {
				out = append(out, ruleOutput{
					Category:    r.Category(),
					Severity:    r.Severity().String(),
					Pattern:     r.Pattern(),
					Description: service.FlagDescription(r.Category()),
				})
			}

			w := cmd.OutOrStdout()
			switch format {
			case "yaml":
				enc := yaml.NewEncoder(w)
				enc.SetIndent(2)
				if err := enc.Encode(out); err != nil {
					return err
				}
				return enc.Close()
			case "json":
				enc := json.NewEncoder(w)
				enc.SetIndent("", "  ")
				return enc.Encode(out)
			default:
				return fmt.Errorf("unsupported format %q (want yaml or json)", format)
			}
		},
	}

	cmd.Flags().StringVarP(&format, "format", "o", "yaml", "output format (yaml, json)")
	return cmd
}
