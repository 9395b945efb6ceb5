package cli

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mascanho/ruddit/ai"
	"github.com/mascanho/ruddit/enums"
	"github.com/mascanho/ruddit/exports"
)

func newAskCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "ask <question>",
		Short: "Ask the model a free-form question about the stored posts",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			question := strings.Join(args, " ")

			svc, err := a.aiService(cmd.Context())
			if err != nil {
				return err
			}

			result, err := svc.Ask(cmd.Context(), question)
			if err != nil {
				return err
			}

			pretty, err := json.MarshalIndent(result.Value, "", "  ")
			if err != nil {
				return fmt.Errorf("pretty-print result: %w", err)
			}
			fmt.Println(string(pretty))
			return nil
		},
	}
}

func newLeadsCmd(a *app) *cobra.Command {
	var noExport bool

	cmd := &cobra.Command{
		Use:   "leads",
		Short: "Classify stored posts and comments into leads and export them",
		RunE: func(cmd *cobra.Command, args []string) error {
			keywords := append([]string{}, a.cfg.Leads.Keywords...)
			keywords = append(keywords, a.cfg.Leads.BrandedKeywords...)

			criteria := ai.LeadCriteria{
				Keywords:   keywords,
				Sentiments: a.cfg.Leads.Sentiments,
				MatchMode:  enums.ParseMatchMode(a.cfg.Leads.Match),
				Languages:  a.cfg.Leads.Languages,
				Prefilter:  a.cfg.Leads.Prefilter,
			}

			fmt.Printf("Matching keywords: %s\n", strings.Join(criteria.Keywords, ", "))
			fmt.Println("Analyzing posts and comments for leads...")

			svc, err := a.aiService(cmd.Context())
			if err != nil {
				return err
			}

			var sink ai.Sink
			var leadsSink *exports.LeadsSink
			if !noExport {
				dir, err := exports.ResolveDir(a.cfg.Exports.Dir)
				if err != nil {
					return err
				}
				leadsSink = &exports.LeadsSink{Dir: dir}
				sink = leadsSink
			}

			result, err := svc.GenerateLeads(cmd.Context(), criteria, sink, a.cfg.Exports.Strict)
			if err != nil {
				return err
			}

			fmt.Printf("Lead analysis completed in %d attempt(s).\n", result.Attempts)
			if leadsSink != nil && leadsSink.LastPath != "" {
				fmt.Printf("Results exported to %s\n", leadsSink.LastPath)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&noExport, "no-export", false, "print leads without writing a spreadsheet")
	return cmd
}
