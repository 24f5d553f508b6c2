package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List evaluators, providers, and output formats",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "Evaluators:")
			for _, line := range []string{
				"groundedness  gpt_groundedness  answer entailment against the context",
				"relevance     gpt_relevance     answer coverage of the question",
				"coherence     gpt_coherence     how naturally the answer reads",
				"fluency       gpt_fluency       grammatical quality of the answer",
				"similarity    gpt_similarity    equivalence to the ground truth",
				"f1            f1_score          token overlap with the ground truth",
			} {
				fmt.Fprintf(out, "  %s\n", line)
			}
			fmt.Fprintln(out, "Providers: mock, openai, anthropic, gemini, ollama")
			fmt.Fprintln(out, "Formats: table, json, html, markdown, csv")
			return nil
		},
	}
}
