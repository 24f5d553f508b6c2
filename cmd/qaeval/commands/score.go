package commands

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"qaeval/pkg/core"
	"qaeval/pkg/evaluator"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newScoreCommand() *cobra.Command {
	var (
		question     string
		answer       string
		contextText  string
		groundTruth  string
		extras       []string
		sequential   bool
		provider     string
		modelName    string
		mockResponse string
	)

	cmd := &cobra.Command{
		Use:   "score",
		Short: "Score one question/answer/context/ground-truth tuple",
		RunE: func(cmd *cobra.Command, args []string) error {
			if question == "" || answer == "" {
				return errors.New("question and answer are required")
			}

			providerResolved := resolveString(provider, appConfig.Provider)
			if providerResolved == "" {
				providerResolved = "mock"
			}
			judge, err := buildJudgeModel(providerResolved, resolveString(modelName, appConfig.Model.Name), resolveString(mockResponse, appConfig.Model.MockResponse))
			if err != nil {
				return err
			}

			extra, err := parseExtras(extras)
			if err != nil {
				return err
			}

			qa := evaluator.NewQAEvaluator(judge, core.GenerateOptions{})
			qa.Sequential = sequential

			input := core.QAInput{
				Question:    question,
				Answer:      answer,
				Context:     contextText,
				GroundTruth: groundTruth,
				Extra:       extra,
			}

			logger.Debug("scoring tuple",
				zap.String("provider", providerResolved),
				zap.Bool("sequential", sequential),
			)

			metrics, err := qa.Evaluate(context.Background(), input)
			if err != nil {
				return err
			}

			encoder := json.NewEncoder(cmd.OutOrStdout())
			encoder.SetIndent("", "  ")
			return encoder.Encode(metrics.Sanitize())
		},
	}

	cmd.Flags().StringVar(&question, "question", "", "question to evaluate")
	cmd.Flags().StringVar(&answer, "answer", "", "answer to evaluate")
	cmd.Flags().StringVar(&contextText, "context", "", "context the answer should be grounded in")
	cmd.Flags().StringVar(&groundTruth, "ground-truth", "", "reference answer")
	cmd.Flags().StringArrayVar(&extras, "extra", nil, "extra key=value forwarded to every evaluator (repeatable)")
	cmd.Flags().BoolVar(&sequential, "sequential", false, "run the six evaluators one at a time")
	cmd.Flags().StringVar(&provider, "provider", "", "judge model provider (mock, openai, anthropic, gemini, ollama)")
	cmd.Flags().StringVar(&modelName, "model", "", "judge model name")
	cmd.Flags().StringVar(&mockResponse, "mock-response", "", "fixed mock judge response")

	return cmd
}

func parseExtras(pairs []string) (map[string]string, error) {
	if len(pairs) == 0 {
		return nil, nil
	}
	extra := make(map[string]string, len(pairs))
	for _, pair := range pairs {
		key, value, found := strings.Cut(pair, "=")
		if !found || key == "" {
			return nil, fmt.Errorf("invalid extra %q, expected key=value", pair)
		}
		extra[key] = value
	}
	return extra, nil
}
