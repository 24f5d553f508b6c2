package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"qaeval/pkg/cache"
	"qaeval/pkg/core"
	"qaeval/pkg/dataset"
	"qaeval/pkg/evallog"
	"qaeval/pkg/evaluator"
	"qaeval/pkg/model"
	"qaeval/pkg/reporter"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newEvalCommand() *cobra.Command {
	var (
		datasetPath  string
		workers      int
		sequential   bool
		outputPath   string
		format       string
		provider     string
		modelName    string
		mockResponse string
		logDir       string
		logFormat    string
		retryFrom    string
		rateRPS      float64
		useCache     bool
	)

	cmd := &cobra.Command{
		Use:   "eval",
		Short: "Score a dataset of QA tuples",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			path := resolveString(datasetPath, appConfig.Dataset)
			if path == "" && retryFrom == "" {
				return errors.New("dataset path is required")
			}
			formatResolved := resolveString(format, appConfig.Format)
			if formatResolved == "" {
				formatResolved = "table"
			}
			outputResolved := resolveString(outputPath, appConfig.Output)
			providerResolved := resolveString(provider, appConfig.Provider)
			if providerResolved == "" {
				providerResolved = "mock"
			}
			logDirResolved := resolveString(logDir, appConfig.LogDir)
			logFormatResolved := resolveString(logFormat, appConfig.LogFormat)
			if logFormatResolved == "" {
				logFormatResolved = "json"
			}
			workerCount := resolveInt(workers, appConfig.Workers, 1)
			sequentialResolved := sequential
			if !cmd.Flags().Changed("sequential") {
				sequentialResolved = appConfig.Sequential
			}

			ds, err := buildDataset(path, retryFrom)
			if err != nil {
				return err
			}

			judge, err := buildJudgeModel(providerResolved, resolveString(modelName, appConfig.Model.Name), resolveString(mockResponse, appConfig.Model.MockResponse))
			if err != nil {
				return err
			}

			if useCache || appConfig.Cache.Enabled {
				ttl := time.Duration(appConfig.Cache.TTLHours) * time.Hour
				store, err := cache.New(appConfig.Cache.Dir, ttl)
				if err != nil {
					return err
				}
				judge = model.CachedModel{Model: judge, Cache: store}
			}

			rps := rateRPS
			if rps <= 0 {
				rps = appConfig.RateLimit.RPS
			}
			if rps > 0 {
				limiter, err := core.NewRateLimiter(rps, appConfig.RateLimit.Burst)
				if err != nil {
					return err
				}
				judge = model.ThrottledModel{Model: judge, Limiter: limiter}
			}

			qa := evaluator.NewQAEvaluator(judge, core.GenerateOptions{})
			qa.Sequential = sequentialResolved

			total, err := ds.Len(ctx)
			if err != nil {
				return err
			}
			bar := newProgressBar(progressWriter(cmd), total)

			runner := core.Runner{
				Dataset:      ds,
				Evaluator:    qa,
				Workers:      workerCount,
				Progress:     bar.Update,
				TotalRecords: total,
			}

			logger.Info("starting evaluation",
				zap.String("dataset", ds.Name()),
				zap.String("provider", providerResolved),
				zap.Int("workers", workerCount),
				zap.Bool("sequential", sequentialResolved),
			)

			report, err := runner.Run(ctx)
			if err != nil {
				return err
			}
			report.ModelName = judge.Name()
			if report.Metadata == nil {
				report.Metadata = map[string]string{}
			}
			report.Metadata["provider"] = providerResolved

			writer := cmd.OutOrStdout()
			if outputResolved != "" {
				file, err := os.Create(outputResolved)
				if err != nil {
					return err
				}
				defer file.Close()
				writer = file
			}

			rep, err := buildReporter(formatResolved, writer)
			if err != nil {
				return err
			}
			if err := rep.Report(report); err != nil {
				return err
			}

			if logFormatResolved != "none" {
				if logDirResolved == "" {
					logDirResolved = "./logs"
				}
				if err := writeEvalLog(logFormatResolved, logDirResolved, report); err != nil {
					return err
				}
			}

			logger.Info("evaluation finished",
				zap.Int("completed", report.Completed),
				zap.Int("failed", report.Failed),
			)
			return nil
		},
	}

	cmd.Flags().StringVar(&datasetPath, "dataset", "", "path to dataset file (JSON array or JSONL of QA records)")
	cmd.Flags().IntVar(&workers, "workers", 0, "number of concurrent records")
	cmd.Flags().BoolVar(&sequential, "sequential", false, "run the six evaluators one at a time per record")
	cmd.Flags().StringVar(&outputPath, "output", "", "output file path")
	cmd.Flags().StringVar(&format, "format", "", "output format (table, json, html, markdown, csv)")
	cmd.Flags().StringVar(&provider, "provider", "", "judge model provider (mock, openai, anthropic, gemini, ollama)")
	cmd.Flags().StringVar(&modelName, "model", "", "judge model name")
	cmd.Flags().StringVar(&mockResponse, "mock-response", "", "fixed mock judge response")
	cmd.Flags().StringVar(&logDir, "log-dir", "", "directory for run logs")
	cmd.Flags().StringVar(&logFormat, "log-format", "", "run log format (json, archive, none)")
	cmd.Flags().StringVar(&retryFrom, "retry-failed", "", "rerun the failed records of a previous run log")
	cmd.Flags().Float64Var(&rateRPS, "rate-limit", 0, "judge requests per second (0 disables)")
	cmd.Flags().BoolVar(&useCache, "cache", false, "cache judge responses on disk")

	return cmd
}

func buildDataset(path, retryFrom string) (core.Dataset, error) {
	if retryFrom == "" {
		return dataset.NewFileDataset(path), nil
	}

	var (
		log evallog.EvalLog
		err error
	)
	if strings.EqualFold(filepath.Ext(retryFrom), ".zip") {
		log, err = evallog.ReadArchive(retryFrom)
	} else {
		log, err = evallog.ReadJSON(retryFrom)
	}
	if err != nil {
		return nil, err
	}
	failed := evallog.FailedRecords(log)
	if len(failed) == 0 {
		return nil, fmt.Errorf("no failed records in %s", retryFrom)
	}
	return dataset.NewSliceDataset(failed, log.Dataset+"-retry"), nil
}

func buildJudgeModel(provider, modelName, mockResponse string) (core.Model, error) {
	switch provider {
	case "mock":
		return model.MockModel{
			NameValue:    modelName,
			ResponseText: mockResponse,
		}, nil
	case "openai":
		m, err := model.NewOpenAIModelFromEnv(resolveString(modelName, appConfig.OpenAI.Model))
		if err != nil {
			return nil, err
		}
		m.Retry = providerRetry(m.Retry, appConfig.OpenAI.TimeoutSeconds, appConfig.OpenAI.MaxRetries, appConfig.OpenAI.BackoffMillis)
		return m, nil
	case "anthropic":
		m, err := model.NewAnthropicModelFromEnv(resolveString(modelName, appConfig.Anthropic.Model))
		if err != nil {
			return nil, err
		}
		m.Retry = providerRetry(m.Retry, appConfig.Anthropic.TimeoutSeconds, appConfig.Anthropic.MaxRetries, appConfig.Anthropic.BackoffMillis)
		if appConfig.Anthropic.MaxTokens > 0 {
			m.MaxTokens = appConfig.Anthropic.MaxTokens
		}
		return m, nil
	case "gemini":
		m, err := model.NewGeminiModelFromEnv(resolveString(modelName, appConfig.Gemini.Model))
		if err != nil {
			return nil, err
		}
		m.Retry = providerRetry(m.Retry, appConfig.Gemini.TimeoutSeconds, appConfig.Gemini.MaxRetries, appConfig.Gemini.BackoffMillis)
		return m, nil
	case "ollama":
		return model.NewOllamaModel(appConfig.Ollama.BaseURL, resolveString(modelName, appConfig.Ollama.Model)), nil
	default:
		return nil, fmt.Errorf("unknown provider: %s", provider)
	}
}

// providerRetry layers configured retry settings over the provider's
// own defaults, so an empty config section keeps them intact.
func providerRetry(base model.RetryPolicy, timeoutSeconds, maxRetries, backoffMillis int) model.RetryPolicy {
	if timeoutSeconds > 0 {
		base.Timeout = time.Duration(timeoutSeconds) * time.Second
	}
	if maxRetries > 0 {
		base.MaxRetries = maxRetries
	}
	if backoffMillis > 0 {
		base.Backoff = time.Duration(backoffMillis) * time.Millisecond
	}
	return base
}

func buildReporter(format string, writer io.Writer) (reporter.Reporter, error) {
	switch format {
	case reporter.FormatJSON:
		return reporter.JSONReporter{Writer: writer, Pretty: true}, nil
	case reporter.FormatTable:
		return reporter.TableReporter{Writer: writer}, nil
	case reporter.FormatHTML:
		return reporter.HTMLReporter{Writer: writer}, nil
	case reporter.FormatMarkdown:
		return reporter.MarkdownReporter{Writer: writer}, nil
	case reporter.FormatCSV:
		return reporter.CSVReporter{Writer: writer}, nil
	default:
		return nil, fmt.Errorf("unknown format: %s", format)
	}
}

func writeEvalLog(format, logDir string, report core.EvalReport) error {
	switch format {
	case "json":
		log := evallog.FromReport(report)
		_, err := evallog.WriteJSON(logDir, log)
		return err
	case "archive", "zip":
		log := evallog.FromReport(report)
		_, err := evallog.WriteArchive(logDir, log)
		return err
	case "none":
		return nil
	default:
		return fmt.Errorf("unknown log format: %s", format)
	}
}

func resolveString(value string, fallback string) string {
	if value != "" {
		return value
	}
	return fallback
}

func resolveInt(value int, fallback int, defaultValue int) int {
	if value > 0 {
		return value
	}
	if fallback > 0 {
		return fallback
	}
	return defaultValue
}
