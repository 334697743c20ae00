package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2/log"
	"github.com/octavianissuemonitoring/parser-law-sub001/concurrent"
	"github.com/octavianissuemonitoring/parser-law-sub001/data"
	"github.com/octavianissuemonitoring/parser-law-sub001/httpclient"
	"github.com/octavianissuemonitoring/parser-law-sub001/parser"
)

// IngestService drives the fetch → parse → merge pipeline. Parsing is
// stateless per document, so distinct source URLs run concurrently; the
// import service serializes merges per URL on its own.
type IngestService struct {
	Portal         *httpclient.PortalClient
	ImportService  *ImportService
	MaxConcurrency int
}

// IngestSummary reports one batch run.
type IngestSummary struct {
	Succeeded []string `json:"succeeded"`
	Failed    []string `json:"failed"`
}

// IngestURLs fetches, parses and merges every source URL in the batch.
// Per-document failures are collected, not fatal to the batch.
func (s *IngestService) IngestURLs(ctx context.Context, urls []string) *IngestSummary {
	s.logInfo(fmt.Sprintf("Start - %d documents", len(urls)))

	maxConcurrency := s.MaxConcurrency
	if maxConcurrency <= 0 {
		maxConcurrency = 5
	}

	runner := concurrent.NewRunner[string, string](concurrent.RunnerConfig{
		MaxConcurrency: maxConcurrency,
		LogPrefix:      "Act Ingest",
	})

	result := runner.Run(urls, func(
		sourceURL string,
		messages chan<- string,
		results chan<- string,
		errs chan<- error,
	) {
		messages <- fmt.Sprintf("Fetching: %s", sourceURL)

		htmlContent, err := s.Portal.GetHTML(ctx, sourceURL)
		if err != nil {
			messages <- fmt.Sprintf("Failed: %s - %v", sourceURL, err)
			errs <- fmt.Errorf("%s: %w", sourceURL, err)
			return
		}

		outcome, parseResult, err := s.IngestDocument(ctx, sourceURL, htmlContent)
		if err != nil {
			messages <- fmt.Sprintf("Failed: %s - %v", sourceURL, err)
			errs <- fmt.Errorf("%s: %w", sourceURL, err)
			return
		}

		messages <- fmt.Sprintf("Success: %s (%s, confidence %.2f, %d warnings)",
			sourceURL, outcome.Status, parseResult.Confidence, len(parseResult.Warnings))
		results <- sourceURL
	})

	summary := &IngestSummary{Succeeded: result.Results}
	for _, err := range result.Errors {
		summary.Failed = append(summary.Failed, err.Error())
	}

	s.logInfo(fmt.Sprintf("Complete - %d succeeded, %d failed",
		len(summary.Succeeded), len(summary.Failed)))
	return summary
}

// IngestDocument parses one act's HTML and merges it against the stored
// version. Used both by the batch path and by push-style imports where the
// caller already holds the HTML.
func (s *IngestService) IngestDocument(
	ctx context.Context,
	sourceURL string,
	htmlContent string,
) (*MergeOutcome, *data.ParseResult, error) {
	actParser := parser.NewActParser(sourceURL)
	parseResult, err := actParser.Parse(htmlContent)
	if err != nil {
		var metaErr *parser.MetadataExtractionError
		if errors.As(err, &metaErr) {
			return nil, nil, fmt.Errorf("document rejected: %w", err)
		}
		return nil, nil, fmt.Errorf("failed to parse document: %w", err)
	}

	outcome, err := s.ImportService.Merge(ctx, parseResult)
	if err != nil {
		return nil, parseResult, err
	}
	return outcome, parseResult, nil
}

func (s *IngestService) logInfo(message string) {
	log.Info(fmt.Sprintf("Act Ingest: %v", message))
}
