package loader

import (
	"fmt"
	"time"

	"influencerdash/internal/config"
	"influencerdash/internal/logger"
	"influencerdash/internal/models"
	"influencerdash/internal/normalizer"
	"influencerdash/internal/validator"
)

// Session is the immutable data of one dashboard session: the normalized
// dataset plus everything learned about its quality while loading.
type Session struct {
	Dataset *models.Dataset
	Issues  []normalizer.Issue
	Quality *validator.ValidationResult
	Tables  []TableStats
}

// Open loads, normalizes and checks the four input files named by cfg.
// Only a *normalizer.ConfigurationError is returned as an error.
func Open(cfg *config.Config, log *logger.Logger) (*Session, error) {
	if log == nil {
		log = logger.Discard()
	}

	start := time.Now()

	raw, stats, err := NewReader(log).LoadAll(cfg)
	if err != nil {
		return nil, err
	}

	aliases := normalizer.DefaultAliases().Extend(cfg.Normalizer.Aliases)
	processor := normalizer.NewProcessorWith(aliases, cfg.Normalizer.DateLayouts)

	result, err := processor.Process(raw)
	if err != nil {
		return nil, fmt.Errorf("normalization failed: %w", err)
	}

	quality := validator.NewDatasetValidator().Validate(result.Dataset)

	log.Info("session loaded",
		"influencers", len(result.Dataset.Influencers),
		"posts", len(result.Dataset.Posts),
		"tracking", len(result.Dataset.Tracking),
		"payouts", len(result.Dataset.Payouts),
		"row_issues", len(result.Issues),
		"quality_errors", len(quality.Errors),
		"quality_warnings", len(quality.Warnings),
		"duration", time.Since(start),
	)

	return &Session{
		Dataset: result.Dataset,
		Issues:  result.Issues,
		Quality: quality,
		Tables:  stats,
	}, nil
}
