package normalizer

import (
	"influencerdash/internal/models"
)

// Processor runs validation and transformation over the four input tables.
type Processor struct {
	validator   *Validator
	transformer *Transformer
}

// Result is the outcome of a successful normalization.
type Result struct {
	Dataset *models.Dataset
	Issues  []Issue
}

// NewProcessor creates a processor with the default aliases.
func NewProcessor() *Processor {
	return NewProcessorWith(DefaultAliases(), nil)
}

// NewProcessorWith creates a processor with custom aliases and extra date layouts.
func NewProcessorWith(aliases AliasTable, extraLayouts []string) *Processor {
	return &Processor{
		validator:   NewValidator(aliases),
		transformer: NewTransformerWith(aliases, extraLayouts),
	}
}

// Transformer exposes the row transformer, e.g. for single-value parsing.
func (p *Processor) Transformer() *Transformer {
	return p.transformer
}

// Process validates all four tables, then normalizes them into a Dataset.
// Only structural problems return an error, always a *ConfigurationError.
func (p *Processor) Process(tables RawTables) (*Result, error) {
	// 1. Validate every table before touching rows
	for _, name := range []string{TableInfluencers, TablePosts, TableTracking, TablePayouts} {
		if err := p.validator.Validate(name, tables[name]); err != nil {
			return nil, err
		}
	}

	// 2. Transform
	influencers, infIssues := p.transformer.TransformInfluencers(tables[TableInfluencers])
	posts, postIssues := p.transformer.TransformPosts(tables[TablePosts])
	tracking, trackIssues := p.transformer.TransformTracking(tables[TableTracking])
	payouts, payIssues := p.transformer.TransformPayouts(tables[TablePayouts])

	issues := make([]Issue, 0, len(infIssues)+len(postIssues)+len(trackIssues)+len(payIssues))
	issues = append(issues, infIssues...)
	issues = append(issues, postIssues...)
	issues = append(issues, trackIssues...)
	issues = append(issues, payIssues...)

	return &Result{
		Dataset: models.NewDataset(influencers, posts, tracking, payouts),
		Issues:  issues,
	}, nil
}
