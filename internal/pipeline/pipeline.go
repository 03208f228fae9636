package pipeline

import (
	"context"
	"path/filepath"
	"sort"

	"github.com/sirupsen/logrus"

	"github.com/odenysenko/postlens/internal/analytics"
	"github.com/odenysenko/postlens/internal/enrich"
	"github.com/odenysenko/postlens/internal/loader"
	"github.com/odenysenko/postlens/internal/model"
	"github.com/odenysenko/postlens/internal/worker"
)

// loadConcurrency bounds concurrent dataset file reads per account.
const loadConcurrency = 4

// Pipeline orchestrates the load, enrichment and aggregation of account
// data. Each call produces a fresh immutable snapshot; nothing is cached
// here.
//
// Load failures never escape: a dataset or dictionary that cannot be read
// contributes an empty result, is logged for operators, and the pipeline
// keeps working with whatever data is available.
type Pipeline struct {
	cfg *model.Config
	log *logrus.Logger
}

// New creates a pipeline over the given configuration.
func New(cfg *model.Config, log *logrus.Logger) *Pipeline {
	if log == nil {
		log = logrus.New()
	}
	return &Pipeline{cfg: cfg, log: log}
}

// Accounts returns the configured account ids, sorted.
func (p *Pipeline) Accounts() []string {
	ids := make([]string, 0, len(p.cfg.Accounts))
	for id := range p.cfg.Accounts {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// HasAccount reports whether the account id is configured.
func (p *Pipeline) HasAccount(account string) bool {
	_, ok := p.cfg.Accounts[account]
	return ok
}

// DataPath resolves a dataset or keyword file name against the data dir.
func (p *Pipeline) DataPath(file string) string {
	return filepath.Join(p.cfg.DataDir, file)
}

// LoadDataset reads and normalizes one dataset file. Implements
// worker.DatasetLoader.
func (p *Pipeline) LoadDataset(ctx context.Context, file string) ([]model.Post, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	records, err := loader.ReadRecords(p.DataPath(file))
	if err != nil {
		return nil, err
	}
	return enrich.NormalizeRecords(file, records), nil
}

// LoadAccountPosts loads every dataset of an account concurrently and
// returns the canonical posts in configured dataset order. Unknown accounts
// and unreadable files degrade to an empty (or partial) result.
func (p *Pipeline) LoadAccountPosts(ctx context.Context, account string) []model.Post {
	acct, ok := p.cfg.Accounts[account]
	if !ok || len(acct.Datasets) == 0 {
		return nil
	}

	batch := worker.NewBatchLoader(p, loadConcurrency)
	results := batch.Load(ctx, acct.Datasets)

	var posts []model.Post
	for _, result := range results {
		if result.Err != nil {
			p.log.WithFields(logrus.Fields{
				"account": account,
				"file":    result.File,
			}).WithError(result.Err).Error("failed to load dataset")
			continue
		}
		posts = append(posts, result.Posts...)
	}
	return posts
}

// LoadKeywords loads the account's keyword dictionary. Returns nil when the
// account has no dictionary configured or the file cannot be read; a nil
// dictionary downgrades enrichment to built-in keyword sets only.
func (p *Pipeline) LoadKeywords(account string) *model.KeywordConfig {
	acct, ok := p.cfg.Accounts[account]
	if !ok || acct.KeywordsFile == "" {
		return nil
	}

	dict, err := loader.ReadKeywordConfig(p.DataPath(acct.KeywordsFile))
	if err != nil {
		p.log.WithFields(logrus.Fields{
			"account": account,
			"file":    acct.KeywordsFile,
		}).WithError(err).Error("failed to load keyword config")
		return nil
	}
	return dict
}

// LoadAccountAnalytics loads posts and dictionary, enriches every post and
// builds the unfiltered account summary (day-granularity timeline). The
// dictionary read runs alongside the dataset loads; both complete before
// enrichment begins.
func (p *Pipeline) LoadAccountAnalytics(ctx context.Context, account string) *model.AccountAnalytics {
	dictCh := make(chan *model.KeywordConfig, 1)
	go func() {
		dictCh <- p.LoadKeywords(account)
	}()

	posts := p.LoadAccountPosts(ctx, account)
	dict := <-dictCh

	enricher := enrich.NewEnricher(dict)
	enriched := enricher.Enrich(posts)

	return &model.AccountAnalytics{
		Account: account,
		Posts:   enriched,
		Summary: analytics.Summarize(enriched, analytics.BucketDay),
	}
}
