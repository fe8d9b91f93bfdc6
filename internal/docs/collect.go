package docs

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Request lists the documentation to gather for one prompt.
type Request struct {
	Files []string
	URLs  []string
}

// Empty reports whether nothing was requested.
func (r Request) Empty() bool {
	return len(r.Files) == 0 && len(r.URLs) == 0
}

// Collector gathers documents concurrently.
type Collector struct {
	fetcher     *Fetcher
	concurrency int
	logger      *zap.Logger
}

// NewCollector returns a Collector that runs at most concurrency reads at
// once. A nil logger disables logging.
func NewCollector(fetcher *Fetcher, concurrency int, logger *zap.Logger) *Collector {
	if logger == nil {
		logger = zap.NewNop()
	}
	if concurrency < 1 {
		concurrency = 1
	}
	return &Collector{fetcher: fetcher, concurrency: concurrency, logger: logger}
}

// Collect reads every file and URL in req and returns the documents in
// request order, files first. A file that cannot be read is an error. A URL
// that cannot be fetched is logged and skipped.
func (c *Collector) Collect(ctx context.Context, req Request) ([]*Document, error) {
	results := make([]*Document, len(req.Files)+len(req.URLs))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(c.concurrency)

	for i, path := range req.Files {
		i, path := i, path
		g.Go(func() error {
			doc, err := c.fetcher.ReadFile(path)
			if err != nil {
				return err
			}
			results[i] = doc
			return nil
		})
	}

	for i, u := range req.URLs {
		u := u
		slot := len(req.Files) + i
		g.Go(func() error {
			doc, err := c.fetcher.FetchURL(ctx, u)
			if err != nil {
				c.logger.Warn("Skipping documentation URL", zap.String("url", u), zap.Error(err))
				return nil
			}
			results[slot] = doc
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	docs := make([]*Document, 0, len(results))
	for _, doc := range results {
		if doc != nil && strings.TrimSpace(doc.Content) != "" {
			docs = append(docs, doc)
		}
	}
	c.logger.Debug("Collected documentation", zap.Int("requested", len(results)), zap.Int("collected", len(docs)))
	return docs, nil
}

// Combine joins documents into one external-context block, each under its
// own heading.
func Combine(docs []*Document) string {
	var sb strings.Builder
	for i, doc := range docs {
		if i > 0 {
			sb.WriteString("\n\n")
		}
		title := doc.Title
		if title == "" {
			title = doc.Source
		}
		fmt.Fprintf(&sb, "### %s\n\nSource: %s\n\n%s", title, doc.Source, doc.Content)
	}
	return sb.String()
}
