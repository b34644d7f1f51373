package config

import (
	"context"
	"fmt"

	"financial_analyzer/pkg/core/ingest"
	"financial_analyzer/pkg/core/pipeline"
	"financial_analyzer/pkg/core/store"

	"github.com/sirupsen/logrus"
)

// OpenSource builds the document source selected by Source.Kind. The returned
// close function releases its resources and is never nil.
func (c *Config) OpenSource(ctx context.Context, log logrus.FieldLogger) (pipeline.DocumentSource, func(), error) {
	noop := func() {}
	switch c.Source.Kind {
	case SourceScreener:
		opts := append(c.ScreenerOptions(), ingest.WithLogger(log))
		return ingest.NewScreenerSource(opts...), noop, nil
	case SourceFile:
		return ingest.NewFileSource(c.Source.PagesDir), noop, nil
	case SourcePostgres:
		pool, err := store.Open(ctx, c.Source.DatabaseURL)
		if err != nil {
			return nil, noop, err
		}
		return store.NewPageRepo(pool), pool.Close, nil
	}
	return nil, noop, fmt.Errorf("unknown source kind %q", c.Source.Kind)
}
