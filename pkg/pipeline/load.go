package pipeline

import (
	"context"
	"time"

	"github.com/matzehuels/facetgrid/pkg/errors"
	"github.com/matzehuels/facetgrid/pkg/observability"
	"github.com/matzehuels/facetgrid/pkg/table"
)

// Load returns the inline table, or reads the table file.
func Load(ctx context.Context, opts Options) (*table.Table, error) {
	opts.setLogger()
	if opts.Table != nil {
		return opts.Table, nil
	}
	opts.Logger.Debug("reading table", "path", opts.TablePath)
	hooks := observability.Pipeline()
	hooks.OnLoadStart(ctx, opts.TablePath)
	start := time.Now()

	t, err := table.ReadFile(opts.TablePath)
	hooks.OnLoadComplete(ctx, opts.TablePath, t.NumRows(), time.Since(start), err)
	if err != nil {
		return nil, err
	}
	if t.NumRows() == 0 {
		return nil, errors.New(errors.ErrCodeInvalidTable, "table %s has no rows", opts.TablePath)
	}
	return t, nil
}
