package mock

import (
	"context"

	"github.com/fwojciec/pagemd"
)

var _ pagemd.PageConverter = (*PageConverter)(nil)

// PageConverter is a mock implementation of pagemd.PageConverter.
type PageConverter struct {
	ConvertFn func(ctx context.Context, url string, target pagemd.Target) (*pagemd.ConversionResult, error)
}

func (c *PageConverter) Convert(ctx context.Context, url string, target pagemd.Target) (*pagemd.ConversionResult, error) {
	return c.ConvertFn(ctx, url, target)
}
