package mock

import (
	"context"

	"github.com/fwojciec/pagemd"
)

var _ pagemd.ConversionService = (*ConversionService)(nil)

// ConversionService is a mock implementation of pagemd.ConversionService.
type ConversionService struct {
	CreateConversionFn   func(ctx context.Context, c *pagemd.Conversion) error
	FindConversionByIDFn func(ctx context.Context, id string) (*pagemd.Conversion, error)
	FindConversionsFn    func(ctx context.Context, filter pagemd.ConversionFilter) ([]*pagemd.Conversion, error)
	DeleteConversionFn   func(ctx context.Context, id string) error
}

func (s *ConversionService) CreateConversion(ctx context.Context, c *pagemd.Conversion) error {
	return s.CreateConversionFn(ctx, c)
}

func (s *ConversionService) FindConversionByID(ctx context.Context, id string) (*pagemd.Conversion, error) {
	return s.FindConversionByIDFn(ctx, id)
}

func (s *ConversionService) FindConversions(ctx context.Context, filter pagemd.ConversionFilter) ([]*pagemd.Conversion, error) {
	return s.FindConversionsFn(ctx, filter)
}

func (s *ConversionService) DeleteConversion(ctx context.Context, id string) error {
	return s.DeleteConversionFn(ctx, id)
}
