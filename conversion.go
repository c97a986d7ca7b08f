package pagemd

import (
	"context"
	"time"
)

// Conversion is a recorded conversion of one URL.
type Conversion struct {
	ID          string    `json:"id"`
	SourceURL   string    `json:"sourceUrl"`
	Title       string    `json:"title"`
	OutputPath  string    `json:"outputPath"`
	Published   string    `json:"published"`
	Author      string    `json:"author"`
	ContentHash string    `json:"contentHash"`
	AssetCount  int       `json:"assetCount"`
	Strategy    string    `json:"strategy"`
	CreatedAt   time.Time `json:"createdAt"`
}

// Validate returns an error if the conversion contains invalid fields.
func (c *Conversion) Validate() error {
	if c.SourceURL == "" {
		return Errorf(EINVALID, "conversion source URL required")
	}
	if c.OutputPath == "" {
		return Errorf(EINVALID, "conversion output path required")
	}
	return nil
}

// ConversionService represents a service for recording conversions.
type ConversionService interface {
	// CreateConversion records a conversion. ID and CreatedAt are set
	// when empty.
	CreateConversion(ctx context.Context, conv *Conversion) error

	// FindConversionByID retrieves a conversion by ID.
	// Returns ENOTFOUND if conversion does not exist.
	FindConversionByID(ctx context.Context, id string) (*Conversion, error)

	// FindConversions retrieves conversions matching the filter, newest first.
	FindConversions(ctx context.Context, filter ConversionFilter) ([]*Conversion, error)

	// DeleteConversion removes a conversion record. Output files are kept.
	// Returns ENOTFOUND if conversion does not exist.
	DeleteConversion(ctx context.Context, id string) error
}

// ConversionFilter represents a filter for FindConversions.
type ConversionFilter struct {
	ID        *string `json:"id"`
	SourceURL *string `json:"sourceUrl"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}
