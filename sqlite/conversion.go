package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/fwojciec/pagemd"
	"github.com/google/uuid"
)

// Compile-time interface verification.
var _ pagemd.ConversionService = (*ConversionService)(nil)

// ConversionService implements pagemd.ConversionService using SQLite.
type ConversionService struct {
	db *DB
}

// NewConversionService creates a new ConversionService.
func NewConversionService(db *DB) *ConversionService {
	return &ConversionService{db: db}
}

const conversionColumns = `id, source_url, title, output_path, published, author,
	content_hash, asset_count, strategy, created_at`

// CreateConversion records a conversion, assigning an ID and timestamp
// when the caller left them empty.
func (s *ConversionService) CreateConversion(ctx context.Context, conv *pagemd.Conversion) error {
	if err := conv.Validate(); err != nil {
		return err
	}

	if conv.ID == "" {
		conv.ID = uuid.New().String()
	}
	if conv.CreatedAt.IsZero() {
		conv.CreatedAt = time.Now().UTC()
	}
	conv.CreatedAt = conv.CreatedAt.UTC().Truncate(time.Second)

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO conversions (`+conversionColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, conv.ID, conv.SourceURL, conv.Title, conv.OutputPath, conv.Published, conv.Author,
		conv.ContentHash, conv.AssetCount, conv.Strategy, conv.CreatedAt.Format(time.RFC3339))

	return err
}

// FindConversionByID retrieves a conversion by ID.
func (s *ConversionService) FindConversionByID(ctx context.Context, id string) (*pagemd.Conversion, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+conversionColumns+` FROM conversions WHERE id = ?`, id)

	conv, err := scanConversion(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, pagemd.Errorf(pagemd.ENOTFOUND, "conversion not found")
	}
	if err != nil {
		return nil, err
	}
	return conv, nil
}

// FindConversions retrieves conversions matching the filter, newest first.
func (s *ConversionService) FindConversions(ctx context.Context, filter pagemd.ConversionFilter) ([]*pagemd.Conversion, error) {
	var query strings.Builder
	var args []any

	query.WriteString(`SELECT ` + conversionColumns + ` FROM conversions WHERE 1=1`)

	if filter.ID != nil {
		query.WriteString(" AND id = ?")
		args = append(args, *filter.ID)
	}
	if filter.SourceURL != nil {
		query.WriteString(" AND source_url = ?")
		args = append(args, *filter.SourceURL)
	}

	query.WriteString(" ORDER BY created_at DESC, rowid DESC")

	appendPagination(&query, &args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var convs []*pagemd.Conversion
	for rows.Next() {
		conv, err := scanConversion(rows)
		if err != nil {
			return nil, err
		}
		convs = append(convs, conv)
	}

	return convs, rows.Err()
}

// DeleteConversion removes a conversion record.
func (s *ConversionService) DeleteConversion(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM conversions WHERE id = ?", id)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return pagemd.Errorf(pagemd.ENOTFOUND, "conversion not found")
	}

	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanConversion(row scanner) (*pagemd.Conversion, error) {
	var conv pagemd.Conversion
	var createdAt string

	if err := row.Scan(&conv.ID, &conv.SourceURL, &conv.Title, &conv.OutputPath,
		&conv.Published, &conv.Author, &conv.ContentHash, &conv.AssetCount,
		&conv.Strategy, &createdAt); err != nil {
		return nil, err
	}

	var err error
	conv.CreatedAt, err = parseRFC3339(createdAt, "created_at")
	if err != nil {
		return nil, err
	}

	return &conv, nil
}
