package slog_test

import (
	"bytes"
	"errors"
	"log/slog"
	"testing"

	"github.com/fwojciec/pagemd"
	"github.com/fwojciec/pagemd/mock"
	pmslog "github.com/fwojciec/pagemd/slog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggingExtractor_Extract(t *testing.T) {
	t.Parallel()

	t.Run("logs selected strategy", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.Extractor{
			ExtractFn: func(html string) (*pagemd.ParsedDocument, error) {
				return &pagemd.ParsedDocument{ContentHTML: "<p>hi</p>", Strategy: "signature:js_content"}, nil
			},
		}

		doc, err := pmslog.NewLoggingExtractor(inner, logger).Extract("<html></html>")

		require.NoError(t, err)
		assert.Equal(t, "<p>hi</p>", doc.ContentHTML)
		output := buf.String()
		assert.Contains(t, output, "msg=extract")
		assert.Contains(t, output, "strategy=signature:js_content")
		assert.Contains(t, output, "bytes=13")
		assert.Contains(t, output, "content=9")
	})

	t.Run("logs error on failure", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.Extractor{
			ExtractFn: func(html string) (*pagemd.ParsedDocument, error) {
				return nil, errors.New("empty document")
			},
		}

		_, err := pmslog.NewLoggingExtractor(inner, logger).Extract("")

		require.Error(t, err)
		assert.Contains(t, buf.String(), "err=\"empty document\"")
	})
}
