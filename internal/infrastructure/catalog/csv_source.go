// Package catalog reads raw catalog records from delimited text.
package catalog

import (
	"context"
	"encoding/csv"
	"errors"
	"io"
	"os"
	"strings"

	"github.com/sangkips/counter-billing/internal/domain/entity"
	domainRepo "github.com/sangkips/counter-billing/internal/domain/repository"
	"github.com/sangkips/counter-billing/pkg/apperror"
)

type csvSource struct {
	path string
}

// NewCSVSource reads "name,quantity,price" rows from path. The first row is a header.
func NewCSVSource(path string) domainRepo.CatalogSource {
	return &csvSource{path: path}
}

func (s *csvSource) Describe() string {
	return s.path
}

func (s *csvSource) Records(ctx context.Context) ([]entity.RawCatalogRecord, error) {
	f, err := os.Open(s.path)
	if err != nil {
		return nil, apperror.NewCatalogUnavailableError(s.path, err)
	}
	defer f.Close()

	records, err := ReadRecords(ctx, f)
	if err != nil {
		return nil, apperror.NewCatalogUnavailableError(s.path, err)
	}
	return records, nil
}

// ReadRecords parses CSV rows from r, skipping the header row, blank rows, rows
// with fewer than three columns and rows the CSV reader cannot parse.
// Field contents are passed through untouched; validation belongs to the catalog.
func ReadRecords(ctx context.Context, r io.Reader) ([]entity.RawCatalogRecord, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true

	var records []entity.RawCatalogRecord
	header := true
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		var parseErr *csv.ParseError
		if errors.As(err, &parseErr) {
			header = false
			continue
		}
		if err != nil {
			return nil, err
		}

		if header {
			header = false
			continue
		}
		if len(row) < 3 || isBlank(row) {
			continue
		}
		records = append(records, entity.RawCatalogRecord{
			Name:     row[0],
			Quantity: row[1],
			Price:    row[2],
		})
	}
	return records, nil
}

func isBlank(row []string) bool {
	for _, field := range row {
		if strings.TrimSpace(field) != "" {
			return false
		}
	}
	return true
}

type staticSource struct {
	name    string
	records []entity.RawCatalogRecord
}

// NewStaticSource serves a fixed set of records, e.g. a seed catalog or test data.
func NewStaticSource(name string, records []entity.RawCatalogRecord) domainRepo.CatalogSource {
	return &staticSource{name: name, records: records}
}

func (s *staticSource) Describe() string {
	return s.name
}

func (s *staticSource) Records(ctx context.Context) ([]entity.RawCatalogRecord, error) {
	out := make([]entity.RawCatalogRecord, len(s.records))
	copy(out, s.records)
	return out, ctx.Err()
}
