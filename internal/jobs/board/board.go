package board

import (
	"context"
	_ "embed"
	"fmt"
	"html/template"
	"io"
	"juniorguru-sync/internal/components/telemetry"
	"os"
	"path/filepath"
)

const report_board_record = "board.record"

//go:embed template.html
var templateSource string

var boardTemplate = template.Must(template.New("board").Parse(templateSource))

type Source interface {
	Records(ctx context.Context, worksheet string) ([]map[string]string, error)
}

type data struct {
	Name string
	Jobs []Listing
}

// Builder renders the job board out of the jobs worksheet.
type Builder struct {
	source    Source
	tel       telemetry.API
	worksheet string
	author    string
}

func NewBuilder(source Source, tel telemetry.API, worksheet string) Builder {
	return Builder{
		source:    source,
		tel:       telemetry.NewScopedAPI("board", tel),
		worksheet: worksheet,
		author:    "Honza",
	}
}

// Listings reads and selects the listings, rows which can't be coerced are
// reported and skipped.
func (b Builder) Listings(ctx context.Context) ([]Listing, error) {
	records, err := b.source.Records(ctx, b.worksheet)
	if err != nil {
		return nil, fmt.Errorf("read %s worksheet: %w", b.worksheet, err)
	}
	listings := make([]Listing, 0, len(records))
	for i, record := range records {
		listing, err := CoerceRecord(record)
		if err != nil {
			// +2 for the header and 1-based rows
			b.tel.ReportWarning(report_board_record, err, i+2)
			continue
		}
		listings = append(listings, listing)
	}
	return Select(listings), nil
}

func (b Builder) Render(ctx context.Context, w io.Writer) (int, error) {
	listings, err := b.Listings(ctx)
	if err != nil {
		return 0, err
	}
	err = boardTemplate.Execute(w, data{Name: b.author, Jobs: listings})
	if err != nil {
		return 0, fmt.Errorf("render job board: %w", err)
	}
	return len(listings), nil
}

// Build renders the job board into the file at path, creating its directory.
func (b Builder) Build(ctx context.Context, path string) (int, error) {
	err := os.MkdirAll(filepath.Dir(path), 0o755)
	if err != nil {
		return 0, err
	}
	f, err := os.Create(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	n, err := b.Render(ctx, f)
	if err != nil {
		return 0, err
	}
	return n, f.Close()
}
