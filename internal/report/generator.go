package report

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"supstats/internal/dataset"
	"supstats/internal/errors"
	"supstats/internal/normalize"
)

const (
	// headerGlyph and headerTag frame every date heading.
	headerGlyph = "📝"
	headerTag   = "#б2бинормал"

	// headingLayout is the display layout for date headings, day first.
	headingLayout = "02/01/2006"

	// filenameLayout names output files by date range.
	filenameLayout = "20060102"
)

// requiredColumns must survive normalization for a report to make
// sense. Every other column is optional per row.
var requiredColumns = []string{normalize.ColDate, normalize.ColCountry}

// Report carries the rendered text plus the facts callers need to name
// and describe the output.
type Report struct {
	Text        string    `json:"-"`
	MinDate     time.Time `json:"min_date"`
	MaxDate     time.Time `json:"max_date"`
	Days        int       `json:"days"`
	Rows        int       `json:"rows"`
	SkippedRows int       `json:"skipped_rows"`
	Summary     Summary   `json:"summary"`
}

// Filename derives the canonical output name from the report's date range.
func (r *Report) Filename() string {
	return fmt.Sprintf("support_stats_%s_%s.txt",
		r.MinDate.Format(filenameLayout), r.MaxDate.Format(filenameLayout))
}

// Generator renders a normalized dataset into the daily support digest.
// Generation is a pure transform: the dataset is never mutated.
type Generator struct {
	logger *slog.Logger
}

// NewGenerator creates a report generator. A nil logger falls back to
// slog.Default.
func NewGenerator(logger *slog.Logger) *Generator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Generator{
		logger: logger.With(slog.String("component", "report")),
	}
}

// dateGroup collects the dataset row indices sharing one date value, in
// original row order.
type dateGroup struct {
	when time.Time
	rows []int
}

// Generate groups rows by date, ascending, and renders one block per
// group. Rows whose date cannot be parsed are dropped from the output
// and reported through SkippedRows.
func (g *Generator) Generate(ctx context.Context, ds *dataset.Dataset) (*Report, error) {
	if err := requireColumns(ds); err != nil {
		return nil, err
	}

	g.logger.InfoContext(ctx, "generating support report",
		slog.Int("row_count", ds.Len()))

	groups, skipped := groupByDate(ds)
	if len(groups) == 0 {
		return nil, errors.NewParsingError("all dates could not be parsed: check the report date column format", nil).
			WithContext("rows", ds.Len()).
			WithContext("skipped_rows", len(skipped))
	}
	sort.Slice(groups, func(i, j int) bool {
		return groups[i].when.Before(groups[j].when)
	})

	var b strings.Builder
	var rendered []int
	for _, grp := range groups {
		b.WriteString(headerGlyph)
		b.WriteString(grp.when.Format(headingLayout))
		b.WriteString(" ")
		b.WriteString(headerTag)
		b.WriteString("\n")
		for _, i := range grp.rows {
			country := CountryName(ds.Cell(i, normalize.ColCountry).String())
			b.WriteString(country)
			b.WriteString(Flag(country))
			b.WriteString("\n")
			b.WriteString(fmt.Sprintf("Sessions – %d | SLA 5 min – %s | CSAT – %s | FR – %s\n\n",
				sessionCount(ds.Cell(i, normalize.ColSessions)),
				formatFraction(ds.Cell(i, normalize.ColSLA)),
				formatScore(ds.Cell(i, normalize.ColCSAT)),
				formatFraction(ds.Cell(i, normalize.ColFR))))
			rendered = append(rendered, i)
		}
		// Blank line between date blocks.
		b.WriteString("\n")
	}

	if len(skipped) > 0 {
		g.logger.WarnContext(ctx, "rows without a parseable date were dropped",
			slog.Int("skipped_rows", len(skipped)))
	}

	rep := &Report{
		Text:        b.String(),
		MinDate:     groups[0].when,
		MaxDate:     groups[len(groups)-1].when,
		Days:        len(groups),
		Rows:        len(rendered),
		SkippedRows: len(skipped),
		Summary:     summarize(ds, rendered),
	}

	g.logger.InfoContext(ctx, "support report generated",
		slog.Int("days", rep.Days),
		slog.Int("rows", rep.Rows),
		slog.Int("skipped_rows", rep.SkippedRows),
		slog.String("min_date", rep.MinDate.Format(headingLayout)),
		slog.String("max_date", rep.MaxDate.Format(headingLayout)))

	return rep, nil
}

// requireColumns fails with a validation error naming every missing
// required column alongside the columns that are present and the source
// headers the normalizer would have recognized.
func requireColumns(ds *dataset.Dataset) error {
	var missing []string
	for _, col := range requiredColumns {
		if !ds.HasColumn(col) {
			missing = append(missing, col)
		}
	}
	if len(missing) == 0 {
		return nil
	}
	return errors.NewValidationError(fmt.Sprintf("missing required columns %s, available: %s",
		strings.Join(missing, ", "), strings.Join(ds.Columns, ", "))).
		WithContext("missing", missing).
		WithContext("available", ds.Columns).
		WithContext("recognized", normalize.AliasKeys())
}

// groupByDate buckets row indices by their parsed date value. Equal
// timestamps share a group. The returned groups are unordered; skipped
// holds the indices of rows without a parseable date.
func groupByDate(ds *dataset.Dataset) (groups []*dateGroup, skipped []int) {
	index := make(map[int64]*dateGroup)
	for i := 0; i < ds.Len(); i++ {
		when, ok := ParseDate(ds.Cell(i, normalize.ColDate))
		if !ok {
			skipped = append(skipped, i)
			continue
		}
		key := when.UnixNano()
		grp, exists := index[key]
		if !exists {
			grp = &dateGroup{when: when}
			index[key] = grp
			groups = append(groups, grp)
		}
		grp.rows = append(grp.rows, i)
	}
	return groups, skipped
}
