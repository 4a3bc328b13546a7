package report

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"supstats/internal/dataset"
)

func TestFormatFraction(t *testing.T) {
	tests := []struct {
		name string
		cell dataset.Cell
		want string
	}{
		{name: "fraction", cell: dataset.NumberCell(0.873), want: "87.3%"},
		{name: "whole", cell: dataset.NumberCell(1), want: "100.0%"},
		{name: "zero", cell: dataset.NumberCell(0), want: "0.0%"},
		{name: "rounds", cell: dataset.NumberCell(0.8736), want: "87.4%"},
		{name: "numeric text", cell: dataset.TextCell("0.91"), want: "91.0%"},
		{name: "empty", cell: dataset.EmptyCell(), want: "no"},
		{name: "plain text", cell: dataset.TextCell("n/a"), want: "no"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, formatFraction(tt.cell))
		})
	}
}

func TestFormatScore(t *testing.T) {
	tests := []struct {
		name string
		cell dataset.Cell
		want string
	}{
		{name: "half", cell: dataset.NumberCell(4.5), want: "4.50"},
		{name: "whole", cell: dataset.NumberCell(3), want: "3.00"},
		{name: "long fraction", cell: dataset.NumberCell(4.266666), want: "4.27"},
		{name: "numeric text", cell: dataset.TextCell("4.8"), want: "4.80"},
		{name: "empty", cell: dataset.EmptyCell(), want: "no"},
		{name: "plain text", cell: dataset.TextCell("-"), want: "no"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, formatScore(tt.cell))
		})
	}
}

func TestSessionCount(t *testing.T) {
	tests := []struct {
		name string
		cell dataset.Cell
		want int64
	}{
		{name: "whole", cell: dataset.NumberCell(120), want: 120},
		{name: "truncates", cell: dataset.NumberCell(45.9), want: 45},
		{name: "numeric text", cell: dataset.TextCell("12"), want: 12},
		{name: "empty", cell: dataset.EmptyCell(), want: 0},
		{name: "plain text", cell: dataset.TextCell("many"), want: 0},
		{name: "date", cell: dataset.DateCell(time.Now()), want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, sessionCount(tt.cell))
		})
	}
}
