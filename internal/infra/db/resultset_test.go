//go:build unit

package db_test

import (
	"testing"

	"kiosk-sales-api/internal/infra/db"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewResultSets_Shape(t *testing.T) {
	status := []db.Row{{"resultado": "Settlement completed"}}
	detail := []db.Row{{"line": int64(1)}, {"line": int64(2)}}

	cases := []struct {
		name      string
		sets      [][]db.Row
		wantShape db.Shape
	}{
		{name: "nothing returned", sets: nil, wantShape: db.ShapeNoRows},
		{name: "nil sets are dropped", sets: [][]db.Row{nil, nil}, wantShape: db.ShapeNoRows},
		{name: "empty set kept", sets: [][]db.Row{{}}, wantShape: db.ShapeNoRows},
		{name: "single row", sets: [][]db.Row{status}, wantShape: db.ShapeSingleRow},
		{name: "single set", sets: [][]db.Row{detail}, wantShape: db.ShapeSingleSet},
		{name: "multiple sets", sets: [][]db.Row{detail, status}, wantShape: db.ShapeMultipleSets},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rs := db.NewResultSets(tc.sets...)
			assert.Equal(t, tc.wantShape, rs.Shape(), "shape %s", rs.Shape())
		})
	}
}

func TestResultSets_Primary(t *testing.T) {
	status := []db.Row{{"resultado": "Settlement completed", "totalVentas": "10.00"}}
	detail := []db.Row{{"line": int64(1)}}

	t.Run("marker in later set wins", func(t *testing.T) {
		rs := db.NewResultSets(detail, status)
		assert.Equal(t, status, rs.Primary("resultado"))
	})

	t.Run("falls back to first set", func(t *testing.T) {
		rs := db.NewResultSets(detail, []db.Row{{"other": 1}})
		assert.Equal(t, detail, rs.Primary("resultado"))
	})

	t.Run("empty first set is skipped for the marker", func(t *testing.T) {
		rs := db.NewResultSets([]db.Row{}, status)
		assert.Equal(t, status, rs.Primary("resultado"))
	})

	t.Run("no sets", func(t *testing.T) {
		rs := db.NewResultSets()
		assert.Nil(t, rs.Primary("resultado"))
	})
}

func TestResultSets_FirstRow(t *testing.T) {
	_, ok := db.NewResultSets().FirstRow()
	assert.False(t, ok)

	_, ok = db.NewResultSets([]db.Row{}).FirstRow()
	assert.False(t, ok)

	row, ok := db.NewResultSets([]db.Row{{"receiptId": int64(9)}}).FirstRow()
	require.True(t, ok)
	assert.Equal(t, int64(9), row["receiptId"])
}
