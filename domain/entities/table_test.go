package entities

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleTable() Table {
	return Table{
		Columns: []string{"Percolation", "Pumping"},
		Times: []time.Time{
			time.Date(1990, time.October, 31, 0, 0, 0, 0, time.UTC),
			time.Date(1990, time.November, 30, 0, 0, 0, 0, time.UTC),
			time.Date(1990, time.December, 31, 0, 0, 0, 0, time.UTC),
		},
		Data: [][]float64{
			{10.5, 3.25},
			{12.0, 4.5},
			{8.75, 2.0},
		},
	}
}

func TestTableShape(t *testing.T) {
	tbl := sampleTable()

	assert.Equal(t, 3, tbl.NumRows())
	assert.Equal(t, 2, tbl.NumColumns())
	assert.Equal(t, []float64{12.0, 4.5}, tbl.Row(1))
	require.NoError(t, tbl.Validate())
}

func TestTableColumn(t *testing.T) {
	tbl := sampleTable()

	pumping, ok := tbl.Column("Pumping")
	require.True(t, ok)
	assert.Equal(t, []float64{3.25, 4.5, 2.0}, pumping)

	_, ok = tbl.Column("Recharge")
	assert.False(t, ok)
}

func TestTableValidate_RowMismatch(t *testing.T) {
	tbl := sampleTable()
	tbl.Data = tbl.Data[:2]

	require.Error(t, tbl.Validate())
}

func TestTableValidate_ColumnMismatch(t *testing.T) {
	tbl := sampleTable()
	tbl.Data[1] = []float64{12.0}

	require.Error(t, tbl.Validate())
}

func TestTimeSeriesValidate(t *testing.T) {
	s := TimeSeries{
		Times:  []time.Time{time.Date(1990, time.October, 31, 0, 0, 0, 0, time.UTC)},
		Values: []float64{42.0},
	}

	assert.Equal(t, 1, s.Len())
	require.NoError(t, s.Validate())

	s.Values = nil
	require.Error(t, s.Validate())
}

func TestTimeSpecs(t *testing.T) {
	ts := TimeSpecs{
		Timestamps: []string{"10/31/1990_24:00", "11/30/1990_24:00", "12/31/1990_24:00"},
		Interval:   "1MON",
	}

	begin, end := ts.Span()
	assert.Equal(t, "10/31/1990_24:00", begin)
	assert.Equal(t, "12/31/1990_24:00", end)
	assert.True(t, ts.Contains("11/30/1990_24:00"))
	assert.False(t, ts.Contains("11/30/1991_24:00"))
}

func TestTimeSpecs_Empty(t *testing.T) {
	begin, end := TimeSpecs{}.Span()

	assert.Empty(t, begin)
	assert.Empty(t, end)
}

func TestZoneDefinitionNamedZones(t *testing.T) {
	def := ZoneDefinition{
		Names: map[int]string{4: "Out", 1: "Upper", 2: "Lower"},
	}

	ids, names := def.NamedZones()

	assert.Equal(t, []int{1, 2, 4}, ids)
	assert.Equal(t, []string{"Upper", "Lower", "Out"}, names)
}

func TestZoneDefinitionNamedZones_Empty(t *testing.T) {
	ids, names := ZoneDefinition{}.NamedZones()

	assert.Empty(t, ids)
	assert.Empty(t, names)
}
