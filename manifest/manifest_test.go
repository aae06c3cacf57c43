package manifest_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SGMOModeling/gowfm/domain/errors"
	"github.com/SGMOModeling/gowfm/manifest"
)

const sampleDoc = `
engine: C:\IWFM\IWFM2015_C_x64.dll
log: run.log
model:
  preprocessor: Preprocessor\PreProcessor_MAIN.IN
  simulation: Simulation\Simulation_MAIN.IN
  routed_streams: true
  inquiry: false
budgets:
  - file: Results\GW.hdf
    locations: [1, 2]
    columns: all
  - file: Results\Stream.hdf
    columns: [Percolation, Pumping]
zbudgets:
  - file: Results\GWZBud.hdf
    zones_from: ZoneDef.dat
`

func TestLoad(t *testing.T) {
	m, err := manifest.Load([]byte(sampleDoc))
	require.NoError(t, err)

	assert.Equal(t, `C:\IWFM\IWFM2015_C_x64.dll`, m.Engine)
	assert.Equal(t, `run.log`, m.Log)
	assert.Equal(t, `Simulation\Simulation_MAIN.IN`, m.Model.Simulation)
	require.NotNil(t, m.Model.RoutedStreams)
	assert.True(t, *m.Model.RoutedStreams)
	require.NotNil(t, m.Model.Inquiry)
	assert.False(t, *m.Model.Inquiry)

	require.Len(t, m.Budgets, 2)
	assert.Equal(t, []int{1, 2}, m.Budgets[0].Locations)
	assert.True(t, m.Budgets[0].Columns.All)
	assert.Equal(t, []string{"Percolation", "Pumping"}, m.Budgets[1].Columns.Names)

	require.Len(t, m.ZBudgets, 1)
	assert.Equal(t, `ZoneDef.dat`, m.ZBudgets[0].ZonesFrom)
}

func TestLoadRejectsUnknownField(t *testing.T) {
	_, err := manifest.Load([]byte("engine: e.dll\nmodle: {}\n"))

	var me *errors.ManifestError
	require.ErrorAs(t, err, &me)
	assert.Contains(t, me.Error(), "modle")
}

func TestLoadRejectsEmptyDocument(t *testing.T) {
	_, err := manifest.Load(nil)

	var me *errors.ManifestError
	require.ErrorAs(t, err, &me)
}

func TestValidateNamesFields(t *testing.T) {
	_, err := manifest.Load([]byte(`
engine: e.dll
model:
  preprocessor: pre.in
budgets:
  - locations: [1]
`))

	var me *errors.ManifestError
	require.ErrorAs(t, err, &me)
	assert.Contains(t, me.Fields, "model.simulation")
	assert.Contains(t, me.Fields, "budgets[0].file")
}

func TestValidateRejectsBadZoneID(t *testing.T) {
	_, err := manifest.Load([]byte(`
engine: e.dll
model:
  preprocessor: pre.in
  simulation: sim.in
zbudgets:
  - file: z.hdf
    zones: [0]
`))

	var me *errors.ManifestError
	require.ErrorAs(t, err, &me)
	assert.Contains(t, me.Fields, "zbudgets[0].zones[0]")
}

func TestColumnsRejectsUnknownSelector(t *testing.T) {
	_, err := manifest.Load([]byte(`
engine: e.dll
model:
  preprocessor: pre.in
  simulation: sim.in
budgets:
  - file: b.hdf
    columns: everything
`))

	var me *errors.ManifestError
	require.ErrorAs(t, err, &me)
	assert.Contains(t, me.Error(), "column selector")
}

func TestSchema(t *testing.T) {
	data, err := manifest.Schema()
	require.NoError(t, err)

	var schema map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &schema))

	props, ok := schema["properties"].(map[string]interface{})
	require.True(t, ok)
	assert.Contains(t, props, "engine")
	assert.Contains(t, props, "budgets")
	assert.Contains(t, props, "zbudgets")
}
