package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const csvFixture = `id,ident,type,name,latitude_deg,longitude_deg,elevation_ft,iso_country,municipality,scheduled_service,icao_code,iata_code,gps_code
1,KLAX,large_airport,Los Angeles International Airport,33.942501,-118.407997,125,US,Los Angeles,yes,KLAX,LAX,KLAX
2,00A,heliport,Total RF Heliport,40.07,-74.93,11,US,Bensalem,no,,HEL,
3,KMCE,medium_airport,Merced Regional Macready Field,37.284698,-120.514,155,US,Merced,yes,,MCE,KMCE
`

func TestRun_ImportCountExportClean(t *testing.T) {
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "test.db")
	csvPath := filepath.Join(dir, "airports.csv")
	require.NoError(t, os.WriteFile(csvPath, []byte(csvFixture), 0o644))

	var out bytes.Buffer
	require.NoError(t, run([]string{"-db", dbPath, "import", "-replace", csvPath}, "", &out))
	assert.Contains(t, out.String(), "Found 2 suitable airports in 3 rows")
	assert.Contains(t, out.String(), "Imported 2 airports")

	out.Reset()
	require.NoError(t, run([]string{"count"}, dbPath, &out))
	assert.Equal(t, "Total airports in database: 2\n", out.String())

	out.Reset()
	require.NoError(t, run([]string{"-db", dbPath, "export", "-o", "-"}, "", &out))
	assert.Contains(t, out.String(), "IATA,ICAO,Name")
	assert.Contains(t, out.String(), "MCE,KMCE,Merced Regional Macready Field")

	out.Reset()
	require.NoError(t, run([]string{"-db", dbPath, "clean"}, "", &out))
	assert.Contains(t, out.String(), "Removed 0 airports")

	out.Reset()
	require.NoError(t, run([]string{"-db", dbPath, "quickstart"}, "", &out))
	assert.Contains(t, out.String(), "major airports")
}

func TestRun_AnalyzeAndInspect(t *testing.T) {
	csvPath := filepath.Join(t.TempDir(), "airports.csv")
	require.NoError(t, os.WriteFile(csvPath, []byte(csvFixture), 0o644))

	var out bytes.Buffer
	require.NoError(t, run([]string{"analyze", csvPath}, "", &out))
	assert.Contains(t, out.String(), "Total rows: 3")
	assert.Contains(t, out.String(), "With IATA code: 3 (100.0%)")
	assert.Contains(t, out.String(), "heliport: 1")

	out.Reset()
	require.NoError(t, run([]string{"inspect", csvPath}, "", &out))
	assert.Contains(t, out.String(), "Headers: id, ident, type")
	assert.Contains(t, out.String(), "Row 3: 3, KMCE")
}

func TestRun_Usage(t *testing.T) {
	var out bytes.Buffer
	assert.ErrorIs(t, run(nil, "", &out), errUsage)
	assert.ErrorIs(t, run([]string{"bogus"}, filepath.Join(t.TempDir(), "x.db"), &out), errUsage)
	assert.ErrorIs(t, run([]string{"analyze"}, "", &out), errUsage)
	assert.Error(t, run([]string{"count"}, "", &out))
}
