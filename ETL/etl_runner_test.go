package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/LilVoxy/housing_macro/ETL/analytics"
	"github.com/LilVoxy/housing_macro/ETL/config"
	"github.com/LilVoxy/housing_macro/ETL/models"
	"github.com/LilVoxy/housing_macro/ETL/utils"
)

const (
	hpiCSV = `DATAFLOW,freq,unit,geo,TIME_PERIOD,OBS_VALUE
ESTAT:PRC_HPI_Q,Q,I15_Q,DE,2020-Q4,100.0
ESTAT:PRC_HPI_Q,Q,I15_Q,DE,2021-Q1,110.0
ESTAT:PRC_HPI_Q,Q,RCH_Q,DE,2021-Q1,10.0
ESTAT:PRC_HPI_Q,Q,I15_Q,FR,2021-Q1,105.2
ESTAT:PRC_HPI_Q,Q,I15_Q,FR,2021-Q2,:
`
	hicpCSV = `unit,coicop,geo,TIME_PERIOD,OBS_VALUE
RCH_A,CP00,DE,2021-01,1.0
RCH_A,CP00,DE,2021-02,2.0
RCH_A,CP00,DE,2021-03,3.0
RCH_A,CP01,DE,2021-03,9.9
`
	ratesCSV = `observation_date,ECBDFR
2020-10-01,-0.5
2021-01-01,-0.5
2021-03-31,-0.5
`
)

func writeRaw(t *testing.T, cfg config.ETLConfig, withHICP bool) {
	t.Helper()
	files := map[string]string{
		cfg.Paths.HPIPath():   hpiCSV,
		cfg.Paths.RatesPath(): ratesCSV,
	}
	if withHICP {
		files[cfg.Paths.HICPPath()] = hicpCSV
	}
	for path, content := range files {
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
}

func testConfig(t *testing.T) config.ETLConfig {
	t.Helper()
	cfg := config.GetConfig()
	cfg.Paths.Root = t.TempDir()
	return cfg
}

func TestExecuteETL(t *testing.T) {
	cfg := testConfig(t)
	cfg.Export.XLSX = true
	writeRaw(t, cfg, true)

	runner, err := NewETLRunner(cfg, utils.NewNopLogger())
	require.NoError(t, err)
	defer runner.Close()

	require.NoError(t, runner.ExecuteETL())

	merged, err := os.ReadFile(cfg.Paths.MergedPath())
	require.NoError(t, err)
	assert.Equal(t, "country,year,quarter,hpi,inflation,interest_rate\n"+
		"DE,2020,Q4,100,,-0.5\n"+
		"DE,2021,Q1,110,2,-0.5\n"+
		"FR,2021,Q1,105.2,,-0.5\n"+
		"FR,2021,Q2,,,\n", string(merged))

	enriched, err := os.ReadFile(cfg.Paths.EnrichedPath())
	require.NoError(t, err)
	assert.Contains(t, string(enriched), "DE,2021,Q1,110,2,-0.5,10,,0,,,\n")
	assert.Contains(t, string(enriched), "FR,2021,Q2,,,,,,,,,\n")

	assert.FileExists(t, filepath.Join(cfg.Paths.Root, cfg.Paths.EnrichedDir, "housing_macro_quarterly_enriched.xlsx"))

	// Повторный запуск на тех же входных данных даёт те же байты
	require.NoError(t, runner.ExecuteETL())
	mergedAgain, err := os.ReadFile(cfg.Paths.MergedPath())
	require.NoError(t, err)
	assert.Equal(t, merged, mergedAgain)
	enrichedAgain, err := os.ReadFile(cfg.Paths.EnrichedPath())
	require.NoError(t, err)
	assert.Equal(t, enriched, enrichedAgain)

	runs := runner.etlLogRepo.(*models.MemoryETLLogRepository).Runs()
	require.Len(t, runs, 2)
	assert.Equal(t, models.RunStatusSuccess, runs[1].Status)
	assert.Equal(t, 4, runs[1].RowsMerged)
	assert.Equal(t, 4, runs[1].RowsEnriched)
}

func TestExecuteETLMissingInput(t *testing.T) {
	cfg := testConfig(t)
	writeRaw(t, cfg, false)

	runner, err := NewETLRunner(cfg, utils.NewNopLogger())
	require.NoError(t, err)
	defer runner.Close()

	err = runner.ExecuteETL()
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)

	// Ничего не записано
	assert.NoFileExists(t, cfg.Paths.MergedPath())
	assert.NoFileExists(t, cfg.Paths.EnrichedPath())

	runs := runner.etlLogRepo.(*models.MemoryETLLogRepository).Runs()
	require.Len(t, runs, 1)
	assert.Equal(t, models.RunStatusFailed, runs[0].Status)
	assert.NotEmpty(t, runs[0].ErrorMessage)
}

func TestEnrichWithoutMergedTable(t *testing.T) {
	cfg := testConfig(t)

	runner, err := NewETLRunner(cfg, utils.NewNopLogger())
	require.NoError(t, err)
	defer runner.Close()

	_, err = runner.ExecuteEnrich()
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestCommands(t *testing.T) {
	cfg := testConfig(t)
	writeRaw(t, cfg, true)
	t.Setenv("HOUSING_PATHS_ROOT", cfg.Paths.Root)

	for _, args := range [][]string{{"merge"}, {"enrich"}} {
		root := newRootCommand()
		root.SetArgs(args)
		require.NoError(t, root.Execute(), "команда %v", args)
	}
	assert.FileExists(t, cfg.Paths.EnrichedPath())
	assert.DirExists(t, cfg.Paths.LogPath())

	var out bytes.Buffer
	root := newRootCommand()
	root.SetOut(&out)
	root.SetArgs([]string{"trend", "--country", "DE", "--ahead", "1"})
	require.NoError(t, root.Execute())

	var trend analytics.TrendResult
	require.NoError(t, json.Unmarshal(out.Bytes(), &trend))
	assert.Equal(t, 10.0, trend.Slope)
	require.Len(t, trend.Forecast, 1)
	assert.Equal(t, analytics.ForecastPoint{Year: 2021, Quarter: "Q2", HPI: 120}, trend.Forecast[0])

	root = newRootCommand()
	root.SetArgs([]string{"merge", "extra"})
	root.SetErr(&bytes.Buffer{})
	assert.Error(t, root.Execute())
}
