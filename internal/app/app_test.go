package app_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/ledger/internal/app"
	"github.com/MrJamesThe3rd/ledger/internal/config"
	"github.com/MrJamesThe3rd/ledger/internal/ledger"
)

func offlineConfig(t *testing.T) *config.Config {
	t.Helper()

	dir := t.TempDir()
	csv := "date,name,amount,category,account,transaction_id,pending\n" +
		"2024-03-05,Payroll,-100.00,,Checking,t1,false\n" +
		"2024-03-05,Grocer,40.00,,Checking,t2,false\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "checking.csv"), []byte(csv), 0o600))

	cfg := &config.Config{}
	cfg.App.Ledger = "test"
	cfg.Store.Kind = config.StoreMemory
	cfg.Source.Kind = config.SourceCSV
	cfg.Source.StatementPath = dir
	cfg.Session.Secret = "secret"
	cfg.Rules.NoRentKeywords = []string{"rent"}
	cfg.Rules.TransferWindow = 48 * time.Hour

	return cfg
}

func TestNew_Offline(t *testing.T) {
	ctx := context.Background()

	a, err := app.New(ctx, offlineConfig(t))
	require.NoError(t, err)
	defer a.Close()

	today := time.Date(2024, 3, 6, 0, 0, 0, 0, time.UTC)

	v := a.Ledger.Build(ctx, ledger.Request{Owner: a.Owner(), Today: today})
	require.NoError(t, v.Err)
	assert.Equal(t, "60.00", ledger.Format(v.WeekTotals.Net))

	_, err = a.Exclusions.Exclude(ctx, a.Owner(), "t2")
	require.NoError(t, err)

	v = a.Ledger.Build(ctx, ledger.Request{Owner: a.Owner(), Today: today})
	assert.Equal(t, "100.00", ledger.Format(v.WeekTotals.Net))
	assert.Equal(t, 1, v.ManualCount())
}

func TestNew_ClearRestoresTotals(t *testing.T) {
	ctx := context.Background()

	a, err := app.New(ctx, offlineConfig(t))
	require.NoError(t, err)
	defer a.Close()

	req := ledger.Request{Owner: a.Owner(), Today: time.Date(2024, 3, 6, 0, 0, 0, 0, time.UTC)}

	before := a.Ledger.Build(ctx, req)
	require.NoError(t, before.Err)

	for _, id := range []string{"t1", "t2"} {
		_, err = a.Exclusions.Exclude(ctx, a.Owner(), id)
		require.NoError(t, err)
	}

	excluded := a.Ledger.Build(ctx, req)
	assert.Equal(t, "0.00", ledger.Format(excluded.WeekTotals.Net))

	n, err := a.Exclusions.Clear(ctx, a.Owner())
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	after := a.Ledger.Build(ctx, req)
	require.NoError(t, after.Err)

	for _, pair := range [][2]ledger.Totals{
		{before.WeekTotals, after.WeekTotals},
		{before.MonthTotals, after.MonthTotals},
		{before.FilterTotals, after.FilterTotals},
	} {
		assert.Equal(t, ledger.Format(pair[0].Income), ledger.Format(pair[1].Income))
		assert.Equal(t, ledger.Format(pair[0].Expenses), ledger.Format(pair[1].Expenses))
		assert.Equal(t, ledger.Format(pair[0].Net), ledger.Format(pair[1].Net))
		assert.Equal(t, pair[0].Count, pair[1].Count)
	}
	assert.Zero(t, after.ManualCount())
}

func TestNew_Errors(t *testing.T) {
	cfg := offlineConfig(t)
	cfg.Session.Secret = ""

	_, err := app.New(context.Background(), cfg)
	assert.Error(t, err)

	cfg = offlineConfig(t)
	cfg.Source.Kind = config.SourcePlaid
	cfg.Plaid.Env = "sandbox"

	_, err = app.New(context.Background(), cfg)
	assert.Error(t, err)
}

func TestNew_StatementsOnlyForCSV(t *testing.T) {
	a, err := app.New(context.Background(), offlineConfig(t))
	require.NoError(t, err)
	defer a.Close()

	assert.NotNil(t, a.Statements)
	assert.NotNil(t, a.Export)
}
