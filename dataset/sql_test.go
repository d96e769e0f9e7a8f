package dataset_test

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"

	"github.com/LilVoxy/superstore_dashboard/dataset"
	"github.com/LilVoxy/superstore_dashboard/datasettest"
)

func openSQLite(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", filepath.Join(t.TempDir(), "orders.db"))
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestImportAndLoad(t *testing.T) {
	db := openSQLite(t)
	ctx := context.Background()
	df := datasettest.Frame(t)

	n, err := dataset.Import(ctx, db, "sqlite", "orders", df, nil)
	require.NoError(t, err)
	assert.Equal(t, datasettest.Rows, n)

	src, err := dataset.NewSQLSource(db, "sqlite", "orders")
	require.NoError(t, err)
	loaded, err := src.Load(ctx)
	require.NoError(t, err)
	require.Equal(t, datasettest.Rows, loaded.Nrow())

	for _, col := range []string{dataset.OrderID, dataset.OrderDate, dataset.State, dataset.Category, dataset.Segment, dataset.Year} {
		if diff := cmp.Diff(df.Col(col).Records(), loaded.Col(col).Records()); diff != "" {
			t.Errorf("column %s mismatch (-want +got):\n%s", col, diff)
		}
	}
	assert.InDeltaSlice(t, df.Col(dataset.Sales).Float(), loaded.Col(dataset.Sales).Float(), 1e-9)
	assert.InDeltaSlice(t, df.Col(dataset.Profit).Float(), loaded.Col(dataset.Profit).Float(), 1e-9)
}

func TestImportReplacesRows(t *testing.T) {
	db := openSQLite(t)
	ctx := context.Background()
	df := datasettest.Frame(t)

	src, err := dataset.NewSQLSource(db, "sqlite", "orders")
	require.NoError(t, err)

	_, err = dataset.Import(ctx, db, "sqlite", "orders", df, nil)
	require.NoError(t, err)
	fp1, err := src.Fingerprint(ctx)
	require.NoError(t, err)

	_, err = dataset.Import(ctx, db, "sqlite", "orders", df.Subset([]int{0, 1, 2}), nil)
	require.NoError(t, err)
	fp2, err := src.Fingerprint(ctx)
	require.NoError(t, err)
	assert.NotEqual(t, fp1, fp2)

	loaded, err := src.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, loaded.Nrow())
}

func TestSQLSourceRejectsTableName(t *testing.T) {
	_, err := dataset.NewSQLSource(nil, "sqlite", "orders; DROP TABLE x")
	assert.Error(t, err)

	err = dataset.CreateTable(context.Background(), nil, "oracle", "orders")
	assert.Error(t, err)
}
