package statements

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/auszug-dev/auszug/internal/model"
)

func TestStore_LoadMissing(t *testing.T) {
	store := NewStore(t.TempDir())
	got, err := store.Load("DKB.csv")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestStore_WriteLoad(t *testing.T) {
	store := NewStore(t.TempDir())
	txns := []model.Transaction{
		{Date: "2024-01-03", Description: "REWE", Amount: dec("-23.47"), Currency: "EUR"},
	}

	require.NoError(t, store.Write("DKB.csv", txns))

	got, err := store.Load("DKB.csv")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "REWE", got[0].Description)
}

func TestStore_WriteCreatesDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")
	store := NewStore(dir)

	require.NoError(t, store.Write("N26.csv", nil))

	_, err := os.Stat(filepath.Join(dir, "N26.csv"))
	assert.NoError(t, err)
}

func TestStore_WriteReplaces(t *testing.T) {
	store := NewStore(t.TempDir())

	require.NoError(t, store.Write("DKB.csv", []model.Transaction{
		{Date: "2024-01-03", Description: "old", Amount: dec("-1.00"), Currency: "EUR"},
	}))
	require.NoError(t, store.Write("DKB.csv", []model.Transaction{
		{Date: "2024-01-04", Description: "new", Amount: dec("-2.00"), Currency: "EUR"},
	}))

	got, err := store.Load("DKB.csv")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "new", got[0].Description)
}

func TestStore_LoadMalformed(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "DKB.csv"), []byte("not,a,statement\nfile"), 0o644))

	store := NewStore(dir)
	_, err := store.Load("DKB.csv")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DKB.csv")
}
