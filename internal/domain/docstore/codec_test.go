package docstore_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Facturacion-api/internal/domain/docstore"
)

type sample struct {
	Name  string `json:"name"`
	Stock int64  `json:"stock"`
}

func TestMergeFields_SobrescribeSoloCamposDelParche(t *testing.T) {
	base, err := docstore.Encode(sample{Name: "Widget", Stock: 3})
	require.NoError(t, err)

	merged, err := docstore.MergeFields(base, map[string]any{"stock": 1})
	require.NoError(t, err)

	var got sample
	require.NoError(t, docstore.Decode(merged, &got))
	assert.Equal(t, sample{Name: "Widget", Stock: 1}, got)
}

func TestMergeFields_BaseVacia(t *testing.T) {
	merged, err := docstore.MergeFields(nil, map[string]any{"name": "Tornillo"})
	require.NoError(t, err)

	var got sample
	require.NoError(t, docstore.Decode(merged, &got))
	assert.Equal(t, "Tornillo", got.Name)
}

func TestApplySetOptions(t *testing.T) {
	assert.False(t, docstore.ApplySetOptions(nil).Merge)
	assert.True(t, docstore.ApplySetOptions([]docstore.SetOption{docstore.MergeAll()}).Merge)
}
