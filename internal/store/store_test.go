package store

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"solscope/internal"
	"solscope/internal/config"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	dir := t.TempDir()
	st, err := Open(config.DatabaseConfig{
		Driver: "sqlite",
		Path:   filepath.Join(dir, "test.db"),
	}, dir)
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })
	return st
}

func TestSaveAndLoadRoundTrip(t *testing.T) {
	st := openTestStore(t)

	contract := &internal.Contract{
		Address:      "0xa0b86991c6218b36c1d19d4a2e9eb0ce3606eb48",
		Name:         "FiatTokenProxy",
		Code:         "contract FiatTokenProxy {}",
		ABI:          `[{"type":"fallback"}]`,
		Compiler:     "v0.4.24",
		IsOpenSource: true,
		FetchedAt:    time.Now(),
	}
	require.NoError(t, st.SaveContract(contract))

	source, err := st.LoadSource(contract.Address)
	require.NoError(t, err)
	assert.Equal(t, contract.Code, source)

	abi, err := st.LoadABI(contract.Address)
	require.NoError(t, err)
	assert.Equal(t, contract.ABI, string(abi))

	assert.True(t, st.HasArtifacts(contract.Address))

	row, err := st.GetContractRow(contract.Address)
	require.NoError(t, err)
	assert.Equal(t, "FiatTokenProxy", row.Name)
	assert.True(t, row.IsOpenSource)
}

func TestMissingArtifactsAreNotFound(t *testing.T) {
	st := openTestStore(t)
	address := "0x0000000000000000000000000000000000000001"

	_, err := st.LoadSource(address)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrArtifactNotFound)
	assert.Contains(t, err.Error(), address)

	_, err = st.LoadABI(address)
	assert.ErrorIs(t, err, ErrArtifactNotFound)

	_, err = st.GetContractRow(address)
	assert.ErrorIs(t, err, ErrArtifactNotFound)

	assert.False(t, st.HasArtifacts(address))
}

func TestSaveContractUpserts(t *testing.T) {
	st := openTestStore(t)

	contract := &internal.Contract{Address: "0x00000000000000000000000000000000000000aa", Code: "v1", ABI: "[]"}
	require.NoError(t, st.SaveContract(contract))

	contract.Code = "v2"
	contract.Name = "Renamed"
	require.NoError(t, st.SaveContract(contract))

	source, err := st.LoadSource(contract.Address)
	require.NoError(t, err)
	assert.Equal(t, "v2", source)

	row, err := st.GetContractRow(contract.Address)
	require.NoError(t, err)
	assert.Equal(t, "Renamed", row.Name)
}

func TestOpenRejectsUnknownDriver(t *testing.T) {
	_, err := Open(config.DatabaseConfig{Driver: "oracle"}, t.TempDir())
	assert.Error(t, err)
}
