package badger

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/veritract/contract-verifier-go/pkg/logger"
	"github.com/veritract/contract-verifier-go/pkg/merkle"
	"github.com/veritract/contract-verifier-go/pkg/persistence"
)

func newTestStore(t *testing.T, dir string) *BadgerStore {
	t.Helper()

	testLogger, _ := logger.NewLogger(&logger.LoggerConfig{Debug: false})
	bs, err := NewBadgerStore(dir, testLogger)
	require.NoError(t, err)
	return bs
}

func sampleRecord(name string) *persistence.ContractRecord {
	return &persistence.ContractRecord{
		ID:   "id-" + name,
		Name: name,
		Root: merkle.HashData("root-" + name),
		ClauseDigests: []merkle.Digest{
			merkle.HashData(name + " clause 1"),
			merkle.HashData(name + " clause 2"),
		},
		ClauseCount: 2,
		SealedAt:    1767225600,
	}
}

func TestBadgerStore_SaveAndLoad(t *testing.T) {
	bs := newTestStore(t, t.TempDir())
	defer func() { _ = bs.Close() }()

	record := sampleRecord("supplier-msa")

	err := bs.SaveRecord(record)
	require.NoError(t, err)

	loaded, err := bs.LoadRecord("supplier-msa")
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.Equal(t, record, loaded)
}

func TestBadgerStore_Load_NotFound(t *testing.T) {
	bs := newTestStore(t, t.TempDir())
	defer func() { _ = bs.Close() }()

	loaded, err := bs.LoadRecord("never-sealed")
	require.NoError(t, err)
	assert.Nil(t, loaded)
}

func TestBadgerStore_Save_Nil(t *testing.T) {
	bs := newTestStore(t, t.TempDir())
	defer func() { _ = bs.Close() }()

	err := bs.SaveRecord(nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "nil ContractRecord")
}

func TestBadgerStore_ListSortedByName(t *testing.T) {
	bs := newTestStore(t, t.TempDir())
	defer func() { _ = bs.Close() }()

	for _, name := range []string{"charlie", "alpha", "bravo"} {
		require.NoError(t, bs.SaveRecord(sampleRecord(name)))
	}

	records, err := bs.ListRecords()
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, "alpha", records[0].Name)
	assert.Equal(t, "bravo", records[1].Name)
	assert.Equal(t, "charlie", records[2].Name)
}

func TestBadgerStore_Delete(t *testing.T) {
	bs := newTestStore(t, t.TempDir())
	defer func() { _ = bs.Close() }()

	require.NoError(t, bs.SaveRecord(sampleRecord("msa")))
	require.NoError(t, bs.DeleteRecord("msa"))

	loaded, err := bs.LoadRecord("msa")
	require.NoError(t, err)
	assert.Nil(t, loaded)

	// Idempotent
	require.NoError(t, bs.DeleteRecord("msa"))
}

func TestBadgerStore_SurvivesReopen(t *testing.T) {
	dir := t.TempDir()

	bs := newTestStore(t, dir)
	record := sampleRecord("durable-contract")
	require.NoError(t, bs.SaveRecord(record))
	require.NoError(t, bs.Close())

	// Reopen at the same path; the sealed record must still be there
	bs2 := newTestStore(t, dir)
	defer func() { _ = bs2.Close() }()

	loaded, err := bs2.LoadRecord("durable-contract")
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.Equal(t, record.Root, loaded.Root)
	assert.Equal(t, record.ClauseDigests, loaded.ClauseDigests)
}

func TestBadgerStore_Closed(t *testing.T) {
	bs := newTestStore(t, t.TempDir())
	require.NoError(t, bs.Close())

	assert.Error(t, bs.SaveRecord(sampleRecord("msa")))
	_, err := bs.LoadRecord("msa")
	assert.Error(t, err)
	assert.Error(t, bs.HealthCheck())

	// Close is idempotent
	assert.NoError(t, bs.Close())
}

func TestBadgerStore_HealthCheck(t *testing.T) {
	bs := newTestStore(t, t.TempDir())
	defer func() { _ = bs.Close() }()

	assert.NoError(t, bs.HealthCheck())
}

func TestBadgerStore_ConcurrentAccess(t *testing.T) {
	bs := newTestStore(t, t.TempDir())
	defer func() { _ = bs.Close() }()

	var wg sync.WaitGroup
	names := []string{"a", "b", "c", "d", "e"}
	for _, name := range names {
		wg.Add(1)
		go func(n string) {
			defer wg.Done()
			require.NoError(t, bs.SaveRecord(sampleRecord(n)))
			_, err := bs.LoadRecord(n)
			require.NoError(t, err)
		}(name)
	}
	wg.Wait()

	records, err := bs.ListRecords()
	require.NoError(t, err)
	assert.Len(t, records, len(names))
}
