package services

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/akhand-data/akhanddatabackend/models"
)

func newStatsService(t *testing.T, store *testStore) *StatsService {
	t.Helper()
	sqlDB, err := store.DB.DB()
	require.NoError(t, err)
	return NewStatsService(sqlDB)
}

func addRecordWithStatus(t *testing.T, store *testStore, batchID uint, occupation, status string) {
	t.Helper()
	record, err := store.Records.Create(batchID, "f1.txt", models.RecordAttributes{
		FullName:   "Someone",
		Occupation: occupation,
	})
	require.NoError(t, err)
	if status != models.RelationshipRegular {
		require.NoError(t, store.Records.SetRelationshipStatus(record.ID, status))
	}
}

func TestFriendEnemyRatio(t *testing.T) {
	assert.Equal(t, 2.5, FriendEnemyRatio(5, 2))
	assert.True(t, math.IsInf(FriendEnemyRatio(5, 0), 1))
	assert.True(t, math.IsInf(FriendEnemyRatio(0, 0), 1))
	assert.Equal(t, 0.0, FriendEnemyRatio(0, 3))
}

func TestOccupationStatsOrderedByCount(t *testing.T) {
	store := setupTestStore(t)
	batch, err := store.Batches.Create("B1")
	require.NoError(t, err)

	for _, occ := range []string{"A", "A", "B", "B", "B"} {
		addRecordWithStatus(t, store, batch.ID, occ, models.RelationshipRegular)
	}

	stats, err := newStatsService(t, store).OccupationStats(nil)
	require.NoError(t, err)
	require.Len(t, stats, 2)
	assert.Equal(t, "B", stats[0].Occupation)
	assert.Equal(t, int64(3), stats[0].Count)
	assert.Equal(t, "A", stats[1].Occupation)
	assert.Equal(t, int64(2), stats[1].Count)
}

func TestOccupationStatsScopedToBatch(t *testing.T) {
	store := setupTestStore(t)
	b1, err := store.Batches.Create("B1")
	require.NoError(t, err)
	b2, err := store.Batches.Create("B2")
	require.NoError(t, err)

	addRecordWithStatus(t, store, b1.ID, "Farmer", models.RelationshipRegular)
	addRecordWithStatus(t, store, b2.ID, "Teacher", models.RelationshipRegular)

	stats, err := newStatsService(t, store).OccupationStats(&b1.ID)
	require.NoError(t, err)
	require.Len(t, stats, 1)
	assert.Equal(t, "Farmer", stats[0].Occupation)
}

func TestRelationshipStatsOrderedByCount(t *testing.T) {
	store := setupTestStore(t)
	batch, err := store.Batches.Create("B1")
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		addRecordWithStatus(t, store, batch.ID, "", models.RelationshipFriend)
	}
	addRecordWithStatus(t, store, batch.ID, "", models.RelationshipEnemy)

	stats, err := newStatsService(t, store).RelationshipStats(nil)
	require.NoError(t, err)
	require.Len(t, stats, 2)
	assert.Equal(t, models.RelationshipFriend, stats[0].Status)
	assert.Equal(t, int64(3), stats[0].Count)
	assert.Equal(t, models.RelationshipEnemy, stats[1].Status)
	assert.Equal(t, int64(1), stats[1].Count)
}

func TestOverviewCountsProcessedRecords(t *testing.T) {
	store := setupTestStore(t)
	batch, err := store.Batches.Create("B1")
	require.NoError(t, err)

	addRecordWithStatus(t, store, batch.ID, "", models.RelationshipRegular)
	addRecordWithStatus(t, store, batch.ID, "", models.RelationshipRegular)
	addRecordWithStatus(t, store, batch.ID, "", models.RelationshipFriend)
	addRecordWithStatus(t, store, batch.ID, "", models.RelationshipConnected)

	overview, err := newStatsService(t, store).Overview(nil)
	require.NoError(t, err)
	assert.Equal(t, int64(4), overview.TotalRecords)
	assert.Equal(t, int64(2), overview.ProcessedRecords)
}

func TestBatchCountsIncludeEmptyBatches(t *testing.T) {
	store := setupTestStore(t)
	b1, err := store.Batches.Create("B1")
	require.NoError(t, err)
	_, err = store.Batches.Create("empty")
	require.NoError(t, err)

	addRecordWithStatus(t, store, b1.ID, "", models.RelationshipRegular)

	counts, err := newStatsService(t, store).BatchCounts()
	require.NoError(t, err)
	require.Len(t, counts, 2)
	assert.Equal(t, "B1", counts[0].BatchName)
	assert.Equal(t, int64(1), counts[0].Count)
	assert.Equal(t, "empty", counts[1].BatchName)
	assert.Equal(t, int64(0), counts[1].Count)
}

func TestRelationshipPivot(t *testing.T) {
	store := setupTestStore(t)
	b1, err := store.Batches.Create("alpha")
	require.NoError(t, err)
	b2, err := store.Batches.Create("beta")
	require.NoError(t, err)

	// alpha: 5 friends, no enemies -> infinite ratio
	for i := 0; i < 5; i++ {
		addRecordWithStatus(t, store, b1.ID, "", models.RelationshipFriend)
	}
	addRecordWithStatus(t, store, b1.ID, "", models.RelationshipRegular)

	// beta: 4 friends, 2 enemies, 1 connected
	for i := 0; i < 4; i++ {
		addRecordWithStatus(t, store, b2.ID, "", models.RelationshipFriend)
	}
	for i := 0; i < 2; i++ {
		addRecordWithStatus(t, store, b2.ID, "", models.RelationshipEnemy)
	}
	addRecordWithStatus(t, store, b2.ID, "", models.RelationshipConnected)

	rows, err := newStatsService(t, store).RelationshipPivot(nil)
	require.NoError(t, err)
	require.Len(t, rows, 2)

	alpha := rows[0]
	assert.Equal(t, "alpha", alpha.BatchName)
	assert.Equal(t, int64(5), alpha.Friend)
	assert.Equal(t, int64(0), alpha.Enemy)
	assert.Equal(t, int64(1), alpha.Regular)
	assert.Equal(t, int64(0), alpha.Connected) // zero-filled, not absent
	assert.Equal(t, int64(6), alpha.Total)
	assert.Equal(t, "∞", alpha.FriendEnemyRatio)

	beta := rows[1]
	assert.Equal(t, "beta", beta.BatchName)
	assert.Equal(t, int64(4), beta.Friend)
	assert.Equal(t, int64(2), beta.Enemy)
	assert.Equal(t, int64(1), beta.Connected)
	assert.Equal(t, int64(7), beta.Total)
	assert.Equal(t, "2.00", beta.FriendEnemyRatio)
}

func TestRelationshipPivotScopedToBatch(t *testing.T) {
	store := setupTestStore(t)
	b1, err := store.Batches.Create("alpha")
	require.NoError(t, err)
	b2, err := store.Batches.Create("beta")
	require.NoError(t, err)

	addRecordWithStatus(t, store, b1.ID, "", models.RelationshipFriend)
	addRecordWithStatus(t, store, b2.ID, "", models.RelationshipEnemy)

	rows, err := newStatsService(t, store).RelationshipPivot(&b2.ID)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "beta", rows[0].BatchName)
	assert.Equal(t, int64(1), rows[0].Enemy)
}
