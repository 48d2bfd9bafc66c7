package services

import (
	"database/sql"
	"fmt"
	"math"
	"strconv"

	"github.com/akhand-data/akhanddatabackend/database"
	"github.com/akhand-data/akhanddatabackend/models"
)

// StatsOverview carries the headline counts of a scope: total records and
// how many have been tagged with anything other than Regular.
type StatsOverview struct {
	TotalRecords     int64 `json:"total_records"`
	ProcessedRecords int64 `json:"processed_records"`
}

// RelationshipPivotRow is one batch's relationship distribution, pivoted so
// every status has its own column. Statuses absent from the batch show 0.
type RelationshipPivotRow struct {
	BatchName string `json:"batch_name"`
	Regular   int64  `json:"regular"`
	Connected int64  `json:"connected"`
	Friend    int64  `json:"friend"`
	Enemy     int64  `json:"enemy"`
	Total     int64  `json:"total"`

	// FriendEnemyRatio is friend/enemy formatted for display; a batch with
	// no enemies shows "∞" rather than failing on division by zero.
	FriendEnemyRatio string `json:"friend_enemy_ratio"`
}

// StatsService computes grouped counts over the record store. It is purely
// read-side composition; it never writes.
type StatsService struct {
	SQL *sql.DB
}

// NewStatsService creates a new StatsService over the store's sql.DB handle.
func NewStatsService(sqlDB *sql.DB) *StatsService {
	return &StatsService{SQL: sqlDB}
}

// Overview returns total and processed record counts, optionally scoped to
// one batch.
func (s *StatsService) Overview(batchID *uint) (*StatsOverview, error) {
	total, err := database.CountRecords(s.SQL, batchID)
	if err != nil {
		return nil, err
	}

	statusCounts, err := database.GetRelationshipStats(s.SQL, batchID)
	if err != nil {
		return nil, err
	}

	var regular int64
	for _, sc := range statusCounts {
		if sc.Status == models.RelationshipRegular {
			regular = sc.Count
		}
	}

	return &StatsOverview{
		TotalRecords:     total,
		ProcessedRecords: total - regular,
	}, nil
}

// OccupationStats returns the occupation distribution, most common first.
func (s *StatsService) OccupationStats(batchID *uint) ([]database.OccupationCount, error) {
	return database.GetOccupationStats(s.SQL, batchID)
}

// RelationshipStats returns the relationship-status distribution, most
// common first.
func (s *StatsService) RelationshipStats(batchID *uint) ([]database.StatusCount, error) {
	return database.GetRelationshipStats(s.SQL, batchID)
}

// BatchCounts returns every batch's record count, largest first.
func (s *StatsService) BatchCounts() ([]database.BatchRecordCount, error) {
	return database.GetBatchRecordCounts(s.SQL)
}

// FriendEnemyRatio computes friends/enemies. With no enemies the ratio is
// positive infinity, not an error.
func FriendEnemyRatio(friends, enemies int64) float64 {
	if enemies == 0 {
		return math.Inf(1)
	}
	return float64(friends) / float64(enemies)
}

// formatRatio renders a friend:enemy ratio for display.
func formatRatio(ratio float64) string {
	if math.IsInf(ratio, 1) {
		return "∞"
	}
	return strconv.FormatFloat(ratio, 'f', 2, 64)
}

// RelationshipPivot returns one row per batch with per-status counts,
// zero-filled for absent statuses, plus a row total and the friend:enemy
// ratio. Scoped to one batch when batchID is non-nil.
func (s *StatsService) RelationshipPivot(batchID *uint) ([]RelationshipPivotRow, error) {
	counts, err := database.GetBatchStatusCounts(s.SQL, batchID)
	if err != nil {
		return nil, err
	}

	rowIndex := map[string]int{}
	rows := []RelationshipPivotRow{}
	for _, c := range counts {
		idx, ok := rowIndex[c.BatchName]
		if !ok {
			idx = len(rows)
			rowIndex[c.BatchName] = idx
			rows = append(rows, RelationshipPivotRow{BatchName: c.BatchName})
		}

		switch c.Status {
		case models.RelationshipRegular:
			rows[idx].Regular = c.Count
		case models.RelationshipConnected:
			rows[idx].Connected = c.Count
		case models.RelationshipFriend:
			rows[idx].Friend = c.Count
		case models.RelationshipEnemy:
			rows[idx].Enemy = c.Count
		default:
			return nil, fmt.Errorf("unexpected relationship status %q in store", c.Status)
		}
	}

	for i := range rows {
		rows[i].Total = rows[i].Regular + rows[i].Connected + rows[i].Friend + rows[i].Enemy
		rows[i].FriendEnemyRatio = formatRatio(FriendEnemyRatio(rows[i].Friend, rows[i].Enemy))
	}

	return rows, nil
}
