package database

import (
	"database/sql"
	"fmt"
	"log"

	sq "github.com/Masterminds/squirrel"
)

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Question)

// OccupationCount is one row of the occupation distribution.
type OccupationCount struct {
	Occupation string `json:"occupation"`
	Count      int64  `json:"count"`
}

// StatusCount is one row of the relationship-status distribution.
type StatusCount struct {
	Status string `json:"status"`
	Count  int64  `json:"count"`
}

// BatchRecordCount is the number of records owned by one batch.
type BatchRecordCount struct {
	BatchID   int64  `json:"batch_id"`
	BatchName string `json:"batch_name"`
	Count     int64  `json:"count"`
}

// BatchStatusCount is the number of records with one status in one batch.
type BatchStatusCount struct {
	BatchName string `json:"batch_name"`
	Status    string `json:"status"`
	Count     int64  `json:"count"`
}

// scopeByBatch narrows a records query to one batch when batchID is non-nil;
// nil means all batches.
func scopeByBatch(b sq.SelectBuilder, column string, batchID *uint) sq.SelectBuilder {
	if batchID != nil {
		return b.Where(sq.Eq{column: *batchID})
	}
	return b
}

// CountRecords returns the total number of records, optionally scoped to one batch.
func CountRecords(db *sql.DB, batchID *uint) (int64, error) {
	queryBuilder := scopeByBatch(psql.Select("COUNT(*)").From("records"), "batch_id", batchID)

	sqlStr, args, err := queryBuilder.ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build SQL for CountRecords: %w", err)
	}

	var count int64
	if err := db.QueryRow(sqlStr, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to execute CountRecords query: %w", err)
	}
	return count, nil
}

// GetOccupationStats returns record counts grouped by occupation, most common
// first, optionally scoped to one batch.
func GetOccupationStats(db *sql.DB, batchID *uint) ([]OccupationCount, error) {
	queryBuilder := scopeByBatch(
		psql.Select("occupation", "COUNT(*) AS count").From("records"),
		"batch_id", batchID).
		GroupBy("occupation").
		OrderBy("count DESC")

	sqlStr, args, err := queryBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build SQL for GetOccupationStats: %w", err)
	}

	rows, err := db.Query(sqlStr, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to execute GetOccupationStats query: %w", err)
	}
	defer rows.Close()

	stats := []OccupationCount{}
	for rows.Next() {
		var oc OccupationCount
		if err := rows.Scan(&oc.Occupation, &oc.Count); err != nil {
			log.Printf("Error scanning occupation stat row: %v", err)
			continue
		}
		stats = append(stats, oc)
	}
	if err = rows.Err(); err != nil {
		return stats, fmt.Errorf("error iterating occupation stat rows: %w", err)
	}

	return stats, nil
}

// GetRelationshipStats returns record counts grouped by relationship status,
// most common first, optionally scoped to one batch.
func GetRelationshipStats(db *sql.DB, batchID *uint) ([]StatusCount, error) {
	queryBuilder := scopeByBatch(
		psql.Select("relationship_status", "COUNT(*) AS count").From("records"),
		"batch_id", batchID).
		GroupBy("relationship_status").
		OrderBy("count DESC")

	sqlStr, args, err := queryBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build SQL for GetRelationshipStats: %w", err)
	}

	rows, err := db.Query(sqlStr, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to execute GetRelationshipStats query: %w", err)
	}
	defer rows.Close()

	stats := []StatusCount{}
	for rows.Next() {
		var sc StatusCount
		if err := rows.Scan(&sc.Status, &sc.Count); err != nil {
			log.Printf("Error scanning relationship stat row: %v", err)
			continue
		}
		stats = append(stats, sc)
	}
	if err = rows.Err(); err != nil {
		return stats, fmt.Errorf("error iterating relationship stat rows: %w", err)
	}

	return stats, nil
}

// GetBatchRecordCounts returns the record count of every batch, largest first.
// Batches without records are included with a zero count.
func GetBatchRecordCounts(db *sql.DB) ([]BatchRecordCount, error) {
	queryBuilder := psql.Select("b.id", "b.name", "COUNT(r.id) AS count").
		From("batches b").
		LeftJoin("records r ON r.batch_id = b.id").
		GroupBy("b.id", "b.name").
		OrderBy("count DESC", "b.name ASC")

	sqlStr, args, err := queryBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build SQL for GetBatchRecordCounts: %w", err)
	}

	rows, err := db.Query(sqlStr, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to execute GetBatchRecordCounts query: %w", err)
	}
	defer rows.Close()

	counts := []BatchRecordCount{}
	for rows.Next() {
		var bc BatchRecordCount
		if err := rows.Scan(&bc.BatchID, &bc.BatchName, &bc.Count); err != nil {
			log.Printf("Error scanning batch count row: %v", err)
			continue
		}
		counts = append(counts, bc)
	}
	if err = rows.Err(); err != nil {
		return counts, fmt.Errorf("error iterating batch count rows: %w", err)
	}

	return counts, nil
}

// GetBatchStatusCounts returns per-batch, per-status record counts, ordered
// by batch name then status. Feeds the relationship pivot.
func GetBatchStatusCounts(db *sql.DB, batchID *uint) ([]BatchStatusCount, error) {
	queryBuilder := scopeByBatch(
		psql.Select("b.name", "r.relationship_status", "COUNT(*) AS count").
			From("records r").
			Join("batches b ON r.batch_id = b.id"),
		"r.batch_id", batchID).
		GroupBy("b.name", "r.relationship_status").
		OrderBy("b.name ASC", "r.relationship_status ASC")

	sqlStr, args, err := queryBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build SQL for GetBatchStatusCounts: %w", err)
	}

	rows, err := db.Query(sqlStr, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to execute GetBatchStatusCounts query: %w", err)
	}
	defer rows.Close()

	counts := []BatchStatusCount{}
	for rows.Next() {
		var bs BatchStatusCount
		if err := rows.Scan(&bs.BatchName, &bs.Status, &bs.Count); err != nil {
			log.Printf("Error scanning batch status row: %v", err)
			continue
		}
		counts = append(counts, bs)
	}
	if err = rows.Err(); err != nil {
		return counts, fmt.Errorf("error iterating batch status rows: %w", err)
	}

	return counts, nil
}
