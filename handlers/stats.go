package handlers

import (
	"log"
	"net/http"
	"strconv"

	"github.com/akhand-data/akhanddatabackend/services"
)

type StatsHandler struct {
	Stats *services.StatsService
}

// batchScope reads the optional batch_id query parameter; nil means all
// batches.
func batchScope(r *http.Request) (*uint, error) {
	v := r.URL.Query().Get("batch_id")
	if v == "" {
		return nil, nil
	}
	parsed, err := strconv.ParseUint(v, 10, 32)
	if err != nil {
		return nil, err
	}
	id := uint(parsed)
	return &id, nil
}

func (sh *StatsHandler) Overview(w http.ResponseWriter, r *http.Request) {
	batchID, err := batchScope(r)
	if err != nil {
		WriteAPIError(w, http.StatusBadRequest, "invalid_id", "Invalid batch_id parameter")
		return
	}

	overview, err := sh.Stats.Overview(batchID)
	if err != nil {
		log.Printf("Error computing stats overview: %v", err)
		WriteAPIError(w, http.StatusInternalServerError, "stats_failed", "Failed to compute statistics")
		return
	}
	writeJSON(w, http.StatusOK, overview)
}

func (sh *StatsHandler) Occupations(w http.ResponseWriter, r *http.Request) {
	batchID, err := batchScope(r)
	if err != nil {
		WriteAPIError(w, http.StatusBadRequest, "invalid_id", "Invalid batch_id parameter")
		return
	}

	stats, err := sh.Stats.OccupationStats(batchID)
	if err != nil {
		log.Printf("Error computing occupation stats: %v", err)
		WriteAPIError(w, http.StatusInternalServerError, "stats_failed", "Failed to compute statistics")
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

func (sh *StatsHandler) Relationships(w http.ResponseWriter, r *http.Request) {
	batchID, err := batchScope(r)
	if err != nil {
		WriteAPIError(w, http.StatusBadRequest, "invalid_id", "Invalid batch_id parameter")
		return
	}

	stats, err := sh.Stats.RelationshipStats(batchID)
	if err != nil {
		log.Printf("Error computing relationship stats: %v", err)
		WriteAPIError(w, http.StatusInternalServerError, "stats_failed", "Failed to compute statistics")
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

func (sh *StatsHandler) BatchCounts(w http.ResponseWriter, r *http.Request) {
	counts, err := sh.Stats.BatchCounts()
	if err != nil {
		log.Printf("Error computing batch counts: %v", err)
		WriteAPIError(w, http.StatusInternalServerError, "stats_failed", "Failed to compute statistics")
		return
	}
	writeJSON(w, http.StatusOK, counts)
}

func (sh *StatsHandler) RelationshipPivot(w http.ResponseWriter, r *http.Request) {
	batchID, err := batchScope(r)
	if err != nil {
		WriteAPIError(w, http.StatusBadRequest, "invalid_id", "Invalid batch_id parameter")
		return
	}

	rows, err := sh.Stats.RelationshipPivot(batchID)
	if err != nil {
		log.Printf("Error computing relationship pivot: %v", err)
		WriteAPIError(w, http.StatusInternalServerError, "stats_failed", "Failed to compute statistics")
		return
	}
	writeJSON(w, http.StatusOK, rows)
}
