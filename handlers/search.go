package handlers

import (
	"log"
	"net/http"
	"net/url"
	"strconv"

	"github.com/akhand-data/akhanddatabackend/models"
	"github.com/akhand-data/akhanddatabackend/repository"
)

type SearchHandler struct {
	RecordRepo repository.RecordRepositoryInterface
}

// criteriaFromQuery maps query parameters onto the fixed filterable field
// set. Unknown parameters are ignored.
func criteriaFromQuery(q url.Values) (models.SearchCriteria, error) {
	criteria := models.SearchCriteria{
		SerialNumber:       q.Get("serial_number"),
		FullName:           q.Get("full_name"),
		VoterNumber:        q.Get("voter_number"),
		FatherName:         q.Get("father_name"),
		MotherName:         q.Get("mother_name"),
		Occupation:         q.Get("occupation"),
		DateOfBirth:        q.Get("date_of_birth"),
		Address:            q.Get("address"),
		PhoneNumber:        q.Get("phone_number"),
		RelationshipStatus: q.Get("relationship_status"),
	}

	if v := q.Get("batch_id"); v != "" {
		parsed, err := strconv.ParseUint(v, 10, 32)
		if err != nil {
			return models.SearchCriteria{}, err
		}
		id := uint(parsed)
		criteria.BatchID = &id
	}

	return criteria, nil
}

// SearchRecords runs the advanced multi-field search. Every present,
// non-empty criterion must match; results come back newest first.
func (sh *SearchHandler) SearchRecords(w http.ResponseWriter, r *http.Request) {
	criteria, err := criteriaFromQuery(r.URL.Query())
	if err != nil {
		WriteAPIError(w, http.StatusBadRequest, "invalid_id", "Invalid batch_id parameter")
		return
	}

	if criteria.RelationshipStatus != "" && !models.IsValidRelationshipStatus(criteria.RelationshipStatus) {
		WriteAPIError(w, http.StatusBadRequest, "invalid_status", "Unknown relationship status")
		return
	}

	records, err := sh.RecordRepo.SearchAdvanced(criteria)
	if err != nil {
		log.Printf("Error running advanced search: %v", err)
		WriteAPIError(w, http.StatusInternalServerError, "search_failed", "Failed to search records")
		return
	}
	writeJSON(w, http.StatusOK, records)
}
