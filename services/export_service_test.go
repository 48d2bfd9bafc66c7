package services

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/akhand-data/akhanddatabackend/models"
)

func TestExportBatchXLSX(t *testing.T) {
	store := setupTestStore(t)
	batch, err := store.Batches.Create("B1")
	require.NoError(t, err)

	_, err = store.Records.Create(batch.ID, "f1.txt", models.RecordAttributes{
		FullName:   "Rahim Uddin",
		Occupation: "Farmer",
	})
	require.NoError(t, err)

	svc := NewExportService(store.Batches, store.Records)
	data, fileName, err := svc.ExportBatchXLSX(&batch.ID)
	require.NoError(t, err)
	assert.Contains(t, fileName, "records-B1-")
	assert.Contains(t, fileName, ".xlsx")

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Records")
	require.NoError(t, err)
	require.Len(t, rows, 2) // header + one record
	assert.Equal(t, "Batch", rows[0][0])
	assert.Equal(t, "B1", rows[1][0])
	assert.Equal(t, "Rahim Uddin", rows[1][3])
}

func TestExportMissingBatch(t *testing.T) {
	store := setupTestStore(t)
	svc := NewExportService(store.Batches, store.Records)

	missing := uint(404)
	_, _, err := svc.ExportBatchXLSX(&missing)
	assert.Error(t, err)
}
