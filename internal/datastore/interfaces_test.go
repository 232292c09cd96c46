package datastore

import (
	"testing"
	"time"

	"github.com/ahvenlahti/arkiv/internal/conf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// createDatabase initializes a temporary SQLite-backed store for testing.
func createDatabase(t *testing.T, settings *conf.Settings) Interface {
	t.Helper()
	tempDir := t.TempDir()
	settings.Output.SQLite.Enabled = true
	settings.Output.SQLite.Path = tempDir + "/test.db"

	store := New(settings)

	require.NoError(t, store.Open(), "Failed to open database")

	t.Cleanup(func() {
		assert.NoError(t, store.Close(), "Failed to close datastore")
	})

	return store
}

func TestNewSelectsSQLiteStore(t *testing.T) {
	settings := &conf.Settings{}
	settings.Output.SQLite.Enabled = true
	settings.Output.SQLite.Path = "test.db"

	store := New(settings)
	_, ok := store.(*SQLiteStore)
	assert.True(t, ok, "expected a SQLiteStore")
}

func TestNewSelectsMySQLStore(t *testing.T) {
	settings := &conf.Settings{}
	settings.Output.MySQL.Enabled = true

	store := New(settings)
	_, ok := store.(*MySQLStore)
	assert.True(t, ok, "expected a MySQLStore")
}

func TestSaveAssignsUUID(t *testing.T) {
	settings := &conf.Settings{}
	store := createDatabase(t, settings)

	record := Record{Source: "test", Kind: "note", Title: "first"}
	require.NoError(t, store.Save(&record, nil))

	assert.NotZero(t, record.ID)
	assert.NotEmpty(t, record.UUID)

	fetched, err := store.GetByUUID(record.UUID)
	require.NoError(t, err)
	assert.Equal(t, record.ID, fetched.ID)
}

func TestSaveWithAnnotations(t *testing.T) {
	settings := &conf.Settings{}
	store := createDatabase(t, settings)

	record := Record{Source: "test", Kind: "report", Title: "annotated"}
	annotations := []RecordAnnotation{
		{Entry: "first annotation"},
		{Entry: "second annotation"},
	}
	require.NoError(t, store.Save(&record, annotations))

	fetched, err := store.Get("1")
	require.NoError(t, err)
	require.Len(t, fetched.Annotations, 2)
	assert.Equal(t, "first annotation", fetched.Annotations[0].Entry)
}

func TestSearchRecords(t *testing.T) {
	settings := &conf.Settings{}
	store := createDatabase(t, settings)

	testRecords := []Record{
		{Source: "sensor-a", Kind: "reading", Title: "temperature spike"},
		{Source: "sensor-b", Kind: "reading", Title: "pressure drop"},
		{Source: "operator", Kind: "note", Title: "maintenance visit", Payload: "replaced temperature probe"},
	}
	for i := range testRecords {
		require.NoError(t, store.Save(&testRecords[i], nil))
	}

	results, err := store.SearchRecords("temperature", true, 10, 0)
	require.NoError(t, err)
	assert.Len(t, results, 2)

	results, err = store.SearchRecords("sensor", true, 1, 0)
	require.NoError(t, err)
	assert.Len(t, results, 1, "limit should cap results")
}

func TestCountRecords(t *testing.T) {
	settings := &conf.Settings{}
	store := createDatabase(t, settings)

	count, err := store.CountRecords()
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)

	for i := 0; i < 3; i++ {
		record := Record{Source: "test", Kind: "note"}
		require.NoError(t, store.Save(&record, nil))
	}

	count, err = store.CountRecords()
	require.NoError(t, err)
	assert.Equal(t, int64(3), count)
}

func TestFiltered(t *testing.T) {
	settings := &conf.Settings{}
	store := createDatabase(t, settings)

	records := []Record{
		{Source: "sensor-a", Kind: "reading"},
		{Source: "sensor-a", Kind: "note"},
		{Source: "sensor-b", Kind: "reading"},
	}
	for i := range records {
		require.NoError(t, store.Save(&records[i], nil))
	}

	matched, err := store.Filtered(&RecordFilter{Source: "sensor-a"})
	require.NoError(t, err)
	assert.Len(t, matched, 2)

	matched, err = store.Filtered(&RecordFilter{Source: "sensor-a", Kind: "reading"})
	require.NoError(t, err)
	assert.Len(t, matched, 1)

	cutoff := time.Now().Add(time.Hour)
	matched, err = store.Filtered(&RecordFilter{CreatedBefore: &cutoff})
	require.NoError(t, err)
	assert.Len(t, matched, 3)

	matched, err = store.Filtered(&RecordFilter{})
	require.NoError(t, err)
	assert.Len(t, matched, 3, "zero filter matches all records")
}

func TestAnnotate(t *testing.T) {
	settings := &conf.Settings{}
	store := createDatabase(t, settings)

	record := Record{Source: "test", Kind: "note"}
	require.NoError(t, store.Save(&record, nil))

	require.NoError(t, store.Annotate(record.ID, "looks fine"))

	fetched, err := store.Get("1")
	require.NoError(t, err)
	require.Len(t, fetched.Annotations, 1)
	assert.Equal(t, "looks fine", fetched.Annotations[0].Entry)
}

// TestGuardInstalledByOpen verifies that stores opened through the public
// constructor carry the retention guard on their database handle.
func TestGuardInstalledByOpen(t *testing.T) {
	settings := &conf.Settings{}
	store := createDatabase(t, settings)

	record := Record{Source: "test", Kind: "note"}
	require.NoError(t, store.Save(&record, nil))

	sqliteStore, ok := store.(*SQLiteStore)
	require.True(t, ok)

	err := sqliteStore.DB.Delete(&Record{}, record.ID).Error
	assert.ErrorIs(t, err, ErrDeletionForbidden)
}
