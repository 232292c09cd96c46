// interfaces.go: this code defines the interface for the database operations
package datastore

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/ahvenlahti/arkiv/internal/conf"
	"github.com/ahvenlahti/arkiv/internal/observability/metrics"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Interface abstracts the underlying database implementation and defines the
// operations available on the record store. Delete, Destroy and DeleteWhere
// are guarded: they fail with ErrDeletionForbidden on every invocation and
// never touch the backing store. ForceDelete is the deliberately separate
// purge path and is not reachable through the HTTP API.
type Interface interface {
	Open() error
	Close() error
	Save(record *Record, annotations []RecordAnnotation) error
	Get(id string) (Record, error)
	GetByUUID(recordUUID string) (Record, error)
	GetAllRecords() ([]Record, error)
	SearchRecords(query string, sortAscending bool, limit int, offset int) ([]Record, error)
	CountRecords() (int64, error)
	Filtered(filter *RecordFilter) ([]Record, error)
	Annotate(recordID uint, entry string) error
	Delete(id string) error
	Destroy(id string) error
	DeleteWhere(filter *RecordFilter) error
	ForceDelete(id, reason string) error
	PurgeAudits() ([]PurgeAudit, error)
	SetMetrics(m *metrics.RetentionMetrics)
}

// DataStore implements Interface using a GORM database.
type DataStore struct {
	DB      *gorm.DB // GORM database instance
	metrics *metrics.RetentionMetrics
}

// New creates a new store instance based on the provided configuration.
func New(settings *conf.Settings) Interface {
	switch {
	case settings.Output.SQLite.Enabled:
		return &SQLiteStore{
			Settings: settings,
		}
	case settings.Output.MySQL.Enabled:
		return &MySQLStore{
			Settings: settings,
		}
	default:
		// Settings validation enforces that one output is enabled
		return nil
	}
}

// SetMetrics attaches a metrics collector to the store. Optional; a nil
// collector disables metrics recording.
func (ds *DataStore) SetMetrics(m *metrics.RetentionMetrics) {
	ds.metrics = m
}

// Save stores a record and its annotations as a single transaction in the
// database. A missing UUID is assigned before the write.
func (ds *DataStore) Save(record *Record, annotations []RecordAnnotation) error {
	if record.UUID == "" {
		record.UUID = uuid.New().String()
	}

	err := ds.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(record).Error; err != nil {
			return fmt.Errorf("saving record: %w", err)
		}

		for i := range annotations {
			annotations[i].RecordID = record.ID
			if err := tx.Create(&annotations[i]).Error; err != nil {
				return fmt.Errorf("saving annotation: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	if ds.metrics != nil {
		ds.metrics.RecordCreated()
	}
	return nil
}

// Get retrieves a record by its numeric ID from the database.
func (ds *DataStore) Get(id string) (Record, error) {
	recordID, err := strconv.ParseUint(id, 10, 32)
	if err != nil {
		return Record{}, fmt.Errorf("converting ID to integer: %w", err)
	}

	var record Record
	if err := ds.DB.Preload("Annotations").First(&record, recordID).Error; err != nil {
		return Record{}, fmt.Errorf("getting record with ID %d: %w", recordID, err)
	}
	return record, nil
}

// GetByUUID retrieves a record by its public identifier.
func (ds *DataStore) GetByUUID(recordUUID string) (Record, error) {
	var record Record
	if err := ds.DB.Preload("Annotations").Where("uuid = ?", recordUUID).First(&record).Error; err != nil {
		return Record{}, fmt.Errorf("getting record with UUID %s: %w", recordUUID, err)
	}
	return record, nil
}

// GetAllRecords retrieves all records from the database.
func (ds *DataStore) GetAllRecords() ([]Record, error) {
	var records []Record
	if result := ds.DB.Find(&records); result.Error != nil {
		return nil, fmt.Errorf("error getting all records: %w", result.Error)
	}
	return records, nil
}

// SearchRecords performs a search on records with optional sorting,
// pagination, and limits.
func (ds *DataStore) SearchRecords(query string, sortAscending bool, limit int, offset int) ([]Record, error) {
	var records []Record
	sortOrder := sortAscendingString(sortAscending)

	err := ds.DB.Where("title LIKE ? OR payload LIKE ? OR source LIKE ?",
		"%"+query+"%", "%"+query+"%", "%"+query+"%").
		Order("id " + sortOrder).
		Limit(limit).
		Offset(offset).
		Find(&records).Error

	if err != nil {
		return nil, fmt.Errorf("error searching records: %w", err)
	}
	return records, nil
}

// CountRecords returns the number of records in the store.
func (ds *DataStore) CountRecords() (int64, error) {
	var count int64
	if err := ds.DB.Model(&Record{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("error counting records: %w", err)
	}
	return count, nil
}

// Filtered materializes the records matched by the given filter.
func (ds *DataStore) Filtered(filter *RecordFilter) ([]Record, error) {
	var records []Record
	if err := filter.apply(ds.DB.Model(&Record{})).Find(&records).Error; err != nil {
		return nil, fmt.Errorf("error querying filtered records: %w", err)
	}
	return records, nil
}

// Annotate appends an annotation entry to a record.
func (ds *DataStore) Annotate(recordID uint, entry string) error {
	annotation := RecordAnnotation{
		RecordID: recordID,
		Entry:    entry,
	}
	if err := ds.DB.Create(&annotation).Error; err != nil {
		return fmt.Errorf("error annotating record %d: %w", recordID, err)
	}
	return nil
}

// Delete is the hook-free removal variant. It is guarded: the call fails
// with ErrDeletionForbidden before any SQL is built, and the record stays
// in the backing store.
func (ds *DataStore) Delete(id string) error {
	if ds.metrics != nil {
		ds.metrics.DeletionRejected("record")
	}
	return deletionForbiddenError("delete", map[string]any{"record_id": id})
}

// Destroy is the hook-running removal variant. It is guarded identically to
// Delete; because the rejection happens before the store is involved, no
// lifecycle hook fires.
func (ds *DataStore) Destroy(id string) error {
	if ds.metrics != nil {
		ds.metrics.DeletionRejected("record")
	}
	return deletionForbiddenError("destroy", map[string]any{"record_id": id})
}

// DeleteWhere is the bulk removal path operating on a record filter. It is
// guarded independently of the entity-level methods: filters never reach
// the database.
func (ds *DataStore) DeleteWhere(filter *RecordFilter) error {
	if ds.metrics != nil {
		ds.metrics.DeletionRejected("bulk")
	}
	return deletionForbiddenError("bulk_delete", nil)
}

// ForceDelete removes a single record and its annotations. This is the
// deliberately separate purge path: it marks the session so the retention
// guard lets the statements through, and it is the only path on which the
// record's lifecycle hooks run.
func (ds *DataStore) ForceDelete(id, reason string) error {
	recordID, err := strconv.ParseUint(id, 10, 32)
	if err != nil {
		return fmt.Errorf("converting ID to integer: %w", err)
	}

	var record Record
	if err := ds.DB.First(&record, recordID).Error; err != nil {
		return fmt.Errorf("getting record with ID %d: %w", recordID, err)
	}

	err = ds.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Set(forceDeleteKey, true).
			Where("record_id = ?", record.ID).Delete(&RecordAnnotation{}).Error; err != nil {
			return fmt.Errorf("purging annotations for record ID %d: %w", record.ID, err)
		}
		if err := tx.Set(forceDeleteKey, true).Set(purgeReasonKey, reason).
			Delete(&record).Error; err != nil {
			return fmt.Errorf("purging record with ID %d: %w", record.ID, err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	if ds.metrics != nil {
		ds.metrics.RecordPurged()
	}
	return nil
}

// PurgeAudits returns all purge audit rows, newest first.
func (ds *DataStore) PurgeAudits() ([]PurgeAudit, error) {
	var audits []PurgeAudit
	if err := ds.DB.Order("purged_at DESC").Find(&audits).Error; err != nil {
		return nil, fmt.Errorf("error getting purge audits: %w", err)
	}
	return audits, nil
}

// performAutoMigration automates database migrations with error handling.
func performAutoMigration(db *gorm.DB, debug bool, dbType, connectionInfo string) error {
	if err := db.AutoMigrate(&Record{}, &RecordAnnotation{}, &PurgeAudit{}); err != nil {
		return fmt.Errorf("failed to auto-migrate %s database: %w", dbType, err)
	}

	if debug {
		log.Printf("%s database connection initialized: %s", dbType, connectionInfo)
	}

	return nil
}

// sortAscendingString returns "ASC" or "DESC" based on the boolean input.
func sortAscendingString(asc bool) string {
	if asc {
		return "ASC"
	}
	return "DESC"
}

// createGormLogger configures and returns a new GORM logger instance.
func createGormLogger() logger.Interface {
	return logger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		logger.Config{
			SlowThreshold: 200 * time.Millisecond,
			LogLevel:      logger.Warn,
			Colorful:      true,
		},
	)
}
