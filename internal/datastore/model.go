// model.go this code defines the data model for the application
package datastore

import (
	"time"

	"gorm.io/gorm"
)

// Record represents a single archived record
type Record struct {
	ID        uint   `gorm:"primaryKey"`
	UUID      string `gorm:"uniqueIndex;not null"` // stable public identifier
	Source    string `gorm:"index:idx_records_source"`
	Kind      string `gorm:"index:idx_records_kind"`
	Title     string
	Payload   string    `gorm:"type:text"`
	CreatedAt time.Time `gorm:"index"`
	UpdatedAt time.Time

	Annotations []RecordAnnotation `gorm:"foreignKey:RecordID"` // One-to-many relationship
}

// BeforeDelete writes a purge audit row before a record row is removed.
// Guarded removal paths are rejected before any hook runs, so this fires
// only on the explicit purge path.
func (r *Record) BeforeDelete(tx *gorm.DB) error {
	audit := PurgeAudit{
		RecordID:   r.ID,
		RecordUUID: r.UUID,
		PurgedAt:   time.Now(),
	}
	if v, ok := tx.Get(purgeReasonKey); ok {
		if reason, ok := v.(string); ok {
			audit.Reason = reason
		}
	}
	return tx.Create(&audit).Error
}

// RecordAnnotation represents user annotations on a record
// GORM will automatically create table name as 'record_annotations'
type RecordAnnotation struct {
	ID        uint      `gorm:"primaryKey"`
	RecordID  uint      `gorm:"index;not null"` // Foreign key to associate with Record
	Entry     string    `gorm:"type:text"`      // The actual annotation text
	CreatedAt time.Time `gorm:"index"`          // When the annotation was created
	UpdatedAt time.Time // When the annotation was last updated
}

// PurgeAudit records an explicit purge of a record. Rows are written by the
// Record BeforeDelete hook and never removed.
type PurgeAudit struct {
	ID         uint      `gorm:"primaryKey"`
	RecordID   uint      `gorm:"index"`
	RecordUUID string    `gorm:"index"`
	Reason     string    `gorm:"type:text"`
	PurgedAt   time.Time `gorm:"index;not null"`
}

// RecordFilter describes a set of records addressable for bulk operations.
// A zero filter matches all records.
type RecordFilter struct {
	IDs           []uint
	UUID          string
	Source        string
	Kind          string
	CreatedBefore *time.Time
	CreatedAfter  *time.Time
}

// apply narrows the given query to the records matched by the filter.
func (f *RecordFilter) apply(db *gorm.DB) *gorm.DB {
	query := db
	if len(f.IDs) > 0 {
		query = query.Where("id IN ?", f.IDs)
	}
	if f.UUID != "" {
		query = query.Where("uuid = ?", f.UUID)
	}
	if f.Source != "" {
		query = query.Where("source = ?", f.Source)
	}
	if f.Kind != "" {
		query = query.Where("kind = ?", f.Kind)
	}
	if f.CreatedBefore != nil {
		query = query.Where("created_at < ?", f.CreatedBefore)
	}
	if f.CreatedAfter != nil {
		query = query.Where("created_at > ?", f.CreatedAfter)
	}
	return query
}
