// guard.go: retention guard rejecting record removal at the database handle
package datastore

import (
	"github.com/ahvenlahti/arkiv/internal/errors"
	"gorm.io/gorm"
)

// ErrDeletionForbidden is returned for every removal attempt that goes
// through a guarded path, entity-level or bulk.
var ErrDeletionForbidden = errors.NewStd("deletion forbidden: archived records are retained permanently")

const (
	// forceDeleteKey marks a session as belonging to the explicit purge path.
	// Only ForceDelete sets it; guarded operations never do.
	forceDeleteKey = "arkiv:force_delete"

	// purgeReasonKey carries the operator-supplied reason into the purge audit hook.
	purgeReasonKey = "arkiv:purge_reason"
)

// RetentionGuard is a GORM plugin that aborts every delete statement before
// it reaches the database. It is the second interception site: the store
// methods reject guarded removals up front, and this callback catches bulk
// deletes issued directly on the *gorm.DB handle, which never pass through
// the entity-level methods. It registers ahead of gorm:before_delete so that
// model lifecycle hooks do not fire for rejected deletes.
type RetentionGuard struct{}

// Name implements gorm.Plugin.
func (RetentionGuard) Name() string {
	return "arkiv:retention_guard"
}

// Initialize implements gorm.Plugin.
func (RetentionGuard) Initialize(db *gorm.DB) error {
	return db.Callback().Delete().Before("gorm:before_delete").Register("arkiv:guard_delete", guardDelete)
}

// guardDelete aborts the delete unless the session is marked as a purge.
// It is stateless: the same statement is rejected identically every time.
func guardDelete(tx *gorm.DB) {
	if tx.Error != nil {
		return
	}
	if v, ok := tx.Get(forceDeleteKey); ok {
		if force, ok := v.(bool); ok && force {
			return
		}
	}
	_ = tx.AddError(ErrDeletionForbidden)
}

// deletionForbiddenError builds the enhanced error reported to callers of
// guarded store methods.
func deletionForbiddenError(operation string, context map[string]any) error {
	builder := errors.New(ErrDeletionForbidden).
		Component("datastore").
		Category(errors.CategoryRetention).
		Context("operation", operation)
	for key, value := range context {
		builder = builder.Context(key, value)
	}
	return builder.Build()
}
