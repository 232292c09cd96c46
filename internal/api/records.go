// internal/api/records.go record endpoints
package api

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/ahvenlahti/arkiv/internal/datastore"
	"github.com/ahvenlahti/arkiv/internal/errors"
)

// RecordResponse is the API representation of a stored record
type RecordResponse struct {
	ID          uint     `json:"id"`
	UUID        string   `json:"uuid"`
	Source      string   `json:"source"`
	Kind        string   `json:"kind"`
	Title       string   `json:"title"`
	Payload     string   `json:"payload"`
	CreatedAt   string   `json:"created_at"`
	Annotations []string `json:"annotations,omitempty"`
}

// RecordRequest is the request body for creating a record
type RecordRequest struct {
	Source      string   `json:"source"`
	Kind        string   `json:"kind"`
	Title       string   `json:"title"`
	Payload     string   `json:"payload"`
	Annotations []string `json:"annotations,omitempty"`
}

// AnnotationRequest is the request body for annotating a record
type AnnotationRequest struct {
	Entry string `json:"entry"`
}

// BulkDeleteRequest describes the record filter for a bulk removal attempt
type BulkDeleteRequest struct {
	IDs    []uint `json:"ids,omitempty"`
	Source string `json:"source,omitempty"`
	Kind   string `json:"kind,omitempty"`
}

const (
	defaultListLimit = 100
	maxListLimit     = 1000
)

// recordToResponse converts a datastore record to its API representation.
func recordToResponse(record *datastore.Record) RecordResponse {
	resp := RecordResponse{
		ID:        record.ID,
		UUID:      record.UUID,
		Source:    record.Source,
		Kind:      record.Kind,
		Title:     record.Title,
		Payload:   record.Payload,
		CreatedAt: record.CreatedAt.Format(time.RFC3339),
	}
	for i := range record.Annotations {
		resp.Annotations = append(resp.Annotations, record.Annotations[i].Entry)
	}
	return resp
}

// ListRecords returns stored records with pagination.
func (c *Controller) ListRecords(ctx echo.Context) error {
	limit := queryInt(ctx, "limit", defaultListLimit)
	if limit > maxListLimit {
		limit = maxListLimit
	}
	offset := queryInt(ctx, "offset", 0)

	cacheKey := fmt.Sprintf("records:%d:%d", limit, offset)
	if cached, found := c.recordCache.Get(cacheKey); found {
		return ctx.JSON(http.StatusOK, cached)
	}

	records, err := c.DS.SearchRecords("", false, limit, offset)
	if err != nil {
		return ctx.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to list records"})
	}

	responses := make([]RecordResponse, 0, len(records))
	for i := range records {
		responses = append(responses, recordToResponse(&records[i]))
	}

	c.recordCache.Set(cacheKey, responses, 0)
	return ctx.JSON(http.StatusOK, responses)
}

// GetRecord returns a single record by ID.
func (c *Controller) GetRecord(ctx echo.Context) error {
	idStr := ctx.Param("id")
	record, err := c.DS.Get(idStr)
	if err != nil {
		return ctx.JSON(http.StatusNotFound, map[string]string{"error": "Record not found"})
	}

	return ctx.JSON(http.StatusOK, recordToResponse(&record))
}

// SearchRecords performs a free-text search across records.
func (c *Controller) SearchRecords(ctx echo.Context) error {
	query := ctx.QueryParam("q")
	limit := queryInt(ctx, "limit", defaultListLimit)
	if limit > maxListLimit {
		limit = maxListLimit
	}
	offset := queryInt(ctx, "offset", 0)
	ascending := ctx.QueryParam("order") == "asc"

	records, err := c.DS.SearchRecords(query, ascending, limit, offset)
	if err != nil {
		return ctx.JSON(http.StatusInternalServerError, map[string]string{"error": "Search failed"})
	}

	responses := make([]RecordResponse, 0, len(records))
	for i := range records {
		responses = append(responses, recordToResponse(&records[i]))
	}
	return ctx.JSON(http.StatusOK, responses)
}

// CreateRecord stores a new record.
func (c *Controller) CreateRecord(ctx echo.Context) error {
	req := &RecordRequest{}
	if err := ctx.Bind(req); err != nil {
		return ctx.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request format"})
	}

	if req.Source == "" {
		return ctx.JSON(http.StatusBadRequest, map[string]string{"error": "Source must not be empty"})
	}

	record := datastore.Record{
		Source:  req.Source,
		Kind:    req.Kind,
		Title:   req.Title,
		Payload: req.Payload,
	}
	annotations := make([]datastore.RecordAnnotation, 0, len(req.Annotations))
	for _, entry := range req.Annotations {
		annotations = append(annotations, datastore.RecordAnnotation{Entry: entry})
	}

	if err := c.DS.Save(&record, annotations); err != nil {
		return ctx.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to store record"})
	}

	c.recordCache.Flush()
	c.logAPIRequest("Record stored", "id", record.ID, "uuid", record.UUID, "source", record.Source)

	record.Annotations = annotations
	return ctx.JSON(http.StatusCreated, recordToResponse(&record))
}

// AnnotateRecord appends an annotation to a record.
func (c *Controller) AnnotateRecord(ctx echo.Context) error {
	idStr := ctx.Param("id")
	record, err := c.DS.Get(idStr)
	if err != nil {
		return ctx.JSON(http.StatusNotFound, map[string]string{"error": "Record not found"})
	}

	req := &AnnotationRequest{}
	if err := ctx.Bind(req); err != nil {
		return ctx.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request format"})
	}
	if req.Entry == "" {
		return ctx.JSON(http.StatusBadRequest, map[string]string{"error": "Annotation entry must not be empty"})
	}

	if err := c.DS.Annotate(record.ID, req.Entry); err != nil {
		return ctx.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to annotate record"})
	}

	return ctx.NoContent(http.StatusNoContent)
}

// DeleteRecord is the entity-level removal endpoint. The store rejects every
// attempt; the handler reports the rejection and never reaches the backing
// store.
func (c *Controller) DeleteRecord(ctx echo.Context) error {
	idStr := ctx.Param("id")
	record, err := c.DS.Get(idStr)
	if err != nil {
		return ctx.JSON(http.StatusNotFound, map[string]string{"error": "Record not found"})
	}

	err = c.DS.Delete(idStr)
	if errors.Is(err, datastore.ErrDeletionForbidden) {
		if c.metrics != nil {
			c.metrics.Retention.DeletionRejected("api")
		}
		c.logAPIRequest("Deletion attempt rejected", "id", record.ID, "uuid", record.UUID)
		return ctx.JSON(http.StatusForbidden, map[string]string{"error": "Records cannot be deleted from the archive"})
	}
	if err != nil {
		return ctx.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}

	// Unreachable while the guard is installed
	return ctx.NoContent(http.StatusNoContent)
}

// BulkDeleteRecords is the collection-level removal endpoint. The bulk path
// is guarded independently of the per-record path and always refuses.
func (c *Controller) BulkDeleteRecords(ctx echo.Context) error {
	req := &BulkDeleteRequest{}
	if err := ctx.Bind(req); err != nil {
		return ctx.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request format"})
	}

	filter := &datastore.RecordFilter{
		IDs:    req.IDs,
		Source: req.Source,
		Kind:   req.Kind,
	}

	err := c.DS.DeleteWhere(filter)
	if errors.Is(err, datastore.ErrDeletionForbidden) {
		if c.metrics != nil {
			c.metrics.Retention.DeletionRejected("api")
		}
		c.logAPIRequest("Bulk deletion attempt rejected", "ids", req.IDs, "source", req.Source)
		return ctx.JSON(http.StatusForbidden, map[string]string{"error": "Records cannot be deleted from the archive"})
	}
	if err != nil {
		return ctx.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}

	return ctx.NoContent(http.StatusNoContent)
}

// ListPurgeAudits returns the audit trail of explicit purges.
func (c *Controller) ListPurgeAudits(ctx echo.Context) error {
	audits, err := c.DS.PurgeAudits()
	if err != nil {
		return ctx.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to list purge audits"})
	}
	return ctx.JSON(http.StatusOK, audits)
}

// queryInt reads an integer query parameter with a fallback default.
func queryInt(ctx echo.Context, name string, defaultValue int) int {
	value := ctx.QueryParam(name)
	if value == "" {
		return defaultValue
	}
	parsed, err := strconv.Atoi(value)
	if err != nil || parsed < 0 {
		return defaultValue
	}
	return parsed
}
