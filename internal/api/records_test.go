// records_test.go: tests for record endpoints
package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// createTestRecord stores a record through the API and returns its response.
func createTestRecord(t *testing.T, e *echo.Echo, controller *Controller, body string) RecordResponse {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, "/api/v1/records", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	ctx := e.NewContext(req, rec)

	require.NoError(t, controller.CreateRecord(ctx))
	require.Equal(t, http.StatusCreated, rec.Code)

	var response RecordResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	return response
}

func TestCreateAndGetRecord(t *testing.T) {
	e, controller := setupTestController(t)

	created := createTestRecord(t, e, controller,
		`{"source":"sensor-a","kind":"reading","title":"temperature","payload":"21.5","annotations":["first"]}`)
	assert.NotZero(t, created.ID)
	assert.NotEmpty(t, created.UUID)

	req := httptest.NewRequest(http.MethodGet, "/", http.NoBody)
	rec := httptest.NewRecorder()
	ctx := e.NewContext(req, rec)
	ctx.SetPath("/api/v1/records/:id")
	ctx.SetParamNames("id")
	ctx.SetParamValues("1")

	require.NoError(t, controller.GetRecord(ctx))
	assert.Equal(t, http.StatusOK, rec.Code)

	var fetched RecordResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &fetched))
	assert.Equal(t, created.UUID, fetched.UUID)
	assert.Equal(t, []string{"first"}, fetched.Annotations)
}

func TestCreateRecordRequiresSource(t *testing.T) {
	e, controller := setupTestController(t)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/records", strings.NewReader(`{"kind":"note"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	ctx := e.NewContext(req, rec)

	require.NoError(t, controller.CreateRecord(ctx))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestDeleteRecordForbidden(t *testing.T) {
	e, controller := setupTestController(t)
	createTestRecord(t, e, controller, `{"source":"sensor-a","kind":"reading","title":"keep me"}`)

	req := httptest.NewRequest(http.MethodDelete, "/", http.NoBody)
	rec := httptest.NewRecorder()
	ctx := e.NewContext(req, rec)
	ctx.SetPath("/api/v1/records/:id")
	ctx.SetParamNames("id")
	ctx.SetParamValues("1")

	require.NoError(t, controller.DeleteRecord(ctx))
	assert.Equal(t, http.StatusForbidden, rec.Code)

	// The record must still be retrievable afterwards
	req = httptest.NewRequest(http.MethodGet, "/", http.NoBody)
	rec = httptest.NewRecorder()
	ctx = e.NewContext(req, rec)
	ctx.SetPath("/api/v1/records/:id")
	ctx.SetParamNames("id")
	ctx.SetParamValues("1")

	require.NoError(t, controller.GetRecord(ctx))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestDeleteUnknownRecordNotFound(t *testing.T) {
	e, controller := setupTestController(t)

	req := httptest.NewRequest(http.MethodDelete, "/", http.NoBody)
	rec := httptest.NewRecorder()
	ctx := e.NewContext(req, rec)
	ctx.SetPath("/api/v1/records/:id")
	ctx.SetParamNames("id")
	ctx.SetParamValues("99")

	require.NoError(t, controller.DeleteRecord(ctx))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestBulkDeleteForbidden(t *testing.T) {
	e, controller := setupTestController(t)
	createTestRecord(t, e, controller, `{"source":"sensor-a","kind":"reading"}`)
	createTestRecord(t, e, controller, `{"source":"sensor-b","kind":"reading"}`)

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/records", strings.NewReader(`{"ids":[1]}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	ctx := e.NewContext(req, rec)

	require.NoError(t, controller.BulkDeleteRecords(ctx))
	assert.Equal(t, http.StatusForbidden, rec.Code)

	// Every record in the collection must still be present
	for _, id := range []string{"1", "2"} {
		req = httptest.NewRequest(http.MethodGet, "/", http.NoBody)
		rec = httptest.NewRecorder()
		ctx = e.NewContext(req, rec)
		ctx.SetPath("/api/v1/records/:id")
		ctx.SetParamNames("id")
		ctx.SetParamValues(id)

		require.NoError(t, controller.GetRecord(ctx))
		assert.Equal(t, http.StatusOK, rec.Code, "record %s should still exist", id)
	}
}

func TestSearchRecords(t *testing.T) {
	e, controller := setupTestController(t)
	createTestRecord(t, e, controller, `{"source":"sensor-a","kind":"reading","title":"temperature spike"}`)
	createTestRecord(t, e, controller, `{"source":"operator","kind":"note","title":"window left open"}`)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/records/search?q=temperature", http.NoBody)
	rec := httptest.NewRecorder()
	ctx := e.NewContext(req, rec)

	require.NoError(t, controller.SearchRecords(ctx))
	assert.Equal(t, http.StatusOK, rec.Code)

	var results []RecordResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &results))
	require.Len(t, results, 1)
	assert.Equal(t, "temperature spike", results[0].Title)
}

func TestAnnotateRecord(t *testing.T) {
	e, controller := setupTestController(t)
	createTestRecord(t, e, controller, `{"source":"sensor-a","kind":"reading"}`)

	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"entry":"checked manually"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	ctx := e.NewContext(req, rec)
	ctx.SetPath("/api/v1/records/:id/annotations")
	ctx.SetParamNames("id")
	ctx.SetParamValues("1")

	require.NoError(t, controller.AnnotateRecord(ctx))
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestListRecords(t *testing.T) {
	e, controller := setupTestController(t)
	createTestRecord(t, e, controller, `{"source":"sensor-a","kind":"reading"}`)
	createTestRecord(t, e, controller, `{"source":"sensor-b","kind":"reading"}`)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/records", http.NoBody)
	rec := httptest.NewRecorder()
	ctx := e.NewContext(req, rec)

	require.NoError(t, controller.ListRecords(ctx))
	assert.Equal(t, http.StatusOK, rec.Code)

	var results []RecordResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &results))
	assert.Len(t, results, 2)
}

func TestHealth(t *testing.T) {
	e, controller := setupTestController(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/health", http.NoBody)
	rec := httptest.NewRecorder()
	ctx := e.NewContext(req, rec)

	require.NoError(t, controller.Health(ctx))
	assert.Equal(t, http.StatusOK, rec.Code)
}
