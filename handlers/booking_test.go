package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"portflow/models"
	"portflow/services/booking"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// bulkStubService captures the ids handed to the bulk operations and returns
// a canned result; the embedded nil interface panics on anything else.
type bulkStubService struct {
	booking.BookingService
	gotIDs       []string
	gotSlotStart time.Time
	result       models.BulkResult
}

func (s *bulkStubService) BulkConfirm(ctx context.Context, actor models.Actor, ids []string) models.BulkResult {
	s.gotIDs = ids
	return s.result
}

func (s *bulkStubService) BulkReject(ctx context.Context, actor models.Actor, ids []string) models.BulkResult {
	s.gotIDs = ids
	return s.result
}

func (s *bulkStubService) ReassignSlot(ctx context.Context, actor models.Actor, id string, slotStart time.Time) (*models.Booking, error) {
	s.gotSlotStart = slotStart
	return &models.Booking{ID: id, SlotStart: slotStart}, nil
}

func bookingRouter(stub *bulkStubService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewBookingHandler(stub, nil)
	r := gin.New()
	r.POST("/api/bookings/bulk/confirm", h.BulkConfirm)
	r.POST("/api/bookings/bulk/reject", h.BulkReject)
	r.POST("/api/bookings/:id/reassign-slot", h.ReassignSlot)
	return r
}

func postJSON(t *testing.T, r *gin.Engine, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestBulkConfirm_ResponseShape(t *testing.T) {
	stub := &bulkStubService{result: models.BulkResult{Succeeded: 2, Failed: []string{"b-3"}}}
	r := bookingRouter(stub)

	w := postJSON(t, r, "/api/bookings/bulk/confirm", `{"bookingIds":["b-1","b-2","b-3"]}`)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Success bool `json:"success"`
		Data    struct {
			Confirmed int      `json:"confirmed"`
			Failed    []string `json:"failed"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

	assert.True(t, resp.Success)
	assert.Equal(t, 2, resp.Data.Confirmed)
	assert.Equal(t, []string{"b-3"}, resp.Data.Failed)
	assert.Equal(t, []string{"b-1", "b-2", "b-3"}, stub.gotIDs)
}

func TestBulkReject_ResponseShape(t *testing.T) {
	stub := &bulkStubService{result: models.BulkResult{Succeeded: 1, Failed: []string{}}}
	r := bookingRouter(stub)

	w := postJSON(t, r, "/api/bookings/bulk/reject", `{"bookingIds":["b-1"]}`)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Data map[string]json.RawMessage `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

	assert.Contains(t, resp.Data, "rejected")
	assert.Contains(t, resp.Data, "failed")
	assert.NotContains(t, resp.Data, "confirmed")
	assert.Equal(t, "1", string(resp.Data["rejected"]))
}

func TestBulkConfirm_RequiresBookingIDs(t *testing.T) {
	r := bookingRouter(&bulkStubService{})

	w := postJSON(t, r, "/api/bookings/bulk/confirm", `{"ids":["b-1"]}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestReassignSlot_BindsNewSlotStart(t *testing.T) {
	stub := &bulkStubService{}
	r := bookingRouter(stub)
	slot := time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)

	w := postJSON(t, r, "/api/bookings/b-1/reassign-slot", `{"newSlotStart":"2026-09-01T10:00:00Z"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, stub.gotSlotStart.Equal(slot))

	w = postJSON(t, r, "/api/bookings/b-1/reassign-slot", `{"slotStart":"2026-09-01T10:00:00Z"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
