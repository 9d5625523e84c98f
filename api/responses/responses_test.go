package responses

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgerrors "github.com/candyland-dev/candyland-backend/pkg/errors"
)

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) ErrorEnvelope {
	t.Helper()
	var envelope ErrorEnvelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	return envelope
}

func TestWriteSuccessStatus(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteSuccessStatus(rec, http.StatusCreated, map[string]string{"id": "abc"})

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"id":"abc"}`, rec.Body.String())
}

func TestWriteErrorTypedValidation(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/orders", nil)

	err := pkgerrors.New(pkgerrors.CodeValidation, "insufficient stock").
		WithDetails(map[string]any{"productId": "p1", "stock": 2})
	WriteError(context.Background(), nil, rec, req, err)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	envelope := decodeEnvelope(t, rec)
	assert.Equal(t, http.StatusBadRequest, envelope.StatusCode)
	assert.Equal(t, "/api/v1/orders", envelope.Path)
	assert.Equal(t, http.MethodPost, envelope.Method)
	assert.Equal(t, "insufficient stock", envelope.Message)
	assert.Equal(t, "VALIDATION_ERROR", envelope.ErrorCode)
	assert.NotNil(t, envelope.Details)
	assert.False(t, envelope.Timestamp.IsZero())
}

func TestWriteErrorUntypedStaysOpaque(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/products", nil)

	WriteError(context.Background(), nil, rec, req, errors.New("pq: connection reset"))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	envelope := decodeEnvelope(t, rec)
	assert.Equal(t, "internal server error", envelope.Message)
	assert.NotContains(t, rec.Body.String(), "connection reset")
}

func TestWriteErrorNotFoundUsesTypedMessage(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/orders/x", nil)

	WriteError(context.Background(), nil, rec, req, pkgerrors.New(pkgerrors.CodeNotFound, "order not found"))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "order not found", decodeEnvelope(t, rec).Message)
}

func TestWriteMessage(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteMessage(rec, "order rejected")
	assert.JSONEq(t, `{"message":"order rejected"}`, rec.Body.String())
}
