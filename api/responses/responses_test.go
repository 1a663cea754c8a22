package responses

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgerrors "github.com/hamzasiddiqui/bazaarline-backend/pkg/errors"
)

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestWriteSuccessEnvelope(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteSuccess(rec, map[string]string{"id": "abc"})

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	body := decode(t, rec)
	assert.Equal(t, true, body["success"])
	assert.NotNil(t, body["data"])
	_, hasMessage := body["message"]
	assert.False(t, hasMessage)
}

func TestWriteErrorTypedCode(t *testing.T) {
	rec := httptest.NewRecorder()
	err := pkgerrors.New(pkgerrors.CodeNotFound, "Order not found")
	WriteError(context.Background(), nil, rec, err)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	body := decode(t, rec)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "Order not found", body["message"])
	_, hasData := body["data"]
	assert.False(t, hasData)
}

func TestWriteErrorInternalHidesDetail(t *testing.T) {
	rec := httptest.NewRecorder()
	err := pkgerrors.New(pkgerrors.CodeInternal, "pg: connection refused at 10.0.3.7")
	WriteError(context.Background(), nil, rec, err)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	body := decode(t, rec)
	assert.Equal(t, "internal server error", body["message"])
}

func TestWriteErrorUntypedMapsToInternal(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteError(context.Background(), nil, rec, assert.AnError)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	body := decode(t, rec)
	assert.Equal(t, false, body["success"])
}
