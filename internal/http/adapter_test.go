package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gator2000/WeblogChallenge/internal/shared/svcerrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubHandler struct {
	err error
}

func (h *stubHandler) Handle(w http.ResponseWriter, r *http.Request) error {
	if h.err != nil {
		return h.err
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"ok":true}`))
	return nil
}

func TestErrorHandlingAdapter_Success(t *testing.T) {
	t.Parallel()

	adapted := errorHandlingAdapter(&stubHandler{})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rr := httptest.NewRecorder()
	adapted.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"ok":true}`, rr.Body.String())
}

func TestErrorHandlingAdapter_ServiceError(t *testing.T) {
	t.Parallel()

	svcErr := svcerrors.NewResourceConflictError("ING_1001", "job already ingested", nil)
	adapted := errorHandlingAdapter(&stubHandler{err: svcErr})

	req := httptest.NewRequest(http.MethodPost, "/analyses", nil)
	req.Header.Set(headerRequestID, "req-42")
	rr := httptest.NewRecorder()
	adapted.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusConflict, rr.Code)

	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, "req-42", resp.RequestID)
	assert.Equal(t, "resource_conflict", resp.ErrorCategory)
	assert.Equal(t, "ING_1001", resp.ErrorCode)
	assert.Equal(t, "job already ingested", resp.ErrorDescription)
}

func TestErrorHandlingAdapter_UnclassifiedErrorBecomesInternal(t *testing.T) {
	t.Parallel()

	adapted := errorHandlingAdapter(&stubHandler{err: errors.New("db exploded")})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rr := httptest.NewRecorder()
	adapted.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusInternalServerError, rr.Code)

	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, "internal", resp.ErrorCategory)
	assert.Equal(t, "SYS_9001", resp.ErrorCode)
	assert.NotContains(t, resp.ErrorDescription, "db exploded", "internal detail must not leak")
}
