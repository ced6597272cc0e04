package httpjson_test

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/jawad-khan/xblock-group-project-v2/httpjson"
	"github.com/jawad-khan/xblock-group-project-v2/srvcerror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var discard = slog.New(slog.NewTextHandler(io.Discard, nil))

func decode(t *testing.T, w *httptest.ResponseRecorder) httpjson.JsonResponse {
	t.Helper()
	var resp httpjson.JsonResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func TestWriteSuccessJson(t *testing.T) {
	w := httptest.NewRecorder()
	httpjson.WriteSuccessJson(w, map[string]string{"state": "completed"})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
	resp := decode(t, w)
	assert.Equal(t, "success", resp.Status)
	assert.Equal(t, map[string]any{"state": "completed"}, resp.Data)
}

func TestHandleServiceError(t *testing.T) {
	w := httptest.NewRecorder()
	err := srvcerror.New("not_group_member", "Only group members can upload files").
		SetHttpStatusCode(http.StatusForbidden)
	httpjson.HandleError(discard, w, err)

	assert.Equal(t, http.StatusForbidden, w.Code)
	resp := decode(t, w)
	assert.Equal(t, "error", resp.Status)
	assert.Equal(t, "not_group_member", resp.ErrCode)
	assert.Equal(t, "Only group members can upload files", resp.ErrMsg)
}

func TestHandleUnknownErrorHidesDetails(t *testing.T) {
	w := httptest.NewRecorder()
	httpjson.HandleError(discard, w, errors.New("dynamodb: throttled"))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	resp := decode(t, w)
	assert.Equal(t, "error", resp.Status)
	assert.Equal(t, http.StatusText(http.StatusInternalServerError), resp.ErrMsg)
}
