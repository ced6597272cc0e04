package submsrvc

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInMemFileStorageServesFiles(t *testing.T) {
	s := NewInMemFileStorage("http://localhost/files/")

	url, err := s.SaveFile(context.Background(), "group_work/c/1/report/a.txt", []byte("hello"), "text/plain")
	require.NoError(t, err)
	assert.Equal(t, "http://localhost/files/group_work/c/1/report/a.txt", url)

	h := http.StripPrefix("/files", s)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/files/group_work/c/1/report/a.txt", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/plain", rec.Header().Get("Content-Type"))
	assert.Equal(t, "hello", rec.Body.String())

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/files/missing", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
