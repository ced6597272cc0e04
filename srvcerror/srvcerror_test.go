package srvcerror_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/jawad-khan/xblock-group-project-v2/srvcerror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultStatusIsInternal(t *testing.T) {
	err := srvcerror.New("some_code", "some message")
	assert.Equal(t, http.StatusInternalServerError, err.HttpStatusCode())
	assert.False(t, err.HasHttpStatusCode())
	assert.Equal(t, "some message", err.Error())
}

func TestUnwrapKeepsCause(t *testing.T) {
	cause := errors.New("disk full")
	err := srvcerror.New("file_storage_failed", "Error storing file a.txt - disk full").
		SetDebug(cause).
		SetStep(srvcerror.StepStorage)

	require.ErrorIs(t, err, cause)
	assert.Equal(t, srvcerror.StepStorage, err.Step())

	wrapped := fmt.Errorf("relay: %w", err)
	var srvcErr *srvcerror.Error
	require.ErrorAs(t, wrapped, &srvcErr)
	assert.Equal(t, "file_storage_failed", srvcErr.ErrorCode())
}

func TestStatusOf(t *testing.T) {
	testCases := []struct {
		name string
		err  error
		want int
	}{
		{
			name: "plain error",
			err:  errors.New("boom"),
			want: http.StatusInternalServerError,
		},
		{
			name: "explicit status",
			err:  srvcerror.New("x", "x").SetHttpStatusCode(http.StatusForbidden),
			want: http.StatusForbidden,
		},
		{
			name: "status from wrapped cause",
			err: srvcerror.New("outer", "outer").
				SetDebug(srvcerror.New("inner", "inner").SetHttpStatusCode(http.StatusConflict)),
			want: http.StatusConflict,
		},
		{
			name: "outer status wins",
			err: srvcerror.New("outer", "outer").SetHttpStatusCode(http.StatusBadGateway).
				SetDebug(srvcerror.New("inner", "inner").SetHttpStatusCode(http.StatusConflict)),
			want: http.StatusBadGateway,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, srvcerror.StatusOf(tc.err))
		})
	}
}
