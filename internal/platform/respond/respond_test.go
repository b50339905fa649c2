package respond

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"care-companion/internal/platform/apperr"
)

func TestError_UsesKindStatusAndHidesInternals(t *testing.T) {
	cases := []struct {
		err    error
		status int
		body   ErrorBody
	}{
		{apperr.NotFound("elderly member not found"), http.StatusNotFound, ErrorBody{"elderly member not found", apperr.KindNotFound}},
		{apperr.Duplicate("email already exists"), http.StatusConflict, ErrorBody{"email already exists", apperr.KindDuplicateIdentity}},
		{errors.New("pq: connection refused"), http.StatusInternalServerError, ErrorBody{"internal error", apperr.KindInternal}},
	}

	for _, tc := range cases {
		rec := httptest.NewRecorder()
		Error(rec, httptest.NewRequest(http.MethodGet, "/x", nil), tc.err)

		assert.Equal(t, tc.status, rec.Code)
		assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

		var got ErrorBody
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
		assert.Equal(t, tc.body, got)
	}
}

func TestDecodeJSON(t *testing.T) {
	var v struct {
		Name string `json:"name"`
	}
	req := httptest.NewRequest(http.MethodPost, "/x", strings.NewReader(`{"name":"Rosa"}`))
	require.NoError(t, DecodeJSON(req, &v))
	assert.Equal(t, "Rosa", v.Name)

	bad := httptest.NewRequest(http.MethodPost, "/x", strings.NewReader(`{"name":`))
	assert.ErrorIs(t, DecodeJSON(bad, &v), apperr.ErrValidation)
}
