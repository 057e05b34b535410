package source

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	e "github.com/gartstein/directory/internal/directory/errors"
	"github.com/gartstein/directory/internal/directory/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"
	"go.uber.org/zap/zaptest/observer"
)

func serve(t *testing.T, status int, body string) (*httptest.Server, *int32) {
	t.Helper()
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Empty(t, r.URL.RawQuery)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv, &calls
}

func TestFetcher_Success(t *testing.T) {
	body := `[
		{"id": 1, "name": "Acme", "description": "Anvils", "industry": "Tech", "location": "Berlin", "employees": 50, "founded": 2010},
		{"id": "b-2", "name": "Beta", "description": "Tests", "industry": "Tech", "location": "Paris", "employees": 10, "founded": 2015}
	]`
	srv, calls := serve(t, http.StatusOK, body)

	f := NewFetcher(srv.URL, srv.Client(), zaptest.NewLogger(t))
	res, err := f.Fetch(context.Background())
	require.NoError(t, err)

	assert.Equal(t, int32(1), atomic.LoadInt32(calls), "exactly one request per fetch")
	assert.Empty(t, res.Rejected)
	require.Len(t, res.Companies, 2)
	assert.Equal(t, models.Company{
		ID: "1", Name: "Acme", Description: "Anvils", Industry: "Tech", Location: "Berlin", Employees: 50, Founded: 2010,
	}, res.Companies[0])
	assert.Equal(t, models.CompanyID("b-2"), res.Companies[1].ID)
}

func TestFetcher_EmptyArray(t *testing.T) {
	srv, _ := serve(t, http.StatusOK, `[]`)

	res, err := NewFetcher(srv.URL, nil, zap.NewNop()).Fetch(context.Background())
	require.NoError(t, err)
	assert.Empty(t, res.Companies)
}

func TestFetcher_Failures(t *testing.T) {
	tests := []struct {
		name       string
		status     int
		body       string
		wantStatus int
		temporary  bool
	}{
		{name: "server error", status: http.StatusInternalServerError, body: `oops`, wantStatus: 500, temporary: true},
		{name: "not found", status: http.StatusNotFound, body: `{}`, wantStatus: 404, temporary: false},
		{name: "object instead of array", status: http.StatusOK, body: `{"companies": []}`, temporary: false},
		{name: "not json", status: http.StatusOK, body: `<html></html>`, temporary: false},
		{name: "null body", status: http.StatusOK, body: `null`, temporary: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv, _ := serve(t, tt.status, tt.body)

			res, err := NewFetcher(srv.URL, srv.Client(), zaptest.NewLogger(t)).Fetch(context.Background())
			require.Error(t, err)
			assert.Nil(t, res)
			assert.ErrorIs(t, err, e.ErrFetchFailed)

			var fe *FetchError
			require.True(t, errors.As(err, &fe))
			assert.Equal(t, tt.wantStatus, fe.StatusCode)
			assert.Equal(t, srv.URL, fe.URL)
			assert.Equal(t, tt.temporary, fe.Temporary())
		})
	}
}

func TestFetcher_TransportError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	_, err := NewFetcher(url, nil, zaptest.NewLogger(t)).Fetch(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, e.ErrFetchFailed)

	var fe *FetchError
	require.True(t, errors.As(err, &fe))
	assert.True(t, fe.Temporary())
}

func TestFetcher_QuarantinesInvalidRecords(t *testing.T) {
	body := `[
		{"id": 1, "name": "Acme", "description": "", "industry": "Tech", "location": "Berlin", "employees": 50, "founded": 2010},
		{"id": 2, "name": "NoFounded", "description": "x", "industry": "Tech", "location": "Berlin", "employees": 5},
		{"id": 1, "name": "Duplicate", "description": "x", "industry": "Tech", "location": "Berlin", "employees": 5, "founded": 2000},
		"not an object"
	]`
	srv, _ := serve(t, http.StatusOK, body)

	core, recorded := observer.New(zap.WarnLevel)
	res, err := NewFetcher(srv.URL, srv.Client(), zap.New(core)).Fetch(context.Background())
	require.NoError(t, err)

	require.Len(t, res.Companies, 1)
	assert.Equal(t, "Acme", res.Companies[0].Name)

	require.Len(t, res.Rejected, 3)
	assert.Equal(t, 1, res.Rejected[0].Index)
	assert.Equal(t, models.CompanyID("2"), res.Rejected[0].ID)
	assert.Equal(t, 2, res.Rejected[1].Index)
	assert.Equal(t, 3, res.Rejected[2].Index)
	for _, r := range res.Rejected {
		assert.ErrorIs(t, r.Err, e.ErrInvalidRecord)
	}

	assert.Equal(t, 3, recorded.FilterMessage("Quarantined company record").Len())
}

func TestDecodeCompany(t *testing.T) {
	valid := `"name": "Acme", "description": "d", "industry": "Tech", "location": "Oslo", "employees": 3, "founded": 1999`

	tests := []struct {
		name    string
		raw     string
		wantErr bool
	}{
		{name: "numeric id", raw: `{"id": 7, ` + valid + `}`},
		{name: "string id", raw: `{"id": "abc", ` + valid + `}`},
		{name: "missing id", raw: `{` + valid + `}`, wantErr: true},
		{name: "null id", raw: `{"id": null, ` + valid + `}`, wantErr: true},
		{name: "empty id", raw: `{"id": "", ` + valid + `}`, wantErr: true},
		{name: "bool id", raw: `{"id": true, ` + valid + `}`, wantErr: true},
		{name: "name not a string", raw: `{"id": 1, "name": 5, "description": "d", "industry": "Tech", "location": "Oslo", "employees": 3, "founded": 1999}`, wantErr: true},
		{name: "employees as string", raw: `{"id": 1, "name": "A", "description": "d", "industry": "Tech", "location": "Oslo", "employees": "3", "founded": 1999}`, wantErr: true},
		{name: "fractional employees", raw: `{"id": 1, "name": "A", "description": "d", "industry": "Tech", "location": "Oslo", "employees": 3.5, "founded": 1999}`, wantErr: true},
		{name: "negative employees", raw: `{"id": 1, "name": "A", "description": "d", "industry": "Tech", "location": "Oslo", "employees": -1, "founded": 1999}`, wantErr: true},
		{name: "missing location", raw: `{"id": 1, "name": "A", "description": "d", "industry": "Tech", "employees": 3, "founded": 1999}`, wantErr: true},
		{name: "array", raw: `[1, 2]`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := decodeCompany([]byte(tt.raw))
			if tt.wantErr {
				assert.ErrorIs(t, err, e.ErrInvalidRecord)
				return
			}
			assert.NoError(t, err)
		})
	}
}
