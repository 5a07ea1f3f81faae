package rest_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/sahatak/telecare-agent/src/common/rest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetDecodesEnvelopeData(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/appointments/doctors", r.URL.Path)
		assert.Equal(t, "cardiology", r.URL.Query().Get("specialty"))
		assert.Equal(t, "Bearer token-123", r.Header.Get("Authorization"))
		w.Write([]byte(`{"success":true,"data":[{"id":"doc1","full_name":"Dr. Amal"}]}`))
	}))
	defer server.Close()

	client := rest.NewClient(server.URL, func() string { return "token-123" })

	var doctors []struct {
		ID       string `json:"id"`
		FullName string `json:"full_name"`
	}
	query := url.Values{"specialty": {"cardiology"}}
	require.NoError(t, client.Get(context.Background(), "/appointments/doctors", query, &doctors))
	require.Len(t, doctors, 1)
	assert.Equal(t, "doc1", doctors[0].ID)
}

func TestApplicationFailureBecomesAPIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"success":false,"message":"slot already booked"}`))
	}))
	defer server.Close()

	client := rest.NewClient(server.URL, nil)

	err := client.Post(context.Background(), "/appointments/", map[string]string{}, nil)
	require.Error(t, err)

	var apiErr *rest.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "slot already booked", apiErr.Message)
	assert.Equal(t, http.StatusOK, apiErr.StatusCode)
}

func TestNonOKStatusBecomesAPIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
		w.Write([]byte(`oops`))
	}))
	defer server.Close()

	client := rest.NewClient(server.URL, nil)

	err := client.Get(context.Background(), "/calendar-sync/status", nil, nil)
	var apiErr *rest.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusServiceUnavailable, apiErr.StatusCode)
}

func TestNoAuthorizationHeaderWithoutToken(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.Header.Get("Authorization"))
		w.Write([]byte(`{"success":true}`))
	}))
	defer server.Close()

	client := rest.NewClient(server.URL, func() string { return "" })
	require.NoError(t, client.Get(context.Background(), "/calendar-sync/status", nil, nil))
}

func TestTransportErrorIsNotAPIError(t *testing.T) {
	client := rest.NewClient("http://127.0.0.1:1", nil)

	err := client.Get(context.Background(), "/appointments/doctors", nil, nil)
	require.Error(t, err)

	var apiErr *rest.APIError
	assert.False(t, errors.As(err, &apiErr))
}
