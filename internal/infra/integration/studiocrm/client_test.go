package studiocrm

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	t.Setenv("CRM_ENDPOINT", server.URL)
	return NewClient()
}

func TestSubmitSuccess(t *testing.T) {
	var received Payload
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewDecoder(r.Body).Decode(&received)
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK-12345"))
	})

	outcome := client.Submit(Payload{Firstname: "Leo", OptIn: "1"})

	assert.Equal(t, StatusSuccess, outcome.Status)
	assert.Equal(t, "OK-12345", outcome.ResponseSummary)
	assert.Equal(t, 200, outcome.HTTPStatus)
	assert.Equal(t, "Leo", received.Firstname)
	assert.Equal(t, "1", received.OptIn)
}

func TestSubmitNon2xxIsFailed(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte("server error"))
	})

	outcome := client.Submit(Payload{})

	assert.Equal(t, StatusFailed, outcome.Status)
	assert.Equal(t, "Error 500: server error", outcome.ResponseSummary)
	assert.Equal(t, 500, outcome.HTTPStatus)
}

func TestSubmitTruncatesLongBodies(t *testing.T) {
	longBody := strings.Repeat("x", 500)

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(longBody))
	})

	outcome := client.Submit(Payload{})

	assert.Equal(t, StatusFailed, outcome.Status)
	assert.Len(t, outcome.ResponseSummary, 200)
	assert.True(t, strings.HasPrefix(outcome.ResponseSummary, "Error 400: xxx"))
}

func TestSubmitSuccessBodyTruncated(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(strings.Repeat("y", 300)))
	})

	outcome := client.Submit(Payload{})

	assert.Equal(t, StatusSuccess, outcome.Status)
	assert.Len(t, outcome.ResponseSummary, 200)
}

func TestSubmitNetworkFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	endpoint := server.URL
	server.Close() // nothing listening anymore

	t.Setenv("CRM_ENDPOINT", endpoint)
	client := NewClient()

	outcome := client.Submit(Payload{})

	assert.Equal(t, StatusFailed, outcome.Status)
	assert.NotEmpty(t, outcome.ResponseSummary)
	assert.Equal(t, 0, outcome.HTTPStatus)
}
