package v1

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthenticate(t *testing.T) {
	var gotTenant, gotContentType string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/TokenAuth/Authenticate", r.URL.Path)
		gotTenant = r.Header.Get("Abp.TenantId")
		gotContentType = r.Header.Get("Content-Type")
		fmt.Fprint(w, `{"result":{"accessToken":"tok-123","expireInSeconds":3600}}`)
	}))
	defer srv.Close()

	client := NewKimbalClient(srv.URL, "1")
	token, err := client.Authenticate("factory-user", "factory-pass")
	require.NoError(t, err)

	assert.Equal(t, "tok-123", token)
	assert.Equal(t, "1", gotTenant)
	assert.Equal(t, "application/json", gotContentType)
	assert.Equal(t, "tok-123", client.Transport.AuthToken, "token must stick to the transport")
}

func TestAuthenticateNoToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"result":{}}`)
	}))
	defer srv.Close()

	client := NewKimbalClient(srv.URL, "1")
	_, err := client.Authenticate("user", "bad-pass")
	assert.Error(t, err)
}

func TestGetAllClients(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/client/api/v1/Client/GetAll", r.URL.Path)
		assert.Equal(t, "Bearer tok-123", r.Header.Get("Authorization"))
		fmt.Fprint(w, `{"result":{"items":[{"id":7,"client_Name":"Acme Energy"},{"id":9,"client_Name":"Metro Power"}]}}`)
	}))
	defer srv.Close()

	client := NewKimbalClient(srv.URL, "1")
	client.Transport.AuthToken = "tok-123"

	clients, err := client.GetAllClients()
	require.NoError(t, err)
	require.Len(t, clients, 2)
	assert.Equal(t, ClientDTO{ID: 7, ClientName: "Acme Energy"}, clients[0])
}

func TestGetMONumbersByClientCaches(t *testing.T) {
	var calls int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		require.Equal(t, "/meterreport/api/v1/MeterReportService/GetMONumbersByClient", r.URL.Path)
		require.Equal(t, "7", r.URL.Query().Get("Id"))
		fmt.Fprint(w, `{"result":{"items":[{"moNumber":"MO-1001"},{"moNumber":"MO-1002"}]}}`)
	}))
	defer srv.Close()

	client := NewKimbalClient(srv.URL, "1")

	first, err := client.GetMONumbersByClient(7)
	require.NoError(t, err)
	require.Len(t, first, 2)
	assert.Equal(t, "MO-1001", first[0].MONumber)

	second, err := client.GetMONumbersByClient(7)
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, 1, calls, "repeat lookups must hit the cache")
}

func TestGetMONumbersPlainResultShape(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"result":[{"moNumber":"MO-2001"}]}`)
	}))
	defer srv.Close()

	client := NewKimbalClient(srv.URL, "1")
	items, err := client.GetMONumbersByClient(3)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "MO-2001", items[0].MONumber)
}

func TestTransportStatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
	}))
	defer srv.Close()

	client := NewKimbalClient(srv.URL, "1")
	_, err := client.GetAllClients()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "401")
}
