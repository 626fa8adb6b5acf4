package jira

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jiraupdate-go/internal/apiclient"
	"jiraupdate-go/internal/cstmerr"
)

func TestCloudID(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/_edge/tenant_info", r.URL.Path)
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"cloudId":"cloud-42"}`))
	}))
	t.Cleanup(srv.Close)

	resolver := NewTenantResolver(apiclient.NewRestyAdapter())

	// A trailing slash on the site URL must not produce a double slash.
	cloudID, err := resolver.CloudID(srv.URL + "/")
	require.NoError(t, err)
	assert.Equal(t, "cloud-42", cloudID)
}

func TestCloudIDRejected(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	t.Cleanup(srv.Close)

	resolver := NewTenantResolver(apiclient.NewRestyAdapter())
	_, err := resolver.CloudID(srv.URL)

	var failed *cstmerr.APIRequestFailedError
	require.ErrorAs(t, err, &failed)
	assert.Equal(t, http.StatusNotFound, failed.StatusCode)
}

func TestCloudIDMissing(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{}`))
	}))
	t.Cleanup(srv.Close)

	resolver := NewTenantResolver(apiclient.NewRestyAdapter())
	_, err := resolver.CloudID(srv.URL)

	var tenantErr *cstmerr.TenantError
	require.ErrorAs(t, err, &tenantErr)
}
