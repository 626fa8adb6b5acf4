package jira

import (
	"encoding/json"
	"strings"

	"jiraupdate-go/internal/apiclient"
	"jiraupdate-go/internal/cstmerr"
)

type tenantInfo struct {
	CloudID string `json:"cloudId"`
}

// TenantResolver looks up the cloud id behind a Jira site URL. The cloud id
// is what the update endpoint templates are resolved with; the site URL
// itself never appears in an API request.
type TenantResolver struct {
	client apiclient.HTTPClient
}

// NewTenantResolver creates a TenantResolver.
func NewTenantResolver(client apiclient.HTTPClient) *TenantResolver {
	return &TenantResolver{client: client}
}

// CloudID fetches <siteURL>/_edge/tenant_info and returns the cloud id.
func (r *TenantResolver) CloudID(siteURL string) (string, error) {
	url := strings.TrimRight(siteURL, "/") + "/_edge/tenant_info"

	resp, err := r.client.Get(url, &apiclient.RequestOptions{})
	if err != nil {
		return "", cstmerr.NewTenantError("tenant info request failed", err)
	}

	if !resp.IsSuccess() {
		return "", cstmerr.NewAPIRequestFailedError(resp.StatusCode, string(resp.Body))
	}

	var info tenantInfo
	if err := json.Unmarshal(resp.Body, &info); err != nil {
		return "", cstmerr.NewTenantError("malformed tenant info response", err)
	}
	if info.CloudID == "" {
		return "", cstmerr.NewTenantError("no cloud id in tenant info response", nil)
	}

	return info.CloudID, nil
}
