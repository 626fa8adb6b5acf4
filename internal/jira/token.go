package jira

import (
	"encoding/json"

	"github.com/rs/zerolog/log"

	"jiraupdate-go/internal/apiclient"
	"jiraupdate-go/internal/cstmerr"
)

// tokenAudience is the audience the Atlassian auth API expects for tokens
// that are valid against api.atlassian.com.
const tokenAudience = "api.atlassian.com"

type tokenRequest struct {
	GrantType    string `json:"grant_type"`
	ClientID     string `json:"client_id"`
	ClientSecret string `json:"client_secret"`
	Audience     string `json:"audience"`
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int    `json:"expires_in"`
	TokenType   string `json:"token_type"`
}

// TokenRetriever exchanges OAuth client credentials for a bearer token
// accepted by the Jira Builds and Deployments APIs.
type TokenRetriever struct {
	client  apiclient.HTTPClient
	authURL string
}

// NewTokenRetriever creates a TokenRetriever against the given auth endpoint.
func NewTokenRetriever(client apiclient.HTTPClient, authURL string) *TokenRetriever {
	return &TokenRetriever{
		client:  client,
		authURL: authURL,
	}
}

// AccessToken performs a client_credentials exchange and returns the token.
func (tr *TokenRetriever) AccessToken(clientID, clientSecret string) (string, error) {
	opts := &apiclient.RequestOptions{
		Headers: map[string]string{"Content-Type": "application/json"},
		Body: tokenRequest{
			GrantType:    "client_credentials",
			ClientID:     clientID,
			ClientSecret: clientSecret,
			Audience:     tokenAudience,
		},
	}

	resp, err := tr.client.Post(tr.authURL, opts)
	if err != nil {
		return "", cstmerr.NewTokenError("token request failed", err)
	}

	if !resp.IsSuccess() {
		log.Error().Int("status", resp.StatusCode).Msg("Access token request rejected by auth API")
		return "", cstmerr.NewAPIRequestFailedError(resp.StatusCode, string(resp.Body))
	}

	var token tokenResponse
	if err := json.Unmarshal(resp.Body, &token); err != nil {
		return "", cstmerr.NewTokenError("malformed auth response", err)
	}
	if token.AccessToken == "" {
		return "", cstmerr.NewTokenError("empty access token in auth response", nil)
	}

	return token.AccessToken, nil
}
