package controller

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"jiraupdate-go/configs/config"
	"jiraupdate-go/internal/apiclient"
	"jiraupdate-go/internal/cstmerr"
	"jiraupdate-go/internal/dbclient"
	"jiraupdate-go/internal/jira"
	"jiraupdate-go/internal/shared"
)

// Controller wires tenant resolution, token retrieval and update submission
// into one flow per CI event, and records an audit row for each outcome.
type Controller struct {
	cfg          *config.Config
	tokens       *jira.TokenRetriever
	tenants      *jira.TenantResolver
	buildsAPI    *jira.UpdateSubmitter
	deploysAPI   *jira.UpdateSubmitter
	dbConnection dbclient.DBClient // nil when auditing is disabled
}

// New creates a Controller. dbConnection may be nil to disable auditing.
func New(cfg *config.Config, client apiclient.HTTPClient, dbConnection dbclient.DBClient) *Controller {
	return &Controller{
		cfg:          cfg,
		tokens:       jira.NewTokenRetriever(client, cfg.AuthAPIURL),
		tenants:      jira.NewTenantResolver(client),
		buildsAPI:    jira.NewUpdateSubmitter(client, cfg.BuildsAPIURL),
		deploysAPI:   jira.NewUpdateSubmitter(client, cfg.DeploymentsAPIURL),
		dbConnection: dbConnection,
	}
}

// SubmitBuild reports a build event to the Jira Builds API.
func (c *Controller) SubmitBuild(payload *shared.BuildPayload) (*shared.BuildAPIResponse, error) {
	cloudID, token, err := c.prepare()
	if err != nil {
		return nil, err
	}

	result := jira.PostUpdate[shared.BuildAPIResponse](c.buildsAPI, cloudID, token, c.cfg.JiraSiteURL, payload)
	if !result.IsSuccess() {
		log.Error().Str("cloudId", cloudID).Msg(result.ErrorMessage())
		c.recordSubmission(shared.EventTypeBuild, cloudID, false, 0, 0, result.ErrorMessage())
		return nil, cstmerr.NewSubmissionError(result.ErrorMessage())
	}

	response := result.Value()
	log.Info().
		Str("cloudId", cloudID).
		Int("accepted", len(response.AcceptedBuilds)).
		Int("rejected", len(response.RejectedBuilds)).
		Strs("unknownIssueKeys", response.UnknownIssueKeys).
		Msg("Build update submitted")
	c.recordSubmission(shared.EventTypeBuild, cloudID, true,
		len(response.AcceptedBuilds), len(response.RejectedBuilds), "")
	return &response, nil
}

// SubmitDeployment reports a deployment event to the Jira Deployments API.
func (c *Controller) SubmitDeployment(payload *shared.DeploymentPayload) (*shared.DeploymentAPIResponse, error) {
	cloudID, token, err := c.prepare()
	if err != nil {
		return nil, err
	}

	result := jira.PostUpdate[shared.DeploymentAPIResponse](c.deploysAPI, cloudID, token, c.cfg.JiraSiteURL, payload)
	if !result.IsSuccess() {
		log.Error().Str("cloudId", cloudID).Msg(result.ErrorMessage())
		c.recordSubmission(shared.EventTypeDeployment, cloudID, false, 0, 0, result.ErrorMessage())
		return nil, cstmerr.NewSubmissionError(result.ErrorMessage())
	}

	response := result.Value()
	log.Info().
		Str("cloudId", cloudID).
		Int("accepted", len(response.AcceptedDeployments)).
		Int("rejected", len(response.RejectedDeployments)).
		Msg("Deployment update submitted")
	c.recordSubmission(shared.EventTypeDeployment, cloudID, true,
		len(response.AcceptedDeployments), len(response.RejectedDeployments), "")
	return &response, nil
}

// RecentSubmissions returns the audit rows recorded for the configured site.
func (c *Controller) RecentSubmissions() ([]shared.Submission, error) {
	if c.dbConnection == nil {
		return nil, cstmerr.NewDBError("audit store not configured", nil)
	}

	ctx, cancel := context.WithTimeout(context.Background(), c.readTimeout())
	defer cancel()

	var submissions []shared.Submission
	if err := c.dbConnection.Find(ctx, &submissions, &shared.Submission{SiteURL: c.cfg.JiraSiteURL}); err != nil {
		return nil, err
	}
	return submissions, nil
}

// prepare resolves the cloud id for the configured site and obtains an
// access token for it.
func (c *Controller) prepare() (cloudID string, token string, err error) {
	cloudID, err = c.tenants.CloudID(c.cfg.JiraSiteURL)
	if err != nil {
		log.Error().Err(err).Str("site", c.cfg.JiraSiteURL).Msg("Failed to resolve cloud id")
		return "", "", err
	}

	token, err = c.tokens.AccessToken(c.cfg.ClientID, c.cfg.ClientSecret)
	if err != nil {
		log.Error().Err(err).Str("site", c.cfg.JiraSiteURL).Msg("Failed to obtain access token")
		return "", "", err
	}

	return cloudID, token, nil
}

// recordSubmission writes one audit row. A failed write is logged, not fatal:
// the submission outcome has already been decided.
func (c *Controller) recordSubmission(eventType, cloudID string, succeeded bool, accepted, rejected int, errMsg string) {
	if c.dbConnection == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), c.writeTimeout())
	defer cancel()

	submission := shared.Submission{
		ID:            uuid.NewString(),
		EventType:     eventType,
		SiteURL:       c.cfg.JiraSiteURL,
		CloudID:       cloudID,
		Succeeded:     succeeded,
		AcceptedCount: accepted,
		RejectedCount: rejected,
		ErrorMessage:  errMsg,
	}
	if err := c.dbConnection.Create(ctx, &submission); err != nil {
		log.Error().Err(err).Str("submissionId", submission.ID).Msg("Failed to record submission audit row")
	}
}

// writeTimeout bounds audit writes with the configured database write
// timeout, falling back when the config carries none.
func (c *Controller) writeTimeout() time.Duration {
	if c.cfg.Database.WriteTimeout > 0 {
		return c.cfg.Database.WriteTimeout
	}
	return 10 * time.Second
}

// readTimeout bounds audit queries the same way.
func (c *Controller) readTimeout() time.Duration {
	if c.cfg.Database.ReadTimeout > 0 {
		return c.cfg.Database.ReadTimeout
	}
	return 10 * time.Second
}
