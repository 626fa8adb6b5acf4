package main

import (
	"context"
	"encoding/json"
	"flag"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"jiraupdate-go/configs/config"
	"jiraupdate-go/internal/apiclient"
	"jiraupdate-go/internal/controller"
	"jiraupdate-go/internal/cstmerr"
	"jiraupdate-go/internal/dbclient"
	"jiraupdate-go/internal/shared"
)

func initLogging() {
	zerolog.TimeFieldFormat = time.RFC3339
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	log.Info().Msg("Logging initialized")
}

// loadBuildEvent reads a build event file and fills the fields CI systems
// usually leave out: schema version, update sequence number, last-updated
// timestamp, and issue keys scanned from refs and display names.
func loadBuildEvent(path string) (*shared.BuildPayload, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, cstmerr.NewFileIOError("failed to read event file "+path, err)
	}

	var payload shared.BuildPayload
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, cstmerr.NewEventParseError("invalid build event in "+path, err)
	}

	now := time.Now().UTC()
	for i := range payload.Builds {
		build := &payload.Builds[i]
		if build.SchemaVersion == "" {
			build.SchemaVersion = shared.SchemaVersion
		}
		if build.UpdateSequenceNumber == 0 {
			build.UpdateSequenceNumber = now.UnixMilli()
		}
		if build.LastUpdated == "" {
			build.LastUpdated = now.Format(time.RFC3339)
		}
		if len(build.IssueKeys) == 0 {
			texts := []string{build.DisplayName}
			for _, ref := range build.References {
				if ref.Ref != nil {
					texts = append(texts, ref.Ref.Name)
				}
			}
			build.IssueKeys = shared.ExtractIssueKeys(texts...)
		}
	}
	return &payload, nil
}

// loadDeploymentEvent reads a deployment event file and fills defaults the
// same way loadBuildEvent does.
func loadDeploymentEvent(path string) (*shared.DeploymentPayload, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, cstmerr.NewFileIOError("failed to read event file "+path, err)
	}

	var payload shared.DeploymentPayload
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, cstmerr.NewEventParseError("invalid deployment event in "+path, err)
	}

	now := time.Now().UTC()
	for i := range payload.Deployments {
		deployment := &payload.Deployments[i]
		if deployment.SchemaVersion == "" {
			deployment.SchemaVersion = shared.SchemaVersion
		}
		if deployment.UpdateSequenceNumber == 0 {
			deployment.UpdateSequenceNumber = now.UnixMilli()
		}
		if deployment.LastUpdated == "" {
			deployment.LastUpdated = now.Format(time.RFC3339)
		}
	}
	return &payload, nil
}

// checkAuditStore verifies the audit store is reachable before any
// submission work starts.
func checkAuditStore(dbConnection dbclient.DBClient) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := dbConnection.Ping(ctx); err != nil {
		return cstmerr.NewDBConnectionError("audit store health check failed", err)
	}
	return nil
}

func listSubmissions(ctrl *controller.Controller) error {
	submissions, err := ctrl.RecentSubmissions()
	if err != nil {
		return err
	}

	log.Info().Int("count", len(submissions)).Msg("Recorded submissions")
	for _, submission := range submissions {
		log.Info().
			Str("submissionId", submission.ID).
			Str("eventType", submission.EventType).
			Str("cloudId", submission.CloudID).
			Bool("succeeded", submission.Succeeded).
			Int("accepted", submission.AcceptedCount).
			Int("rejected", submission.RejectedCount).
			Str("error", submission.ErrorMessage).
			Time("createdAt", submission.CreatedAt).
			Msg("Submission")
	}
	return nil
}

func run() error {
	configPath := flag.String("config", "", "path to config file (toml)")
	eventPath := flag.String("event", "", "path to CI event file (json)")
	eventType := flag.String("type", shared.EventTypeBuild, "event type: build or deployment")
	listMode := flag.Bool("list", false, "list recorded submissions instead of submitting")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		return err
	}

	var dbConnection dbclient.DBClient
	if cfg.AuditEnabled {
		dbConnection, err = dbclient.NewDBClient(&cfg.Database, "gorm")
		if err != nil {
			return err
		}
		defer dbConnection.Close()
		if err := checkAuditStore(dbConnection); err != nil {
			return err
		}
	}

	ctrl := controller.New(cfg, apiclient.NewRestyAdapter(), dbConnection)

	if *listMode {
		return listSubmissions(ctrl)
	}
	if *eventPath == "" {
		return cstmerr.NewConfigError("missing -event flag", nil)
	}

	switch *eventType {
	case shared.EventTypeBuild:
		payload, err := loadBuildEvent(*eventPath)
		if err != nil {
			return err
		}
		if _, err := ctrl.SubmitBuild(payload); err != nil {
			return err
		}
	case shared.EventTypeDeployment:
		payload, err := loadDeploymentEvent(*eventPath)
		if err != nil {
			return err
		}
		if _, err := ctrl.SubmitDeployment(payload); err != nil {
			return err
		}
	default:
		return cstmerr.NewConfigError("unknown event type "+*eventType, nil)
	}

	return nil
}

func main() {
	initLogging()
	if err := run(); err != nil {
		log.Error().Err(err).Msg("Update submission failed")
		os.Exit(1)
	}
}
