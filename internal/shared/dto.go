package shared

// States accepted by the Jira Builds and Deployments APIs.
const (
	StatePending    = "pending"
	StateInProgress = "in_progress"
	StateSuccessful = "successful"
	StateFailed     = "failed"
	StateCancelled  = "cancelled"
	StateRolledBack = "rolled_back"
	StateUnknown    = "unknown"
)

// SchemaVersion is the payload schema version both bulk APIs accept.
const SchemaVersion = "1.0"

// --- Builds API ---

// BuildPayload is the bulk request body for the Jira Builds API.
type BuildPayload struct {
	Properties map[string]string `json:"properties,omitempty"`
	Builds     []Build           `json:"builds"`
}

// Build describes a single CI build run.
type Build struct {
	SchemaVersion        string      `json:"schemaVersion"`
	PipelineID           string      `json:"pipelineId"`
	BuildNumber          int64       `json:"buildNumber"`
	UpdateSequenceNumber int64       `json:"updateSequenceNumber"`
	DisplayName          string      `json:"displayName"`
	Description          string      `json:"description,omitempty"`
	Label                string      `json:"label,omitempty"`
	URL                  string      `json:"url"`
	State                string      `json:"state"`
	LastUpdated          string      `json:"lastUpdated"` // RFC 3339
	IssueKeys            []string    `json:"issueKeys"`
	TestInfo             *TestInfo   `json:"testInfo,omitempty"`
	References           []Reference `json:"references,omitempty"`
}

// TestInfo summarizes test results of a build.
type TestInfo struct {
	TotalNumber   int64 `json:"totalNumber"`
	NumberPassed  int64 `json:"numberPassed"`
	NumberFailed  int64 `json:"numberFailed"`
	NumberSkipped int64 `json:"numberSkipped,omitempty"`
}

// Reference associates a build with the commit and ref it was built from.
type Reference struct {
	Commit *Commit `json:"commit,omitempty"`
	Ref    *Ref    `json:"ref,omitempty"`
}

type Commit struct {
	ID            string `json:"id"`
	RepositoryURI string `json:"repositoryUri"`
}

type Ref struct {
	Name string `json:"name"`
	URI  string `json:"uri"`
}

// BuildAPIResponse is the bulk response envelope of the Builds API.
type BuildAPIResponse struct {
	AcceptedBuilds   []BuildKey      `json:"acceptedBuilds"`
	RejectedBuilds   []RejectedBuild `json:"rejectedBuilds"`
	UnknownIssueKeys []string        `json:"unknownIssueKeys"`
}

// BuildKey identifies one build within a bulk submission.
type BuildKey struct {
	PipelineID  string `json:"pipelineId"`
	BuildNumber int64  `json:"buildNumber"`
}

// RejectedBuild pairs a build key with the API's rejection reasons.
type RejectedBuild struct {
	Key    BuildKey   `json:"key"`
	Errors []APIError `json:"errors"`
}

// APIError is a single validation message attached to a rejected entity.
type APIError struct {
	Message string `json:"message"`
}

// --- Deployments API ---

// DeploymentPayload is the bulk request body for the Jira Deployments API.
type DeploymentPayload struct {
	Deployments []Deployment `json:"deployments"`
}

// Deployment describes a single deployment of a pipeline to an environment.
type Deployment struct {
	SchemaVersion            string        `json:"schemaVersion"`
	DeploymentSequenceNumber int64         `json:"deploymentSequenceNumber"`
	UpdateSequenceNumber     int64         `json:"updateSequenceNumber"`
	Associations             []Association `json:"associations"`
	DisplayName              string        `json:"displayName"`
	URL                      string        `json:"url"`
	Description              string        `json:"description"`
	LastUpdated              string        `json:"lastUpdated"` // RFC 3339
	Label                    string        `json:"label,omitempty"`
	State                    string        `json:"state"`
	Pipeline                 Pipeline      `json:"pipeline"`
	Environment              Environment   `json:"environment"`
}

// Association links a deployment to Jira issues.
type Association struct {
	AssociationType string   `json:"associationType"` // e.g. "issueIdOrKeys"
	Values          []string `json:"values"`
}

type Pipeline struct {
	ID          string `json:"id"`
	DisplayName string `json:"displayName"`
	URL         string `json:"url"`
}

type Environment struct {
	ID          string `json:"id"`
	DisplayName string `json:"displayName"`
	Type        string `json:"type"` // unmapped, development, testing, staging, production
}

// DeploymentAPIResponse is the bulk response envelope of the Deployments API.
type DeploymentAPIResponse struct {
	AcceptedDeployments []DeploymentKey      `json:"acceptedDeployments"`
	RejectedDeployments []RejectedDeployment `json:"rejectedDeployments"`
	UnknownIssueKeys    []string             `json:"unknownIssueKeys"`
	UnknownAssociations []Association        `json:"unknownAssociations"`
}

// DeploymentKey identifies one deployment within a bulk submission.
type DeploymentKey struct {
	PipelineID               string `json:"pipelineId"`
	EnvironmentID            string `json:"environmentId"`
	DeploymentSequenceNumber int64  `json:"deploymentSequenceNumber"`
}

// RejectedDeployment pairs a deployment key with the API's rejection reasons.
type RejectedDeployment struct {
	Key    DeploymentKey `json:"key"`
	Errors []APIError    `json:"errors"`
}
