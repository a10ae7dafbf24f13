package helm

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"helm.sh/helm/v3/pkg/release"
)

// Status is the lifecycle state of a release as reported by helm.
type Status = release.Status

// knownStatuses is the closed set of statuses helm reports.
var knownStatuses = map[Status]struct{}{
	release.StatusUnknown:         {},
	release.StatusDeployed:        {},
	release.StatusUninstalled:     {},
	release.StatusSuperseded:      {},
	release.StatusFailed:          {},
	release.StatusUninstalling:    {},
	release.StatusPendingInstall:  {},
	release.StatusPendingUpgrade:  {},
	release.StatusPendingRollback: {},
}

// ParseStatus converts a status string into a Status.
// Values outside the known set are rejected.
func ParseStatus(s string) (Status, error) {
	status := Status(s)
	if _, ok := knownStatuses[status]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnrecognizedStatus, s)
	}
	return status, nil
}

// Release is a point-in-time snapshot of one helm release.
type Release struct {
	Name       string `json:"name"`
	Namespace  string `json:"namespace"`
	Chart      string `json:"chart"`
	Status     Status `json:"status"`
	Revision   int    `json:"revision,omitempty"`
	AppVersion string `json:"appVersion,omitempty"`
	Updated    string `json:"updated,omitempty"`
}

// String renders the release in a single line.
func (r Release) String() string {
	return fmt.Sprintf("%s/%s (%s, %s)", r.Namespace, r.Name, r.Chart, r.Status)
}

// listRecord mirrors one element of `helm list --output json`.
type listRecord struct {
	Name       string `json:"name"`
	Namespace  string `json:"namespace"`
	Revision   string `json:"revision"`
	Updated    string `json:"updated"`
	Status     string `json:"status"`
	Chart      string `json:"chart"`
	AppVersion string `json:"app_version"`
}

// ParseRelease converts one list record into a Release.
func ParseRelease(data []byte) (Release, error) {
	var rec listRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return Release{}, fmt.Errorf("failed to decode release record: %w", err)
	}
	return rec.toRelease()
}

func (rec listRecord) toRelease() (Release, error) {
	if rec.Name == "" {
		return Release{}, fmt.Errorf("release record has no name")
	}

	status, err := ParseStatus(rec.Status)
	if err != nil {
		return Release{}, fmt.Errorf("release %s: %w", rec.Name, err)
	}

	r := Release{
		Name:       rec.Name,
		Namespace:  rec.Namespace,
		Chart:      rec.Chart,
		Status:     status,
		AppVersion: rec.AppVersion,
		Updated:    rec.Updated,
	}
	if rec.Revision != "" {
		// Revision is informational; helm always reports an integer here.
		if rev, err := strconv.Atoi(strings.TrimSpace(rec.Revision)); err == nil {
			r.Revision = rev
		}
	}
	return r, nil
}

// parseReleases decodes the JSON array printed by `helm list`.
// Any malformed record fails the whole parse.
func parseReleases(data string) ([]Release, error) {
	var records []json.RawMessage
	if err := json.Unmarshal([]byte(data), &records); err != nil {
		return nil, fmt.Errorf("failed to decode release list: %w", err)
	}

	releases := make([]Release, 0, len(records))
	for i, raw := range records {
		r, err := ParseRelease(raw)
		if err != nil {
			return nil, fmt.Errorf("record %d: %w", i, err)
		}
		releases = append(releases, r)
	}
	return releases, nil
}
