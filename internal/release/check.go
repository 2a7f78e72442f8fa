package release

import (
	"strings"

	goversion "github.com/hashicorp/go-version"
)

// Status is the outcome of comparing the running version against the
// newest published release.
type Status struct {
	Current         string `json:"current"`
	LatestTag       string `json:"latest_tag"`
	URL             string `json:"url,omitempty"`
	Comparable      bool   `json:"comparable"`
	UpdateAvailable bool   `json:"update_available"`
}

// Compare builds the update status for the current version string.
// Development builds ("dev") and unparseable tags are reported as not
// comparable rather than failing the probe.
func Compare(current string, rel *Release) Status {
	status := Status{
		Current:   current,
		LatestTag: rel.TagName,
		URL:       rel.HTMLURL,
	}

	cur, err := goversion.NewVersion(strings.TrimPrefix(current, "v"))
	if err != nil {
		return status
	}
	latest, err := goversion.NewVersion(strings.TrimPrefix(rel.TagName, "v"))
	if err != nil {
		return status
	}

	status.Comparable = true
	status.UpdateAvailable = latest.GreaterThan(cur)
	return status
}
