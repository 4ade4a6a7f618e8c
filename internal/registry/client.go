package registry

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/lodehq/lode/internal/errs"
	"github.com/lodehq/lode/internal/service"
	"github.com/lodehq/lode/internal/utils"
)

const DefaultBaseURL = "https://api.modrinth.com/v2"

// Constraint filters version queries. Supplied once per run, never mutated.
type Constraint struct {
	GameVersion string
	Loader      string
}

// Project is the registry's metadata for one tracked id.
type Project struct {
	Slug  string `json:"slug"`
	Title string `json:"title"`
}

// Version is one release descriptor as returned by the registry. Created
// fresh per resolution call, never cached across runs.
type Version struct {
	VersionNumber string    `json:"version_number"`
	DatePublished time.Time `json:"date_published"`
	Files         []File    `json:"files"`
}

type File struct {
	Filename string `json:"filename"`
	URL      string `json:"url"`
	Primary  bool   `json:"primary"`
	Hashes   struct {
		Sha1 string `json:"sha1"`
	} `json:"hashes"`
}

// PrimaryFile selects the installable file of a version: the one flagged
// primary, or the first of the list when none is flagged.
func (v *Version) PrimaryFile() *File {
	for i := range v.Files {
		if v.Files[i].Primary {
			return &v.Files[i]
		}
	}
	if len(v.Files) == 0 {
		return nil
	}
	return &v.Files[0]
}

// Client resolves project metadata and latest compatible versions. It is
// read-only with respect to the registry and holds no per-call state.
type Client struct {
	http    service.HTTPClient
	baseURL string
}

func NewClient(c service.HTTPClient, baseURL string) *Client {
	if c == nil {
		c = service.NewHTTPClient(30 * time.Second)
	}
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{http: c, baseURL: baseURL}
}

// Project fetches /project/{id}. Unknown ids map to errs.ErrNotFound;
// transport problems and malformed bodies map to errs.ErrTransport. Raw
// transport errors never escape this boundary.
func (c *Client) Project(ctx context.Context, id string) (*Project, error) {
	endpoint := fmt.Sprintf("%s/project/%s", c.baseURL, url.PathEscape(id))

	resp, err := service.Get(ctx, c.http, endpoint)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errs.ErrTransport, err)
	}
	defer utils.Try(resp.Body.Close)

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, fmt.Errorf("%w: %s", errs.ErrNotFound, id)
	case resp.StatusCode != http.StatusOK:
		return nil, fmt.Errorf("%w: status %d for %s", errs.ErrTransport, resp.StatusCode, id)
	}

	var p Project
	if err := json.NewDecoder(resp.Body).Decode(&p); err != nil {
		return nil, fmt.Errorf("%w: decode project %s: %v", errs.ErrTransport, id, err)
	}
	if p.Slug == "" {
		p.Slug = id
	}
	return &p, nil
}

// Latest fetches /project/{id}/version filtered by the constraint and
// returns the first element. The registry's response order is trusted as
// "latest"; nothing is re-sorted by semver or publish date here (known
// limitation, kept on purpose). An empty filtered list maps to
// errs.ErrNoCompatibleVersion, which callers treat as a skip, not a failure.
func (c *Client) Latest(ctx context.Context, id string, constraint Constraint) (*Version, error) {
	q := url.Values{}
	q.Set("loaders", fmt.Sprintf("[%q]", constraint.Loader))
	q.Set("game_versions", fmt.Sprintf("[%q]", constraint.GameVersion))
	endpoint := fmt.Sprintf("%s/project/%s/version?%s", c.baseURL, url.PathEscape(id), q.Encode())

	resp, err := service.Get(ctx, c.http, endpoint)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errs.ErrTransport, err)
	}
	defer utils.Try(resp.Body.Close)

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, fmt.Errorf("%w: %s", errs.ErrNotFound, id)
	case resp.StatusCode != http.StatusOK:
		return nil, fmt.Errorf("%w: status %d for %s versions", errs.ErrTransport, resp.StatusCode, id)
	}

	var versions []Version
	if err := json.NewDecoder(resp.Body).Decode(&versions); err != nil {
		return nil, fmt.Errorf("%w: decode versions for %s: %v", errs.ErrTransport, id, err)
	}

	if len(versions) == 0 {
		return nil, fmt.Errorf("%w: %s (%s, %s)", errs.ErrNoCompatibleVersion, id, constraint.GameVersion, constraint.Loader)
	}

	latest := versions[0]
	if len(latest.Files) == 0 {
		return nil, fmt.Errorf("%w: %s version %s has no files", errs.ErrNoCompatibleVersion, id, latest.VersionNumber)
	}
	return &latest, nil
}
