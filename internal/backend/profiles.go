package backend

import (
	"context"
	"net/http"
	"net/url"
	"time"

	"github.com/fairway-club/clubhouse-api/internal/domain"
	"github.com/fairway-club/clubhouse-api/internal/logging"
	"github.com/fairway-club/clubhouse-api/internal/metrics"

	"github.com/pkg/errors"
)

// FetchProfile reads the profile row for the signed-in member.
func (c *Client) FetchProfile(ctx context.Context) (profile domain.UserProfile, err error) {
	start := time.Now()
	defer func() { c.observe(metrics.OpFetchProfile, start, err) }()

	sess, err := c.requireSession(metrics.OpFetchProfile)
	if err != nil {
		return domain.UserProfile{}, err
	}

	q := url.Values{}
	q.Set("select", "*")
	q.Set("id", "eq."+sess.UserID)

	req, err := c.newJSONRequest(ctx, metrics.OpFetchProfile, http.MethodGet, c.restURL(tableProfiles, q), nil)
	if err != nil {
		return domain.UserProfile{}, err
	}
	withBearer(req, sess)

	resp, err := c.do(metrics.OpFetchProfile, req)
	if err != nil {
		return domain.UserProfile{}, err
	}
	defer resp.Body.Close()

	if !is2xx(resp.StatusCode) {
		err = c.restStatusError(metrics.OpFetchProfile, resp)
		return domain.UserProfile{}, err
	}

	var rows []profileRow
	if err = decodeJSON(metrics.OpFetchProfile, resp, &rows); err != nil {
		return domain.UserProfile{}, err
	}
	if len(rows) == 0 {
		err = &NotFoundError{Op: metrics.OpFetchProfile, Resource: "profile"}
		return domain.UserProfile{}, err
	}

	return mapProfile(rows[0]), nil
}

// UpdateProfileInput lists the patchable profile fields.
type UpdateProfileInput struct {
	FullName       string
	FederationCode string
	Email          string `validate:"omitempty,email"`
}

// UpdateProfile issues a partial update of the listed fields plus a
// fresh updated-at timestamp, scoped to the given user id.
func (c *Client) UpdateProfile(ctx context.Context, userID string, input UpdateProfileInput) (err error) {
	start := time.Now()
	defer func() { c.observe(metrics.OpUpdateProfile, start, err) }()

	if userID == "" {
		err = &RequestError{Op: metrics.OpUpdateProfile, Err: errors.New("user id required")}
		return err
	}
	if verr := c.validate.Struct(input); verr != nil {
		err = &RequestError{Op: metrics.OpUpdateProfile, Err: errors.Wrap(verr, "invalid profile update")}
		return err
	}

	sess, err := c.requireSession(metrics.OpUpdateProfile)
	if err != nil {
		return err
	}

	q := url.Values{}
	q.Set("id", "eq."+userID)

	patch := profilePatch{
		FullName:       input.FullName,
		FederationCode: input.FederationCode,
		Email:          input.Email,
		UpdatedAt:      formatTimestamp(c.now()),
	}

	req, err := c.newJSONRequest(ctx, metrics.OpUpdateProfile, http.MethodPatch, c.restURL(tableProfiles, q), patch)
	if err != nil {
		return err
	}
	withBearer(req, sess)

	resp, err := c.do(metrics.OpUpdateProfile, req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if !is2xx(resp.StatusCode) {
		err = c.restStatusError(metrics.OpUpdateProfile, resp)
		return err
	}

	logging.Info(c.logger, "profile updated", logging.FieldUserID, userID)
	return nil
}

// FetchPlayerStats reads the aggregate stats row for a member. An empty
// result set means the member has no rounds yet and is a successful
// outcome with no stats. A malformed response is deliberately downgraded
// to the same "no stats" outcome (logged, not surfaced) so callers can
// render an empty state without special-casing parse errors.
func (c *Client) FetchPlayerStats(ctx context.Context, userID string) (stats *domain.PlayerStats, err error) {
	start := time.Now()
	defer func() { c.observe(metrics.OpFetchPlayerStats, start, err) }()

	if userID == "" {
		err = &RequestError{Op: metrics.OpFetchPlayerStats, Err: errors.New("user id required")}
		return nil, err
	}

	sess, err := c.requireSession(metrics.OpFetchPlayerStats)
	if err != nil {
		return nil, err
	}

	q := url.Values{}
	q.Set("select", "*")
	q.Set("user_id", "eq."+userID)

	req, err := c.newJSONRequest(ctx, metrics.OpFetchPlayerStats, http.MethodGet, c.restURL(tablePlayerStats, q), nil)
	if err != nil {
		return nil, err
	}
	withBearer(req, sess)

	resp, err := c.do(metrics.OpFetchPlayerStats, req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if !is2xx(resp.StatusCode) {
		err = c.restStatusError(metrics.OpFetchPlayerStats, resp)
		return nil, err
	}

	var rows []playerStatsRow
	if decodeErr := decodeJSON(metrics.OpFetchPlayerStats, resp, &rows); decodeErr != nil {
		logging.Warn(c.logger, "player stats response did not decode, treating as no stats",
			logging.FieldUserID, userID, "error", decodeErr)
		return nil, nil
	}
	if len(rows) == 0 {
		return nil, nil
	}

	mapped := mapPlayerStats(rows[0])
	return &mapped, nil
}
