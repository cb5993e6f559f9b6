package backend

import (
	"context"
	"net/http"
	"net/url"
	"sort"
	"time"

	"github.com/fairway-club/clubhouse-api/internal/domain"
	"github.com/fairway-club/clubhouse-api/internal/logging"
	"github.com/fairway-club/clubhouse-api/internal/metrics"

	"github.com/pkg/errors"
)

// FetchRounds lists a member's rounds, most recent first.
func (c *Client) FetchRounds(ctx context.Context, userID string) (rounds []domain.Round, err error) {
	start := time.Now()
	defer func() { c.observe(metrics.OpFetchRounds, start, err) }()

	if userID == "" {
		err = &RequestError{Op: metrics.OpFetchRounds, Err: errors.New("user id required")}
		return nil, err
	}

	sess, err := c.requireSession(metrics.OpFetchRounds)
	if err != nil {
		return nil, err
	}

	q := url.Values{}
	q.Set("select", "*")
	q.Set("user_id", "eq."+userID)
	q.Set("order", "date_played.desc")

	req, err := c.newJSONRequest(ctx, metrics.OpFetchRounds, http.MethodGet, c.restURL(tableRounds, q), nil)
	if err != nil {
		return nil, err
	}
	withBearer(req, sess)

	resp, err := c.do(metrics.OpFetchRounds, req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if !is2xx(resp.StatusCode) {
		err = c.restStatusError(metrics.OpFetchRounds, resp)
		return nil, err
	}

	var rows []roundRow
	if err = decodeJSON(metrics.OpFetchRounds, resp, &rows); err != nil {
		return nil, err
	}

	rounds = make([]domain.Round, 0, len(rows))
	for _, row := range rows {
		rounds = append(rounds, mapRound(row))
	}
	return rounds, nil
}

// SaveRound records a finished round as a two-phase write: the round
// row first, then one hole-score row per entry using the server-assigned
// round id. Phase 2 is only attempted after phase 1 succeeds. When
// phase 2 fails the round row is NOT rolled back; the returned
// RoundSaveError carries the orphaned round id.
func (c *Client) SaveRound(ctx context.Context, userID, courseName string, scores map[int]int) (err error) {
	start := time.Now()
	defer func() { c.observe(metrics.OpSaveRound, start, err) }()

	if err = validateScores(userID, courseName, scores); err != nil {
		return err
	}

	sess, err := c.requireSession(metrics.OpSaveRound)
	if err != nil {
		return err
	}

	insert := roundInsert{
		UserID:     userID,
		CourseName: courseName,
		DatePlayed: formatTimestamp(c.now()),
		TotalScore: domain.TotalScore(scores),
		Status:     domain.RoundStatusCompleted,
	}

	req, err := c.newJSONRequest(ctx, metrics.OpSaveRound, http.MethodPost, c.restURL(tableRounds, nil), insert)
	if err != nil {
		return err
	}
	withBearer(req, sess)
	req.Header.Set(headerPrefer, preferReturnRepresentation)

	resp, err := c.do(metrics.OpSaveRound, req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if !is2xx(resp.StatusCode) {
		err = c.restStatusError(metrics.OpSaveRound, resp)
		return err
	}

	var created []roundRow
	if err = decodeJSON(metrics.OpSaveRound, resp, &created); err != nil {
		return err
	}
	if len(created) == 0 {
		err = &DecodeError{Op: metrics.OpSaveRound, Err: errors.New("round insert returned no rows")}
		return err
	}
	roundID := created[0].ID

	if err = c.saveHoleScores(ctx, sess.AccessToken, roundID.String(), courseName, scores); err != nil {
		err = &RoundSaveError{RoundID: roundID, Err: err}
		return err
	}

	logging.Info(c.logger, "round saved",
		logging.FieldUserID, userID,
		logging.FieldCourse, courseName,
		logging.FieldRoundID, roundID.String(),
		"total_score", insert.TotalScore)
	return nil
}

func validateScores(userID, courseName string, scores map[int]int) error {
	if userID == "" {
		return &RequestError{Op: metrics.OpSaveRound, Err: errors.New("user id required")}
	}
	if courseName == "" {
		return &RequestError{Op: metrics.OpSaveRound, Err: errors.New("course name required")}
	}
	if len(scores) == 0 {
		return &RequestError{Op: metrics.OpSaveRound, Err: errors.New("at least one hole score required")}
	}
	for hole, score := range scores {
		if hole < 1 || hole > 18 {
			return &RequestError{Op: metrics.OpSaveRound, Err: errors.Errorf("hole number %d out of range", hole)}
		}
		if score < 1 {
			return &RequestError{Op: metrics.OpSaveRound, Err: errors.Errorf("score %d for hole %d must be positive", score, hole)}
		}
	}
	return nil
}

// saveHoleScores inserts the per-hole breakdown as one batch, holes in
// ascending order.
func (c *Client) saveHoleScores(ctx context.Context, accessToken, roundID, courseName string, scores map[int]int) error {
	holes := make([]int, 0, len(scores))
	for hole := range scores {
		holes = append(holes, hole)
	}
	sort.Ints(holes)

	batch := make([]holeScoreInsert, 0, len(holes))
	for _, hole := range holes {
		batch = append(batch, holeScoreInsert{
			RoundID:    roundID,
			HoleNumber: hole,
			Score:      scores[hole],
			Par:        domain.ParForHole(courseName, hole),
		})
	}

	req, err := c.newJSONRequest(ctx, metrics.OpSaveRound, http.MethodPost, c.restURL(tableHoleScores, nil), batch)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)

	resp, err := c.do(metrics.OpSaveRound, req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if !is2xx(resp.StatusCode) {
		return c.restStatusError(metrics.OpSaveRound, resp)
	}
	return nil
}
