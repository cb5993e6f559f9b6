package backend

import (
	"context"
	"net/http"
	"time"

	"github.com/fairway-club/clubhouse-api/internal/logging"
	"github.com/fairway-club/clubhouse-api/internal/metrics"
	"github.com/fairway-club/clubhouse-api/internal/session"

	"github.com/pkg/errors"
)

// SignUpInput carries everything needed to create an account. The id
// document is optional; when present it is uploaded best-effort after
// the account exists.
type SignUpInput struct {
	Email          string `validate:"required,email"`
	Password       string `validate:"required,min=8"`
	FullName       string `validate:"required"`
	FederationCode string
	IDDocument     []byte
}

type credentials struct {
	Email    string `validate:"required,email"`
	Password string `validate:"required"`
}

// SignUp creates an account with the profile metadata in the payload.
// A failed id-document upload does not fail the operation: the account
// is already created.
func (c *Client) SignUp(ctx context.Context, input SignUpInput) (err error) {
	start := time.Now()
	defer func() { c.observe(metrics.OpSignUp, start, err) }()

	if verr := c.validate.Struct(input); verr != nil {
		err = &RequestError{Op: metrics.OpSignUp, Err: errors.Wrap(verr, "invalid sign-up input")}
		return err
	}

	payload := signUpRequest{
		Email:    input.Email,
		Password: input.Password,
		Data: signUpMetadata{
			FullName:       input.FullName,
			FederationCode: input.FederationCode,
		},
	}

	req, err := c.newJSONRequest(ctx, metrics.OpSignUp, http.MethodPost, c.baseURL+"/auth/v1/signup", payload)
	if err != nil {
		return err
	}

	resp, err := c.do(metrics.OpSignUp, req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if !is2xx(resp.StatusCode) {
		err = c.authStatusError(metrics.OpSignUp, resp)
		return err
	}

	if len(input.IDDocument) == 0 {
		return nil
	}

	var created signUpResponse
	if decodeErr := decodeJSON(metrics.OpSignUp, resp, &created); decodeErr != nil || created.User == nil || created.User.ID == "" {
		logging.Warn(c.logger, "sign-up response lacked a user id, skipping id document upload",
			logging.FieldOperation, metrics.OpSignUp)
		return nil
	}

	if _, upErr := c.UploadIDDocument(ctx, created.User.ID, input.IDDocument); upErr != nil {
		logging.Warn(c.logger, "id document upload failed after sign-up",
			logging.FieldUserID, created.User.ID, "error", upErr)
	}
	return nil
}

// SignIn exchanges credentials for a session and persists it as the
// current one before reporting success. A 2xx response missing the
// token or user id fails with a DecodeError rather than silently
// succeeding without a session.
func (c *Client) SignIn(ctx context.Context, email, password string) (sess session.Session, err error) {
	start := time.Now()
	defer func() { c.observe(metrics.OpSignIn, start, err) }()

	if verr := c.validate.Struct(credentials{Email: email, Password: password}); verr != nil {
		err = &RequestError{Op: metrics.OpSignIn, Err: errors.Wrap(verr, "invalid credentials input")}
		return session.Session{}, err
	}

	req, err := c.newJSONRequest(ctx, metrics.OpSignIn, http.MethodPost,
		c.baseURL+"/auth/v1/token?grant_type=password", tokenRequest{Email: email, Password: password})
	if err != nil {
		return session.Session{}, err
	}

	resp, err := c.do(metrics.OpSignIn, req)
	if err != nil {
		return session.Session{}, err
	}
	defer resp.Body.Close()

	if !is2xx(resp.StatusCode) {
		err = c.authStatusError(metrics.OpSignIn, resp)
		return session.Session{}, err
	}

	var token tokenResponse
	if err = decodeJSON(metrics.OpSignIn, resp, &token); err != nil {
		return session.Session{}, err
	}
	if token.AccessToken == "" || token.User == nil || token.User.ID == "" {
		err = &DecodeError{Op: metrics.OpSignIn, Err: errors.New("token response missing access_token or user id")}
		return session.Session{}, err
	}

	sess = session.Session{AccessToken: token.AccessToken, UserID: token.User.ID}
	if saveErr := c.sessions.Save(sess); saveErr != nil {
		err = &StoreError{Op: metrics.OpSignIn, Err: saveErr}
		return session.Session{}, err
	}

	logging.Info(c.logger, "signed in", logging.FieldUserID, sess.UserID)
	return sess, nil
}

// SignOut clears the persisted session. It issues no network request.
func (c *Client) SignOut(_ context.Context) (err error) {
	start := time.Now()
	defer func() { c.observe(metrics.OpSignOut, start, err) }()

	if clearErr := c.sessions.Clear(); clearErr != nil {
		err = &StoreError{Op: metrics.OpSignOut, Err: clearErr}
		return err
	}
	return nil
}
