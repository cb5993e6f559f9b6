package backend

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/fairway-club/clubhouse-api/internal/logging"
	"github.com/fairway-club/clubhouse-api/internal/metrics"

	"github.com/pkg/errors"
)

// UploadIDDocument stores a JPEG identity document in the id-documents
// bucket under a path keyed by user id plus a uniqueness token, so
// repeated uploads never overwrite prior ones. It returns the object
// path.
//
// The bearer token is attached when a session exists. During sign-up no
// session exists yet; the request then carries only the service API key
// rather than silently reusing it as a bearer token.
func (c *Client) UploadIDDocument(ctx context.Context, userID string, jpeg []byte) (path string, err error) {
	start := time.Now()
	defer func() { c.observe(metrics.OpUploadIDDocument, start, err) }()

	if userID == "" {
		err = &RequestError{Op: metrics.OpUploadIDDocument, Err: errors.New("user id required")}
		return "", err
	}
	if len(jpeg) == 0 {
		err = &RequestError{Op: metrics.OpUploadIDDocument, Err: errors.New("empty document")}
		return "", err
	}

	path = fmt.Sprintf("%s/%d-cedula.jpg", userID, c.now().UnixNano())
	rawURL := c.baseURL + "/storage/v1/object/" + idDocumentBucket + "/" + path

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, rawURL, bytes.NewReader(jpeg))
	if err != nil {
		err = &RequestError{Op: metrics.OpUploadIDDocument, Err: errors.Wrap(err, "build request")}
		return "", err
	}
	req.Header.Set(headerAPIKey, c.anonKey)
	req.Header.Set("Content-Type", "image/jpeg")
	if sess, ok := c.sessions.Current(); ok {
		withBearer(req, sess)
	}

	resp, err := c.do(metrics.OpUploadIDDocument, req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if !is2xx(resp.StatusCode) {
		err = c.restStatusError(metrics.OpUploadIDDocument, resp)
		return "", err
	}

	logging.Info(c.logger, "id document uploaded",
		logging.FieldUserID, userID, logging.FieldPath, path)
	return path, nil
}
