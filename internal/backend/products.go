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

// FetchProducts reads the pro-shop catalog. Ordering is the server
// default and not part of the contract.
func (c *Client) FetchProducts(ctx context.Context) (products []domain.Product, err error) {
	start := time.Now()
	defer func() { c.observe(metrics.OpFetchProducts, start, err) }()

	sess, err := c.requireSession(metrics.OpFetchProducts)
	if err != nil {
		return nil, err
	}

	q := url.Values{}
	q.Set("select", "*")

	req, err := c.newJSONRequest(ctx, metrics.OpFetchProducts, http.MethodGet, c.restURL(tableProducts, q), nil)
	if err != nil {
		return nil, err
	}
	withBearer(req, sess)

	resp, err := c.do(metrics.OpFetchProducts, req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if !is2xx(resp.StatusCode) {
		err = c.restStatusError(metrics.OpFetchProducts, resp)
		return nil, err
	}

	var rows []productRow
	if err = decodeJSON(metrics.OpFetchProducts, resp, &rows); err != nil {
		return nil, err
	}

	products = make([]domain.Product, 0, len(rows))
	for _, row := range rows {
		products = append(products, mapProduct(row))
	}
	return products, nil
}

// SaveProductInput carries a new catalog entry.
type SaveProductInput struct {
	Name          string `validate:"required"`
	Brand         string
	Description   string
	Price         float64 `validate:"gt=0"`
	Category      string
	ImageURL      string `validate:"omitempty,url"`
	StockQuantity int    `validate:"gte=0"`
}

// SaveProduct creates a catalog row. The premium gate on catalog writes
// is the caller's responsibility; this client performs no authorization
// check of its own.
func (c *Client) SaveProduct(ctx context.Context, input SaveProductInput) (err error) {
	start := time.Now()
	defer func() { c.observe(metrics.OpSaveProduct, start, err) }()

	if verr := c.validate.Struct(input); verr != nil {
		err = &RequestError{Op: metrics.OpSaveProduct, Err: errors.Wrap(verr, "invalid product")}
		return err
	}

	sess, err := c.requireSession(metrics.OpSaveProduct)
	if err != nil {
		return err
	}

	insert := productInsert{
		Name:          input.Name,
		Brand:         input.Brand,
		Description:   input.Description,
		Price:         input.Price,
		Category:      input.Category,
		ImageURL:      input.ImageURL,
		StockQuantity: input.StockQuantity,
	}

	req, err := c.newJSONRequest(ctx, metrics.OpSaveProduct, http.MethodPost, c.restURL(tableProducts, nil), insert)
	if err != nil {
		return err
	}
	withBearer(req, sess)

	resp, err := c.do(metrics.OpSaveProduct, req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if !is2xx(resp.StatusCode) {
		err = c.restStatusError(metrics.OpSaveProduct, resp)
		return err
	}

	logging.Info(c.logger, "product saved", "name", input.Name)
	return nil
}
