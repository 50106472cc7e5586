package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"

	"github.com/Kilat-Pet-Delivery/service-shelter-intake/internal/domain/mascota"
)

// DefaultTimeout bounds each API call when Config.Timeout is unset.
const DefaultTimeout = 30 * time.Second

const userAgent = "shelter-intake/1.0"

// Config holds the shelter API connection settings.
type Config struct {
	BaseURL string
	Timeout time.Duration
	Debug   bool
}

// Client implements mascota.Gateway over the shelter REST API.
type Client struct {
	rest   *resty.Client
	logger *zap.Logger
}

type uploadResponse struct {
	URL string `json:"url"`
}

type errorResponse struct {
	Detail json.RawMessage `json:"detail"`
}

// New creates a Client for the API at cfg.BaseURL.
func New(cfg Config, logger *zap.Logger) (*Client, error) {
	base := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if base == "" {
		return nil, fmt.Errorf("shelter api base url is required")
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	rest := resty.New().
		SetBaseURL(base).
		SetTimeout(timeout).
		SetDebug(cfg.Debug).
		SetHeader("Accept", "application/json").
		SetHeader("User-Agent", userAgent)

	return &Client{
		rest:   rest,
		logger: logger.With(zap.String("component", "shelter_api_client")),
	}, nil
}

// UploadImage sends the image as multipart field "file" and returns the URL
// the API stored it under.
func (c *Client) UploadImage(ctx context.Context, img *mascota.Image) (string, error) {
	var out uploadResponse
	resp, err := c.rest.R().
		SetContext(ctx).
		SetMultipartField("file", img.Name(), img.ContentType(), bytes.NewReader(img.Bytes())).
		SetResult(&out).
		ForceContentType("application/json").
		Post("/upload-image")
	if err != nil {
		if resp != nil && !resp.IsSuccess() && resp.StatusCode() != 0 {
			return "", &mascota.UploadError{StatusCode: resp.StatusCode(), Body: strings.TrimSpace(resp.String())}
		}
		c.logger.Warn("image upload transport failure", zap.Error(err))
		return "", &mascota.UploadError{Err: err}
	}

	if !resp.IsSuccess() {
		c.logger.Warn("image upload rejected",
			zap.Int("status", resp.StatusCode()),
			zap.String("image", img.Name()),
		)
		return "", &mascota.UploadError{StatusCode: resp.StatusCode(), Body: strings.TrimSpace(resp.String())}
	}
	if strings.TrimSpace(out.URL) == "" {
		return "", &mascota.UploadError{StatusCode: resp.StatusCode(), Body: "respuesta sin url"}
	}

	c.logger.Debug("image uploaded",
		zap.String("url", out.URL),
		zap.Int64("bytes", img.Size()),
	)
	return out.URL, nil
}

// Create registers a new record.
func (c *Client) Create(ctx context.Context, draft mascota.Draft) (*mascota.SaveResult, error) {
	resp, err := c.rest.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(draft).
		Post("/mascotas")
	return c.saveResult(resp, err)
}

// Update replaces the record with the given id.
func (c *Client) Update(ctx context.Context, id int64, draft mascota.Draft) (*mascota.SaveResult, error) {
	resp, err := c.rest.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetPathParam("id", strconv.FormatInt(id, 10)).
		SetBody(draft).
		Put("/mascotas/{id}")
	result, err := c.saveResult(resp, err)
	if err != nil {
		return nil, err
	}
	if result.ID == 0 {
		result.ID = id
	}
	return result, nil
}

// List returns every record in server order.
func (c *Client) List(ctx context.Context) ([]mascota.Mascota, error) {
	var out []mascota.Mascota
	resp, err := c.rest.R().
		SetContext(ctx).
		SetResult(&out).
		ForceContentType("application/json").
		Get("/mascotas")
	if err != nil {
		if resp != nil && !resp.IsSuccess() && resp.StatusCode() != 0 {
			return nil, &mascota.FetchError{StatusCode: resp.StatusCode()}
		}
		return nil, &mascota.FetchError{Err: err}
	}
	if !resp.IsSuccess() {
		return nil, &mascota.FetchError{StatusCode: resp.StatusCode()}
	}
	return out, nil
}

func (c *Client) saveResult(resp *resty.Response, err error) (*mascota.SaveResult, error) {
	if err != nil {
		c.logger.Warn("record submit transport failure", zap.Error(err))
		return nil, &mascota.SubmitError{Err: err}
	}
	if !resp.IsSuccess() {
		detail := parseDetail(resp.Body())
		c.logger.Warn("record submit rejected",
			zap.Int("status", resp.StatusCode()),
			zap.String("detail", detail),
		)
		return nil, &mascota.SubmitError{StatusCode: resp.StatusCode(), Detail: detail}
	}

	// The record is already stored at this point, so an odd body is not an error.
	result := &mascota.SaveResult{}
	if body := resp.Body(); len(body) > 0 {
		if jerr := json.Unmarshal(body, result); jerr != nil {
			c.logger.Debug("unparsed save response", zap.Error(jerr))
		}
	}
	return result, nil
}

// parseDetail returns the {detail: string} message of an error body, or ""
// when the body has another shape.
func parseDetail(body []byte) string {
	var er errorResponse
	if err := json.Unmarshal(body, &er); err != nil || len(er.Detail) == 0 {
		return ""
	}
	var detail string
	if err := json.Unmarshal(er.Detail, &detail); err != nil {
		return ""
	}
	return strings.TrimSpace(detail)
}
