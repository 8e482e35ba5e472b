package transport

import (
	"context"
	"encoding/json"
	"io"
	"net/http"

	"github.com/everypolitician/commons-tools/pkg/errors"
	"github.com/everypolitician/commons-tools/pkg/logging"
)

// maxErrorBody bounds how much of a failed response is kept in the error.
const maxErrorBody = 2048

// NewRequest builds a request carrying the given headers.
func NewRequest(ctx context.Context, method, url string, body io.Reader, headers http.Header) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return nil, errors.WrapResource("create", "request", method+" "+url, err)
	}
	for key, values := range headers {
		for _, v := range values {
			req.Header.Add(key, v)
		}
	}
	return req, nil
}

// CheckResponse returns an *errors.APIError for any non-2xx response and
// closes its body. Successful responses are left untouched.
func CheckResponse(resp *http.Response, service string) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}
	defer closeBody(resp)

	body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	message := string(body)
	if message == "" {
		message = resp.Status
	}

	apiErr := errors.NewAPIError(service, resp.StatusCode, message)
	if resp.Request != nil {
		apiErr.Endpoint = resp.Request.URL.String()
	}
	if resp.StatusCode == http.StatusForbidden && resp.Header.Get("X-RateLimit-Remaining") == "0" {
		apiErr.Err = errors.ErrRateLimited
	}
	return apiErr
}

// DecodeResponse checks the status and decodes a JSON response into target.
// A nil target only checks the status.
func DecodeResponse(resp *http.Response, service string, target any) error {
	if err := CheckResponse(resp, service); err != nil {
		return err
	}
	defer closeBody(resp)

	if target == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return errors.WrapIO("read", "response body", err)
	}
	if err := json.Unmarshal(body, target); err != nil {
		return errors.WrapParse("json", service+" response", err)
	}
	return nil
}

func closeBody(resp *http.Response) {
	if err := resp.Body.Close(); err != nil {
		logging.Warn().Err(err).Msg("Failed to close response body")
	}
}
