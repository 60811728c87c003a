package transport

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/foodmap/foodmap/pkg/errors"
)

// ReadBody drains and closes the response body.
func ReadBody(resp *http.Response) ([]byte, error) {
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.WrapIO("read", "response body", err)
	}
	return body, nil
}

// DecodeResponse decodes a 2xx JSON response into the target structure.
// Non-2xx responses become RemoteRequestErrors carrying status and body.
func DecodeResponse(resp *http.Response, operation string, target any) error {
	body, err := ReadBody(resp)
	if err != nil {
		return err
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return errors.NewRemoteRequestError(operation, resp.StatusCode, string(body), nil)
	}

	if target == nil {
		return nil
	}
	if err := json.Unmarshal(body, target); err != nil {
		return errors.WrapParse("json", operation+" response", err)
	}

	return nil
}
