package resolve

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/bytedance/sonic"
)

// HTTPResolver posts the resolution request as a JSON body to a remote
// filtering endpoint. The payload is non-trivial so it always travels as a
// body, never as query parameters.
type HTTPResolver struct {
	Url    string
	Client *http.Client
}

func NewHTTPResolver(url string) *HTTPResolver {
	return &HTTPResolver{
		Url: url,
		Client: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

func (h *HTTPResolver) Resolve(ctx context.Context, req *Request) (*Response, error) {
	body, err := sonic.Marshal(req)
	if err != nil {
		return nil, err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, h.Url, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Content-Type", "application/json")

	httpRes, err := h.Client.Do(httpReq)
	if err != nil {
		return nil, err
	}
	defer httpRes.Body.Close()

	if httpRes.StatusCode < 200 || httpRes.StatusCode >= 300 {
		io.Copy(io.Discard, httpRes.Body)
		return nil, fmt.Errorf("resolver returned status %d", httpRes.StatusCode)
	}

	data, err := io.ReadAll(httpRes.Body)
	if err != nil {
		return nil, err
	}
	result := EmptyResponse()
	if err := sonic.Unmarshal(data, result); err != nil {
		return nil, err
	}
	return result, nil
}
