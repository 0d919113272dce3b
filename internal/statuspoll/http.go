package statuspoll

import (
	"bytes"
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/samqfs/samqfsui/internal/protocol"
)

const maxSummaryBytes = 1 << 20

// HTTPFetcher reads the XML summary document from a status endpoint.
type HTTPFetcher struct {
	Client *http.Client
	URL    string
}

func NewHTTPFetcher(url string) *HTTPFetcher {
	return &HTTPFetcher{Client: &http.Client{Timeout: 30 * time.Second}, URL: url}
}

func (f *HTTPFetcher) Fetch(ctx context.Context) (protocol.HostStatusSummary, error) {
	client := f.Client
	if client == nil {
		client = http.DefaultClient
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.URL, nil)
	if err != nil {
		return protocol.HostStatusSummary{}, fmt.Errorf("create status request: %w", err)
	}
	req.Header.Set("Accept", "application/xml")

	resp, err := client.Do(req)
	if err != nil {
		return protocol.HostStatusSummary{}, fmt.Errorf("send status request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 4*1024))
		return protocol.HostStatusSummary{}, fmt.Errorf("status rejected: status=%d body=%s", resp.StatusCode, bytes.TrimSpace(respBody))
	}

	var sum protocol.HostStatusSummary
	if err := xml.NewDecoder(io.LimitReader(resp.Body, maxSummaryBytes)).Decode(&sum); err != nil {
		return protocol.HostStatusSummary{}, fmt.Errorf("decode status summary: %w", err)
	}
	return sum, nil
}
