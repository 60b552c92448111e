package source

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/gofiber/fiber/v2"
)

// ErrNoData means a source answered but produced no usable records.
var ErrNoData = errors.New("source returned no data")

// Fetcher retrieves the raw delimited text of the roster.
type Fetcher interface {
	Fetch(ctx context.Context) (string, error)
}

// SheetURL builds the CSV export URL of a Google Sheets range.
func SheetURL(spreadsheetID, sheet, cellRange string) string {
	q := url.Values{}
	q.Set("tqx", "out:csv")
	q.Set("sheet", sheet)
	q.Set("range", cellRange)
	return "https://docs.google.com/spreadsheets/d/" + url.PathEscape(spreadsheetID) + "/gviz/tq?" + q.Encode()
}

// SheetFetcher downloads a published sheet as CSV with fiber's HTTP client.
type SheetFetcher struct {
	URL     string
	Timeout time.Duration
}

// Fetch downloads the sheet. The request is bounded by Timeout and by the
// deadline of ctx, whichever is sooner, and returns ctx.Err() as soon as
// ctx is done.
func (f *SheetFetcher) Fetch(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	timeout := f.Timeout
	if deadline, ok := ctx.Deadline(); ok {
		left := time.Until(deadline)
		if left <= 0 {
			return "", context.DeadlineExceeded
		}
		if timeout <= 0 || left < timeout {
			timeout = left
		}
	}

	agent := fiber.Get(f.URL)
	if timeout > 0 {
		agent.Timeout(timeout)
	}
	if err := agent.Parse(); err != nil {
		return "", fmt.Errorf("invalid sheet URL: %w", err)
	}

	type response struct {
		code int
		body string
		errs []error
	}
	done := make(chan response, 1)
	go func() {
		code, body, errs := agent.String()
		done <- response{code, body, errs}
	}()

	var resp response
	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case resp = <-done:
	}

	if len(resp.errs) > 0 {
		return "", fmt.Errorf("failed to fetch sheet: %w", errors.Join(resp.errs...))
	}
	if resp.code != fiber.StatusOK {
		return "", fmt.Errorf("failed to fetch sheet: HTTP %d", resp.code)
	}
	return resp.body, nil
}
