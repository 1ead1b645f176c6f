package leadform

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
)

const genericFailure = "We couldn't submit your request. Please try again or call us directly."

// SubmitError is a rejected or failed submission. Message is safe to show in
// the form's error banner.
type SubmitError struct {
	Status  int
	Message string
	Err     error
}

func (e *SubmitError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("submit lead: %s: %v", e.Message, e.Err)
	}
	return fmt.Sprintf("submit lead: %d %s", e.Status, e.Message)
}

func (e *SubmitError) Unwrap() error {
	return e.Err
}

type Client struct {
	BaseURL string
	HTTP    *http.Client
}

type Receipt struct {
	ID string
}

type envelope struct {
	Success bool   `json:"success"`
	ID      string `json:"id"`
	Error   string `json:"error"`
}

// Submit validates the form and posts it once. Field problems are returned as
// FieldErrors without any network call. There are no retries; a cancelled ctx
// abandons the request.
func (c Client) Submit(ctx context.Context, f Form) (Receipt, error) {
	if errs := f.Validate(); errs != nil {
		return Receipt{}, errs
	}
	httpClient := c.HTTP
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 15 * time.Second}
	}

	b, err := json.Marshal(f)
	if err != nil {
		return Receipt{}, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, strings.TrimRight(c.BaseURL, "/")+"/api/leads", bytes.NewReader(b))
	if err != nil {
		return Receipt{}, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := httpClient.Do(req)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return Receipt{}, ctxErr
		}
		return Receipt{}, &SubmitError{Message: genericFailure, Err: err}
	}
	defer resp.Body.Close()

	var env envelope
	decodeErr := json.NewDecoder(resp.Body).Decode(&env)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 || !env.Success {
		msg := env.Error
		if msg == "" {
			msg = genericFailure
		}
		return Receipt{}, &SubmitError{Status: resp.StatusCode, Message: msg}
	}
	if decodeErr != nil {
		return Receipt{}, &SubmitError{Status: resp.StatusCode, Message: genericFailure, Err: decodeErr}
	}
	return Receipt{ID: env.ID}, nil
}
