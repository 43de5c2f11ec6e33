package main

import (
	"fmt"
	"io"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/notesapp/notes-backend/internal/auth"
)

// newClient builds the resty client. Without --key the local development key
// is sent, matching a server started with no configured API keys.
func newClient() *resty.Client {
	key := keyFlag
	if key == "" {
		key = auth.LocalDevAPIKey
	}
	return resty.New().
		SetBaseURL(apiFlag).
		SetAuthToken(key).
		SetTimeout(30 * time.Second)
}

// printResponse writes the body and surfaces non-2xx statuses as errors.
func printResponse(out io.Writer, resp *resty.Response, err error) error {
	if err != nil {
		return err
	}
	if resp.IsError() {
		return fmt.Errorf("http %d: %s", resp.StatusCode(), resp.String())
	}
	_, _ = fmt.Fprintln(out, resp.String())
	return nil
}
