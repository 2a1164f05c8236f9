package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/petfriends-qa/petfriends-api-tests/pkg/petfriends"
)

type statusError struct {
	status int
	op     string
}

func (e *statusError) Error() string {
	return fmt.Sprintf("%s: service answered %d %s", e.op, e.status, http.StatusText(e.status))
}

var (
	okStatus  = color.New(color.FgGreen, color.Bold).SprintFunc()
	badStatus = color.New(color.FgRed, color.Bold).SprintFunc()
)

// print writes the status line to stderr and the body to stdout, and turns a
// non-200 status into a statusError so the process exits non-zero.
func (a *app) print(cmd *cobra.Command, res *petfriends.Result) error {
	line := fmt.Sprintf("HTTP %d %s", res.Status, http.StatusText(res.Status))
	if res.OK() {
		fmt.Fprintln(cmd.ErrOrStderr(), okStatus(line))
	} else {
		fmt.Fprintln(cmd.ErrOrStderr(), badStatus(line), res.Message())
	}

	body, err := formatBody(res, a.cfg.OutputFormat)
	if err != nil {
		return err
	}
	if len(body) > 0 {
		fmt.Fprintln(cmd.OutOrStdout(), string(body))
	}

	if !res.OK() {
		return &statusError{status: res.Status, op: cmd.Name()}
	}
	return nil
}

func formatBody(res *petfriends.Result, format string) ([]byte, error) {
	if !res.IsJSON() {
		return bytes.TrimSpace(res.Raw), nil
	}

	switch format {
	case "yaml":
		out, err := yaml.Marshal(res.Data)
		if err != nil {
			return nil, fmt.Errorf("encode yaml: %w", err)
		}
		return bytes.TrimSpace(out), nil
	default:
		out, err := json.MarshalIndent(res.Data, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("encode json: %w", err)
		}
		return out, nil
	}
}
