// Package querydeckctl implements the one-shot command line client:
// service checks plus an ask command that runs one question through
// the full translate/execute/render pipeline and prints the answer.
package querydeckctl

import (
	"bytes"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/querydeck/querydeck/internal/conversation"
	"github.com/querydeck/querydeck/internal/execute"
	"github.com/querydeck/querydeck/internal/translate"
	"github.com/querydeck/querydeck/internal/view"
)

type Options struct {
	BaseURL    string
	APIKey     string
	Timeout    time.Duration
	HTTPClient *http.Client
	Stdout     io.Writer
	Stderr     io.Writer
}

func Run(ctx context.Context, args []string, defaults Options) int {
	stdout := defaults.Stdout
	if stdout == nil {
		stdout = io.Discard
	}
	stderr := defaults.Stderr
	if stderr == nil {
		stderr = io.Discard
	}

	fs := flag.NewFlagSet("querydeckctl", flag.ContinueOnError)
	fs.SetOutput(stderr)

	baseURL := fs.String("base-url", firstNonEmpty(defaults.BaseURL, "http://localhost:8080"), "QueryDeck API base URL")
	apiKey := fs.String("api-key", defaults.APIKey, "API key for authenticated requests")
	timeout := fs.Duration("timeout", durationOr(defaults.Timeout, 60*time.Second), "HTTP timeout (e.g. 30s)")

	if err := fs.Parse(args); err != nil {
		return 2
	}
	if fs.NArg() < 1 {
		writeUsage(stderr)
		return 2
	}

	client := defaults.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: *timeout}
	}

	command := strings.TrimSpace(fs.Arg(0))
	switch command {
	case "health":
		return runGet(ctx, client, *baseURL, *apiKey, "/v1/health", stdout, stderr)
	case "ready":
		return runGet(ctx, client, *baseURL, *apiKey, "/v1/ready", stdout, stderr)
	case "ping":
		return runGet(ctx, client, *baseURL, *apiKey, "/api/ping", stdout, stderr)
	case "ask":
		question := strings.TrimSpace(strings.Join(fs.Args()[1:], " "))
		if question == "" {
			_, _ = fmt.Fprintln(stderr, "ask requires a question")
			return 2
		}
		return runAsk(ctx, *baseURL, *apiKey, *timeout, question, stdout, stderr)
	default:
		_, _ = fmt.Fprintf(stderr, "unknown command %q\n\n", command)
		writeUsage(stderr)
		return 2
	}
}

// runAsk submits one question through the conversation pipeline and
// prints the rendered transcript entry.
func runAsk(ctx context.Context, baseURL, apiKey string, timeout time.Duration, question string, stdout, stderr io.Writer) int {
	translator, err := translate.NewClient(baseURL, timeout)
	if err != nil {
		_, _ = fmt.Fprintf(stderr, "translate client: %v\n", err)
		return 1
	}
	translator.APIKey = apiKey
	executor, err := execute.NewClient(baseURL, timeout)
	if err != nil {
		_, _ = fmt.Fprintf(stderr, "execute client: %v\n", err)
		return 1
	}
	executor.APIKey = apiKey

	conv := conversation.New(translator, executor, nil)
	if err := conv.Submit(ctx, question); err != nil {
		_, _ = fmt.Fprintf(stderr, "submit failed: %v\n", err)
		return 1
	}

	entries := conv.Entries()
	if len(entries) < 2 {
		_, _ = fmt.Fprintln(stdout, "no answer")
		return 0
	}
	answer := entries[len(entries)-1]
	if answer.Err != "" {
		_, _ = fmt.Fprintln(stderr, answer.Err)
		return 1
	}
	_, _ = fmt.Fprintln(stdout, view.RenderResult(answer.Result, 100))
	return 0
}

func runGet(ctx context.Context, client *http.Client, baseURL, apiKey, path string, stdout, stderr io.Writer) int {
	endpoint := strings.TrimRight(baseURL, "/") + path
	code, responseBody, err := doRequest(ctx, client, http.MethodGet, endpoint, apiKey)
	if err != nil {
		_, _ = fmt.Fprintf(stderr, "request failed: %v\n", err)
		return 1
	}

	if code >= 400 {
		_, _ = fmt.Fprintf(stderr, "http %d: %s\n", code, strings.TrimSpace(string(responseBody)))
		return 1
	}

	if pretty, ok := prettyJSON(responseBody); ok {
		_, _ = fmt.Fprintln(stdout, pretty)
		return 0
	}
	if len(responseBody) > 0 {
		_, _ = fmt.Fprintln(stdout, string(responseBody))
	}
	return 0
}

func doRequest(ctx context.Context, client *http.Client, method, url, apiKey string) (int, []byte, error) {
	req, err := http.NewRequestWithContext(ctx, method, url, nil)
	if err != nil {
		return 0, nil, err
	}
	req.Header.Set("Accept", "application/json")
	if strings.TrimSpace(apiKey) != "" {
		req.Header.Set("X-API-Key", strings.TrimSpace(apiKey))
	}

	resp, err := client.Do(req)
	if err != nil {
		return 0, nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, nil, err
	}
	return resp.StatusCode, body, nil
}

func prettyJSON(raw []byte) (string, bool) {
	if len(bytes.TrimSpace(raw)) == 0 {
		return "", false
	}
	var anyValue any
	if err := json.Unmarshal(raw, &anyValue); err != nil {
		return "", false
	}
	formatted, err := json.MarshalIndent(anyValue, "", "  ")
	if err != nil {
		return "", false
	}
	return string(formatted), true
}

func writeUsage(w io.Writer) {
	_, _ = fmt.Fprintln(w, "usage: querydeckctl [flags] <command>")
	_, _ = fmt.Fprintln(w, "")
	_, _ = fmt.Fprintln(w, "commands:")
	_, _ = fmt.Fprintln(w, "  health           GET /v1/health")
	_, _ = fmt.Fprintln(w, "  ready            GET /v1/ready")
	_, _ = fmt.Fprintln(w, "  ping             GET /api/ping")
	_, _ = fmt.Fprintln(w, "  ask <question>   translate and run one question, print the answer")
}

func firstNonEmpty(a, b string) string {
	if strings.TrimSpace(a) != "" {
		return strings.TrimSpace(a)
	}
	return b
}

func durationOr(v, fallback time.Duration) time.Duration {
	if v > 0 {
		return v
	}
	return fallback
}
