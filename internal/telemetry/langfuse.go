package telemetry

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
)

// LangfuseClient ships generation records to the Langfuse ingestion API.
// With no credentials configured it is a silent no-op, mirroring a tracing
// dashboard that simply is not wired up in the environment.
type LangfuseClient struct {
	host       string
	publicKey  string
	secretKey  string
	httpClient *http.Client
}

// NewLangfuseClient constructs a client for the given project credentials.
func NewLangfuseClient(host, publicKey, secretKey string) *LangfuseClient {
	if host == "" {
		host = "https://cloud.langfuse.com"
	}
	return &LangfuseClient{
		host:      host,
		publicKey: publicKey,
		secretKey: secretKey,
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

// Enabled reports whether credentials are configured.
func (c *LangfuseClient) Enabled() bool {
	return c != nil && c.publicKey != "" && c.secretKey != ""
}

type ingestionEvent struct {
	ID        string    `json:"id"`
	Type      string    `json:"type"`
	Timestamp time.Time `json:"timestamp"`
	Body      any       `json:"body"`
}

type ingestionBatch struct {
	Batch []ingestionEvent `json:"batch"`
}

type generationBody struct {
	Name     string            `json:"name"`
	Model    string            `json:"model"`
	Input    string            `json:"input"`
	Output   string            `json:"output"`
	Usage    map[string]int    `json:"usage,omitempty"`
	Metadata map[string]string `json:"metadata,omitempty"`
}

// Ship posts one generation record to the ingestion endpoint.
func (c *LangfuseClient) Ship(ctx context.Context, gen Generation) error {
	if !c.Enabled() {
		return nil
	}

	body := generationBody{
		Name:     gen.Name,
		Model:    gen.Model,
		Input:    gen.Input,
		Output:   gen.Output,
		Metadata: gen.Metadata,
	}
	if gen.Usage.TotalTokens > 0 {
		body.Usage = map[string]int{
			"input":  gen.Usage.PromptTokens,
			"output": gen.Usage.CompletionTokens,
			"total":  gen.Usage.TotalTokens,
		}
	}
	payload, err := json.Marshal(ingestionBatch{Batch: []ingestionEvent{{
		ID:        uuid.NewString(),
		Type:      "generation-create",
		Timestamp: time.Now().UTC(),
		Body:      body,
	}}})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.host+"/api/public/ingestion", bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.SetBasicAuth(c.publicKey, c.secretKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("langfuse: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()
	if resp.StatusCode >= 400 {
		return fmt.Errorf("langfuse: ingestion failed with status %d", resp.StatusCode)
	}
	return nil
}
