// ABOUTME: Tests for the health command
// ABOUTME: Verifies health check output formatting and exit codes

package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/onestepgreener/greener-cli/internal/client"
)

func TestFormatHealthHuman(t *testing.T) {
	resp := &client.HealthResponse{
		Status:  "healthy",
		Message: "ok",
	}

	output := formatHealthHuman("http://localhost:5000", resp)

	if !strings.Contains(output, "http://localhost:5000") {
		t.Error("expected output to contain backend URL")
	}
	if !strings.Contains(output, "Status:") {
		t.Error("expected output to contain Status label")
	}
	if !strings.Contains(output, "healthy") {
		t.Error("expected output to contain healthy status")
	}
}

func TestFormatHealthJSON(t *testing.T) {
	resp := &client.HealthResponse{Status: "healthy"}

	output := formatHealthJSON("http://localhost:5000", resp)

	var parsed map[string]interface{}
	if err := json.Unmarshal([]byte(output), &parsed); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if parsed["backend"] != "http://localhost:5000" {
		t.Errorf("expected backend URL in JSON, got %v", parsed["backend"])
	}
	if parsed["status"] != "healthy" {
		t.Errorf("expected status in JSON, got %v", parsed["status"])
	}
}

func TestHealthCommand_Success(t *testing.T) {
	e, _ := newTestEnv(t)

	var buf bytes.Buffer
	exitCode := runHealth(context.Background(), &buf, e.api)

	if exitCode != 0 {
		t.Errorf("expected exit code 0, got %d", exitCode)
	}
	if !strings.Contains(buf.String(), "healthy") {
		t.Errorf("expected healthy in output, got %q", buf.String())
	}
}

func TestHealthCommand_ConnectionError(t *testing.T) {
	c := client.New("http://localhost:99999", client.WithTimeout(time.Second))

	var buf bytes.Buffer
	exitCode := runHealth(context.Background(), &buf, c)

	if exitCode != 2 {
		t.Errorf("expected exit code 2, got %d", exitCode)
	}
	if !strings.Contains(buf.String(), "Error:") {
		t.Error("expected error message in output")
	}
}
