// internal/ai/gemini.go
package ai

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"yanindayim/internal/config"

	"google.golang.org/genai"
)

// geminiGateway talks to the Gemini API. Every call runs under its own
// timeout derived from config so a slow model never holds a request open
// past the configured bound.
type geminiGateway struct {
	client       *genai.Client
	model        string
	timeout      time.Duration
	generatedDir string
	logger       *slog.Logger
}

// NewGateway builds the Gemini-backed Gateway. With no API key configured it
// returns a disabled gateway whose calls all fail with ErrUnavailable, so
// callers exercise their fallbacks instead of crashing at startup.
func NewGateway(ctx context.Context, cfg config.AIConfig, logger *slog.Logger) (Gateway, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.APIKey == "" {
		logger.Warn("GOOGLE_API_KEY not set, AI features run in fallback mode")
		return &disabledGateway{}, nil
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("ai.NewGateway: %w", err)
	}
	return &geminiGateway{
		client:       client,
		model:        cfg.TextModel,
		timeout:      cfg.Timeout,
		generatedDir: cfg.GeneratedDir,
		logger:       logger,
	}, nil
}

func (g *geminiGateway) generate(ctx context.Context, prompt string, jsonOutput bool) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	var genCfg *genai.GenerateContentConfig
	if jsonOutput {
		genCfg = &genai.GenerateContentConfig{ResponseMIMEType: "application/json"}
	}
	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), genCfg)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	text := strings.TrimSpace(resp.Text())
	if text == "" {
		return "", fmt.Errorf("%w: empty response", ErrUnavailable)
	}
	return text, nil
}

func (g *geminiGateway) GenerateGuide(ctx context.Context, prompt string) (*GeneratedGuide, error) {
	text, err := g.generate(ctx, guideSystemInstruction+prompt, true)
	if err != nil {
		g.logger.Error("Guide generation failed", "error", err)
		return nil, err
	}

	var guide GeneratedGuide
	if err := json.Unmarshal([]byte(StripJSONFence(text)), &guide); err != nil {
		g.logger.Error("Guide generation returned unparseable JSON", "error", err)
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	if guide.Title == "" || len(guide.Steps) == 0 {
		return nil, fmt.Errorf("%w: incomplete guide", ErrUnavailable)
	}
	normalizeImages(&guide)
	if len(guide.HelpOptions) == 0 {
		guide.HelpOptions = append([]string(nil), defaultHelpOptions...)
	}
	return &guide, nil
}

func (g *geminiGateway) HelpResponse(ctx context.Context, req HelpRequest) (string, error) {
	text, err := g.generate(ctx, buildHelpPrompt(req), false)
	if err != nil {
		g.logger.Error("Help response generation failed", "error", err)
		return "", err
	}
	return text, nil
}

func (g *geminiGateway) FraudScenario(ctx context.Context) (*FraudScenarioResult, error) {
	text, err := g.generate(ctx, fraudScenarioPrompt, true)
	if err != nil {
		g.logger.Error("Fraud scenario generation failed", "error", err)
		return nil, err
	}

	var result FraudScenarioResult
	if err := json.Unmarshal([]byte(StripJSONFence(text)), &result); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	if result.Scenario == "" || result.Explanation == "" {
		return nil, fmt.Errorf("%w: incomplete scenario", ErrUnavailable)
	}
	if result.CorrectAction != "hangup" && result.CorrectAction != "believe" {
		result.CorrectAction = "hangup"
	}
	return &result, nil
}

// stepImageFilename derives the on-disk name from the step content, so the
// same step always maps to the same file and edits produce a fresh one.
func stepImageFilename(req StepImageRequest) string {
	sum := sha256.Sum256([]byte(req.StepTitle + "\x00" + req.StepDescription))
	return "step_" + hex.EncodeToString(sum[:]) + ".svg"
}

// StepImage generates and stores an SVG illustration, content-addressed so
// repeated requests for the same step reuse the cached file.
func (g *geminiGateway) StepImage(ctx context.Context, req StepImageRequest) (string, error) {
	if err := os.MkdirAll(g.generatedDir, 0o755); err != nil {
		return "", fmt.Errorf("ai.StepImage: %w", err)
	}

	filename := stepImageFilename(req)
	filepathOnDisk := filepath.Join(g.generatedDir, filename)
	staticURL := "/static/generated/" + filename

	if _, err := os.Stat(filepathOnDisk); err == nil {
		return staticURL, nil
	}

	text, err := g.generate(ctx, buildStepImagePrompt(req), false)
	if err != nil {
		g.logger.Error("Step image generation failed", "step", req.StepTitle, "error", err)
		return "", err
	}

	svg := ExtractSVG(text)
	if svg == "" {
		g.logger.Error("Step image generation returned no SVG", "step", req.StepTitle)
		return "", fmt.Errorf("%w: no svg in response", ErrUnavailable)
	}

	if err := os.WriteFile(filepathOnDisk, []byte(svg), 0o644); err != nil {
		return "", fmt.Errorf("ai.StepImage: %w", err)
	}
	g.logger.Info("Step image generated", "url", staticURL, "bytes", len(svg))
	return staticURL, nil
}

// disabledGateway stands in when no API key is configured.
type disabledGateway struct{}

func (d *disabledGateway) GenerateGuide(ctx context.Context, prompt string) (*GeneratedGuide, error) {
	return nil, ErrUnavailable
}

func (d *disabledGateway) HelpResponse(ctx context.Context, req HelpRequest) (string, error) {
	return "", ErrUnavailable
}

func (d *disabledGateway) FraudScenario(ctx context.Context) (*FraudScenarioResult, error) {
	return nil, ErrUnavailable
}

func (d *disabledGateway) StepImage(ctx context.Context, req StepImageRequest) (string, error) {
	return "", ErrUnavailable
}
