// Package ai is the boundary to the generative-AI collaborator. Every
// operation has a typed request/response pair, a bounded timeout and a
// defined static fallback; callers never see a raw provider error payload.
package ai

import (
	"context"
	"errors"
)

// ErrUnavailable means the gateway could not produce a usable answer: no API
// key, transport failure, or output that failed tolerant parsing. Callers
// degrade to their documented fallback.
var ErrUnavailable = errors.New("ai gateway unavailable")

// GeneratedStep is one step of an AI-drafted guide.
type GeneratedStep struct {
	StepNumber  int    `json:"step_number"`
	Title       string `json:"title"`
	Description string `json:"description"`
	ImageURL    string `json:"image_url"`
}

// GeneratedGuide is the guide-generation response shape.
type GeneratedGuide struct {
	Title       string          `json:"title"`
	Steps       []GeneratedStep `json:"steps"`
	HelpOptions []string        `json:"help_options"`
}

// HelpRequest carries everything the model needs to answer a stuck user.
// FailedAttempts lists guidance the user already tried without success; the
// prompt instructs the model not to repeat them.
type HelpRequest struct {
	Query          string
	GuideContext   string
	FailedAttempts []string
	AllSteps       []GeneratedStep
}

// FraudScenarioResult is the fraud-quiz generation response shape.
type FraudScenarioResult struct {
	Scenario      string `json:"scenario"`
	CorrectAction string `json:"correct_action"`
	Explanation   string `json:"explanation"`
}

// StepImageRequest asks for an illustrative SVG for one guide step.
type StepImageRequest struct {
	GuideTitle      string
	StepTitle       string
	StepDescription string
}

// Gateway is the AI collaborator seen by the services.
type Gateway interface {
	GenerateGuide(ctx context.Context, prompt string) (*GeneratedGuide, error)
	HelpResponse(ctx context.Context, req HelpRequest) (string, error)
	FraudScenario(ctx context.Context) (*FraudScenarioResult, error)
	// StepImage returns the static URL of the stored SVG, or an error when
	// generation failed; the caller keeps its placeholder in that case.
	StepImage(ctx context.Context, req StepImageRequest) (string, error)
}
