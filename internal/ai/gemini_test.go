// internal/ai/gemini_test.go
package ai

import (
	"context"
	"strings"
	"testing"
	"time"

	"yanindayim/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStepImageFilename(t *testing.T) {
	a := stepImageFilename(StepImageRequest{StepTitle: "Kartı takın", StepDescription: "Kartı cihaza takın"})
	b := stepImageFilename(StepImageRequest{StepTitle: "Kartı takın", StepDescription: "Kartı cihaza takın"})
	assert.Equal(t, a, b, "same step content must map to the same cached file")

	edited := stepImageFilename(StepImageRequest{StepTitle: "Kartı takın", StepDescription: "Kartı yuvaya takın"})
	assert.NotEqual(t, a, edited, "editing a step must produce a new file")

	// Title and description hash as separate fields, not one joined string.
	shifted := stepImageFilename(StepImageRequest{StepTitle: "Kartı takınKartı", StepDescription: " cihaza takın"})
	assert.NotEqual(t, a, shifted)

	assert.True(t, strings.HasPrefix(a, "step_"))
	assert.True(t, strings.HasSuffix(a, ".svg"))
	assert.Len(t, a, len("step_")+64+len(".svg"))
}

func TestNewGatewayWithoutAPIKeyIsDisabled(t *testing.T) {
	gw, err := NewGateway(context.Background(), config.AIConfig{
		TextModel:    "gemini-flash-latest",
		Timeout:      time.Second,
		GeneratedDir: t.TempDir(),
	}, nil)
	require.NoError(t, err, "a missing key must not fail startup, only disable the gateway")

	ctx := context.Background()

	_, err = gw.GenerateGuide(ctx, "Fatura Ödeme")
	assert.ErrorIs(t, err, ErrUnavailable)

	_, err = gw.HelpResponse(ctx, HelpRequest{Query: "yardım"})
	assert.ErrorIs(t, err, ErrUnavailable)

	_, err = gw.FraudScenario(ctx)
	assert.ErrorIs(t, err, ErrUnavailable)

	_, err = gw.StepImage(ctx, StepImageRequest{GuideTitle: "Rehber", StepTitle: "Adım"})
	assert.ErrorIs(t, err, ErrUnavailable)
}
