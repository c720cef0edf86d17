package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, ProviderGemini, cfg.Provider)
	assert.NotEmpty(t, cfg.GetModel(TierStandard))
	assert.NotEmpty(t, cfg.GetModel(TierAdvanced))
}

func TestGetModel_FallsBackToStandard(t *testing.T) {
	cfg := &Config{
		Provider: ProviderGemini,
		Models: map[ModelTier]string{
			TierStandard: "gemini-2.5-flash",
		},
	}
	assert.Equal(t, "gemini-2.5-flash", cfg.GetModel(TierAdvanced))
}

func TestGetModel_NoModels(t *testing.T) {
	cfg := &Config{Provider: ProviderGemini, Models: map[ModelTier]string{}}
	assert.Empty(t, cfg.GetModel(TierStandard))
}

func TestWithModel_DoesNotMutateOriginal(t *testing.T) {
	cfg := DefaultConfig()
	original := cfg.GetModel(TierAdvanced)

	updated := cfg.WithModel(TierAdvanced, "gemini-custom")
	assert.Equal(t, "gemini-custom", updated.GetModel(TierAdvanced))
	assert.Equal(t, original, cfg.GetModel(TierAdvanced))
}
