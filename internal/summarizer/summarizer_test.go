package summarizer_test

import (
	"testing"

	"tubereport/internal/summarizer"
)

func TestSupportedModels(t *testing.T) {
	models := summarizer.SupportedModels()

	if len(models) != 3 {
		t.Fatalf("expected 3 models, got %d: %v", len(models), models)
	}

	for _, model := range models {
		if !summarizer.IsSupportedModel(model) {
			t.Errorf("model %q is listed but not reported as supported", model)
		}
	}

	// Mutating the returned slice must not affect the supported set.
	models[0] = "something-else"
	if !summarizer.IsSupportedModel(summarizer.ModelLlama3_8B) {
		t.Error("supported set changed after mutating the returned slice")
	}
}

func TestIsSupportedModel(t *testing.T) {
	tests := []struct {
		model string
		want  bool
	}{
		{summarizer.ModelLlama3_8B, true},
		{summarizer.ModelMixtral8x7B, true},
		{summarizer.ModelLlama3_70B, true},
		{"gpt-4", false},
		{"", false},
		{"LLAMA3-8B-8192", false},
	}

	for _, tt := range tests {
		if got := summarizer.IsSupportedModel(tt.model); got != tt.want {
			t.Errorf("IsSupportedModel(%q) = %v, want %v", tt.model, got, tt.want)
		}
	}
}
