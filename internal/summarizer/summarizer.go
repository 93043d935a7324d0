package summarizer

import (
	"context"
	"slices"
)

// Supported model identifiers. The set is closed: a run uses exactly one of
// these, chosen by the caller and passed through unchanged to every request.
const (
	ModelLlama3_8B   = "llama3-8b-8192"
	ModelMixtral8x7B = "mixtral-8x7b-32768"
	ModelLlama3_70B  = "llama3-70b-8192"
)

var supportedModels = []string{
	ModelLlama3_8B,
	ModelMixtral8x7B,
	ModelLlama3_70B,
}

// SupportedModels returns the closed set of model identifiers.
func SupportedModels() []string {
	return slices.Clone(supportedModels)
}

// IsSupportedModel reports whether model belongs to the supported set.
func IsSupportedModel(model string) bool {
	return slices.Contains(supportedModels, model)
}

// Completer issues one completion round-trip to a text-generation model.
type Completer interface {
	Complete(ctx context.Context, model string, prompt string) (string, error)
}
