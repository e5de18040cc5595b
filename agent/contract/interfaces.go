package contract

import "context"

// IntentClassifier returns the model's raw answer; callers normalise it
// with ParseIntent.
type IntentClassifier interface {
	Classify(ctx context.Context, req ClassifyRequest) (string, error)
}

type ToolSelector interface {
	Select(ctx context.Context, req ToolSelectionRequest) (ToolCallProposal, error)
}

type Registry interface {
	Classifier() IntentClassifier
	AccountInfo() ToolSelector
	Transaction() ToolSelector
}
