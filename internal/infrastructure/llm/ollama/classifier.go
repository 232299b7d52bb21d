package ollama

import (
	"context"

	"github.com/jmittelstaedt/faxsort/internal/classify"
	"github.com/jmittelstaedt/faxsort/internal/core/domain"
)

// Classifier implements ports.DocumentAnalyzer: one chat call, then the
// multi-strategy response parser, then normalization with the identity
// filter.
type Classifier struct {
	client      *Client
	ownIdentity string
}

func NewClassifier(client *Client, ownIdentity string) *Classifier {
	return &Classifier{client: client, ownIdentity: ownIdentity}
}

func (c *Classifier) Analyze(ctx context.Context, pngImage []byte) (domain.Classification, error) {
	raw, err := c.client.AnalyzeImage(ctx, pngImage, c.ownIdentity)
	if err != nil {
		return domain.Classification{}, domain.WrapError(domain.ErrAnalysis, "vision analysis", err)
	}

	fields, err := classify.Parse(raw)
	if err != nil {
		return domain.Classification{}, domain.WrapError(domain.ErrAnalysis, "parse response", err)
	}

	return classify.Normalize(fields, c.ownIdentity), nil
}
