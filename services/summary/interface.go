package summary

import (
	"context"
	"fmt"
)

type Service interface {
	Summarize(ctx context.Context, transcript string) (string, error)
}

// Provider sends a single user prompt to a language model.
type Provider interface {
	Name() string
	Complete(ctx context.Context, prompt string) ([]ContentBlock, error)
}

type BlockKind uint8

const (
	BlockText BlockKind = iota
	BlockOther
)

// ContentBlock is one unit of a model reply. Text is only meaningful for BlockText;
// Type carries the provider's tag for anything else.
type ContentBlock struct {
	Kind BlockKind
	Text string
	Type string
}

func TextBlock(text string) ContentBlock {
	return ContentBlock{Kind: BlockText, Text: text, Type: "text"}
}

func OtherBlock(typ string) ContentBlock {
	return ContentBlock{Kind: BlockOther, Type: typ}
}

// FirstText returns the text of the first block, or "" when the reply is empty
// or starts with a non-text block.
func FirstText(blocks []ContentBlock) string {
	if len(blocks) == 0 {
		return ""
	}
	switch b := blocks[0]; b.Kind {
	case BlockText:
		return b.Text
	case BlockOther:
		return ""
	}
	return ""
}

// ProviderError is a failed call as reported by the provider.
type ProviderError struct {
	Provider   string
	StatusCode int
	Message    string
}

func (e *ProviderError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s: status %d: %s", e.Provider, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Provider, e.Message)
}
