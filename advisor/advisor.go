// Package advisor asks a Gemini model for a short commentary on a rendered
// risk report.
package advisor

import (
	"context"
	"fmt"
	"strings"

	"github.com/etnz/marketrisk/docs"
	"google.golang.org/genai"
)

const model = "gemini-2.5-pro"

// Analyst is a chat session with a risk analyst persona. Create one with
// NewAnalyst and open the session with Start before asking for commentary.
type Analyst struct {
	ModelName string
	Config    *genai.GenerateContentConfig
	chat      *genai.Chat
}

// NewAnalyst returns an analyst grounded on the methodology topic, so its
// commentary uses the same definitions as the report it reads.
func NewAnalyst() *Analyst {
	instruction := `You are a market risk analyst. The user hands you one markdown risk report
comparing two assets and three portfolios. Comment on it in a few short
paragraphs: the volatility regime of each asset, what the correlation does
to the blend, whether the delta-normal and historical VaR disagree and why
that matters, and one caveat worth acting on. Plain language. Do not restate
the tables. The methodology behind every figure in the report:

` + must(docs.GetTopic("methodology"))

	return &Analyst{
		ModelName: model,
		Config: &genai.GenerateContentConfig{
			SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: instruction}}},
		},
	}
}

// Start opens the chat session on the given client.
func (a *Analyst) Start(ctx context.Context, client *genai.Client) error {
	chat, err := client.Chats.Create(ctx, a.ModelName, a.Config, nil)
	if err != nil {
		return err
	}
	a.chat = chat
	return nil
}

// Comment sends the rendered report and returns the analyst's commentary.
// The session keeps context, so follow-up calls can refine it.
func (a *Analyst) Comment(ctx context.Context, report string) (string, error) {
	if a.chat == nil {
		return "", fmt.Errorf("analyst session not started")
	}
	resp, err := a.chat.Send(ctx, &genai.Part{Text: report})
	if err != nil {
		return "", err
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("no response from the analyst")
	}
	var b strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		b.WriteString(part.Text)
	}
	return b.String(), nil
}

func must[T any](v T, err error) T {
	if err != nil {
		panic(err)
	}
	return v
}
