package gpthandler

import (
	"context"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	gptmodels "ats-backend/models/api/gpt"
)

type fakeClient struct {
	prompt string
	text   string
	err    error
}

func (f *fakeClient) GenerateByPromptAndText(_ context.Context, prompt, text string) (string, error) {
	f.prompt = prompt
	f.text = text
	if f.err != nil {
		return "", f.err
	}
	return "generated", nil
}

func TestGenerateJobDescription(t *testing.T) {
	ctx := context.Background()

	t.Run("not configured", func(t *testing.T) {
		resp, hMsg, err := impl{}.GenerateJobDescription(ctx, "space", gptmodels.GenJobDescRequest{Text: "go developer"})
		require.NoError(t, err)
		assert.Equal(t, "description generation is not configured", hMsg)
		assert.Empty(t, resp.Description)
	})

	t.Run("generated", func(t *testing.T) {
		client := &fakeClient{}
		resp, hMsg, err := impl{client: client}.GenerateJobDescription(ctx, "space", gptmodels.GenJobDescRequest{
			Title: "Backend engineer",
			Text:  " go, postgres ",
		})
		require.NoError(t, err)
		assert.Empty(t, hMsg)
		assert.Equal(t, "generated", resp.Description)
		assert.Equal(t, jobDescriptionPrompt, client.prompt)
		assert.Contains(t, client.text, "Job title: Backend engineer.")
		assert.Contains(t, client.text, "notes: go, postgres")
	})

	t.Run("client failure", func(t *testing.T) {
		client := &fakeClient{err: errors.New("quota exceeded")}
		_, hMsg, err := impl{client: client}.GenerateJobDescription(ctx, "space", gptmodels.GenJobDescRequest{Text: "qa"})
		require.Error(t, err)
		assert.Empty(t, hMsg)
	})
}
