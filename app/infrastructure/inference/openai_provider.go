// Package inference implements the translation provider against any
// OpenAI-compatible chat-completions endpoint.
package inference

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	openai "github.com/sashabaranov/go-openai"
	"resty.dev/v3"

	"polydoc.ai/translate-api-gateway/app/domain/common"
	inferenceDomain "polydoc.ai/translate-api-gateway/app/domain/inference"
	"polydoc.ai/translate-api-gateway/app/utils/httpclients"
	"polydoc.ai/translate-api-gateway/config/environment_variables"
)

const (
	dataPrefix = "data: "
	doneMarker = "[DONE]"
)

// translationInstruction pins the provider to the relay's contract: line
// structure and formatting markers must survive the round trip so the
// document renderer downstream can reflow the result.
const translationInstruction = "You are a document translator. Translate the user's text into %s. " +
	"Preserve every line break, blank line and document formatting marker exactly as in the input. " +
	"Output only the translation."

var restyClient *resty.Client

// Init builds the shared upstream client. Called once from main.
func Init() {
	restyClient = httpclients.NewClient("TranslationProviderClient")
}

// OpenAIProvider streams chat completions from the configured endpoint using
// the per-session API key.
type OpenAIProvider struct{}

func NewOpenAIProvider() *OpenAIProvider {
	return &OpenAIProvider{}
}

func (p *OpenAIProvider) StreamTranslation(ctx context.Context, apiKey string, content string, targetLanguage string) (inferenceDomain.FragmentStream, error) {
	envs := environment_variables.EnvironmentVariables
	request := openai.ChatCompletionRequest{
		Model:  envs.PROVIDER_MODEL,
		Stream: true,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleSystem,
				Content: fmt.Sprintf(translationInstruction, targetLanguage),
			},
			{
				Role:    openai.ChatMessageRoleUser,
				Content: content,
			},
		},
	}

	resp, err := restyClient.R().
		SetContext(ctx).
		SetHeader("Authorization", "Bearer "+apiKey).
		SetHeader("Content-Type", "application/json").
		SetBody(request).
		SetDoNotParseResponse(true).
		Post(envs.PROVIDER_BASE_URL + "/chat/completions")
	if err != nil {
		return nil, err
	}
	if resp.StatusCode() != 200 {
		body, _ := io.ReadAll(io.LimitReader(resp.RawResponse.Body, 4096))
		resp.RawResponse.Body.Close()
		return nil, common.NewError(
			"9b4e72d0-1c5f-48a3-b6e9-d207f8a41c36",
			fmt.Sprintf("provider returned status %d: %s", resp.StatusCode(), strings.TrimSpace(string(body))),
		)
	}

	return &SSEFragmentStream{
		body:    resp.RawResponse.Body,
		scanner: bufio.NewScanner(resp.RawResponse.Body),
	}, nil
}

// SSEFragmentStream decodes the provider's `data:` lines into plain text
// fragments, surfacing io.EOF on the [DONE] marker.
type SSEFragmentStream struct {
	body    io.ReadCloser
	scanner *bufio.Scanner
}

func (s *SSEFragmentStream) Recv() (string, error) {
	for s.scanner.Scan() {
		line := s.scanner.Text()
		data, found := strings.CutPrefix(line, dataPrefix)
		if !found {
			continue
		}
		if data == doneMarker {
			return "", io.EOF
		}
		var chunk openai.ChatCompletionStreamResponse
		if err := json.Unmarshal([]byte(data), &chunk); err != nil {
			return "", common.WrapError("5e0d83f1-b7a4-4c92-a1d6-3f84c29e07b5", err)
		}
		if len(chunk.Choices) == 0 {
			continue
		}
		if fragment := chunk.Choices[0].Delta.Content; fragment != "" {
			return fragment, nil
		}
	}
	if err := s.scanner.Err(); err != nil {
		return "", err
	}
	// Stream ended without the [DONE] marker; treat as normal completion.
	return "", io.EOF
}

func (s *SSEFragmentStream) Close() error {
	return s.body.Close()
}
