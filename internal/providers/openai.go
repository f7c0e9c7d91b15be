package providers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/dshills/tonecheck/internal/redact"
	"github.com/tidwall/gjson"
	"go.uber.org/zap"
)

const (
	defaultOpenAIURL = "https://api.openai.com/v1/chat/completions"

	formatErrorResult = "Ошибка: неожиданный формат ответа"
	unknownAPIError   = "Unknown error"
)

// OpenAI implements the Classifier interface for OpenAI's chat-completion API.
type OpenAI struct {
	apiKey  string
	model   string
	baseURL string
	client  *http.Client
	log     *zap.Logger
}

// OpenAIOptions configures NewOpenAI.
type OpenAIOptions struct {
	APIKey  string
	Model   string
	BaseURL string
	// Timeout of zero leaves requests without a client-side deadline.
	Timeout time.Duration
	Logger  *zap.Logger
}

// NewOpenAI creates a new OpenAI classifier.
func NewOpenAI(opts OpenAIOptions) (*OpenAI, error) {
	if opts.APIKey == "" {
		return nil, fmt.Errorf("OpenAI API token is empty")
	}
	if opts.Model == "" {
		return nil, fmt.Errorf("OpenAI model is empty")
	}
	baseURL := opts.BaseURL
	if baseURL == "" {
		baseURL = defaultOpenAIURL
	}
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	return &OpenAI{
		apiKey:  opts.APIKey,
		model:   opts.Model,
		baseURL: baseURL,
		client:  &http.Client{Transport: http.DefaultTransport.(*http.Transport).Clone(), Timeout: opts.Timeout},
		log:     log,
	}, nil
}

func (o *OpenAI) Name() string { return "openai" }

// Close releases the pooled connections held by the classifier.
func (o *OpenAI) Close() {
	o.client.CloseIdleConnections()
}

// Classify asks the model whether comment is a positive assessment of the
// task. The model's answer is returned verbatim; failures come back as a
// human-readable error string.
func (o *OpenAI) Classify(ctx context.Context, taskTitle, comment string) string {
	body := openaiRequest{
		Model: o.model,
		Messages: []openaiMessage{
			{Role: "system", Content: SystemPrompt},
			{Role: "user", Content: UserPrompt(taskTitle, comment)},
		},
	}

	data, err := o.send(ctx, body)
	if err != nil {
		o.log.Error("Исключение при вызове OpenAI API", zap.String("task", taskTitle), o.redacted("error", err.Error()))
		return "Ошибка: " + err.Error()
	}

	if !gjson.ValidBytes(data) {
		err = errors.New("parsing response: body is not valid JSON")
		o.log.Error("Исключение при вызове OpenAI API", zap.String("task", taskTitle), o.redacted("error", err.Error()))
		return "Ошибка: " + err.Error()
	}

	if apiErr := gjson.GetBytes(data, "error"); apiErr.Exists() {
		o.log.Error("Ошибка OpenAI API", zap.String("task", taskTitle), o.redacted("error", apiErr.Raw))
		return "Ошибка анализа: " + apiErrorMessage(apiErr)
	}

	choices := gjson.GetBytes(data, "choices")
	if !choices.Exists() {
		o.log.Error("Неожиданный ответ от API", zap.String("task", taskTitle), o.redacted("body", string(data)))
		return formatErrorResult
	}

	content, err := firstChoiceContent(choices)
	if err != nil {
		o.log.Error("Исключение при вызове OpenAI API", zap.String("task", taskTitle), o.redacted("error", err.Error()))
		return "Ошибка: " + err.Error()
	}
	return content
}

// send posts the request and returns the raw response body regardless of
// the status code; error payloads are recognised by shape.
func (o *OpenAI) send(ctx context.Context, body openaiRequest) ([]byte, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("marshaling request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, "POST", o.baseURL, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+o.apiKey)

	httpResp, err := o.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("sending request: %w", err)
	}
	defer httpResp.Body.Close()

	respBody, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}
	return respBody, nil
}

// redacted builds a log field with the token and other secrets masked.
func (o *OpenAI) redacted(key, value string) zap.Field {
	return zap.String(key, redact.Known(value, o.apiKey))
}

// apiErrorMessage extracts error.message, accepting a bare string error too.
func apiErrorMessage(apiErr gjson.Result) string {
	if apiErr.Type == gjson.String && apiErr.Str != "" {
		return apiErr.Str
	}
	if msg := apiErr.Get("message"); apiErr.IsObject() && msg.Exists() {
		return msg.String()
	}
	return unknownAPIError
}

func firstChoiceContent(choices gjson.Result) (string, error) {
	if !choices.IsArray() {
		return "", fmt.Errorf("parsing choices: expected array, got %s", choices.Type)
	}
	first := choices.Get("0")
	if !first.Exists() {
		return "", errors.New("no choices in response")
	}
	content := first.Get("message.content")
	if !content.Exists() || content.Type == gjson.Null {
		return "", errors.New("parsing choices: missing message.content")
	}
	return content.String(), nil
}

type openaiRequest struct {
	Model    string          `json:"model"`
	Messages []openaiMessage `json:"messages"`
}

type openaiMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}
