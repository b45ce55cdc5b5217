package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"
)

const (
	DEFAULT_ASSISTANT_MODEL = "gemini-2.5-flash"
	assistantBaseURL        = "https://generativelanguage.googleapis.com"
	assistantTimeout        = 30 * time.Second
)

// FallbackQuote возвращается вместо ошибки, если генерация цитаты не удалась
var FallbackQuote = Quote{
	Text:   "The best way to predict the future is to invent it.",
	Author: "Alan Kay",
}

// FallbackTodoSuggestion возвращается при сбое генерации подсказки задачи
const FallbackTodoSuggestion = "Review the latest forum threads"

type Quote struct {
	Text   string `json:"text"`
	Author string `json:"author"`
}

type PostDraft struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// GenerationError - сбой генерации черновика поста. Доходит до вызывающего
// кода как есть: UI обязан показать ошибку и не трогать поля черновика.
type GenerationError struct {
	Op  string
	Err error
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("assistant %s failed: %v", e.Op, e.Err)
}

func (e *GenerationError) Unwrap() error {
	return e.Err
}

// AssistantService - тонкая обертка над generative-text API. Сервис никогда
// не пишет в сторы напрямую: его результаты только предлагаются пользователю.
type AssistantService struct {
	apiKey  string
	model   string
	baseURL string
	client  *http.Client
}

func NewAssistantService(apiKey, model string) *AssistantService {
	if model == "" {
		model = DEFAULT_ASSISTANT_MODEL
	}
	return &AssistantService{
		apiKey:  apiKey,
		model:   model,
		baseURL: assistantBaseURL,
		client:  &http.Client{Timeout: assistantTimeout},
	}
}

// SetBaseURL подменяет адрес API (для тестов)
func (a *AssistantService) SetBaseURL(u string) {
	a.baseURL = strings.TrimRight(u, "/")
}

// GeneratePostContent генерирует черновик поста по теме.
// Любой сбой апстрима или непарсибельный ответ - GenerationError.
func (a *AssistantService) GeneratePostContent(ctx context.Context, topic string) (PostDraft, error) {
	prompt := fmt.Sprintf(`Write a short, engaging forum post about: %q.
Return the response in JSON format with strictly two keys: "title" (a catchy title) and "content" (the body text, around 100 words).
Do not include markdown formatting.`, topic)

	text, err := a.generate(ctx, prompt)
	if err != nil {
		return PostDraft{}, &GenerationError{Op: "generate post", Err: err}
	}

	var draft PostDraft
	if err := json.Unmarshal([]byte(stripJSONFence(text)), &draft); err != nil {
		return PostDraft{}, &GenerationError{Op: "generate post", Err: fmt.Errorf("unparsable response: %w", err)}
	}
	if draft.Title == "" || draft.Content == "" {
		return PostDraft{}, &GenerationError{Op: "generate post", Err: errors.New("response is missing title or content")}
	}
	return draft, nil
}

// GenerateQuote возвращает цитату для дашборда. До вызывающего кода ошибка
// не доходит никогда: на любой сбой отдается FallbackQuote.
func (a *AssistantService) GenerateQuote(ctx context.Context) Quote {
	prompt := `Return one short inspirational quote for a software developer as JSON with strictly two keys: "text" and "author".
Do not include markdown formatting.`

	text, err := a.generate(ctx, prompt)
	if err != nil {
		log.Printf("Quote generation failed, using fallback: %v", err)
		return FallbackQuote
	}

	var quote Quote
	if err := json.Unmarshal([]byte(stripJSONFence(text)), &quote); err != nil || quote.Text == "" {
		log.Printf("Quote response unparsable, using fallback: %v", err)
		return FallbackQuote
	}
	return quote
}

// GenerateTodoSuggestion предлагает следующую задачу с учетом существующих.
// Результат только рекомендательный, в список он не попадает автоматически.
// На любой сбой отдается FallbackTodoSuggestion.
func (a *AssistantService) GenerateTodoSuggestion(ctx context.Context, existing []string) string {
	prompt := fmt.Sprintf(`Suggest one short todo task (max 10 words) for a developer, different from these existing tasks: %s.
Return plain text only, no quotes, no markdown.`, strings.Join(existing, "; "))

	text, err := a.generate(ctx, prompt)
	if err != nil {
		log.Printf("Todo suggestion failed, using fallback: %v", err)
		return FallbackTodoSuggestion
	}

	suggestion := strings.TrimSpace(strings.Trim(stripJSONFence(text), `"`))
	if suggestion == "" {
		return FallbackTodoSuggestion
	}
	// Берем только первую строку, модели любят дописывать пояснения
	if i := strings.IndexByte(suggestion, '\n'); i > 0 {
		suggestion = strings.TrimSpace(suggestion[:i])
	}
	return suggestion
}

type generateRequest struct {
	Contents []generateContent `json:"contents"`
}

type generateContent struct {
	Parts []generatePart `json:"parts"`
}

type generatePart struct {
	Text string `json:"text"`
}

type generateResponse struct {
	Candidates []struct {
		Content struct {
			Parts []generatePart `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

// generate выполняет один вызов generateContent и возвращает текст ответа
func (a *AssistantService) generate(ctx context.Context, prompt string) (string, error) {
	if a.apiKey == "" {
		return "", errors.New("assistant api key is not configured")
	}

	body, err := json.Marshal(generateRequest{
		Contents: []generateContent{{Parts: []generatePart{{Text: prompt}}}},
	})
	if err != nil {
		return "", err
	}

	url := fmt.Sprintf("%s/v1beta/models/%s:generateContent?key=%s", a.baseURL, a.model, a.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := a.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", err
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("upstream returned status %d", resp.StatusCode)
	}

	var parsed generateResponse
	if err := json.Unmarshal(data, &parsed); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}
	if len(parsed.Candidates) == 0 || len(parsed.Candidates[0].Content.Parts) == 0 {
		return "", errors.New("empty response")
	}

	text := strings.TrimSpace(parsed.Candidates[0].Content.Parts[0].Text)
	if text == "" {
		return "", errors.New("empty response text")
	}
	return text, nil
}

// stripJSONFence снимает markdown-обертку ```json, если модель ее добавила
func stripJSONFence(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}
