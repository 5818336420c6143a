package generator

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"math/rand"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/subashmuthub/Hacktivators/internal/domain/irt"
)

// OpenAIGenerator produces questions by calling an OpenAI-compatible LLM
// endpoint (Ollama, LM Studio, vLLM, etc.).
type OpenAIGenerator struct {
	url    string       // e.g. "http://localhost:1234"
	model  string       // e.g. "qwen3-8b"
	client *http.Client // reused across calls

	mu  sync.Mutex
	rng *rand.Rand
}

// Compile-time check: *OpenAIGenerator satisfies the Generator interface.
var _ Generator = (*OpenAIGenerator)(nil)

// GenerateError is returned when generation fails so the caller can
// distinguish between "model returned a bad question" and "model was
// unreachable."
type GenerateError struct {
	Reason  string
	Wrapped error
}

func (e *GenerateError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("generation failed: %s: %v", e.Reason, e.Wrapped)
	}
	return fmt.Sprintf("generation failed: %s", e.Reason)
}

func (e *GenerateError) Unwrap() error {
	return e.Wrapped
}

// NewOpenAIGenerator creates a generator that calls the given LLM endpoint.
// rng drives the item parameter draws and may be seeded for reproducibility.
func NewOpenAIGenerator(url, model string, rng *rand.Rand) *OpenAIGenerator {
	return &OpenAIGenerator{
		url:   url,
		model: model,
		client: &http.Client{
			Timeout: 120 * time.Second,
		},
		rng: rng,
	}
}

const maxRetries = 2

// GenerateQuestion asks the model for a multiple-choice question, validates
// the payload, and attaches item parameters drawn for the requested tier.
//
// It retries once on parse failure (small models sometimes need a second try).
func (g *OpenAIGenerator) GenerateQuestion(ctx context.Context, req QuestionRequest) (*GeneratedQuestion, error) {
	prompt := buildQuestionPrompt(req)

	var lastErr error

	for attempt := 0; attempt < maxRetries; attempt++ {
		result, err := g.callLLM(ctx, prompt)
		if err != nil {
			lastErr = err
			continue
		}

		jsonStr := extractJSON(result)
		if jsonStr == "" {
			lastErr = &GenerateError{Reason: "no JSON object found in LLM response"}
			continue
		}

		if err := ValidateQuestionPayload([]byte(jsonStr)); err != nil {
			lastErr = &GenerateError{Reason: "malformed question payload", Wrapped: err}
			continue
		}

		var q GeneratedQuestion
		if err := json.Unmarshal([]byte(jsonStr), &q); err != nil {
			lastErr = &GenerateError{Reason: "invalid JSON from LLM", Wrapped: err}
			continue
		}

		if q.CorrectIndex >= len(q.Options) {
			lastErr = &GenerateError{Reason: "correct index out of range"}
			continue
		}

		item := g.drawItem(req.Difficulty)
		q.Item = &item
		return &q, nil
	}

	return nil, &GenerateError{
		Reason:  fmt.Sprintf("failed after %d attempts", maxRetries),
		Wrapped: lastErr,
	}
}

func (g *OpenAIGenerator) drawItem(difficulty string) irt.ItemParams {
	g.mu.Lock()
	defer g.mu.Unlock()
	return ItemForDifficulty(g.rng, difficulty)
}

// ============================================================================
// LLM communication
// ============================================================================

type llmRequest struct {
	Model       string       `json:"model"`
	Messages    []llmMessage `json:"messages"`
	Temperature float64      `json:"temperature"`
}

type llmMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type llmResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// callLLM sends a single request to the LLM and returns the raw text response.
func (g *OpenAIGenerator) callLLM(ctx context.Context, prompt string) (string, error) {
	reqBody := llmRequest{
		Model: g.model,
		Messages: []llmMessage{
			{Role: "user", Content: prompt},
		},
		Temperature: 0.7,
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.url+"/v1/chat/completions", bytes.NewBuffer(jsonData))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("LLM request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("LLM returned status %d", resp.StatusCode)
	}

	var llmResp llmResponse
	if err := json.NewDecoder(resp.Body).Decode(&llmResp); err != nil {
		return "", fmt.Errorf("failed to decode LLM response: %w", err)
	}

	if len(llmResp.Choices) == 0 {
		return "", fmt.Errorf("LLM returned no choices")
	}

	content := llmResp.Choices[0].Message.Content
	if content == "" {
		return "", fmt.Errorf("LLM returned empty content")
	}

	return content, nil
}

// ============================================================================
// JSON extraction
// ============================================================================

// extractJSON finds the outermost JSON object in a string.
// It handles nested braces correctly and skips braces inside quoted strings.
func extractJSON(s string) string {
	start := -1
	depth := 0
	inString := false
	escaped := false

	for i, ch := range s {
		if escaped {
			escaped = false
			continue
		}
		if ch == '\\' && inString {
			escaped = true
			continue
		}
		if ch == '"' {
			inString = !inString
			continue
		}
		if inString {
			continue
		}

		if ch == '{' {
			if depth == 0 {
				start = i
			}
			depth++
		} else if ch == '}' {
			depth--
			if depth == 0 && start != -1 {
				return s[start : i+1]
			}
		}
	}
	return ""
}

// ============================================================================
// Prompt builder — kept short and directive for small (4-8B) models.
//
// Design principles:
//   - Put hard constraints (option count, single correct answer) as rules
//     rather than prose.
//   - List previously seen questions so the model avoids repeats.
//   - Always end with the JSON schema so it's the last thing the model sees.
//   - Use /no_think where supported to suppress chain-of-thought tokens.
// ============================================================================

func buildQuestionPrompt(req QuestionRequest) string {
	var b strings.Builder

	fmt.Fprintf(&b, `/no_think
You are writing one multiple-choice quiz question.

CONCEPT: %s
DIFFICULTY: %s

RULES:
- Exactly 4 options, exactly one correct.
- Wrong options must be plausible mistakes, not obvious filler.
- The explanation says why the correct option is right in 1-2 sentences.
- The hint nudges without giving the answer away.
`, req.Concept, req.Difficulty)

	if req.PriorExamSummary != "" {
		fmt.Fprintf(&b, "\nLEARNER CONTEXT:\n%s\n", req.PriorExamSummary)
	}

	if len(req.PreviousQuestions) > 0 {
		b.WriteString("\nALREADY ASKED (do not repeat or rephrase these):\n")
		for i, q := range req.PreviousQuestions {
			fmt.Fprintf(&b, "%d. %s\n", i+1, q)
		}
	}

	b.WriteString(`
Respond with ONLY this JSON — no explanation, no markdown:
{"question": "...", "options": ["...", "...", "...", "..."], "correctIndex": 0, "explanation": "...", "hint": "..."}`)

	return b.String()
}
