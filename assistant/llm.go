package assistant

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// ErrMissingCredential means no LLM API key is configured.
var ErrMissingCredential = errors.New("llm api key is not configured")

const systemInstruction = "你是一个酒店预订平台的智能助手。请用简洁的中文回答用户的问题。" +
	"你无法访问实时的酒店、房型、价格或库存数据，绝对不要编造任何酒店名称、地址、价格或房间库存信息。" +
	"如果用户询问具体酒店的数据，请引导用户使用类似“上海有哪些酒店”、“某某酒店的地址”或“某某酒店还剩什么房间”这样的问法。"

// Completer answers free text the rule table could not route.
type Completer interface {
	Complete(ctx context.Context, message string) (string, error)
}

// GeminiCompleter calls the Gemini API. The client is created on first use
// so a missing key only fails the requests that reach the fallback.
type GeminiCompleter struct {
	APIKey  string
	Model   string
	Timeout time.Duration

	mu     sync.Mutex
	client *genai.Client
}

func NewGeminiCompleter(apiKey, model string, timeout time.Duration) *GeminiCompleter {
	return &GeminiCompleter{APIKey: apiKey, Model: model, Timeout: timeout}
}

func (g *GeminiCompleter) getClient(ctx context.Context) (*genai.Client, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.client != nil {
		return g.client, nil
	}
	if strings.TrimSpace(g.APIKey) == "" {
		return nil, ErrMissingCredential
	}
	client, err := genai.NewClient(ctx, option.WithAPIKey(g.APIKey))
	if err != nil {
		return nil, err
	}
	g.client = client
	return client, nil
}

func (g *GeminiCompleter) Complete(ctx context.Context, message string) (string, error) {
	if g.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.Timeout)
		defer cancel()
	}

	client, err := g.getClient(context.Background())
	if err != nil {
		return "", err
	}
	model := client.GenerativeModel(g.Model)
	model.SystemInstruction = &genai.Content{
		Parts: []genai.Part{genai.Text(systemInstruction)},
	}
	temp := float32(0.3)
	model.GenerationConfig = genai.GenerationConfig{Temperature: &temp}

	resp, err := model.GenerateContent(ctx, genai.Text(message))
	if err != nil {
		return "", err
	}
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", errors.New("empty response from gemini")
	}

	var b strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if txt, ok := part.(genai.Text); ok {
			b.WriteString(string(txt))
		}
	}
	return strings.TrimSpace(b.String()), nil
}

func (g *GeminiCompleter) Close() error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.client == nil {
		return nil
	}
	err := g.client.Close()
	g.client = nil
	return err
}
