package extract

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/dkovacev/ironlog/internal/telemetry/tracing"

	"github.com/coocood/freecache"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
)

// ErrExtractionUnavailable covers every way the extraction model call can
// fail: transport errors, auth/quota rejections and malformed response
// envelopes. The caller cannot distinguish them and should not retry blindly.
var ErrExtractionUnavailable = errors.New("extraction unavailable")

const (
	oneHour             = 60 * 60
	extractResultExpire = oneHour * 24
)

type GeminiConfig struct {
	BaseURL         string // https://generativelanguage.googleapis.com
	APIKey          string
	Model           string
	Temperature     float64
	MaxOutputTokens int
}

// GeminiClient calls the Gemini generateContent API in JSON output mode.
// Successful responses are cached in-process keyed by the prompt hash, so
// that a preview followed by a commit of the same log costs one model call.
type GeminiClient struct {
	cfg        GeminiConfig
	cache      *freecache.Cache
	httpClient *http.Client
}

func NewGeminiClient(cfg GeminiConfig, httpClient *http.Client) *GeminiClient {
	megabyte := 1024 * 1024
	cacheSize := 10 * megabyte

	return &GeminiClient{
		cfg:        cfg,
		cache:      freecache.NewCache(cacheSize),
		httpClient: httpClient,
	}
}

type geminiRequest struct {
	Contents         []geminiContent        `json:"contents"`
	GenerationConfig geminiGenerationConfig `json:"generationConfig"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiGenerationConfig struct {
	Temperature      float64 `json:"temperature"`
	MaxOutputTokens  int     `json:"maxOutputTokens"`
	ResponseMimeType string  `json:"responseMimeType"`
}

type geminiResponse struct {
	Candidates []struct {
		Content struct {
			Parts []geminiPart `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
	Error *struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
		Status  string `json:"status"`
	} `json:"error"`
}

// Extract sends the prompt and returns the raw JSON text produced by the
// model. The response is not parsed or validated here.
func (c *GeminiClient) Extract(ctx context.Context, prompt string) (_ string, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "geminiClient.extract")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	cacheKey := sha256.Sum256([]byte(prompt))
	if cached, err := c.cache.Get(cacheKey[:]); err == nil {
		log.Tracef("found extraction result in cache, %d chars", len(cached))
		span.SetAttributes(attribute.Bool("cache.hit", true))
		return string(cached), nil
	}

	reqBody := geminiRequest{
		Contents: []geminiContent{
			{Parts: []geminiPart{{Text: prompt}}},
		},
		GenerationConfig: geminiGenerationConfig{
			Temperature:      c.cfg.Temperature,
			MaxOutputTokens:  c.cfg.MaxOutputTokens,
			ResponseMimeType: "application/json",
		},
	}
	bodyBytes, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("marshal gemini request: %w", err)
	}

	apiUrl := fmt.Sprintf(
		"%s/v1beta/models/%s:generateContent?key=%s",
		c.cfg.BaseURL, c.cfg.Model, c.cfg.APIKey,
	)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, apiUrl, bytes.NewReader(bodyBytes))
	if err != nil {
		return "", fmt.Errorf("%w: new request: %s", ErrExtractionUnavailable, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: http client do: %s", ErrExtractionUnavailable, err)
	}
	defer resp.Body.Close()

	respBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("%w: read response: %s", ErrExtractionUnavailable, err)
	}

	var geminiResp geminiResponse
	if err := json.Unmarshal(respBytes, &geminiResp); err != nil {
		return "", fmt.Errorf("%w: unmarshal response: %s", ErrExtractionUnavailable, err)
	}

	if geminiResp.Error != nil {
		log.Errorf("gemini api error [%d / %s]: %s", geminiResp.Error.Code, geminiResp.Error.Status, geminiResp.Error.Message)
		return "", fmt.Errorf("%w: api error [%s]: %s", ErrExtractionUnavailable, geminiResp.Error.Status, geminiResp.Error.Message)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%w: unexpected status code %d", ErrExtractionUnavailable, resp.StatusCode)
	}

	if len(geminiResp.Candidates) == 0 || len(geminiResp.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("%w: no candidates in response", ErrExtractionUnavailable)
	}

	text := geminiResp.Candidates[0].Content.Parts[0].Text
	log.Debugf("gemini extraction response: %d chars", len(text))

	if err := c.cache.Set(cacheKey[:], []byte(text), extractResultExpire); err != nil {
		log.Errorf("failed to cache extraction result: %s", err)
	}

	return text, nil
}
