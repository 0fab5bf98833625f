package builder

import (
	"context"
	"fmt"
	"time"

	"github.com/patrickmn/go-cache"
	imagekit "github.com/shouni/gemini-image-kit/pkg/generator"
	"github.com/shouni/go-ai-client/v2/pkg/ai/gemini"
	"github.com/shouni/go-http-kit/pkg/httpkit"
	"golang.org/x/time/rate"
	"google.golang.org/genai"

	"github.com/shouni/go-storyteller-kit/internal/config"
	"github.com/shouni/go-storyteller-kit/pkg/adapters"
	"github.com/shouni/go-storyteller-kit/pkg/orchestrator"
	"github.com/shouni/go-storyteller-kit/pkg/sessionstore"
)

const (
	defaultGeminiTemperature = float32(0.8)
	imageCacheExpiration     = 30 * time.Minute
	imageCacheCleanup        = 1 * time.Hour
	imageCacheTTL            = 1 * time.Hour
)

// InitializeAIClient は gemini クライアントを初期化します。
func InitializeAIClient(ctx context.Context, apiKey string) (gemini.GenerativeModel, error) {
	clientConfig := gemini.Config{
		APIKey:      apiKey,
		Temperature: genai.Ptr(defaultGeminiTemperature),
	}
	aiClient, err := gemini.NewClient(ctx, clientConfig)
	if err != nil {
		return nil, fmt.Errorf("AIクライアントの初期化に失敗しました: %w", err)
	}
	return aiClient, nil
}

// InitializeImageBackend は画像生成バックエンドを初期化し、
// 失敗をプレースホルダーへ置き換えるフォールバック層で包んで返します。
func InitializeImageBackend(aiClient gemini.GenerativeModel, model string, timeout time.Duration) (adapters.ImageBackend, error) {
	httpClient := httpkit.New(timeout)
	imgCache := cache.New(imageCacheExpiration, imageCacheCleanup)

	core, err := imagekit.NewGeminiImageCore(httpClient, imgCache, imageCacheTTL)
	if err != nil {
		return nil, fmt.Errorf("GeminiImageCoreの初期化に失敗したのだ: %w", err)
	}

	imgGen, err := imagekit.NewGeminiGenerator(core, aiClient, model)
	if err != nil {
		return nil, fmt.Errorf("GeminiGeneratorの初期化に失敗したのだ: %w", err)
	}

	return adapters.NewFallbackImageBackend(adapters.NewGeminiImageBackend(imgGen)), nil
}

// BuildAppContext は設定からコラボレーター一式とオーケストレーターを構築するのだ。
func BuildAppContext(ctx context.Context, cfg *config.Config) (*AppContext, error) {
	aiClient, err := InitializeAIClient(ctx, cfg.GeminiAPIKey)
	if err != nil {
		return nil, err
	}

	texts := adapters.NewGeminiStoryTeller(aiClient, cfg.GeminiModel)
	translator := adapters.NewGeminiTranslator(aiClient, cfg.GeminiModel)

	timeout := cfg.Options.HTTPTimeout
	if timeout <= 0 {
		timeout = config.DefaultHTTPTimeout
	}
	images, err := InitializeImageBackend(aiClient, cfg.GeminiImageModel, timeout)
	if err != nil {
		return nil, err
	}

	// Burst 2 により、ターン開始直後の2フレームまでは待たずにリクエストできるのだ
	limiter := rate.NewLimiter(rate.Every(config.DefaultRateInterval), 2)
	orc := orchestrator.New(texts, images, translator, limiter, cfg.QualitySuffix)

	sessionsDir := cfg.Options.OutputDir
	if sessionsDir == "" {
		sessionsDir = cfg.SessionsDir
	}
	store := sessionstore.New(sessionsDir)

	appCtx := NewAppContext(cfg, orc, store)
	return &appCtx, nil
}
