package adapters

import (
	"context"

	imgadapters "github.com/shouni/gemini-image-kit/pkg/adapters"
	imagedom "github.com/shouni/gemini-image-kit/pkg/domain"
)

// GeminiImageBackend は gemini-image-kit のアダプターを ImageBackend 契約へ
// 橋渡しする薄いラッパーです。失敗の吸収は FallbackImageBackend が担います。
type GeminiImageBackend struct {
	adapter imgadapters.ImageAdapter
}

// NewGeminiImageBackend は GeminiImageBackend を生成します。
func NewGeminiImageBackend(adapter imgadapters.ImageAdapter) *GeminiImageBackend {
	return &GeminiImageBackend{adapter: adapter}
}

// Generate は1フレーム分の画像生成を実行します。
func (b *GeminiImageBackend) Generate(ctx context.Context, req imagedom.ImageGenerationRequest) (*imagedom.ImageResponse, error) {
	return b.adapter.GenerateMangaPanel(ctx, req)
}
