package adapters

import (
	"context"
	"log/slog"

	imagedom "github.com/shouni/gemini-image-kit/pkg/domain"
)

// FallbackImageBackend は任意の ImageBackend を包み、失敗を決定論的な
// プレースホルダー画像へ置き換えるデコレーターなのだ。
// この層を通った呼び出しは決してエラーを返さないため、
// 1フレームの失敗がシーケンス全体を止めることはないのだ。
type FallbackImageBackend struct {
	backend ImageBackend
}

// NewFallbackImageBackend は FallbackImageBackend を生成します。
func NewFallbackImageBackend(backend ImageBackend) *FallbackImageBackend {
	return &FallbackImageBackend{backend: backend}
}

// Generate は内側のバックエンドを呼び、失敗したらプレースホルダーを返します。
// 同じプロンプトの失敗は常に同じ見た目のプレースホルダーになります。
func (f *FallbackImageBackend) Generate(ctx context.Context, req imagedom.ImageGenerationRequest) (*imagedom.ImageResponse, error) {
	resp, err := f.backend.Generate(ctx, req)
	if err != nil {
		slog.Error("画像生成に失敗したためプレースホルダーで継続するのだ", "error", err)
		return Placeholder(req.Prompt, err.Error()), nil
	}
	if resp == nil || len(resp.Data) == 0 {
		slog.Error("画像バックエンドが空の応答を返したのだ")
		return Placeholder(req.Prompt, "empty response from image backend"), nil
	}
	return resp, nil
}
