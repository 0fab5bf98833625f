// Package adapters は外部コラボレーター（テキスト生成・画像生成・翻訳）の契約と、
// Gemini ベースの実装を提供します。どの実装も失敗をオーケストレーターへ
// 伝播させず、劣化した成果物（番兵テキスト・プレースホルダー画像・原文）へ
// 置き換える方針です。
package adapters

import (
	"context"

	imagedom "github.com/shouni/gemini-image-kit/pkg/domain"
)

// TextOptions はテキスト生成時のモードフラグです。
type TextOptions struct {
	Educational bool
}

// TextGenerator は物語の続きとストーリーボードを生成する契約です。
type TextGenerator interface {
	// Generate は会話コンテキストと入力から続きのテキストを生成します。
	// 失敗時は例外を投げる代わりに目に見える番兵メッセージを返します。
	Generate(ctx context.Context, contextText, input string, opts TextOptions) string

	// GenerateStoryboard はトピックとスタイルからフレームごとの視覚説明を生成します。
	// 結果は count 未満や空になりえます（呼び出し側が不足を吸収します）。
	GenerateStoryboard(ctx context.Context, topic, style string, count int) ([]string, error)
}

// ImageBackend は1枚の画像生成を抽象化します。
// FallbackImageBackend で包んだ実装は決してエラーを返しません。
type ImageBackend interface {
	Generate(ctx context.Context, req imagedom.ImageGenerationRequest) (*imagedom.ImageResponse, error)
}

// Translator はプロンプトを生成バックエンドの言語（英語）へ変換します。
// 失敗時は原文をそのまま返し、非空の入力に対して空文字を返すことはありません。
type Translator interface {
	Translate(ctx context.Context, text string) string
}
