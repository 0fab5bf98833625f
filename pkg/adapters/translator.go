package adapters

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/patrickmn/go-cache"
	"github.com/shouni/go-gemini-client/pkg/gemini"
	"golang.org/x/sync/singleflight"
)

const (
	translationCacheExpiration = 30 * time.Minute
	translationCacheCleanup    = 1 * time.Hour
)

// GeminiTranslator はプロンプト文字列を英語へ変換する実装です。
// 同一テキストの訳はキャッシュされ、同時に飛んできた重複要求は
// singleflight でひとつの呼び出しにまとめられます。
type GeminiTranslator struct {
	client gemini.GenerativeModel
	model  string
	cache  *cache.Cache
	group  singleflight.Group
}

// NewGeminiTranslator は GeminiTranslator を生成します。
func NewGeminiTranslator(client gemini.GenerativeModel, model string) *GeminiTranslator {
	return &GeminiTranslator{
		client: client,
		model:  model,
		cache:  cache.New(translationCacheExpiration, translationCacheCleanup),
	}
}

// Translate はテキストを英語に変換します。失敗しても決してエラーにはせず、
// 原文をそのまま返すのだ。非空の入力に空文字を返すこともないのだ。
func (t *GeminiTranslator) Translate(ctx context.Context, text string) string {
	if strings.TrimSpace(text) == "" {
		return text
	}

	if cached, ok := t.cache.Get(text); ok {
		return cached.(string)
	}

	result, err, _ := t.group.Do(text, func() (interface{}, error) {
		resp, err := t.client.GenerateContent(ctx, translationPrompt(text), t.model)
		if err != nil {
			return nil, err
		}
		return strings.TrimSpace(resp.Text), nil
	})
	if err != nil {
		slog.Warn("翻訳に失敗したため原文を使うのだ", "error", err)
		return text
	}

	translated, ok := result.(string)
	if !ok || translated == "" {
		return text
	}

	t.cache.SetDefault(text, translated)
	return translated
}

func translationPrompt(text string) string {
	return "Translate the following text into English. " +
		"Output only the translation, nothing else.\n\n" + text
}
