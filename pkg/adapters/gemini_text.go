package adapters

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"strings"

	"github.com/shouni/go-gemini-client/pkg/gemini"
	"github.com/shouni/go-storyteller-kit/pkg/domain"
)

// maxContextRunes を超えた会話コンテキストは古い側から切り詰めるのだ。
const maxContextRunes = 2000

// SentinelResponse はモデルが応答できなかったときに返す番兵メッセージです。
const SentinelResponse = "Narrator: (the model is silent — check the backend connection)"

var frameLineRegex = regexp.MustCompile(`(?i)^(?:frame|кадр)\s*\d+\s*[:：]\s*(.+)$`)

// GeminiStoryTeller は go-gemini-client 経由でテキスト生成を行う実装です。
type GeminiStoryTeller struct {
	client gemini.GenerativeModel
	model  string
}

// NewGeminiStoryTeller は GeminiStoryTeller を生成します。
func NewGeminiStoryTeller(client gemini.GenerativeModel, model string) *GeminiStoryTeller {
	return &GeminiStoryTeller{client: client, model: model}
}

// Generate は役割フレーミング付きのプロンプトを組み立てて続きのテキストを生成します。
// どんな失敗でも呼び出し側へはエラーではなく番兵メッセージが返るのだ。
func (g *GeminiStoryTeller) Generate(ctx context.Context, contextText, input string, opts TextOptions) string {
	prompt := framePrompt(contextText, input, opts)

	resp, err := g.client.GenerateContent(ctx, prompt, g.model)
	if err != nil {
		slog.Error("テキスト生成に失敗したのだ", "error", err)
		return SentinelResponse
	}

	text := strings.TrimSpace(resp.Text)
	// モデルが勝手に次の話者の台詞まで生成してしまった場合は切り落とすのだ
	if idx := strings.Index(text, "Player:"); idx > 0 {
		text = strings.TrimSpace(text[:idx])
	}
	if text == "" {
		return SentinelResponse
	}
	return text
}

// framePrompt は入力の性質に応じた役割フレーミングを選びます。
// 教育モードの短い質問は講義調、長文の物語は中立的な続き書き、
// それ以外はゲームマスター調のフレーミングになります。
func framePrompt(contextText, input string, opts TextOptions) string {
	var prompt string
	switch {
	case opts.Educational && !domain.IsNarrative(input):
		prompt = fmt.Sprintf("%s\nStudent: %s\nLecturer:", contextText, input)
	case domain.IsNarrative(input):
		prompt = fmt.Sprintf("%s\nText: %s\nContinuation:", contextText, input)
	default:
		prompt = fmt.Sprintf("%s\nPlayer: %s\nNarrator:", contextText, input)
	}

	// コンテキストが積もりすぎたら末尾側だけを残すのだ
	runes := []rune(prompt)
	if len(runes) > maxContextRunes {
		prompt = "..." + string(runes[len(runes)-maxContextRunes:])
	}
	return prompt
}

// GenerateStoryboard はトピックのストーリーボードを生成し、
// "Frame N: ..." 形式の行を抽出して返します。
// 行数が不足したまま返ることがあります（選択側がフォールバックします）。
func (g *GeminiStoryTeller) GenerateStoryboard(ctx context.Context, topic, style string, count int) ([]string, error) {
	resp, err := g.client.GenerateContent(ctx, storyboardInstruction(topic, style, count), g.model)
	if err != nil {
		return nil, fmt.Errorf("ストーリーボード生成に失敗したのだ: %w", err)
	}

	frames := parseStoryboard(resp.Text)
	if len(frames) > count {
		frames = frames[:count]
	}
	return frames, nil
}

// storyboardInstruction はスタイル系統ごとのプロンプト戦略を返します。
func storyboardInstruction(topic, style string, count int) string {
	switch style {
	case "Algorithm Flowchart":
		return fmt.Sprintf(
			"Describe %d frames of an animation explaining the algorithm '%s'. "+
				"Each frame must show how the data changes. "+
				"Format: 'Frame 1: [description]'. No extra words.", count, topic)
	case "Neural Network":
		return fmt.Sprintf(
			"Describe %d stages of training a neural network on '%s'. "+
				"Visualize the data flow. Format: 'Frame 1: [description]'.", count, topic)
	default:
		return fmt.Sprintf(
			"Create a storyboard of %d frames for '%s' in style '%s'. "+
				"Describe the visual action in each frame. "+
				"Format: 'Frame 1: [description]'.", count, topic, style)
	}
}

// parseStoryboard は生成テキストから "Frame N:" 行を拾い出します。
func parseStoryboard(raw string) []string {
	var frames []string
	for _, line := range strings.Split(raw, "\n") {
		if m := frameLineRegex.FindStringSubmatch(strings.TrimSpace(line)); m != nil {
			frames = append(frames, strings.TrimSpace(m[1]))
		}
	}
	return frames
}
