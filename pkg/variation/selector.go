// Package variation は各フレームが「何を描くべきか」を表すショット説明を決定します。
// 長文の物語はシーン分割へ委譲し、トピックはストーリーボード生成や
// 固定リストへ段階的にフォールバックします。
package variation

import (
	"context"
	"log/slog"
	"strings"

	"github.com/shouni/go-storyteller-kit/pkg/domain"
	"github.com/shouni/go-storyteller-kit/pkg/scene"
)

// Storyboarder は外部モデルにストーリーボード（フレームごとの視覚説明）を
// 依頼する契約です。結果が不足したり空だったりしても呼び出し側が吸収します。
type Storyboarder interface {
	GenerateStoryboard(ctx context.Context, topic, style string, count int) ([]string, error)
}

// genericShots は教育モード・技術系スタイル共通の汎用フォールバックなのだ。
var genericShots = []string{
	"informational diagram",
	"detailed schematic",
	"process flow",
	"summary result",
}

// defaultShots はどの条件にも当てはまらない場合の既定ショットなのだ。
var defaultShots = []string{
	"cinematic shot",
	"action shot, dynamic",
	"close up, detailed expression",
}

// bubbleSortShots はバブルソート解説アニメの8段階の固定ショットです。
var bubbleSortShots = []string{
	"unsorted array of vertical bars with random heights",
	"first pair of adjacent bars highlighted for comparison",
	"two adjacent bars swapping positions, exchange arrows",
	"largest bar bubbling toward the right end, motion trail",
	"second pass over the remaining unsorted bars",
	"sorted tail of bars growing on the right, dimmed",
	"final pass with no swaps, green check marks",
	"fully sorted ascending array of bars",
}

// quickSortShots はクイックソート解説アニメの8段階の固定ショットです。
var quickSortShots = []string{
	"unsorted array of vertical bars, pivot bar highlighted",
	"partitioning around the pivot with two moving pointers",
	"bars smaller than the pivot shifting to the left side",
	"bars larger than the pivot shifting to the right side",
	"pivot bar placed at its final position, emphasized",
	"recursion into the left partition, bracket overlay",
	"recursion into the right partition, bracket overlay",
	"fully sorted ascending array of bars",
}

// Selector はショット説明の決定ロジック本体です。
type Selector struct {
	storyboard Storyboarder
}

// NewSelector は Selector を生成します。storyboard は nil でも動作し、
// その場合ストーリーボード経路は常にフォールバックします。
func NewSelector(storyboard Storyboarder) *Selector {
	return &Selector{storyboard: storyboard}
}

// Select は count 個のショット説明を必ず返します。
// 優先順位は (1) 長文入力はシーン分割へ委譲、(2) 教育モードはストーリーボード、
// (3) 技術系スタイルはアルゴリズム別の固定リスト、(4) 既定リストの循環、の順で、
// どの経路でもエラーは返さず、要素数が count を下回ることもありません。
func (s *Selector) Select(ctx context.Context, subject string, style domain.StyleKind, educational bool, count int) []string {
	if count < 1 {
		count = 1
	}

	// 1. 長文の物語本文なら、ショット選択ではなくシーン分割の出番なのだ
	if domain.IsNarrative(subject) {
		return scene.Split(subject, count)
	}

	// 2. 教育モードはモデル製ストーリーボードを第一候補にするのだ
	if educational {
		if shots := s.storyboardShots(ctx, subject, style, count); shots != nil {
			return shots
		}
		return cycle(genericShots, count)
	}

	// 3. 技術系スタイルはアルゴリズム固有の固定シーケンスを持つのだ
	if style.Technical() {
		if shots := algorithmShots(subject); shots != nil {
			return cycle(shots, count)
		}
		return cycle(genericShots, count)
	}

	// 4. 既定のショットリストを循環使用するのだ
	return cycle(defaultShots, count)
}

// storyboardShots はストーリーボード生成を試み、使えない結果なら nil を返します。
func (s *Selector) storyboardShots(ctx context.Context, topic string, style domain.StyleKind, count int) []string {
	if s.storyboard == nil {
		return nil
	}

	shots, err := s.storyboard.GenerateStoryboard(ctx, topic, style.String(), count)
	if err != nil {
		slog.Warn("ストーリーボード生成に失敗したため汎用リストへフォールバックするのだ", "topic", topic, "error", err)
		return nil
	}
	if len(shots) < count {
		slog.Warn("ストーリーボードの枚数が不足しているのだ", "want", count, "got", len(shots))
		return nil
	}
	return shots[:count]
}

// algorithmShots は被写体テキストからソートアルゴリズムを検出します。
// キリル文字・ラテン文字どちらの綴りにも部分一致で反応します。
func algorithmShots(subject string) []string {
	lower := strings.ToLower(subject)
	switch {
	case strings.Contains(lower, "bubble") || strings.Contains(lower, "пузыр"):
		return bubbleSortShots
	case strings.Contains(lower, "quick") || strings.Contains(lower, "быстр"):
		return quickSortShots
	}
	return nil
}

// cycle はリストを index mod len で循環させ、ちょうど count 個にします。
func cycle(shots []string, count int) []string {
	result := make([]string, count)
	for i := 0; i < count; i++ {
		result[i] = shots[i%len(shots)]
	}
	return result
}
