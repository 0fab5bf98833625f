// Package prompts は被写体・スタイル・ショット説明から画像生成バックエンドへ渡す
// （ポジティブ, ネガティブ）プロンプト対を組み立てます。
// 節はカンマ区切りで順番に連結され、並び順が下流の強調重み付けに影響します。
package prompts

import (
	"fmt"
	"math/rand/v2"
	"strings"
	"unicode/utf8"

	"github.com/shouni/go-storyteller-kit/pkg/domain"
)

// comicSubjectMaxRunes を超える被写体は分割済みの物語本文そのものとみなし、
// ストーリー枠の再付与を行いません（シーンテキストの二重化を防ぐため）。
const comicSubjectMaxRunes = 100

const (
	technicalBooster = "clean vector lines, accurate labels, technically precise"
	comicLighting    = "dramatic lighting, cinematic shadows"
)

const (
	educationalNegativeExtra = "artistic, painterly, decorative, photographic, photo, bokeh, depth of field"
	comicNegativeExtra       = "photorealistic, photograph, 3d render, minimalism, minimalist"
)

// cameraAngles と lighting は演出用の装飾句のパレットなのだ。
// ここの乱数はあえてシードしない。再現性は画像シードが担うのであって、
// プロンプトの飾り文句は毎回変わってよい「風味」なのだ。
var (
	cameraAngles = []string{
		"wide angle shot", "close up", "eye level", "low angle", "hero shot", "panoramic view",
	}
	lightingPalette = []string{
		"natural lighting", "studio lighting", "soft creative lighting", "volumetric lighting", "rembrandt lighting",
	}
)

// ComposeOptions は合成時のモードフラグです。
type ComposeOptions struct {
	Educational bool // 教育モード（一貫性アンカーと技術ブースターが有効になる）
	AddCamera   bool // カメラアングル句を明示的に要求する
}

// Composer はプロンプト合成器です。状態を持たないため共有可能です。
type Composer struct{}

// NewComposer は Composer を生成します。
func NewComposer() *Composer {
	return &Composer{}
}

// Compose はショット説明・被写体・スタイル・モードから
// 非空の（ポジティブ, ネガティブ）プロンプト対を構築します。
func (c *Composer) Compose(shot, subject string, style domain.StyleKind, opts ComposeOptions) (string, string) {
	parts := make([]string, 0, 7)

	// 1. 被写体節（スタイル区分でフォーマットが変わるのだ）
	parts = append(parts, subjectClause(shot, subject, style))

	// 2. 画風の記述（未知スタイルは Cinematic へフォールバック）
	tpl := TemplateFor(style)
	parts = append(parts, tpl.Descriptor)

	// 3. 一貫性アンカー（教育・技術モードのみ）
	if opts.Educational {
		if anchor, ok := visualAnchors[style]; ok {
			parts = append(parts, anchor)
		}
	}

	// 4. 技術的正確さのブースター（技術系の教育スタイル限定。コミックには付けない）
	if opts.Educational && style.Technical() {
		parts = append(parts, technicalBooster)
	}

	// 5. カメラアングル（明示要求時のみ。教育・コミックでは抑制）
	if opts.AddCamera && !opts.Educational && style != domain.StyleComic {
		parts = append(parts, cameraAngles[rand.IntN(len(cameraAngles))])
	}

	// 6. ライティング（コミックは固定句、教育は省略、それ以外はパレットから無作為）
	switch {
	case style == domain.StyleComic:
		parts = append(parts, comicLighting)
	case opts.Educational:
		// 教育モードでは演出照明を付けない
	default:
		parts = append(parts, lightingPalette[rand.IntN(len(lightingPalette))])
	}

	// 7. 品質ブースターは常に最後尾なのだ
	parts = append(parts, QualityBooster)

	return strings.Join(parts, ", "), negativePrompt(style, opts)
}

// subjectClause は被写体とショット説明を結合した先頭節を作ります。
func subjectClause(shot, subject string, style domain.StyleKind) string {
	subject = strings.TrimSpace(subject)

	switch {
	case style.Technical():
		return fmt.Sprintf("%s mechanism: %s", subject, shot)
	case style == domain.StyleComic:
		// 長い被写体は分割済みの物語本文なので、枠を再付与しないのだ
		if subject != "" && utf8.RuneCountInString(subject) < comicSubjectMaxRunes {
			return fmt.Sprintf("comic story about %s, %s", subject, shot)
		}
		return shot
	default:
		if subject == "" {
			return shot
		}
		return fmt.Sprintf("%s, %s", subject, shot)
	}
}

// negativePrompt はスタイル別の汚染抑止テーブルからネガティブプロンプトを引きます。
func negativePrompt(style domain.StyleKind, opts ComposeOptions) string {
	negative := TemplateFor(style).Negative

	switch {
	case opts.Educational:
		negative += ", " + educationalNegativeExtra
	case style == domain.StyleComic:
		negative += ", " + comicNegativeExtra
	}

	return negative
}
