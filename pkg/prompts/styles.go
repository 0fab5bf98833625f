package prompts

import (
	"github.com/shouni/go-storyteller-kit/pkg/domain"
)

// StyleTemplate はスタイル識別子ごとの静的な読み取り専用データです。
type StyleTemplate struct {
	Descriptor string // ポジティブプロンプトに注入する画風の記述
	Negative   string // そのスタイル特有の汚染カテゴリを抑えるネガティブプロンプト
}

// QualityMarker はプロンプトに品質ブースターが含まれているかを判定する目印なのだ。
const QualityMarker = "masterpiece"

// QualityBooster は常に最後尾に付与する固定の品質ブースターです。
const QualityBooster = "high quality, masterpiece, sharp focus, highly detailed, intricate details, professional digital art"

// GenericNegative は未知のスタイルに適用する汎用ネガティブプロンプトです。
const GenericNegative = "blurry, low quality, deformed, ugly, bad anatomy, extra limbs, poorly drawn face, bad proportions, watermark, text, signature, logo"

// styleTemplates は StyleKind 全値に対する網羅的な対応表なのだ。
var styleTemplates = map[domain.StyleKind]StyleTemplate{
	domain.StyleCinematic: {
		Descriptor: "cinematic lighting, dramatic atmosphere, detailed texture, 8k, unreal engine 5 render, ray tracing",
		Negative:   GenericNegative,
	},
	domain.StyleAnime: {
		Descriptor: "anime style, makoto shinkai style, studio ghibli, vibrant colors, detailed background, cel shaded",
		Negative:   "photorealistic, photo, 3d render, western cartoon, live action, " + GenericNegative,
	},
	domain.StyleOilPainting: {
		Descriptor: "oil painting, textured, impressionist, van gogh style, heavy strokes",
		Negative:   "photo, photorealistic, 3d render, anime, digital flat shading, " + GenericNegative,
	},
	domain.StyleCyberpunk: {
		Descriptor: "cyberpunk, neon lights, night city, rain, futuristic, sci-fi, detailed techno",
		Negative:   "medieval, pastoral, nature landscape, anime, " + GenericNegative,
	},
	domain.StyleComic: {
		Descriptor: "comic book style, bold ink outlines, halftone shading, dynamic panels, vivid flat colors",
		Negative:   "photorealistic, photo, 3d render, photograph, " + GenericNegative,
	},
	domain.StyleFlowchart: {
		Descriptor: "clean algorithm flowchart, labeled boxes and arrows, flat design, white background",
		Negative:   "people, faces, animals, photorealism, 3d render, violence, fantasy, anime, " + GenericNegative,
	},
	domain.StyleNeural: {
		Descriptor: "neural network architecture diagram, layered nodes and connections, flat vector style",
		Negative:   "people, faces, animals, photorealism, 3d render, violence, fantasy, anime, " + GenericNegative,
	},
	domain.StyleDataScience: {
		Descriptor: "data visualization, clean charts and graphs, flat infographic style",
		Negative:   "people, faces, animals, photorealism, 3d render, violence, fantasy, anime, " + GenericNegative,
	},
}

// visualAnchors はスタイル系統ごとの一貫性フレーズ（教育モード時のみ適用）なのだ。
// シーケンス内の全フレームで同じ配色・様式を共有させるための錨なのだよ。
var visualAnchors = map[domain.StyleKind]string{
	domain.StyleDataScience: "academic dashboard style, orange accent color, clean grid background",
	domain.StyleNeural:      "scientific schematic style, teal and grey palette",
	domain.StyleFlowchart:   "textbook diagram style, single accent color, uncluttered layout",
}

// TemplateFor はスタイルに対応するテンプレートを返します。
// 対応表にない値は Cinematic のテンプレートにフォールバックします。
func TemplateFor(kind domain.StyleKind) StyleTemplate {
	if tpl, ok := styleTemplates[kind]; ok {
		return tpl
	}
	return styleTemplates[domain.StyleCinematic]
}
