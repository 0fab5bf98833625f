package domain

import (
	imagedom "github.com/shouni/gemini-image-kit/pkg/domain"
)

// Turn は1回のやり取り（入力、生成された続き、フレーム列）を表します。
// ナラティブモードでは Narration が空になることがあります（入力自体が物語本文のため）。
type Turn struct {
	Input     string  `json:"input"`
	Narration string  `json:"narration,omitempty"`
	Frames    []Frame `json:"frames"`
}

// Frame はシーケンス内の1枚の画像と、その合成済みプロンプト・解決済みシードを保持します。
// 所有者は Turn であり、生成後に変更されません。
type Frame struct {
	Index          int    `json:"index"`
	Shot           string `json:"shot"`
	Prompt         string `json:"prompt"`
	NegativePrompt string `json:"negative_prompt"`
	Seed           *int64 `json:"seed,omitempty"`
	ImagePath      string `json:"image_path,omitempty"`

	// Image は生成直後の画像データ。永続化後は ImagePath が正となるため保存対象外。
	Image *imagedom.ImageResponse `json:"-"`
}
