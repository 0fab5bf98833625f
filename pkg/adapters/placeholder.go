package adapters

import (
	"bytes"
	"crypto/sha256"
	"image"
	"image/color"
	"image/png"

	imagedom "github.com/shouni/gemini-image-kit/pkg/domain"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

const (
	placeholderSize     = 512
	maxAnnotationRunes  = 80
	maxPromptAnnotation = 50
)

// Placeholder は画像生成が失敗したときの代替画像を生成します。
// 塗りつぶし色はプロンプトのハッシュから決定されるため、同じプロンプトの
// 失敗は何度リトライしても同じ色になります。切り詰めたエラーメッセージと
// プロンプトを描き込むことで、失敗が目に見える形で残ります。
func Placeholder(prompt, errText string) *imagedom.ImageResponse {
	sum := sha256.Sum256([]byte(prompt))
	fill := color.RGBA{R: sum[0], G: sum[1], B: sum[2], A: 255}

	img := image.NewRGBA(image.Rect(0, 0, placeholderSize, placeholderSize))
	for y := 0; y < placeholderSize; y++ {
		for x := 0; x < placeholderSize; x++ {
			// 斜めの白ストライプで「生成画像ではない」ことをひと目で分からせるのだ
			if (x+y)%32 < 2 {
				img.Set(x, y, color.White)
			} else {
				img.Set(x, y, fill)
			}
		}
	}

	red := color.RGBA{R: 255, A: 255}
	drawText(img, 20, 20, "Error: "+truncateRunes(errText, maxAnnotationRunes), red)
	drawText(img, 20, 40, "Prompt: "+truncateRunes(prompt, maxPromptAnnotation), color.White)

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		// PNG エンコードは固定サイズの RGBA では失敗しない前提だが、
		// 万一に備えて空データではなく最低限のレスポンスを返すのだ
		return &imagedom.ImageResponse{Data: nil, MimeType: "image/png"}
	}
	return &imagedom.ImageResponse{Data: buf.Bytes(), MimeType: "image/png"}
}

// drawText は固定幅ビットマップフォントで1行のテキストを描き込みます。
func drawText(img *image.RGBA, x, y int, text string, c color.Color) {
	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(c),
		Face: basicfont.Face7x13,
		Dot:  fixed.P(x, y),
	}
	d.DrawString(text)
}

func truncateRunes(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit])
}
