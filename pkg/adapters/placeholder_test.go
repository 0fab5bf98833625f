package adapters

import (
	"bytes"
	"image/png"
	"strings"
	"testing"
)

func TestPlaceholder(t *testing.T) {
	t.Run("有効なPNGとして生成されるのだ", func(t *testing.T) {
		resp := Placeholder("a lone astronaut, cinematic shot", "rate limit exceeded")

		if resp.MimeType != "image/png" {
			t.Errorf("MIMEタイプが違うのだ: %s", resp.MimeType)
		}
		img, err := png.Decode(bytes.NewReader(resp.Data))
		if err != nil {
			t.Fatalf("PNGとしてデコードできないのだ: %v", err)
		}
		bounds := img.Bounds()
		if bounds.Dx() != placeholderSize || bounds.Dy() != placeholderSize {
			t.Errorf("サイズが違うのだ: %dx%d", bounds.Dx(), bounds.Dy())
		}
	})

	t.Run("同じプロンプトからは常に同じ画像になるのだ", func(t *testing.T) {
		a := Placeholder("same prompt", "some error")
		b := Placeholder("same prompt", "some error")
		if !bytes.Equal(a.Data, b.Data) {
			t.Error("決定論が壊れているのだ")
		}
	})

	t.Run("異なるプロンプトは異なる塗り色になるのだ", func(t *testing.T) {
		a := Placeholder("prompt alpha", "err")
		b := Placeholder("prompt beta", "err")
		if bytes.Equal(a.Data, b.Data) {
			t.Error("別プロンプトで同じ画像になってしまったのだ")
		}
	})

	t.Run("長いエラーメッセージでもクラッシュしないのだ", func(t *testing.T) {
		resp := Placeholder("prompt", strings.Repeat("x", 500))
		if len(resp.Data) == 0 {
			t.Error("画像データが空なのだ")
		}
	})
}
