package domain

import (
	"crypto/sha256"
	"encoding/binary"
	"strings"
	"unicode/utf8"
)

// ナラティブ判定のしきい値なのだ。入力がこれより長く、かつ空白区切りの
// 語数が十分に多ければ「物語の本文」とみなすのだ。
const (
	narrativeMinRunes  = 50
	narrativeMinSpaces = 5
)

// IsNarrative は入力テキストが「物語本文（ナラティブ）」か「トピックのラベル」かを
// 長さと語数だけで判定する純粋な述語です。判定基準をここ1箇所に隔離してあるため、
// 将来ユーザーの明示的な選択に置き換える場合もこの関数だけを差し替えれば済みます。
func IsNarrative(text string) bool {
	return utf8.RuneCountInString(text) > narrativeMinRunes &&
		strings.Count(text, " ") > narrativeMinSpaces
}

// SeedFromText はテキストから決定論的なシード値を生成します。
// 同じテキストからは常に同じ正の値が得られます。
func SeedFromText(text string) int64 {
	hash := sha256.Sum256([]byte(text))
	seed := int64(binary.BigEndian.Uint32(hash[:4]))
	// 画像バックエンドのシード値は正の数が望ましいため、最上位ビットを落とすのだ
	return seed & 0x7FFFFFFF
}
