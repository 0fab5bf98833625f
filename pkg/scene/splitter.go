// Package scene は物語テキストを連続した「シーン」に分割する処理を提供します。
// 分割は文単位で行われ、元の文順を保ったまま、隙間も重複もなく
// 指定された数のシーンへ振り分けられます。
package scene

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// EmptyScene は空入力に対して返す番兵シーンなのだ。
const EmptyScene = "Empty scene."

// minVisualRunes は「台詞を除去した残り」が本文として成立する最小の長さです。
const minVisualRunes = 10

var (
	sentenceSplitRegex = regexp.MustCompile(`[.!?。！？]+`)
	quoteRegex         = regexp.MustCompile(`"[^"]*"|«[^»]*»|「[^」]*」`)
)

// Split はテキストを n 個のシーン文字列に分割します。
// 各シーンは空でなく、順に連結すると正規化済みの入力の全文を文単位で
// ちょうど1回ずつ復元します。文が n 個に満たない場合は最後の文を複製して
// 埋め、最後のシーンが端数の文をすべて吸収します。
// 空白のみの入力には EmptyScene を n 個返します。
func Split(text string, n int) []string {
	if n < 1 {
		n = 1
	}

	sentences := splitSentences(text)
	if len(sentences) == 0 {
		scenes := make([]string, n)
		for i := range scenes {
			scenes[i] = EmptyScene
		}
		return scenes
	}

	// 文数がシーン数より少ない場合は、最後の文を複製して埋めるのだ
	for len(sentences) < n {
		sentences = append(sentences, sentences[len(sentences)-1])
	}

	scenes := make([]string, 0, n)
	chunkSize := float64(len(sentences)) / float64(n)
	for i := 0; i < n; i++ {
		start := int(float64(i) * chunkSize)
		end := len(sentences)
		if i < n-1 {
			end = int(float64(i+1) * chunkSize)
		}

		sceneText := strings.Join(sentences[start:end], " ")
		if sceneText == "" {
			// 丸め誤差で空になった場合は、クランプした開始位置の文で代用するのだ
			sceneText = sentences[min(start, len(sentences)-1)]
		}
		scenes = append(scenes, sceneText)
	}

	return scenes
}

// splitSentences は空白を正規化した上で、文末記号でテキストを文に分割します。
// 各文は末尾をピリオドで再終端します。
func splitSentences(text string) []string {
	normalized := strings.Join(strings.Fields(text), " ")
	if normalized == "" {
		return nil
	}

	parts := sentenceSplitRegex.Split(normalized, -1)
	result := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		result = append(result, p+".")
	}
	return result
}

// ExtractVisualPart はテキストから視覚描写に使える部分を抽出します。
// 引用符で囲まれた範囲（台詞）は画面構成を混乱させるため取り除きますが、
// 除去後がほぼ空（台詞のみの入力）になった場合は元のテキストをそのまま返します。
func ExtractVisualPart(text string) string {
	clean := strings.TrimSpace(quoteRegex.ReplaceAllString(text, ""))
	if utf8.RuneCountInString(clean) < minVisualRunes {
		return text
	}
	return clean
}
