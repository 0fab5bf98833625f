package domain

import (
	"slices"
	"strings"
)

// StyleKind は対応しているスタイルの閉じた列挙です。
// 文字列キーの辞書引きではなく列挙にすることで、未知のスタイルが
// 「暗黙の辞書ミス」ではなく明示的なフォールバック経路になります。
type StyleKind int

const (
	// StyleCinematic は未知のスタイルのフォールバック先でもあります。
	StyleCinematic StyleKind = iota
	StyleAnime
	StyleOilPainting
	StyleCyberpunk
	StyleComic
	StyleFlowchart
	StyleNeural
	StyleDataScience
)

// styleNames は正規名との対応表なのだ。
var styleNames = map[StyleKind]string{
	StyleCinematic:   "Cinematic",
	StyleAnime:       "Anime",
	StyleOilPainting: "Oil Painting",
	StyleCyberpunk:   "Cyberpunk",
	StyleComic:       "Comic",
	StyleFlowchart:   "Algorithm Flowchart",
	StyleNeural:      "Neural Network",
	StyleDataScience: "Data Science",
}

// String はスタイルの正規名を返します。
func (k StyleKind) String() string {
	if name, ok := styleNames[k]; ok {
		return name
	}
	return "Cinematic"
}

// Technical は図解・技術系スタイル（教育コンテンツ向け）かどうかを返します。
func (k StyleKind) Technical() bool {
	switch k {
	case StyleFlowchart, StyleNeural, StyleDataScience:
		return true
	}
	return false
}

// ParseStyle はスタイル名を列挙値に変換します。
// 未知の名前は StyleCinematic と ok=false を返します。
func ParseStyle(name string) (StyleKind, bool) {
	needle := strings.ToLower(strings.TrimSpace(name))
	for kind, canonical := range styleNames {
		if strings.ToLower(canonical) == needle {
			return kind, true
		}
	}
	return StyleCinematic, false
}

// StyleNames は対応しているスタイルの正規名一覧を返すのだ。
func StyleNames() []string {
	names := make([]string, 0, len(styleNames))
	for _, n := range styleNames {
		names = append(names, n)
	}
	slices.Sort(names)
	return names
}
