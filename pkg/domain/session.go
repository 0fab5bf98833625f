package domain

import (
	"math/rand/v2"
	"strings"
	"time"

	"github.com/google/uuid"
)

// 会話履歴に記録する話者タグの定義です。
const (
	SpeakerSystem   = "system"
	SpeakerPlayer   = "player"
	SpeakerNarrator = "narrator"
)

// Message は話者タグ付きの会話履歴1件を保持します。
type Message struct {
	Speaker string `json:"speaker"`
	Text    string `json:"text"`
}

// Session は1つの物語セッションの全状態を保持する構造体なのだ。
// セッションIDで識別され、ターンごとに更新・永続化されるのだよ。
type Session struct {
	ID          string
	CreatedAt   time.Time
	Character   string // 主人公またはトピックの説明文
	Style       string // スタイル識別子（例: "Cinematic"）
	Seed        *int64 // nil の場合は未設定（バックエンド側でランダム化）
	Educational bool   // 教育モード（講義調のフレーミングになる）
	History     string // フリーテキストの全文トランスクリプト
	Messages    []Message
	Images      []string // 保存済み画像パスの累積リスト
	Turns       []Turn
}

// NewSession は新しいセッションを初期化して返すのだ。
// シード値は主人公名から決定論的に導出され、同じ主人公ならセッションを
// またいでも同じ見た目が得られるのだ。名前が空のときだけ抽選するのだよ。
// どちらの場合も、明示的なリセットまでセッション内で固定されるのだ。
func NewSession(character, style string, educational bool) *Session {
	var seed int64
	if strings.TrimSpace(character) != "" {
		seed = SeedFromText(character)
	} else {
		seed = rand.Int64N(1_000_000)
	}
	return &Session{
		ID:          uuid.NewString(),
		CreatedAt:   time.Now(),
		Character:   character,
		Style:       style,
		Seed:        &seed,
		Educational: educational,
	}
}

// SetSeed はシード値を明示的に固定します。負の値は「未設定」として扱います。
func (s *Session) SetSeed(seed int64) {
	if seed < 0 {
		s.Seed = nil
		return
	}
	s.Seed = &seed
}

// AppendTurn は完了した1ターンをセッションに記録するのだ。
// Turn は記録後に変更されない想定なのだよ。
func (s *Session) AppendTurn(t Turn) {
	s.Turns = append(s.Turns, t)

	if t.Input != "" {
		s.Messages = append(s.Messages, Message{Speaker: SpeakerPlayer, Text: t.Input})
		s.History += "\n" + SpeakerPlayer + ": " + t.Input
	}
	if t.Narration != "" {
		s.Messages = append(s.Messages, Message{Speaker: SpeakerNarrator, Text: t.Narration})
		s.History += "\n" + SpeakerNarrator + ": " + t.Narration
	}
}
