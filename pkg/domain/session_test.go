package domain

import (
	"strings"
	"testing"
)

func TestNewSession(t *testing.T) {
	t.Run("シードは主人公名から決定論的に導出されるのだ", func(t *testing.T) {
		sess := NewSession("a lone astronaut", "Cinematic", false)
		if sess.ID == "" {
			t.Error("セッションIDが空なのだ")
		}
		if sess.Seed == nil {
			t.Fatal("シードが未設定なのだ")
		}
		if *sess.Seed != SeedFromText("a lone astronaut") {
			t.Errorf("名前由来のシードではないのだ: %d", *sess.Seed)
		}

		again := NewSession("a lone astronaut", "Anime", true)
		if *again.Seed != *sess.Seed {
			t.Errorf("同じ主人公なのにシードが揺れたのだ: %d != %d", *again.Seed, *sess.Seed)
		}
	})

	t.Run("主人公名が空なら非負のシードが抽選されるのだ", func(t *testing.T) {
		sess := NewSession("", "Cinematic", false)
		if sess.Seed == nil {
			t.Fatal("シードが未設定なのだ")
		}
		if *sess.Seed < 0 || *sess.Seed >= 1_000_000 {
			t.Errorf("シードが想定範囲外なのだ: %d", *sess.Seed)
		}
	})
}

func TestSession_SetSeed(t *testing.T) {
	t.Run("負のシードは未設定として扱うのだ", func(t *testing.T) {
		sess := NewSession("c", "Anime", false)
		sess.SetSeed(-1)
		if sess.Seed != nil {
			t.Errorf("nil になるべきなのだ: %v", *sess.Seed)
		}
	})

	t.Run("非負のシードはそのまま固定されるのだ", func(t *testing.T) {
		sess := NewSession("c", "Anime", false)
		sess.SetSeed(42)
		if sess.Seed == nil || *sess.Seed != 42 {
			t.Errorf("シードが固定されていないのだ: %v", sess.Seed)
		}
	})
}

func TestSession_AppendTurn(t *testing.T) {
	t.Run("入力とナレーションが話者タグ付きで記録されるのだ", func(t *testing.T) {
		sess := NewSession("c", "Comic", false)
		sess.AppendTurn(Turn{Input: "open the hatch", Narration: "The hatch creaks open."})

		if len(sess.Turns) != 1 {
			t.Fatalf("ターン数が違うのだ: %d", len(sess.Turns))
		}
		if len(sess.Messages) != 2 {
			t.Fatalf("メッセージ数が違うのだ: %d", len(sess.Messages))
		}
		if sess.Messages[0].Speaker != SpeakerPlayer || sess.Messages[1].Speaker != SpeakerNarrator {
			t.Errorf("話者タグの順序が違うのだ: %+v", sess.Messages)
		}
		if !strings.Contains(sess.History, "player: open the hatch") {
			t.Errorf("Historyに入力が残っていないのだ: %q", sess.History)
		}
	})

	t.Run("ナレーションが空のターンはプレイヤー発言だけが残るのだ", func(t *testing.T) {
		sess := NewSession("c", "Comic", false)
		sess.AppendTurn(Turn{Input: "a very long narrative that was visualized directly"})

		if len(sess.Messages) != 1 {
			t.Fatalf("メッセージ数が違うのだ: %d", len(sess.Messages))
		}
		if strings.Contains(sess.History, SpeakerNarrator+":") {
			t.Errorf("空ナレーションが記録されてしまっているのだ: %q", sess.History)
		}
	})
}
