package orchestrator

import (
	"context"
	"strings"
	"testing"

	imagedom "github.com/shouni/gemini-image-kit/pkg/domain"

	"github.com/shouni/go-storyteller-kit/pkg/adapters"
	"github.com/shouni/go-storyteller-kit/pkg/domain"
	"github.com/shouni/go-storyteller-kit/pkg/prompts"
)

// fakeTexts は固定のナレーションを返すテスト用 TextGenerator なのだ。
type fakeTexts struct {
	narration string
	calls     int
}

func (f *fakeTexts) Generate(ctx context.Context, contextText, input string, opts adapters.TextOptions) string {
	f.calls++
	return f.narration
}

func (f *fakeTexts) GenerateStoryboard(ctx context.Context, topic, style string, count int) ([]string, error) {
	return nil, nil
}

// fakeImages は受け取ったリクエストを記録するテスト用 ImageBackend なのだ。
type fakeImages struct {
	requests []imagedom.ImageGenerationRequest
}

func (f *fakeImages) Generate(ctx context.Context, req imagedom.ImageGenerationRequest) (*imagedom.ImageResponse, error) {
	f.requests = append(f.requests, req)
	return &imagedom.ImageResponse{Data: []byte{0xAA}, MimeType: "image/png"}, nil
}

// identityTranslator は原文をそのまま返すのだ。
type identityTranslator struct{}

func (identityTranslator) Translate(ctx context.Context, text string) string { return text }

// droppingTranslator は翻訳で品質の目印が失われた状況を再現するのだ。
type droppingTranslator struct{}

func (droppingTranslator) Translate(ctx context.Context, text string) string {
	return strings.ReplaceAll(text, prompts.QualityMarker, "shedevr")
}

const narrativeInput = "The ship drifted through the void. Stars wheeled overhead. The captain watched the console. Alarms began to sound."

func newTestSession(seed int64) *domain.Session {
	sess := domain.NewSession("a lone astronaut", "Cinematic", false)
	sess.SetSeed(seed)
	return sess
}

func TestOrchestrator_RunTurn(t *testing.T) {
	ctx := context.Background()

	t.Run("トピックモードではナレーションが生成されシードは+iでずれるのだ", func(t *testing.T) {
		texts := &fakeTexts{narration: "The narrator describes the scene."}
		images := &fakeImages{}
		o := New(texts, images, identityTranslator{}, nil, prompts.QualityBooster)

		sess := newTestSession(100)
		turn, err := o.RunTurn(ctx, "open the hatch", sess, TurnOptions{SceneCount: 3})
		if err != nil {
			t.Fatalf("ターンが失敗したのだ: %v", err)
		}

		if texts.calls != 1 {
			t.Errorf("テキスト生成は1回だけのはずなのだ: %d", texts.calls)
		}
		if turn.Narration != "The narrator describes the scene." {
			t.Errorf("ナレーションが記録されていないのだ: %q", turn.Narration)
		}
		if len(turn.Frames) != 3 {
			t.Fatalf("フレーム数が違うのだ: %d", len(turn.Frames))
		}
		for i, frame := range turn.Frames {
			if frame.Seed == nil || *frame.Seed != 100+int64(i) {
				t.Errorf("フレーム%dのシードが違うのだ: %v", i, frame.Seed)
			}
		}
	})

	t.Run("ナラティブモードでは新規生成せず全フレームが同一シードなのだ", func(t *testing.T) {
		texts := &fakeTexts{narration: "should not be used"}
		images := &fakeImages{}
		o := New(texts, images, identityTranslator{}, nil, prompts.QualityBooster)

		sess := newTestSession(7)
		turn, err := o.RunTurn(ctx, narrativeInput, sess, TurnOptions{SceneCount: 3})
		if err != nil {
			t.Fatalf("ターンが失敗したのだ: %v", err)
		}

		if texts.calls != 0 {
			t.Errorf("ナラティブモードでテキスト生成が呼ばれたのだ: %d", texts.calls)
		}
		if turn.Narration != "" {
			t.Errorf("ナラティブモードのNarrationは空のはずなのだ: %q", turn.Narration)
		}
		for i, frame := range turn.Frames {
			if frame.Seed == nil || *frame.Seed != 7 {
				t.Errorf("フレーム%dのシードが共有されていないのだ: %v", i, frame.Seed)
			}
		}
	})

	t.Run("ナラティブのアンカーは台詞込みの先頭文から取られるのだ", func(t *testing.T) {
		texts := &fakeTexts{}
		images := &fakeImages{}
		o := New(texts, images, identityTranslator{}, nil, prompts.QualityBooster)

		// 台詞で始まる物語。台詞除去後のテキストからアンカーを取ると
		// 書き出しが "cried the old shepherd..." にずれてしまうのだ
		input := `"Run for the hills!" cried the old shepherd as the flood waters rose over the village fields and roads.`
		sess := newTestSession(3)
		if _, err := o.RunTurn(ctx, input, sess, TurnOptions{SceneCount: 2}); err != nil {
			t.Fatalf("ターンが失敗したのだ: %v", err)
		}

		for i, req := range images.requests {
			if !strings.HasPrefix(req.Prompt, `"Run for the hills!`) {
				t.Errorf("フレーム%dのアンカーが本文の書き出しではないのだ: %q", i, req.Prompt)
			}
		}
	})

	t.Run("コミックスタイルもトピック入力で同一シードを共有するのだ", func(t *testing.T) {
		texts := &fakeTexts{narration: "A short tale unfolds."}
		images := &fakeImages{}
		o := New(texts, images, identityTranslator{}, nil, prompts.QualityBooster)

		sess := domain.NewSession("a brave knight", "Comic", false)
		sess.SetSeed(55)
		turn, err := o.RunTurn(ctx, "the dragon appears", sess, TurnOptions{SceneCount: 2})
		if err != nil {
			t.Fatalf("ターンが失敗したのだ: %v", err)
		}
		for i, frame := range turn.Frames {
			if frame.Seed == nil || *frame.Seed != 55 {
				t.Errorf("フレーム%dのシードが共有されていないのだ: %v", i, frame.Seed)
			}
		}
	})

	t.Run("セッションシード未設定ならフレームも未設定のままなのだ", func(t *testing.T) {
		texts := &fakeTexts{narration: "A scene."}
		o := New(texts, &fakeImages{}, identityTranslator{}, nil, prompts.QualityBooster)

		sess := domain.NewSession("c", "Anime", false)
		sess.SetSeed(-1)
		turn, err := o.RunTurn(ctx, "a topic", sess, TurnOptions{SceneCount: 2})
		if err != nil {
			t.Fatalf("ターンが失敗したのだ: %v", err)
		}
		for i, frame := range turn.Frames {
			if frame.Seed != nil {
				t.Errorf("フレーム%dにシードが付いてしまったのだ: %d", i, *frame.Seed)
			}
		}
	})

	t.Run("翻訳で品質の目印が落ちたら強制的に付け直すのだ", func(t *testing.T) {
		texts := &fakeTexts{narration: "A scene."}
		images := &fakeImages{}
		suffix := "high quality, masterpiece"
		o := New(texts, images, droppingTranslator{}, nil, suffix)

		sess := newTestSession(1)
		turn, err := o.RunTurn(ctx, "a topic", sess, TurnOptions{SceneCount: 1})
		if err != nil {
			t.Fatalf("ターンが失敗したのだ: %v", err)
		}
		if !strings.HasSuffix(turn.Frames[0].Prompt, suffix) {
			t.Errorf("品質サフィックスが付け直されていないのだ: %q", turn.Frames[0].Prompt)
		}
	})

	t.Run("画像バックエンドへ渡るリクエストにネガティブプロンプトが入るのだ", func(t *testing.T) {
		texts := &fakeTexts{narration: "A scene."}
		images := &fakeImages{}
		o := New(texts, images, identityTranslator{}, nil, prompts.QualityBooster)

		sess := newTestSession(1)
		if _, err := o.RunTurn(ctx, "a topic", sess, TurnOptions{SceneCount: 1}); err != nil {
			t.Fatalf("ターンが失敗したのだ: %v", err)
		}
		if len(images.requests) != 1 {
			t.Fatalf("画像リクエスト数が違うのだ: %d", len(images.requests))
		}
		req := images.requests[0]
		if req.NegativePrompt == "" {
			t.Error("ネガティブプロンプトが空なのだ")
		}
		if req.AspectRatio != defaultAspectRatio {
			t.Errorf("アスペクト比が違うのだ: %q", req.AspectRatio)
		}
	})
}

func TestContextAnchor(t *testing.T) {
	t.Run("先頭文だけがアンカーになるのだ", func(t *testing.T) {
		got := contextAnchor("The sun rose over the hills. Birds sang loudly.")
		if got != "The sun rose over the hills." {
			t.Errorf("アンカーが違うのだ: %q", got)
		}
	})

	t.Run("日本語の文末記号でも正しく切れるのだ", func(t *testing.T) {
		got := contextAnchor("朝が来た。鳥が鳴いた。")
		if got != "朝が来た。" {
			t.Errorf("アンカーが違うのだ: %q", got)
		}
	})

	t.Run("長すぎる先頭文は最大長で切り詰めるのだ", func(t *testing.T) {
		long := strings.Repeat("word ", 40) + "end."
		got := contextAnchor(long)
		if runes := []rune(got); len(runes) > anchorMaxRunes {
			t.Errorf("切り詰めが効いていないのだ: %dルーン", len(runes))
		}
	})
}
