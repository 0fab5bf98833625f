// Package orchestrator は1ターン分の生成ループ全体を駆動します。
// 入力の分類、続きテキストの取得、シーン分割またはショット選択、
// フレームごとのシード解決、プロンプト合成・翻訳、画像生成までを
// フレーム順に逐次実行し、結果を Turn として返します。
package orchestrator

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"unicode/utf8"

	imagedom "github.com/shouni/gemini-image-kit/pkg/domain"
	"golang.org/x/time/rate"

	"github.com/shouni/go-storyteller-kit/pkg/adapters"
	"github.com/shouni/go-storyteller-kit/pkg/domain"
	"github.com/shouni/go-storyteller-kit/pkg/prompts"
	"github.com/shouni/go-storyteller-kit/pkg/scene"
	"github.com/shouni/go-storyteller-kit/pkg/variation"
)

// anchorMaxRunes はナラティブの文脈アンカー（先頭文）の最大長なのだ。
const anchorMaxRunes = 100

// defaultAspectRatio は生成フレームのアスペクト比です。
const defaultAspectRatio = "1:1"

// TurnOptions は1ターンの実行パラメータです。
type TurnOptions struct {
	SceneCount int  // 生成するフレーム数（1以上。参照UIでは1〜5）
	AddCamera  bool // カメラアングル句を明示的に要求する
}

// Orchestrator は1ターンの生成を司る司令塔です。
type Orchestrator struct {
	texts         adapters.TextGenerator
	images        adapters.ImageBackend
	translator    adapters.Translator
	selector      *variation.Selector
	composer      *prompts.Composer
	limiter       *rate.Limiter
	qualitySuffix string
}

// New は Orchestrator を生成します。limiter は画像生成呼び出しの流量を
// 制御します（nil の場合は制限なし）。
func New(
	texts adapters.TextGenerator,
	images adapters.ImageBackend,
	translator adapters.Translator,
	limiter *rate.Limiter,
	qualitySuffix string,
) *Orchestrator {
	return &Orchestrator{
		texts:         texts,
		images:        images,
		translator:    translator,
		selector:      variation.NewSelector(texts),
		composer:      prompts.NewComposer(),
		limiter:       limiter,
		qualitySuffix: qualitySuffix,
	}
}

// RunTurn は1回のやり取りを実行し、続きのテキストとフレーム列を返します。
// フレームはインデックス順に逐次生成され、途中の失敗は劣化した成果物へ
// 置き換えられるため、部分的なロールバックは発生しません。
func (o *Orchestrator) RunTurn(ctx context.Context, input string, sess *domain.Session, opts TurnOptions) (domain.Turn, error) {
	count := opts.SceneCount
	if count < 1 {
		count = 1
	}

	// (a) 入力の分類はターン開始時に一度だけ行い、ターン中は変わらないのだ
	narrative := domain.IsNarrative(input)

	// (b) トピックモードでは外部モデルに続きを語らせる。ナラティブモードでは
	// 入力そのものが物語本文なので、新しいテキストは生成しないのだ
	narration := input
	generated := ""
	if !narrative {
		generated = o.texts.Generate(ctx, sess.History, input, adapters.TextOptions{Educational: sess.Educational})
		narration = generated
	}

	// (c) 台詞を取り除いた視覚描写部分を抽出するのだ
	visual := scene.ExtractVisualPart(narration)

	style, known := domain.ParseStyle(sess.Style)
	if !known && sess.Style != "" {
		slog.Warn("未知のスタイルなので Cinematic 相当として扱うのだ", "style", sess.Style)
	}

	// (d) ショット説明の取得。ナラティブなら本文を渡してシーン分割へ、
	// トピックならトピック文字列を渡して選択ロジックへ委ねるのだ
	drive := visual
	if !narrative {
		drive = input
	}
	shots := o.selector.Select(ctx, drive, style, sess.Educational, count)

	// (e) 被写体コンテキストの決定。ナラティブでは本文そのものの先頭文を
	// アンカーとして全フレームで共有し、代名詞の参照先がぶれないようにするのだ。
	// 台詞除去後ではなく除去前の本文から取るため、台詞で始まる物語でも
	// アンカーは文字通りの書き出しになるのだ
	subject := o.frameSubject(narrative, narration, input, sess)

	slog.Info("フレームシーケンスの生成を開始するのだ",
		"session", sess.ID, "narrative", narrative, "style", style.String(), "frames", len(shots))

	frames := make([]domain.Frame, 0, len(shots))
	for i, shot := range shots {
		frame, err := o.generateFrame(ctx, i, shot, subject, style, narrative, sess, opts)
		if err != nil {
			return domain.Turn{}, err
		}
		frames = append(frames, frame)
	}

	return domain.Turn{Input: input, Narration: generated, Frames: frames}, nil
}

// generateFrame は1フレーム分の合成・翻訳・画像生成を行います。
func (o *Orchestrator) generateFrame(
	ctx context.Context,
	index int,
	shot, subject string,
	style domain.StyleKind,
	narrative bool,
	sess *domain.Session,
	opts TurnOptions,
) (domain.Frame, error) {
	seed := resolveSeed(sess.Seed, index, narrative || style == domain.StyleComic)

	positive, negative := o.composer.Compose(shot, subject, style, prompts.ComposeOptions{
		Educational: sess.Educational,
		AddCamera:   opts.AddCamera,
	})

	// (g) 両プロンプトを翻訳し、品質の目印が落ちていたら強制的に付け直すのだ
	positive = o.translator.Translate(ctx, positive)
	negative = o.translator.Translate(ctx, negative)
	if !strings.Contains(positive, prompts.QualityMarker) {
		positive += ", " + o.qualitySuffix
	}

	// (h) 画像生成。レートリミッターで流量を抑えつつ、フレーム順を崩さないのだ
	if o.limiter != nil {
		if err := o.limiter.Wait(ctx); err != nil {
			return domain.Frame{}, fmt.Errorf("レート制限の待機中に中断されたのだ: %w", err)
		}
	}

	slog.Info("フレームを生成中なのだ", "index", index+1, "seed", seedForLog(seed))

	resp, err := o.images.Generate(ctx, imagedom.ImageGenerationRequest{
		Prompt:         positive,
		NegativePrompt: negative,
		Seed:           seed,
		AspectRatio:    defaultAspectRatio,
	})
	if err != nil {
		// FallbackImageBackend を通していれば到達しないが、契約として
		// ここでもプレースホルダーに落としてターンを継続するのだ
		slog.Error("画像バックエンドがエラーを返したのだ", "index", index+1, "error", err)
		resp = adapters.Placeholder(positive, err.Error())
	}

	return domain.Frame{
		Index:          index,
		Shot:           shot,
		Prompt:         positive,
		NegativePrompt: negative,
		Seed:           seed,
		Image:          resp,
	}, nil
}

// frameSubject は全フレームで共有する被写体コンテキストを決定します。
func (o *Orchestrator) frameSubject(narrative bool, narration, input string, sess *domain.Session) string {
	if narrative {
		return contextAnchor(narration)
	}
	if sess.Educational || strings.TrimSpace(sess.Character) == "" {
		return input
	}
	return sess.Character
}

// contextAnchor はナラティブの先頭文を最大長で切り詰めた一貫性アンカーを返します。
func contextAnchor(narrativeText string) string {
	first := narrativeText
	for i, r := range narrativeText {
		if strings.ContainsRune(".!?。！？", r) {
			first = narrativeText[:i+utf8.RuneLen(r)]
			break
		}
	}
	first = strings.TrimSpace(first)

	runes := []rune(first)
	if len(runes) > anchorMaxRunes {
		first = string(runes[:anchorMaxRunes])
	}
	return first
}

// resolveSeed はフレームのシードを解決します。ナラティブ・コミックでは
// 連続するシーンの見た目を揃えるため全フレームで同一シードを、
// それ以外では独立したトピック図解に多様性を持たせるためシード+iを使います。
// セッションシードが未設定ならフレームも未設定のまま（バックエンドが乱数化）です。
func resolveSeed(base *int64, index int, shared bool) *int64 {
	if base == nil {
		return nil
	}
	v := *base
	if !shared {
		v += int64(index)
	}
	return &v
}

func seedForLog(seed *int64) int64 {
	if seed == nil {
		return -1
	}
	return *seed
}
