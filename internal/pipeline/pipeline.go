// Package pipeline は各サブコマンドの実行本体です。
// コラボレーターの構築、ターンの駆動、セッションの永続化をここで束ねます。
package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/shouni/go-storyteller-kit/internal/builder"
	"github.com/shouni/go-storyteller-kit/internal/config"
	"github.com/shouni/go-storyteller-kit/pkg/domain"
	"github.com/shouni/go-storyteller-kit/pkg/orchestrator"
	"github.com/shouni/go-storyteller-kit/pkg/sessionstore"
)

// ExecuteStart は新しいセッションを開始し、導入ターンを生成するのだ。
func ExecuteStart(ctx context.Context, cfg *config.Config) error {
	appCtx, err := builder.BuildAppContext(ctx, cfg)
	if err != nil {
		return err
	}

	opts := cfg.Options
	sess := domain.NewSession(opts.Character, opts.Style, opts.Educational)
	if opts.Seed >= 0 {
		sess.SetSeed(opts.Seed)
	}

	slog.Info("新しいセッションを開始するのだ！",
		"session", sess.ID, "character", opts.Character, "style", opts.Style, "educational", opts.Educational)

	// 導入ターンの入力は役割に合わせたフレーミングで組み立てるのだ
	intro := introPrompt(opts.Character, opts.Style, opts.Educational)
	turn, err := runAndRecord(ctx, appCtx, sess, intro)
	if err != nil {
		return err
	}

	printTurn(sess, turn)
	return nil
}

// ExecuteTurn は既存セッションに対して1ターンを実行するのだ。
func ExecuteTurn(ctx context.Context, cfg *config.Config, input string) error {
	appCtx, err := builder.BuildAppContext(ctx, cfg)
	if err != nil {
		return err
	}

	record, err := appCtx.Store.Load(cfg.Options.SessionID)
	if err != nil {
		return fmt.Errorf("セッションの復元に失敗したのだ: %w", err)
	}
	sess := sessionstore.SessionFromRecord(record)

	slog.Info("ターンを実行するのだ", "session", sess.ID, "input_len", len(input))

	turn, err := runAndRecord(ctx, appCtx, sess, input)
	if err != nil {
		return err
	}

	printTurn(sess, turn)
	return nil
}

// ExecuteSessions は保存済みセッションの一覧を表示するのだ。
func ExecuteSessions(cfg *config.Config) error {
	store := sessionStore(cfg)
	names, err := store.List()
	if err != nil {
		return err
	}

	if len(names) == 0 {
		fmt.Println("保存済みのセッションはまだないのだ。")
		return nil
	}
	for _, name := range names {
		fmt.Println(name)
	}
	return nil
}

// ExecuteImport は外部ファイルからセッションレコードを復元するのだ。
// 壊れたファイルでもクラッシュせず、状態メッセージを返して終わるのだ。
func ExecuteImport(cfg *config.Config, path string) error {
	store := sessionStore(cfg)
	record, err := store.Import(path)
	if err != nil {
		fmt.Printf("インポートできなかったのだ: %v\n", err)
		return nil
	}

	sess := sessionstore.SessionFromRecord(record)
	if _, err := store.Save(context.Background(), sess); err != nil {
		return fmt.Errorf("インポートしたセッションの保存に失敗したのだ: %w", err)
	}

	fmt.Printf("セッション %s をインポートしたのだ（style=%s, messages=%d, images=%d）\n",
		record.SessionID, record.Style, len(record.Messages), len(record.Images))
	return nil
}

// runAndRecord はターンの実行・セッションへの記録・永続化をまとめて行います。
// 永続化の失敗はログに残すだけで、ターンの結果は呼び出し元へ返ります。
func runAndRecord(ctx context.Context, appCtx *builder.AppContext, sess *domain.Session, input string) (domain.Turn, error) {
	opts := appCtx.Options
	turn, err := appCtx.Orchestrator.RunTurn(ctx, input, sess, orchestrator.TurnOptions{
		SceneCount: sceneCount(opts.Scenes),
		AddCamera:  opts.AddCamera,
	})
	if err != nil {
		return domain.Turn{}, fmt.Errorf("ターンの実行に失敗したのだ: %w", err)
	}

	sess.AppendTurn(turn)

	if _, err := appCtx.Store.Save(ctx, sess); err != nil {
		// 保存失敗でターンは失われない。セッションはメモリ上で継続するのだ
		slog.Error("セッションの保存に失敗したのだ", "session", sess.ID, "error", err)
	}
	return turn, nil
}

// introPrompt はセッション開始時の導入用フレーミングを作るのだ。
func introPrompt(character, style string, educational bool) string {
	if educational {
		return fmt.Sprintf("Lesson topic: %s. Presentation style: %s. Introduction:", character, style)
	}
	return fmt.Sprintf("The story begins. Main character: %s. Genre: %s. Opening:", character, style)
}

// sceneCount はフレーム数を参照UIの範囲（1〜5）へクランプします。
func sceneCount(n int) int {
	if n < 1 {
		return config.DefaultSceneCount
	}
	if n > config.MaxSceneCount {
		return config.MaxSceneCount
	}
	return n
}

func sessionStore(cfg *config.Config) *sessionstore.Store {
	dir := cfg.Options.OutputDir
	if dir == "" {
		dir = cfg.SessionsDir
	}
	return sessionstore.New(dir)
}

// printTurn はターンの結果を標準出力へ整形して出すのだ。
func printTurn(sess *domain.Session, turn domain.Turn) {
	if turn.Narration != "" {
		fmt.Fprintln(os.Stdout, turn.Narration)
	}
	for _, frame := range turn.Frames {
		fmt.Fprintf(os.Stdout, "  [%d] %s -> %s\n", frame.Index+1, frame.Shot, frame.ImagePath)
	}
	fmt.Fprintf(os.Stdout, "session: %s\n", sess.ID)
}
