package cmd

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/shouni/go-storyteller-kit/internal/pipeline"
)

// turnCmd は、既存セッションに対して1ターンを実行するのだ。
var turnCmd = &cobra.Command{
	Use:   "turn",
	Short: "既存セッションで1ターン分のシーンを生成するのだ。",
	Long: `保存済みセッションを読み込み、入力テキストからナレーションと
フレーム画像を生成してセッションに追記するのだ。入力が長い地の文なら
そのまま分割して可視化し、短いトピックならAIが続きを語るのだよ。`,
	Example: "  ap-story-go turn -s <session-id> -i \"the ship enters the storm\"",
	RunE:    turnCommand,
}

func turnCommand(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	// 1. 必須チェック
	if opts.SessionID == "" {
		return fmt.Errorf("継続するセッション（--session）を指定してほしいのだ")
	}
	input, err := resolveInput()
	if err != nil {
		return err
	}
	if input == "" {
		return fmt.Errorf("入力（--input または --input-file）を指定してほしいのだ")
	}

	// 2. 環境変数等から基本設定をロードするのだ
	cfg := loadConfigWithOptions()

	slog.Info("ターン実行パイプラインを起動するのだ！",
		"session", opts.SessionID,
		"scenes", opts.Scenes,
		"text_model", cfg.GeminiModel)

	if err := pipeline.ExecuteTurn(ctx, cfg, input); err != nil {
		return fmt.Errorf("ターン実行中にエラーが発生したのだ: %w", err)
	}

	slog.Info("ターンの生成が完了したのだ！")
	return nil
}
