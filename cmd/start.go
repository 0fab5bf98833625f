package cmd

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"github.com/shouni/go-storyteller-kit/internal/pipeline"
	"github.com/shouni/go-storyteller-kit/pkg/domain"
)

// startCmd は、新しいセッションを開いて導入ターンを生成するのだ。
var startCmd = &cobra.Command{
	Use:   "start",
	Short: "新しいセッションを開始して導入シーンを生成するのだ！",
	Long: `主人公（またはテーマ）とスタイルを指定して新しいセッションを作り、
最初のナレーションとフレーム画像を生成するのだ。生成されたセッションIDで
turn コマンドから物語を継続できるのだよ。`,
	Example: "  ap-story-go start -c \"a lone astronaut\" --style Cinematic",
	RunE:    startCommand,
}

func startCommand(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	// 1. 必須チェック
	if opts.Character == "" {
		return fmt.Errorf("主人公またはテーマ（--character）を指定してほしいのだ")
	}
	if _, ok := domain.ParseStyle(opts.Style); !ok {
		slog.Warn("未知のスタイル名なのだ。Cinematicにフォールバックするのだよ",
			"style", opts.Style, "available", strings.Join(domain.StyleNames(), ", "))
	}

	// 2. 環境変数等から基本設定をロードするのだ
	cfg := loadConfigWithOptions()

	slog.Info("セッション開始パイプラインを起動するのだ！",
		"character", opts.Character,
		"style", opts.Style,
		"educational", opts.Educational,
		"text_model", cfg.GeminiModel,
		"image_model", cfg.GeminiImageModel)

	if err := pipeline.ExecuteStart(ctx, cfg); err != nil {
		return fmt.Errorf("セッション開始に失敗したのだ: %w", err)
	}

	slog.Info("導入シーンの生成が完了したのだ！")
	return nil
}
