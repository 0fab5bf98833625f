package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/shouni/go-storyteller-kit/internal/pipeline"
)

// importCmd は、外部のセッションJSONを取り込んで保存先へ復元するのだ。
var importCmd = &cobra.Command{
	Use:   "import <session.json>",
	Short: "エクスポート済みのセッションファイルを取り込むのだ。",
	Long: `別の環境から持ち込んだ session.json を検証して保存先へ復元するのだ。
構造化メッセージを持たない旧形式のレコードも、トランスクリプトを
1件のメッセージとして再構成して取り込めるのだよ。`,
	Example: "  ap-story-go import backup/session.json",
	Args:    cobra.ExactArgs(1),
	RunE:    importCommand,
}

func importCommand(cmd *cobra.Command, args []string) error {
	cfg := loadConfigWithOptions()

	if err := pipeline.ExecuteImport(cfg, args[0]); err != nil {
		return fmt.Errorf("インポート処理に失敗したのだ: %w", err)
	}
	return nil
}
