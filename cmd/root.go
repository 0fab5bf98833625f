package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/shouni/go-storyteller-kit/internal/config"
	"github.com/shouni/go-storyteller-kit/pkg/domain"
)

// opts は全サブコマンドで共有されるフラグ受け皿なのだ。
var opts = config.GenerateOptions{Seed: -1}

// rootCmd は、アプリケーションのルートコマンドなのだ。
var rootCmd = &cobra.Command{
	Use:   "ap-story-go",
	Short: "物語・漫画・教材シーケンスをAIで生成する対話型CLIなのだ。",
	Long: `テキスト入力を解析してナレーションとシーンフレームを生成し、
セッションとして保存・継続できる対話型のシーケンス生成ツールなのだ。`,
	SilenceUsage:      true,
	PersistentPreRunE: preRunAppE,
}

// addAppFlags は、アプリケーション全般に適用されるグローバルフラグを定義するのだ。
func addAppFlags(rootCmd *cobra.Command) {
	// --- セッション関連 ---
	rootCmd.PersistentFlags().StringVarP(&opts.SessionID, "session", "s", "", "継続するセッションIDなのだ。")
	rootCmd.PersistentFlags().StringVarP(&opts.Character, "character", "c", "", "主人公（教育モードでは講義テーマ）なのだ。")
	rootCmd.PersistentFlags().StringVar(&opts.Style, "style", config.DefaultStyle,
		fmt.Sprintf("ビジュアルスタイル名（%s）なのだ。", strings.Join(domain.StyleNames(), ", ")))
	rootCmd.PersistentFlags().Int64Var(&opts.Seed, "seed", -1, "画像生成シード（負の値で未設定なのだ）。")
	rootCmd.PersistentFlags().BoolVarP(&opts.Educational, "educational", "e", false, "教育モードを有効にするのだ。")

	// --- 入力関連 ---
	rootCmd.PersistentFlags().StringVarP(&opts.Input, "input", "i", "", "今ターンの入力テキストなのだ。")
	rootCmd.PersistentFlags().StringVarP(&opts.InputFile, "input-file", "f", "", "入力ファイルのパス（'-'で標準入力なのだ）。")

	// --- 生成制御 ---
	rootCmd.PersistentFlags().IntVarP(&opts.Scenes, "scenes", "n", config.DefaultSceneCount, "1ターンで生成するフレーム数（1〜5）なのだ。")
	rootCmd.PersistentFlags().BoolVar(&opts.AddCamera, "camera", false, "カメラアングル句をプロンプトへ追加するのだ。")

	// --- AIモデル・挙動設定 ---
	rootCmd.PersistentFlags().StringVar(&opts.AIModel, "model", config.DefaultModel, "使用する Gemini モデル名なのだ。")
	rootCmd.PersistentFlags().StringVar(&opts.ImageModel, "image-model", config.DefaultImageModel, "使用する Gemini 画像モデル名なのだ。")
	rootCmd.PersistentFlags().DurationVar(&opts.HTTPTimeout, "http-timeout", config.DefaultHTTPTimeout, "Webリクエストのタイムアウトなのだ。")
	rootCmd.PersistentFlags().StringVarP(&opts.OutputDir, "output-dir", "o", "", "セッション保存先ディレクトリなのだ。")
}

// preRunAppE は、コマンド実行前に環境変数などの必須チェックを行うのだ。
func preRunAppE(cmd *cobra.Command, args []string) error {
	// .env があれば読むのだ。なくてもエラーにはしないのだよ
	_ = godotenv.Load()

	// sessions / import はAPIキーなしでも動くのだ
	switch cmd.Name() {
	case "sessions", "import":
		return nil
	}

	// Gemini APIを利用するため、APIキーの存在チェックは欠かせないのだ！
	if os.Getenv("GEMINI_API_KEY") == "" {
		return fmt.Errorf("エラー: 環境変数 GEMINI_API_KEY が設定されていません。Gemini APIの利用には必須なのだ")
	}
	return nil
}

// loadConfigWithOptions は環境変数設定にCLIフラグを重ねた Config を返すのだ。
func loadConfigWithOptions() *config.Config {
	cfg := config.LoadConfig()
	cfg.GeminiModel = opts.AIModel
	cfg.GeminiImageModel = opts.ImageModel
	cfg.Options = opts
	return cfg
}

// resolveInput は --input / --input-file / 標準入力の優先順で入力を取り出すのだ。
func resolveInput() (string, error) {
	if opts.Input != "" {
		return opts.Input, nil
	}
	if opts.InputFile == "-" || (opts.InputFile == "" && isStdin()) {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", fmt.Errorf("標準入力の読み込みに失敗したのだ: %w", err)
		}
		return strings.TrimSpace(string(data)), nil
	}
	if opts.InputFile != "" {
		data, err := os.ReadFile(opts.InputFile)
		if err != nil {
			return "", fmt.Errorf("入力ファイルの読み込みに失敗したのだ: %w", err)
		}
		return strings.TrimSpace(string(data)), nil
	}
	return "", nil
}

func isStdin() bool {
	stat, err := os.Stdin.Stat()
	if err != nil {
		return false
	}
	return (stat.Mode() & os.ModeCharDevice) == 0
}

// Execute は、アプリケーションのメインエントリポイントなのだ。
// main.go から呼び出されて、cobra のコマンドライン解析を開始するのだよ。
func Execute() {
	addAppFlags(rootCmd)
	rootCmd.AddCommand(startCmd, turnCmd, sessionsCmd, importCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
