package config

import (
	"time"

	"github.com/shouni/go-utils/envutil"
)

// デフォルト値の定義なのだ
const (
	DefaultModel         = "gemini-3-flash-preview"
	DefaultImageModel    = "gemini-3-pro-image-preview"
	DefaultHTTPTimeout   = 30 * time.Second
	DefaultRateInterval  = 10 * time.Second
	DefaultSceneCount    = 3
	MaxSceneCount        = 5
	DefaultSessionsDir   = "sessions"
	DefaultStyle         = "Cinematic"
	DefaultQualitySuffix = "high quality, masterpiece, sharp focus, highly detailed, intricate details, professional digital art"
)

// Config はアプリケーション全体の環境設定（APIキーやモデル名）を保持する構造体なのだ。
type Config struct {
	GeminiAPIKey     string
	GeminiModel      string
	GeminiImageModel string
	QualitySuffix    string
	SessionsDir      string

	Options GenerateOptions
}

// LoadConfig は環境変数から設定を読み込み、構造体を返すのだ！
func LoadConfig() *Config {
	return &Config{
		GeminiAPIKey:     envutil.GetEnv("GEMINI_API_KEY", ""),
		GeminiModel:      envutil.GetEnv("GEMINI_MODEL", DefaultModel),
		GeminiImageModel: envutil.GetEnv("IMAGE_GEMINI_MODEL", DefaultImageModel),
		QualitySuffix:    envutil.GetEnv("QUALITY_PROMPT_SUFFIX", DefaultQualitySuffix),
		SessionsDir:      envutil.GetEnv("SESSIONS_DIR", DefaultSessionsDir),
	}
}

// GenerateOptions は CLI フラグから渡される実行時のパラメータなのだ。
type GenerateOptions struct {
	// セッション関連
	SessionID   string // --session
	Character   string // --character
	Style       string // --style
	Seed        int64  // --seed（負の値は未設定扱い）
	Educational bool   // --educational

	// 入力関連
	Input     string // --input
	InputFile string // --input-file（'-'で標準入力）

	// 生成制御
	Scenes    int  // --scenes: 1ターンで生成するフレーム数
	AddCamera bool // --camera: カメラアングル句を追加する

	// AI挙動設定
	AIModel    string // --model: テキスト生成用のGeminiモデル
	ImageModel string // --image-model: 画像生成用のGeminiモデル

	// 実行制御
	OutputDir   string        // --output-dir: セッション保存先
	HTTPTimeout time.Duration // --http-timeout
}
