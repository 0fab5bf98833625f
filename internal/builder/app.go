package builder

import (
	"github.com/shouni/go-storyteller-kit/internal/config"
	"github.com/shouni/go-storyteller-kit/pkg/orchestrator"
	"github.com/shouni/go-storyteller-kit/pkg/sessionstore"
)

// AppContext は、アプリケーション実行に必要な共通コンテキストを保持する。
// これを各 Execute 関数に渡すことで、依存関係の注入を簡素化します。
// テキスト生成などのコラボレーターは Orchestrator が内部に抱えるため、
// ここでは実行単位で参照されるものだけを公開します。
type AppContext struct {
	Config       *config.Config         // 環境変数から読み込まれたグローバルな設定
	Options      config.GenerateOptions // コマンドラインから渡された実行時の設定
	Orchestrator *orchestrator.Orchestrator
	Store        *sessionstore.Store
}

// NewAppContext は AppContext の新しいインスタンスを生成する
func NewAppContext(
	cfg *config.Config,
	orc *orchestrator.Orchestrator,
	store *sessionstore.Store,
) AppContext {
	return AppContext{
		Config:       cfg,
		Options:      cfg.Options,
		Orchestrator: orc,
		Store:        store,
	}
}
