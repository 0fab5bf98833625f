package cmd

import (
	"github.com/spf13/cobra"

	"github.com/shouni/go-storyteller-kit/internal/pipeline"
)

// sessionsCmd は、保存済みセッションの一覧を表示するのだ。
var sessionsCmd = &cobra.Command{
	Use:     "sessions",
	Short:   "保存済みセッションを新しい順に一覧表示するのだ。",
	Example: "  ap-story-go sessions -o sessions",
	RunE:    sessionsCommand,
}

func sessionsCommand(cmd *cobra.Command, args []string) error {
	cfg := loadConfigWithOptions()
	return pipeline.ExecuteSessions(cfg)
}
