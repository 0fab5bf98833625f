// Package sessionstore はセッション状態のディスク永続化と復元を担います。
// メタデータはテンポラリファイルへ書いてからリネームするため、
// 途中でクラッシュしても壊れた JSON が残ることはありません。
package sessionstore

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/shouni/go-storyteller-kit/pkg/domain"
)

const (
	metadataFileName = "session.json"
	imageFilePattern = "scene_%02d.png"
)

// Record はディスク上のセッションレコードの安定した形です。
// インポート／エクスポートの往復でこれらのフィールドは保存されます。
type Record struct {
	SessionID   string           `json:"session_id"`
	Timestamp   string           `json:"timestamp"`
	Character   string           `json:"character"`
	Style       string           `json:"style"`
	Seed        *int64           `json:"seed"`
	Educational bool             `json:"educational_mode"`
	History     string           `json:"history"`
	Messages    []domain.Message `json:"messages,omitempty"`
	Images      []string         `json:"images,omitempty"`
}

// Store はセッションディレクトリ配下の読み書きを担います。
type Store struct {
	baseDir string
}

// New は Store を生成します。ディレクトリは保存時に必要に応じて作られます。
func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

// SessionDir はセッションIDに対応するディレクトリパスを返します。
func (s *Store) SessionDir(sessionID string) string {
	return filepath.Join(s.baseDir, "session_"+sessionID)
}

// Save はセッションの全状態を永続化し、メタデータファイルのパスを返すのだ。
// まだ保存されていないフレーム画像を書き出してから、メタデータを
// 書き込み→リネームの順で確定させる。画像より先にメタデータが
// 存在してしまう瞬間を作らないためなのだ。
func (s *Store) Save(ctx context.Context, sess *domain.Session) (string, error) {
	dir := s.SessionDir(sess.ID)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("セッションディレクトリの作成に失敗したのだ: %w", err)
	}

	if err := s.writeNewImages(ctx, dir, sess); err != nil {
		return "", err
	}

	record := Record{
		SessionID:   sess.ID,
		Timestamp:   time.Now().Format(time.RFC3339),
		Character:   sess.Character,
		Style:       sess.Style,
		Seed:        sess.Seed,
		Educational: sess.Educational,
		History:     sess.History,
		Messages:    sess.Messages,
		Images:      sess.Images,
	}

	path := filepath.Join(dir, metadataFileName)
	if err := writeJSONAtomic(path, record); err != nil {
		return "", err
	}

	slog.Info("セッションを保存したのだ", "path", path, "images", len(sess.Images))
	return path, nil
}

// writeNewImages はパス未設定のフレーム画像をすべてディスクへ書き出します。
// 書き込みは純粋なIOなので並列化しますが、ファイル名の採番は
// フレームの出現順で先に確定させるため、順序は崩れません。
func (s *Store) writeNewImages(ctx context.Context, dir string, sess *domain.Session) error {
	type pending struct {
		path string
		data []byte
	}

	var work []pending
	for ti := range sess.Turns {
		turn := &sess.Turns[ti]
		for fi := range turn.Frames {
			frame := &turn.Frames[fi]
			if frame.ImagePath != "" || frame.Image == nil || len(frame.Image.Data) == 0 {
				continue
			}
			path := filepath.Join(dir, fmt.Sprintf(imageFilePattern, len(sess.Images)+1))
			frame.ImagePath = path
			sess.Images = append(sess.Images, path)
			work = append(work, pending{path: path, data: frame.Image.Data})
		}
	}

	eg, _ := errgroup.WithContext(ctx)
	for _, w := range work {
		eg.Go(func() error {
			if err := os.WriteFile(w.path, w.data, 0o644); err != nil {
				return fmt.Errorf("画像の保存に失敗したのだ (%s): %w", w.path, err)
			}
			return nil
		})
	}
	return eg.Wait()
}

// writeJSONAtomic はテンポラリファイル経由でJSONを書き込みます。
func writeJSONAtomic(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("レコードのエンコードに失敗したのだ: %w", err)
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("テンポラリファイルの書き込みに失敗したのだ: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("メタデータの確定に失敗したのだ: %w", err)
	}
	return nil
}

// Import は外部から与えられたファイルパスからセッションレコードを復元します。
// 壊れたファイルはエラーとして報告されますが、構造化履歴を持たない旧形式の
// レコードは、旧トランスクリプトを参照する1件のメッセージへ再構成されます。
func (s *Store) Import(path string) (*Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("セッションファイルの読み込みに失敗したのだ: %w", err)
	}

	var record Record
	if err := json.Unmarshal(data, &record); err != nil {
		return nil, fmt.Errorf("セッションファイルの解析に失敗したのだ: %w", err)
	}
	if record.SessionID == "" {
		return nil, fmt.Errorf("セッションIDのないレコードなのだ: %s", path)
	}

	// 旧形式: 構造化メッセージがなければ、フリーテキストから1件だけ再構成するのだ
	if len(record.Messages) == 0 && record.History != "" {
		record.Messages = []domain.Message{{
			Speaker: domain.SpeakerSystem,
			Text:    "Restored from legacy transcript:\n" + record.History,
		}}
	}

	return &record, nil
}

// Load はセッションIDから保存済みレコードを復元します。
func (s *Store) Load(sessionID string) (*Record, error) {
	return s.Import(filepath.Join(s.SessionDir(sessionID), metadataFileName))
}

// List は保存済みセッションのディレクトリ名を更新時刻の新しい順で返します。
// セッションIDはUUIDで名前順に意味がないため、並び順はディレクトリの
// 更新時刻が決めます。同時刻は名前の降順で安定化します。
func (s *Store) List() ([]string, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("セッション一覧の取得に失敗したのだ: %w", err)
	}

	type sessionDir struct {
		name string
		mod  time.Time
	}
	var dirs []sessionDir
	for _, e := range entries {
		if !e.IsDir() || !strings.HasPrefix(e.Name(), "session_") || e.Name() == "session_" {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}
		dirs = append(dirs, sessionDir{name: e.Name(), mod: info.ModTime()})
	}

	sort.Slice(dirs, func(i, j int) bool {
		if !dirs[i].mod.Equal(dirs[j].mod) {
			return dirs[i].mod.After(dirs[j].mod)
		}
		return dirs[i].name > dirs[j].name
	})

	names := make([]string, len(dirs))
	for i, d := range dirs {
		names[i] = d.name
	}
	return names, nil
}

// SessionFromRecord はレコードをメモリ上のセッションへ変換します。
func SessionFromRecord(record *Record) *domain.Session {
	createdAt, err := time.Parse(time.RFC3339, record.Timestamp)
	if err != nil {
		createdAt = time.Now()
	}
	return &domain.Session{
		ID:          record.SessionID,
		CreatedAt:   createdAt,
		Character:   record.Character,
		Style:       record.Style,
		Seed:        record.Seed,
		Educational: record.Educational,
		History:     record.History,
		Messages:    record.Messages,
		Images:      record.Images,
	}
}
