package variation

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/shouni/go-storyteller-kit/pkg/domain"
)

// fakeStoryboarder はテスト用の Storyboarder 実装なのだ。
type fakeStoryboarder struct {
	shots []string
	err   error
}

func (f *fakeStoryboarder) GenerateStoryboard(ctx context.Context, topic, style string, count int) ([]string, error) {
	return f.shots, f.err
}

func TestSelector_Select(t *testing.T) {
	ctx := context.Background()

	t.Run("どの経路でも必ずcount個のショットが返るのだ", func(t *testing.T) {
		s := NewSelector(nil)
		for _, count := range []int{1, 3, 5, 8} {
			shots := s.Select(ctx, "space travel", domain.StyleCinematic, false, count)
			if len(shots) != count {
				t.Errorf("count=%d で %d 個返ったのだ", count, len(shots))
			}
		}
	})

	t.Run("長文のナラティブはシーン分割へ委譲されるのだ", func(t *testing.T) {
		s := NewSelector(nil)
		text := "The ship drifted through the void. Stars wheeled overhead. The captain watched the console. Alarms began to sound. Everyone ran to their stations."
		shots := s.Select(ctx, text, domain.StyleCinematic, false, 3)

		if len(shots) != 3 {
			t.Fatalf("シーン数が違うのだ: %d", len(shots))
		}
		joined := strings.Join(shots, " ")
		if !strings.Contains(joined, "The ship drifted through the void.") {
			t.Errorf("本文がシーンに反映されていないのだ: %q", joined)
		}
	})

	t.Run("教育モードはストーリーボードを第一候補にするのだ", func(t *testing.T) {
		s := NewSelector(&fakeStoryboarder{shots: []string{"intro diagram", "core concept", "worked example"}})
		shots := s.Select(ctx, "recursion", domain.StyleFlowchart, true, 3)

		if shots[0] != "intro diagram" || shots[2] != "worked example" {
			t.Errorf("ストーリーボードが使われていないのだ: %v", shots)
		}
	})

	t.Run("ストーリーボードの失敗は汎用リストへフォールバックするのだ", func(t *testing.T) {
		s := NewSelector(&fakeStoryboarder{err: errors.New("model unavailable")})
		shots := s.Select(ctx, "recursion", domain.StyleFlowchart, true, 2)

		if len(shots) != 2 {
			t.Fatalf("ショット数が違うのだ: %d", len(shots))
		}
		if shots[0] != genericShots[0] {
			t.Errorf("汎用リストが使われていないのだ: %v", shots)
		}
	})

	t.Run("ストーリーボードの枚数不足もフォールバックするのだ", func(t *testing.T) {
		s := NewSelector(&fakeStoryboarder{shots: []string{"only one"}})
		shots := s.Select(ctx, "recursion", domain.StyleNeural, true, 3)

		if shots[0] == "only one" {
			t.Errorf("不足した結果が採用されてしまったのだ: %v", shots)
		}
	})

	t.Run("バブルソートはラテン・キリルどちらの綴りでも検出されるのだ", func(t *testing.T) {
		s := NewSelector(nil)
		for _, subject := range []string{"bubble sort", "Пузырьковая сортировка"} {
			shots := s.Select(ctx, subject, domain.StyleFlowchart, false, 8)
			if shots[0] != bubbleSortShots[0] {
				t.Errorf("%q でバブルソート系列が選ばれなかったのだ: %v", subject, shots[0])
			}
		}
	})

	t.Run("クイックソートも専用の系列になるのだ", func(t *testing.T) {
		s := NewSelector(nil)
		shots := s.Select(ctx, "quick sort visualization", domain.StyleDataScience, false, 4)
		if shots[0] != quickSortShots[0] {
			t.Errorf("クイックソート系列が選ばれなかったのだ: %v", shots[0])
		}
	})

	t.Run("既定リストはcountが超過すると循環するのだ", func(t *testing.T) {
		s := NewSelector(nil)
		shots := s.Select(ctx, "a castle", domain.StyleAnime, false, 5)

		if len(shots) != 5 {
			t.Fatalf("ショット数が違うのだ: %d", len(shots))
		}
		if shots[3] != defaultShots[0] || shots[4] != defaultShots[1] {
			t.Errorf("循環していないのだ: %v", shots)
		}
	})
}
