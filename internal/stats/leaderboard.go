package stats

import (
	"fmt"
	"io"
	"sort"

	"github.com/verte-zerg/yomiquiz/internal/model"
)

// Leaderboard holds the best rounds, with time attack ranked separately because its
// rounds are bounded by the clock rather than the deck.
type Leaderboard struct {
	TimeAttack []model.ScoreRecord
	Standard   []model.ScoreRecord
}

// HighScores ranks records by points and keeps the top limit of each bucket.
// Ties keep log order, so the earlier round wins.
func HighScores(records []model.ScoreRecord, limit int) Leaderboard {
	var lb Leaderboard
	for _, rec := range records {
		if rec.Mode == model.ModeTimeAttack {
			lb.TimeAttack = append(lb.TimeAttack, rec)
		} else {
			lb.Standard = append(lb.Standard, rec)
		}
	}
	lb.TimeAttack = topByPoints(lb.TimeAttack, limit)
	lb.Standard = topByPoints(lb.Standard, limit)
	return lb
}

func topByPoints(records []model.ScoreRecord, limit int) []model.ScoreRecord {
	sort.SliceStable(records, func(i, j int) bool {
		return records[i].Points > records[j].Points
	})
	if limit > 0 && len(records) > limit {
		records = records[:limit]
	}
	return records
}

// RenderLeaderboard prints both leaderboard tables.
func RenderLeaderboard(w io.Writer, lb Leaderboard) error {
	sections := []struct {
		title   string
		records []model.ScoreRecord
	}{
		{"High Scores", lb.Standard},
		{"Time Attack", lb.TimeAttack},
	}
	for _, section := range sections {
		if _, err := fmt.Fprintln(w, section.title); err != nil {
			return err
		}
		if len(section.records) == 0 {
			if _, err := fmt.Fprintln(w, "No scores yet."); err != nil {
				return err
			}
		} else {
			for _, line := range LeaderboardLines(section.records) {
				if _, err := fmt.Fprintln(w, line); err != nil {
					return err
				}
			}
		}
		if _, err := fmt.Fprintln(w, ""); err != nil {
			return err
		}
	}
	return nil
}

// LeaderboardLines formats ranked records as table lines, header first.
func LeaderboardLines(records []model.ScoreRecord) []string {
	headers := []string{"#", "Points", "Score", "Acc", "Avg", "Mode", "Date"}
	rows := make([][]string, 0, len(records))
	for i, rec := range records {
		rows = append(rows, []string{
			fmt.Sprintf("%d", i+1),
			fmt.Sprintf("%d", rec.Points),
			fmt.Sprintf("%d/%d", rec.Score, rec.Total),
			fmt.Sprintf("%d%%", rec.Percentage),
			fmt.Sprintf("%d", rec.AvgPoints),
			rec.Mode.Label(),
			rec.Date + " " + rec.Time,
		})
	}
	return formatTable(headers, rows, map[int]bool{0: true, 1: true, 2: true, 3: true, 4: true})
}
