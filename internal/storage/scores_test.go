package storage

import "testing"

func TestGameStats(t *testing.T) {
	store := openTemp(t)

	for _, s := range []int{100, 300} {
		if _, err := store.SaveScore("ocean", s); err != nil {
			t.Fatalf("SaveScore: %v", err)
		}
	}
	if _, err := store.SaveScore("space", 40); err != nil {
		t.Fatalf("SaveScore: %v", err)
	}

	st, err := store.GetGameStats("ocean")
	if err != nil {
		t.Fatalf("GetGameStats: %v", err)
	}
	if st.GamesCount != 2 || st.HighScore != 300 || st.AvgScore != 200 || st.TotalScore != 400 {
		t.Errorf("ocean stats = %+v", st)
	}
	if st.LastPlayed.IsZero() {
		t.Error("LastPlayed not set")
	}

	empty, err := store.GetGameStats("brawl")
	if err != nil {
		t.Fatalf("GetGameStats(unplayed): %v", err)
	}
	if empty.GamesCount != 0 || !empty.LastPlayed.IsZero() {
		t.Errorf("unplayed stats = %+v", empty)
	}

	all, err := store.GetAllGamesStats()
	if err != nil {
		t.Fatalf("GetAllGamesStats: %v", err)
	}
	if len(all) != 2 || all["space"] == nil || all["space"].HighScore != 40 {
		t.Errorf("all stats = %v", all)
	}
}

func TestTopScoresTiesKeepInsertOrder(t *testing.T) {
	store := openTemp(t)

	var ids []int64
	for range 3 {
		id, err := store.SaveScore("space", 50)
		if err != nil {
			t.Fatalf("SaveScore: %v", err)
		}
		ids = append(ids, id)
	}

	top, err := store.TopScores("space", 2)
	if err != nil {
		t.Fatalf("TopScores: %v", err)
	}
	if len(top) != 2 || top[0].ID != ids[0] || top[1].ID != ids[1] {
		t.Errorf("top = %+v, want the two earliest ties", top)
	}
}

// seedScores saves each game's scores in order.
func seedScores(t *testing.T, store *Store, scores map[string][]int) {
	t.Helper()
	for game, list := range scores {
		for _, s := range list {
			if _, err := store.SaveScore(game, s); err != nil {
				t.Fatalf("SaveScore(%s, %d): %v", game, s, err)
			}
		}
	}
}

func TestScoresStayPerGame(t *testing.T) {
	store := openTemp(t)
	seedScores(t, store, map[string][]int{
		"ocean": {100, 50, 1250, 300, 800},
		"space": {500},
	})

	tests := []struct {
		game  string
		limit int
		want  []int
		high  int
		total int
	}{
		{"ocean", 3, []int{1250, 800, 300}, 1250, 5},
		{"ocean", 0, []int{1250, 800, 300, 100, 50}, 1250, 5},
		{"space", 10, []int{500}, 500, 1},
		{"brawl", 10, nil, 0, 0},
	}
	for _, tt := range tests {
		top, err := store.TopScores(tt.game, tt.limit)
		if err != nil {
			t.Fatalf("TopScores(%s): %v", tt.game, err)
		}
		if len(top) != len(tt.want) {
			t.Errorf("TopScores(%s, %d) returned %d entries, expected %d", tt.game, tt.limit, len(top), len(tt.want))
			continue
		}
		for i, s := range tt.want {
			if top[i].Score != s || top[i].GameID != tt.game {
				t.Errorf("TopScores(%s)[%d] = %+v, expected %d", tt.game, i, top[i], s)
			}
		}

		high, err := store.HighScore(tt.game)
		if err != nil || high != tt.high {
			t.Errorf("HighScore(%s) = %d, %v; expected %d", tt.game, high, err, tt.high)
		}
		all, err := store.AllScores(tt.game)
		if err != nil || len(all) != tt.total {
			t.Errorf("AllScores(%s) = %d entries, %v; expected %d", tt.game, len(all), err, tt.total)
		}
	}
}

func TestAllScoresIgnoresTopLimit(t *testing.T) {
	store := openTemp(t)
	space := make([]int, 25)
	for i := range space {
		space[i] = i * 10
	}
	seedScores(t, store, map[string][]int{"space": space})

	all, err := store.AllScores("space")
	if err != nil {
		t.Fatalf("AllScores: %v", err)
	}
	if len(all) != 25 || all[0].Score != 240 {
		t.Errorf("AllScores returned %d entries starting at %+v", len(all), all[0])
	}
}

func TestClearScoresOnlyTouchesOneGame(t *testing.T) {
	store := openTemp(t)
	seedScores(t, store, map[string][]int{
		"ocean": {100, 200},
		"space": {300},
	})

	if err := store.ClearScores("ocean"); err != nil {
		t.Fatalf("ClearScores: %v", err)
	}
	if ocean, _ := store.AllScores("ocean"); len(ocean) != 0 {
		t.Errorf("ocean still has %d scores", len(ocean))
	}
	if high, _ := store.HighScore("space"); high != 300 {
		t.Errorf("space high score = %d after clearing ocean", high)
	}
}
