package storage

import (
	"fmt"
	"time"

	"github.com/vovakirdan/barnyard-arcade/internal/core"
)

// BoutRecord is a stored brawl round.
type BoutRecord struct {
	ID int64
	core.Bout
	CreatedAt time.Time
}

// FighterRecord is a character's tally across stored bouts.
type FighterRecord struct {
	Character string
	Wins      int
	Losses    int
	Knockouts int // wins by KO
}

// SaveBout records a finished bout and returns its ID.
func (s *Store) SaveBout(b core.Bout) (int64, error) {
	res, err := s.db.Exec(
		`INSERT INTO bouts (p1, p2, winner, reason, p1_health, p2_health, duration_ms, versus)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		b.P1, b.P2, int(b.Winner), b.Reason, b.P1Health, b.P2Health, b.Duration.Milliseconds(), b.Versus,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save bout: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}
	return id, nil
}

// RecentBouts returns the latest bouts, newest first.
func (s *Store) RecentBouts(limit int) ([]BoutRecord, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT id, p1, p2, winner, reason, p1_health, p2_health, duration_ms, versus, created_at
		 FROM bouts
		 ORDER BY id DESC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query bouts: %w", err)
	}
	defer rows.Close()

	var out []BoutRecord
	for rows.Next() {
		var r BoutRecord
		var winner int
		var durationMS int64
		var createdAt any
		if err := rows.Scan(&r.ID, &r.P1, &r.P2, &winner, &r.Reason, &r.P1Health, &r.P2Health, &durationMS, &r.Versus, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan bout: %w", err)
		}
		r.Winner = core.PlayerID(winner)
		r.Duration = time.Duration(durationMS) * time.Millisecond
		r.CreatedAt = parseTime(createdAt)
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return out, nil
}

// FighterRecords tallies wins and losses per character, best record first.
func (s *Store) FighterRecords() ([]FighterRecord, error) {
	rows, err := s.db.Query(
		`SELECT character,
		        SUM(won),
		        SUM(1 - won),
		        SUM(CASE WHEN won = 1 AND reason = 'ko' THEN 1 ELSE 0 END)
		 FROM (
		     SELECT p1 AS character, CASE WHEN winner = 1 THEN 1 ELSE 0 END AS won, reason FROM bouts
		     UNION ALL
		     SELECT p2 AS character, CASE WHEN winner = 2 THEN 1 ELSE 0 END AS won, reason FROM bouts
		 )
		 GROUP BY character
		 ORDER BY SUM(won) DESC, character ASC`,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query fighter records: %w", err)
	}
	defer rows.Close()

	var out []FighterRecord
	for rows.Next() {
		var r FighterRecord
		if err := rows.Scan(&r.Character, &r.Wins, &r.Losses, &r.Knockouts); err != nil {
			return nil, fmt.Errorf("storage: cannot scan fighter record: %w", err)
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return out, nil
}
