// internal/store/sqlite.go
package store

import (
	"database/sql"
	"fmt"
	"sync"
	"time"

	_ "modernc.org/sqlite"

	"github.com/subashmuthub/Hacktivators/internal/domain/irt"
	"github.com/subashmuthub/Hacktivators/internal/domain/mastery"
)

const schema = `
CREATE TABLE IF NOT EXISTS answer_events (
    id               TEXT PRIMARY KEY,
    learner_id       TEXT NOT NULL,
    concept          TEXT NOT NULL,
    category         TEXT NOT NULL DEFAULT '',
    is_correct       INTEGER NOT NULL,
    response_time_ms INTEGER NOT NULL,
    mastery_pl       REAL NOT NULL,
    discrimination   REAL,
    difficulty       REAL,
    guess_floor      REAL,
    created_at       INTEGER NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_answer_events_learner
    ON answer_events (learner_id, created_at);

CREATE TABLE IF NOT EXISTS mastery_states (
    learner_id     TEXT NOT NULL,
    concept        TEXT NOT NULL,
    p_mastered     REAL NOT NULL,
    stability      REAL NOT NULL,
    review_count   INTEGER NOT NULL,
    last_review_at TEXT NOT NULL,
    PRIMARY KEY (learner_id, concept)
);
`

// defaultAnswerWindow bounds ListAnswers when the caller passes limit <= 0.
const defaultAnswerWindow = 2000

type SQLiteStore struct {
	db *sql.DB
	mu sync.Mutex
}

var _ Store = (*SQLiteStore)(nil)

func NewSQLite(dbPath string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// ============================================================================
// Answer events
// ============================================================================

func (s *SQLiteStore) AppendAnswer(ev AnswerEvent) error {
	var disc, diff, floor any
	if ev.Item != nil {
		disc = ev.Item.Discrimination
		diff = ev.Item.Difficulty
		floor = ev.Item.GuessFloor
	}

	_, err := s.db.Exec(`
		INSERT INTO answer_events
			(id, learner_id, concept, category, is_correct, response_time_ms,
			 mastery_pl, discrimination, difficulty, guess_floor, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		ev.ID, ev.LearnerID, ev.Concept, ev.Category, boolToInt(ev.IsCorrect),
		ev.ResponseTimeMs, ev.MasteryPL, disc, diff, floor,
		ev.CreatedAt.UTC().UnixNano(),
	)
	if err != nil {
		return fmt.Errorf("append answer: %w", err)
	}
	return nil
}

func (s *SQLiteStore) ListAnswers(learnerID string, limit int) ([]AnswerEvent, error) {
	if limit <= 0 {
		limit = defaultAnswerWindow
	}

	rows, err := s.db.Query(`
		SELECT id, learner_id, concept, category, is_correct, response_time_ms,
		       mastery_pl, discrimination, difficulty, guess_floor, created_at
		FROM answer_events
		WHERE learner_id = ?
		ORDER BY created_at DESC
		LIMIT ?`, learnerID, limit)
	if err != nil {
		return nil, fmt.Errorf("list answers: %w", err)
	}
	defer rows.Close()

	var events []AnswerEvent
	for rows.Next() {
		var (
			ev                AnswerEvent
			correct           int
			disc, diff, floor sql.NullFloat64
			createdAt         int64
		)
		if err := rows.Scan(&ev.ID, &ev.LearnerID, &ev.Concept, &ev.Category,
			&correct, &ev.ResponseTimeMs, &ev.MasteryPL,
			&disc, &diff, &floor, &createdAt); err != nil {
			return nil, fmt.Errorf("scan answer: %w", err)
		}
		ev.IsCorrect = correct != 0
		if disc.Valid && diff.Valid && floor.Valid {
			ev.Item = &irt.ItemParams{
				Discrimination: disc.Float64,
				Difficulty:     diff.Float64,
				GuessFloor:     floor.Float64,
			}
		}
		ev.CreatedAt = time.Unix(0, createdAt).UTC()
		events = append(events, ev)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list answers: %w", err)
	}

	// Rows come back newest-first; callers want chronological order.
	for i, j := 0, len(events)-1; i < j; i, j = i+1, j-1 {
		events[i], events[j] = events[j], events[i]
	}
	return events, nil
}

// ============================================================================
// Mastery states
// ============================================================================

func (s *SQLiteStore) GetMasteryState(learnerID, concept string) (mastery.State, error) {
	var (
		st           mastery.State
		lastReviewAt string
	)
	err := s.db.QueryRow(`
		SELECT p_mastered, stability, review_count, last_review_at
		FROM mastery_states
		WHERE learner_id = ? AND concept = ?`, learnerID, concept,
	).Scan(&st.PMastered, &st.Stability, &st.ReviewCount, &lastReviewAt)
	if err == sql.ErrNoRows {
		return mastery.State{}, ErrNotFound
	}
	if err != nil {
		return mastery.State{}, fmt.Errorf("get mastery state: %w", err)
	}

	ts, err := time.Parse(time.RFC3339Nano, lastReviewAt)
	if err != nil {
		return mastery.State{}, fmt.Errorf("parse mastery timestamp: %w", err)
	}
	st.LastReviewAt = ts
	return st, nil
}

func (s *SQLiteStore) SaveMasteryState(learnerID, concept string, st mastery.State) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec(`
		INSERT INTO mastery_states
			(learner_id, concept, p_mastered, stability, review_count, last_review_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT (learner_id, concept) DO UPDATE SET
			p_mastered = excluded.p_mastered,
			stability = excluded.stability,
			review_count = excluded.review_count,
			last_review_at = excluded.last_review_at`,
		learnerID, concept, st.PMastered, st.Stability, st.ReviewCount,
		st.LastReviewAt.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("save mastery state: %w", err)
	}
	return nil
}

func (s *SQLiteStore) ListMasteryStates(learnerID string) (map[string]mastery.State, error) {
	rows, err := s.db.Query(`
		SELECT concept, p_mastered, stability, review_count, last_review_at
		FROM mastery_states
		WHERE learner_id = ?`, learnerID)
	if err != nil {
		return nil, fmt.Errorf("list mastery states: %w", err)
	}
	defer rows.Close()

	states := make(map[string]mastery.State)
	for rows.Next() {
		var (
			concept      string
			st           mastery.State
			lastReviewAt string
		)
		if err := rows.Scan(&concept, &st.PMastered, &st.Stability,
			&st.ReviewCount, &lastReviewAt); err != nil {
			return nil, fmt.Errorf("scan mastery state: %w", err)
		}
		ts, err := time.Parse(time.RFC3339Nano, lastReviewAt)
		if err != nil {
			return nil, fmt.Errorf("parse mastery timestamp: %w", err)
		}
		st.LastReviewAt = ts
		states[concept] = st
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list mastery states: %w", err)
	}
	return states, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
