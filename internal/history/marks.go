package history

import (
	"database/sql"
	"errors"
	"strings"
	"time"
)

// Marker records and reports opened stories.
type Marker interface {
	MarkRead(storyID int) error
	ReadSet(storyIDs []int) (map[int]bool, error)
}

// MarkRead records that a story was opened now.
func (d *DB) MarkRead(storyID int) error {
	_, err := d.db.Exec(`INSERT OR REPLACE INTO read_marks (story_id, opened_at) VALUES (?, ?)`,
		storyID, time.Now().Unix())
	return err
}

// OpenedAt returns when a story was last opened. ok is false if never.
func (d *DB) OpenedAt(storyID int) (opened time.Time, ok bool, err error) {
	var unix int64
	err = d.db.QueryRow(`SELECT opened_at FROM read_marks WHERE story_id = ?`, storyID).Scan(&unix)
	if errors.Is(err, sql.ErrNoRows) {
		return time.Time{}, false, nil
	}
	if err != nil {
		return time.Time{}, false, err
	}
	return time.Unix(unix, 0), true, nil
}

// ReadSet returns the subset of storyIDs that have been opened.
func (d *DB) ReadSet(storyIDs []int) (map[int]bool, error) {
	result := make(map[int]bool)
	if len(storyIDs) == 0 {
		return result, nil
	}

	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(storyIDs)), ",")
	args := make([]any, len(storyIDs))
	for i, id := range storyIDs {
		args[i] = id
	}

	rows, err := d.db.Query(`SELECT story_id FROM read_marks WHERE story_id IN (`+placeholders+`)`, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var id int
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		result[id] = true
	}
	return result, rows.Err()
}

// Prune deletes marks older than the cutoff and returns how many were removed.
func (d *DB) Prune(olderThan time.Time) (int64, error) {
	res, err := d.db.Exec(`DELETE FROM read_marks WHERE opened_at < ?`, olderThan.Unix())
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// Disabled is a Marker that records nothing.
type Disabled struct{}

func (Disabled) MarkRead(int) error { return nil }

func (Disabled) ReadSet([]int) (map[int]bool, error) { return map[int]bool{}, nil }
