package mapstore

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

// Schema таблицы mapping'ов. Применяется в Open.
const Schema = `
CREATE TABLE IF NOT EXISTS hook_mappings (
	scope TEXT NOT NULL,
	old_id INTEGER NOT NULL,
	new_id INTEGER NOT NULL,
	updated_at INTEGER NOT NULL,
	PRIMARY KEY (scope, old_id)
);
`

// Store — SQLite-хранилище hook mapping'ов.
type Store struct {
	db *sql.DB
}

// Open открывает (или создаёт) хранилище по пути к файлу.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open mapping store: %w", err)
	}

	if _, err := db.Exec(Schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("init mapping store schema: %w", err)
	}

	return &Store{db: db}, nil
}

// Load возвращает сохранённый mapping для scope.
// Отсутствие записей — не ошибка: возвращается пустой map.
func (s *Store) Load(ctx context.Context, scope string) (map[int]int, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT old_id, new_id FROM hook_mappings WHERE scope = ?`, scope)
	if err != nil {
		return nil, fmt.Errorf("load mapping: %w", err)
	}
	defer rows.Close()

	mapping := make(map[int]int)
	for rows.Next() {
		var oldID, newID int
		if err := rows.Scan(&oldID, &newID); err != nil {
			return nil, fmt.Errorf("scan mapping row: %w", err)
		}
		mapping[oldID] = newID
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate mapping rows: %w", err)
	}
	return mapping, nil
}

// Save записывает mapping для scope (upsert по old_id) в одной транзакции.
func (s *Store) Save(ctx context.Context, scope string, mapping map[int]int) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin mapping save: %w", err)
	}
	defer tx.Rollback()

	now := time.Now().Unix()
	for oldID, newID := range mapping {
		_, err := tx.ExecContext(ctx, `
INSERT INTO hook_mappings (scope, old_id, new_id, updated_at) VALUES (?, ?, ?, ?)
ON CONFLICT (scope, old_id) DO UPDATE SET new_id = excluded.new_id, updated_at = excluded.updated_at`,
			scope, oldID, newID, now)
		if err != nil {
			return fmt.Errorf("save mapping entry %d: %w", oldID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit mapping save: %w", err)
	}
	return nil
}

// Scopes возвращает все scope с сохранёнными mapping'ами.
func (s *Store) Scopes(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT DISTINCT scope FROM hook_mappings ORDER BY scope`)
	if err != nil {
		return nil, fmt.Errorf("list scopes: %w", err)
	}
	defer rows.Close()

	var scopes []string
	for rows.Next() {
		var scope string
		if err := rows.Scan(&scope); err != nil {
			return nil, fmt.Errorf("scan scope: %w", err)
		}
		scopes = append(scopes, scope)
	}
	return scopes, rows.Err()
}

// Close закрывает хранилище.
func (s *Store) Close() error {
	return s.db.Close()
}
