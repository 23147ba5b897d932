package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"net/http"
)

// GetSetting returns the value stored under key. ok is false when unset.
func GetSetting(ctx context.Context, db *sql.DB, key string) (value string, ok bool, err error) {
	err = db.QueryRowContext(ctx, `SELECT value FROM settings WHERE key = ?`, key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("querying setting %s: %w", key, err)
	}
	return value, true, nil
}

// SetSetting stores value under key.
func SetSetting(ctx context.Context, db *sql.DB, key, value string) error {
	_, err := db.ExecContext(ctx,
		`INSERT INTO settings (key, value) VALUES (?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		key, value,
	)
	if err != nil {
		return fmt.Errorf("storing setting %s: %w", key, err)
	}
	return nil
}

// DeleteSetting removes key. Removing an unset key is not an error.
func DeleteSetting(ctx context.Context, db *sql.DB, key string) error {
	if _, err := db.ExecContext(ctx, `DELETE FROM settings WHERE key = ?`, key); err != nil {
		return fmt.Errorf("deleting setting %s: %w", key, err)
	}
	return nil
}

// savedCookie is the persisted part of a session cookie. Domain and path
// are re-derived from the server URL on restore.
type savedCookie struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

func sessionKey(baseURL string) string {
	return "session:" + baseURL
}

// SaveSession persists the session cookies held for baseURL. An empty
// list forgets the session.
func SaveSession(ctx context.Context, db *sql.DB, baseURL string, cookies []*http.Cookie) error {
	if len(cookies) == 0 {
		return DeleteSetting(ctx, db, sessionKey(baseURL))
	}

	saved := make([]savedCookie, 0, len(cookies))
	for _, c := range cookies {
		saved = append(saved, savedCookie{Name: c.Name, Value: c.Value})
	}
	data, err := json.Marshal(saved)
	if err != nil {
		return fmt.Errorf("encoding session: %w", err)
	}
	return SetSetting(ctx, db, sessionKey(baseURL), string(data))
}

// LoadSession returns the saved session cookies for baseURL, if any.
func LoadSession(ctx context.Context, db *sql.DB, baseURL string) ([]*http.Cookie, error) {
	value, ok, err := GetSetting(ctx, db, sessionKey(baseURL))
	if err != nil || !ok {
		return nil, err
	}

	var saved []savedCookie
	if err := json.Unmarshal([]byte(value), &saved); err != nil {
		return nil, fmt.Errorf("decoding session: %w", err)
	}
	cookies := make([]*http.Cookie, 0, len(saved))
	for _, s := range saved {
		cookies = append(cookies, &http.Cookie{Name: s.Name, Value: s.Value, Path: "/"})
	}
	return cookies, nil
}
