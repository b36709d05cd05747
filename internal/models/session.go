package models

import (
	"encoding/json"
	"os"
	"path/filepath"
)

// Session identifies the backend data partition the client operates against.
// There is at most one per running client.
type Session struct {
	IDSheet string `json:"id_sheet"`
}

// SessionStore persists the session across restarts
type SessionStore struct {
	SessionFile string
}

func NewSessionStore(configDir string) *SessionStore {
	return &SessionStore{
		SessionFile: filepath.Join(configDir, "session.json"),
	}
}

// Load reads the stored session. A missing file returns (nil, nil); a
// malformed or incomplete file is treated as absent and purged.
func (s *SessionStore) Load() (*Session, error) {
	data, err := os.ReadFile(s.SessionFile)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var session Session
	if err := json.Unmarshal(data, &session); err != nil || session.IDSheet == "" {
		// Corrupt session files would wedge login forever, drop them
		_ = s.Clear()
		return nil, nil
	}

	return &session, nil
}

func (s *SessionStore) Save(session *Session) error {
	data, err := json.Marshal(session)
	if err != nil {
		return err
	}
	return os.WriteFile(s.SessionFile, data, 0600) // Restricted permissions
}

func (s *SessionStore) Clear() error {
	if _, err := os.Stat(s.SessionFile); os.IsNotExist(err) {
		return nil // Nothing to clear
	}
	return os.Remove(s.SessionFile)
}
