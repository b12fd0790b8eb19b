package memory

import (
	"encoding/json"
	"os"

	"github.com/BHARGAV-S54/code-battle/internal/domain"
)

// SnapshotFile persists a client's last good state snapshot as JSON, the
// fallback a degraded sync client reloads when the authoritative source is
// unreachable.
type SnapshotFile struct {
	path string
}

func NewSnapshotFile(path string) *SnapshotFile {
	return &SnapshotFile{path: path}
}

func (f *SnapshotFile) Load() (domain.ContestSnapshot, error) {
	var snap domain.ContestSnapshot
	data, err := os.ReadFile(f.path)
	if err != nil {
		return snap, err
	}
	if err := json.Unmarshal(data, &snap); err != nil {
		return domain.ContestSnapshot{}, err
	}
	return snap, nil
}

func (f *SnapshotFile) Save(snap domain.ContestSnapshot) error {
	data, err := json.Marshal(snap)
	if err != nil {
		return err
	}
	return os.WriteFile(f.path, data, 0o644)
}
