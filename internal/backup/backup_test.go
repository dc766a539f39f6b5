package backup

import (
	"database/sql"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	_ "modernc.org/sqlite"

	"github.com/julianstephens/sknn/internal/constants"
)

func setupTestDB(t *testing.T) string {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "sknn.db")

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}
	defer db.Close()

	if _, err := db.Exec(`CREATE TABLE kv (key TEXT PRIMARY KEY, value TEXT NOT NULL, updated_at TEXT NOT NULL)`); err != nil {
		t.Fatalf("failed to create kv table: %v", err)
	}
	if _, err := db.Exec(`INSERT INTO kv (key, value, updated_at) VALUES ('sknn-routines', '[]', '2026-01-15T09:00:00Z')`); err != nil {
		t.Fatalf("failed to insert test data: %v", err)
	}
	return dbPath
}

// steppingClock advances one minute per call so every backup gets its own name.
func steppingClock() func() time.Time {
	t := time.Date(2026, 1, 15, 9, 0, 0, 0, time.Local)
	return func() time.Time {
		t = t.Add(time.Minute)
		return t
	}
}

func kvValue(t *testing.T, path string) string {
	t.Helper()
	db, err := sql.Open("sqlite", path)
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	defer db.Close()

	var v string
	if err := db.QueryRow("SELECT value FROM kv WHERE key = 'sknn-routines'").Scan(&v); err != nil {
		t.Fatalf("failed to read kv: %v", err)
	}
	return v
}

func setKVValue(t *testing.T, path, value string) {
	t.Helper()
	db, err := sql.Open("sqlite", path)
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	defer db.Close()

	if _, err := db.Exec("UPDATE kv SET value = ? WHERE key = 'sknn-routines'", value); err != nil {
		t.Fatalf("failed to update kv: %v", err)
	}
}

func TestCreateBackup(t *testing.T) {
	dbPath := setupTestDB(t)
	clock := func() time.Time { return time.Date(2026, 1, 15, 9, 30, 0, 0, time.Local) }

	mgr := NewManager(dbPath, WithClock(clock))
	backupPath, err := mgr.CreateBackup()
	if err != nil {
		t.Fatalf("CreateBackup failed: %v", err)
	}

	if got, want := filepath.Base(backupPath), "sknn-20260115-0930.db"; got != want {
		t.Errorf("backup name = %s, want %s", got, want)
	}
	if filepath.Dir(backupPath) != filepath.Join(filepath.Dir(dbPath), constants.BackupDirName) {
		t.Errorf("backup written outside backup dir: %s", backupPath)
	}
	if got := kvValue(t, backupPath); got != "[]" {
		t.Errorf("backup value = %q, want []", got)
	}
}

func TestCreateBackupMissingDatabase(t *testing.T) {
	mgr := NewManager(filepath.Join(t.TempDir(), "missing.db"))
	if _, err := mgr.CreateBackup(); err == nil {
		t.Fatal("expected CreateBackup to fail without a database")
	}
}

func TestCreateBackupSameMinute(t *testing.T) {
	dbPath := setupTestDB(t)
	clock := func() time.Time { return time.Date(2026, 1, 15, 9, 30, 15, 0, time.Local) }
	mgr := NewManager(dbPath, WithClock(clock))

	seen := map[string]bool{}
	for i := 0; i < 3; i++ {
		path, err := mgr.CreateBackup()
		if err != nil {
			t.Fatalf("CreateBackup #%d failed: %v", i, err)
		}
		if seen[path] {
			t.Fatalf("backup #%d reused %s", i, path)
		}
		seen[path] = true
	}

	backups, err := mgr.ListBackups()
	if err != nil {
		t.Fatalf("ListBackups failed: %v", err)
	}
	if len(backups) != 3 {
		t.Errorf("expected 3 backups, got %d", len(backups))
	}
}

func TestBackupRotation(t *testing.T) {
	dbPath := setupTestDB(t)
	mgr := NewManager(dbPath, WithClock(steppingClock()))

	for i := 0; i < constants.MaxBackups+5; i++ {
		if _, err := mgr.CreateBackup(); err != nil {
			t.Fatalf("CreateBackup #%d failed: %v", i, err)
		}
	}

	backups, err := mgr.ListBackups()
	if err != nil {
		t.Fatalf("ListBackups failed: %v", err)
	}
	if len(backups) != constants.MaxBackups {
		t.Fatalf("expected %d backups after rotation, got %d", constants.MaxBackups, len(backups))
	}
	for i := 1; i < len(backups); i++ {
		if backups[i].Timestamp.After(backups[i-1].Timestamp) {
			t.Errorf("backup %d is newer than backup %d", i, i-1)
		}
	}
	if got, want := backups[0].Name(), "sknn-20260115-0919.db"; got != want {
		t.Errorf("newest backup = %s, want %s", got, want)
	}
}

func TestWithRetention(t *testing.T) {
	dbPath := setupTestDB(t)
	mgr := NewManager(dbPath, WithClock(steppingClock()), WithRetention(2))

	for i := 0; i < 4; i++ {
		if _, err := mgr.CreateBackup(); err != nil {
			t.Fatalf("CreateBackup #%d failed: %v", i, err)
		}
	}
	backups, err := mgr.ListBackups()
	if err != nil {
		t.Fatalf("ListBackups failed: %v", err)
	}
	if len(backups) != 2 {
		t.Errorf("expected 2 backups, got %d", len(backups))
	}
}

func TestListBackups(t *testing.T) {
	dbPath := setupTestDB(t)
	mgr := NewManager(dbPath, WithClock(steppingClock()))

	backups, err := mgr.ListBackups()
	if err != nil {
		t.Fatalf("ListBackups failed: %v", err)
	}
	if len(backups) != 0 {
		t.Errorf("expected 0 backups initially, got %d", len(backups))
	}

	for i := 0; i < 3; i++ {
		if _, err := mgr.CreateBackup(); err != nil {
			t.Fatalf("CreateBackup #%d failed: %v", i, err)
		}
	}

	for _, name := range []string{"notes.txt", "sknn-latest.db", "other-20260115-0900.db"} {
		if err := os.WriteFile(filepath.Join(mgr.GetBackupDir(), name), []byte("x"), 0600); err != nil {
			t.Fatalf("WriteFile failed: %v", err)
		}
	}

	backups, err = mgr.ListBackups()
	if err != nil {
		t.Fatalf("ListBackups failed: %v", err)
	}
	if len(backups) != 3 {
		t.Fatalf("expected 3 backups, got %d", len(backups))
	}
	for _, b := range backups {
		if b.Size == 0 {
			t.Errorf("%s has zero size", b.Name())
		}
		if b.Timestamp.IsZero() {
			t.Errorf("%s has zero timestamp", b.Name())
		}
	}
}

func TestParseBackupName(t *testing.T) {
	tests := []struct {
		name   string
		want   time.Time
		wantOK bool
	}{
		{"sknn-20260115-0930.db", time.Date(2026, 1, 15, 9, 30, 0, 0, time.Local), true},
		{"sknn-20260115-093012.db", time.Date(2026, 1, 15, 9, 30, 12, 0, time.Local), true},
		{"sknn-20260115-093012-3.db", time.Date(2026, 1, 15, 9, 30, 12, 0, time.Local), true},
		{"sknn-20260115.db", time.Time{}, false},
		{"sknn-20261315-0930.db", time.Time{}, false},
		{"other-20260115-0930.db", time.Time{}, false},
		{"sknn-20260115-0930.db.tmp", time.Time{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := parseBackupName(tt.name)
			if ok != tt.wantOK {
				t.Fatalf("ok = %v, want %v", ok, tt.wantOK)
			}
			if !got.Equal(tt.want) {
				t.Errorf("timestamp = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRestoreBackup(t *testing.T) {
	dbPath := setupTestDB(t)
	mgr := NewManager(dbPath, WithClock(steppingClock()))

	backupPath, err := mgr.CreateBackup()
	if err != nil {
		t.Fatalf("CreateBackup failed: %v", err)
	}

	setKVValue(t, dbPath, `[{"id":"a"}]`)

	safety, err := mgr.RestoreBackup(backupPath)
	if err != nil {
		t.Fatalf("RestoreBackup failed: %v", err)
	}
	if got := kvValue(t, dbPath); got != "[]" {
		t.Errorf("restored value = %q, want []", got)
	}
	if safety == "" {
		t.Fatal("expected a safety backup of the replaced database")
	}
	if got := kvValue(t, safety); got != `[{"id":"a"}]` {
		t.Errorf("safety backup value = %q", got)
	}
	if _, err := os.Stat(dbPath + ".restore.tmp"); !os.IsNotExist(err) {
		t.Error("temporary restore file left behind")
	}
}

func TestRestoreBackupRejectsInvalidFiles(t *testing.T) {
	dbPath := setupTestDB(t)
	mgr := NewManager(dbPath)
	dir := t.TempDir()

	garbage := filepath.Join(dir, "garbage.db")
	if err := os.WriteFile(garbage, []byte("this is not sqlite"), 0600); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	foreign := filepath.Join(dir, "foreign.db")
	db, err := sql.Open("sqlite", foreign)
	if err != nil {
		t.Fatalf("failed to create foreign database: %v", err)
	}
	if _, err := db.Exec("CREATE TABLE tasks (id TEXT)"); err != nil {
		t.Fatalf("failed to create table: %v", err)
	}
	db.Close()

	tests := []struct {
		name string
		path string
		want string
	}{
		{"missing", filepath.Join(dir, "missing.db"), "does not exist"},
		{"not sqlite", garbage, "corrupted or invalid"},
		{"no kv table", foreign, "corrupted or invalid"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := mgr.RestoreBackup(tt.path)
			if err == nil {
				t.Fatal("expected RestoreBackup to fail")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error = %v, want it to contain %q", err, tt.want)
			}
			if got := kvValue(t, dbPath); got != "[]" {
				t.Errorf("database changed by failed restore: %q", got)
			}
		})
	}
}
