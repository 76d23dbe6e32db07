package migration

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// lockKey is held for the length of the migration transaction so two servers
// starting against one database apply scripts once.
const lockKey int64 = 582031977

var scriptName = regexp.MustCompile(`^V(\d+)__([A-Za-z0-9_.-]+)\.sql$`)

// Script is one V<version>__<name>.sql file.
type Script struct {
	Version  int64
	Name     string
	SQL      string
	Checksum string
}

// SchemaMigration is a row of the schema_migrations ledger.
type SchemaMigration struct {
	Version   int64     `gorm:"primaryKey;autoIncrement:false"`
	Name      string    `gorm:"type:text;not null"`
	Checksum  string    `gorm:"type:text;not null"`
	AppliedAt time.Time `gorm:"type:timestamptz;not null"`
}

func (SchemaMigration) TableName() string {
	return "schema_migrations"
}

// Load reads every script at the root of fsys, ordered by version. Other files
// are ignored.
func Load(fsys fs.FS) ([]Script, error) {
	names, err := fs.Glob(fsys, "V*__*.sql")
	if err != nil {
		return nil, err
	}

	scripts := make([]Script, 0, len(names))
	seen := make(map[int64]string, len(names))
	for _, name := range names {
		m := scriptName.FindStringSubmatch(path.Base(name))
		if m == nil {
			continue
		}
		version, err := strconv.ParseInt(m[1], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("migration %s: bad version: %w", name, err)
		}
		if prev, dup := seen[version]; dup {
			return nil, fmt.Errorf("migration version %d used by %s and %s", version, prev, name)
		}
		seen[version] = name

		raw, err := fs.ReadFile(fsys, name)
		if err != nil {
			return nil, err
		}
		body := strings.TrimSpace(string(raw))
		if body == "" {
			return nil, fmt.Errorf("migration %s is empty", name)
		}

		sum := sha256.Sum256([]byte(body))
		scripts = append(scripts, Script{
			Version:  version,
			Name:     m[2],
			SQL:      body,
			Checksum: hex.EncodeToString(sum[:]),
		})
	}

	sort.Slice(scripts, func(i, j int) bool { return scripts[i].Version < scripts[j].Version })
	return scripts, nil
}

// Pending returns the scripts not yet in the ledger. A script whose text no
// longer matches its recorded checksum is an error.
func Pending(scripts []Script, applied []SchemaMigration) ([]Script, error) {
	done := make(map[int64]string, len(applied))
	for _, a := range applied {
		done[a.Version] = a.Checksum
	}

	out := make([]Script, 0, len(scripts))
	for _, s := range scripts {
		sum, ok := done[s.Version]
		if !ok {
			out = append(out, s)
			continue
		}
		if sum != s.Checksum {
			return nil, fmt.Errorf("migration V%d__%s was edited after it was applied", s.Version, s.Name)
		}
	}
	return out, nil
}

// Runner applies the scripts in Dir. All pending scripts run in one
// transaction: either every one is recorded or none is.
type Runner struct {
	Dir    string
	Logger *zap.Logger
	Now    func() time.Time
}

// Run returns the number of scripts applied by this call.
func (r Runner) Run(ctx context.Context, db *gorm.DB) (int, error) {
	if db == nil {
		return 0, errors.New("nil db")
	}
	logger := r.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	now := r.Now
	if now == nil {
		now = time.Now
	}
	dir := strings.TrimSpace(r.Dir)
	if dir == "" {
		dir = "migrations"
	}

	scripts, err := Load(os.DirFS(dir))
	if err != nil {
		return 0, err
	}
	if len(scripts) == 0 {
		logger.Warn("no migrations found", zap.String("dir", dir))
		return 0, nil
	}

	applied := 0
	err = db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("SELECT pg_advisory_xact_lock(?)", lockKey).Error; err != nil {
			return fmt.Errorf("lock migrations: %w", err)
		}
		if err := tx.AutoMigrate(&SchemaMigration{}); err != nil {
			return fmt.Errorf("create ledger: %w", err)
		}

		var ledger []SchemaMigration
		if err := tx.Order("version").Find(&ledger).Error; err != nil {
			return err
		}
		pending, err := Pending(scripts, ledger)
		if err != nil {
			return err
		}

		for _, s := range pending {
			if err := tx.Exec(s.SQL).Error; err != nil {
				return fmt.Errorf("apply V%d__%s: %w", s.Version, s.Name, err)
			}
			row := SchemaMigration{Version: s.Version, Name: s.Name, Checksum: s.Checksum, AppliedAt: now().UTC()}
			if err := tx.Create(&row).Error; err != nil {
				return err
			}
			logger.Info("migration applied", zap.Int64("version", s.Version), zap.String("name", s.Name))
			applied++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return applied, nil
}
