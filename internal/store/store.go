package store

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"solscope/internal"
	"solscope/internal/config"
)

// ErrArtifactNotFound reports a missing persisted artifact for an address.
// The caller must re-run ingestion; nothing downstream can recover from it.
var ErrArtifactNotFound = errors.New("artifact not found")

// ContractRow 合约索引表
type ContractRow struct {
	Address        string `gorm:"primaryKey"`
	Name           string
	Compiler       string
	IsOpenSource   bool
	IsProxy        bool
	Implementation string
	FetchedAt      time.Time
}

func (ContractRow) TableName() string {
	return "contracts"
}

// Store persists fetched artifacts twice: the raw source and ABI as files
// under the data dir (keyed by address), and a queryable index row in the
// database.
type Store struct {
	dataDir string
	db      *gorm.DB
}

func Open(dbCfg config.DatabaseConfig, dataDir string) (*Store, error) {
	if dataDir == "" {
		dataDir = "data"
	}
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	var dialector gorm.Dialector
	switch dbCfg.Driver {
	case "sqlite", "":
		path := dbCfg.Path
		if path == "" {
			path = filepath.Join(dataDir, "solscope.db")
		}
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
		dialector = sqlite.Open(path)
	case "postgres":
		dialector = postgres.Open(dbCfg.DSN)
	default:
		return nil, fmt.Errorf("unsupported database driver: %s (supported: sqlite, postgres)", dbCfg.Driver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := db.AutoMigrate(&ContractRow{}); err != nil {
		return nil, fmt.Errorf("failed to migrate contracts table: %w", err)
	}

	return &Store{dataDir: dataDir, db: db}, nil
}

// SaveContract writes the source and ABI artifacts and upserts the index row.
func (s *Store) SaveContract(c *internal.Contract) error {
	if err := os.WriteFile(s.sourcePath(c.Address), []byte(c.Code), 0644); err != nil {
		return fmt.Errorf("failed to save source for %s: %w", c.Address, err)
	}
	if err := os.WriteFile(s.abiPath(c.Address), []byte(c.ABI), 0644); err != nil {
		return fmt.Errorf("failed to save ABI for %s: %w", c.Address, err)
	}

	row := ContractRow{
		Address:        c.Address,
		Name:           c.Name,
		Compiler:       c.Compiler,
		IsOpenSource:   c.IsOpenSource,
		IsProxy:        c.IsProxy,
		Implementation: c.Implementation,
		FetchedAt:      c.FetchedAt,
	}
	if err := s.db.Save(&row).Error; err != nil {
		return fmt.Errorf("failed to index contract %s: %w", c.Address, err)
	}
	return nil
}

// LoadSource returns the persisted source blob for an address.
func (s *Store) LoadSource(address string) (string, error) {
	data, err := os.ReadFile(s.sourcePath(address))
	if err != nil {
		if os.IsNotExist(err) {
			return "", fmt.Errorf("%w: source file for address %s", ErrArtifactNotFound, address)
		}
		return "", fmt.Errorf("failed to read source for %s: %w", address, err)
	}
	return string(data), nil
}

// LoadABI returns the persisted ABI JSON for an address.
func (s *Store) LoadABI(address string) ([]byte, error) {
	data, err := os.ReadFile(s.abiPath(address))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: ABI file for address %s", ErrArtifactNotFound, address)
		}
		return nil, fmt.Errorf("failed to read ABI for %s: %w", address, err)
	}
	return data, nil
}

// HasArtifacts reports whether both artifacts exist for an address.
func (s *Store) HasArtifacts(address string) bool {
	if _, err := os.Stat(s.sourcePath(address)); err != nil {
		return false
	}
	if _, err := os.Stat(s.abiPath(address)); err != nil {
		return false
	}
	return true
}

// GetContractRow returns the index row for an address if present.
func (s *Store) GetContractRow(address string) (*ContractRow, error) {
	var row ContractRow
	err := s.db.First(&row, "address = ?", address).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: index row for address %s", ErrArtifactNotFound, address)
	}
	if err != nil {
		return nil, err
	}
	return &row, nil
}

func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func (s *Store) sourcePath(address string) string {
	return filepath.Join(s.dataDir, fmt.Sprintf("%s_source.sol", address))
}

func (s *Store) abiPath(address string) string {
	return filepath.Join(s.dataDir, fmt.Sprintf("%s_abi.json", address))
}
