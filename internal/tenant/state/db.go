package state

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/lumeahq/lumea/internal/tenant/domain"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// TenantState is a keyed JSON value in the tenant_state table.
type TenantState struct {
	Key       string         `gorm:"primaryKey;type:text" json:"key"`
	Value     datatypes.JSON `gorm:"not null" json:"value"`
	UpdatedAt time.Time      `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// TableName sets the database table name.
func (TenantState) TableName() string { return "tenant_state" }

type dbStore struct {
	db       *gorm.DB
	defaults []domain.Organization
	log      *zap.Logger
}

// NewDBStore builds a gorm-backed Store and migrates its table.
func NewDBStore(db *gorm.DB, defaults []domain.Organization, log *zap.Logger) (Store, error) {
	if err := db.AutoMigrate(&TenantState{}); err != nil {
		return nil, err
	}
	return &dbStore{
		db:       db,
		defaults: defaults,
		log:      log.Named("tenant.state"),
	}, nil
}

func (s *dbStore) LoadTenants(ctx context.Context) ([]domain.Organization, error) {
	var row TenantState
	err := s.db.WithContext(ctx).First(&row, "key = ?", KeyKnownTenants).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return normalizeAll(cloneDefaults(s.defaults)), nil
	}
	if err != nil {
		return nil, err
	}

	var tenants []domain.Organization
	if err := json.Unmarshal(row.Value, &tenants); err != nil {
		s.log.Warn("corrupt known tenants payload, falling back to defaults", zap.Error(err))
		return normalizeAll(cloneDefaults(s.defaults)), nil
	}
	return normalizeAll(tenants), nil
}

func (s *dbStore) SaveTenants(ctx context.Context, tenants []domain.Organization) error {
	payload, err := json.Marshal(tenants)
	if err != nil {
		return err
	}
	return s.upsert(ctx, KeyKnownTenants, payload)
}

func (s *dbStore) LoadActiveTenantID(ctx context.Context) (string, error) {
	var row TenantState
	err := s.db.WithContext(ctx).First(&row, "key = ?", KeyActiveTenantID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", nil
	}
	if err != nil {
		return "", err
	}

	var id string
	if err := json.Unmarshal(row.Value, &id); err != nil {
		s.log.Warn("corrupt active tenant id payload, treating as unset", zap.Error(err))
		return "", nil
	}
	return id, nil
}

func (s *dbStore) SaveActiveTenantID(ctx context.Context, id string) error {
	payload, err := json.Marshal(id)
	if err != nil {
		return err
	}
	return s.upsert(ctx, KeyActiveTenantID, payload)
}

func (s *dbStore) upsert(ctx context.Context, key string, value []byte) error {
	row := TenantState{Key: key, Value: value, UpdatedAt: time.Now().UTC()}
	return s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&row).Error
}

func cloneDefaults(defaults []domain.Organization) []domain.Organization {
	out := make([]domain.Organization, len(defaults))
	copy(out, defaults)
	return out
}
