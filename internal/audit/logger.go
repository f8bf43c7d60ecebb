package audit

import (
	"context"
	"encoding/json"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/appointmenttech-api/internal/models"
)

type Logger struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Logger {
	return &Logger{db: db}
}

func (l *Logger) Log(ctx context.Context, ev Event) error {
	var values datatypes.JSON
	if ev.Values != nil {
		if b, err := json.Marshal(ev.Values); err == nil {
			values = b
		}
	}

	entry := models.AuditLog{
		UserID:         ev.Actor.UserID,
		BusinessUserID: ev.BusinessUserID,
		ActionType:     ev.Action,
		Table:          ev.Table,
		RecordID:       ev.RecordID,
		NewValues:      values,
		IPAddress:      ev.Actor.IP,
		UserAgent:      ev.Actor.UserAgent,
		SessionID:      ev.Actor.SessionID,
	}

	return l.db.WithContext(ctx).Create(&entry).Error
}

const (
	DefaultLimit = 50
	MaxLimit     = 200
)

// Filter narrows the audit trail. Exactly one of UserID or BusinessUserID
// scopes the query.
type Filter struct {
	UserID         *uint
	BusinessUserID *uint

	Action string
	Table  string
	From   *time.Time
	To     *time.Time

	Page  int
	Limit int
}

// Normalize applies the paging defaults.
func (f *Filter) Normalize() {
	if f.Page <= 0 {
		f.Page = 1
	}
	if f.Limit <= 0 || f.Limit > MaxLimit {
		f.Limit = DefaultLimit
	}
}

func (l *Logger) List(ctx context.Context, f Filter) ([]models.AuditLog, int64, error) {
	f.Normalize()

	q := l.db.WithContext(ctx).Model(&models.AuditLog{})

	if f.BusinessUserID != nil {
		q = q.Where("business_user_id = ?", *f.BusinessUserID)
	} else if f.UserID != nil {
		q = q.Where("user_id = ?", *f.UserID)
	}
	if f.Action != "" {
		q = q.Where("action_type = ?", f.Action)
	}
	if f.Table != "" {
		q = q.Where("table_name = ?", f.Table)
	}
	if f.From != nil {
		q = q.Where("created_at >= ?", *f.From)
	}
	if f.To != nil {
		q = q.Where("created_at < ?", *f.To)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var logs []models.AuditLog
	if err := q.
		Order("created_at DESC").
		Limit(f.Limit).
		Offset((f.Page - 1) * f.Limit).
		Find(&logs).Error; err != nil {
		return nil, 0, err
	}

	return logs, total, nil
}
