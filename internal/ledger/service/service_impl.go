package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	ledgerdomain "github.com/smallbiznis/invoicesmith/internal/ledger/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type ServiceParam struct {
	fx.In

	DB  *gorm.DB
	Log *zap.Logger
}

type Service struct {
	db  *gorm.DB
	log *zap.Logger
}

func NewService(p ServiceParam) ledgerdomain.Service {
	return &Service{
		db:  p.DB,
		log: p.Log.Named("ledger.service"),
	}
}

// Append persists one submission with a server-assigned identifier and a
// UTC timestamp. Entries are never updated or deleted.
func (s *Service) Append(ctx context.Context, req ledgerdomain.AppendRequest) (ledgerdomain.Entry, error) {
	rec := req.Record
	entry := ledgerdomain.Entry{
		UniqueID:    uuid.NewString(),
		InvoiceType: string(rec.Type),
		InvoiceNo:   rec.InvoiceNo,
		InvoiceDate: rec.InvoiceDate.Display(),
		DueDate:     rec.DueDate.Display(),
		Name:        rec.Name,
		StoreName:   rec.StoreName,
		Address:     rec.Address,
		Phone:       rec.Phone,
		Email:       rec.Email,
		Service:     rec.Service,
		Cost:        rec.Cost,
		GST:         rec.GST,
		Total:       rec.Total,
		Metadata:    formMetadata(req.Form),
		Timestamp:   time.Now().UTC(),
	}

	if err := s.db.WithContext(ctx).Create(&entry).Error; err != nil {
		return ledgerdomain.Entry{}, fmt.Errorf("append ledger entry: %w", err)
	}

	s.log.Info("ledger entry appended",
		zap.String("unique_id", entry.UniqueID),
		zap.String("invoice_no", entry.InvoiceNo),
	)
	return entry, nil
}

func formMetadata(form map[string]string) datatypes.JSONMap {
	meta := datatypes.JSONMap{}
	for k, v := range form {
		meta[k] = v
	}
	return meta
}
