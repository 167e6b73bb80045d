package ledger

import (
	ledgerdomain "github.com/smallbiznis/invoicesmith/internal/ledger/domain"
	"github.com/smallbiznis/invoicesmith/internal/ledger/service"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

func migrate(db *gorm.DB) error {
	return db.AutoMigrate(&ledgerdomain.Entry{})
}

var Module = fx.Module("ledger",
	fx.Provide(service.NewService),
	fx.Invoke(migrate),
)
