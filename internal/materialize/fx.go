package materialize

import (
	"github.com/smallbiznis/invoicesmith/internal/config"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

// NewFromConfig builds the materializer from application configuration.
func NewFromConfig(cfg config.Config, log *zap.Logger) *Materializer {
	return New(cfg.TemplateDir, cfg.OutputDir, log)
}

// Module wires the materializer.
var Module = fx.Module("materialize",
	fx.Provide(NewFromConfig),
)
