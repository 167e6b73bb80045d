package main

import (
	"github.com/smallbiznis/invoicesmith/internal/config"
	"github.com/smallbiznis/invoicesmith/internal/ledger"
	"github.com/smallbiznis/invoicesmith/internal/logger"
	"github.com/smallbiznis/invoicesmith/internal/materialize"
	"github.com/smallbiznis/invoicesmith/internal/server"
	"github.com/smallbiznis/invoicesmith/pkg/db"
	"go.uber.org/fx"
)

func main() {
	app := fx.New(
		config.Module,
		logger.Module,
		db.Module,

		ledger.Module,
		materialize.Module,
		server.Module,
	)
	app.Run()
}
