package main

import (
	"github.com/bwmarrin/snowflake"
	"github.com/loanridge/loanridge/internal/clock"
	"github.com/loanridge/loanridge/internal/migration"
	"github.com/loanridge/loanridge/internal/observability"
	"github.com/loanridge/loanridge/internal/server"
	"github.com/loanridge/loanridge/pkg/db"
	"go.uber.org/fx"
)

func main() {
	app := fx.New(
		observability.Module,
		fx.Provide(RegisterSnowflake),
		db.Module,
		clock.Module,
		server.Module,
		migration.Module,
	)
	app.Run()
}

func RegisterSnowflake() *snowflake.Node {
	node, err := snowflake.NewNode(1)
	if err != nil {
		panic(err)
	}
	return node
}
