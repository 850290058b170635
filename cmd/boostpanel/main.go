package main

import (
	"github.com/bwmarrin/snowflake"
	"github.com/jawadsites/boostpanel/internal/migration"
	"github.com/jawadsites/boostpanel/internal/observability"
	"github.com/jawadsites/boostpanel/internal/server"
	"github.com/jawadsites/boostpanel/pkg/db"
	"go.uber.org/fx"
)

func main() {
	app := fx.New(
		observability.Module,
		fx.Provide(RegisterSnowflake),
		db.Module,
		migration.Module,
		server.Module,
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
