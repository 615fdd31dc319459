package main

import (
	"github.com/bwmarrin/snowflake"
	"github.com/tedxmekong/stagehub/internal/config"
	"github.com/tedxmekong/stagehub/internal/migration"
	"github.com/tedxmekong/stagehub/internal/observability"
	"github.com/tedxmekong/stagehub/internal/server"
	"github.com/tedxmekong/stagehub/pkg/db"
	"go.uber.org/fx"
)

func main() {
	app := fx.New(
		config.Module,
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
