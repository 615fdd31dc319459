package ticket

import (
	"github.com/tedxmekong/stagehub/internal/ticket/repository"
	"github.com/tedxmekong/stagehub/internal/ticket/service"
	"go.uber.org/fx"
)

var Module = fx.Module("ticket.service",
	fx.Provide(repository.New),
	fx.Provide(service.New),
)
