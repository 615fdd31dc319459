package event

import (
	"github.com/tedxmekong/stagehub/internal/event/repository"
	"github.com/tedxmekong/stagehub/internal/event/service"
	"go.uber.org/fx"
)

var Module = fx.Module("event.service",
	fx.Provide(repository.New),
	fx.Provide(service.New),
)
