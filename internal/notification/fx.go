package notification

import (
	"github.com/tedxmekong/stagehub/internal/notification/repository"
	"github.com/tedxmekong/stagehub/internal/notification/service"
	"go.uber.org/fx"
)

var Module = fx.Module("notification.service",
	fx.Provide(repository.New),
	fx.Provide(service.New),
)
