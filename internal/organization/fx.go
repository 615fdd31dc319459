package organization

import (
	"github.com/tedxmekong/stagehub/internal/organization/repository"
	"github.com/tedxmekong/stagehub/internal/organization/service"
	"go.uber.org/fx"
)

var Module = fx.Module("organization.service",
	fx.Provide(repository.New),
	fx.Provide(service.New),
)
