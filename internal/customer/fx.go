package customer

import (
	"github.com/smallbiznis/roommanager/internal/customer/domain"
	"github.com/smallbiznis/roommanager/internal/customer/index"
	"github.com/smallbiznis/roommanager/internal/customer/service"
	"github.com/smallbiznis/roommanager/internal/customer/source"
	"go.uber.org/fx"
)

var Module = fx.Module("customer.service",
	fx.Provide(index.NewHolder),
	fx.Provide(func(h *index.Holder) domain.Index { return h }),
	fx.Provide(source.Provide),
	fx.Provide(service.NewLoader),
	fx.Provide(func(l *service.Loader) domain.Loader { return l }),
	fx.Invoke(service.RegisterInitialLoad),
	fx.Invoke(service.RegisterWatcher),
)
