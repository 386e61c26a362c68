package components

import (
	"log/slog"

	"storefront/internal/pkg/clock"
	"storefront/internal/pkg/config"
	"storefront/internal/usecase"

	"go.uber.org/fx"
)

var UseCaseModule = fx.Module("usecase",
	fx.Provide(
		clock.NewRealClock,
		NewCategoryCache,
		usecase.NewCartUseCase,
		NewOrderUseCase,
		usecase.NewTokenValidator,
	),
)

func NewCategoryCache(repo usecase.CategoryRepository, clk clock.Clock, cfg config.Config) usecase.CategoryCache {
	return usecase.NewCategoryCache(repo, clk, cfg.Cache.CategoryTTL)
}

func NewOrderUseCase(
	orderRepo usecase.OrderRepository,
	productRepo usecase.ProductRepository,
	clk clock.Clock,
	logger *slog.Logger,
) usecase.OrderUseCase {
	return usecase.NewOrderUseCase(orderRepo, productRepo, clk, logger)
}
