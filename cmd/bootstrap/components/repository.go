package components

import (
	repo_impl "storefront/internal/infra/repository"
	"storefront/internal/usecase"

	"go.uber.org/fx"
)

var RepositoryModule = fx.Module("repository",
	fx.Provide(
		fx.Annotate(
			repo_impl.NewCategoryRepository,
			fx.As(new(usecase.CategoryRepository)),
		),
		fx.Annotate(
			repo_impl.NewProductRepository,
			fx.As(new(usecase.ProductRepository)),
		),
		fx.Annotate(
			repo_impl.NewCartRepository,
			fx.As(new(usecase.CartRepository)),
		),
		fx.Annotate(
			repo_impl.NewOrderRepository,
			fx.As(new(usecase.OrderRepository)),
		),
	),
)
