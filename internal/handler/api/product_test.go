//go:build unit

package api_test

import (
	"net/http"
	"testing"

	"storefront/internal/domain/catalog"
	"storefront/internal/domain/identity"
	"storefront/internal/handler/api"
	"storefront/internal/infra"
	"storefront/internal/pkg/errs"
	"storefront/tests/common/httptest"
	usecasemock "storefront/tests/mock/usecase"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type ProductHandlerTestSuite struct {
	suite.Suite
	router   *gin.Engine
	mockCtrl *gomock.Controller
	mockRepo *usecasemock.MockProductRepository
	handler  *api.ProductHandler
}

func (s *ProductHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockRepo = usecasemock.NewMockProductRepository(s.mockCtrl)
	s.handler = api.NewProductHandler(s.mockRepo)

	s.router.GET("/product/list", s.handler.List)
	s.router.GET("/product/:id", s.handler.Get)
}

func (s *ProductHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestProductHandlerSuite(t *testing.T) {
	suite.Run(t, new(ProductHandlerTestSuite))
}

func (s *ProductHandlerTestSuite) TestList() {
	products := []*catalog.Product{
		{ID: identity.Literal("p1"), Name: "Keyboard", Price: 4500},
		{ID: identity.Literal("p2"), Name: "Mouse", Price: 2500},
	}

	s.Run("success: lists the whole catalog", func() {
		s.mockRepo.EXPECT().List(gomock.Any()).Return(products, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/product/list", nil, "")

		s.Equal(http.StatusOK, rec.Code)
		s.Contains(rec.Body.String(), "Keyboard")
		s.Contains(rec.Body.String(), "Mouse")
	})

	s.Run("success: category query switches to the filtered listing", func() {
		s.mockRepo.EXPECT().ListByCategory(gomock.Any(), "cat-1").
			Return(products[:1], nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/product/list?category=cat-1", nil, "")

		s.Equal(http.StatusOK, rec.Code)
		s.Contains(rec.Body.String(), "Keyboard")
		s.NotContains(rec.Body.String(), "Mouse")
	})

	s.Run("failure: repository error maps to 500", func() {
		s.mockRepo.EXPECT().List(gomock.Any()).
			Return(nil, infra.WrapRepoErr("find products", errs.New("boom"), infra.KindDBFailure)).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/product/list", nil, "")

		s.Equal(http.StatusInternalServerError, rec.Code)
	})
}

func (s *ProductHandlerTestSuite) TestGet() {
	s.Run("success: returns the product", func() {
		s.mockRepo.EXPECT().FindByID(gomock.Any(), "p1").
			Return(&catalog.Product{ID: identity.Literal("p1"), Name: "Keyboard", Price: 4500}, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/product/p1", nil, "")

		s.Equal(http.StatusOK, rec.Code)
		s.Contains(rec.Body.String(), "Keyboard")
	})

	s.Run("failure: absence is a 404 for a direct lookup", func() {
		s.mockRepo.EXPECT().FindByID(gomock.Any(), "missing").
			Return(nil, infra.WrapRepoErr("find product", errs.New("no documents"), infra.KindNotFound)).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/product/missing", nil, "")

		s.Equal(http.StatusNotFound, rec.Code)
		s.Contains(rec.Body.String(), "Product not found")
	})
}
