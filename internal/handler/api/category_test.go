//go:build unit

package api_test

import (
	"net/http"
	"testing"

	"storefront/internal/domain/catalog"
	"storefront/internal/domain/identity"
	"storefront/internal/handler/api"
	"storefront/internal/usecase"
	"storefront/tests/common/httptest"
	usecasemock "storefront/tests/mock/usecase"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type CategoryHandlerTestSuite struct {
	suite.Suite
	router    *gin.Engine
	mockCtrl  *gomock.Controller
	mockCache *usecasemock.MockCategoryCache
	handler   *api.CategoryHandler
}

func (s *CategoryHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockCache = usecasemock.NewMockCategoryCache(s.mockCtrl)
	s.handler = api.NewCategoryHandler(s.mockCache)

	s.router.GET("/category/list", s.handler.List)
	s.router.POST("/category/list", s.handler.Action)
}

func (s *CategoryHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestCategoryHandlerSuite(t *testing.T) {
	suite.Run(t, new(CategoryHandlerTestSuite))
}

func (s *CategoryHandlerTestSuite) TestList() {
	categories := []*catalog.Category{
		{ID: identity.Literal("cat-1"), Name: "Electronics", IsActive: true},
		{ID: identity.Literal("cat-2"), Name: "Groceries", IsActive: true},
	}

	s.Run("success: returns categories with cache flag", func() {
		s.mockCache.EXPECT().List(gomock.Any(), false).
			Return(categories, true, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/category/list", nil, "")

		s.Equal(http.StatusOK, rec.Code)

		var body struct {
			Success bool                `json:"success"`
			Data    []*catalog.Category `json:"data"`
			Cached  bool                `json:"cached"`
		}
		httptest.DecodeResponseBody(s.T(), rec.Body, &body)
		s.True(body.Success)
		s.True(body.Cached)
		s.Len(body.Data, 2)
		s.Equal("Electronics", body.Data[0].Name)
	})

	s.Run("failure: returns 500 when the cache cannot serve", func() {
		s.mockCache.EXPECT().List(gomock.Any(), false).
			Return(nil, false, usecase.ErrCategoryListFailed).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/category/list", nil, "")

		s.Equal(http.StatusInternalServerError, rec.Code)
		s.Contains(rec.Body.String(), `"success":false`)
	})
}

func (s *CategoryHandlerTestSuite) TestAction() {
	s.Run("success: clearCache invalidates the cache", func() {
		s.mockCache.EXPECT().Invalidate().Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/category/list",
			map[string]any{"action": "clearCache"}, "token")

		s.Equal(http.StatusOK, rec.Code)
		s.Contains(rec.Body.String(), "Category cache cleared")
	})

	s.Run("failure: unknown action is rejected without touching the cache", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/category/list",
			map[string]any{"action": "dropEverything"}, "token")

		s.Equal(http.StatusBadRequest, rec.Code)
		s.Contains(rec.Body.String(), "Unknown action")
	})

	s.Run("failure: missing action field", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/category/list",
			map[string]any{}, "token")

		s.Equal(http.StatusBadRequest, rec.Code)
	})
}
