package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	catalogdomain "github.com/smallbiznis/storefront/internal/catalog/domain"
	"github.com/smallbiznis/storefront/internal/imageurl"
)

// productResponse adds the resolved image URL to the stored product.
type productResponse struct {
	catalogdomain.Product
	ImageSrc string `json:"imageSrc"`
}

func toProductResponse(p catalogdomain.Product, r imageurl.Resolver) productResponse {
	return productResponse{Product: p, ImageSrc: r.Resolve(p.ImageURL)}
}

func (s *Server) toProductResponses(items []catalogdomain.Product) []productResponse {
	r := s.imageResolver()
	out := make([]productResponse, 0, len(items))
	for _, item := range items {
		out = append(out, toProductResponse(item, r))
	}
	return out
}

func (s *Server) ListProducts(c *gin.Context) {
	s.writeProductList(c, catalogdomain.ListRequest{Filter: catalogdomain.FilterAll})
}

func (s *Server) listByFilter(filter catalogdomain.ListFilter) gin.HandlerFunc {
	return func(c *gin.Context) {
		s.writeProductList(c, catalogdomain.ListRequest{Filter: filter})
	}
}

func (s *Server) ListProductsByCategory(c *gin.Context) {
	s.writeProductList(c, catalogdomain.ListRequest{
		Filter:   catalogdomain.FilterCategory,
		Category: c.Param("category"),
	})
}

func (s *Server) writeProductList(c *gin.Context, req catalogdomain.ListRequest) {
	items, err := s.catalogSvc.List(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"products": s.toProductResponses(items)})
}

func (s *Server) GetProduct(c *gin.Context) {
	item, err := s.catalogSvc.Lookup(c.Request.Context(), c.Param("idOrSlug"))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"product": toProductResponse(*item, s.imageResolver())})
}

func (s *Server) CreateProduct(c *gin.Context) {
	var req catalogdomain.CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	item, err := s.catalogSvc.Create(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"product": toProductResponse(*item, s.imageResolver())})
}

func (s *Server) UpdateProduct(c *gin.Context) {
	var patch catalogdomain.ProductPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	item, err := s.catalogSvc.Update(c.Request.Context(), c.Param("id"), patch)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"product": toProductResponse(*item, s.imageResolver())})
}

func (s *Server) DeleteProduct(c *gin.Context) {
	if err := s.catalogSvc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Product deleted successfully"})
}

// MigrateProducts replaces the catalog with the built-in products.
func (s *Server) MigrateProducts(c *gin.Context) {
	items, err := s.catalogSvc.Reseed(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message":  "Products migrated successfully",
		"products": s.toProductResponses(items),
	})
}
