package gateway

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"

	"github.com/example/joyashop/pkg/models"
)

type createProductRequest struct {
	Name            string   `json:"name" binding:"required"`
	Description     string   `json:"description"`
	Price           float64  `json:"price"`
	Stock           int      `json:"stock"`
	CategoryID      string   `json:"categoryId" binding:"required"`
	Photos          []string `json:"photos"`
	Characteristics []string `json:"characteristics"`
}

type updateProductRequest struct {
	Name            *string   `json:"name"`
	Description     *string   `json:"description"`
	Price           *float64  `json:"price"`
	Stock           *int      `json:"stock"`
	CategoryID      *string   `json:"categoryId"`
	Photos          *[]string `json:"photos"`
	Characteristics *[]string `json:"characteristics"`
}

func (g *Gateway) createProduct(c *gin.Context) {
	var req createProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input: " + err.Error()})
		return
	}
	categoryID, err := parseID(req.CategoryID)
	if err != nil {
		g.respondError(c, err)
		return
	}

	product := &models.Product{
		Name:            req.Name,
		Description:     req.Description,
		Price:           req.Price,
		Stock:           req.Stock,
		CategoryID:      categoryID,
		Photos:          req.Photos,
		Characteristics: req.Characteristics,
	}
	created, err := g.catalog.CreateProduct(c.Request.Context(), product)
	if err != nil {
		g.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (g *Gateway) listProducts(c *gin.Context) {
	products, err := g.catalog.ListProducts(c.Request.Context())
	if err != nil {
		g.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, products)
}

func (g *Gateway) getProduct(c *gin.Context) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		g.respondError(c, err)
		return
	}
	product, err := g.catalog.GetProduct(c.Request.Context(), id)
	if err != nil {
		g.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, product)
}

func (g *Gateway) updateProduct(c *gin.Context) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		g.respondError(c, err)
		return
	}
	var req updateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input: " + err.Error()})
		return
	}

	patch := models.ProductPatch{
		Name:            req.Name,
		Description:     req.Description,
		Price:           req.Price,
		Stock:           req.Stock,
		Photos:          req.Photos,
		Characteristics: req.Characteristics,
	}
	if req.CategoryID != nil {
		categoryID, err := parseID(*req.CategoryID)
		if err != nil {
			g.respondError(c, errors.Wrap(models.ErrInvalidInput, "invalid categoryId"))
			return
		}
		patch.CategoryID = &categoryID
	}

	product, err := g.catalog.UpdateProduct(c.Request.Context(), id, patch)
	if err != nil {
		g.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, product)
}

func (g *Gateway) deleteProduct(c *gin.Context) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		g.respondError(c, err)
		return
	}
	if err := g.catalog.DeleteProduct(c.Request.Context(), id); err != nil {
		g.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "product deleted"})
}
