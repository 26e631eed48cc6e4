package gateway

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/example/joyashop/pkg/models"
)

type createCategoryRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}

type updateCategoryRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
}

func (g *Gateway) createCategory(c *gin.Context) {
	var req createCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input: " + err.Error()})
		return
	}
	created, err := g.catalog.CreateCategory(c.Request.Context(), &models.Category{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		g.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (g *Gateway) listCategories(c *gin.Context) {
	categories, err := g.catalog.ListCategories(c.Request.Context())
	if err != nil {
		g.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, categories)
}

func (g *Gateway) getCategory(c *gin.Context) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		g.respondError(c, err)
		return
	}
	category, err := g.catalog.GetCategory(c.Request.Context(), id)
	if err != nil {
		g.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, category)
}

func (g *Gateway) updateCategory(c *gin.Context) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		g.respondError(c, err)
		return
	}
	var req updateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input: " + err.Error()})
		return
	}
	category, err := g.catalog.UpdateCategory(c.Request.Context(), id, models.CategoryPatch{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		g.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, category)
}

func (g *Gateway) deleteCategory(c *gin.Context) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		g.respondError(c, err)
		return
	}
	if err := g.catalog.DeleteCategory(c.Request.Context(), id); err != nil {
		g.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "category deleted"})
}
