package gateway

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/example/joyashop/pkg/models"
	"github.com/example/joyashop/pkg/service"
)

type cartItemRequest struct {
	ProductID string `json:"productId" binding:"required"`
	Quantity  *int   `json:"quantity"`
}

type createCartRequest struct {
	UserID string            `json:"userId"`
	Items  []cartItemRequest `json:"items"`
}

type updateCartRequest struct {
	UserID *string            `json:"userId"`
	Items  *[]models.LineItem `json:"items"`
	Total  *float64           `json:"total"`
}

type addCartProductRequest struct {
	ProductID string `json:"productId" binding:"required"`
	Quantity  *int   `json:"quantity"`
}

// Omitted quantity means one.
func itemQuantity(q *int) int {
	if q == nil {
		return 1
	}
	return *q
}

func (g *Gateway) createCart(c *gin.Context) {
	var req createCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input: " + err.Error()})
		return
	}

	var userID *primitive.ObjectID
	if req.UserID != "" {
		id, err := parseID(req.UserID)
		if err != nil {
			g.respondError(c, err)
			return
		}
		userID = &id
	}

	items := make([]service.CartItemInput, 0, len(req.Items))
	for _, item := range req.Items {
		productID, err := parseID(item.ProductID)
		if err != nil {
			g.respondError(c, err)
			return
		}
		items = append(items, service.CartItemInput{
			ProductID: productID,
			Quantity:  itemQuantity(item.Quantity),
		})
	}

	cart, err := g.carts.Create(c.Request.Context(), userID, items)
	if err != nil {
		g.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, cart)
}

func (g *Gateway) listCarts(c *gin.Context) {
	carts, err := g.carts.List(c.Request.Context())
	if err != nil {
		g.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, carts)
}

func (g *Gateway) getCart(c *gin.Context) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		g.respondError(c, err)
		return
	}
	cart, err := g.carts.Get(c.Request.Context(), id)
	if err != nil {
		g.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, cart)
}

func (g *Gateway) updateCart(c *gin.Context) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		g.respondError(c, err)
		return
	}
	var req updateCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input: " + err.Error()})
		return
	}

	patch := models.CartPatch{Items: req.Items, Total: req.Total}
	if req.UserID != nil {
		userID, err := parseID(*req.UserID)
		if err != nil {
			g.respondError(c, err)
			return
		}
		patch.UserID = &userID
	}

	cart, err := g.carts.Update(c.Request.Context(), id, patch)
	if err != nil {
		g.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, cart)
}

func (g *Gateway) deleteCart(c *gin.Context) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		g.respondError(c, err)
		return
	}
	if err := g.carts.Remove(c.Request.Context(), id); err != nil {
		g.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "cart deleted"})
}

func (g *Gateway) addCartProduct(c *gin.Context) {
	cartID, err := parseID(c.Param("id"))
	if err != nil {
		g.respondError(c, err)
		return
	}
	var req addCartProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input: " + err.Error()})
		return
	}
	productID, err := parseID(req.ProductID)
	if err != nil {
		g.respondError(c, err)
		return
	}

	cart, err := g.carts.AddProduct(c.Request.Context(), cartID, productID, itemQuantity(req.Quantity))
	if err != nil {
		g.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, cart)
}

func (g *Gateway) removeCartProduct(c *gin.Context) {
	cartID, err := parseID(c.Param("id"))
	if err != nil {
		g.respondError(c, err)
		return
	}
	productID, err := parseID(c.Param("productId"))
	if err != nil {
		g.respondError(c, err)
		return
	}

	cart, err := g.carts.RemoveProduct(c.Request.Context(), cartID, productID)
	if err != nil {
		g.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, cart)
}
