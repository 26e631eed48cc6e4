package gateway

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/example/joyashop/pkg/models"
	"github.com/example/joyashop/pkg/service"
)

type orderItemRequest struct {
	ProductID string `json:"productId" binding:"required"`
	Quantity  *int   `json:"quantity"`
}

type createOrderRequest struct {
	UserID          string             `json:"userId" binding:"required"`
	ShippingAddress string             `json:"shippingAddress" binding:"required"`
	Items           []orderItemRequest `json:"items"`
}

type updateOrderRequest struct {
	Status        *models.OrderStatus   `json:"status"`
	PaymentStatus *models.PaymentStatus `json:"paymentStatus"`
}

func (g *Gateway) createOrder(c *gin.Context) {
	var req createOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input: " + err.Error()})
		return
	}
	userID, err := parseID(req.UserID)
	if err != nil {
		g.respondError(c, err)
		return
	}

	items := make([]service.OrderItemInput, 0, len(req.Items))
	for _, item := range req.Items {
		productID, err := parseID(item.ProductID)
		if err != nil {
			g.respondError(c, err)
			return
		}
		items = append(items, service.OrderItemInput{
			ProductID: productID,
			Quantity:  itemQuantity(item.Quantity),
		})
	}

	order, err := g.orders.Create(c.Request.Context(), userID, req.ShippingAddress, items)
	if err != nil {
		g.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, order)
}

func (g *Gateway) listOrders(c *gin.Context) {
	orders, err := g.orders.List(c.Request.Context())
	if err != nil {
		g.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, orders)
}

func (g *Gateway) getOrder(c *gin.Context) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		g.respondError(c, err)
		return
	}
	order, err := g.orders.Get(c.Request.Context(), id)
	if err != nil {
		g.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, order)
}

func (g *Gateway) listOrdersByUser(c *gin.Context) {
	userID, err := parseID(c.Param("userId"))
	if err != nil {
		g.respondError(c, err)
		return
	}
	orders, err := g.orders.ListByUser(c.Request.Context(), userID)
	if err != nil {
		g.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, orders)
}

func (g *Gateway) updateOrder(c *gin.Context) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		g.respondError(c, err)
		return
	}
	var req updateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input: " + err.Error()})
		return
	}
	order, err := g.orders.Update(c.Request.Context(), id, models.OrderPatch{
		Status:        req.Status,
		PaymentStatus: req.PaymentStatus,
	})
	if err != nil {
		g.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, order)
}

func (g *Gateway) deleteOrder(c *gin.Context) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		g.respondError(c, err)
		return
	}
	if err := g.orders.Remove(c.Request.Context(), id); err != nil {
		g.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "order deleted"})
}
