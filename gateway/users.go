package gateway

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/example/joyashop/pkg/models"
)

type createUserRequest struct {
	Email    string      `json:"email" binding:"required,email"`
	Password string      `json:"password" binding:"required"`
	Name     string      `json:"name" binding:"required"`
	Address  string      `json:"address" binding:"required"`
	Role     models.Role `json:"role"`
}

type updateUserRequest struct {
	Email    *string      `json:"email"`
	Password *string      `json:"password"`
	Name     *string      `json:"name"`
	Address  *string      `json:"address"`
	Role     *models.Role `json:"role"`
}

func (g *Gateway) createUser(c *gin.Context) {
	var req createUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input: " + err.Error()})
		return
	}
	user, err := g.users.Create(c.Request.Context(), &models.User{
		Email:    req.Email,
		Password: req.Password,
		Name:     req.Name,
		Address:  req.Address,
		Role:     req.Role,
	})
	if err != nil {
		g.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, user)
}

func (g *Gateway) listUsers(c *gin.Context) {
	users, err := g.users.List(c.Request.Context())
	if err != nil {
		g.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, users)
}

func (g *Gateway) getUser(c *gin.Context) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		g.respondError(c, err)
		return
	}
	user, err := g.users.Get(c.Request.Context(), id)
	if err != nil {
		g.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

func (g *Gateway) updateUser(c *gin.Context) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		g.respondError(c, err)
		return
	}
	var req updateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input: " + err.Error()})
		return
	}
	user, err := g.users.Update(c.Request.Context(), id, models.UserPatch{
		Email:    req.Email,
		Password: req.Password,
		Name:     req.Name,
		Address:  req.Address,
		Role:     req.Role,
	})
	if err != nil {
		g.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

func (g *Gateway) deleteUser(c *gin.Context) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		g.respondError(c, err)
		return
	}
	if err := g.users.Remove(c.Request.Context(), id); err != nil {
		g.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "user deleted"})
}
