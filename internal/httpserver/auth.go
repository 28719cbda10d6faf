package httpserver

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"storefront/internal/domain"
	accountsvc "storefront/internal/service/account"
)

type handlers struct {
	logger *log.Logger
	deps   Deps
}

type tokenRequest struct {
	Email    string `form:"email" json:"email" binding:"required"`
	Password string `form:"password" json:"password" binding:"required"`
}

type accountResponse struct {
	Account domain.Account `json:"account"`
}

type tokenResponse struct {
	AccessToken  string `json:"access_token"`
	TokenType    string `json:"token_type"`
	ExpiresIn    int    `json:"expires_in"`
	Role         string `json:"role"`
	BusinessName string `json:"businessName,omitempty"`
}

func (h *handlers) signup(c *gin.Context) {
	var req accountsvc.SignupInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	acct, err := h.deps.AccountSvc.Signup(c.Request.Context(), req)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, accountResponse{Account: *acct})
}

func (h *handlers) token(c *gin.Context) {
	var req tokenRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "email and password are required"})
		return
	}
	acct, token, err := h.deps.AccountSvc.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, tokenResponse{
		AccessToken:  token,
		TokenType:    "Bearer",
		ExpiresIn:    h.deps.AccountSvc.AccessTTLSeconds(),
		Role:         acct.Role,
		BusinessName: acct.BusinessName,
	})
}
