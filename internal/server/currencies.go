package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	currencydomain "github.com/jawadsites/boostpanel/internal/currency/domain"
)

func (s *Server) ListCurrencies(c *gin.Context) {
	resp, err := s.currencySvc.List(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) UpsertCurrency(c *gin.Context) {
	var req currencydomain.UpsertRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}
	req.Code = strings.TrimSpace(c.Param("code"))

	resp, err := s.currencySvc.Upsert(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func isCurrencyValidationError(err error) bool {
	switch err {
	case currencydomain.ErrInvalidCode,
		currencydomain.ErrInvalidRate:
		return true
	default:
		return false
	}
}
