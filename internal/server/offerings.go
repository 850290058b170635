package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	offeringdomain "github.com/jawadsites/boostpanel/internal/offering/domain"
)

func (s *Server) ListOfferings(c *gin.Context) {
	resp, err := s.offeringSvc.List(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) GetOffering(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))
	resp, err := s.offeringSvc.Get(c.Request.Context(), id)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) CreateOffering(c *gin.Context) {
	var req offeringdomain.CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.offeringSvc.Create(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) UpdateOffering(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))

	var req offeringdomain.UpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.offeringSvc.Update(c.Request.Context(), id, req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func isOfferingValidationError(err error) bool {
	switch err {
	case offeringdomain.ErrInvalidName,
		offeringdomain.ErrInvalidBasePrice,
		offeringdomain.ErrInvalidQuantityRange,
		offeringdomain.ErrInvalidPlatform,
		offeringdomain.ErrInvalidFactor,
		offeringdomain.ErrInvalidFlatPrice,
		offeringdomain.ErrInvalidID:
		return true
	default:
		return false
	}
}
