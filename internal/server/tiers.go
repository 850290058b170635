package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	pricetierdomain "github.com/jawadsites/boostpanel/internal/pricetier/domain"
)

func (s *Server) ListOfferingTiers(c *gin.Context) {
	offeringID := strings.TrimSpace(c.Param("id"))
	platform := strings.TrimSpace(c.Query("platform"))

	resp, err := s.priceTierSvc.List(c.Request.Context(), offeringID, platform)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) GetPriceTier(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))
	resp, err := s.priceTierSvc.Get(c.Request.Context(), id)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) CreatePriceTier(c *gin.Context) {
	var req pricetierdomain.CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.priceTierSvc.Create(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) UpdatePriceTier(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))

	var req pricetierdomain.UpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.priceTierSvc.Update(c.Request.Context(), id, req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) DeletePriceTier(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))
	if err := s.priceTierSvc.Delete(c.Request.Context(), id); err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": gin.H{"deleted": true}})
}

func isPriceTierValidationError(err error) bool {
	switch err {
	case pricetierdomain.ErrInvalidOffering,
		pricetierdomain.ErrInvalidPlatform,
		pricetierdomain.ErrInvalidMinQty,
		pricetierdomain.ErrInvalidMaxQty,
		pricetierdomain.ErrInvalidPricePerK,
		pricetierdomain.ErrInvalidDiscountPct,
		pricetierdomain.ErrInvalidID:
		return true
	default:
		return false
	}
}
