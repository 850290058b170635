package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	pricingdomain "github.com/jawadsites/boostpanel/internal/pricing/domain"
)

func (s *Server) GetQuote(c *gin.Context) {
	var req pricingdomain.QuoteRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.pricingSvc.Quote(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func isPricingValidationError(err error) bool {
	switch err {
	// An unknown currency code is a bad request parameter, not a missing
	// resource, so it rides the validation path.
	case pricingdomain.ErrInvalidOffering,
		pricingdomain.ErrInvalidPlatform,
		pricingdomain.ErrInvalidQuantity,
		pricingdomain.ErrInvalidCurrency,
		pricingdomain.ErrCurrencyNotFound,
		pricingdomain.ErrOfferingInactive:
		return true
	default:
		return false
	}
}
