package server

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	orderdomain "github.com/jawadsites/boostpanel/internal/order/domain"
)

func (s *Server) CreateOrder(c *gin.Context) {
	var req orderdomain.CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}
	req.ClientIP = c.ClientIP()

	resp, err := s.orderSvc.Create(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"data": resp})
}

func (s *Server) ListOrders(c *gin.Context) {
	var req orderdomain.ListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.orderSvc.List(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data":      resp.Orders,
		"page_info": resp.PageInfo,
	})
}

func (s *Server) GetOrder(c *gin.Context) {
	reference := strings.TrimSpace(c.Param("reference"))
	resp, err := s.orderSvc.Get(c.Request.Context(), reference)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) UpdateOrderStatus(c *gin.Context) {
	reference := strings.TrimSpace(c.Param("reference"))

	var req orderdomain.UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.orderSvc.UpdateStatus(c.Request.Context(), reference, req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) ExportOrders(c *gin.Context) {
	filter := orderdomain.ExportFilter{
		Status:   strings.TrimSpace(c.Query("status")),
		Platform: strings.TrimSpace(c.Query("platform")),
	}
	from, err := parseExportTime(c.Query("from"))
	if err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}
	filter.From = from
	to, err := parseExportTime(c.Query("to"))
	if err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}
	filter.To = to

	filename := fmt.Sprintf("orders-%s.csv", time.Now().UTC().Format("20060102-150405"))
	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Status(http.StatusOK)

	if _, err := s.orderSvc.ExportCSV(c.Request.Context(), filter, c.Writer); err != nil {
		// Headers are already out; all we can do is log through the middleware.
		_ = c.Error(err)
	}
}

func parseExportTime(value string) (*time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil, nil
	}
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		t = t.UTC()
		return &t, nil
	}
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		return nil, err
	}
	t = t.UTC()
	return &t, nil
}

func isOrderValidationError(err error) bool {
	switch err {
	case orderdomain.ErrInvalidTargetURL,
		orderdomain.ErrInvalidStatus,
		orderdomain.ErrInvalidID:
		return true
	default:
		return false
	}
}
