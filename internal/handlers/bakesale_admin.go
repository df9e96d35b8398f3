package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"bakeshop/internal/store"
	"bakeshop/internal/workflows"
)

type cancelBakeSaleRequest struct {
	Reason string `json:"reason" binding:"required"`
}

type rescheduleBakeSaleRequest struct {
	NewDate string `json:"newDate" binding:"required"`
	Reason  string `json:"reason" binding:"required"`
}

// CancelBakeSale handles POST /admin/api/bake-sales/:id/cancel.
func CancelBakeSale(svc *workflows.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /admin/api/bake-sales/:id/cancel"
		defer handlePanic(c, route)

		saleID, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			respondWithError(c, http.StatusBadRequest, route, "invalid id")
			return
		}

		var req cancelBakeSaleRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondValidationError(c, err)
			return
		}

		caller, ok := callerFrom(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "error": "Unauthorized"})
			return
		}

		affected, err := svc.CancelBakeSale(c.Request.Context(), caller, saleID, req.Reason)
		if err != nil {
			respondWorkflowError(c, route, "cancel bake sale", err)
			return
		}

		c.JSON(http.StatusOK, gin.H{"success": true, "affectedOrders": affected})
	}
}

// RescheduleBakeSale handles POST /admin/api/bake-sales/:id/reschedule.
func RescheduleBakeSale(svc *workflows.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /admin/api/bake-sales/:id/reschedule"
		defer handlePanic(c, route)

		saleID, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			respondWithError(c, http.StatusBadRequest, route, "invalid id")
			return
		}

		var req rescheduleBakeSaleRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondValidationError(c, err)
			return
		}

		newDate, err := parseDate(req.NewDate)
		if err != nil {
			respondWithError(c, http.StatusBadRequest, route, "invalid newDate")
			return
		}

		caller, ok := callerFrom(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "error": "Unauthorized"})
			return
		}

		affected, err := svc.RescheduleBakeSale(c.Request.Context(), caller, saleID, newDate, req.Reason)
		if err != nil {
			respondWorkflowError(c, route, "reschedule bake sale", err)
			return
		}

		c.JSON(http.StatusOK, gin.H{"success": true, "affectedOrders": affected})
	}
}

// ListBakeSales handles GET /admin/api/bake-sales.
func ListBakeSales(sales *store.BakeSales) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /admin/api/bake-sales"
		defer handlePanic(c, route)

		all, err := sales.List(c.Request.Context())
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		c.JSON(http.StatusOK, all)
	}
}

// parseDate accepts a bare date or a full timestamp.
func parseDate(raw string) (time.Time, error) {
	if t, err := time.ParseInLocation("2006-01-02", raw, time.Local); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, raw)
}
