package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"bakeshop/internal/models"
	"bakeshop/internal/workflows"
)

type resolveOrderRequest struct {
	Resolution    string `json:"resolution" binding:"required"`
	NewBakeSaleID string `json:"newBakeSaleId"`
}

// ResolveOrderIssue handles POST /orders/:id/resolve, invoked by the
// order's own customer after their bake sale was cancelled.
func ResolveOrderIssue(svc *workflows.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /orders/:id/resolve"
		defer handlePanic(c, route)

		orderID, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			respondWithError(c, http.StatusBadRequest, route, "invalid id")
			return
		}

		var req resolveOrderRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondValidationError(c, err)
			return
		}

		var newSaleID *primitive.ObjectID
		if req.NewBakeSaleID != "" {
			id, err := primitive.ObjectIDFromHex(req.NewBakeSaleID)
			if err != nil {
				respondWithError(c, http.StatusBadRequest, route, "invalid newBakeSaleId")
				return
			}
			newSaleID = &id
		}

		caller, ok := callerFrom(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "error": "Unauthorized"})
			return
		}

		err = svc.ResolveOrderIssue(c.Request.Context(), caller, orderID, workflows.Resolution(req.Resolution), newSaleID)
		if err != nil {
			respondWorkflowError(c, route, "resolve order", err)
			return
		}

		c.JSON(http.StatusOK, gin.H{"success": true})
	}
}

// GetOrder handles GET /orders/:id for the owning customer.
func GetOrder(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /orders/:id"
		defer handlePanic(c, route)

		orderID, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			respondWithError(c, http.StatusBadRequest, route, "invalid id")
			return
		}

		caller, ok := callerFrom(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "error": "Unauthorized"})
			return
		}

		if err := ensureDBConnection(c.Request.Context(), db); err != nil {
			respondWithError(c, http.StatusServiceUnavailable, route, "database unavailable")
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		var order models.Order
		err = db.Collection("orders").FindOne(ctx, bson.M{"_id": orderID}).Decode(&order)
		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "Order not found"})
			return
		}
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		if order.UserID != caller.UserID {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"success": false, "error": "Unauthorized"})
			return
		}

		c.JSON(http.StatusOK, order)
	}
}
