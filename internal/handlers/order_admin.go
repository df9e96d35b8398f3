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
	"bakeshop/internal/notify"
	"bakeshop/internal/workflows"
)

type updateOrderStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

type updateOrderItemRequest struct {
	ItemID      string `json:"itemId" binding:"required"`
	NewQuantity *int   `json:"newQuantity" binding:"required"`
}

type updateOrderItemsRequest struct {
	UpdatedItems []updateOrderItemRequest `json:"updatedItems" binding:"required"`
	ChangeType   string                   `json:"changeType" binding:"required"`
}

// UpdateOrderStatus handles PATCH /admin/api/orders/:id/status.
func UpdateOrderStatus(svc *workflows.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "PATCH /admin/api/orders/:id/status"
		defer handlePanic(c, route)

		orderID, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			respondWithError(c, http.StatusBadRequest, route, "invalid id")
			return
		}

		var req updateOrderStatusRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondValidationError(c, err)
			return
		}

		status, ok := models.ParseOrderStatus(req.Status)
		if !ok {
			respondWithError(c, http.StatusBadRequest, route, "invalid status")
			return
		}

		caller, ok := callerFrom(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "error": "Unauthorized"})
			return
		}

		if err := svc.UpdateOrderStatus(c.Request.Context(), caller, orderID, status); err != nil {
			respondWorkflowError(c, route, "update order status", err)
			return
		}

		c.JSON(http.StatusOK, gin.H{"success": true})
	}
}

// MarkOrderReady handles POST /admin/api/orders/:id/ready.
func MarkOrderReady(svc *workflows.Service) gin.HandlerFunc {
	return markStatus(svc, "POST /admin/api/orders/:id/ready", (*workflows.Service).MarkOrderReady)
}

// MarkOrderComplete handles POST /admin/api/orders/:id/complete.
func MarkOrderComplete(svc *workflows.Service) gin.HandlerFunc {
	return markStatus(svc, "POST /admin/api/orders/:id/complete", (*workflows.Service).MarkOrderComplete)
}

func markStatus(svc *workflows.Service, route string, mark func(*workflows.Service, context.Context, workflows.Caller, primitive.ObjectID) error) gin.HandlerFunc {
	return func(c *gin.Context) {
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

		if err := mark(svc, c.Request.Context(), caller, orderID); err != nil {
			respondWorkflowError(c, route, "update order status", err)
			return
		}

		c.JSON(http.StatusOK, gin.H{"success": true})
	}
}

// UpdateOrderItems handles PATCH /admin/api/orders/:id/items.
func UpdateOrderItems(svc *workflows.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "PATCH /admin/api/orders/:id/items"
		defer handlePanic(c, route)

		orderID, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			respondWithError(c, http.StatusBadRequest, route, "invalid id")
			return
		}

		var req updateOrderItemsRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondValidationError(c, err)
			return
		}

		updates := make([]workflows.ItemUpdate, 0, len(req.UpdatedItems))
		for _, item := range req.UpdatedItems {
			itemID, err := primitive.ObjectIDFromHex(item.ItemID)
			if err != nil {
				respondWithError(c, http.StatusBadRequest, route, "invalid itemId")
				return
			}
			if *item.NewQuantity < 0 {
				respondWithError(c, http.StatusBadRequest, route, "newQuantity must not be negative")
				return
			}
			updates = append(updates, workflows.ItemUpdate{ItemID: itemID, NewQuantity: *item.NewQuantity})
		}

		audience := notify.AudienceCustomer
		if req.ChangeType == string(notify.AudienceBakery) {
			audience = notify.AudienceBakery
		}

		caller, ok := callerFrom(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "error": "Unauthorized"})
			return
		}

		if err := svc.UpdateOrderItems(c.Request.Context(), caller, orderID, updates, audience); err != nil {
			respondWorkflowError(c, route, "update order items", err)
			return
		}

		c.JSON(http.StatusOK, gin.H{"success": true})
	}
}

// ListOrders handles GET /admin/api/orders.
func ListOrders(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /admin/api/orders"
		defer handlePanic(c, route)

		if err := ensureDBConnection(c.Request.Context(), db); err != nil {
			respondWithError(c, http.StatusServiceUnavailable, route, "database unavailable")
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		cursor, err := db.Collection("orders").Find(ctx, bson.M{})
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}
		defer cursor.Close(ctx)

		var orders []models.Order
		if err := cursor.All(ctx, &orders); err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		c.JSON(http.StatusOK, orders)
	}
}
