package handlers

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"bakeshop/internal/models"
	"bakeshop/internal/workflows"
)

func handlePanic(c *gin.Context, route string) {
	if r := recover(); r != nil {
		log.Printf("[%s] panic recovered: %v", route, r)
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}

func ensureDBConnection(ctx context.Context, db *mongo.Database) error {
	checkCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	return db.Client().Ping(checkCtx, readpref.Primary())
}

func respondWithError(c *gin.Context, status int, route string, message string) {
	log.Printf("[%s] returning error %d: %s", route, status, message)
	c.AbortWithStatusJSON(status, gin.H{"error": message})
}

// callerFrom reads the identity the auth middleware injected.
func callerFrom(c *gin.Context) (workflows.Caller, bool) {
	userID, ok := c.Get("userId")
	if !ok {
		return workflows.Caller{}, false
	}
	id, ok := userID.(primitive.ObjectID)
	if !ok {
		return workflows.Caller{}, false
	}
	role, _ := c.Get("role")
	r, _ := role.(models.Role)
	return workflows.Caller{UserID: id, Role: r}, true
}

// respondWorkflowError maps workflow errors onto the structured result
// shapes the admin and customer UIs display. Unexpected failures collapse
// to a generic message; the cause stays in the log.
func respondWorkflowError(c *gin.Context, route, action string, err error) {
	var notFound workflows.NotFoundError
	var invalid workflows.ValidationError

	switch {
	case errors.Is(err, workflows.ErrUnauthorized):
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"success": false, "error": "Unauthorized"})
	case errors.As(err, &notFound):
		c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"success": false, "error": notFound.Error()})
	case errors.As(err, &invalid):
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"success": false, "error": invalid.Error()})
	default:
		log.Printf("[%s] workflow error: %v", route, err)
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error":   fmt.Sprintf("Failed to %s", action),
		})
	}
}

func respondValidationError(c *gin.Context, err error) {
	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) {
		fieldError := validationErrors[0]
		field := lowerCamel(fieldError.Field())
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   fmt.Sprintf("%s required", field),
		})
		return
	}

	c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "invalid body"})
}

func lowerCamel(field string) string {
	if field == "" {
		return field
	}
	return string(field[0]|0x20) + field[1:]
}
