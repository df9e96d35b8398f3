package main

import (
	"log"
	"os"

	"github.com/gin-gonic/gin"

	"bakeshop/internal/config"
	"bakeshop/internal/database"
	"bakeshop/internal/events"
	"bakeshop/internal/handlers"
	"bakeshop/internal/middleware"
	"bakeshop/internal/notify"
	"bakeshop/internal/store"
	"bakeshop/internal/workflows"
)

func main() {
	config.Load()

	client, err := database.Connect(config.AppEnv.MongoURI)
	if err != nil {
		log.Fatal(err)
	}

	db := client.Database(config.AppEnv.DBName)

	log.Println("MongoDB connected to:", db.Name())

	if err := database.EnsureUserIndexes(db); err != nil {
		log.Printf("user index warning: %v", err)
	}
	if err := database.EnsureOrderIndexes(db); err != nil {
		log.Printf("order index warning: %v", err)
	}
	if err := database.EnsureBakeSaleIndexes(db); err != nil {
		log.Printf("bake sale index warning: %v", err)
	}
	if err := database.EnsureRestorationIndexes(db); err != nil {
		log.Printf("restoration index warning: %v", err)
	}

	publisher, err := events.NewPublisher(config.AppEnv.KafkaBrokers, config.AppEnv.CacheTopic)
	if err != nil {
		log.Fatal(err)
	}
	defer publisher.Close()

	orders := store.NewOrders(db)
	sales := store.NewBakeSales(db)
	vouchers := store.NewVouchers(db)
	sender := notify.NewSender(config.AppEnv.NotifyWebhookURL)

	svc := workflows.NewService(orders, sales, vouchers, sender, publisher, config.AppEnv.PublicBaseURL)

	r := gin.Default()

	r.POST("/auth/login", handlers.Login(db, config.AppEnv.JWTSecret, config.AppEnv.AccessTokenTTL))

	customer := r.Group("/orders")
	customer.Use(middleware.CustomerAuth(config.AppEnv.JWTSecret))
	{
		customer.GET("/:id", handlers.GetOrder(db))
		customer.POST("/:id/resolve", handlers.ResolveOrderIssue(svc))
	}

	manager := r.Group("/admin/api/bake-sales")
	manager.Use(middleware.ManagerAuth(config.AppEnv.JWTSecret))
	{
		manager.GET("", handlers.ListBakeSales(sales))
		manager.POST("/:id/cancel", handlers.CancelBakeSale(svc))
		manager.POST("/:id/reschedule", handlers.RescheduleBakeSale(svc))
	}

	staff := r.Group("/admin/api/orders")
	staff.Use(middleware.StaffAuth(config.AppEnv.JWTSecret))
	{
		staff.GET("", handlers.ListOrders(db))
		staff.PATCH("/:id/status", handlers.UpdateOrderStatus(svc))
		staff.POST("/:id/ready", handlers.MarkOrderReady(svc))
		staff.POST("/:id/complete", handlers.MarkOrderComplete(svc))
		staff.PATCH("/:id/items", handlers.UpdateOrderItems(svc))
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	r.Run(":" + port)
}
