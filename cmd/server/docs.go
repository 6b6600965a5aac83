package main

// @title CedarMart Commerce API
// @version 1.0
// @description E-commerce backend with catalog, cart, orders, promotions, inventory and reviews
// @termsOfService http://swagger.io/terms/

// @contact.name API Support
// @contact.email support@cedarmart.dev

// @license.name MIT

// @host localhost:8080
// @BasePath /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

// @tag.name Auth
// @tag.description Authentication endpoints

// @tag.name Catalog
// @tag.description Product, category and subcategory endpoints

// @tag.name Cart
// @tag.description Shopping cart endpoints

// @tag.name Orders
// @tag.description Order and return endpoints

// @tag.name Promotions
// @tag.description Promotion and coupon endpoints

// @tag.name Inventory
// @tag.description Warehouse inventory endpoints

// @tag.name Reviews
// @tag.description Product review endpoints

// @tag.name Admin
// @tag.description Admin-only endpoints

// @tag.name Health
// @tag.description Health check endpoints
