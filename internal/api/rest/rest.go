package rest

import (
	"github.com/gin-gonic/gin"

	"github.com/tysanh1/asset-verse-ledger/internal/api/middleware"
)

// SetupRoutes configures all REST API routes
func SetupRoutes(router *gin.Engine, handler Handler, authCfg middleware.AuthConfig) {
	// Health check endpoint (no auth, no version prefix)
	router.GET("/health", handler.HealthCheck)

	auth := middleware.Auth(authCfg)
	user := middleware.RequireUser()

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		// Asset endpoints (public read access, authenticated mutation)
		v1.GET("/assets", handler.ListAssets)
		v1.GET("/assets/:id", handler.GetAsset)
		v1.POST("/assets", auth, handler.MintAsset)
		v1.POST("/assets/:id/transfer", auth, handler.TransferAsset)

		// Transaction log endpoints (public read access)
		v1.GET("/transactions", handler.ListTransactions)

		// Wallet link endpoints (user-scoped: require a JWT subject)
		v1.POST("/wallets/links", auth, user, handler.LinkWallet)
		v1.GET("/wallets/links", auth, user, handler.ListWalletLinks)
		v1.DELETE("/wallets/links/:address", auth, user, handler.UnlinkWallet)
		v1.GET("/wallets/resolve", handler.ResolveWallet)

		// Draft endpoints (part of the authenticated creation flow)
		v1.POST("/drafts", auth, handler.SaveDraft)
		v1.PUT("/drafts/:id", auth, handler.SaveDraft)
		v1.GET("/drafts/latest", auth, handler.GetLatestDraft)
		v1.DELETE("/drafts/:id", auth, handler.DeleteDraft)
	}
}
