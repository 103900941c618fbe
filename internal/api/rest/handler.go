package rest

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tysanh1/asset-verse-ledger/internal/api/middleware"
	"github.com/tysanh1/asset-verse-ledger/internal/api/rest/dto"
	"github.com/tysanh1/asset-verse-ledger/internal/domain"
	"github.com/tysanh1/asset-verse-ledger/internal/draft"
	"github.com/tysanh1/asset-verse-ledger/internal/ledger"
	"github.com/tysanh1/asset-verse-ledger/internal/txlog"
	"github.com/tysanh1/asset-verse-ledger/internal/walletlink"
)

// Handler defines the interface for REST API handlers
type Handler interface {
	// MintAsset creates a new asset
	// POST /api/v1/assets
	MintAsset(c *gin.Context)

	// GetAsset retrieves a single asset by id
	// GET /api/v1/assets/:id
	GetAsset(c *gin.Context)

	// ListAssets retrieves assets, optionally filtered by owner
	// GET /api/v1/assets?owner=<address>
	ListAssets(c *gin.Context)

	// TransferAsset moves ownership of an asset
	// POST /api/v1/assets/:id/transfer
	TransferAsset(c *gin.Context)

	// ListTransactions retrieves log entries filtered by asset or participant
	// GET /api/v1/transactions?asset_id=<id> or ?participant=<address>
	ListTransactions(c *gin.Context)

	// LinkWallet links a wallet address to the authenticated user
	// POST /api/v1/wallets/links
	LinkWallet(c *gin.Context)

	// ListWalletLinks lists the authenticated user's wallet links
	// GET /api/v1/wallets/links
	ListWalletLinks(c *gin.Context)

	// UnlinkWallet removes a wallet link for the authenticated user
	// DELETE /api/v1/wallets/links/:address
	UnlinkWallet(c *gin.Context)

	// ResolveWallet resolves a wallet address to a user id
	// GET /api/v1/wallets/resolve?address=<address>
	ResolveWallet(c *gin.Context)

	// SaveDraft upserts an asset-creation draft
	// PUT /api/v1/drafts/:id, POST /api/v1/drafts
	SaveDraft(c *gin.Context)

	// GetLatestDraft retrieves the most-recently-updated draft
	// GET /api/v1/drafts/latest
	GetLatestDraft(c *gin.Context)

	// DeleteDraft discards a draft
	// DELETE /api/v1/drafts/:id
	DeleteDraft(c *gin.Context)

	// HealthCheck returns the health status of the API
	// GET /health
	HealthCheck(c *gin.Context)
}

// handler implements the Handler interface
type handler struct {
	ledger *ledger.Ledger
	log    *txlog.Log
	links  *walletlink.Table
	drafts *draft.Store
}

// NewHandler creates a new REST API handler
func NewHandler(l *ledger.Ledger, log *txlog.Log, links *walletlink.Table, drafts *draft.Store) Handler {
	return &handler{
		ledger: l,
		log:    log,
		links:  links,
		drafts: drafts,
	}
}

// MintAsset creates a new asset
func (h *handler) MintAsset(c *gin.Context) {
	var req dto.MintAssetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, fmt.Sprintf("Invalid request body: %v", err))
		return
	}

	asset, err := h.ledger.Mint(c.Request.Context(), ledger.MintParams{
		Name:        req.Name,
		Description: req.Description,
		Image:       req.Image,
		ContentURI:  req.ContentURI,
		Owner:       req.Owner,
	})
	if err != nil {
		respondDomainError(c, err, "Failed to mint asset")
		return
	}

	c.JSON(http.StatusCreated, dto.FromAsset(asset))
}

// GetAsset retrieves a single asset by id
func (h *handler) GetAsset(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		respondBadRequest(c, "Asset id is required")
		return
	}

	asset, err := h.ledger.GetByID(c.Request.Context(), id)
	if err != nil {
		respondDomainError(c, err, "Failed to get asset")
		return
	}
	if asset == nil {
		respondNotFound(c, "Asset not found")
		return
	}

	c.JSON(http.StatusOK, dto.FromAsset(asset))
}

// ListAssets retrieves assets, optionally filtered by owner
func (h *handler) ListAssets(c *gin.Context) {
	owner := c.Query("owner")

	if owner != "" {
		assets, err := h.ledger.ListByOwner(c.Request.Context(), owner)
		if err != nil {
			respondDomainError(c, err, "Failed to list assets")
			return
		}
		c.JSON(http.StatusOK, dto.FromAssets(assets))
		return
	}

	assets, err := h.ledger.ListAll(c.Request.Context())
	if err != nil {
		respondDomainError(c, err, "Failed to list assets")
		return
	}
	c.JSON(http.StatusOK, dto.FromAssets(assets))
}

// TransferAsset moves ownership of an asset
func (h *handler) TransferAsset(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		respondBadRequest(c, "Asset id is required")
		return
	}

	var req dto.TransferAssetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, fmt.Sprintf("Invalid request body: %v", err))
		return
	}

	asset, err := h.ledger.Transfer(c.Request.Context(), req.From, req.To, id)
	if err != nil {
		respondDomainError(c, err, "Failed to transfer asset")
		return
	}

	c.JSON(http.StatusOK, dto.FromAsset(asset))
}

// ListTransactions retrieves log entries filtered by asset or participant
func (h *handler) ListTransactions(c *gin.Context) {
	assetID := c.Query("asset_id")
	participant := c.Query("participant")

	ctx := c.Request.Context()
	switch {
	case assetID != "" && participant != "":
		respondBadRequest(c, "asset_id and participant are mutually exclusive")
	case assetID != "":
		txs, err := h.log.ListByAsset(ctx, assetID)
		if err != nil {
			respondDomainError(c, err, "Failed to list transactions")
			return
		}
		c.JSON(http.StatusOK, dto.FromTransactions(txs))
	case participant != "":
		addr, err := domain.NewAddress(participant)
		if err != nil {
			respondDomainError(c, err, "Failed to list transactions")
			return
		}
		txs, err := h.log.ListByParticipant(ctx, addr)
		if err != nil {
			respondDomainError(c, err, "Failed to list transactions")
			return
		}
		c.JSON(http.StatusOK, dto.FromTransactions(txs))
	default:
		txs, err := h.log.ListAll(ctx)
		if err != nil {
			respondDomainError(c, err, "Failed to list transactions")
			return
		}
		c.JSON(http.StatusOK, dto.FromTransactions(txs))
	}
}

// LinkWallet links a wallet address to the authenticated user
func (h *handler) LinkWallet(c *gin.Context) {
	var req dto.LinkWalletRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, fmt.Sprintf("Invalid request body: %v", err))
		return
	}

	link, err := h.links.Link(c.Request.Context(), middleware.UserID(c), req.WalletAddress)
	if err != nil {
		respondDomainError(c, err, "Failed to link wallet")
		return
	}

	c.JSON(http.StatusOK, dto.FromWalletLink(link))
}

// ListWalletLinks lists the authenticated user's wallet links
func (h *handler) ListWalletLinks(c *gin.Context) {
	links, err := h.links.ListByUser(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		respondDomainError(c, err, "Failed to list wallet links")
		return
	}

	c.JSON(http.StatusOK, dto.FromWalletLinks(links))
}

// UnlinkWallet removes a wallet link for the authenticated user
func (h *handler) UnlinkWallet(c *gin.Context) {
	address := c.Param("address")

	removed, err := h.links.Unlink(c.Request.Context(), middleware.UserID(c), address)
	if err != nil {
		respondDomainError(c, err, "Failed to unlink wallet")
		return
	}
	if !removed {
		respondNotFound(c, "Wallet link not found")
		return
	}

	c.Status(http.StatusNoContent)
}

// ResolveWallet resolves a wallet address to a user id
func (h *handler) ResolveWallet(c *gin.Context) {
	address := c.Query("address")
	if address == "" {
		respondBadRequest(c, "address is required")
		return
	}

	userID, err := h.links.ResolveUser(c.Request.Context(), address)
	if err != nil {
		respondDomainError(c, err, "Failed to resolve wallet")
		return
	}
	if userID == "" {
		respondNotFound(c, "Wallet is not linked to any user")
		return
	}

	c.JSON(http.StatusOK, dto.ResolveUserResponse{UserID: userID})
}

// SaveDraft upserts an asset-creation draft
func (h *handler) SaveDraft(c *gin.Context) {
	var req dto.SaveDraftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, fmt.Sprintf("Invalid request body: %v", err))
		return
	}

	// empty for POST /drafts; the store assigns an id
	id := c.Param("id")

	d, err := h.drafts.Save(c.Request.Context(), id, req.Name, req.Description, req.Image)
	if err != nil {
		respondDomainError(c, err, "Failed to save draft")
		return
	}

	c.JSON(http.StatusOK, dto.FromDraft(d))
}

// GetLatestDraft retrieves the most-recently-updated draft
func (h *handler) GetLatestDraft(c *gin.Context) {
	d, err := h.drafts.LoadLatest(c.Request.Context())
	if err != nil {
		respondDomainError(c, err, "Failed to load draft")
		return
	}
	if d == nil {
		respondNotFound(c, "No draft found")
		return
	}

	c.JSON(http.StatusOK, dto.FromDraft(d))
}

// DeleteDraft discards a draft
func (h *handler) DeleteDraft(c *gin.Context) {
	if err := h.drafts.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondDomainError(c, err, "Failed to delete draft")
		return
	}

	c.Status(http.StatusNoContent)
}

// HealthCheck returns the health status of the API
func (h *handler) HealthCheck(c *gin.Context) {
	c.JSON(200, gin.H{
		"status":  "ok",
		"service": "asset-verse-ledger",
	})
}
