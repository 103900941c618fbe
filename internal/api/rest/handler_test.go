package rest_test

import (
	"bytes"
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/json"
	"encoding/pem"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tysanh1/asset-verse-ledger/internal/adapter"
	"github.com/tysanh1/asset-verse-ledger/internal/api/middleware"
	"github.com/tysanh1/asset-verse-ledger/internal/api/rest"
	"github.com/tysanh1/asset-verse-ledger/internal/api/rest/dto"
	"github.com/tysanh1/asset-verse-ledger/internal/draft"
	"github.com/tysanh1/asset-verse-ledger/internal/ledger"
	"github.com/tysanh1/asset-verse-ledger/internal/store"
	"github.com/tysanh1/asset-verse-ledger/internal/txlog"
	"github.com/tysanh1/asset-verse-ledger/internal/walletlink"
)

const (
	testAPIKey = "test-api-key"

	aliceAddr = "0x1111111111111111111111111111111111111111"
	bobAddr   = "0x2222222222222222222222222222222222222222"
)

// testServer bundles a router over a real LevelDB store with credentials
// for both authentication paths
type testServer struct {
	router     *gin.Engine
	privateKey *rsa.PrivateKey
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	st, err := store.NewLevelDBStore(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	privateKey, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)

	pubDER, err := x509.MarshalPKIXPublicKey(&privateKey.PublicKey)
	require.NoError(t, err)
	pubPEM := pem.EncodeToMemory(&pem.Block{Type: "PUBLIC KEY", Bytes: pubDER})

	clock := adapter.NewClock()
	log := txlog.New(st)
	l := ledger.New(st, log, clock)
	links := walletlink.New(st, clock)
	drafts := draft.New(st, clock)

	router := gin.New()
	rest.SetupRoutes(router, rest.NewHandler(l, log, links, drafts), middleware.AuthConfig{
		JWTPublicKey: string(pubPEM),
		APIKeys:      []string{testAPIKey},
	})

	return &testServer{router: router, privateKey: privateKey}
}

// bearerToken signs a JWT for the given user id
func (s *testServer) bearerToken(t *testing.T, userID string) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodRS256, jwt.RegisteredClaims{
		Subject:   userID,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	})
	signed, err := token.SignedString(s.privateKey)
	require.NoError(t, err)
	return "Bearer " + signed
}

// do performs a request against the router and decodes the JSON response
// into out when out is non-nil
func (s *testServer) do(t *testing.T, method, path, authHeader string, body any, out any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}

	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)

	if out != nil && w.Code < 300 && w.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), out))
	}
	return w
}

func TestHealthCheck(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, http.MethodGet, "/health", "", nil, nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"ok"`)
}

func TestMintTransferFlow(t *testing.T) {
	s := newTestServer(t)
	apiKey := "APIKey " + testAPIKey

	// Mint
	var minted dto.AssetResponse
	w := s.do(t, http.MethodPost, "/api/v1/assets", apiKey, dto.MintAssetRequest{
		Name:        "Sunset",
		Description: "Evening sky over the bay",
		Image:       "https://example.com/sunset.png",
		Owner:       aliceAddr,
	}, &minted)
	require.Equal(t, http.StatusCreated, w.Code)
	assert.NotEmpty(t, minted.ID)
	assert.Equal(t, "Sunset", minted.Name)
	assert.Equal(t, minted.Creator, minted.Owner)

	// Fetch it back without auth
	var fetched dto.AssetResponse
	w = s.do(t, http.MethodGet, "/api/v1/assets/"+minted.ID, "", nil, &fetched)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, minted.ID, fetched.ID)

	// Transfer to bob
	var transferred dto.AssetResponse
	w = s.do(t, http.MethodPost, "/api/v1/assets/"+minted.ID+"/transfer", apiKey, dto.TransferAssetRequest{
		From: aliceAddr,
		To:   bobAddr,
	}, &transferred)
	require.Equal(t, http.StatusOK, w.Code)
	assert.NotEqual(t, minted.Owner, transferred.Owner)
	assert.Equal(t, minted.Creator, transferred.Creator)

	// The log records the mint and the transfer, in that order
	var txs dto.ListTransactionsResponse
	w = s.do(t, http.MethodGet, "/api/v1/transactions?asset_id="+minted.ID, "", nil, &txs)
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, 2, txs.Total)
	assert.Equal(t, "mint", txs.Transactions[0].Kind)
	assert.Equal(t, "transfer", txs.Transactions[1].Kind)
	assert.Equal(t, transferred.Owner, txs.Transactions[1].To)

	// Owner filter follows the transfer
	var assets dto.ListAssetsResponse
	w = s.do(t, http.MethodGet, "/api/v1/assets?owner="+bobAddr, "", nil, &assets)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1, assets.Total)
}

func TestMintValidation(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, http.MethodPost, "/api/v1/assets", "APIKey "+testAPIKey, dto.MintAssetRequest{
		Name:        "",
		Description: "missing name",
		Image:       "https://example.com/a.png",
		Owner:       aliceAddr,
	}, nil)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "validation_failed")
}

func TestTransferUnknownAsset(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, http.MethodPost, "/api/v1/assets/no-such-asset/transfer", "APIKey "+testAPIKey, dto.TransferAssetRequest{
		From: aliceAddr,
		To:   bobAddr,
	}, nil)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestMutationsRequireAuth(t *testing.T) {
	s := newTestServer(t)

	tests := []struct {
		name   string
		method string
		path   string
	}{
		{"mint", http.MethodPost, "/api/v1/assets"},
		{"transfer", http.MethodPost, "/api/v1/assets/some-id/transfer"},
		{"link wallet", http.MethodPost, "/api/v1/wallets/links"},
		{"save draft", http.MethodPost, "/api/v1/drafts"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := s.do(t, tt.method, tt.path, "", map[string]string{}, nil)
			assert.Equal(t, http.StatusUnauthorized, w.Code)
		})
	}
}

func TestWalletLinkFlow(t *testing.T) {
	s := newTestServer(t)
	token := s.bearerToken(t, "user-1")

	// Link a wallet
	var link dto.WalletLinkResponse
	w := s.do(t, http.MethodPost, "/api/v1/wallets/links", token, dto.LinkWalletRequest{
		WalletAddress: aliceAddr,
	}, &link)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "user-1", link.UserID)

	// Resolve it publicly
	var resolved dto.ResolveUserResponse
	w = s.do(t, http.MethodGet, "/api/v1/wallets/resolve?address="+aliceAddr, "", nil, &resolved)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "user-1", resolved.UserID)

	// Another user claiming the same wallet conflicts
	w = s.do(t, http.MethodPost, "/api/v1/wallets/links", s.bearerToken(t, "user-2"), dto.LinkWalletRequest{
		WalletAddress: aliceAddr,
	}, nil)
	assert.Equal(t, http.StatusConflict, w.Code)

	// List shows the single link
	var links dto.ListWalletLinksResponse
	w = s.do(t, http.MethodGet, "/api/v1/wallets/links", token, nil, &links)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1, links.Total)

	// Unlink, then resolving misses
	w = s.do(t, http.MethodDelete, "/api/v1/wallets/links/"+aliceAddr, token, nil, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = s.do(t, http.MethodGet, "/api/v1/wallets/resolve?address="+aliceAddr, "", nil, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestWalletLinksRejectAPIKeyCallers(t *testing.T) {
	s := newTestServer(t)

	// API keys carry no user identity, so user-scoped routes refuse them
	w := s.do(t, http.MethodPost, "/api/v1/wallets/links", "APIKey "+testAPIKey, dto.LinkWalletRequest{
		WalletAddress: aliceAddr,
	}, nil)

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestDraftFlow(t *testing.T) {
	s := newTestServer(t)
	token := s.bearerToken(t, "user-1")

	// No drafts yet
	w := s.do(t, http.MethodGet, "/api/v1/drafts/latest", token, nil, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	// Create draft, id is server-generated
	var created dto.DraftResponse
	w = s.do(t, http.MethodPost, "/api/v1/drafts", token, dto.SaveDraftRequest{
		Name: "Work in progress",
	}, &created)
	require.Equal(t, http.StatusOK, w.Code)
	require.NotEmpty(t, created.ID)

	// Autosave overwrites in place
	var updated dto.DraftResponse
	w = s.do(t, http.MethodPut, "/api/v1/drafts/"+created.ID, token, dto.SaveDraftRequest{
		Name:        "Work in progress",
		Description: "now with a description",
	}, &updated)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, created.ID, updated.ID)

	// Latest reflects the update
	var latest dto.DraftResponse
	w = s.do(t, http.MethodGet, "/api/v1/drafts/latest", token, nil, &latest)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, created.ID, latest.ID)
	assert.Equal(t, "now with a description", latest.Description)

	// Discard it
	w = s.do(t, http.MethodDelete, "/api/v1/drafts/"+created.ID, token, nil, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = s.do(t, http.MethodGet, "/api/v1/drafts/latest", token, nil, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = s.do(t, http.MethodDelete, "/api/v1/drafts/"+created.ID, token, nil, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestListTransactionsFilterConflict(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, http.MethodGet, "/api/v1/transactions?asset_id=a&participant="+aliceAddr, "", nil, nil)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
