// Package main implements a mock marketplace server for local development.
// It plays the consent page, the token endpoint and the regional data API so
// sellerlink can run end to end without a registered application.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"net/http"
	"net/url"
	"os"
	"slices"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/donaldgifford/sellerlink/internal/spapi"
)

const mockSellerID = "A3MOCKSELLER01"

var mockStatuses = []string{"Pending", "Unshipped", "PartiallyShipped", "Shipped", "Canceled", "Unfulfillable"}

type options struct {
	redirectURI   string
	tokenTTL      time.Duration
	denyOrders    bool
	rateLimit     string
	marketplaceID string
}

// mockServer holds issued grants. Codes are single use; refresh tokens rotate
// on every refresh.
type mockServer struct {
	opts   options
	logger *slog.Logger
	orders []spapi.Order
	now    func() time.Time

	mu      sync.Mutex
	codes   map[string]bool
	refresh map[string]bool
	access  map[string]time.Time
}

func main() {
	port := flag.Int("port", 8089, "port to listen on")
	redirectURI := flag.String("redirect-uri", "http://localhost:8080/api/v1/oauth/callback", "where the consent page sends the seller")
	orderCount := flag.Int("orders", 120, "number of orders to generate")
	seed := flag.Uint64("seed", 1, "seed for generated orders")
	tokenTTL := flag.Duration("token-ttl", time.Hour, "access token lifetime")
	denyOrders := flag.Bool("deny-orders", false, "answer the orders endpoint with 403 to simulate a missing role")
	rateLimit := flag.String("rate-limit", "0.0167", "value sent in the rate limit response header")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))

	srv := newMockServer(options{
		redirectURI:   *redirectURI,
		tokenTTL:      *tokenTTL,
		denyOrders:    *denyOrders,
		rateLimit:     *rateLimit,
		marketplaceID: "ATVPDKIKX0DER",
	}, generateOrders(*orderCount, *seed, time.Now()), logger)
	logger.Info("generated orders", "count", *orderCount)

	addr := fmt.Sprintf(":%d", *port)
	logger.Info("starting mock marketplace server", "addr", addr)

	httpSrv := &http.Server{
		Addr:         addr,
		Handler:      requestLogger(logger, srv.routes()),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}
	if err := httpSrv.ListenAndServe(); err != nil {
		logger.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

func newMockServer(opts options, orders []spapi.Order, logger *slog.Logger) *mockServer {
	return &mockServer{
		opts:    opts,
		logger:  logger,
		orders:  orders,
		now:     time.Now,
		codes:   make(map[string]bool),
		refresh: make(map[string]bool),
		access:  make(map[string]time.Time),
	}
}

func (s *mockServer) routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /apps/authorize/consent", s.consentHandler)
	mux.HandleFunc("POST /auth/o2/token", s.tokenHandler)
	mux.HandleFunc("GET /orders/v0/orders", s.authorized(s.ordersHandler))
	mux.HandleFunc("POST /tokens/2021-03-01/restrictedDataToken", s.authorized(s.rdtHandler))
	mux.HandleFunc("GET /sellers/v1/marketplaceParticipations", s.authorized(s.participationsHandler))
	return mux
}

// generateOrders builds count orders spread over the last 60 days, newest
// first.
func generateOrders(count int, seed uint64, now time.Time) []spapi.Order {
	rng := rand.New(rand.NewPCG(seed, seed^0x5eed)) //nolint:gosec // mock data
	orders := make([]spapi.Order, 0, count)
	for i := range count {
		created := now.Add(-time.Duration(i) * 12 * time.Hour).Add(-time.Duration(rng.IntN(600)) * time.Minute)
		o := spapi.Order{
			AmazonOrderID: fmt.Sprintf("111-%07d-%07d", rng.IntN(10_000_000), rng.IntN(10_000_000)),
			PurchaseDate:  created.UTC().Format(time.RFC3339),
			OrderStatus:   mockStatuses[rng.IntN(len(mockStatuses))],
		}
		// Pending orders carry no total upstream.
		if o.OrderStatus != "Pending" {
			o.OrderTotal = &spapi.Money{
				CurrencyCode: "USD",
				Amount:       fmt.Sprintf("%d.%02d", 5+rng.IntN(495), rng.IntN(100)),
			}
		}
		orders = append(orders, o)
	}
	return orders
}

func requestLogger(logger *slog.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Query strings carry codes and state; log the path only.
		logger.Debug("request", "method", r.Method, "path", r.URL.Path)
		next.ServeHTTP(w, r)
	})
}

func (s *mockServer) consentHandler(w http.ResponseWriter, r *http.Request) {
	state := r.URL.Query().Get("state")
	if r.URL.Query().Get("application_id") == "" || state == "" {
		http.Error(w, "application_id and state are required", http.StatusBadRequest)
		return
	}

	target, err := url.Parse(s.opts.redirectURI)
	if err != nil {
		http.Error(w, "bad redirect uri", http.StatusInternalServerError)
		return
	}

	q := target.Query()
	q.Set("state", state)
	if r.URL.Query().Get("deny") != "" {
		q.Set("error", "access_denied")
		q.Set("error_description", "The seller declined the authorization")
	} else {
		code := "ANmock" + strings.ReplaceAll(uuid.NewString(), "-", "")
		s.mu.Lock()
		s.codes[code] = true
		s.mu.Unlock()
		q.Set("spapi_oauth_code", code)
		q.Set("selling_partner_id", mockSellerID)
	}
	target.RawQuery = q.Encode()

	http.Redirect(w, r, target.String(), http.StatusFound)
}

func (s *mockServer) tokenHandler(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		writeTokenError(w, http.StatusBadRequest, "invalid_request", "malformed form body")
		return
	}
	if r.PostForm.Get("client_id") == "" || r.PostForm.Get("client_secret") == "" {
		s.logger.Warn("token request missing client credentials")
		writeTokenError(w, http.StatusUnauthorized, "invalid_client", "client authentication failed")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	switch r.PostForm.Get("grant_type") {
	case "authorization_code":
		code := r.PostForm.Get("code")
		if !s.codes[code] {
			writeTokenError(w, http.StatusBadRequest, "invalid_grant", "authorization code is invalid or was already used")
			return
		}
		delete(s.codes, code)
	case "refresh_token":
		rt := r.PostForm.Get("refresh_token")
		if !s.refresh[rt] {
			writeTokenError(w, http.StatusBadRequest, "invalid_grant", "refresh token is invalid or revoked")
			return
		}
		delete(s.refresh, rt)
	default:
		writeTokenError(w, http.StatusBadRequest, "unsupported_grant_type", "grant type not supported")
		return
	}

	access := "Atza|mock-" + uuid.NewString()
	refresh := "Atzr|mock-" + uuid.NewString()
	s.access[access] = s.now().Add(s.opts.tokenTTL)
	s.refresh[refresh] = true

	writeJSON(w, http.StatusOK, map[string]any{
		"access_token":  access,
		"refresh_token": refresh,
		"token_type":    "bearer",
		"expires_in":    int(s.opts.tokenTTL.Seconds()),
	})
	s.logger.Info("issued mock token", "grant_type", r.PostForm.Get("grant_type"))
}

// authorized rejects calls whose access token was not issued here or has
// expired.
func (s *mockServer) authorized(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token := r.Header.Get("x-amz-access-token")
		s.mu.Lock()
		exp, ok := s.access[token]
		now := s.now()
		s.mu.Unlock()
		if !ok || !now.Before(exp) {
			writeAPIError(w, http.StatusUnauthorized, "Unauthorized", "The access token is invalid or expired.")
			return
		}
		w.Header().Set(spapi.RateLimitHeader, s.opts.rateLimit)
		next(w, r)
	}
}

func (s *mockServer) ordersHandler(w http.ResponseWriter, r *http.Request) {
	if s.opts.denyOrders {
		writeAPIError(w, http.StatusForbidden, "Unauthorized", "Access to requested resource is denied.")
		return
	}

	q := r.URL.Query()
	if q.Get("MarketplaceIds") == "" {
		writeAPIError(w, http.StatusBadRequest, "InvalidInput", "MarketplaceIds is required.")
		return
	}
	after, err := time.Parse(time.RFC3339, q.Get("CreatedAfter"))
	if err != nil {
		writeAPIError(w, http.StatusBadRequest, "InvalidInput", "CreatedAfter must be ISO 8601.")
		return
	}

	limit := 100
	if v, err := strconv.Atoi(q.Get("MaxResultsPerPage")); err == nil && v > 0 {
		limit = min(v, 100)
	}
	offset := 0
	if v, err := strconv.Atoi(q.Get("NextToken")); err == nil && v >= 0 {
		offset = v
	}

	matched := make([]spapi.Order, 0, len(s.orders))
	for _, o := range s.orders {
		created, err := time.Parse(time.RFC3339, o.PurchaseDate)
		if err == nil && !created.Before(after) {
			matched = append(matched, o)
		}
	}

	page := []spapi.Order{}
	if offset < len(matched) {
		page = matched[offset:min(offset+limit, len(matched))]
	}

	s.mu.Lock()
	now := s.now()
	s.mu.Unlock()

	payload := map[string]any{
		"Orders":        page,
		"CreatedBefore": now.UTC().Format(time.RFC3339),
	}
	if offset+limit < len(matched) {
		payload["NextToken"] = strconv.Itoa(offset + limit)
	}

	writeJSON(w, http.StatusOK, map[string]any{"payload": payload})
	s.logger.Info("orders", "matched", len(matched), "returned", len(page), "offset", offset)
}

func (s *mockServer) rdtHandler(w http.ResponseWriter, r *http.Request) {
	if s.opts.denyOrders {
		writeAPIError(w, http.StatusForbidden, "Unauthorized", "Access to requested resource is denied.")
		return
	}

	var body struct {
		RestrictedResources []spapi.RestrictedResource `json:"restrictedResources"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || len(body.RestrictedResources) == 0 {
		writeAPIError(w, http.StatusBadRequest, "InvalidInput", "restrictedResources is required.")
		return
	}
	for _, res := range body.RestrictedResources {
		if !slices.Contains([]string{http.MethodGet, http.MethodPost}, res.Method) {
			writeAPIError(w, http.StatusBadRequest, "InvalidInput", "unsupported method "+res.Method)
			return
		}
	}

	token := "Atz.sprdt|mock-" + uuid.NewString()
	s.mu.Lock()
	s.access[token] = s.now().Add(time.Hour)
	s.mu.Unlock()

	writeJSON(w, http.StatusOK, spapi.RestrictedDataToken{Token: token, ExpiresIn: 3600})
}

func (s *mockServer) participationsHandler(w http.ResponseWriter, _ *http.Request) {
	entry := map[string]any{
		"marketplace": map[string]any{
			"id":                  s.opts.marketplaceID,
			"countryCode":         "US",
			"defaultCurrencyCode": "USD",
		},
		"participation": map[string]any{
			"isParticipating":      true,
			"hasSuspendedListings": false,
		},
	}
	writeJSON(w, http.StatusOK, map[string]any{"payload": []any{entry}})
}

func writeTokenError(w http.ResponseWriter, status int, code, description string) {
	writeJSON(w, status, map[string]string{
		"error":             code,
		"error_description": description,
	})
}

func writeAPIError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, map[string]any{
		"errors": []map[string]string{{"code": code, "message": message}},
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	//nolint:errcheck,gosec // best-effort write to HTTP response in mock server
	json.NewEncoder(w).Encode(v)
}
