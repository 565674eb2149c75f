package marketplace

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"MarketStore/internal/kvstore"
	"MarketStore/pkg/kit"
)

const (
	maxRequestBody = 1 << 20
	sessionTTL     = 30 * 24 * time.Hour
)

// Server exposes the marketplace façade over HTTP. Sessions is
// optional: when nil the mutating routes are open.
type Server struct {
	Service  *Service
	KV       kvstore.Store
	Sessions *TokenMaker
	Log      *zap.Logger
}

func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusOK) })
	r.Get("/readyz", s.readyz)

	r.Get("/categories", s.listCategories)
	r.Get("/categories/{id}/products", s.listProducts)
	r.Get("/products/{id}", s.getProduct)

	r.Post("/session", s.createSession)

	r.Get("/cart", s.getCart)
	r.Get("/favorites", s.listFavorites)
	r.Get("/viewed", s.listViewed)

	r.Group(func(pr chi.Router) {
		if s.Sessions != nil {
			pr.Use(RequireSession(s.Sessions))
		}
		pr.Post("/catalog/reload", s.reloadCatalog)
		pr.Post("/cart/items", s.addToCart)
		pr.Patch("/cart/items/{id}", s.changeQuantity)
		pr.Delete("/cart/items/{id}", s.removeFromCart)
		pr.Post("/cart/checkout", s.checkout)
		pr.Post("/favorites/{id}/toggle", s.toggleFavorite)
		pr.Delete("/favorites/{id}", s.removeFavorite)
		pr.Post("/viewed/{id}", s.recordView)
	})

	return r
}

func (s *Server) readyz(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 1*time.Second)
	defer cancel()

	if s.KV != nil {
		if err := s.KV.Ping(ctx); err != nil {
			if s.Log != nil {
				s.Log.Warn("readyz failed", zap.Error(err))
			}
			kit.WriteError(w, r, http.StatusServiceUnavailable, "not ready", nil)
			return
		}
	}
	w.WriteHeader(http.StatusOK)
}

// ----- catalog -----

func (s *Server) listCategories(w http.ResponseWriter, r *http.Request) {
	kit.WriteJSON(w, http.StatusOK, s.Service.Categories())
}

func (s *Server) listProducts(w http.ResponseWriter, r *http.Request) {
	categoryID := chi.URLParam(r, "id")

	filters, err := filtersFromQuery(r)
	if err != nil {
		kit.WriteError(w, r, http.StatusBadRequest, "bad filter", map[string]any{"reason": err.Error()})
		return
	}
	opts := QueryOptions{RealOnly: r.URL.Query().Get("real_only") == "1"}

	list, err := s.Service.ProductsByCategory(r.Context(), categoryID, filters, opts).Wait(r.Context())
	if err != nil {
		kit.WriteError(w, r, http.StatusInternalServerError, "server error", nil)
		return
	}
	kit.WriteJSON(w, http.StatusOK, productPayloads(list))
}

func (s *Server) getProduct(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var res *Result[Product]
	if r.URL.Query().Get("strict") == "1" {
		res = s.Service.ProductByIDStrict(r.Context(), id)
	} else {
		res = s.Service.ProductByID(r.Context(), id)
	}

	p, err := res.Wait(r.Context())
	if err != nil {
		switch {
		case errors.Is(err, ErrProductNotFound):
			kit.WriteError(w, r, http.StatusNotFound, "not found", map[string]any{"id": id})
		case errors.Is(err, ErrCatalogUnavailable):
			kit.WriteError(w, r, http.StatusServiceUnavailable, "catalog unavailable", nil)
		default:
			kit.WriteError(w, r, http.StatusInternalServerError, "server error", nil)
		}
		return
	}
	kit.WriteJSON(w, http.StatusOK, productPayload{Product: p, PriceDisplay: FormatPrice(p.Price)})
}

func (s *Server) reloadCatalog(w http.ResponseWriter, r *http.Request) {
	stats, err := s.Service.LoadCatalog(r.Context()).Wait(r.Context())
	if err != nil {
		if s.Log != nil {
			s.Log.Warn("catalog reload failed", zap.Error(err))
		}
		kit.WriteError(w, r, http.StatusBadGateway, "catalog load failed", nil)
		return
	}
	kit.WriteJSON(w, http.StatusOK, stats)
}

// ----- session -----

func (s *Server) createSession(w http.ResponseWriter, r *http.Request) {
	if s.Sessions == nil {
		kit.WriteError(w, r, http.StatusNotFound, "sessions disabled", nil)
		return
	}

	deviceID := "d_" + uuid.NewString()
	token, err := s.Sessions.New(deviceID, sessionTTL)
	if err != nil {
		kit.WriteError(w, r, http.StatusInternalServerError, "server error", nil)
		return
	}
	kit.WriteJSON(w, http.StatusCreated, map[string]string{
		"device_id": deviceID,
		"token":     token,
	})
}

// ----- cart -----

type addToCartReq struct {
	ProductID string         `json:"product_id"`
	Quantity  int            `json:"quantity"`
	Variant   ProductVariant `json:"variant"`
}

func (s *Server) addToCart(w http.ResponseWriter, r *http.Request) {
	var req addToCartReq
	if err := decodeBody(w, r, &req); err != nil {
		kit.WriteError(w, r, http.StatusBadRequest, "bad json", nil)
		return
	}
	if strings.TrimSpace(req.ProductID) == "" {
		kit.WriteError(w, r, http.StatusBadRequest, "product_id required", nil)
		return
	}

	p, err := s.Service.ProductByID(r.Context(), req.ProductID).Wait(r.Context())
	if err != nil {
		kit.WriteError(w, r, http.StatusInternalServerError, "server error", nil)
		return
	}

	items := s.Service.AddToCart(r.Context(), p, req.Quantity, req.Variant)
	kit.WriteJSON(w, http.StatusOK, cartPayloadFrom(items))
}

type changeQuantityReq struct {
	Delta int `json:"delta"`
}

func (s *Server) changeQuantity(w http.ResponseWriter, r *http.Request) {
	id, err := productIDParam(r)
	if err != nil {
		kit.WriteError(w, r, http.StatusBadRequest, "bad product id", nil)
		return
	}

	var req changeQuantityReq
	if err := decodeBody(w, r, &req); err != nil {
		kit.WriteError(w, r, http.StatusBadRequest, "bad json", nil)
		return
	}

	items := s.Service.ChangeQuantity(r.Context(), id, req.Delta)
	kit.WriteJSON(w, http.StatusOK, cartPayloadFrom(items))
}

func (s *Server) removeFromCart(w http.ResponseWriter, r *http.Request) {
	id, err := productIDParam(r)
	if err != nil {
		kit.WriteError(w, r, http.StatusBadRequest, "bad product id", nil)
		return
	}

	items := s.Service.RemoveFromCart(r.Context(), id)
	kit.WriteJSON(w, http.StatusOK, cartPayloadFrom(items))
}

func (s *Server) getCart(w http.ResponseWriter, r *http.Request) {
	kit.WriteJSON(w, http.StatusOK, cartPayloadFrom(s.Service.CartItems()))
}

func (s *Server) checkout(w http.ResponseWriter, r *http.Request) {
	res, err := s.Service.Checkout(r.Context())
	if err != nil {
		if errors.Is(err, ErrEmptyCart) {
			kit.WriteError(w, r, http.StatusBadRequest, "cart is empty", nil)
			return
		}
		kit.WriteError(w, r, http.StatusInternalServerError, "server error", nil)
		return
	}
	kit.WriteJSON(w, http.StatusCreated, res)
}

// ----- favorites -----

func (s *Server) listFavorites(w http.ResponseWriter, r *http.Request) {
	kit.WriteJSON(w, http.StatusOK, productPayloads(s.Service.Favorites()))
}

func (s *Server) toggleFavorite(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	p, err := s.Service.ProductByID(r.Context(), id).Wait(r.Context())
	if err != nil {
		kit.WriteError(w, r, http.StatusInternalServerError, "server error", nil)
		return
	}

	_, favorite := s.Service.ToggleFavorite(r.Context(), p)
	kit.WriteJSON(w, http.StatusOK, map[string]any{
		"product_id": p.ID,
		"favorite":   favorite,
	})
}

func (s *Server) removeFavorite(w http.ResponseWriter, r *http.Request) {
	id, err := productIDParam(r)
	if err != nil {
		kit.WriteError(w, r, http.StatusBadRequest, "bad product id", nil)
		return
	}

	kit.WriteJSON(w, http.StatusOK, productPayloads(s.Service.RemoveFavorite(r.Context(), id)))
}

// ----- recently viewed -----

func (s *Server) listViewed(w http.ResponseWriter, r *http.Request) {
	kit.WriteJSON(w, http.StatusOK, productPayloads(s.Service.RecentlyViewed()))
}

func (s *Server) recordView(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	p, err := s.Service.ProductByID(r.Context(), id).Wait(r.Context())
	if err != nil {
		kit.WriteError(w, r, http.StatusInternalServerError, "server error", nil)
		return
	}

	kit.WriteJSON(w, http.StatusOK, productPayloads(s.Service.RecordView(r.Context(), p)))
}

// ----- helpers -----

type productPayload struct {
	Product
	PriceDisplay string `json:"price_display"`
}

func productPayloads(list []Product) []productPayload {
	out := make([]productPayload, 0, len(list))
	for _, p := range list {
		out = append(out, productPayload{Product: p, PriceDisplay: FormatPrice(p.Price)})
	}
	return out
}

type cartItemPayload struct {
	CartItem
	PriceDisplay string `json:"price_display"`
}

type cartPayload struct {
	Items        []cartItemPayload `json:"items"`
	Total        int64             `json:"total"`
	TotalDisplay string            `json:"total_display"`
}

func cartPayloadFrom(items []CartItem) cartPayload {
	out := cartPayload{Items: make([]cartItemPayload, 0, len(items))}
	for _, it := range items {
		out.Items = append(out.Items, cartItemPayload{
			CartItem:     it,
			PriceDisplay: FormatPrice(it.Product.Price),
		})
		out.Total += it.Product.Price * int64(it.Quantity)
	}
	out.TotalDisplay = FormatPrice(out.Total)
	return out
}

func filtersFromQuery(r *http.Request) (*FilterOptions, error) {
	q := r.URL.Query()
	f := &FilterOptions{}
	seen := false

	if v := q.Get("price_from"); v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return nil, errors.New("price_from must be an integer")
		}
		f.PriceFrom = &n
		seen = true
	}
	if v := q.Get("price_to"); v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return nil, errors.New("price_to must be an integer")
		}
		f.PriceTo = &n
		seen = true
	}
	if v := q.Get("brands"); v != "" {
		for _, b := range strings.Split(v, ",") {
			if b = strings.TrimSpace(b); b != "" {
				f.Brands = append(f.Brands, b)
			}
		}
		if len(f.Brands) > 0 {
			seen = true
		}
	}
	if v := q.Get("rating"); v != "" {
		n, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return nil, errors.New("rating must be a number")
		}
		f.Rating = &n
		seen = true
	}
	if q.Get("in_stock") == "1" {
		f.InStock = true
		seen = true
	}
	if v := q.Get("sort"); v != "" {
		f.SortBy = SortKey(v)
		seen = true
	}

	if !seen {
		return nil, nil
	}
	return f, nil
}

func productIDParam(r *http.Request) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBody)
	defer func() { _ = r.Body.Close() }()

	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	if err := dec.Decode(v); err != nil {
		return err
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		return errors.New("extra data after json object")
	}
	return nil
}
