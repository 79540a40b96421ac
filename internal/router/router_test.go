package router

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/storefront-next/internal/catalog"
	"github.com/storefront-next/internal/config"
	"github.com/storefront-next/internal/http/response"
	"github.com/storefront-next/internal/kv"
	"github.com/storefront-next/internal/models"
	"github.com/storefront-next/internal/provider"
	"github.com/storefront-next/internal/service"
	"github.com/storefront-next/internal/session"

	"github.com/gin-gonic/gin"
)

func newTestEngine(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := &config.Config{}
	cfg.Server.Mode = "debug"

	store := kv.NewMemoryStore()
	c := &provider.Container{
		Config: cfg,
		Store:  store,
		Catalog: catalog.NewStaticCatalog(
			models.Product{ID: 1, Name: "机械键盘", PriceAmount: models.NewMoneyFromInt(1000), Category: "electronics", IsActive: true},
			models.Product{ID: 2, Name: "无线鼠标", PriceAmount: models.NewMoneyFromInt(300), Category: "electronics", IsActive: true},
			models.Product{ID: 3, Name: "绝版手办", PriceAmount: models.NewMoneyFromInt(1299), Category: "lifestyle", IsActive: false},
		),
		Orders:    service.NewOrderService(store),
		Confirmer: service.NewAutoConfirmer(),
	}
	c.Sessions = session.NewManager(c.Store, c.Orders, c.Confirmer)

	return SetupRouter(cfg, c)
}

func doJSON(t *testing.T, engine *gin.Engine, method, path, sessionID string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal request failed: %v", err)
		}
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if sessionID != "" {
		req.Header.Set("X-Session-ID", sessionID)
	}
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w
}

func decodeEnvelope(t *testing.T, w *httptest.ResponseRecorder) (int, map[string]interface{}) {
	t.Helper()
	var resp struct {
		StatusCode int                    `json:"status_code"`
		Data       map[string]interface{} `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal envelope failed: %v (body: %s)", err, w.Body.String())
	}
	return resp.StatusCode, resp.Data
}

func TestCartEndpoints(t *testing.T) {
	engine := newTestEngine(t)

	w := doJSON(t, engine, http.MethodPost, "/api/v1/cart/items", "sess-a", gin.H{"product_id": 1, "quantity": 2})
	if code, _ := decodeEnvelope(t, w); code != response.CodeOK {
		t.Fatalf("add to cart want code 0 got %d (body: %s)", code, w.Body.String())
	}

	// 下架商品不可加入
	w = doJSON(t, engine, http.MethodPost, "/api/v1/cart/items", "sess-a", gin.H{"product_id": 3, "quantity": 1})
	if code, _ := decodeEnvelope(t, w); code != response.CodeBadRequest {
		t.Fatalf("inactive product want code 400 got %d", code)
	}

	// 未知商品返回 404
	w = doJSON(t, engine, http.MethodPost, "/api/v1/cart/items", "sess-a", gin.H{"product_id": 99, "quantity": 1})
	if code, _ := decodeEnvelope(t, w); code != response.CodeNotFound {
		t.Fatalf("unknown product want code 404 got %d", code)
	}

	w = doJSON(t, engine, http.MethodGet, "/api/v1/cart", "sess-a", nil)
	code, data := decodeEnvelope(t, w)
	if code != response.CodeOK {
		t.Fatalf("get cart want code 0 got %d", code)
	}
	totals, ok := data["totals"].(map[string]interface{})
	if !ok {
		t.Fatalf("cart response must carry totals, got %v", data)
	}
	if totals["total"] != "2250.00" {
		t.Fatalf("cart total want 2250.00 got %v", totals["total"])
	}

	// 会话隔离
	w = doJSON(t, engine, http.MethodGet, "/api/v1/cart", "sess-b", nil)
	_, data = decodeEnvelope(t, w)
	if items, ok := data["items"].([]interface{}); ok && len(items) != 0 {
		t.Fatalf("other session must see an empty cart, got %v", items)
	}
}

func TestWishlistEndpoints(t *testing.T) {
	engine := newTestEngine(t)

	w := doJSON(t, engine, http.MethodPost, "/api/v1/wishlist/items", "sess-a", gin.H{"product_id": 2})
	if code, _ := decodeEnvelope(t, w); code != response.CodeOK {
		t.Fatalf("add to wishlist want code 0 got %d", code)
	}

	w = doJSON(t, engine, http.MethodPost, "/api/v1/wishlist/items/2/move-to-cart", "sess-a", nil)
	if code, _ := decodeEnvelope(t, w); code != response.CodeOK {
		t.Fatalf("move to cart want code 0 got %d (body: %s)", code, w.Body.String())
	}

	// 已移走，再移一次返回 404
	w = doJSON(t, engine, http.MethodPost, "/api/v1/wishlist/items/2/move-to-cart", "sess-a", nil)
	if code, _ := decodeEnvelope(t, w); code != response.CodeNotFound {
		t.Fatalf("second move want code 404 got %d", code)
	}

	w = doJSON(t, engine, http.MethodGet, "/api/v1/cart", "sess-a", nil)
	_, data := decodeEnvelope(t, w)
	items, _ := data["items"].([]interface{})
	if len(items) != 1 {
		t.Fatalf("cart must hold the moved item, got %v", data)
	}
}

func placeTestOrder(t *testing.T, engine *gin.Engine, sessionID string) string {
	t.Helper()
	w := doJSON(t, engine, http.MethodPost, "/api/v1/cart/items", sessionID, gin.H{"product_id": 1, "quantity": 2})
	if code, _ := decodeEnvelope(t, w); code != response.CodeOK {
		t.Fatalf("add to cart failed: %s", w.Body.String())
	}
	w = doJSON(t, engine, http.MethodPost, "/api/v1/checkout/shipping", sessionID, gin.H{
		"full_name":   "张三",
		"email":       "zhangsan@example.com",
		"phone":       "13800000000",
		"street":      "幸福路 1 号",
		"city":        "上海",
		"state":       "上海",
		"postal_code": "200000",
	})
	if code, _ := decodeEnvelope(t, w); code != response.CodeOK {
		t.Fatalf("submit shipping failed: %s", w.Body.String())
	}
	w = doJSON(t, engine, http.MethodPost, "/api/v1/checkout/payment", sessionID, gin.H{"method": "card"})
	if code, _ := decodeEnvelope(t, w); code != response.CodeOK {
		t.Fatalf("select payment method failed: %s", w.Body.String())
	}
	w = doJSON(t, engine, http.MethodPost, "/api/v1/checkout/place-order", sessionID, nil)
	code, data := decodeEnvelope(t, w)
	if code != response.CodeOK {
		t.Fatalf("place order failed: %s", w.Body.String())
	}
	order, ok := data["order"].(map[string]interface{})
	if !ok {
		t.Fatalf("place order response must carry the order, got %v", data)
	}
	id, _ := order["id"].(string)
	if id == "" {
		t.Fatalf("order id must be set, got %v", order)
	}
	return id
}

func TestCheckoutFlowEndpoints(t *testing.T) {
	engine := newTestEngine(t)

	// 空购物车直接下单被拒
	w := doJSON(t, engine, http.MethodPost, "/api/v1/checkout/shipping", "sess-empty", gin.H{
		"full_name": "张三", "email": "a@b.c", "phone": "1", "street": "s", "city": "c", "state": "st", "postal_code": "p",
	})
	if code, _ := decodeEnvelope(t, w); code != response.CodeOK {
		t.Fatalf("submit shipping failed: %s", w.Body.String())
	}
	w = doJSON(t, engine, http.MethodPost, "/api/v1/checkout/payment", "sess-empty", gin.H{"method": "upi"})
	if code, _ := decodeEnvelope(t, w); code != response.CodeOK {
		t.Fatalf("select payment method failed: %s", w.Body.String())
	}
	w = doJSON(t, engine, http.MethodPost, "/api/v1/checkout/place-order", "sess-empty", nil)
	if code, _ := decodeEnvelope(t, w); code != response.CodeBadRequest {
		t.Fatalf("empty cart order want code 400 got %d", code)
	}

	orderID := placeTestOrder(t, engine, "sess-a")

	// 下单后购物车被清空，结算状态为 confirmed
	w = doJSON(t, engine, http.MethodGet, "/api/v1/cart", "sess-a", nil)
	_, data := decodeEnvelope(t, w)
	if items, _ := data["items"].([]interface{}); len(items) != 0 {
		t.Fatalf("cart must be empty after checkout, got %v", items)
	}
	w = doJSON(t, engine, http.MethodGet, "/api/v1/checkout", "sess-a", nil)
	code, state := decodeEnvelope(t, w)
	if code != response.CodeOK || state["step"] != "confirmed" {
		t.Fatalf("checkout state want confirmed, got %v", state)
	}

	// 客户订单可见
	w = doJSON(t, engine, http.MethodGet, "/api/v1/orders/"+orderID, "sess-a", nil)
	if code, _ := decodeEnvelope(t, w); code != response.CodeOK {
		t.Fatalf("get my order want code 0 got %d", code)
	}
	// 其他会话不可见
	w = doJSON(t, engine, http.MethodGet, "/api/v1/orders/"+orderID, "sess-b", nil)
	if code, _ := decodeEnvelope(t, w); code != response.CodeNotFound {
		t.Fatalf("foreign order want code 404 got %d", code)
	}
}

func TestAdminOrderEndpoints(t *testing.T) {
	engine := newTestEngine(t)
	orderID := placeTestOrder(t, engine, "sess-a")

	w := doJSON(t, engine, http.MethodGet, "/api/v1/admin/orders", "", nil)
	code, data := decodeEnvelope(t, w)
	if code != response.CodeOK {
		t.Fatalf("admin list want code 0 got %d", code)
	}
	if orders, _ := data["orders"].([]interface{}); len(orders) != 1 {
		t.Fatalf("admin list want 1 order, got %v", data)
	}

	// confirmed → processing
	path := fmt.Sprintf("/api/v1/admin/orders/%s/status", orderID)
	w = doJSON(t, engine, http.MethodPut, path, "", gin.H{"status": "processing"})
	code, data = decodeEnvelope(t, w)
	if code != response.CodeOK {
		t.Fatalf("status update want code 0 got %d (body: %s)", code, w.Body.String())
	}
	order, _ := data["order"].(map[string]interface{})
	if order["status"] != "processing" {
		t.Fatalf("status want processing got %v", order["status"])
	}

	// 非法流转：processing → delivered
	w = doJSON(t, engine, http.MethodPut, path, "", gin.H{"status": "delivered"})
	if code, _ = decodeEnvelope(t, w); code != response.CodeConflict {
		t.Fatalf("illegal transition want code 409 got %d", code)
	}

	// 未知订单
	w = doJSON(t, engine, http.MethodPut, "/api/v1/admin/orders/SF00000000000000000000/status", "", gin.H{"status": "confirmed"})
	if code, _ = decodeEnvelope(t, w); code != response.CodeNotFound {
		t.Fatalf("unknown order want code 404 got %d", code)
	}
}
