package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pricecard/internal/bootstrap"
	"pricecard/internal/codec"
	"pricecard/internal/models"
	"pricecard/internal/persist"
	"pricecard/internal/pricing"
)

type testEnv struct {
	server    *Server
	fragment  *persist.MemoryFragment
	cache     *persist.MemoryCache
	clipboard *persist.RecordingClipboard
}

func newTestEnv(t *testing.T, seedToken string, supported bool) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)

	fragment := persist.NewMemoryFragment(supported)
	if seedToken != "" {
		fragment.Seed(seedToken)
	}
	cache := persist.NewMemoryCache()
	clipboard := persist.NewRecordingClipboard()

	srv := NewServer(Options{
		Controller: bootstrap.New(cache, fragment, log),
		Clipboard:  clipboard,
		Logger:     log,
		ShareBase:  "http://localhost:8080/",
	})

	return &testEnv{server: srv, fragment: fragment, cache: cache, clipboard: clipboard}
}

func (e *testEnv) do(t *testing.T, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	req.AddCookie(&http.Cookie{Name: sessionCookie, Value: "test-session"})

	w := httptest.NewRecorder()
	e.server.Router().ServeHTTP(w, req)
	return w
}

func decodeMenu(t *testing.T, w *httptest.ResponseRecorder) *models.AppData {
	t.Helper()
	var resp struct {
		Menu *models.AppData `json:"menu"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp.Menu
}

func pricedMenuToken() string {
	return codec.Encode(&models.AppData{
		Categories: []models.Category{
			{
				ID:    "c1",
				Title: "Services",
				Items: []models.MenuItem{
					{ID: "base", Name: "Base plan", Price: 500, Kind: models.ItemKindToggle},
					{ID: "unit", Name: "Extra unit", Price: 300, Kind: models.ItemKindCounter},
				},
			},
		},
		Modifiers: []models.Modifier{
			{ID: "disc", Name: "Member discount", Percent: -10},
		},
	})
}

func TestGetMenuDefaults(t *testing.T) {
	env := newTestEnv(t, "", true)

	w := env.do(t, "GET", "/api/menu", "")
	assert.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Menu *models.AppData `json:"menu"`
		Mode string          `json:"mode"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, models.DefaultAppData(), resp.Menu)
	assert.Equal(t, string(ModeOperator), resp.Mode)
}

func TestShareTokenSelectsCustomerMode(t *testing.T) {
	env := newTestEnv(t, pricedMenuToken(), true)

	w := env.do(t, "GET", "/api/menu", "")
	var resp struct {
		Mode string `json:"mode"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, string(ModeCustomer), resp.Mode)
}

func TestCategoryLifecycle(t *testing.T) {
	env := newTestEnv(t, "", true)

	menu := decodeMenu(t, env.do(t, "POST", "/api/categories", ""))
	added := menu.Categories[len(menu.Categories)-1]

	w := env.do(t, "PATCH", "/api/categories/"+added.ID, `{"title":"Weekend"}`)
	menu = decodeMenu(t, w)
	assert.Equal(t, "Weekend", menu.Categories[len(menu.Categories)-1].Title)

	// Declining confirmation leaves state unchanged.
	w = env.do(t, "DELETE", "/api/categories/"+added.ID, "")
	var resp struct {
		ConfirmationRequired bool `json:"confirmationRequired"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.ConfirmationRequired)
	menu = decodeMenu(t, env.do(t, "GET", "/api/menu", ""))
	_, stillThere := menu.FindCategory(added.ID)
	assert.True(t, stillThere)

	menu = decodeMenu(t, env.do(t, "DELETE", "/api/categories/"+added.ID+"?confirm=true", ""))
	_, gone := menu.FindCategory(added.ID)
	assert.False(t, gone)
}

func TestUpdateItemCoercesPrice(t *testing.T) {
	env := newTestEnv(t, pricedMenuToken(), true)

	menu := decodeMenu(t, env.do(t, "PATCH", "/api/categories/c1/items/base",
		`{"field":"price","value":"750"}`))
	item, _ := menu.Categories[0].FindItem("base")
	assert.Equal(t, 750, item.Price)

	// Junk coerces rather than errors.
	menu = decodeMenu(t, env.do(t, "PATCH", "/api/categories/c1/items/base",
		`{"field":"price","value":"not a number"}`))
	item, _ = menu.Categories[0].FindItem("base")
	assert.Equal(t, 0, item.Price)
}

func TestUpdateItemRejectsUnknownField(t *testing.T) {
	env := newTestEnv(t, pricedMenuToken(), true)

	w := env.do(t, "PATCH", "/api/categories/c1/items/base",
		`{"field":"color","value":"red"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCartQuoteFlow(t *testing.T) {
	env := newTestEnv(t, pricedMenuToken(), true)

	env.do(t, "POST", "/api/cart/items/base", `{"delta":1}`)
	env.do(t, "POST", "/api/cart/items/unit", `{"delta":1}`)
	env.do(t, "POST", "/api/cart/items/unit", `{"delta":1}`)
	env.do(t, "POST", "/api/cart/modifiers/disc", "{}")

	w := env.do(t, "GET", "/api/quote", "")
	assert.Equal(t, http.StatusOK, w.Code)

	var quote pricing.Quote
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &quote))
	assert.Equal(t, 1100, quote.Subtotal)
	assert.Equal(t, 990, quote.Total)
	require.Len(t, quote.Applied, 1)
	assert.Equal(t, -110, quote.Applied[0].Amount)
}

func TestUnknownCartItemIsInert(t *testing.T) {
	env := newTestEnv(t, pricedMenuToken(), true)

	env.do(t, "POST", "/api/cart/items/ghost", `{"delta":3}`)

	var quote pricing.Quote
	w := env.do(t, "GET", "/api/quote", "")
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &quote))
	assert.Equal(t, 0, quote.Subtotal)
}

func TestReceiptEndpoint(t *testing.T) {
	env := newTestEnv(t, pricedMenuToken(), true)

	env.do(t, "POST", "/api/cart/items/base", `{"delta":1}`)

	w := env.do(t, "GET", "/api/receipt", "")
	var resp struct {
		Receipt string `json:"receipt"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Contains(t, resp.Receipt, "Base plan $500")
	assert.Contains(t, resp.Receipt, "Total: $500")
}

func TestMutationRepublishesFragmentAndCache(t *testing.T) {
	env := newTestEnv(t, "", true)

	menu := decodeMenu(t, env.do(t, "POST", "/api/categories", ""))

	decoded, err := codec.Decode(env.fragment.Read())
	require.NoError(t, err)
	assert.Equal(t, menu, decoded)

	cached, err := env.cache.Load()
	require.NoError(t, err)
	assert.Equal(t, menu, cached)
}

func TestShareLink(t *testing.T) {
	env := newTestEnv(t, "", true)

	w := env.do(t, "GET", "/api/share", "")
	var resp struct {
		Available bool   `json:"available"`
		Token     string `json:"token"`
		URL       string `json:"url"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.True(t, resp.Available)
	assert.True(t, strings.HasPrefix(resp.URL, "http://localhost:8080/#"))

	decoded, err := codec.Decode(resp.Token)
	require.NoError(t, err)
	assert.Equal(t, models.DefaultAppData(), decoded)
}

func TestShareDisabledWhenUnsupported(t *testing.T) {
	env := newTestEnv(t, "", false)

	w := env.do(t, "GET", "/api/share", "")
	var resp struct {
		Available bool   `json:"available"`
		Warning   string `json:"warning"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.False(t, resp.Available)
	assert.NotEmpty(t, resp.Warning)
}

func TestCopyShareSetsAckFlag(t *testing.T) {
	env := newTestEnv(t, "", true)

	w := env.do(t, "POST", "/api/share/copy", "")
	var resp struct {
		Copied bool `json:"copied"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Copied)
	assert.Contains(t, env.clipboard.Last(), "#")

	w = env.do(t, "GET", "/api/copied", "")
	var ack struct {
		Active bool `json:"active"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &ack))
	assert.True(t, ack.Active)
}

func TestStatsEndpoint(t *testing.T) {
	env := newTestEnv(t, "", true)

	env.do(t, "POST", "/api/categories", "")
	env.do(t, "GET", "/api/quote", "")

	w := env.do(t, "GET", "/api/stats", "")
	var stats map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &stats))
	assert.Contains(t, stats, "uptime_seconds")
	assert.Contains(t, stats, "mutations_add_category")
	assert.Contains(t, stats, "quotes_computed")
}

func TestHealth(t *testing.T) {
	env := newTestEnv(t, "", true)
	w := env.do(t, "GET", "/health", "")
	assert.Equal(t, http.StatusOK, w.Code)
}
