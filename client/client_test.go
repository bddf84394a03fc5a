package client

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/kasuganosora/datapad/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildURL(t *testing.T) {
	c := New("https://datapad.example/.netlify/functions/")

	assert.Equal(t, "https://datapad.example/.netlify/functions/GetAllContacts",
		c.BuildURL("GetAllContacts", nil))
	assert.Equal(t,
		"https://datapad.example/.netlify/functions/GetShopInventory?enhanced=true&shopName=equipment&stock=-1&weight=0.5",
		c.BuildURL("GetShopInventory", map[string]any{
			"shopName": model.ShopEquipment,
			"enhanced": true,
			"stock":    -1,
			"weight":   0.5,
		}))
	assert.Equal(t, "https://datapad.example/.netlify/functions/GetPlayer?userName=R2+D2%26C3PO",
		c.BuildURL("GetPlayer", map[string]any{"userName": "R2 D2&C3PO"}))
}

// stubServer answers every request with status and body and counts calls.
func stubServer(t *testing.T, status int, body string) (*httptest.Server, *int32) {
	t.Helper()
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv, &calls
}

func TestCall_DecodesErrorEnvelope(t *testing.T) {
	srv, _ := stubServer(t, http.StatusInternalServerError, `{"message":"multiple players found for \"ayla\": invariant violation"}`)
	c := New(srv.URL)

	_, err := c.GetPlayer(context.Background(), "ayla")
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusInternalServerError, apiErr.StatusCode)
	assert.Contains(t, apiErr.Message, "multiple players found")
	assert.True(t, IsStatus(err, http.StatusInternalServerError))
}

func TestCall_NonJSONError(t *testing.T) {
	srv, _ := stubServer(t, http.StatusBadGateway, `<html>bad gateway</html>`)
	_, err := New(srv.URL).GetTimeline(context.Background())
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "Bad Gateway", apiErr.Message)
}

func TestCall_SendsToken(t *testing.T) {
	var auth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auth = r.Header.Get("Authorization")
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "Medpac", r.URL.Query().Get("itemName"))
		_, _ = w.Write([]byte(`{"name":"Medpac"}`))
	}))
	defer srv.Close()

	c := New(srv.URL, WithToken("tok"), WithHTTPClient(srv.Client()))
	require.NoError(t, c.DeleteInventoryItem(context.Background(), model.ShopApothecary, "Medpac"))
	assert.Equal(t, "Bearer tok", auth)
}

func TestPurchase_OutOfStockSendsNothing(t *testing.T) {
	srv, calls := stubServer(t, http.StatusOK, `{}`)
	c := New(srv.URL)

	item := model.InventoryItem{Name: "Glow Rod", Stock: 0}
	got, err := c.Purchase(context.Background(), model.ShopEquipment, item)
	assert.ErrorIs(t, err, ErrOutOfStock)
	assert.Equal(t, 0, got.Stock)
	assert.Zero(t, atomic.LoadInt32(calls))
}

func TestPurchase_UnlimitedIsNoop(t *testing.T) {
	srv, calls := stubServer(t, http.StatusOK, `{}`)
	c := New(srv.URL)

	item := model.InventoryItem{Name: "Comlink", Stock: model.UnlimitedStock}
	got, err := c.Purchase(context.Background(), model.ShopEquipment, item)
	require.NoError(t, err)
	assert.Equal(t, model.UnlimitedStock, got.Stock)
	assert.Zero(t, atomic.LoadInt32(calls))
}

func TestPurchase_FailedEditKeepsStock(t *testing.T) {
	srv, calls := stubServer(t, http.StatusInternalServerError, `{"message":"item \"Medpac\" not found"}`)
	c := New(srv.URL)

	got, err := c.Purchase(context.Background(), model.ShopEquipment, model.InventoryItem{Name: "Medpac", Stock: 5})
	require.Error(t, err)
	assert.False(t, errors.Is(err, ErrOutOfStock))
	assert.Equal(t, 5, got.Stock)
	assert.Equal(t, int32(1), atomic.LoadInt32(calls))
}
