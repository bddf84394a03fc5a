package integration

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/kasuganosora/datapad/client"
	"github.com/kasuganosora/datapad/model"
	"github.com/kasuganosora/datapad/viewmodel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
)

func medpac(stock int) model.InventoryItem {
	return model.InventoryItem{
		Name: "Medpac", Category: "Medical", Type: "Consumable",
		Rarity: "Common", Weight: 0.5, Cost: 100, Stock: stock,
	}
}

func findItem(t *testing.T, items []model.InventoryItem, name string) model.InventoryItem {
	t.Helper()
	for _, it := range items {
		if it.Name == name {
			return it
		}
	}
	t.Fatalf("item %q not in listing", name)
	return model.InventoryItem{}
}

// invocations sums the invocation counter of function across statuses.
func invocations(t *testing.T, ts *TestServer, function string) float64 {
	t.Helper()
	families, err := ts.Metrics.Registry().Gather()
	require.NoError(t, err)
	var n float64
	for _, mf := range families {
		if mf.GetName() != "datapad_function_invocations_total" {
			continue
		}
		for _, m := range mf.GetMetric() {
			for _, l := range m.GetLabel() {
				if l.GetName() == "function" && l.GetValue() == function {
					n += m.GetCounter().GetValue()
				}
			}
		}
	}
	return n
}

func TestHealth(t *testing.T) {
	ts := NewTestServer(t)
	resp := ts.Get(t, "/health")
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestPurchaseFlow(t *testing.T) {
	ts := NewTestServer(t)
	ctx := context.Background()
	gm := ts.Client(t, "gm")

	require.NoError(t, gm.InsertInventoryItem(ctx, model.ShopEquipment, medpac(5)))

	items, err := gm.GetShopInventory(ctx, model.ShopEquipment)
	require.NoError(t, err)
	item := findItem(t, items, "Medpac")
	assert.Equal(t, 5, item.Stock)

	bought, err := gm.Purchase(ctx, model.ShopEquipment, item)
	require.NoError(t, err)
	assert.Equal(t, 4, bought.Stock)

	items, err = gm.GetShopInventory(ctx, model.ShopEquipment)
	require.NoError(t, err)
	assert.Equal(t, 4, findItem(t, items, "Medpac").Stock, "listing reflects the purchase through the cache")

	ts.Audit.Stop()
	var edits []model.AuditLog
	require.NoError(t, ts.DB.Where(&model.AuditLog{Function: "EditInventoryItem"}).Find(&edits).Error)
	require.Len(t, edits, 1)
	assert.Equal(t, "gm", edits[0].UserName)
}

func TestPurchase_ZeroAndUnlimitedStock(t *testing.T) {
	ts := NewTestServer(t)
	ctx := context.Background()
	gm := ts.Client(t, "gm")

	empty := medpac(0)
	empty.Name = "Glow Rod"
	endless := medpac(model.UnlimitedStock)
	endless.Name = "Comlink"
	require.NoError(t, gm.InsertInventoryItem(ctx, model.ShopEquipment, empty))
	require.NoError(t, gm.InsertInventoryItem(ctx, model.ShopEquipment, endless))
	_, err := gm.Purchase(ctx, model.ShopEquipment, empty)
	assert.ErrorIs(t, err, client.ErrOutOfStock)

	got, err := gm.Purchase(ctx, model.ShopEquipment, endless)
	require.NoError(t, err)
	assert.Equal(t, model.UnlimitedStock, got.Stock)

	items, err := gm.GetShopInventory(ctx, model.ShopEquipment)
	require.NoError(t, err)
	assert.Equal(t, 0, findItem(t, items, "Glow Rod").Stock)
	assert.Equal(t, model.UnlimitedStock, findItem(t, items, "Comlink").Stock)

	assert.Zero(t, invocations(t, ts, "EditInventoryItem"), "neither purchase reached the backend")
}

func TestAnonymousWritesRejected(t *testing.T) {
	ts := NewTestServer(t)
	ctx := context.Background()

	err := ts.Client(t, "").InsertInventoryItem(ctx, model.ShopApothecary, medpac(1))
	assert.True(t, client.IsStatus(err, http.StatusUnauthorized), "%v", err)

	items, err := ts.Client(t, "").GetShopInventory(ctx, model.ShopApothecary)
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestDuplicatePlayerSurfaced(t *testing.T) {
	ts := NewTestServer(t)
	require.NoError(t, ts.DB.Create(&model.Player{UserName: "ayla"}).Error)
	require.NoError(t, ts.DB.Create(&model.Player{UserName: "ayla"}).Error)

	_, err := ts.Client(t, "").GetPlayer(context.Background(), "ayla")
	var apiErr *client.APIError
	require.True(t, errors.As(err, &apiErr), "%v", err)
	assert.Equal(t, http.StatusInternalServerError, apiErr.StatusCode)
	assert.Contains(t, apiErr.Message, "multiple players found")
}

func TestCampaignRecords(t *testing.T) {
	ts := NewTestServer(t)
	ctx := context.Background()
	gm := ts.Client(t, "gm")

	require.NoError(t, gm.InsertCharacter(ctx, model.Character{
		Name: "Kira Vos", PlayerCharacter: true, KnownBy: datatypes.JSONSlice[string]{"ayla"},
	}))
	require.NoError(t, gm.InsertCharacter(ctx, model.Character{Name: "The Broker"}))
	require.NoError(t, gm.InsertContact(ctx, model.Contact{Name: "Cantina", Location: "Mos Eisley"}))
	require.NoError(t, gm.InsertTimelineEvent(ctx, model.TimelineEvent{Name: "Landing", Date: "Day 1"}))
	require.NoError(t, ts.DB.Create(&model.Player{
		UserName: "ayla", Characters: datatypes.JSONSlice[string]{"Kira Vos"},
	}).Error)

	player, err := gm.GetPlayer(ctx, "ayla")
	require.NoError(t, err)
	assert.Equal(t, []string{"Kira Vos"}, []string(player.Characters))

	owned, err := gm.GetPlayerCharacters(ctx, "ayla")
	require.NoError(t, err)
	require.Len(t, owned, 1)

	known, err := gm.GetKnownCharacters(ctx)
	require.NoError(t, err)
	assert.Len(t, known, 1)

	pcs, err := gm.GetAllPlayerCharacters(ctx)
	require.NoError(t, err)
	assert.Len(t, pcs, 1)

	require.NoError(t, gm.EditCharacter(ctx, model.Character{Name: "The Broker", Location: "Nar Shaddaa"}))
	all, err := gm.GetAllCharacters(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	require.NoError(t, gm.EditContact(ctx, model.Contact{Name: "Cantina", Description: "Loud"}))
	contacts, err := gm.GetAllContacts(ctx)
	require.NoError(t, err)
	require.Len(t, contacts, 1)
	assert.Equal(t, "Loud", contacts[0].Description)

	require.NoError(t, gm.EditTimelineEvent(ctx, model.TimelineEvent{Name: "Landing", Date: "Day 2"}))
	events, err := gm.GetTimeline(ctx)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, "Day 2", events[0].Date)

	require.NoError(t, gm.DeleteCharacter(ctx, "The Broker"))
	require.NoError(t, gm.DeleteContact(ctx, "Cantina"))
	require.NoError(t, gm.DeleteTimelineEvent(ctx, "Landing"))
	err = gm.DeleteTimelineEvent(ctx, "Landing")
	assert.True(t, client.IsStatus(err, http.StatusInternalServerError), "%v", err)
}

func TestInventoryTable(t *testing.T) {
	ts := NewTestServer(t)
	ctx := context.Background()
	gm := ts.Client(t, "gm")

	for i, name := range []string{"Stimpack", "Antitoxin", "Bacta Tank", "Burn Gel"} {
		it := medpac(i - 1)
		it.Name = name
		require.NoError(t, gm.InsertInventoryItem(ctx, model.ShopApothecary, it))
	}
	items, err := gm.GetShopInventory(ctx, model.ShopApothecary)
	require.NoError(t, err)

	st := viewmodel.NewStore()
	st.Load(items)
	st.Dispatch(viewmodel.SetInStockOnly{On: true})
	st.Dispatch(viewmodel.SetSort{Field: "stock"})

	var got []string
	for _, it := range st.View().Rows {
		got = append(got, it.Name)
	}
	assert.Equal(t, []string{"Bacta Tank", "Burn Gel", "Stimpack"}, got)

	require.NoError(t, gm.DeleteInventoryItem(ctx, model.ShopApothecary, "Burn Gel"))
	items, err = gm.GetShopInventory(ctx, model.ShopApothecary)
	require.NoError(t, err)
	st.Load(items)
	assert.Equal(t, viewmodel.Default(), st.State())
	assert.Equal(t, 3, st.View().Total)
}

func TestMetricsEndpoint(t *testing.T) {
	ts := NewTestServer(t)
	_, err := ts.Client(t, "").GetTimeline(context.Background())
	require.NoError(t, err)

	resp := ts.Get(t, "/metrics")
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(body), `datapad_function_invocations_total{function="GetTimeline",status="200"} 1`))
}
