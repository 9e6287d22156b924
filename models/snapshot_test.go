package models

import (
	"path/filepath"
	"testing"
)

func TestSnapshotRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "snapshot.json")

	data := AppData{
		Inventory: []InventoryItem{{Name: "Pommes frites TK", PurchasePrice: decPtr(t, "12.49"), PurchaseUnit: "kg"}},
		Mapping:   []MappingRow{{RecipeName: "Pommes", Correction: "Pommes frites TK", Status: MappingStatusResolved}},
		Recipes:   []RecipeLine{{Dish: "Pommes klein", IngredientName: "Pommes", Quantity: decPtr(t, "150"), Unit: RecipeUnitGram}},
		Dishes:    []DishRow{{Dish: "Pommes klein", PriceMenu: decPtr(t, "3.50")}},
	}
	day := NewDayState()
	day.QtyByDish["Pommes klein"] = 12
	day.SurchargePct = dec(t, "5")

	if err := SaveSnapshot(path, Snapshot{Data: data, Day: day}); err != nil {
		t.Fatalf("SaveSnapshot: %v", err)
	}

	snap, ok, err := LoadSnapshot(path)
	if err != nil {
		t.Fatalf("LoadSnapshot: %v", err)
	}
	if !ok {
		t.Fatal("snapshot not found after save")
	}
	if snap.SavedAt.IsZero() {
		t.Fatal("SavedAt not stamped")
	}
	if len(snap.Data.Inventory) != 1 || snap.Data.Inventory[0].Name != "Pommes frites TK" {
		t.Fatalf("inventory did not survive: %+v", snap.Data.Inventory)
	}
	if !snap.Data.Inventory[0].PurchasePrice.Equal(dec(t, "12.49")) {
		t.Fatalf("purchase price = %s, want 12.49", snap.Data.Inventory[0].PurchasePrice)
	}
	if snap.Data.Mapping[0].Correction != "Pommes frites TK" {
		t.Fatalf("correction lost: %+v", snap.Data.Mapping[0])
	}
	if snap.Day.QtyByDish["Pommes klein"] != 12 {
		t.Fatalf("day quantity lost: %+v", snap.Day.QtyByDish)
	}
	if !snap.Day.SurchargePct.Equal(dec(t, "5")) {
		t.Fatalf("surcharge lost: %s", snap.Day.SurchargePct)
	}
}

func TestLoadSnapshotMissingFile(t *testing.T) {
	_, ok, err := LoadSnapshot(filepath.Join(t.TempDir(), "nope.json"))
	if err != nil {
		t.Fatalf("missing file should not error: %v", err)
	}
	if ok {
		t.Fatal("missing file reported as found")
	}
}

func TestCloneIsDeep(t *testing.T) {
	data := AppData{
		Inventory: []InventoryItem{{Name: "Ketchup", PurchasePrice: decPtr(t, "4.20")}},
		Recipes:   []RecipeLine{{Dish: "Currywurst", IngredientName: "Ketchup", Quantity: decPtr(t, "30")}},
	}
	clone := data.Clone()

	clone.Inventory[0].Name = "changed"
	*clone.Recipes[0].Quantity = dec(t, "99")

	if data.Inventory[0].Name != "Ketchup" {
		t.Fatal("clone shares inventory backing array")
	}
	if !data.Recipes[0].Quantity.Equal(dec(t, "30")) {
		t.Fatalf("clone shares quantity pointer: %s", data.Recipes[0].Quantity)
	}
}
