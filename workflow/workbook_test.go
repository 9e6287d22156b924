package workflow

import (
	"bytes"
	"testing"

	"bitbucket.org/mmdatafocus/gastrocost_backend/models"
	"bitbucket.org/mmdatafocus/gastrocost_backend/utils"
)

// Exporting a recomputed dataset and importing it back must reproduce the
// same state and the same diagnostics.
func TestWorkbookRoundTrip(t *testing.T) {
	original, originalDiags := Recalc(burgerFixture(t))

	f, err := WriteWorkbook(original)
	if err != nil {
		t.Fatalf("WriteWorkbook: %v", err)
	}
	defer f.Close()

	buf, err := f.WriteToBuffer()
	if err != nil {
		t.Fatalf("WriteToBuffer: %v", err)
	}

	imported, err := ReadWorkbook(bytes.NewReader(buf.Bytes()))
	if err != nil {
		t.Fatalf("ReadWorkbook: %v", err)
	}

	reimported, reimportedDiags := Recalc(imported)

	a, err := utils.MarshalToJSON(original)
	if err != nil {
		t.Fatal(err)
	}
	b, err := utils.MarshalToJSON(reimported)
	if err != nil {
		t.Fatal(err)
	}
	if a != b {
		t.Fatalf("round trip changed state:\n%s\n%s", a, b)
	}
	if len(originalDiags) != len(reimportedDiags) {
		t.Fatalf("diagnostics differ: %d vs %d", len(originalDiags), len(reimportedDiags))
	}
}

func TestReadWorkbookMissingSheets(t *testing.T) {
	data := models.AppData{
		Dishes: []models.DishRow{{Dish: "Currywurst", PriceMenu: decPtr(t, "8.50")}},
	}
	f, err := WriteWorkbook(data)
	if err != nil {
		t.Fatalf("WriteWorkbook: %v", err)
	}
	defer f.Close()
	if err := f.DeleteSheet(SheetInventory); err != nil {
		t.Fatalf("DeleteSheet: %v", err)
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		t.Fatalf("WriteToBuffer: %v", err)
	}

	imported, err := ReadWorkbook(bytes.NewReader(buf.Bytes()))
	if err != nil {
		t.Fatalf("a missing sheet must not fail the import: %v", err)
	}
	if len(imported.Inventory) != 0 {
		t.Fatalf("inventory should be empty: %+v", imported.Inventory)
	}
	if len(imported.Dishes) != 1 {
		t.Fatalf("dishes lost: %+v", imported.Dishes)
	}
}

func TestReadWorkbookGarbage(t *testing.T) {
	if _, err := ReadWorkbook(bytes.NewReader([]byte("not a workbook"))); err == nil {
		t.Fatal("expected an error for a non-xlsx stream")
	}
}
