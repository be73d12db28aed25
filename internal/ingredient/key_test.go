package ingredient

import (
	"testing"

	"github.com/dukerupert/dishly/internal/model"
)

func TestMergeKey(t *testing.T) {
	tests := []struct {
		name, unit string
		want       string
	}{
		{"flour", "g", "flour_g"},
		{"Flour", "g", "Flour_g"},
		{"flour ", "g", "flour _g"},
		{"", "", "_"},
	}
	for _, tt := range tests {
		if got := MergeKey(tt.name, tt.unit); got != tt.want {
			t.Errorf("MergeKey(%q, %q) = %q, want %q", tt.name, tt.unit, got, tt.want)
		}
	}
}

func TestMergeKeyCaseSensitive(t *testing.T) {
	if MergeKey("Flour", "g") == MergeKey("flour", "g") {
		t.Error("expected different keys for Flour and flour")
	}
	if MergeKey("flour", "g") == MergeKey("flour", "kg") {
		t.Error("expected different keys for g and kg")
	}
}

func recipeWith(ings ...model.Ingredient) *model.Recipe {
	return &model.Recipe{Ingredients: ings}
}

func TestMergeSumsSameKey(t *testing.T) {
	items := Merge([]*model.Recipe{
		recipeWith(model.Ingredient{Name: "flour", Quantity: 200, Unit: "g"}),
		recipeWith(model.Ingredient{Name: "flour", Quantity: 300, Unit: "g"}),
	})
	if len(items) != 1 {
		t.Fatalf("len(items) = %d, want 1", len(items))
	}
	if items[0].Quantity != 500 {
		t.Errorf("Quantity = %v, want 500", items[0].Quantity)
	}
	if items[0].Checked {
		t.Error("expected merged item to be unchecked")
	}
	if items[0].Category != AisleBaking {
		t.Errorf("Category = %q, want %q", items[0].Category, AisleBaking)
	}
}

func TestMergeKeepsDifferentUnitsApart(t *testing.T) {
	items := Merge([]*model.Recipe{
		recipeWith(model.Ingredient{Name: "flour", Quantity: 200, Unit: "g"}),
		recipeWith(model.Ingredient{Name: "flour", Quantity: 1, Unit: "kg"}),
	})
	if len(items) != 2 {
		t.Fatalf("len(items) = %d, want 2", len(items))
	}
	if items[0].Unit != "g" || items[1].Unit != "kg" {
		t.Errorf("units = %q, %q; want g, kg", items[0].Unit, items[1].Unit)
	}
}

func TestMergeFirstOccurrenceOrder(t *testing.T) {
	items := Merge([]*model.Recipe{
		recipeWith(
			model.Ingredient{Name: "eggs", Quantity: 2, Unit: "pcs"},
			model.Ingredient{Name: "milk", Quantity: 250, Unit: "ml"},
		),
		recipeWith(
			model.Ingredient{Name: "butter", Quantity: 50, Unit: "g"},
			model.Ingredient{Name: "eggs", Quantity: 3, Unit: "pcs"},
		),
	})
	want := []string{"eggs", "milk", "butter"}
	if len(items) != len(want) {
		t.Fatalf("len(items) = %d, want %d", len(items), len(want))
	}
	for i, name := range want {
		if items[i].IngredientName != name {
			t.Errorf("items[%d] = %q, want %q", i, items[i].IngredientName, name)
		}
	}
	if items[0].Quantity != 5 {
		t.Errorf("eggs Quantity = %v, want 5", items[0].Quantity)
	}
}

func TestMergeCaseVariantsStaySeparate(t *testing.T) {
	items := Merge([]*model.Recipe{
		recipeWith(model.Ingredient{Name: "Flour", Quantity: 1, Unit: "cup"}),
		recipeWith(model.Ingredient{Name: "flour", Quantity: 1, Unit: "cup"}),
	})
	if len(items) != 2 {
		t.Errorf("len(items) = %d, want 2", len(items))
	}
}

func TestMergeEmpty(t *testing.T) {
	items := Merge(nil)
	if items == nil {
		t.Fatal("expected non-nil empty slice")
	}
	if len(items) != 0 {
		t.Errorf("len(items) = %d, want 0", len(items))
	}
}
