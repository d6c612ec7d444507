package store

import (
	"reflect"
	"testing"
)

func TestMerge_KeepsKeysAbsentFromPatch(t *testing.T) {
	dst := Doc{"coins": 100, "level": 3}
	Merge(dst, Doc{"coins": 70})

	if dst["coins"] != 70 {
		t.Errorf("coins = %v, want 70", dst["coins"])
	}
	if dst["level"] != 3 {
		t.Errorf("level = %v, want 3 (untouched)", dst["level"])
	}
}

func TestMerge_NestedMappingsMergeRecursively(t *testing.T) {
	dst := Doc{
		"inventory": Doc{
			"materials": Doc{"herb": 5},
			"potions":   Doc{"healing": 1},
		},
	}
	Merge(dst, Doc{
		"inventory": Doc{
			"materials": Doc{"mushroom": 2},
		},
	})

	materials := dst["inventory"].(Doc)["materials"].(Doc)
	if materials["herb"] != 5 {
		t.Errorf("materials.herb = %v, want 5", materials["herb"])
	}
	if materials["mushroom"] != 2 {
		t.Errorf("materials.mushroom = %v, want 2", materials["mushroom"])
	}
	potions := dst["inventory"].(Doc)["potions"].(Doc)
	if potions["healing"] != 1 {
		t.Errorf("potions.healing = %v, want 1", potions["healing"])
	}
}

func TestMerge_ArraysReplaceWholesale(t *testing.T) {
	dst := Doc{"plots": []any{"wheat", "carrot"}}
	Merge(dst, Doc{"plots": []any{"pumpkin"}})

	want := []any{"pumpkin"}
	if !reflect.DeepEqual(dst["plots"], want) {
		t.Errorf("plots = %v, want %v", dst["plots"], want)
	}
}

func TestMerge_LeafReplacesMapping(t *testing.T) {
	dst := Doc{"pet": Doc{"name": "Rex"}}
	Merge(dst, Doc{"pet": "none"})

	if dst["pet"] != "none" {
		t.Errorf("pet = %v, want the scalar to replace the mapping", dst["pet"])
	}
}

func TestMerge_MappingReplacesLeaf(t *testing.T) {
	dst := Doc{"bank": 0}
	Merge(dst, Doc{"bank": Doc{"balance": 50}})

	bank, ok := dst["bank"].(Doc)
	if !ok {
		t.Fatalf("bank = %v, want a mapping", dst["bank"])
	}
	if bank["balance"] != 50 {
		t.Errorf("bank.balance = %v, want 50", bank["balance"])
	}
}

func TestMerge_ReturnsDst(t *testing.T) {
	dst := Doc{"a": 1}
	if got := Merge(dst, Doc{"b": 2}); !reflect.DeepEqual(got, dst) {
		t.Errorf("Merge did not return dst: got %v", got)
	}
}
