package game

import (
	"strconv"
	"strings"
	"testing"
)

func TestBulkCost_DiscountTiers(t *testing.T) {
	tests := []struct {
		name     string
		price    int
		quantity int
		want     int
	}{
		{"single item, no discount", 100, 1, 100},
		{"two items, no discount", 100, 2, 200},
		{"three items, 5%", 100, 3, 285},
		{"four items, 5%", 100, 4, 380},
		{"five items, 10%", 100, 5, 450},
		{"nine items, 10%", 100, 9, 810},
		{"ten items, 15%", 100, 10, 850},
		{"fifty items, 15%", 100, 50, 4250},
		{"odd total rounds down", 33, 10, 280}, // floor(330 * 0.85) = floor(280.5)
		{"odd total at 5% rounds down", 7, 3, 19}, // floor(21 * 0.95) = floor(19.95)
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := BulkCost(tt.price, tt.quantity); got != tt.want {
				t.Errorf("BulkCost(%d, %d) = %d, want %d", tt.price, tt.quantity, got, tt.want)
			}
		})
	}
}

func TestRecipes_MaterialsAreSoldInTheShop(t *testing.T) {
	for name, recipe := range Recipes {
		for material := range recipe.Materials {
			if _, ok := ShopItems[material]; !ok {
				t.Errorf("recipe %q needs %q, which the shop does not sell", name, material)
			}
		}
	}
}

func TestRecipes_EffectTextMatchesMechanics(t *testing.T) {
	// The healing potion is the one potion that actually does something
	// when drunk; its text must state the real amount. Nothing else is
	// allowed to promise a restore it does not deliver.
	if effect := Recipes["healing"].Effect; !strings.Contains(effect, strconv.Itoa(HealingPotionRestore)) {
		t.Errorf("healing effect %q does not state the %d restore", effect, HealingPotionRestore)
	}
	for name, recipe := range Recipes {
		if name == "healing" {
			continue
		}
		if strings.Contains(strings.ToLower(recipe.Effect), "restore") {
			t.Errorf("recipe %q promises a restore no handler implements: %q", name, recipe.Effect)
		}
	}
}

func TestJobs_WageRangesAreSane(t *testing.T) {
	for name, job := range Jobs {
		if job.MinWage <= 0 || job.MaxWage < job.MinWage {
			t.Errorf("job %q has wage range %d..%d", name, job.MinWage, job.MaxWage)
		}
		if job.Cooldown <= 0 {
			t.Errorf("job %q has no cooldown", name)
		}
	}
}

func TestFishTable_WeightsAndValues(t *testing.T) {
	total := 0
	for _, fish := range FishTable {
		if fish.Weight <= 0 {
			t.Errorf("fish %q has weight %d", fish.Name, fish.Weight)
		}
		if fish.MaxValue < fish.MinValue {
			t.Errorf("fish %q has value range %d..%d", fish.Name, fish.MinValue, fish.MaxValue)
		}
		total += fish.Weight
	}
	if total == 0 {
		t.Fatal("fish table has no weight")
	}
}
