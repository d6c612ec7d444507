package game

import "time"

// The tables below are game content: literal data read by the command
// handlers. Balancing changes happen here, not in code.

// Recipe is one brewable potion. Effect is display text; the healing
// potion is the only one with a mechanical effect so far, the rest are
// trade goods.
type Recipe struct {
	Name      string
	Level     int
	Coins     int
	Materials map[string]int
	Effect    string
}

// HealingPotionRestore is how much health drinking a healing potion
// gives back.
const HealingPotionRestore = 50

var Recipes = map[string]Recipe{
	"healing": {
		Name:      "healing",
		Level:     1,
		Coins:     20,
		Materials: map[string]int{"herb": 2, "water flask": 1},
		Effect:    "Restores 50 health",
	},
	"mana": {
		Name:      "mana",
		Level:     3,
		Coins:     35,
		Materials: map[string]int{"moon blossom": 2, "water flask": 1},
		Effect:    "Cold and blue, hums faintly in the dark",
	},
	"strength": {
		Name:      "strength",
		Level:     6,
		Coins:     60,
		Materials: map[string]int{"troll moss": 3, "iron dust": 1},
		Effect:    "Smells like a thunderstorm in a bottle",
	},
	"invisibility": {
		Name:      "invisibility",
		Level:     10,
		Coins:     120,
		Materials: map[string]int{"ghost cap": 2, "moon blossom": 1, "iron dust": 2},
		Effect:    "The bottle looks empty. It is not.",
	},
}

// Job is one selectable work assignment.
type Job struct {
	Name     string
	Level    int
	MinWage  int
	MaxWage  int
	XP       int
	Cooldown time.Duration
}

var Jobs = map[string]Job{
	"farmhand":   {Name: "farmhand", Level: 1, MinWage: 15, MaxWage: 40, XP: 10, Cooldown: 30 * time.Minute},
	"fishmonger": {Name: "fishmonger", Level: 3, MinWage: 30, MaxWage: 70, XP: 15, Cooldown: 45 * time.Minute},
	"miner":      {Name: "miner", Level: 5, MinWage: 50, MaxWage: 110, XP: 25, Cooldown: time.Hour},
	"guard":      {Name: "guard", Level: 8, MinWage: 80, MaxWage: 160, XP: 35, Cooldown: 90 * time.Minute},
	"alchemist":  {Name: "alchemist", Level: 12, MinWage: 130, MaxWage: 260, XP: 50, Cooldown: 2 * time.Hour},
}

// Fish is one catchable species. Weight drives the rarity roll; higher
// weight means more common.
type Fish struct {
	Name     string
	Weight   int
	MinValue int
	MaxValue int
	XP       int
}

var FishTable = []Fish{
	{Name: "minnow", Weight: 40, MinValue: 3, MaxValue: 8, XP: 4},
	{Name: "perch", Weight: 30, MinValue: 8, MaxValue: 18, XP: 8},
	{Name: "river trout", Weight: 18, MinValue: 15, MaxValue: 35, XP: 14},
	{Name: "silver eel", Weight: 8, MinValue: 35, MaxValue: 80, XP: 25},
	{Name: "golden carp", Weight: 3, MinValue: 100, MaxValue: 220, XP: 60},
	{Name: "abyssal pike", Weight: 1, MinValue: 300, MaxValue: 600, XP: 150},
}

const FishingCooldown = 5 * time.Minute

// Crop is one plantable crop.
type Crop struct {
	Name      string
	SeedCost  int
	GrowTime  time.Duration
	Yield     int
	SellPrice int
}

var Crops = map[string]Crop{
	"wheat":   {Name: "wheat", SeedCost: 10, GrowTime: 30 * time.Minute, Yield: 3, SellPrice: 8},
	"carrot":  {Name: "carrot", SeedCost: 20, GrowTime: time.Hour, Yield: 4, SellPrice: 12},
	"pumpkin": {Name: "pumpkin", SeedCost: 50, GrowTime: 3 * time.Hour, Yield: 2, SellPrice: 60},
}

// FarmPlots is how many plots a farm has.
const FarmPlots = 4

// ShopItem is one purchasable item, materials included.
type ShopItem struct {
	Name     string
	Price    int
	Category string
}

var ShopItems = map[string]ShopItem{
	"herb":         {Name: "herb", Price: 10, Category: "materials"},
	"water flask":  {Name: "water flask", Price: 5, Category: "materials"},
	"moon blossom": {Name: "moon blossom", Price: 25, Category: "materials"},
	"troll moss":   {Name: "troll moss", Price: 30, Category: "materials"},
	"iron dust":    {Name: "iron dust", Price: 45, Category: "materials"},
	"ghost cap":    {Name: "ghost cap", Price: 80, Category: "materials"},
	"fishing rod":  {Name: "fishing rod", Price: 150, Category: "equipment"},
	"lucky charm":  {Name: "lucky charm", Price: 500, Category: "equipment"},
}

// DiscountTier is one bulk discount step. Tiers are ordered from the
// largest quantity down; the first tier the quantity reaches applies.
type DiscountTier struct {
	MinQuantity int
	Percent     int
}

var DiscountTiers = []DiscountTier{
	{MinQuantity: 10, Percent: 15},
	{MinQuantity: 5, Percent: 10},
	{MinQuantity: 3, Percent: 5},
}

// BulkCost is the total price for quantity units after the bulk
// discount, rounded down.
func BulkCost(price, quantity int) int {
	total := price * quantity
	for _, tier := range DiscountTiers {
		if quantity >= tier.MinQuantity {
			return total * (100 - tier.Percent) / 100
		}
	}
	return total
}

// Opponent is one arena opponent.
type Opponent struct {
	Name   string
	Level  int
	Power  int
	Reward int
	XP     int
}

var Opponents = map[string]Opponent{
	"training dummy": {Name: "training dummy", Level: 1, Power: 5, Reward: 15, XP: 10},
	"tavern brawler": {Name: "tavern brawler", Level: 3, Power: 15, Reward: 45, XP: 25},
	"bandit":         {Name: "bandit", Level: 6, Power: 30, Reward: 110, XP: 50},
	"ogre":           {Name: "ogre", Level: 10, Power: 55, Reward: 260, XP: 110},
	"dragon whelp":   {Name: "dragon whelp", Level: 15, Power: 90, Reward: 600, XP: 250},
}

const ArenaCooldown = 10 * time.Minute

// TrainableSkill is one skill the train command accepts.
type TrainableSkill struct {
	Name string
	Cost int
	XP   int
}

var TrainableSkills = map[string]TrainableSkill{
	"alchemy":   {Name: "alchemy", Cost: 25, XP: 20},
	"combat":    {Name: "combat", Cost: 25, XP: 20},
	"fishing":   {Name: "fishing", Cost: 20, XP: 20},
	"farming":   {Name: "farming", Cost: 20, XP: 20},
	"bartering": {Name: "bartering", Cost: 40, XP: 25},
}

const TrainingCooldown = 15 * time.Minute

// DailyReward is the base daily grant; level scales it.
const DailyReward = 100

// MarketListingTTL is how long a listing stays on the market before
// housekeeping purges it. The item is not returned on expiry.
const MarketListingTTL = 48 * time.Hour

// MarketConfirmWindow bounds the button-confirmation flow for large
// purchases; an unanswered confirmation expires with no side effects.
const MarketConfirmWindow = 30 * time.Second

// MarketConfirmThreshold is the total price from which a purchase asks
// for confirmation first.
const MarketConfirmThreshold = 500
