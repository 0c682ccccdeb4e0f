package catalog

// KeywordRule maps a catalog key to its trigger phrases, tried in order.
type KeywordRule struct {
	Key     string
	Phrases []string
}

// Underscore variants are kept because clients submit catalog keys verbatim
// when a prompt is filled from a budget suggestion.
var keywordRules = []KeywordRule{
	{Key: "sofa", Phrases: []string{"sofa", "couch"}},
	{Key: "armchair", Phrases: []string{"armchair", "arm chair"}},
	{Key: "coffee_table", Phrases: []string{"coffee_table", "coffee table"}},
	{Key: "side_table", Phrases: []string{"side_table", "side table"}},
	{Key: "floor_lamp", Phrases: []string{"floor_lamp", "floor lamp", "standing lamp"}},
	{Key: "table_lamp", Phrases: []string{"table_lamp", "table lamp", "desk lamp"}},
	{Key: "bed", Phrases: []string{"bed"}},
	{Key: "nightstand", Phrases: []string{"nightstand", "night stand", "bedside table"}},
	{Key: "bookshelf", Phrases: []string{"bookshelf", "book shelf"}},
	{Key: "tv_stand", Phrases: []string{"tv_stand", "tv stand", "television stand", "media console"}},
	{Key: "plant", Phrases: []string{"plant"}},
	{Key: "artificial_plant", Phrases: []string{"artificial_plant", "artificial plant"}},
	{Key: "wall_art", Phrases: []string{"wall_art", "wall art", "painting", "art frame"}},
	{Key: "rug", Phrases: []string{"rug", "carpet"}},
	{Key: "dining_table", Phrases: []string{"dining_table", "dining table"}},
	{Key: "dining_chair", Phrases: []string{"dining_chair", "dining chair"}},
	{Key: "desk", Phrases: []string{"desk"}},
	{Key: "office_chair", Phrases: []string{"office_chair", "office chair", "task chair"}},
	{Key: "curtains", Phrases: []string{"curtains", "curtain", "drape", "drapes", "window curtain"}},
	{Key: "bathtub", Phrases: []string{"bathtub", "bath tub", "tub"}},
	{Key: "shower", Phrases: []string{"shower"}},
	{Key: "sink", Phrases: []string{"sink"}},
	{Key: "mirror", Phrases: []string{"mirror"}},
	{Key: "gas_stove", Phrases: []string{"gas_stove", "gas stove", "stove", "cooktop", "range"}},
	{Key: "kitchen_cabinet", Phrases: []string{"kitchen_cabinet", "cabinet", "kitchen cabinet", "cabinets"}},
	{Key: "refrigerator", Phrases: []string{"refrigerator", "fridge"}},
	{Key: "dishwasher", Phrases: []string{"dishwasher"}},
	{Key: "microwave", Phrases: []string{"microwave", "oven"}},
}

// Room priorities drive the budget suggester. Order matters.
var roomPriorities = map[string][]string{
	"living_room": {"sofa", "coffee_table", "tv_stand", "rug", "floor_lamp", "curtains", "plant", "side_table", "wall_art"},
	"bedroom":     {"bed", "nightstand", "table_lamp", "rug", "curtains", "mirror", "plant", "bookshelf"},
	"kitchen":     {"refrigerator", "gas_stove", "kitchen_cabinet", "microwave", "sink", "dishwasher", "dining_table", "dining_chair"},
	"bathroom":    {"bathtub", "shower", "sink", "mirror", "curtains"},
	"office":      {"desk", "office_chair", "bookshelf", "floor_lamp", "plant", "rug", "curtains"},
	"dining_room": {"dining_table", "dining_chair", "rug", "curtains", "plant", "wall_art", "mirror"},
}

// DefaultRoom is used for room types without a priority list.
const DefaultRoom = "living_room"

// Priorities returns the priority order for a normalized room type and
// whether the room was known. Unknown rooms get the DefaultRoom order.
func (c *Catalog) Priorities(room string) ([]string, bool) {
	list, ok := roomPriorities[room]
	if !ok {
		list = roomPriorities[DefaultRoom]
	}
	return append([]string(nil), list...), ok
}
