package catalog

import (
	"net/url"
	"strings"
)

// Links are storefront search URLs for an item.
type Links struct {
	Amazon    string `json:"amazon"`
	Flipkart  string `json:"flipkart"`
	Pepperfry string `json:"pepperfry,omitempty"`
}

var purchaseLinks = map[string]Links{
	"sofa":             {Amazon: "https://www.amazon.in/s?k=modern+sofa+3+seater", Flipkart: "https://www.flipkart.com/search?q=modern+sofa"},
	"armchair":         {Amazon: "https://www.amazon.in/s?k=armchair+living+room", Flipkart: "https://www.flipkart.com/search?q=armchair"},
	"coffee_table":     {Amazon: "https://www.amazon.in/s?k=coffee+table+wooden", Flipkart: "https://www.flipkart.com/search?q=coffee+table"},
	"side_table":       {Amazon: "https://www.amazon.in/s?k=side+table+living+room", Flipkart: "https://www.flipkart.com/search?q=side+table"},
	"floor_lamp":       {Amazon: "https://www.amazon.in/s?k=floor+lamp+standing", Flipkart: "https://www.flipkart.com/search?q=floor+lamp"},
	"table_lamp":       {Amazon: "https://www.amazon.in/s?k=table+lamp+bedside", Flipkart: "https://www.flipkart.com/search?q=table+lamp"},
	"bed":              {Amazon: "https://www.amazon.in/s?k=king+size+bed+wooden", Flipkart: "https://www.flipkart.com/search?q=king+bed"},
	"nightstand":       {Amazon: "https://www.amazon.in/s?k=nightstand+bedside+table", Flipkart: "https://www.flipkart.com/search?q=nightstand"},
	"bookshelf":        {Amazon: "https://www.amazon.in/s?k=bookshelf+wooden", Flipkart: "https://www.flipkart.com/search?q=bookshelf"},
	"tv_stand":         {Amazon: "https://www.amazon.in/s?k=tv+stand+unit", Flipkart: "https://www.flipkart.com/search?q=tv+stand"},
	"plant":            {Amazon: "https://www.amazon.in/s?k=indoor+plants+natural", Flipkart: "https://www.flipkart.com/search?q=indoor+plants"},
	"artificial_plant": {Amazon: "https://www.amazon.in/s?k=artificial+plants+indoor", Flipkart: "https://www.flipkart.com/search?q=artificial+plant"},
	"wall_art":         {Amazon: "https://www.amazon.in/s?k=wall+art+painting", Flipkart: "https://www.flipkart.com/search?q=wall+art"},
	"rug":              {Amazon: "https://www.amazon.in/s?k=area+rug+carpet", Flipkart: "https://www.flipkart.com/search?q=area+rug"},
	"dining_table":     {Amazon: "https://www.amazon.in/s?k=dining+table+6+seater", Flipkart: "https://www.flipkart.com/search?q=dining+table"},
	"dining_chair":     {Amazon: "https://www.amazon.in/s?k=dining+chairs+set+of+4", Flipkart: "https://www.flipkart.com/search?q=dining+chairs"},
	"desk":             {Amazon: "https://www.amazon.in/s?k=office+desk+computer+table", Flipkart: "https://www.flipkart.com/search?q=office+desk"},
	"office_chair":     {Amazon: "https://www.amazon.in/s?k=office+chair+ergonomic", Flipkart: "https://www.flipkart.com/search?q=office+chair"},
	"curtains":         {Amazon: "https://www.amazon.in/s?k=window+curtains+door", Flipkart: "https://www.flipkart.com/search?q=curtains"},
	"bathtub":          {Amazon: "https://www.amazon.in/s?k=bathtub+freestanding", Flipkart: "https://www.flipkart.com/search?q=bathtub"},
	"shower":           {Amazon: "https://www.amazon.in/s?k=shower+head+bathroom", Flipkart: "https://www.flipkart.com/search?q=shower+head"},
	"sink":             {Amazon: "https://www.amazon.in/s?k=bathroom+sink+wash+basin", Flipkart: "https://www.flipkart.com/search?q=wash+basin"},
	"mirror":           {Amazon: "https://www.amazon.in/s?k=wall+mirror+bathroom", Flipkart: "https://www.flipkart.com/search?q=wall+mirror"},
	"gas_stove":        {Amazon: "https://www.amazon.in/s?k=gas+stove+3+burner", Flipkart: "https://www.flipkart.com/search?q=gas+stove"},
	"kitchen_cabinet":  {Amazon: "https://www.amazon.in/s?k=kitchen+cabinet+modular", Flipkart: "https://www.flipkart.com/search?q=kitchen+cabinet"},
	"refrigerator":     {Amazon: "https://www.amazon.in/s?k=refrigerator+double+door", Flipkart: "https://www.flipkart.com/search?q=refrigerator"},
	"dishwasher":       {Amazon: "https://www.amazon.in/s?k=dishwasher+automatic", Flipkart: "https://www.flipkart.com/search?q=dishwasher"},
	"microwave":        {Amazon: "https://www.amazon.in/s?k=microwave+oven", Flipkart: "https://www.flipkart.com/search?q=microwave+oven"},
}

// Links returns the purchase links for key, or generated search links when
// the key has no curated entry.
func (c *Catalog) Links(key string) Links {
	if l, ok := purchaseLinks[key]; ok {
		return l
	}
	q := strings.ReplaceAll(key, "_", "+")
	return Links{
		Amazon:   "https://www.amazon.in/s?k=" + q + "+furniture",
		Flipkart: "https://www.flipkart.com/search?q=" + q,
	}
}

// SearchLinks builds storefront searches for a free-text item name.
func SearchLinks(name string) Links {
	q := url.QueryEscape(strings.Join(strings.Fields(name), " "))
	return Links{
		Amazon:    "https://www.amazon.in/s?k=" + q + "+furniture",
		Flipkart:  "https://www.flipkart.com/search?q=" + q,
		Pepperfry: "https://www.pepperfry.com/search?q=" + q,
	}
}
