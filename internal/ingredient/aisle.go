package ingredient

import "strings"

// Aisles an ingredient can be shelved under.
const (
	AisleProduce    = "Produce"
	AisleDairy      = "Dairy & Eggs"
	AisleMeat       = "Meat & Seafood"
	AisleBakery     = "Bakery"
	AisleBaking     = "Baking"
	AisleSpices     = "Spices & Seasonings"
	AislePantry     = "Pantry"
	AisleCondiments = "Oils & Condiments"
	AisleFrozen     = "Frozen"
	AisleBeverages  = "Beverages"
	AisleOther      = "Other"
)

// Categorize returns the aisle for an ingredient name. Matching ignores case
// and surrounding whitespace: exact names win, then the first keyword
// contained in the name. Unknown names fall back to AisleOther.
func Categorize(name string) string {
	n := strings.ToLower(strings.TrimSpace(name))
	if n == "" {
		return AisleOther
	}
	if aisle, ok := exactAisles[n]; ok {
		return aisle
	}
	for _, kw := range aisleKeywords {
		if strings.Contains(n, kw.keyword) {
			return kw.aisle
		}
	}
	return AisleOther
}

var exactAisles = map[string]string{
	"salt":         AisleSpices,
	"pepper":       AisleSpices,
	"black pepper": AisleSpices,
	"oil":          AisleCondiments,
	"egg":          AisleDairy,
	"eggs":         AisleDairy,
	"ham":          AisleMeat,
	"rice":         AislePantry,
	"water":        AisleBeverages,
	"stock":        AislePantry,
	"yeast":        AisleBaking,
	"corn":         AisleProduce,
	"tea":          AisleBeverages,
}

type aisleKeyword struct {
	keyword string
	aisle   string
}

// Longer phrases come first so "peanut butter" is not filed under dairy and
// "bell pepper" is not filed under spices.
var aisleKeywords = []aisleKeyword{
	{"peanut butter", AisleCondiments},
	{"almond milk", AisleDairy},
	{"coconut milk", AislePantry},
	{"bell pepper", AisleProduce},
	{"chili pepper", AisleProduce},
	{"red pepper flakes", AisleSpices},
	{"ice cream", AisleFrozen},
	{"frozen", AisleFrozen},
	{"baking powder", AisleBaking},
	{"baking soda", AisleBaking},
	{"brown sugar", AisleBaking},
	{"vanilla", AisleBaking},
	{"cocoa", AisleBaking},
	{"chocolate chip", AisleBaking},
	{"cornstarch", AisleBaking},
	{"flour", AisleBaking},
	{"sugar", AisleBaking},
	{"olive oil", AisleCondiments},
	{"soy sauce", AisleCondiments},
	{"fish sauce", AisleCondiments},
	{"vinegar", AisleCondiments},
	{"mayonnaise", AisleCondiments},
	{"mustard", AisleCondiments},
	{"ketchup", AisleCondiments},
	{"honey", AisleCondiments},
	{"syrup", AisleCondiments},
	{" oil", AisleCondiments},
	{"chicken breast", AisleMeat},
	{"chicken thigh", AisleMeat},
	{"ground beef", AisleMeat},
	{"ground turkey", AisleMeat},
	{"chicken", AisleMeat},
	{"beef", AisleMeat},
	{"pork", AisleMeat},
	{"bacon", AisleMeat},
	{"sausage", AisleMeat},
	{"lamb", AisleMeat},
	{"turkey", AisleMeat},
	{"salmon", AisleMeat},
	{"tuna", AisleMeat},
	{"shrimp", AisleMeat},
	{"prawn", AisleMeat},
	{"cod", AisleMeat},
	{"fish", AisleMeat},
	{"eggplant", AisleProduce},
	{"cream cheese", AisleDairy},
	{"sour cream", AisleDairy},
	{"cheese", AisleDairy},
	{"yogurt", AisleDairy},
	{"butter", AisleDairy},
	{"cream", AisleDairy},
	{"milk", AisleDairy},
	{"egg", AisleDairy},
	{"breadcrumb", AislePantry},
	{"bread", AisleBakery},
	{"tortilla", AisleBakery},
	{"baguette", AisleBakery},
	{"bun", AisleBakery},
	{"pita", AisleBakery},
	{"cinnamon", AisleSpices},
	{"cumin", AisleSpices},
	{"paprika", AisleSpices},
	{"oregano", AisleSpices},
	{"thyme", AisleSpices},
	{"nutmeg", AisleSpices},
	{"turmeric", AisleSpices},
	{"chili powder", AisleSpices},
	{"seasoning", AisleSpices},
	{"powder", AisleSpices},
	{"broth", AislePantry},
	{"stock", AislePantry},
	{"pasta", AislePantry},
	{"spaghetti", AislePantry},
	{"noodle", AislePantry},
	{"rice", AislePantry},
	{"lentil", AislePantry},
	{"bean", AislePantry},
	{"chickpea", AislePantry},
	{"oat", AislePantry},
	{"canned", AislePantry},
	{"tomato paste", AislePantry},
	{"tomato sauce", AislePantry},
	{"nut", AislePantry},
	{"almond", AislePantry},
	{"tomato", AisleProduce},
	{"potato", AisleProduce},
	{"onion", AisleProduce},
	{"shallot", AisleProduce},
	{"garlic", AisleProduce},
	{"ginger", AisleProduce},
	{"carrot", AisleProduce},
	{"celery", AisleProduce},
	{"lettuce", AisleProduce},
	{"spinach", AisleProduce},
	{"kale", AisleProduce},
	{"cabbage", AisleProduce},
	{"broccoli", AisleProduce},
	{"cauliflower", AisleProduce},
	{"zucchini", AisleProduce},
	{"mushroom", AisleProduce},
	{"cucumber", AisleProduce},
	{"avocado", AisleProduce},
	{"lemon", AisleProduce},
	{"lime", AisleProduce},
	{"apple", AisleProduce},
	{"banana", AisleProduce},
	{"berr", AisleProduce},
	{"basil", AisleProduce},
	{"parsley", AisleProduce},
	{"cilantro", AisleProduce},
	{"mint", AisleProduce},
	{"scallion", AisleProduce},
	{"juice", AisleBeverages},
	{"wine", AisleBeverages},
	{"beer", AisleBeverages},
	{"coffee", AisleBeverages},
}
