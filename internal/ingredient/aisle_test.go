package ingredient

import "testing"

func TestCategorizeExact(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"salt", AisleSpices},
		{"eggs", AisleDairy},
		{"rice", AislePantry},
		{"yeast", AisleBaking},
	}
	for _, tt := range tests {
		if got := Categorize(tt.input); got != tt.want {
			t.Errorf("Categorize(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestCategorizeKeyword(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"all-purpose flour", AisleBaking},
		{"boneless chicken thighs", AisleMeat},
		{"peanut butter", AisleCondiments},
		{"unsalted butter", AisleDairy},
		{"red bell pepper", AisleProduce},
		{"extra virgin olive oil", AisleCondiments},
		{"frozen peas", AisleFrozen},
		{"vegetable broth", AislePantry},
		{"smoked paprika", AisleSpices},
		{"cherry tomatoes", AisleProduce},
		{"sourdough bread", AisleBakery},
	}
	for _, tt := range tests {
		if got := Categorize(tt.input); got != tt.want {
			t.Errorf("Categorize(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestCategorizeIgnoresCaseAndSpace(t *testing.T) {
	if got := Categorize("  Garlic Cloves "); got != AisleProduce {
		t.Errorf("Categorize = %q, want %q", got, AisleProduce)
	}
}

func TestCategorizeUnknown(t *testing.T) {
	for _, input := range []string{"", "   ", "xanthan gum"} {
		if got := Categorize(input); got != AisleOther {
			t.Errorf("Categorize(%q) = %q, want %q", input, got, AisleOther)
		}
	}
}
