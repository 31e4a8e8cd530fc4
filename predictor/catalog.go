package predictor

// UnknownCrop is returned for class indices the catalog does not cover.
const UnknownCrop = "Unknown"

// Catalog maps 1-based crop indices to display names.
type Catalog map[int]string

// DefaultCatalog returns the 22 crops the bundled classifier was trained on.
// Class i of the classifier output corresponds to index i+1.
func DefaultCatalog() Catalog {
	return Catalog{
		1: "Rice", 2: "Maize", 3: "Jute", 4: "Cotton", 5: "Coconut", 6: "Papaya",
		7: "Orange", 8: "Apple", 9: "Muskmelon", 10: "Watermelon", 11: "Grapes",
		12: "Mango", 13: "Banana", 14: "Pomegranate", 15: "Lentil", 16: "Blackgram",
		17: "Mungbean", 18: "Mothbeans", 19: "Pigeonpeas", 20: "Kidneybeans",
		21: "Chickpea", 22: "Coffee",
	}
}

// Name returns the crop name for index or UnknownCrop.
func (c Catalog) Name(index int) string {
	if name, ok := c[index]; ok {
		return name
	}
	return UnknownCrop
}

// Names lists crop names in index order, stopping at the first gap.
func (c Catalog) Names() []string {
	out := make([]string, 0, len(c))
	for i := 1; ; i++ {
		name, ok := c[i]
		if !ok {
			return out
		}
		out = append(out, name)
	}
}
