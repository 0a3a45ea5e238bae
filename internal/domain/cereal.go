package domain

// Cereal is one catalog record. ID is assigned by storage and never changes.
type Cereal struct {
	ID       int64
	Name     string
	Mfr      string
	Type     string
	Calories int
	Protein  int
	Fat      int
	Sodium   int
	Fiber    float64
	Carbo    float64
	Sugars   int
	Potass   int
	Vitamins int
	Shelf    int
	Weight   float64
	Cups     float64
	Rating   float64

	// ImagePath is a file name inside the image directory; nil means "use the default image".
	ImagePath *string
}

// Column widths of the cereals table, in characters.
const (
	MaxTextLen      = 50
	MaxImagePathLen = 200
)

// FieldKind is the declared type of a catalog attribute.
type FieldKind int

const (
	KindText FieldKind = iota
	KindInt
	KindFloat
)

// Field describes one filterable attribute. Name doubles as JSON key, query parameter and column.
type Field struct {
	Name string
	Kind FieldKind
}

// CerealFields lists every attribute except id and image_path, in column order.
var CerealFields = []Field{
	{"name", KindText},
	{"mfr", KindText},
	{"type", KindText},
	{"calories", KindInt},
	{"protein", KindInt},
	{"fat", KindInt},
	{"sodium", KindInt},
	{"fiber", KindFloat},
	{"carbo", KindFloat},
	{"sugars", KindInt},
	{"potass", KindInt},
	{"vitamins", KindInt},
	{"shelf", KindInt},
	{"weight", KindFloat},
	{"cups", KindFloat},
	{"rating", KindFloat},
}

// CerealPatch holds the attributes present in a create/update payload.
// A nil pointer means the key was absent.
type CerealPatch struct {
	Name     *string
	Mfr      *string
	Type     *string
	Calories *int
	Protein  *int
	Fat      *int
	Sodium   *int
	Fiber    *float64
	Carbo    *float64
	Sugars   *int
	Potass   *int
	Vitamins *int
	Shelf    *int
	Weight   *float64
	Cups     *float64
	Rating   *float64

	// ImagePathSet distinguishes an explicit null from an absent key.
	ImagePath    *string
	ImagePathSet bool
}

// ApplyTo overwrites the fields of c that are present in the patch.
func (p CerealPatch) ApplyTo(c *Cereal) {
	setString(&c.Name, p.Name)
	setString(&c.Mfr, p.Mfr)
	setString(&c.Type, p.Type)
	setInt(&c.Calories, p.Calories)
	setInt(&c.Protein, p.Protein)
	setInt(&c.Fat, p.Fat)
	setInt(&c.Sodium, p.Sodium)
	setFloat(&c.Fiber, p.Fiber)
	setFloat(&c.Carbo, p.Carbo)
	setInt(&c.Sugars, p.Sugars)
	setInt(&c.Potass, p.Potass)
	setInt(&c.Vitamins, p.Vitamins)
	setInt(&c.Shelf, p.Shelf)
	setFloat(&c.Weight, p.Weight)
	setFloat(&c.Cups, p.Cups)
	setFloat(&c.Rating, p.Rating)
	if p.ImagePathSet {
		c.ImagePath = p.ImagePath
	}
}

// Missing returns the names of required attributes absent from the patch, in column order.
func (p CerealPatch) Missing() []string {
	present := map[string]bool{
		"name":     p.Name != nil,
		"mfr":      p.Mfr != nil,
		"type":     p.Type != nil,
		"calories": p.Calories != nil,
		"protein":  p.Protein != nil,
		"fat":      p.Fat != nil,
		"sodium":   p.Sodium != nil,
		"fiber":    p.Fiber != nil,
		"carbo":    p.Carbo != nil,
		"sugars":   p.Sugars != nil,
		"potass":   p.Potass != nil,
		"vitamins": p.Vitamins != nil,
		"shelf":    p.Shelf != nil,
		"weight":   p.Weight != nil,
		"cups":     p.Cups != nil,
		"rating":   p.Rating != nil,
	}
	var missing []string
	for _, f := range CerealFields {
		if !present[f.Name] {
			missing = append(missing, f.Name)
		}
	}
	return missing
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}

func setInt(dst *int, v *int) {
	if v != nil {
		*dst = *v
	}
}

func setFloat(dst *float64, v *float64) {
	if v != nil {
		*dst = *v
	}
}
