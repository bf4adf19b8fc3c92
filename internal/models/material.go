package models

// Material is the closed set of materials a piece can be fabricated from.
// The stored value is the label shown to the operator.
type Material string

const (
	MaterialIron      Material = "Ferro"
	MaterialAluminum  Material = "Alumínio"
	MaterialStainless Material = "Aço Inox"
	MaterialGlass     Material = "Vidro"
	MaterialWood      Material = "Madeira"
)

// Materials returns every material in display order.
func Materials() []Material {
	return []Material{
		MaterialIron,
		MaterialAluminum,
		MaterialStainless,
		MaterialGlass,
		MaterialWood,
	}
}

// Valid reports whether m is one of the known materials.
func (m Material) Valid() bool {
	for _, known := range Materials() {
		if m == known {
			return true
		}
	}
	return false
}
