package entity

// CategoryFilter representa el alcance de categorías de una auditoría como
// unión etiquetada: todas las categorías o un conjunto explícito de IDs.
// El caso "todas" y el caso "conjunto vacío" son distintos a propósito.
type CategoryFilter struct {
	all bool
	ids []string
}

// AllCategories incluye todas las categorías (sin filtro).
func AllCategories() CategoryFilter {
	return CategoryFilter{all: true}
}

// ExplicitCategories limita el alcance a los IDs dados.
func ExplicitCategories(ids []string) CategoryFilter {
	cp := make([]string, len(ids))
	copy(cp, ids)
	return CategoryFilter{ids: cp}
}

// All indica si el filtro cubre todas las categorías.
func (f CategoryFilter) All() bool { return f.all }

// IDs devuelve el conjunto explícito (nil cuando All).
func (f CategoryFilter) IDs() []string {
	if f.all {
		return nil
	}
	cp := make([]string, len(f.ids))
	copy(cp, f.ids)
	return cp
}

// Matches indica si una categoría cae dentro del alcance.
func (f CategoryFilter) Matches(categoryID string) bool {
	if f.all {
		return true
	}
	for _, id := range f.ids {
		if id == categoryID {
			return true
		}
	}
	return false
}
