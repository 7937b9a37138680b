package authz

// AccionSet mapa de acción → permitido para un módulo.
type AccionSet map[Accion]bool

// MatrizPermisos es la matriz Módulo × Acción de un usuario.
//
// Invariante: una matriz persistida contiene siempre TODOS los módulos
// conocidos; una acción ausente dentro de un módulo se lee como false.
// Los lectores deben tratar claves ausentes de forma defensiva (Permite
// devuelve false), pero Normalizada garantiza la forma completa antes de
// persistir.
type MatrizPermisos map[Modulo]AccionSet

// Permite informa si la matriz concede la acción sobre el módulo.
// Claves ausentes (módulo o acción) se tratan como denegado.
func (m MatrizPermisos) Permite(mod Modulo, acc Accion) bool {
	if m == nil {
		return false
	}
	set, ok := m[mod]
	if !ok {
		return false
	}
	return set[acc]
}

// Clonar devuelve una copia profunda de la matriz.
func (m MatrizPermisos) Clonar() MatrizPermisos {
	out := make(MatrizPermisos, len(m))
	for mod, set := range m {
		cp := make(AccionSet, len(set))
		for acc, v := range set {
			cp[acc] = v
		}
		out[mod] = cp
	}
	return out
}

// Normalizada devuelve una copia con todos los módulos y todas las acciones
// presentes; lo no especificado queda en false. No modifica el receptor.
func (m MatrizPermisos) Normalizada() MatrizPermisos {
	out := make(MatrizPermisos, len(modulos))
	for _, mod := range modulos {
		set := make(AccionSet, len(acciones))
		for _, acc := range acciones {
			set[acc] = m != nil && m[mod][acc]
		}
		out[mod] = set
	}
	return out
}

// Fusionar aplica un parche por módulos: cada módulo presente en patch
// reemplaza COMPLETO su mapa de acciones; los módulos ausentes del parche se
// conservan del estado previo. Devuelve una matriz nueva y normalizada, sin
// tocar el receptor ni el parche.
func (m MatrizPermisos) Fusionar(patch MatrizPermisos) MatrizPermisos {
	out := m.Normalizada()
	for mod, set := range patch {
		nuevo := make(AccionSet, len(acciones))
		for _, acc := range acciones {
			nuevo[acc] = set[acc]
		}
		out[mod] = nuevo
	}
	return out
}

// matrizUniforme construye una matriz completa con todas las acciones en v.
func matrizUniforme(v bool) MatrizPermisos {
	out := make(MatrizPermisos, len(modulos))
	for _, mod := range modulos {
		set := make(AccionSet, len(acciones))
		for _, acc := range acciones {
			set[acc] = v
		}
		out[mod] = set
	}
	return out
}
