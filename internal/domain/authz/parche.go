package authz

import "github.com/tu-usuario/gestor-fabricas/internal/domain"

// ParcheCrudo es la forma en que llega un parche de permisos desde el cuerpo
// JSON de la petición: claves sin tipar y valores arbitrarios.
type ParcheCrudo map[string]map[string]any

// ValidarParche valida un parche parcial de permisos contra los conjuntos
// cerrados y lo convierte a una MatrizPermisos parcial (solo los módulos
// presentes en el parche).
//
// La primera violación aborta todo con domain.ErrPermisosInvalidos: módulo
// desconocido, acción desconocida o valor no booleano. Nunca hay aplicación
// parcial.
func ValidarParche(raw ParcheCrudo) (MatrizPermisos, error) {
	parche := make(MatrizPermisos, len(raw))
	for mod, acciones := range raw {
		modulo := Modulo(mod)
		if !modulo.Valido() {
			return nil, domain.ErrPermisosInvalidos
		}
		set := make(AccionSet, len(acciones))
		for acc, valor := range acciones {
			accion := Accion(acc)
			if !accion.Valida() {
				return nil, domain.ErrPermisosInvalidos
			}
			b, ok := valor.(bool)
			if !ok {
				return nil, domain.ErrPermisosInvalidos
			}
			set[accion] = b
		}
		parche[modulo] = set
	}
	return parche, nil
}
