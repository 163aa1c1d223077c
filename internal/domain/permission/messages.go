package permission

// ActionEmptyState es el contexto de los mensajes para listados vacíos.
const ActionEmptyState = "emptyState"

// FallbackMessage se devuelve para combinaciones de nivel y acción sin mensaje propio.
const FallbackMessage = "No hay información disponible en este momento."

var messages = map[Tier]map[string]string{
	TierAdmin: {
		ActionEmptyState: "Aún no hay registros. Use el botón \"Nuevo\" para crear el primero.",
	},
	TierGestor: {
		ActionEmptyState: "No hay registros publicados. Solicite al administrador del módulo que los cargue.",
	},
	TierUser: {
		ActionEmptyState: "No hay registros disponibles para consulta. Intente ajustar los filtros de búsqueda.",
	},
}

// Message devuelve el texto para el nivel y la acción indicados, o
// FallbackMessage si no existe.
func Message(tier Tier, action string) string {
	if byAction, ok := messages[tier]; ok {
		if msg, ok := byAction[action]; ok {
			return msg
		}
	}
	return FallbackMessage
}

// EmptyStateMessage devuelve el mensaje de listado vacío para el nivel de s.
func EmptyStateMessage(s Set) string {
	return Message(s.Tier(), ActionEmptyState)
}
