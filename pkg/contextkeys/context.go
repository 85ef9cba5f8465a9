package contextkeys

// Используем кастомный тип, чтобы избежать коллизий
type contextKey string

// DBContextKey - это ключ, по которому мы храним *gorm.DB в context
const DBContextKey = contextKey("db")

// SessionContextKey - ключ, по которому middleware кладет сессию запроса
const SessionContextKey = contextKey("session")
