package middleware

// contextKey is the private type for values this package stores in request
// contexts. Using a custom type prevents collisions.
type contextKey string

const loggerKey = contextKey("logger")
