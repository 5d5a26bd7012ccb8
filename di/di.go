package di

import (
	"mesa/internal/tasks"
	"mesa/transport/http"
)

// App bundles the long-lived processes main starts.
type App struct {
	HTTP  *http.HTTP
	Tasks *tasks.Runner
}
