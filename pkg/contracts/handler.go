package contracts

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
)

type Handler interface {
	RegisterRoutes(*httprouter.Router)
}

// Metrics instruments the application endpoints and serves the scrape page.
type Metrics interface {
	Handler() http.Handler
	Middleware(next http.Handler) http.Handler
}
