// Package middlewares contiene los middlewares HTTP del gateway. Cada
// constructor WithX devuelve un Middleware listo para colgar en el router;
// la composición la hace chi (Use / With), acá sólo se definen las piezas.
package middlewares

import "net/http"

// Middleware decora un http.Handler.
type Middleware func(http.Handler) http.Handler
