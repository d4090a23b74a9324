package application

import "expvar"

// Exposed on /debug/vars.
var (
	cartOps       = expvar.NewMap("cart_operations")
	registrations = expvar.NewInt("user_registrations")
)
