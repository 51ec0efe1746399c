package httpx

import "time"

// Cookie names issued by the gateway. The credential cookie relays the
// upstream session token and is the only one the gateway never reads
// beyond passing it along.
const (
	cookieSession    = "sz_sid"
	cookieCart       = "sz_cart"
	cookieCredential = "sz_cred"
)

// cartCookieMaxAge keeps the cart cookie alive well past the session so
// a returning shopper finds their cart again.
const cartCookieMaxAge = int(30 * 24 * time.Hour / time.Second)
