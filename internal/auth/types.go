package auth

const (
	// cookie holding the anonymous client id
	SessionName = "content_studio"

	// header a client may use instead of the cookie
	HeaderClientID = "X-Client-ID"

	// gin context key for the resolved client id
	ContextClientID = "client_id"

	sessionClientKey = "client_id"

	// one year
	sessionMaxAge = 365 * 24 * 60 * 60
)

type Options struct {
	Secret string
	Secure bool
}
