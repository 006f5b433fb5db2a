package internal

const (
	COOKIE_ACCESS_TOKEN_NAME = "staffdesk_access_token"
)
