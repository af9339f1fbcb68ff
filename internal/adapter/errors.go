package adapter

import "errors"

var (
	ErrTokenVerification = errors.New("firebase token verification failed")
	ErrUnknownKeyID      = errors.New("token signed with unknown key id")
	ErrProviderRequest   = errors.New("rate provider request failed")
	ErrPurchaseRejected  = errors.New("store rejected the purchase")
	ErrPublishFailed     = errors.New("event publish failed")
)
