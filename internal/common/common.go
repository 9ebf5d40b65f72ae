package common

import "time"

// Keys stored in the wallet session cookie.
const (
	SessionIDKey      = "wallet_session_id"
	SessionAddressKey = "wallet_address"
)

const (
	ConnectorInjected = "injected"
)

// FetchStateTTL bounds how long a fetch state outlives its last update.
const FetchStateTTL = 24 * time.Hour
