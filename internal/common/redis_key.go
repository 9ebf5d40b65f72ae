package common

import "fmt"

func RedisKeyFetchState(sessionID string) string {
	return fmt.Sprintf("fetchstate:%s", sessionID)
}

func RedisKeyFetchGeneration() string {
	return "fetchstate:generation"
}
