package initializers

import (
	"github.com/Kariqs/aroena-api/config"
	"github.com/Kariqs/aroena-api/utils"
)

var (
	Tokens      *utils.TokenManager
	Revocations utils.RevocationStore
)

// SetupAuth builds the token manager and picks the revocation store. Call
// after ConnectToRedis so a configured Redis is used.
func SetupAuth(jwtCfg config.JWT, redisCfg config.Redis) {
	Tokens = utils.NewTokenManager(jwtCfg.Secret, jwtCfg.TTL)
	if Redis != nil {
		Revocations = utils.NewRedisRevocationStore(Redis, redisCfg.Prefix)
		return
	}
	Revocations = utils.NewMemoryRevocationStore()
}
