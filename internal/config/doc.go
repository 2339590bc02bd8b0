// Package config resolves the process configuration from the environment
// (AIP_ENDPOINT, USER_WALLET_ADDRESS, MEMBASE_ACCOUNT, MEMBASE_SECRET_KEY),
// layered over an optional .env file in the working directory. The result is
// an immutable Config value constructed once per invocation and handed to
// command handlers explicitly.
package config
