package testutil

import (
	"os"
	"strings"
)

const EnvPrefix = "SAMQFSUI_"

// IsolateConsoleEnv unsets every SAMQFSUI_* variable so tests see only the
// overrides they set themselves. It returns a restore func.
func IsolateConsoleEnv() func() {
	var restores []func()
	for _, kv := range os.Environ() {
		key, _, _ := strings.Cut(kv, "=")
		if strings.HasPrefix(key, EnvPrefix) {
			restores = append(restores, unsetEnv(key))
		}
	}
	return func() {
		for i := len(restores) - 1; i >= 0; i-- {
			restores[i]()
		}
	}
}

func unsetEnv(key string) func() {
	prev, had := os.LookupEnv(key)
	_ = os.Unsetenv(key)
	return func() {
		if had {
			_ = os.Setenv(key, prev)
		}
	}
}
