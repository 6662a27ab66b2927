package wormenv

import (
	"os"
	"strconv"

	"golang.org/x/exp/constraints"
)

// getEnv returns the value of the environment variable with the given name
// and a boolean indicating whether the environment variable exists.
func getEnv(name string) (string, bool) {
	val, exists := os.LookupEnv(name)
	return val, exists
}

// getEnvInt returns the value of the environment variable with the given name
// or defaultValue if the environment variable is not set or is not a valid
// integer value.
func getEnvInt(name string, defaultValue int) int {
	val, ok := getEnv(name)
	if !ok {
		return defaultValue
	}

	i, err := strconv.Atoi(val)
	if err != nil {
		return defaultValue
	}

	return i
}

// getEnvUint returns the value of the environment variable with the given name
// or defaultValue if it is unset, not a number, or does not fit in T.
func getEnvUint[T constraints.Unsigned](name string, defaultValue T) T {
	val, ok := getEnv(name)
	if !ok {
		return defaultValue
	}

	i, err := strconv.ParseUint(val, 10, 64)
	if err != nil || uint64(T(i)) != i {
		return defaultValue
	}

	return T(i)
}

// getEnvBool returns the value of the environment variable with the given name
// or defaultValue if the environment variable is not set or is not a valid
// boolean value.
func getEnvBool(name string, defaultValue bool) bool {
	val, ok := getEnv(name)
	if !ok {
		return defaultValue
	}

	b, err := strconv.ParseBool(val)
	if err != nil {
		return defaultValue
	}

	return b
}

// GetEnvString returns the value of the environment variable with the given name
// or defaultValue if the environment variable is not set.
func GetEnvString(name string, defaultValue string) string {
	val, ok := getEnv(name)
	if !ok {
		return defaultValue
	}

	return val
}
