package env

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/c2h5oh/datasize"
)

// GetIntEnv gets an integer value from the environment and parses it
func GetIntEnv(name string, varName string) (int, error) {
	value, err := GetEnv(name, varName)
	if err != nil {
		return 0, err
	}

	asInt, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return 0, newInvalidValueError(name, varName, value, err)
	}

	return asInt, nil
}

// GetDurationEnv gets a duration value from the environment and parses it
func GetDurationEnv(name string, varName string) (time.Duration, error) {
	value, err := GetEnv(name, varName)
	if err != nil {
		return 0, err
	}

	asDuration, err := time.ParseDuration(strings.TrimSpace(value))
	if err != nil {
		return 0, newInvalidValueError(name, varName, value, err)
	}

	return asDuration, nil
}

// GetBytesEnv gets a byte size value (such as "10MB") from the environment and parses it
func GetBytesEnv(name string, varName string) (datasize.ByteSize, error) {
	value, err := GetEnv(name, varName)
	if err != nil {
		return 0, err
	}

	asSize, err := datasize.ParseString(strings.TrimSpace(value))
	if err != nil {
		return 0, newInvalidValueError(name, varName, value, err)
	}

	return asSize, nil
}

// GetBoolEnv gets a boolean value from the environment.
// Accepts anything strconv.ParseBool does
func GetBoolEnv(name string, varName string) (bool, error) {
	value, err := GetEnv(name, varName)
	if err != nil {
		return false, err
	}

	asBool, err := strconv.ParseBool(strings.TrimSpace(value))
	if err != nil {
		return false, newInvalidValueError(name, varName, value, err)
	}

	return asBool, nil
}

// GetEnv gets a string value from the environment
func GetEnv(name string, varName string) (string, error) {
	value, exists := os.LookupEnv(varName)
	if !exists {
		return "", &MissingError{Name: name, VarName: varName}
	}

	return value, nil
}

// GetEnvOr gets a string value from the environment,
// falling back to the given value if it is unset or blank
func GetEnvOr(varName string, fallback string) string {
	value, exists := os.LookupEnv(varName)
	if !exists || strings.TrimSpace(value) == "" {
		return fallback
	}

	return strings.TrimSpace(value)
}

// IsMissing reports whether the error came from an unset variable,
// so that callers can apply their own defaults
func IsMissing(err error) bool {
	_, ok := err.(*MissingError)
	return ok
}

// MissingError is returned when a variable is not set at all
type MissingError struct {
	Name    string
	VarName string
}

func (e *MissingError) Error() string {
	return fmt.Sprintf("no environment variable found for the %s ('%s')", e.Name, e.VarName)
}

func newInvalidValueError(name string, varName string, value string, err error) error {
	return fmt.Errorf("environment variable value '%s' invalid for the %s ('%s'): %s",
		value, name, varName, err)
}
