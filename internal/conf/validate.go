// validate.go: validation of loaded settings
package conf

import (
	"errors"
	"fmt"
	"strconv"
)

// ValidateSettings checks the loaded settings for basic consistency.
func ValidateSettings(settings *Settings) error {
	var validationErrors []string

	if settings.Output.SQLite.Enabled && settings.Output.MySQL.Enabled {
		validationErrors = append(validationErrors, "only one database output can be enabled at a time")
	}

	if !settings.Output.SQLite.Enabled && !settings.Output.MySQL.Enabled {
		validationErrors = append(validationErrors, "one database output must be enabled")
	}

	if settings.Output.SQLite.Enabled && settings.Output.SQLite.Path == "" {
		validationErrors = append(validationErrors, "SQLite database path must not be empty")
	}

	if settings.Output.MySQL.Enabled {
		if settings.Output.MySQL.Database == "" {
			validationErrors = append(validationErrors, "MySQL database name must not be empty")
		}
		if settings.Output.MySQL.Host == "" {
			validationErrors = append(validationErrors, "MySQL host must not be empty")
		}
		if err := validatePort(settings.Output.MySQL.Port); err != nil {
			validationErrors = append(validationErrors, fmt.Sprintf("MySQL port: %v", err))
		}
	}

	if settings.WebServer.Enabled {
		if err := validatePort(settings.WebServer.Port); err != nil {
			validationErrors = append(validationErrors, fmt.Sprintf("web server port: %v", err))
		}
	}

	if len(validationErrors) > 0 {
		return fmt.Errorf("settings validation failed: %v", validationErrors)
	}

	return nil
}

// validatePort checks that the given string is a valid TCP port number.
func validatePort(port string) error {
	if port == "" {
		return errors.New("port must not be empty")
	}
	p, err := strconv.Atoi(port)
	if err != nil {
		return fmt.Errorf("invalid port number: %s", port)
	}
	if p < 1 || p > 65535 {
		return fmt.Errorf("port out of range: %d", p)
	}
	return nil
}
