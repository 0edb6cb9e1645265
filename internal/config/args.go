package config

import (
	"os"
	"strings"
)

// EnvPathFromArgs returns the file named by a --env=<path> argument, or
// ".env" when that file exists in the working directory.
func EnvPathFromArgs(args []string) string {
	for _, v := range args {
		if path, ok := strings.CutPrefix(v, "--env="); ok {
			if _, err := os.Stat(path); err != nil {
				return ""
			}
			return path
		}
	}
	if _, err := os.Stat(".env"); err == nil {
		return ".env"
	}
	return ""
}

// StripFlags drops --key=value arguments and returns the positional ones.
func StripFlags(args []string) []string {
	positional := make([]string, 0, len(args))
	for _, v := range args {
		if strings.HasPrefix(v, "--") && strings.Contains(v, "=") {
			continue
		}
		positional = append(positional, v)
	}
	return positional
}
