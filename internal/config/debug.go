package config

import "os"

func IsDebug() bool {
	return os.Getenv("PULSE_DEBUG") == "1"
}
