package config

import (
	"os"
	"strconv"
	"strings"
)

var (
	TLS_DOMAINS        = ""              // e.g. "example.com,example2.com"
	MYSQL_DSN          = ""              // MySQL will be used if this is set
	SQLITE_FILE        = "cardserver.db" // SQLite will be used if MYSQL_DSN is not configured
	BIND_ADDRESS       = "0.0.0.0:8080"
	TMP_DIR            = "/tmp" // Used for local copies of remote objects (in case of S3 bucket)
	DEFAULT_BUCKET_DIR = "data" // Used for creating the initial bucket on first run
	FONT_FILE          = ""     // Preferred TrueType font for card text, tried before the system fonts
	PREVIEW_MAX_WIDTH  = 800
	PREVIEW_MAX_HEIGHT = 800
	DEBUG_MODE         = true
)

func init() {
	readEnvString("TLS_DOMAINS", &TLS_DOMAINS)
	readEnvString("MYSQL_DSN", &MYSQL_DSN)
	readEnvString("SQLITE_FILE", &SQLITE_FILE)
	readEnvString("BIND_ADDRESS", &BIND_ADDRESS)
	readEnvString("TMP_DIR", &TMP_DIR)
	readEnvString("DEFAULT_BUCKET_DIR", &DEFAULT_BUCKET_DIR)
	readEnvString("FONT_FILE", &FONT_FILE)
	readEnvInt("PREVIEW_MAX_WIDTH", &PREVIEW_MAX_WIDTH)
	readEnvInt("PREVIEW_MAX_HEIGHT", &PREVIEW_MAX_HEIGHT)
	readEnvBool("DEBUG_MODE", &DEBUG_MODE)
}

func readEnvString(name string, value *string) {
	v := os.Getenv(name)
	if v == "" {
		return
	}
	*value = v
}

func readEnvBool(name string, value *bool) {
	v := strings.ToLower(os.Getenv(name))
	if v == "true" || v == "1" || v == "yes" || v == "on" {
		*value = true
	} else if v == "false" || v == "0" || v == "no" || v == "off" {
		*value = false
	}
}

func readEnvInt(name string, value *int) {
	v := os.Getenv(name)
	if v == "" {
		return
	}
	f, err := strconv.Atoi(v)
	if err != nil {
		return
	}
	*value = f
}
