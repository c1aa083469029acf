// Package config loads signup.json.
//
// Values come, lowest priority first, from built-in defaults, the config
// file, and SIGNUP_* environment variables. Environment keys are the
// upper-cased config path with dots replaced by underscores, for example
// SIGNUP_SERVER_PORT or SIGNUP_RULES_MAXEMAILLENGTH. Any format viper reads
// works; the file extension selects the parser.
//
//	{
//	  "locale": "ru",
//	  "focusDelay": "100ms",
//	  "rules": {"maxEmailLength": 20, "minPasswordLength": 8, "blurPasswordMinLength": 3},
//	  "server": {"host": "localhost", "port": 8080},
//	  "log": {"level": "info", "format": "text"}
//	}
//
// Watch reloads the file when it changes on disk.
package config
