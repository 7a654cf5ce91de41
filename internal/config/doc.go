// Package config loads the linkstash YAML configuration.
//
// Environment variables in ${VAR_NAME} form are expanded before parsing, so
// secrets like the bot token can stay out of the file:
//
//	telegram:
//	  token: "${BOT_TOKEN}"
//	database:
//	  path: "/var/lib/linkstash/linkstash.db"
//	fetch:
//	  page_timeout: 10s
//	  resource_timeout: 5s
//	categories:
//	  defaults:
//	    - name: News
//	      color: blue
//	logging:
//	  level: info
//	  format: text
//
// When categories.defaults is omitted, a compiled-in set is used. Duration
// fields accept Go duration strings ("10s", "1m30s").
package config
