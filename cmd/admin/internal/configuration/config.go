package configuration

import "github.com/adampresley/configinator"

type Config struct {
	ActivityLimit         int    `flag:"activitylimit" env:"ACTIVITY_LIMIT" default:"100" description:"Number of activity entries shown on the activity page"`
	ActivityRetentionDays int    `flag:"ard" env:"ACTIVITY_RETENTION_DAYS" default:"30" description:"Number of days activity entries are kept before being pruned"`
	APIBaseURL            string `flag:"apibaseurl" env:"API_BASE_URL" default:"http://127.0.0.1:5000/api" description:"Base URL of the workshop REST API"`
	CookieSecret          string `flag:"cookiesecret" env:"COOKIE_SECRET" default:"password" description:"Secret for encoding cookies"`
	DSN                   string `flag:"dsn" env:"DSN" default:"file:./data/workshopadmin.db" description:"Data source name for the activity log"`
	Host                  string `flag:"host" env:"HOST" default:"localhost:8080" description:"The address and port to bind the HTTP server to"`
	LogLevel              string `flag:"loglevel" env:"LOG_LEVEL" default:"debug" description:"The log level to use. Valid values are 'debug', 'info', 'warn', and 'error'"`
	MaxFetchWorkers       int    `flag:"mfw" env:"MAX_FETCH_WORKERS" default:"4" description:"Maximum number of concurrent backend fetches for the dashboard"`
	RequestTimeout        int    `flag:"requesttimeout" env:"REQUEST_TIMEOUT" default:"10" description:"Timeout in seconds for each request to the REST API"`
}

func LoadConfig() Config {
	config := Config{}
	configinator.Behold(&config)
	return config
}

