// conf/defaults.go default values for settings
package conf

import (
	"github.com/spf13/viper"
)

// Sets default values for the configuration.
func setDefaultConfig() {
	viper.SetDefault("debug", false)

	viper.SetDefault("main.name", "arkiv")
	viper.SetDefault("main.log.enabled", true)
	viper.SetDefault("main.log.path", "arkiv.log")
	viper.SetDefault("main.log.rotation", RotationDaily)
	viper.SetDefault("main.log.maxsize", 1048576)

	viper.SetDefault("webserver.debug", false)
	viper.SetDefault("webserver.enabled", true)
	viper.SetDefault("webserver.port", "8090")
	viper.SetDefault("webserver.log.enabled", true)
	viper.SetDefault("webserver.log.path", "webui.log")
	viper.SetDefault("webserver.log.rotation", RotationDaily)
	viper.SetDefault("webserver.log.maxsize", 1048576)

	viper.SetDefault("output.sqlite.enabled", true)
	viper.SetDefault("output.sqlite.path", "arkiv.db")

	viper.SetDefault("output.mysql.enabled", false)
	viper.SetDefault("output.mysql.username", "arkiv")
	viper.SetDefault("output.mysql.password", "arkiv")
	viper.SetDefault("output.mysql.database", "arkiv")
	viper.SetDefault("output.mysql.host", "localhost")
	viper.SetDefault("output.mysql.port", "3306")

	viper.SetDefault("retention.allowpurge", false)
}

// defaultConfigYaml is written out when no config file exists yet.
const defaultConfigYaml = `# arkiv configuration

debug: false

main:
  name: arkiv
  log:
    enabled: true
    path: arkiv.log
    rotation: daily
    maxsize: 1048576

webserver:
  enabled: true
  port: "8090"
  log:
    enabled: true
    path: webui.log
    rotation: daily
    maxsize: 1048576

output:
  sqlite:
    enabled: true
    path: arkiv.db
  mysql:
    enabled: false
    username: arkiv
    password: arkiv
    database: arkiv
    host: localhost
    port: "3306"

# Records stored in arkiv cannot be deleted through the API or the store.
# The purge command is the only removal path and stays disabled unless
# allowpurge is set to true.
retention:
  allowpurge: false
`
