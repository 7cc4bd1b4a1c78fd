package cmd

import (
	"github.com/spf13/viper"

	"github.com/thinkmcp/logger"
)

// logConfig layers flag and config-file settings over the environment.
func logConfig() (*logger.Conf, error) {
	conf, err := logger.LogConfig()
	if err != nil {
		return nil, err
	}
	if viper.IsSet(keyDebug) {
		conf.Debug = viper.GetBool(keyDebug)
	}
	if path := viper.GetString(keyLogFile); viper.IsSet(keyLogFile) && path != "" {
		conf.LogFile = path
	}
	return conf, nil
}
