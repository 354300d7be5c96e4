package config

import (
	"strings"

	"github.com/spf13/viper"
)

const (
	appNameKey = "app_name"
	debugKey   = "debug"
	outputKey  = "output"

	defaultAppName = "eero"
	defaultOutput  = "brief"
)

type EnvVars struct {
	v *viper.Viper
}

var _ EnvConfig = EnvVars{}

func (e EnvVars) GetAppName() string {
	return e.v.GetString(appNameKey)
}

func (e EnvVars) IsDebug() bool {
	return e.v.GetBool(debugKey)
}

// GetOutput returns the output format, lower cased: brief, extensive, json or yaml.
func (e EnvVars) GetOutput() string {
	return strings.ToLower(e.v.GetString(outputKey))
}
