// Package profile wraps viper as the process's single YAML configuration
// source.
package profile

import (
	"github.com/spf13/viper"
)

var vp = viper.New()

// Load reads path as YAML into vp and unmarshals the whole document into
// out.
func Load(path string, out interface{}) error {
	vp.SetConfigFile(path)
	vp.SetConfigType("yaml")
	if err := vp.ReadInConfig(); err != nil {
		return err
	}
	return vp.Unmarshal(out)
}

// Get unmarshals the sub-tree at key into cfg. Used by components that only
// need their own slice of the document.
func Get(key string, cfg interface{}) error {
	return vp.UnmarshalKey(key, cfg)
}
