package client

import "github.com/spf13/viper"

// PropertySource resolves ${key} expressions in header values.
type PropertySource interface {
	Lookup(key string) (string, bool)
}

// MapProperties is a PropertySource backed by a plain map.
type MapProperties map[string]string

func (m MapProperties) Lookup(key string) (string, bool) {
	value, ok := m[key]
	return value, ok
}

// ConfigProperties resolves properties from a viper instance using dotted
// keys, so ${header.value} reads the header.value configuration entry.
type ConfigProperties struct {
	v *viper.Viper
}

func NewConfigProperties(v *viper.Viper) ConfigProperties {
	return ConfigProperties{v: v}
}

func (c ConfigProperties) Lookup(key string) (string, bool) {
	if c.v == nil || !c.v.IsSet(key) {
		return "", false
	}
	return c.v.GetString(key), true
}
