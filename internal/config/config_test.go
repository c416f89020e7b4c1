package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInt(t *testing.T) {
	cfg := map[string]interface{}{
		"int":     7143,
		"int64":   int64(8081),
		"float":   float64(42),
		"string":  "480",
		"garbage": "not a number",
	}
	assert.Equal(t, 7143, Int(cfg, "int", 1))
	assert.Equal(t, 8081, Int(cfg, "int64", 1))
	assert.Equal(t, 42, Int(cfg, "float", 1))
	assert.Equal(t, 480, Int(cfg, "string", 1))
	assert.Equal(t, 1, Int(cfg, "garbage", 1))
	assert.Equal(t, 1, Int(cfg, "missing", 1))
	assert.Equal(t, 1, Int(nil, "anything", 1))
}

func TestStrings(t *testing.T) {
	cfg := map[string]interface{}{
		"yaml":  []interface{}{"http://a:1", "http://b:2", 3},
		"plain": []string{"x"},
	}
	assert.Equal(t, []string{"http://a:1", "http://b:2"}, Strings(cfg, "yaml"))
	assert.Equal(t, []string{"x"}, Strings(cfg, "plain"))
	assert.Nil(t, Strings(cfg, "missing"))
	assert.Nil(t, Strings(nil, "anything"))
}
