// Package config es una configuracion plana clave -> valor, cargada desde JSON.
package config

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"strconv"
	"sync"
)

type Conf struct {
	mu     sync.RWMutex
	values map[string]string
}

func New() *Conf {
	return &Conf{values: make(map[string]string)}
}

// Load lee un objeto JSON plano: {"rss.data.replica": 2, "rss.client.type": "HTTP"}.
func Load(path string) (*Conf, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error leyendo configuracion %s: %w", path, err)
	}
	return Parse(data)
}

// Parse acepta valores string, numero o booleano.
func Parse(data []byte) (*Conf, error) {
	raw := make(map[string]any)
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("configuracion JSON invalida: %w", err)
	}
	c := New()
	for k, v := range raw {
		switch val := v.(type) {
		case string:
			c.values[k] = val
		case float64:
			c.values[k] = strconv.FormatFloat(val, 'f', -1, 64)
		case bool:
			c.values[k] = strconv.FormatBool(val)
		default:
			return nil, fmt.Errorf("valor de %s no soportado: %v", k, v)
		}
	}
	return c, nil
}

func (c *Conf) Set(key, value string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.values[key] = value
}

func (c *Conf) get(key string) (string, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	v, ok := c.values[key]
	return v, ok
}

func (c *Conf) GetString(key, def string) string {
	if v, ok := c.get(key); ok {
		return v
	}
	return def
}

func (c *Conf) GetInt(key string, def int) int {
	v, ok := c.get(key)
	if !ok {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Printf("[Config] %s=%q no es entero, usando %d", key, v, def)
		return def
	}
	return n
}

func (c *Conf) GetInt64(key string, def int64) int64 {
	v, ok := c.get(key)
	if !ok {
		return def
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		log.Printf("[Config] %s=%q no es entero, usando %d", key, v, def)
		return def
	}
	return n
}

func (c *Conf) GetFloat(key string, def float64) float64 {
	v, ok := c.get(key)
	if !ok {
		return def
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		log.Printf("[Config] %s=%q no es decimal, usando %v", key, v, def)
		return def
	}
	return f
}

func (c *Conf) GetBool(key string, def bool) bool {
	v, ok := c.get(key)
	if !ok {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		log.Printf("[Config] %s=%q no es booleano, usando %t", key, v, def)
		return def
	}
	return b
}
