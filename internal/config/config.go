package config

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Config holds all configuration for the point-of-sale system
type Config struct {
	Restaurant RestaurantConfig `yaml:"restaurant"`
	Files      FilesConfig      `yaml:"files"`
	Database   DatabaseConfig   `yaml:"database"`
	RabbitMQ   RabbitMQConfig   `yaml:"rabbitmq"`
}

// RestaurantConfig holds the restaurant identity and floor layout
type RestaurantConfig struct {
	Name string `yaml:"name"`
	// TableLayout[i] is the number of tables with capacity i+1.
	TableLayout   []int `yaml:"table_layout"`
	ReorderAmount int   `yaml:"reorder_amount"`
}

// FilesConfig holds the data file paths used by the engine
type FilesConfig struct {
	Menu        string `yaml:"menu"`
	Ingredients string `yaml:"ingredients"`
	Requests    string `yaml:"requests"`
	Payments    string `yaml:"payments"`
}

// DatabaseConfig holds the optional archive database connection
type DatabaseConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Database string `yaml:"database"`
}

// RabbitMQConfig holds the optional event relay broker connection
type RabbitMQConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
}

// Load reads configuration from a YAML file
func Load(filename string) (*Config, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open config file: %w", err)
	}
	defer file.Close()

	config := &Config{}
	scanner := bufio.NewScanner(file)

	var currentSection string

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())

		// Skip comments and empty lines
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		// Check for section headers
		if strings.HasSuffix(line, ":") && !strings.Contains(line, " ") {
			currentSection = strings.TrimSuffix(line, ":")
			continue
		}

		// Parse key-value pairs
		if strings.Contains(line, ":") {
			parts := strings.SplitN(line, ":", 2)
			if len(parts) != 2 {
				continue
			}

			key := strings.TrimSpace(parts[0])
			value := strings.Trim(strings.TrimSpace(parts[1]), `"'`)

			if err := config.setValue(currentSection, key, value); err != nil {
				return nil, fmt.Errorf("failed to set config value %s.%s: %w", currentSection, key, err)
			}
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if config.Restaurant.ReorderAmount == 0 {
		config.Restaurant.ReorderAmount = 20
	}

	return config, nil
}

// setValue sets a configuration value based on section and key
func (c *Config) setValue(section, key, value string) error {
	switch section {
	case "restaurant":
		return c.setRestaurantValue(key, value)
	case "files":
		return c.setFilesValue(key, value)
	case "database":
		return c.setDatabaseValue(key, value)
	case "rabbitmq":
		return c.setRabbitMQValue(key, value)
	default:
		return fmt.Errorf("unknown section: %s", section)
	}
}

func (c *Config) setRestaurantValue(key, value string) error {
	switch key {
	case "name":
		c.Restaurant.Name = value
	case "table_layout":
		layout, err := parseIntList(value)
		if err != nil {
			return fmt.Errorf("invalid table_layout: %w", err)
		}
		c.Restaurant.TableLayout = layout
	case "reorder_amount":
		amount, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid reorder_amount: %w", err)
		}
		c.Restaurant.ReorderAmount = amount
	default:
		return fmt.Errorf("unknown restaurant key: %s", key)
	}
	return nil
}

func (c *Config) setFilesValue(key, value string) error {
	switch key {
	case "menu":
		c.Files.Menu = value
	case "ingredients":
		c.Files.Ingredients = value
	case "requests":
		c.Files.Requests = value
	case "payments":
		c.Files.Payments = value
	default:
		return fmt.Errorf("unknown files key: %s", key)
	}
	return nil
}

func (c *Config) setDatabaseValue(key, value string) error {
	switch key {
	case "host":
		c.Database.Host = value
	case "port":
		port, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid port value: %w", err)
		}
		c.Database.Port = port
	case "user":
		c.Database.User = value
	case "password":
		c.Database.Password = value
	case "database":
		c.Database.Database = value
	default:
		return fmt.Errorf("unknown database key: %s", key)
	}
	return nil
}

func (c *Config) setRabbitMQValue(key, value string) error {
	switch key {
	case "host":
		c.RabbitMQ.Host = value
	case "port":
		port, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid port value: %w", err)
		}
		c.RabbitMQ.Port = port
	case "user":
		c.RabbitMQ.User = value
	case "password":
		c.RabbitMQ.Password = value
	default:
		return fmt.Errorf("unknown rabbitmq key: %s", key)
	}
	return nil
}

// parseIntList parses a flow-style list like "[2, 4, 4, 8]"
func parseIntList(value string) ([]int, error) {
	value = strings.TrimSpace(value)
	value = strings.TrimPrefix(value, "[")
	value = strings.TrimSuffix(value, "]")
	if strings.TrimSpace(value) == "" {
		return nil, nil
	}

	var out []int
	for _, part := range strings.Split(value, ",") {
		n, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	return out, nil
}

// ArchiveEnabled reports whether the optional Postgres archive is configured
func (c *Config) ArchiveEnabled() bool {
	return c.Database.Host != ""
}

// RelayEnabled reports whether the optional RabbitMQ event relay is configured
func (c *Config) RelayEnabled() bool {
	return c.RabbitMQ.Host != ""
}

// DatabaseURL returns a PostgreSQL connection URL
func (c *Config) DatabaseURL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=disable",
		c.Database.User, c.Database.Password, c.Database.Host, c.Database.Port, c.Database.Database)
}

// RabbitMQURL returns an AMQP connection URL
func (c *Config) RabbitMQURL() string {
	return fmt.Sprintf("amqp://%s:%s@%s:%d/",
		c.RabbitMQ.User, c.RabbitMQ.Password, c.RabbitMQ.Host, c.RabbitMQ.Port)
}
