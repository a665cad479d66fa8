package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Driver identifies the SQL driver used to reach the data store.
type Driver string

const (
	DriverSQLServer Driver = "sqlserver"
	DriverMySQL     Driver = "mysql"
)

// ValidDrivers enumerates all supported drivers.
var ValidDrivers = []Driver{DriverSQLServer, DriverMySQL}

const (
	defaultSMTPPort    = 25
	defaultReportTitle = "Database Integrity Master Log"
)

// Config is the complete configuration of one run, loaded from integrity.yaml.
type Config struct {
	Database DatabaseConfig `yaml:"database" json:"database"`
	SMTP     SMTPConfig     `yaml:"smtp"     json:"smtp"`
	Report   ReportConfig   `yaml:"report"   json:"report"`
	Checks   Registry       `yaml:"checks"   json:"checks"`
}

// DatabaseConfig describes how to reach the data store. DSN, when set,
// overrides the discrete fields.
type DatabaseConfig struct {
	Driver         Driver        `yaml:"driver"          json:"driver"`
	DSN            string        `yaml:"dsn"             json:"-"`
	Host           string        `yaml:"host"            json:"host,omitempty"`
	Port           int           `yaml:"port"            json:"port,omitempty"`
	Name           string        `yaml:"name"            json:"name,omitempty"`
	User           string        `yaml:"user"            json:"user,omitempty"`
	Password       string        `yaml:"password"        json:"-"`
	ConnectTimeout time.Duration `yaml:"connect_timeout" json:"connect_timeout,omitempty"`
}

// SMTPConfig describes the mail transport.
type SMTPConfig struct {
	Host     string   `yaml:"host"     json:"host"`
	Port     int      `yaml:"port"     json:"port"`
	UseTLS   bool     `yaml:"use_tls"  json:"use_tls"`
	Username string   `yaml:"username" json:"username,omitempty"`
	Password string   `yaml:"password" json:"-"`
	From     string   `yaml:"from"     json:"from"`
	To       []string `yaml:"to"       json:"to"`
}

// Addr returns host:port.
func (c SMTPConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// ReportConfig tunes the report text.
type ReportConfig struct {
	Title       string           `yaml:"title"        json:"title"`
	SourceLabel string           `yaml:"source_label" json:"source_label,omitempty"`
	Subjects    SubjectTemplates `yaml:"subjects"     json:"subjects"`
}

// DefaultConfig returns a config with every default applied and no checks.
func DefaultConfig() Config {
	var cfg Config
	cfg.ApplyDefaults()
	return cfg
}

// ApplyDefaults fills zero values with their defaults.
func (c *Config) ApplyDefaults() {
	if c.Database.Driver == "" {
		c.Database.Driver = DriverSQLServer
	}
	c.Database.Driver = Driver(strings.ToLower(string(c.Database.Driver)))
	if c.SMTP.Port == 0 {
		c.SMTP.Port = defaultSMTPPort
	}
	if c.SMTP.From == "" {
		c.SMTP.From = c.SMTP.Username
	}
	if c.Report.Title == "" {
		c.Report.Title = defaultReportTitle
	}
	if c.Report.SourceLabel == "" {
		c.Report.SourceLabel = c.Database.Driver.Label()
	}
	c.Report.Subjects = c.Report.Subjects.withDefaults()
}

// Label is the human name of the driver's database product.
func (d Driver) Label() string {
	switch d {
	case DriverSQLServer:
		return "MSSQL"
	case DriverMySQL:
		return "MySQL"
	default:
		return strings.ToUpper(string(d))
	}
}

// Validate checks the database section and the check registry.
func (c Config) Validate() error {
	if !isValidDriver(c.Database.Driver) {
		return fmt.Errorf("unknown database.driver %q (valid: %s)", c.Database.Driver, joinDrivers())
	}
	if c.Database.DSN == "" && c.Database.Host == "" {
		return errors.New("database.host or database.dsn is required")
	}
	if c.Database.ConnectTimeout < 0 {
		return errors.New("database.connect_timeout must not be negative")
	}
	if err := c.Checks.Validate(); err != nil {
		return err
	}
	return nil
}

// ValidateDelivery checks the smtp section. It is only required when the
// report is actually mailed.
func (c Config) ValidateDelivery() error {
	if c.SMTP.Host == "" {
		return errors.New("smtp.host is required")
	}
	if c.SMTP.Port <= 0 || c.SMTP.Port > 65535 {
		return fmt.Errorf("smtp.port %d is out of range", c.SMTP.Port)
	}
	if c.SMTP.From == "" {
		return errors.New("smtp.from (or smtp.username) is required")
	}
	if len(c.SMTP.To) == 0 {
		return errors.New("smtp.to requires at least one recipient")
	}
	for _, to := range c.SMTP.To {
		if !strings.Contains(to, "@") {
			return fmt.Errorf("smtp.to: %q is not an email address", to)
		}
	}
	return nil
}

func isValidDriver(d Driver) bool {
	for _, v := range ValidDrivers {
		if d == v {
			return true
		}
	}
	return false
}

func joinDrivers() string {
	names := make([]string, len(ValidDrivers))
	for i, d := range ValidDrivers {
		names[i] = string(d)
	}
	return strings.Join(names, ", ")
}
