package smtp

import (
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/pure-golang/omnimail/env"
	"github.com/pure-golang/omnimail/mail"
)

const opConfig = "load config"

// LoadConfig reads Config from the environment, after loading optional dotenv files.
func LoadConfig(envFiles ...string) (Config, error) {
	var cfg Config
	if err := env.InitConfig(&cfg, envFiles...); err != nil {
		return Config{}, mail.NewError(mail.KindConfiguration, opConfig, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// LoadConfigFile reads Config from a YAML file. See ParseConfig.
func LoadConfigFile(path string) (Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return Config{}, mail.NewError(mail.KindConfiguration, opConfig, errors.Wrap(err, "failed to open config file"))
	}
	defer f.Close()

	return ParseConfig(f)
}

// fileConfig mirrors Config with pointers so absent keys can be told apart from zero values.
type fileConfig struct {
	Email *struct {
		Sender   *string   `yaml:"sender"`
		Host     *string   `yaml:"host"`
		Port     *yamlInt  `yaml:"port"`
		StartTLS *yamlBool `yaml:"starttls"`
		Username string    `yaml:"username"`
		Password string    `yaml:"password"`
		Insecure yamlBool  `yaml:"insecure"`
		Timeout  string    `yaml:"timeout"`
	} `yaml:"email"`
}

// yamlInt accepts both 587 and "587".
type yamlInt int

func (i *yamlInt) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return errors.Errorf("line %d: expected an integer", value.Line)
	}
	n, err := strconv.Atoi(strings.TrimSpace(value.Value))
	if err != nil {
		return errors.Errorf("line %d: invalid integer %q", value.Line, value.Value)
	}
	*i = yamlInt(n)
	return nil
}

// yamlBool accepts true/false, quoted or not, plus yes/no and on/off.
type yamlBool bool

func (b *yamlBool) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return errors.Errorf("line %d: expected a boolean", value.Line)
	}
	switch v := strings.ToLower(strings.TrimSpace(value.Value)); v {
	case "yes", "on":
		*b = true
	case "no", "off":
		*b = false
	default:
		parsed, err := strconv.ParseBool(v)
		if err != nil {
			return errors.Errorf("line %d: invalid boolean %q", value.Line, value.Value)
		}
		*b = yamlBool(parsed)
	}
	return nil
}

// ParseConfig reads Config from YAML with the options under a top-level "email" mapping:
//
//	email:
//	  sender: noreply@example.com
//	  host: smtp.example.com
//	  port: 587
//	  starttls: true
func ParseConfig(r io.Reader) (Config, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return Config{}, mail.NewError(mail.KindConfiguration, opConfig, errors.Wrap(err, "failed to read config"))
	}

	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return Config{}, mail.NewError(mail.KindConfiguration, opConfig, errors.Wrap(err, "failed to parse config"))
	}

	e := fc.Email
	switch {
	case e == nil:
		return Config{}, missingKey("email")
	case e.Sender == nil:
		return Config{}, missingKey("email.sender")
	case e.Host == nil:
		return Config{}, missingKey("email.host")
	case e.Port == nil:
		return Config{}, missingKey("email.port")
	case e.StartTLS == nil:
		return Config{}, missingKey("email.starttls")
	}

	cfg := Config{
		Sender:   *e.Sender,
		Host:     *e.Host,
		Port:     int(*e.Port),
		StartTLS: bool(*e.StartTLS),
		Username: e.Username,
		Password: e.Password,
		Insecure: bool(e.Insecure),
		Timeout:  DefaultTimeout,
	}
	if e.Timeout != "" {
		cfg.Timeout, err = time.ParseDuration(e.Timeout)
		if err != nil {
			return Config{}, mail.NewError(mail.KindConfiguration, opConfig, errors.Wrap(err, "invalid email.timeout"))
		}
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks that required options are present and in range.
// A zero Timeout is allowed and means DefaultTimeout.
func (c Config) Validate() error {
	switch {
	case c.Sender == "":
		return missingKey("email.sender")
	case c.Host == "":
		return missingKey("email.host")
	case c.Port < 1 || c.Port > 65535:
		return mail.NewError(mail.KindConfiguration, opConfig, errors.Errorf("invalid email.port: %d", c.Port))
	case c.Timeout < 0:
		return mail.NewError(mail.KindConfiguration, opConfig, errors.Errorf("invalid email.timeout: %s", c.Timeout))
	}
	return nil
}

func missingKey(key string) error {
	return mail.NewError(mail.KindConfiguration, opConfig, errors.Errorf("missing required key %s", key))
}
