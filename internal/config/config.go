// Package config resolves the run configuration of the commands from
// defaults, an optional YAML file and command-line flags.
package config

import (
	"flag"
	"io"
	"math"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Config holds the settings of one training run.
type Config struct {
	Seed         uint64  `yaml:"seed"`
	Epochs       int     `yaml:"epochs"`
	LearningRate float64 `yaml:"learning_rate"`
	Hidden       []int   `yaml:"hidden"`
	// LogInterval is the number of steps between loss reports. 0 disables them.
	LogInterval int    `yaml:"log_interval"`
	LossCSV     string `yaml:"loss_csv"`
	// Data names a CSV file with training examples; empty selects the
	// built-in set.
	Data        string `yaml:"data"`
	LabelColumn int    `yaml:"label_column"`

	Server *Server `yaml:"server,omitempty"`
}

// Server configures the decision endpoint.
type Server struct {
	Enabled       bool          `yaml:"enabled"`
	Addr          string        `yaml:"addr"`
	NotifyURL     string        `yaml:"notify_url"`
	NotifyTimeout time.Duration `yaml:"notify_timeout"`
}

// XORDefaults returns the settings of the XOR demonstration.
func XORDefaults() Config {
	return Config{
		Seed:         1,
		Epochs:       20000,
		LearningRate: 0.5,
		Hidden:       []int{4},
		LogInterval:  2000,
	}
}

// TraderDefaults returns the settings of the trading classifier.
func TraderDefaults() Config {
	return Config{
		Seed:         1,
		Epochs:       5000,
		LearningRate: 0.3,
		Hidden:       []int{5, 5},
		LogInterval:  500,
		LabelColumn:  -1,
		Server: &Server{
			Addr:          "0.0.0.0:8000",
			NotifyTimeout: 5 * time.Second,
		},
	}
}

func (c Config) clone() Config {
	c.Hidden = append([]int(nil), c.Hidden...)
	if c.Server != nil {
		s := *c.Server
		c.Server = &s
	}
	return c
}

// Load reads a YAML file over base. Keys absent from the file keep base's
// values; unknown keys are an error.
func Load(path string, base Config) (Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return Config{}, errors.Wrap(err, "config")
	}
	defer f.Close()

	cfg := base.clone()
	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && err != io.EOF {
		return Config{}, errors.Wrapf(err, "config: %s", path)
	}
	return cfg, nil
}

// Validate checks the run settings.
func (c Config) Validate() error {
	if c.Epochs < 0 {
		return errors.Errorf("config: epochs must not be negative, got %d", c.Epochs)
	}
	if !(c.LearningRate > 0) || math.IsInf(c.LearningRate, 0) {
		return errors.Errorf("config: learning rate must be positive and finite, got %v", c.LearningRate)
	}
	for i, h := range c.Hidden {
		if h <= 0 {
			return errors.Errorf("config: hidden layer %d must have a positive size, got %d", i, h)
		}
	}
	if c.LogInterval < 0 {
		return errors.Errorf("config: log interval must not be negative, got %d", c.LogInterval)
	}
	if c.Server == nil {
		return nil
	}
	if c.Server.Enabled && c.Server.Addr == "" {
		return errors.New("config: server address is required")
	}
	if c.Server.NotifyTimeout < 0 {
		return errors.Errorf("config: notify timeout must not be negative, got %v", c.Server.NotifyTimeout)
	}
	if c.Server.NotifyURL != "" {
		u, err := url.Parse(c.Server.NotifyURL)
		if err != nil {
			return errors.Wrap(err, "config: notify url")
		}
		if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			return errors.Errorf("config: notify url must be an absolute http(s) URL, got %q", c.Server.NotifyURL)
		}
	}
	return nil
}

// intList is a comma separated list of positive sizes.
type intList []int

func (l *intList) String() string {
	if l == nil {
		return ""
	}
	parts := make([]string, len(*l))
	for i, v := range *l {
		parts[i] = strconv.Itoa(v)
	}
	return strings.Join(parts, ",")
}

func (l *intList) Set(s string) error {
	var out []int
	for _, p := range strings.Split(s, ",") {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		v, err := strconv.Atoi(p)
		if err != nil {
			return errors.Errorf("invalid size %q", p)
		}
		out = append(out, v)
	}
	*l = out
	return nil
}

// Parse registers the run flags on fs and parses args. The result starts from
// defaults, applies the YAML file named by -config, then every flag given
// explicitly, and is validated. Server flags are only registered when
// defaults carries a Server section.
func Parse(fs *flag.FlagSet, args []string, defaults Config) (Config, error) {
	d := defaults.clone()

	configPath := fs.String("config", "", "YAML file with run settings")
	seed := fs.Uint64("seed", d.Seed, "random seed for initialization and sampling")
	epochs := fs.Int("epochs", d.Epochs, "number of single-example training steps")
	lr := fs.Float64("lr", d.LearningRate, "learning rate")
	hidden := intList(append([]int(nil), d.Hidden...))
	fs.Var(&hidden, "hidden", "comma separated hidden layer sizes")
	logInterval := fs.Int("log-interval", d.LogInterval, "steps between loss reports (0 disables)")
	lossCSV := fs.String("loss-csv", d.LossCSV, "write the loss trend to this CSV file")

	var data *string
	var labelCol *int
	var serve *bool
	var addr, notifyURL *string
	var notifyTimeout *time.Duration
	if d.Server != nil {
		data = fs.String("data", d.Data, "CSV file with training examples (default: built-in set)")
		labelCol = fs.Int("label-col", d.LabelColumn, "label column in -data (-1: last)")
		serve = fs.Bool("serve", d.Server.Enabled, "start the decision server after training")
		addr = fs.String("addr", d.Server.Addr, "listen address")
		notifyURL = fs.String("notify-url", d.Server.NotifyURL, "optional URL to POST decisions to")
		notifyTimeout = fs.Duration("notify-timeout", d.Server.NotifyTimeout, "timeout of one notification")
	}

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	cfg := d
	if *configPath != "" {
		var err error
		if cfg, err = Load(*configPath, d); err != nil {
			return Config{}, err
		}
		if d.Server != nil && cfg.Server == nil {
			s := *d.Server
			cfg.Server = &s
		}
	}

	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "seed":
			cfg.Seed = *seed
		case "epochs":
			cfg.Epochs = *epochs
		case "lr":
			cfg.LearningRate = *lr
		case "hidden":
			cfg.Hidden = []int(hidden)
		case "log-interval":
			cfg.LogInterval = *logInterval
		case "loss-csv":
			cfg.LossCSV = *lossCSV
		case "data":
			cfg.Data = *data
		case "label-col":
			cfg.LabelColumn = *labelCol
		case "serve":
			cfg.Server.Enabled = *serve
		case "addr":
			cfg.Server.Addr = *addr
		case "notify-url":
			cfg.Server.NotifyURL = *notifyURL
		case "notify-timeout":
			cfg.Server.NotifyTimeout = *notifyTimeout
		}
	})

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
