package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/domino14/wordlebits/outcome"
)

const (
	ConfigDataPath    = "data-path"
	ConfigWordsFile   = "words-file"
	ConfigAnswersFile = "answers-file"
	ConfigWordLength  = "word-length"
	ConfigThreads     = "threads"
	ConfigPrecision   = "precision"
	ConfigEncoding    = "encoding"
	ConfigDebug       = "debug"
	ConfigCPUProfile  = "cpu-profile"
	ConfigMemProfile  = "mem-profile"

	ConfigNatsURL        = "nats-url"
	ConfigBotSubject     = "bot-subject"
	ConfigLambdaFunction = "lambda-function"
)

// Config is every setting of the program. Values come, in increasing order
// of priority, from defaults, a config file, WORDLEBITS_* environment
// variables and command-line flags.
type Config struct {
	*viper.Viper
}

func setDefaults(v *viper.Viper) {
	v.SetDefault(ConfigDataPath, "./data")
	v.SetDefault(ConfigWordsFile, "words.txt")
	v.SetDefault(ConfigAnswersFile, "answers.txt")
	v.SetDefault(ConfigWordLength, 5)
	v.SetDefault(ConfigThreads, runtime.NumCPU())
	v.SetDefault(ConfigPrecision, 3)
	v.SetDefault(ConfigEncoding, "standard")
	v.SetDefault(ConfigDebug, false)
	v.SetDefault(ConfigNatsURL, "nats://localhost:4222")
	v.SetDefault(ConfigBotSubject, "wordlebits.bot")
	v.SetDefault(ConfigLambdaFunction, "wordlebits-bot")
}

// DefaultConfig has the defaults only. Tests use it.
func DefaultConfig() Config {
	v := viper.New()
	setDefaults(v)
	return Config{Viper: v}
}

// Load reads flags from args, plus the environment and an optional config
// file named by -config. It returns the arguments that are not flags.
func (c *Config) Load(args []string) ([]string, error) {
	c.Viper = viper.New()
	setDefaults(c.Viper)

	fs := pflag.NewFlagSet("wordlebits", pflag.ContinueOnError)
	// everything after the first non-flag is a shell command line
	fs.SetInterspersed(false)
	fs.String(ConfigDataPath, "./data", "directory holding word lists")
	fs.String(ConfigWordsFile, "words.txt", "list of guessable words, relative to the data path")
	fs.String(ConfigAnswersFile, "answers.txt", "list of possible answers, relative to the data path")
	fs.Int(ConfigWordLength, 5, "number of letters per word")
	fs.Int(ConfigThreads, runtime.NumCPU(), "number of search goroutines")
	fs.Int(ConfigPrecision, 3, "decimals shown for information values")
	fs.String(ConfigEncoding, "standard", "hint encoding: standard, hits or counts")
	fs.Bool(ConfigDebug, false, "debug logging on")
	fs.String(ConfigCPUProfile, "", "file to write a CPU profile to")
	fs.String(ConfigMemProfile, "", "file to write a memory profile to")
	fs.String(ConfigNatsURL, "nats://localhost:4222", "NATS server the bot listens on")
	fs.String(ConfigBotSubject, "wordlebits.bot", "NATS subject for guess requests")
	fs.String(ConfigLambdaFunction, "wordlebits-bot", "name of the deployed bot Lambda function")
	cfgFile := fs.String("config", "", "optional YAML config file")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if err := c.BindPFlags(fs); err != nil {
		return nil, err
	}
	c.SetEnvPrefix("wordlebits")
	c.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	c.AutomaticEnv()

	if *cfgFile != "" {
		c.SetConfigFile(*cfgFile)
		if err := c.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}
	return fs.Args(), nil
}

// AdjustRelativePaths makes a relative data path relative to basepath if
// it does not exist relative to the working directory.
func (c *Config) AdjustRelativePaths(basepath string) {
	p := c.GetString(ConfigDataPath)
	if filepath.IsAbs(p) {
		return
	}
	if _, err := os.Stat(p); err == nil {
		return
	}
	c.Set(ConfigDataPath, filepath.Join(basepath, p))
}

func (c *Config) WordsPath() string {
	return filepath.Join(c.GetString(ConfigDataPath), c.GetString(ConfigWordsFile))
}

func (c *Config) AnswersPath() string {
	return filepath.Join(c.GetString(ConfigDataPath), c.GetString(ConfigAnswersFile))
}

// Encoder returns the configured hint encoding.
func (c *Config) Encoder() (outcome.Encoder, error) {
	name := c.GetString(ConfigEncoding)
	enc, ok := outcome.FromName(name)
	if !ok {
		return nil, fmt.Errorf("unknown encoding %q", name)
	}
	return enc, nil
}
