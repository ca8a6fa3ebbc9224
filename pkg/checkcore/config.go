package checkcore

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/consol-monitoring/checkcore/pkg/convert"
)

// DefaultConfig contains the factory defaults, they apply whenever the
// operator configuration leaves a key unset.
var DefaultConfig = Config{
	"/settings/default": {
		"state file": "checkcore.state.json",
		"log level":  "info",
		"log file":   "stdout",
	},
	"/settings/daemon": {
		"port":     "8443",
		"use ssl":  "false",
		"interval": "60s",
	},
}

// Config contains the merged config over all config files.
type Config map[string]ConfigSection

// ConfigSection contains a single config section.
type ConfigSection map[string]string

func NewConfig() Config {
	conf := make(Config, 0)
	for name, section := range DefaultConfig {
		(&conf).Section(name).Merge(section)
	}

	return conf
}

// ReadSettingsFile opens the config file and reads all key value pairs,
// separated through = and commented out with ";" or "#".
func (config *Config) ReadSettingsFile(path string) error {
	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("cannot read file %s: %s", path, err.Error())
	}
	defer file.Close()

	currentBlock := ""
	lineNr := 0

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		lineNr++

		line := strings.TrimSpace(scanner.Text())
		if line == "" || line[0] == ';' || line[0] == '#' {
			continue
		}

		if line[0] == '[' {
			currentBlock = strings.TrimSuffix(strings.TrimPrefix(line, "["), "]")

			if _, ok := (*config)[currentBlock]; !ok {
				(*config)[currentBlock] = make(ConfigSection, 0)
			}

			continue
		}

		if currentBlock == "" {
			return fmt.Errorf("parse error in %s:%d: found key=value outside of block", path, lineNr)
		}

		val := strings.SplitN(line, "=", 2)
		if len(val) != 2 {
			return fmt.Errorf("parse error in %s:%d: expected key = value", path, lineNr)
		}

		(*config)[currentBlock][strings.TrimSpace(val[0])] = strings.TrimSpace(val[1])
	}

	return nil
}

// Section returns section by name or empty section.
func (config *Config) Section(name string) *ConfigSection {
	if section, ok := (*config)[name]; ok {
		return &section
	}

	section := make(ConfigSection)
	(*config)[name] = section

	return &section
}

// CheckSection returns the section for a given check merged with the
// defaults section.
func (config *Config) CheckSection(check string) *ConfigSection {
	section := config.Section("/settings/check/" + check).Clone()
	section.Merge(*config.Section("/settings/default"))

	return &section
}

// GetString returns the value for given key.
func (cs *ConfigSection) GetString(key string) (val string, ok bool) {
	val, ok = (*cs)[key]

	return val, ok
}

// GetBool returns the value for given key as bool, parse failures fall
// back to the given default.
func (cs *ConfigSection) GetBool(key string, dflt bool) bool {
	raw, ok := (*cs)[key]
	if !ok {
		return dflt
	}

	val, err := convert.BoolE(raw)
	if err != nil {
		log.Warnf("config: %s: %s", key, err.Error())

		return dflt
	}

	return val
}

// GetLevels parses the levels definition stored under the given key,
// unparsable definitions are reported and fall back to no levels.
func (cs *ConfigSection) GetLevels(key string, lower bool) *Levels {
	raw, ok := (*cs)[key]
	if !ok {
		return &Levels{Kind: LevelsNone}
	}

	levels, err := ParseLevels(raw, lower)
	if err != nil {
		log.Warnf("config: %s: %s", key, err.Error())

		return &Levels{Kind: LevelsNone}
	}

	return levels
}

// Merge adds all missing keys from the defaults.
func (cs *ConfigSection) Merge(defaults ConfigSection) {
	for key, value := range defaults {
		if _, ok := (*cs)[key]; !ok {
			(*cs)[key] = value
		}
	}
}

// Clone returns a copy of this section.
func (cs *ConfigSection) Clone() ConfigSection {
	clone := make(ConfigSection)
	for k, v := range *cs {
		clone[k] = v
	}

	return clone
}
