package checkcore

import (
	"fmt"
	"strings"

	"github.com/sni/shelltoken"
)

// ParseArgs splits a list of key=value check arguments, surrounding
// quotes around values are removed. Unrecognized keys are left to the
// individual check, repeated keys keep the last value.
func ParseArgs(args []string) map[string]string {
	parsed := make(map[string]string, len(args))

	for _, arg := range args {
		keyVal := strings.SplitN(arg, "=", 2)
		key := strings.TrimSpace(keyVal[0])
		if key == "" {
			continue
		}
		val := ""
		if len(keyVal) == 2 {
			val = strings.TrimSpace(keyVal[1])
			switch {
			case strings.HasPrefix(val, "'") && strings.HasSuffix(val, "'"):
				val = strings.Trim(val, "'")
			case strings.HasPrefix(val, `"`) && strings.HasSuffix(val, `"`):
				val = strings.Trim(val, `"`)
			}
		}
		parsed[key] = val
	}

	return parsed
}

// ParseCommand splits a configured check command line into the check
// name and its arguments.
func ParseCommand(command string) (name string, args []string, err error) {
	_, argv, err := shelltoken.SplitLinux(command)
	if err != nil {
		return "", nil, fmt.Errorf("error parsing command: %s", err.Error())
	}
	if len(argv) == 0 || argv[0] == "" {
		return "", nil, fmt.Errorf("empty check command")
	}

	return argv[0], argv[1:], nil
}
