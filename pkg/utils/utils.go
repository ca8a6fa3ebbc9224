package utils

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
)

// ExpandDuration expand duration string into seconds
func ExpandDuration(val string) (res float64, err error) {
	var num float64

	factors := []struct {
		suffix string
		factor float64
	}{
		{"ms", 0.001},
		{"s", 1},
		{"m", 60},
		{"h", 3600},
		{"d", 86400},
	}

	for _, fac := range factors {
		if strings.HasSuffix(val, fac.suffix) {
			num, err = strconv.ParseFloat(strings.TrimSuffix(val, fac.suffix), 64)
			if err != nil {
				return 0, fmt.Errorf("expandDuration: %s", err.Error())
			}

			return num * fac.factor, nil
		}
	}

	res, err = strconv.ParseFloat(val, 64)
	if err != nil {
		return 0, fmt.Errorf("expandDuration: %s", err.Error())
	}

	return res, nil
}

// IsDigitsOnly returns true if string only contains numbers
func IsDigitsOnly(str string) bool {
	for _, c := range str {
		if !unicode.IsDigit(c) {
			return false
		}
	}

	return true
}

// ToPrecision truncates float64 to given precision
func ToPrecision(val float64, precision int) float64 {
	format := fmt.Sprintf("%%.%df", precision)
	short, _ := strconv.ParseFloat(fmt.Sprintf(format, val), 64)

	return short
}

// Copyright (c) 2014 Kevin Wallace <kevin@pentabarf.net>
// Found here: https://github.com/kevinwallace/fieldsn
// Released under the MIT license
// XXX this implementation treats negative n as "return nil",
// unlike stdlib SplitN and friends, which treat it as "no limit"

// FieldsN is like strings.Fields, but returns at most n fields,
// and the nth field includes any whitespace at the end of the string.
func FieldsN(str string, max int) []string {
	if max <= 0 {
		return nil
	}

	fields := make([]string, 0, max)
	index := 0
	fieldStart := -1
	for idx, chr := range str {
		if unicode.IsSpace(chr) {
			if fieldStart >= 0 {
				fields = append(fields, str[fieldStart:idx])
				index++
				fieldStart = -1
			}
		} else if fieldStart == -1 {
			fieldStart = idx
			if index+1 == max {
				break
			}
		}
	}
	if fieldStart >= 0 {
		fields = append(fields, str[fieldStart:])
	}

	return fields
}
