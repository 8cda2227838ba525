package config

import (
	"fmt"
	"sort"
	"strings"

	"eurocalc/pkg/errors"
	"eurocalc/pkg/validator"
)

// ValidateCore ensures the calculator configuration is usable.
func (c *Config) ValidateCore() error {
	var problems []string

	v := validator.New()
	for field, msg := range v.ValidateStructured(&c.Calculator) {
		problems = append(problems, fmt.Sprintf("%s: %s", field, msg))
	}
	for field, msg := range v.ValidateStructured(&c.Log) {
		problems = append(problems, fmt.Sprintf("%s: %s", field, msg))
	}

	if strings.TrimSpace(c.Calculator.Rate) != "" {
		rate, err := parseRate(c.Calculator.Rate)
		if err != nil || !rate.IsPositive() {
			problems = append(problems, "CALC_RATE: must be a number greater than zero")
		}
	}

	if len(problems) > 0 {
		sort.Strings(problems)
		return fmt.Errorf("%w: %s", errors.ErrInvalidConfig, strings.Join(problems, ", "))
	}

	return nil
}
