package criteria

import "fmt"

// ValidationError 검증 실패 (설정 로드 중단)
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Validate checks all required constraints on the loaded criteria.
// A rule with neither bound would silently score 0.5 for every value off
// ideal, so it is rejected here instead of reaching the engine.
func Validate(c *Criteria) error {
	if c.MinMarketCap < 0 {
		return ValidationError{"screening.min_market_cap", "must be >= 0"}
	}
	if c.MaxMarketCap <= c.MinMarketCap {
		return ValidationError{"screening.max_market_cap", "must be > min_market_cap"}
	}
	if c.MinPrice < 0 {
		return ValidationError{"screening.min_price", "must be >= 0"}
	}
	if c.TopN <= 0 {
		return ValidationError{"screening.top_n", "must be > 0"}
	}

	if len(c.Scoring) == 0 {
		return ValidationError{"screening.scoring", "at least one scoring rule required"}
	}

	for name, rule := range c.Scoring {
		if err := validateRule(fmt.Sprintf("screening.scoring.%s", name), rule); err != nil {
			return err
		}
	}

	for sector, rules := range c.SectorOverrides {
		if len(rules) == 0 {
			return ValidationError{
				Field:   fmt.Sprintf("screening.sector_overrides.%s", sector),
				Message: "empty override block",
			}
		}
		for name, rule := range rules {
			field := fmt.Sprintf("screening.sector_overrides.%s.%s", sector, name)
			if err := validateRule(field, rule); err != nil {
				return err
			}
		}
	}

	return nil
}

// validateRule checks one scoring rule for internal consistency.
func validateRule(field string, rule Rule) error {
	if rule.Weight <= 0 {
		return ValidationError{field, "weight must be > 0"}
	}
	if rule.Min == nil && rule.Max == nil {
		return ValidationError{field, "at least one of min/max must be set"}
	}
	if rule.Min != nil && rule.Max == nil && *rule.Min >= rule.Ideal {
		return ValidationError{field, "min must be < ideal for higher-is-better rules"}
	}
	if rule.Max != nil && rule.Min == nil && *rule.Max <= rule.Ideal {
		return ValidationError{field, "max must be > ideal for lower-is-better rules"}
	}
	if rule.Min != nil && rule.Max != nil {
		if *rule.Min >= rule.Ideal {
			return ValidationError{field, "min must be < ideal for banded rules"}
		}
		if *rule.Max < rule.Ideal {
			return ValidationError{field, "max must be >= ideal for banded rules"}
		}
	}
	return nil
}
